/*
The resp package builds and finalizes exactly one response per HTTP request.

A [Responder] holds what is configured application-wide:
the logger, the [files.Store] files are served from, and a pool of buffers.
For every request it hands a handler a fresh [*Response].

A *Response starts [Open]. Handlers set a status and headers on it
and then call exactly one of its finalizers:

  - Finalize with any io.Reader
  - Text, Html, Json
  - Redirect
  - Error
  - File, FilePart, FileAuto

Calling one moves the *Response to [Finalized] and transmits it.
Every later mutation returns ErrFinalized and every later finalizer is a no-op
reporting [Skipped], so a response body is never written twice.

A peer hanging up mid-transmission is not an error a handler can act on.
Such failures are logged and reported as [Dropped].

FileAuto negotiates byte ranges with the client:
a request carrying "Range: bytes=500-" is answered with 206 Partial Content
and only the bytes asked for, and any other request receives the whole file
alongside "Accept-Ranges: bytes".
*/
package resp
