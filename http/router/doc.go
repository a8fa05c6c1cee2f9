/*
Package router routes HTTP requests to the handlers of a courier application.

A [*Router] is a thin wrapper around [mux.Router].
It leverages a standardized data model - a [Route] - when registering how requests should be routed.
A path and an HTTP method comprise a [Route];
a [resp.HandlerFunc] is the function called when a request matches it.
Before a request gets to a handler, though,
any middlewares added to the Route are called in the order they appear.

It is often the case that many routes share identical middleware stacks,
so [*Router.OnEveryRequest] and [*Router.HandleRoutes] register them once for many Routes.

[*Router.Files] mounts a store of files under a path prefix,
answering Range requests with partial content.
*/
package router
