/*
Package courier holds the pieces shared across a courier app:
sentinel errors, context keys, and the [Environment] an app runs in
alongside helpers for reading configuration out of environment variables.

The interesting parts live in subpackages:

  - http/resp builds and finalizes exactly one response per request
  - http/ranges resolves a Range header into a byte window
  - http/files opens whole or bounded views onto files
  - server ties everything to an [net/http.Server]
*/
package courier
