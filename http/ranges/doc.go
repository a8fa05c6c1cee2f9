/*
Package ranges resolves an HTTP Range header against the size of a resource.

Everything here is pure: resolving the same header against the same size
always yields the same [Window].

Only a single range of the form "bytes={start}-{end}" is understood.
An empty start means 0, an empty end means "until the end of the resource",
and a present end names the last byte included.
Anything else, multi-range lists included, is reported as no range at all
so callers fall back to serving the whole resource.
*/
package ranges
