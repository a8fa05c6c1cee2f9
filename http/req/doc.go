/*
Package req exposes the read-only view of an HTTP request a handler works with.

A [Context] bundles the raw *http.Request with what routing learned about it:
named path parameters, the query string as a multi-map,
and the groups matched by the route's path pattern, in order.

A [Parser] decodes query params and JSON bodies into structs,
then checks them against their "validate" struct tags.
Fields failing validation come back as [ValidationErrors].

	type intro struct {
		Bytes int64 `schema:"bytes" validate:"omitempty,min=1"`
	}

	var q intro
	if err := rr.Req().ParseQuery(&q); err != nil {
		// ...
	}
*/
package req
