// Command fileserver serves ./public under /files
// alongside routes demonstrating the other ways a handler can respond.
//
//	curl -i -H 'Range: bytes=0-99' localhost:3000/files/clip.mp4
//	curl -i 'localhost:3000/intro/clip.mp4?bytes=1024'
//	curl -i localhost:3000/about/clip.mp4
package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/xy-planning-network/courier/http/ranges"
	"github.com/xy-planning-network/courier/http/resp"
	"github.com/xy-planning-network/courier/http/router"
	"github.com/xy-planning-network/courier/server"
)

// defaultIntroLen is how many leading bytes of a file /intro serves by default.
const defaultIntroLen = 64 * 1024

type introQuery struct {
	Bytes int64 `schema:"bytes" validate:"omitempty,min=1,max=1048576"`
}

func main() {
	var s *server.Server
	s, err := server.New(server.WithRoutes(
		router.Route{
			Path:   "/intro/{name:.+}",
			Method: http.MethodGet,
			Handler: func(rr *resp.Response) {
				q := introQuery{Bytes: defaultIntroLen}
				if err := rr.Req().ParseQuery(&q); err != nil {
					s.EmitResponder().Err(rr, err)
					return
				}

				_, err := rr.FilePart(rr.Req().Param("name"), 0, q.Bytes)
				if errors.Is(err, ranges.ErrNotSatisfiable) {
					// shorter than q.Bytes
					_, err = rr.File(rr.Req().Param("name"))
				}

				if err != nil {
					s.EmitResponder().Err(rr, err)
				}
			},
		},
		router.Route{
			Path:   "/about/{name:.+}",
			Method: http.MethodGet,
			Handler: func(rr *resp.Response) {
				if _, err := rr.Json(map[string]any{
					"name":  rr.Req().Param("name"),
					"range": rr.Req().Header("Range"),
					"match": rr.Req().Match,
				}); err != nil {
					s.EmitResponder().Err(rr, err)
				}
			},
		},
		router.Route{
			Path:    "/",
			Method:  http.MethodGet,
			Handler: func(rr *resp.Response) { rr.Redirect("/files/index.html", true) },
		},
	))
	if err != nil {
		log.Fatal(err)
	}

	if err := s.Guide(context.Background()); err != nil {
		log.Fatal(err)
	}
}
