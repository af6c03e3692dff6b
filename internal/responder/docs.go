package responder

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/lambda-feedback/echoapi/internal/request"
)

// ParamDocName is the path parameter naming a docs fixture.
const ParamDocName = "name"

// FixtureStore loads named JSON documents.
type FixtureStore interface {
	Load(name string) (json.RawMessage, error)
}

// Docs serves a named fixture from store. Any load failure is answered
// with an empty 404.
func Docs(store FixtureStore) Func {
	return func(_ context.Context, req *request.Request) Response {
		doc, err := store.Load(req.Param(ParamDocName))
		if err != nil {
			return Empty(http.StatusNotFound)
		}

		return JSON(http.StatusOK, doc)
	}
}
