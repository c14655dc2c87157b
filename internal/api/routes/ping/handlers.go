// Package ping contains the health check handler.
package ping

import (
	"net/http"

	"recipeshare/internal/respond"
)

// HandlePing godoc
//
//	@Summary	Ping endpoint.
//	@Tags		Ping
//
//	@Success	204
//	@Router		/api/ping [GET]
func HandlePing(w http.ResponseWriter, r *http.Request) {
	respond.Format(nil, nil).Write(w)
}
