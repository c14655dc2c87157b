// Package respond builds the uniform result envelope shared by every handler.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	apiError "recipeshare/internal/api/error"
)

const contentTypeJSON = "application/json"

// Envelope is the transport-agnostic handler result: a status code, headers
// and a serialized body. An empty body rides with a 204.
type Envelope struct {
	StatusCode int
	Headers    map[string]string
	Body       string
}

type errorBody struct {
	ErrorMessage string `json:"errorMessage"`
}

// Format maps an error or a result payload to an Envelope.
//
// An error produces its mapped status (400 for anything unclassified) and a
// {"errorMessage": ...} body. An absent result, nil or the empty string,
// produces 204 with an empty body; emptiness of any other result type is
// the caller's contract. Everything else produces 200 with the serialized
// result. The content type is always JSON. Format never panics; a result
// that cannot be serialized degrades to an internal error envelope.
func Format(err error, result any) Envelope {
	if err != nil {
		status := http.StatusBadRequest
		var apiErr *apiError.Error
		if errors.As(err, &apiErr) && apiErr.Code.StatusCode() != 0 {
			status = apiErr.Code.StatusCode()
		}
		body, _ := json.Marshal(errorBody{ErrorMessage: err.Error()})
		return Envelope{
			StatusCode: status,
			Headers:    map[string]string{"Content-Type": contentTypeJSON},
			Body:       string(body),
		}
	}

	if result == nil || result == "" {
		return Envelope{
			StatusCode: http.StatusNoContent,
			Headers:    map[string]string{"Content-Type": contentTypeJSON},
			Body:       "",
		}
	}

	body, merr := json.Marshal(result)
	if merr != nil {
		return Format(apiError.New(apiError.InternalServerError, "internal server error"), nil)
	}
	return Envelope{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": contentTypeJSON},
		Body:       string(body),
	}
}

// Write sends the envelope over an HTTP response.
func (e Envelope) Write(w http.ResponseWriter) {
	for k, v := range e.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(e.StatusCode)
	if e.Body != "" {
		_, _ = w.Write([]byte(e.Body))
	}
}
