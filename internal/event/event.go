// Package event normalizes inbound requests from the supported transports
// into a single shape, so handler logic never inspects gateway-version
// specific payloads.
package event

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
)

// Request is the normalized inbound event.
type Request struct {
	Method string
	Query  map[string]string
	Body   []byte
}

// FromHTTP adapts a net/http request. Only the first value of each query
// parameter is kept.
func FromHTTP(r *http.Request) Request {
	query := make(map[string]string)
	for k, vs := range r.URL.Query() {
		if len(vs) > 0 {
			query[k] = vs[0]
		}
	}

	var body []byte
	if r.Body != nil {
		body, _ = io.ReadAll(r.Body)
	}

	return Request{
		Method: r.Method,
		Query:  query,
		Body:   body,
	}
}

// gatewayEvent covers both API Gateway payload shapes: the REST API
// (v1, top-level httpMethod) and the HTTP API (v2, requestContext.http.method).
type gatewayEvent struct {
	HTTPMethod     string `json:"httpMethod"`
	RequestContext struct {
		HTTP struct {
			Method string `json:"method"`
		} `json:"http"`
	} `json:"requestContext"`
	QueryStringParameters map[string]string `json:"queryStringParameters"`
	Body                  string            `json:"body"`
	IsBase64Encoded       bool              `json:"isBase64Encoded"`
}

// FromLambda adapts a raw API Gateway event of either payload version.
// An unrecognized shape yields a Request with an empty method, which the
// handlers reject as unsupported.
func FromLambda(payload []byte) Request {
	var ev gatewayEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return Request{Query: map[string]string{}}
	}

	method := ev.HTTPMethod
	if method == "" {
		method = ev.RequestContext.HTTP.Method
	}

	query := ev.QueryStringParameters
	if query == nil {
		query = map[string]string{}
	}

	body := []byte(ev.Body)
	if ev.IsBase64Encoded {
		if decoded, err := base64.StdEncoding.DecodeString(ev.Body); err == nil {
			body = decoded
		}
	}

	return Request{
		Method: method,
		Query:  query,
		Body:   body,
	}
}
