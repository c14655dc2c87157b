// Package http provides a wrapper around the retryablehttp.Client
// for making HTTP requests with retry capabilities.
package http

import (
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
)

type HTTP struct {
	*retryablehttp.Client
}

func DefaultConfig() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.Logger = nil
	return client
}

func New(client *retryablehttp.Client) *HTTP {
	return &HTTP{
		Client: client,
	}
}

// Transport exposes the retrying client as an http.RoundTripper so other
// clients (the object-store SDK) can ride on it.
func (h *HTTP) Transport() http.RoundTripper {
	return &retryablehttp.RoundTripper{Client: h.Client}
}
