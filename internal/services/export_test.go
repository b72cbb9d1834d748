package services

import (
	"net/http"
	"net/url"
)

// Test-only accessors for external test packages.

func (g *Gateway) TestBaseURL() *url.URL { return g.baseURL }

func (g *Gateway) TestClient() *http.Client { return g.client }
