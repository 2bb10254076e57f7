// Package server exposes the layout pipeline over HTTP.
//
// # Endpoints
//
//	POST /v1/layout   graph + options → placed layout (JSON)
//	POST /v1/render   graph or layout + options → svg, png, pdf or json
//	GET  /healthz     build information
//
// A layout request carries the graph in its wire format and the layout
// options:
//
//	{
//	  "graph":   {"nodes": [{"id": "r"}, {"id": "a"}], "edges": [{"from": "r", "to": "a"}]},
//	  "options": {"root": "r", "spacing": 10}
//	}
//
// Every layout response gets a fresh ID, returned in the body and in the
// X-Layout-ID header. Errors are JSON objects with "error" and "code"
// fields; the code is one of the pkg/errors codes.
//
// The server shares one [pipeline.Runner] between requests, so layouts and
// artifacts are served from its cache when possible.
package server
