// Package controller contains the HTTP middlewares and helper handlers
// used by the API server.
//
// Provided middlewares:
//   - Logger: attaches a request-scoped logger and request ID to the
//     context and logs access info after each request.
//   - Recovery: converts panics into a 500 response with a structured log.
//
// Provided helpers:
//   - PprofMux: returns a ServeMux exposing net/http/pprof handlers.
package controller
