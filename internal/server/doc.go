// Package server runs the directory's HTTP transport.
//
// It owns the http.Server lifecycle: startup, signal handling, and graceful
// shutdown with a bounded drain period.
package server
