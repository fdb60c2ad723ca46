// Package server wires and runs the application's HTTP transport.
//
// It owns the server lifecycle: startup, background worker launch,
// signal handling, and graceful shutdown.
package server
