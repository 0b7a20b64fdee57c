package server

// Server is the lifecycle of the directory's HTTP transport.
type Server interface {
	// RunServer serves until a termination signal arrives and returns the
	// listener error, if any, that stopped it first.
	RunServer() error

	// Shutdown drains in-flight requests and closes the listener.
	Shutdown()
}
