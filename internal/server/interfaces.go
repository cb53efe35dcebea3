package server

// Server defines the lifecycle contract of the vault daemon.
//
// Implementations are expected to block in [RunServer] until shutdown is
// requested and to release resources in [Shutdown].
type Server interface {
	// RunServer starts the background workers and blocks until a stop
	// signal arrives.
	RunServer()

	// Shutdown gracefully stops the workers.
	Shutdown()
}
