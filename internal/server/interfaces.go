package server

// Server is one transport (REST or gRPC health) of the file keeper.
//
// RunServer blocks until the transport stops; Shutdown makes it stop.
type Server interface {
	RunServer()
	Shutdown()
}
