// Package server runs the file keeper's REST API and, when configured, the
// gRPC health endpoint, and stops both together on a termination signal.
package server
