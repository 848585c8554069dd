package provider

import (
	svc "github.com/elC0mpa/vm-doctor/service"
)

// Bundle is a provider wired to live cloud clients. Close releases the clients
// that hold connections.
type Bundle struct {
	svc.Provider
	closers []func() error
}
