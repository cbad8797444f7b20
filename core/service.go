package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Interface defines a common interface for all services
type Interface interface {
	Start(ctx context.Context) error
	Stop()
}

type entry struct {
	name    string
	service Interface
}

// Registry manages all services
type Registry struct {
	services []entry
}

// NewRegistry creates a new core registry
func NewRegistry() *Registry {
	return &Registry{
		services: make([]entry, 0),
	}
}

// Register adds a service to the registry under a name used for logging
func (sr *Registry) Register(name string, service Interface) {
	sr.services = append(sr.services, entry{name: name, service: service})
}

// StartAll starts all registered services in registration order.
// If one fails, the services already started are stopped again.
func (sr *Registry) StartAll(ctx context.Context) error {
	for i, e := range sr.services {
		if err := e.service.Start(ctx); err != nil {
			log.Error().Err(err).Str("service", e.name).Msg("Core: failed to start service")
			sr.stopFirst(i)
			return fmt.Errorf("start %s: %w", e.name, err)
		}
		log.Debug().Str("service", e.name).Msg("Core: service started")
	}
	return nil
}

// StopAll stops all registered services
func (sr *Registry) StopAll() {
	sr.stopFirst(len(sr.services))
}

// stopFirst stops the first n services in reverse order
func (sr *Registry) stopFirst(n int) {
	for i := n - 1; i >= 0; i-- {
		sr.services[i].service.Stop()
		log.Debug().Str("service", sr.services[i].name).Msg("Core: service stopped")
	}
}
