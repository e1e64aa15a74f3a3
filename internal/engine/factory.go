// Package engine selects and constructs conversion engine backends.
package engine

import (
	"fmt"

	"vexport/internal/config"
	"vexport/internal/port"
)

// ProviderFactory is a function that creates an Engine from the engine config.
type ProviderFactory func(cfg *config.EngineConfig) (port.Engine, error)

// registry of engine provider factories, populated by init() in each provider
// package or explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers an engine provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// New creates an Engine from the config using the registered factory. An
// unknown provider is a constructor error so a misconfigured deployment
// fails at boot, not per call.
func New(cfg *config.EngineConfig) (port.Engine, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown engine provider: %s", cfg.Provider)
	}
	return factory(cfg)
}

// Factory returns a port.EngineFactory bound to cfg, suitable for handing to
// the facade, which builds a fresh handle per conversion.
func Factory(cfg *config.EngineConfig) port.EngineFactory {
	return func() (port.Engine, error) {
		return New(cfg)
	}
}
