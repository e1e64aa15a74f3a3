package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vexport/internal/config"
	"vexport/internal/engine"
	"vexport/internal/port"
	"vexport/mocks"
)

func TestNew_UnknownProvider(t *testing.T) {
	_, err := engine.New(&config.EngineConfig{Provider: "chromium"})
	assert.ErrorContains(t, err, "unknown engine provider")
}

func TestNew_RegisteredProvider(t *testing.T) {
	engine.RegisterProvider("fake", func(cfg *config.EngineConfig) (port.Engine, error) {
		return new(mocks.MockEngine), nil
	})

	eng, err := engine.New(&config.EngineConfig{Provider: "fake"})
	require.NoError(t, err)
	assert.NotNil(t, eng)
}

func TestFactory_BindsConfig(t *testing.T) {
	var seen string
	engine.RegisterProvider("capture", func(cfg *config.EngineConfig) (port.Engine, error) {
		seen = cfg.BinPath
		return new(mocks.MockEngine), nil
	})

	factory := engine.Factory(&config.EngineConfig{Provider: "capture", BinPath: "/opt/vl-convert"})
	_, err := factory()
	require.NoError(t, err)
	assert.Equal(t, "/opt/vl-convert", seen)
}
