package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"vexport/internal/domain"
)

// MockEngine is a mock implementation of port.Engine.
type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) VegaToSVG(ctx context.Context, spec json.RawMessage, opts domain.VegaOpts) (string, error) {
	args := m.Called(ctx, spec, opts)
	return args.String(0), args.Error(1)
}

func (m *MockEngine) VegaToHTML(ctx context.Context, spec json.RawMessage, opts domain.VegaOpts) (string, error) {
	args := m.Called(ctx, spec, opts)
	return args.String(0), args.Error(1)
}

func (m *MockEngine) VegaToPNG(ctx context.Context, spec json.RawMessage, opts domain.VegaOpts) ([]byte, error) {
	args := m.Called(ctx, spec, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockEngine) VegaToJPEG(ctx context.Context, spec json.RawMessage, opts domain.VegaOpts) ([]byte, error) {
	args := m.Called(ctx, spec, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockEngine) VegaToPDF(ctx context.Context, spec json.RawMessage, opts domain.VegaOpts) ([]byte, error) {
	args := m.Called(ctx, spec, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockEngine) VegaLiteToSVG(ctx context.Context, spec json.RawMessage, opts domain.VlOpts) (string, error) {
	args := m.Called(ctx, spec, opts)
	return args.String(0), args.Error(1)
}

func (m *MockEngine) VegaLiteToHTML(ctx context.Context, spec json.RawMessage, opts domain.VlOpts) (string, error) {
	args := m.Called(ctx, spec, opts)
	return args.String(0), args.Error(1)
}

func (m *MockEngine) VegaLiteToPNG(ctx context.Context, spec json.RawMessage, opts domain.VlOpts) ([]byte, error) {
	args := m.Called(ctx, spec, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockEngine) VegaLiteToJPEG(ctx context.Context, spec json.RawMessage, opts domain.VlOpts) ([]byte, error) {
	args := m.Called(ctx, spec, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockEngine) VegaLiteToPDF(ctx context.Context, spec json.RawMessage, opts domain.VlOpts) ([]byte, error) {
	args := m.Called(ctx, spec, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockEngine) VegaLiteToVega(ctx context.Context, spec json.RawMessage, opts domain.VlOpts) (string, error) {
	args := m.Called(ctx, spec, opts)
	return args.String(0), args.Error(1)
}
