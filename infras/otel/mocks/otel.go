// Package mocks provides a tracer that records nothing, for service and handler tests.
package mocks

import (
	"context"
	"sync"

	"rentdesk/infras/otel"
)

type otelImpl struct{}

func NewOtel() otel.Otel {
	return &otelImpl{}
}

func (o *otelImpl) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

func (o *otelImpl) Shutdown(_ context.Context) error {
	return nil
}

// Scope drops attributes and events but keeps traced errors so tests can inspect them.
type Scope struct {
	mu     sync.Mutex
	Errors []error
}

func NewScope() *Scope {
	return &Scope{}
}

func (s *Scope) End() {}
func (s *Scope) AddEvent(_ string) {}
func (s *Scope) SetAttribute(_ string, _ any) {}
func (s *Scope) SetAttributes(_ map[string]any) {}

func (s *Scope) TraceError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Errors = append(s.Errors, err)
}

func (s *Scope) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}
