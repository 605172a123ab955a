package mocks

import (
	"sync"

	"bookit/infras/otel"
)

// Recorder collects what scopes saw. Safe for concurrent scopes.
type Recorder struct {
	mu     sync.Mutex
	spans  []string
	events []string
	errors []error
}

func (r *Recorder) start(span string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.spans = append(r.spans, span)
}

func (r *Recorder) Spans() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.spans...)
}

func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.events...)
}

func (r *Recorder) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]error(nil), r.errors...)
}

type scopeImpl struct {
	recorder *Recorder
}

func (s *scopeImpl) AddEvent(name string) {
	if s.recorder == nil {
		return
	}

	s.recorder.mu.Lock()
	defer s.recorder.mu.Unlock()

	s.recorder.events = append(s.recorder.events, name)
}

func (s *scopeImpl) End() {}

func (s *scopeImpl) SetAttribute(_ string, _ any) {}

func (s *scopeImpl) SetAttributes(_ map[string]any) {}

func (s *scopeImpl) TraceError(err error) {
	if s.recorder == nil {
		return
	}

	s.recorder.mu.Lock()
	defer s.recorder.mu.Unlock()

	s.recorder.errors = append(s.recorder.errors, err)
}

func (s *scopeImpl) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

// NewScope returns a scope that discards everything.
func NewScope() otel.Scope {
	return &scopeImpl{}
}
