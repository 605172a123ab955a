package mocks

import (
	"context"

	"bookit/infras/otel"
)

type otelImpl struct {
	recorder *Recorder
}

func (o *otelImpl) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	if o.recorder != nil {
		o.recorder.start(spanName)
	}

	return ctx, &scopeImpl{recorder: o.recorder}
}

func (o *otelImpl) Shutdown(_ context.Context) error {
	return nil
}

// NewOtel returns an Otel whose scopes discard everything.
func NewOtel() otel.Otel {
	return &otelImpl{}
}

// NewRecordingOtel returns an Otel that keeps span names, events and errors
// for assertions.
func NewRecordingOtel() (otel.Otel, *Recorder) {
	recorder := &Recorder{}

	return &otelImpl{recorder: recorder}, recorder
}
