// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "code.hybscloud.com/prog/host"

// Option configures a decorator.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	tracer     trace.Tracer
	registerer prometheus.Registerer
	namespace  string
	opName     func(any) string
}

func newOptions(opts []Option) *options {
	o := &options{
		namespace: "prog",
		opName:    defaultOpName,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(instrumentationName)
	}
	if o.registerer == nil {
		o.registerer = prometheus.DefaultRegisterer
	}
	return o
}

// defaultOpName names an operation by its dynamic type.
func defaultOpName(op any) string {
	return fmt.Sprintf("%T", op)
}

// WithLogger sets the logger used by [Logged]. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithTracer sets the tracer used by [Traced].
// Default: the global provider's tracer for this package.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// WithRegisterer sets where [NewMetrics] registers its collectors.
// Default: prometheus.DefaultRegisterer.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(o *options) { o.registerer = r }
}

// WithNamespace sets the metric namespace. Default: "prog".
func WithNamespace(ns string) Option {
	return func(o *options) { o.namespace = ns }
}

// WithOpName sets how operations are named in logs, spans and metric labels.
// Default: the operation's dynamic type. Keep the result low-cardinality
// when metrics are enabled.
func WithOpName(f func(op any) string) Option {
	return func(o *options) { o.opName = f }
}
