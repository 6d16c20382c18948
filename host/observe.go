// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package host

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"code.hybscloud.com/prog"
)

// Logged wraps h so that every executed effect is logged: a debug record on
// success, a warning carrying the error on failure and an error record when
// h panics. The panic is propagated after logging.
func Logged[F any](h prog.Host[F], opts ...Option) prog.Host[F] {
	o := newOptions(opts)
	return prog.HostFunc[F](func(ctx context.Context, op F) (prog.Erased, error) {
		name := o.opName(op)
		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				o.logger.ErrorContext(ctx, "effect panicked",
					"op", name, "duration", time.Since(start), "panic", fmt.Sprint(r))
				panic(r)
			}
		}()
		v, err := h.Execute(ctx, op)
		if err != nil {
			o.logger.WarnContext(ctx, "effect failed",
				"op", name, "duration", time.Since(start), "error", err)
			return v, err
		}
		o.logger.DebugContext(ctx, "effect executed",
			"op", name, "duration", time.Since(start))
		return v, nil
	})
}

// Traced wraps h so that every executed effect runs inside its own span.
// Failed and panicking effects record the error and set the span status to
// Error. A panic is propagated after the span ends.
func Traced[F any](h prog.Host[F], opts ...Option) prog.Host[F] {
	o := newOptions(opts)
	return prog.HostFunc[F](func(ctx context.Context, op F) (prog.Erased, error) {
		ctx, span := o.tracer.Start(ctx, "prog.effect",
			trace.WithAttributes(attribute.String("prog.op", o.opName(op))),
		)
		defer span.End()
		defer func() {
			if r := recover(); r != nil {
				err := fmt.Errorf("panic: %v", r)
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				panic(r)
			}
		}()
		v, err := h.Execute(ctx, op)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return v, err
	})
}

// Metrics holds the collectors updated by [Metered].
type Metrics struct {
	executed *prometheus.CounterVec
	failed   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the effect collectors and registers them:
//
//   - <ns>_effects_total{op}: executed effects
//   - <ns>_effect_failures_total{op}: effects that returned an error
//   - <ns>_effect_duration_seconds{op}: execution time
func NewMetrics(opts ...Option) (*Metrics, error) {
	o := newOptions(opts)
	m := &Metrics{
		executed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: o.namespace,
				Name:      "effects_total",
				Help:      "Number of executed effects.",
			},
			[]string{"op"},
		),
		failed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: o.namespace,
				Name:      "effect_failures_total",
				Help:      "Number of effects that returned an error.",
			},
			[]string{"op"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: o.namespace,
				Name:      "effect_duration_seconds",
				Help:      "Effect execution time in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"op"},
		),
	}
	for _, c := range []prometheus.Collector{m.executed, m.failed, m.duration} {
		if err := o.registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Metered wraps h so that every executed effect updates m. A panic in h
// counts as a failure and is propagated.
// Only WithOpName is consulted among opts.
func Metered[F any](h prog.Host[F], m *Metrics, opts ...Option) prog.Host[F] {
	o := newOptions(opts)
	return prog.HostFunc[F](func(ctx context.Context, op F) (v prog.Erased, err error) {
		name := o.opName(op)
		start := time.Now()
		failed := true
		defer func() {
			m.duration.WithLabelValues(name).Observe(time.Since(start).Seconds())
			m.executed.WithLabelValues(name).Inc()
			if failed {
				m.failed.WithLabelValues(name).Inc()
			}
		}()
		v, err = h.Execute(ctx, op)
		failed = err != nil
		return v, err
	})
}
