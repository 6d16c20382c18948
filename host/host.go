// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package host provides [prog.Host] implementations and decorators.
//
// The prog core never executes anything; a Host runs each effect when the
// driver reaches it. This package supplies the common hosts:
//
//   - [Func]: Adapt a function
//   - [Dispatch]: Run operations that implement [Executor]
//   - [Recorder]: Record every executed operation
//
// and decorators that wrap any host:
//
//   - [Logged]: One log/slog record per effect
//   - [Traced]: One OpenTelemetry span per effect
//   - [Metered]: Prometheus counters and a duration histogram per operation
//
// Decorators compose by nesting, or with [Chain]:
//
//	h := host.Traced(host.Logged(host.Dispatch[Op](), host.WithLogger(logger)))
//	h := host.Chain(host.Dispatch[Op](), host.TraceDecorator[Op](), host.LogDecorator[Op](host.WithLogger(logger)))
package host

import (
	"context"
	"fmt"
	"sync"

	"code.hybscloud.com/prog"
)

// Func adapts a function to [prog.Host].
func Func[F any](f func(ctx context.Context, op F) (prog.Erased, error)) prog.Host[F] {
	return prog.HostFunc[F](f)
}

// Executor is implemented by operations that know how to run themselves.
type Executor interface {
	Execute(ctx context.Context) (any, error)
}

// UnhandledError is returned by [Dispatch] for an operation that does not
// implement [Executor].
type UnhandledError struct {
	Op any
}

func (e *UnhandledError) Error() string {
	return fmt.Sprintf("host: unhandled effect %T", e.Op)
}

// Dispatch returns a host that runs each operation through its own Execute
// method. The operation is not started once ctx is done.
func Dispatch[F any]() prog.Host[F] {
	return prog.HostFunc[F](func(ctx context.Context, op F) (prog.Erased, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if ex, ok := any(op).(Executor); ok {
			return ex.Execute(ctx)
		}
		return nil, &UnhandledError{Op: op}
	})
}

// Recorder is a host that records every operation before delegating it.
// It is safe for concurrent use.
type Recorder[F any] struct {
	mu    sync.Mutex
	inner prog.Host[F]
	ops   []F
}

// Record returns a Recorder delegating to inner. Pass a nil inner to install
// the recorder with [RecordDecorator] instead.
func Record[F any](inner prog.Host[F]) *Recorder[F] {
	return &Recorder[F]{inner: inner}
}

// Execute records op and delegates it to the inner host.
func (r *Recorder[F]) Execute(ctx context.Context, op F) (prog.Erased, error) {
	r.mu.Lock()
	r.ops = append(r.ops, op)
	inner := r.inner
	r.mu.Unlock()
	return inner.Execute(ctx, op)
}

// Ops returns the recorded operations in execution order.
func (r *Recorder[F]) Ops() []F {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]F, len(r.ops))
	copy(out, r.ops)
	return out
}

// Reset forgets the recorded operations.
func (r *Recorder[F]) Reset() {
	r.mu.Lock()
	r.ops = nil
	r.mu.Unlock()
}
