// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package host

import "code.hybscloud.com/prog"

// Decorator wraps a host with extra behavior around each effect.
type Decorator[F any] func(prog.Host[F]) prog.Host[F]

// Chain wraps h with ds. Decorators apply left to right from the outside in:
// ds[0] sees each effect first and its result last, h runs innermost.
//
//	Chain(h, a, b) ≡ a(b(h))
//
// Nil decorators are skipped.
func Chain[F any](h prog.Host[F], ds ...Decorator[F]) prog.Host[F] {
	for i := len(ds) - 1; i >= 0; i-- {
		if ds[i] != nil {
			h = ds[i](h)
		}
	}
	return h
}

// LogDecorator is [Logged] as a [Decorator].
func LogDecorator[F any](opts ...Option) Decorator[F] {
	return func(h prog.Host[F]) prog.Host[F] { return Logged(h, opts...) }
}

// TraceDecorator is [Traced] as a [Decorator].
func TraceDecorator[F any](opts ...Option) Decorator[F] {
	return func(h prog.Host[F]) prog.Host[F] { return Traced(h, opts...) }
}

// MeterDecorator is [Metered] as a [Decorator].
func MeterDecorator[F any](m *Metrics, opts ...Option) Decorator[F] {
	return func(h prog.Host[F]) prog.Host[F] { return Metered(h, m, opts...) }
}

// RecordDecorator installs r between the decorators above it and the host
// below it. r must have been created with a nil inner host, and the
// decorator may be applied once: installing r a second time panics instead
// of redirecting the first chain's effects.
func RecordDecorator[F any](r *Recorder[F]) Decorator[F] {
	return func(h prog.Host[F]) prog.Host[F] {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.inner != nil {
			panic("host: recorder already has an inner host")
		}
		r.inner = h
		return r
	}
}
