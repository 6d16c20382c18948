// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prog

import (
	"fmt"
	"reflect"
)

// Erased represents a type-erased value flowing between an effect and the
// program consuming its result. Concrete types are recovered with a checked
// type assertion at each typed boundary; a mismatch becomes a [TypeError]
// failure.
type Erased = any

// Kind classifies an [Outcome].
type Kind uint8

const (
	// KindSucceeded marks an outcome carrying a value.
	KindSucceeded Kind = iota
	// KindFailed marks an outcome carrying an error.
	KindFailed
	// KindInterrupted marks an outcome that stopped cooperatively.
	KindInterrupted
)

func (k Kind) String() string {
	switch k {
	case KindSucceeded:
		return "succeeded"
	case KindFailed:
		return "failed"
	case KindInterrupted:
		return "interrupted"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ExitCase tells a release action how the guarded computation ended.
type ExitCase uint8

const (
	// ExitCompleted means the computation succeeded.
	ExitCompleted ExitCase = iota
	// ExitErrored means the computation failed.
	ExitErrored
	// ExitCanceled means the computation was interrupted.
	ExitCanceled
)

func (c ExitCase) String() string {
	switch c {
	case ExitCompleted:
		return "completed"
	case ExitErrored:
		return "errored"
	case ExitCanceled:
		return "canceled"
	}
	return fmt.Sprintf("ExitCase(%d)", uint8(c))
}

// Outcome is the terminal state of a finished computation: it succeeded with
// a value, failed with an error, or was interrupted.
//
// An interrupted outcome carries the caller-supplied scope that triggered the
// interruption (see [Scope]) and, optionally, a deferred error that arose
// while the interruption was being handled.
//
// The zero Outcome has succeeded with the zero value of R.
type Outcome[R any] struct {
	kind  Kind
	value R
	err   error // failure error, or deferred error when interrupted
	scope any
}

// Succeeded returns an outcome that succeeded with v.
func Succeeded[R any](v R) Outcome[R] {
	return Outcome[R]{kind: KindSucceeded, value: v}
}

// Failed returns an outcome that failed with err.
// A nil err is replaced by [ErrNilFailure].
func Failed[R any](err error) Outcome[R] {
	if err == nil {
		err = ErrNilFailure
	}
	return Outcome[R]{kind: KindFailed, err: err}
}

// Interrupted returns an outcome interrupted by scope. deferred may be nil.
func Interrupted[R any](scope any, deferred error) Outcome[R] {
	return Outcome[R]{kind: KindInterrupted, err: deferred, scope: scope}
}

// Unit is the outcome that succeeded with no payload.
func Unit() Outcome[struct{}] {
	return Outcome[struct{}]{}
}

// FromResult converts a Go (value, error) pair into an outcome.
// v is ignored when err is non-nil.
func FromResult[R any](v R, err error) Outcome[R] {
	if err != nil {
		return Failed[R](err)
	}
	return Succeeded(v)
}

// FromEither converts Right into success and Left into failure.
func FromEither[R any](e Either[error, R]) Outcome[R] {
	if v, ok := e.GetRight(); ok {
		return Succeeded(v)
	}
	err, _ := e.GetLeft()
	return Failed[R](err)
}

// Kind returns the classification of o.
func (o Outcome[R]) Kind() Kind { return o.kind }

// IsSucceeded reports whether o carries a value.
func (o Outcome[R]) IsSucceeded() bool { return o.kind == KindSucceeded }

// IsFailed reports whether o carries a failure.
func (o Outcome[R]) IsFailed() bool { return o.kind == KindFailed }

// IsInterrupted reports whether o was interrupted.
func (o Outcome[R]) IsInterrupted() bool { return o.kind == KindInterrupted }

// Value returns the success value and true, or zero and false.
func (o Outcome[R]) Value() (R, bool) {
	if o.kind == KindSucceeded {
		return o.value, true
	}
	var zero R
	return zero, false
}

// Err returns the failure error and true, or nil and false.
// The deferred error of an interrupted outcome is returned by [Outcome.Interruption].
func (o Outcome[R]) Err() (error, bool) {
	if o.kind == KindFailed {
		return o.err, true
	}
	return nil, false
}

// Interruption returns the scope and deferred error of an interrupted outcome.
func (o Outcome[R]) Interruption() (scope any, deferred error, ok bool) {
	if o.kind == KindInterrupted {
		return o.scope, o.err, true
	}
	return nil, nil, false
}

// Classify maps success to ExitCompleted, failure to ExitErrored and
// interruption to ExitCanceled.
func (o Outcome[R]) Classify() ExitCase {
	switch o.kind {
	case KindFailed:
		return ExitErrored
	case KindInterrupted:
		return ExitCanceled
	}
	return ExitCompleted
}

// Either converts o into Right(value) or Left(error). An interrupted outcome
// becomes Left of its deferred error, which may be nil.
func (o Outcome[R]) Either() Either[error, R] {
	if o.kind == KindSucceeded {
		return Right[error](o.value)
	}
	return Left[error, R](o.err)
}

func (o Outcome[R]) String() string {
	switch o.kind {
	case KindFailed:
		return fmt.Sprintf("Failed(%v)", o.err)
	case KindInterrupted:
		if o.err != nil {
			return fmt.Sprintf("Interrupted(%v, %v)", o.scope, o.err)
		}
		return fmt.Sprintf("Interrupted(%v)", o.scope)
	}
	return fmt.Sprintf("Succeeded(%v)", o.value)
}

// MapOutcome applies f to the success value. Failure and interruption pass
// through without calling f. A panic in f becomes a [PanicError] failure.
func MapOutcome[A, B any](o Outcome[A], f func(A) B) Outcome[B] {
	return FlatMapOutcome(o, func(a A) Outcome[B] { return Succeeded(f(a)) })
}

// FlatMapOutcome sequences f after o. Failure and interruption short-circuit:
// f is never called for them. A panic in f becomes a [PanicError] failure.
func FlatMapOutcome[A, B any](o Outcome[A], f func(A) Outcome[B]) Outcome[B] {
	if o.kind != KindSucceeded {
		return retype[A, B](o)
	}
	return guardOutcome(f, o.value)
}

// RecoverWith applies f to the error of a failed outcome and passes every
// other outcome through. If f panics, the result is the composite of the
// original failure and the panic.
func RecoverWith[R any](o Outcome[R], f func(error) Outcome[R]) (out Outcome[R]) {
	if o.kind != KindFailed {
		return o
	}
	defer func() {
		if r := recover(); r != nil {
			out = Failed[R](Combine(o.err, panicked(r)))
		}
	}()
	return f(o.err)
}

// guardOutcome calls f(a), converting a panic into a failure.
func guardOutcome[A, B any](f func(A) Outcome[B], a A) (out Outcome[B]) {
	defer func() {
		if r := recover(); r != nil {
			out = Failed[B](panicked(r))
		}
	}()
	return f(a)
}

// retype reinterprets a non-success outcome at another result type.
func retype[A, B any](o Outcome[A]) Outcome[B] {
	return Outcome[B]{kind: o.kind, err: o.err, scope: o.scope}
}

// erase forgets the static result type of o.
func erase[R any](o Outcome[R]) Outcome[Erased] {
	if o.kind != KindSucceeded {
		return retype[R, Erased](o)
	}
	return Outcome[Erased]{value: o.value}
}

// narrow recovers the static result type R of an erased outcome.
// A nil success value narrows to the zero value of R.
func narrow[R any](o Outcome[Erased]) Outcome[R] {
	if o.kind != KindSucceeded {
		return retype[Erased, R](o)
	}
	if o.value == nil {
		return Outcome[R]{}
	}
	v, ok := o.value.(R)
	if !ok {
		return Failed[R](&TypeError{
			Want: reflect.TypeFor[R]().String(),
			Got:  fmt.Sprintf("%T", o.value),
		})
	}
	return Succeeded(v)
}
