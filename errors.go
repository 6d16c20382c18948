// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prog

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// ErrNilFailure is carried by a failure that was constructed from a nil error.
// A failed outcome always holds a non-nil error.
var ErrNilFailure = errors.New("prog: failure with nil error")

// PanicError is the failure produced when a caller-supplied function panics.
// The driver, the unrolling engine and every combinator recover such panics
// at the call site and continue with a failed outcome instead.
//
// Failures built from a recovered panic are wrapped with a stack trace;
// format them with %+v to print it. Use errors.As to get the *PanicError back.
type PanicError struct {
	// Value is the value passed to panic.
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("prog: panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error, so that errors.Is and
// errors.As see through a recovered panic(err).
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// panicked converts a recovered value into a failure error.
func panicked(r any) error {
	return errors.WithStack(&PanicError{Value: r})
}

// TypeError reports an effect result whose dynamic type does not match the
// static result type of the program consuming it.
type TypeError struct {
	Want string
	Got  string
}

func (e *TypeError) Error() string {
	return "prog: result type mismatch: want " + e.Want + ", got " + e.Got
}

// Combine merges two independent failures into one composite error.
//
// The primary error comes first. Nil arguments are dropped, and composites
// are flattened, so Combine(Combine(a, b), c) reports a, b and c in order.
// Errors returns the parts.
func Combine(primary, secondary error) error {
	return multierr.Append(primary, secondary)
}

// Errors returns the individual failures of a composite built by [Combine].
// A plain error is returned as a one-element slice; nil yields nil.
func Errors(err error) []error {
	return multierr.Errors(err)
}
