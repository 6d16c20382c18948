// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prog

import "context"

// Host is the capability that executes effects on behalf of [Run].
//
// Execute runs one operation and returns its result, or an error. The value
// must have the dynamic type expected by the program that performed op.
// A panic in Execute is recovered by the driver and treated as a failure of
// that effect, so Execute never needs to guard itself.
type Host[F any] interface {
	Execute(ctx context.Context, op F) (Erased, error)
}

// HostFunc adapts an ordinary function to [Host].
//
// Example:
//
//	h := prog.HostFunc[Console](func(ctx context.Context, op Console) (prog.Erased, error) {
//	    switch op := op.(type) {
//	    case ReadLine:
//	        return reader.ReadString('\n')
//	    case WriteLine:
//	        _, err := fmt.Println(op.Text)
//	        return struct{}{}, err
//	    }
//	    return nil, fmt.Errorf("unknown op %T", op)
//	})
type HostFunc[F any] func(ctx context.Context, op F) (Erased, error)

// Execute calls f(ctx, op).
func (f HostFunc[F]) Execute(ctx context.Context, op F) (Erased, error) {
	return f(ctx, op)
}

// attempt executes one effect and captures any failure as an outcome.
func attempt[F any](ctx context.Context, h Host[F], op F) (o Outcome[Erased]) {
	defer func() {
		if r := recover(); r != nil {
			o = Failed[Erased](panicked(r))
		}
	}()
	v, err := h.Execute(ctx, op)
	return FromResult(v, err)
}

// RunOutcome drives p to completion with h and returns the terminal outcome.
//
// Each iteration unrolls the program to its next pending effect, executes
// that effect exactly once, and feeds the outcome to the continuation. The
// loop is iterative: neither the number of effects nor the shape of p grows
// the stack. ctx is passed to every Execute call; RunOutcome itself does not
// watch it, since interruption is expressed by outcomes, not by signals.
func RunOutcome[F, R any](ctx context.Context, p Program[F, R], h Host[F]) Outcome[R] {
	n := p.root()
	for {
		u := unroll(n)
		if u.tag == tagDone {
			return narrow[R](u.out)
		}
		n = apply(u.k, attempt(ctx, h, u.src.op))
	}
}

// Run drives p to completion with h and reports the result the Go way:
//
//   - success: (value, true, nil)
//   - failure: (zero, false, err)
//   - interruption with a deferred error: (zero, false, deferred)
//   - interruption without one: (zero, false, nil)
func Run[F, R any](ctx context.Context, p Program[F, R], h Host[F]) (R, bool, error) {
	o := RunOutcome(ctx, p, h)
	if o.kind == KindSucceeded {
		return o.value, true, nil
	}
	var zero R
	return zero, false, o.err
}
