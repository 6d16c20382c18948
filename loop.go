// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prog

// IterateUntilDone runs step from seed until it returns Right, a failure or
// an interruption. Left(s) continues with state s.
//
// The iteration is a loop, so the number of steps is bounded only by step
// itself, never by the call stack. A panic in step becomes a [PanicError]
// failure.
func IterateUntilDone[S, R any](seed S, step func(S) Outcome[Either[S, R]]) Outcome[R] {
	s := seed
	for {
		o := guardOutcome(step, s)
		if o.kind != KindSucceeded {
			return retype[Either[S, R], R](o)
		}
		next, more := o.value.GetLeft()
		if !more {
			r, _ := o.value.GetRight()
			return Succeeded(r)
		}
		s = next
	}
}
