// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prog

// InjectFailure injects err into p from outside, without executing any of
// p's remaining effects.
//
// p is unrolled by one step when the returned program is unrolled:
//
//   - Succeeded becomes Failed(err).
//   - Failed(e0) becomes Failed(Combine(e0, err)).
//   - Interrupted(scope, d) becomes Interrupted(scope, Combine(d, err)),
//     which is Interrupted(scope, err) when there was no deferred error.
//   - A pending effect is dropped unexecuted and Failed(err) is fed to its
//     continuation, so handlers and finalizers downstream of it still run.
//
// A nil err is replaced by [ErrNilFailure]. Each layer of InjectFailure
// costs one stack frame when unrolled; the depth of p itself does not.
func InjectFailure[F, R any](p Program[F, R], err error) Program[F, R] {
	if err == nil {
		err = ErrNilFailure
	}
	return Program[F, R]{n: bind(unit[F](), func(Outcome[Erased]) *node[F] {
		u := unroll(p.root())
		if u.tag != tagDone {
			return apply(u.k, Failed[Erased](err))
		}
		o := u.out
		switch o.kind {
		case KindFailed:
			return done[F](Failed[Erased](Combine(o.err, err)))
		case KindInterrupted:
			return done[F](Interrupted[Erased](o.scope, Combine(o.err, err)))
		}
		return done[F](Failed[Erased](err))
	})}
}
