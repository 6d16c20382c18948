// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prog

// Resource safety primitives.
// They own no resources; they only sequence the caller's programs so that a
// release runs exactly once after every successful acquire.

// Bracket runs acquire, then use, then release, where release is guaranteed
// to run once whenever acquire succeeded, however use ended.
//
//   - If acquire fails or is interrupted, its outcome is returned and neither
//     use nor release is called.
//   - release receives the resource and the [ExitCase] of use.
//   - If release succeeds (or is interrupted), the outcome of use is returned.
//   - If release fails after use failed, the result is the composite
//     Combine(useErr, releaseErr).
//   - If release fails after use succeeded or was interrupted, the result is
//     the release failure.
//
// A panic while building use(a) or release(a, c) counts as a failure of that
// step.
func Bracket[F, A, B any](
	acquire Program[F, A],
	use func(A) Program[F, B],
	release func(A, ExitCase) Program[F, struct{}],
) Program[F, B] {
	return FlatMap(acquire, func(a A) Program[F, B] {
		used := Suspend(func() Program[F, B] { return use(a) })
		return TransformWith(used, func(o Outcome[B]) Program[F, B] {
			released := Suspend(func() Program[F, struct{}] { return release(a, o.Classify()) })
			return TransformWith(released, func(r Outcome[struct{}]) Program[F, B] {
				releaseErr, failed := r.Err()
				if !failed {
					return Done[F](o)
				}
				if o.IsFailed() {
					return Done[F](RecoverWith(o, func(useErr error) Outcome[B] {
						return Failed[B](Combine(useErr, releaseErr))
					}))
				}
				return Fail[F, B](releaseErr)
			})
		})
	})
}

// Ensure runs finalizer after p however p ended. A failing finalizer is
// combined with a failure of p, or replaces any other outcome.
func Ensure[F, R any](p Program[F, R], finalizer Program[F, struct{}]) Program[F, R] {
	return Bracket(
		Pure[F](struct{}{}),
		func(struct{}) Program[F, R] { return p },
		func(struct{}, ExitCase) Program[F, struct{}] { return finalizer },
	)
}

// OnError runs cleanup only if p fails, then fails with the original error.
// If cleanup fails too, the failures are combined.
// Success and interruption skip cleanup.
func OnError[F, R any](p Program[F, R], cleanup func(error) Program[F, struct{}]) Program[F, R] {
	return HandleErrorWith(p, func(err error) Program[F, R] {
		cleaned := Suspend(func() Program[F, struct{}] { return cleanup(err) })
		return TransformWith(cleaned, func(r Outcome[struct{}]) Program[F, R] {
			if cleanupErr, failed := r.Err(); failed {
				return Fail[F, R](Combine(err, cleanupErr))
			}
			return Fail[F, R](err)
		})
	})
}
