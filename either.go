// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prog

// Either is a two-case value: Left or Right.
//
// It is the external result shape accepted by [FromEither] and the step
// result of [IterateUntilDone], where Left means "continue with this state"
// and Right means "done with this result".
type Either[L, A any] struct {
	isRight bool
	left    L
	right   A
}

// Left creates a Left value.
func Left[L, A any](l L) Either[L, A] {
	return Either[L, A]{left: l}
}

// Right creates a Right value.
func Right[L, A any](a A) Either[L, A] {
	return Either[L, A]{isRight: true, right: a}
}

// IsLeft reports whether e is a Left value.
func (e Either[L, A]) IsLeft() bool { return !e.isRight }

// IsRight reports whether e is a Right value.
func (e Either[L, A]) IsRight() bool { return e.isRight }

// GetLeft returns the Left value and true, or zero and false.
func (e Either[L, A]) GetLeft() (L, bool) {
	if !e.isRight {
		return e.left, true
	}
	var zero L
	return zero, false
}

// GetRight returns the Right value and true, or zero and false.
func (e Either[L, A]) GetRight() (A, bool) {
	if e.isRight {
		return e.right, true
	}
	var zero A
	return zero, false
}

// MatchEither calls onLeft or onRight depending on the case of e.
func MatchEither[L, A, T any](e Either[L, A], onLeft func(L) T, onRight func(A) T) T {
	if e.isRight {
		return onRight(e.right)
	}
	return onLeft(e.left)
}
