// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prog

// tag selects the meaningful fields of a node.
type tag uint8

const (
	tagDone tag = iota
	tagEffect
	tagBind
)

// node is the type-erased program graph shared by every Program
// instantiation. Result types are erased so that a bind node can join a
// source of one result type to a continuation producing another; they are
// recovered at the typed boundaries by narrow.
type node[F any] struct {
	tag tag
	out Outcome[Erased]                // tagDone
	op  F                              // tagEffect
	src *node[F]                       // tagBind
	k   func(Outcome[Erased]) *node[F] // tagBind
}

func done[F any](o Outcome[Erased]) *node[F] {
	return &node[F]{tag: tagDone, out: o}
}

func bind[F any](src *node[F], k func(Outcome[Erased]) *node[F]) *node[F] {
	return &node[F]{tag: tagBind, src: src, k: k}
}

// Program is a suspended computation over the effect family F producing a
// value of type R.
//
// A Program is an immutable description: building one never executes an
// effect, and the same value may be unrolled or run any number of times,
// each run starting from scratch. It is one of
//
//   - a finished leaf holding an [Outcome] ([Done], [Pure], [Fail], [Interrupt]),
//   - an uninterpreted effect ([Perform]),
//   - a bind joining a source program to a continuation over its outcome
//     ([TransformWith] and the combinators derived from it).
//
// The zero Program succeeds with the zero value of R.
type Program[F, R any] struct {
	n *node[F]
}

func (p Program[F, R]) root() *node[F] {
	if p.n == nil {
		return done[F](Outcome[Erased]{})
	}
	return p.n
}

// Done lifts a finished outcome into a program.
func Done[F, R any](o Outcome[R]) Program[F, R] {
	return Program[F, R]{n: done[F](erase(o))}
}

// Pure returns a program that has succeeded with v.
func Pure[F, R any](v R) Program[F, R] {
	return Done[F](Succeeded(v))
}

// Fail returns a program that has failed with err.
func Fail[F, R any](err error) Program[F, R] {
	return Done[F](Failed[R](err))
}

// Interrupt returns a program that has been interrupted by scope.
// deferred is surfaced by [Run] as the program's error; it may be nil.
func Interrupt[F, R any](scope any, deferred error) Program[F, R] {
	return Done[F](Interrupted[R](scope, deferred))
}

// Perform returns a program that performs op and succeeds with its result.
// The host executing op must produce a value of type R; any other dynamic
// type makes the program fail with a [TypeError].
func Perform[F, R any](op F) Program[F, R] {
	return Program[F, R]{n: &node[F]{tag: tagEffect, op: op}}
}

// unit returns a fresh trivially successful leaf.
func unit[F any]() *node[F] {
	return done[F](Outcome[Erased]{value: struct{}{}})
}

// Suspend defers building a program until it is unrolled. It is a bind on a
// trivial success leaf, so recursive definitions built from Suspend are
// stack-safe to construct as well as to run.
func Suspend[F, R any](thunk func() Program[F, R]) Program[F, R] {
	return Program[F, R]{n: bind(unit[F](), func(Outcome[Erased]) *node[F] {
		return thunk().root()
	})}
}

// TransformWith sequences f after p. f receives the full outcome of p,
// whether it succeeded, failed or was interrupted.
//
// TransformWith is the primitive of the algebra; FlatMap, Map and
// HandleErrorWith are derived from the same bind node.
func TransformWith[F, A, B any](p Program[F, A], f func(Outcome[A]) Program[F, B]) Program[F, B] {
	return Program[F, B]{n: bind(p.root(), func(o Outcome[Erased]) *node[F] {
		return f(narrow[A](o)).root()
	})}
}

// FlatMap sequences f after p succeeds. Failure and interruption propagate
// unchanged without calling f. A panic in f fails the program with a
// [PanicError].
func FlatMap[F, A, B any](p Program[F, A], f func(A) Program[F, B]) Program[F, B] {
	return Program[F, B]{n: bind(p.root(), func(o Outcome[Erased]) *node[F] {
		if o.kind != KindSucceeded {
			return done[F](o)
		}
		a := narrow[A](o)
		if a.kind != KindSucceeded {
			return done[F](erase(a))
		}
		return f(a.value).root()
	})}
}

// Map applies f to the success value of p.
func Map[F, A, B any](p Program[F, A], f func(A) B) Program[F, B] {
	return FlatMap(p, func(a A) Program[F, B] {
		return Pure[F](f(a))
	})
}

// Then runs next after p succeeds, discarding the value of p.
func Then[F, A, B any](p Program[F, A], next Program[F, B]) Program[F, B] {
	return FlatMap(p, func(A) Program[F, B] {
		return next
	})
}

// HandleErrorWith runs h on the error when p fails. Success and interruption
// pass through; interruption is never recovered by an error handler.
// A success value of the wrong dynamic type counts as a failure of p, so h
// receives its [TypeError]. A panic in h fails the program with a [PanicError].
func HandleErrorWith[F, R any](p Program[F, R], h func(error) Program[F, R]) Program[F, R] {
	return Program[F, R]{n: bind(p.root(), func(o Outcome[Erased]) *node[F] {
		switch o.kind {
		case KindInterrupted:
			return done[F](o)
		case KindSucceeded:
			r := narrow[R](o)
			if r.kind == KindSucceeded {
				return done[F](o)
			}
			o = erase(r)
		}
		return h(o.err).root()
	})}
}
