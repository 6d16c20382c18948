// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prog

// identityK is the continuation of a bare effect: the effect's outcome is the
// program's outcome. Named generic function produces a static function value
// per type instantiation, avoiding a closure allocation per unroll.
func identityK[F any](o Outcome[Erased]) *node[F] {
	return done[F](o)
}

// apply invokes a continuation. A panic becomes a failed leaf and a nil
// result becomes the zero success leaf, so the caller always gets a node.
func apply[F any](k func(Outcome[Erased]) *node[F], o Outcome[Erased]) (n *node[F]) {
	defer func() {
		if r := recover(); r != nil {
			n = done[F](Failed[Erased](panicked(r)))
		}
	}()
	if n = k(o); n == nil {
		n = done[F](Outcome[Erased]{})
	}
	return n
}

// unroll rewrites n until it is either a finished leaf or a bind whose source
// is an effect: exactly one pending operation plus its continuation.
//
// The loop never recurses. A bind whose source is itself a bind is
// re-associated to the right,
//
//	Bind(Bind(w, g), f)  →  Bind(w, x => Bind(g(x), f))
//
// so left-nested chains of any depth unroll in constant stack.
func unroll[F any](n *node[F]) *node[F] {
	for {
		switch n.tag {
		case tagDone:
			return n
		case tagEffect:
			return bind(n, identityK[F])
		}
		src := n.src
		switch src.tag {
		case tagDone:
			n = apply(n.k, src.out)
		case tagEffect:
			return n
		default:
			g, f := src.k, n.k
			n = bind(src.src, func(o Outcome[Erased]) *node[F] {
				return bind(apply(g, o), f)
			})
		}
	}
}
