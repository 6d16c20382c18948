// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prog

// Translate reinterprets p under the effect family G by rewriting every
// effect with t. Sequencing, error handling and interruption are preserved.
//
// A bare effect is rewritten at once. Otherwise translation is lazy: each
// effect is rewritten when the translated program reaches it, so t runs once
// per reached effect. Finished leaves are carried over without calling t.
// Nesting Translate costs one stack frame per layer when unrolled; the depth
// of p itself does not.
//
// If t panics, the translated program ends at that point with a [PanicError]
// failure; the untranslatable effect's continuation is not run.
//
// Translate is a functor homomorphism:
//
//	Translate(Pure(x), t) ≡ Pure(x)
//	Translate(Translate(p, t1), t2) ≡ Translate(p, func(op F) H { return t2(t1(op)) })
func Translate[F, G, R any](p Program[F, R], t func(F) G) Program[G, R] {
	n := p.root()
	switch n.tag {
	case tagDone:
		return Program[G, R]{n: done[G](n.out)}
	case tagEffect:
		return Program[G, R]{n: translateOp(n.op, t)}
	}
	return Program[G, R]{n: bind(unit[G](), func(Outcome[Erased]) *node[G] {
		return translate(n, t)
	})}
}

// translate unrolls n by one step and rebuilds that step under G. The rest of
// the program is translated on demand inside the continuation.
func translate[F, G any](n *node[F], t func(F) G) *node[G] {
	u := unroll(n)
	if u.tag == tagDone {
		return done[G](u.out)
	}
	eff := translateOp(u.src.op, t)
	if eff.tag == tagDone {
		return eff
	}
	k := u.k
	return bind(eff, func(o Outcome[Erased]) *node[G] {
		return translate(apply(k, o), t)
	})
}

// translateOp rewrites a single effect, failing instead of panicking.
func translateOp[F, G any](op F, t func(F) G) (n *node[G]) {
	defer func() {
		if r := recover(); r != nil {
			n = done[G](Failed[Erased](panicked(r)))
		}
	}()
	return &node[G]{tag: tagEffect, op: t(op)}
}
