// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prog

import "sync/atomic"

// Stepping boundary for external runtimes.
// View exposes one unrolled step at a time; Run drives the same loop to
// completion against a Host.

// View is a program unrolled by one step. It is either terminal, holding the
// program's [Outcome], or pending on exactly one effect with the
// [Continuation] that consumes the effect's outcome.
//
// Example:
//
//	v := p.View()
//	for {
//	    if o, ok := v.Terminal(); ok {
//	        return o
//	    }
//	    op, next, _ := v.Step()
//	    res, err := execute(op)
//	    v = next.Resume(prog.FromResult[prog.Erased](res, err)).View()
//	}
type View[F, R any] struct {
	out  Outcome[R]
	op   F
	next *Continuation[F, R]
}

// View unrolls p until it is finished or pending on one effect.
// Stack usage does not grow with the depth of binds and suspensions in p.
// Each [InjectFailure] or [Translate] layer wrapped around p adds one frame.
func (p Program[F, R]) View() View[F, R] {
	u := unroll(p.root())
	if u.tag == tagDone {
		return View[F, R]{out: narrow[R](u.out)}
	}
	return View[F, R]{op: u.src.op, next: &Continuation[F, R]{k: u.k}}
}

// IsTerminal reports whether v holds a finished outcome.
func (v View[F, R]) IsTerminal() bool { return v.next == nil }

// Terminal returns the outcome and true if v is finished.
func (v View[F, R]) Terminal() (Outcome[R], bool) {
	if v.next != nil {
		return Outcome[R]{}, false
	}
	return v.out, true
}

// Step returns the pending effect and its continuation, or false if v is
// finished.
func (v View[F, R]) Step() (F, *Continuation[F, R], bool) {
	if v.next == nil {
		var zero F
		return zero, nil, false
	}
	return v.op, v.next, true
}

// Continuation is the rest of a program after one pending effect.
//
// A Continuation is affine: it may be resumed at most once. Resume panics on
// reuse, TryResume reports it, and Discard drops the continuation explicitly.
type Continuation[F, R any] struct {
	used atomic.Uintptr
	k    func(Outcome[Erased]) *node[F]
}

// Resume feeds the outcome of the pending effect to the continuation and
// returns the rest of the program. A panic inside the continuation becomes a
// [PanicError] failure of the returned program.
// Panics if the continuation has already been resumed or discarded.
func (c *Continuation[F, R]) Resume(o Outcome[Erased]) Program[F, R] {
	if c.used.Add(1) != 1 {
		panic("prog: continuation resumed twice")
	}
	return Program[F, R]{n: apply(c.k, o)}
}

// TryResume is the non-panicking form of Resume.
// Returns (program, true) on success, or (zero, false) if already used.
func (c *Continuation[F, R]) TryResume(o Outcome[Erased]) (Program[F, R], bool) {
	if c.used.Add(1) != 1 {
		return Program[F, R]{}, false
	}
	return Program[F, R]{n: apply(c.k, o)}, true
}

// Discard marks the continuation as consumed without resuming it.
func (c *Continuation[F, R]) Discard() {
	c.used.Store(1)
}
