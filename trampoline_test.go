// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prog_test

import (
	"errors"
	"runtime/debug"
	"strconv"
	"testing"

	"code.hybscloud.com/prog"
)

const deep = 100_000

// smallStack caps goroutine stacks for the duration of the test, so that any
// recursion proportional to program depth crashes instead of passing.
func smallStack(t *testing.T) {
	t.Helper()
	old := debug.SetMaxStack(8 << 20)
	t.Cleanup(func() { debug.SetMaxStack(old) })
}

func TestDeepLeftNestedFlatMap(t *testing.T) {
	smallStack(t)
	p := prog.Pure[op](0)
	for range deep {
		p = prog.FlatMap(p, func(x int) prog.Program[op, int] {
			return prog.Pure[op](x + 1)
		})
	}
	o, _ := run(p)
	assertOutcome(t, o, prog.Succeeded(deep))
}

func TestDeepLeftNestedMapOverEffect(t *testing.T) {
	smallStack(t)
	p := askP()
	for range deep {
		p = prog.Map(p, func(x int) int { return x + 1 })
	}
	o, e := run(p)
	assertOutcome(t, o, prog.Succeeded(21+deep))
	if len(e.executed) != 1 {
		t.Fatalf("executed %d effects, want 1", len(e.executed))
	}
}

func TestDeepEffectChain(t *testing.T) {
	smallStack(t)
	p := prog.Pure[op](0)
	for range deep {
		p = prog.FlatMap(p, func(x int) prog.Program[op, int] {
			return echoP(x + 1)
		})
	}
	o, e := run(p)
	assertOutcome(t, o, prog.Succeeded(deep))
	if len(e.executed) != deep {
		t.Fatalf("executed %d effects, want %d", len(e.executed), deep)
	}
}

func TestDeepRightNestedRecursion(t *testing.T) {
	smallStack(t)
	var loop func(int) prog.Program[op, int]
	loop = func(i int) prog.Program[op, int] {
		return prog.FlatMap(echoP(i), func(x int) prog.Program[op, int] {
			if x == deep {
				return prog.Pure[op](x)
			}
			return loop(x + 1)
		})
	}
	o, e := run(loop(1))
	assertOutcome(t, o, prog.Succeeded(deep))
	if len(e.executed) != deep {
		t.Fatalf("executed %d effects, want %d", len(e.executed), deep)
	}
}

func TestDeepSuspendRecursion(t *testing.T) {
	smallStack(t)
	var count func(int) prog.Program[op, int]
	count = func(i int) prog.Program[op, int] {
		return prog.Suspend(func() prog.Program[op, int] {
			if i == 0 {
				return prog.Pure[op](0)
			}
			return prog.Map(count(i-1), func(x int) int { return x + 1 })
		})
	}
	o, _ := run(count(deep))
	assertOutcome(t, o, prog.Succeeded(deep))
}

func TestDeepHandleErrorWith(t *testing.T) {
	smallStack(t)
	boom := errors.New("boom")
	handled := 0
	p := prog.Perform[op, int](fail{Err: boom})
	for range deep {
		p = prog.HandleErrorWith(p, func(err error) prog.Program[op, int] {
			handled++
			return prog.Fail[op, int](err)
		})
	}
	o, _ := run(p)
	assertOutcome(t, o, prog.Failed[int](boom))
	if handled != deep {
		t.Fatalf("handled %d times, want %d", handled, deep)
	}
}

func TestDeepFailureSkipsContinuations(t *testing.T) {
	smallStack(t)
	boom := errors.New("boom")
	p := prog.Fail[op, int](boom)
	for range deep {
		p = prog.FlatMap(p, func(x int) prog.Program[op, int] {
			t.Fatal("continuation called after failure")
			return prog.Pure[op](x)
		})
	}
	o, _ := run(p)
	assertOutcome(t, o, prog.Failed[int](boom))
}

func TestDeepView(t *testing.T) {
	smallStack(t)
	p := askP()
	for range deep {
		p = prog.Map(p, func(x int) int { return x + 1 })
	}
	_, next, ok := p.View().Step()
	if !ok {
		t.Fatal("expected a pending effect")
	}
	o, _ := next.Resume(prog.Succeeded[prog.Erased](0)).View().Terminal()
	assertOutcome(t, o, prog.Succeeded(deep))
}

func TestReassociationPreservesBehavior(t *testing.T) {
	inc := func(x int) prog.Program[op, int] {
		return prog.Then(tellP(strconv.Itoa(x)), echoP(x+1))
	}

	left := askP()
	for range 5 {
		left = prog.FlatMap(left, inc)
	}

	var right func(int, int) prog.Program[op, int]
	right = func(x, n int) prog.Program[op, int] {
		if n == 0 {
			return prog.Pure[op](x)
		}
		return prog.FlatMap(inc(x), func(y int) prog.Program[op, int] {
			return right(y, n-1)
		})
	}
	rightP := prog.FlatMap(askP(), func(x int) prog.Program[op, int] { return right(x, 5) })

	lo, le := run(left)
	ro, re := run(rightP)
	assertOutcome(t, lo, ro)
	assertOutcome(t, lo, prog.Succeeded(26))
	assertOps(t, le.executed, re.executed)
}

func TestReassociationPanicInInnerContinuation(t *testing.T) {
	inner := prog.FlatMap(askP(), func(int) prog.Program[op, int] {
		panic("inner")
	})
	recovered := false
	p := prog.TransformWith(inner, func(o prog.Outcome[int]) prog.Program[op, int] {
		var pe *prog.PanicError
		err, _ := o.Err()
		recovered = errors.As(err, &pe)
		return prog.Pure[op](1)
	})
	o, _ := run(p)
	assertOutcome(t, o, prog.Succeeded(1))
	if !recovered {
		t.Fatal("outer continuation did not see the inner panic as a failure")
	}
}
