// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prog_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"code.hybscloud.com/prog"
)

// op is the effect family used throughout the tests.
type op interface{ isOp() }

type ask struct{}              // resumes with env.value
type tell struct{ Msg string } // appends Msg to env.told
type fail struct{ Err error }  // host returns Err
type echo struct{ V any }      // resumes with V
type explode struct{}          // host panics

func (ask) isOp()     {}
func (tell) isOp()    {}
func (fail) isOp()    {}
func (echo) isOp()    {}
func (explode) isOp() {}

// env is a deterministic host recording every executed operation.
type env struct {
	value    int
	told     []string
	executed []op
}

func newEnv() *env { return &env{value: 21} }

func (e *env) Execute(_ context.Context, o op) (prog.Erased, error) {
	e.executed = append(e.executed, o)
	switch o := o.(type) {
	case ask:
		return e.value, nil
	case tell:
		e.told = append(e.told, o.Msg)
		return struct{}{}, nil
	case fail:
		return nil, o.Err
	case echo:
		return o.V, nil
	case explode:
		panic("host exploded")
	}
	return nil, fmt.Errorf("unknown op %T", o)
}

func run[R any](p prog.Program[op, R]) (prog.Outcome[R], *env) {
	e := newEnv()
	return prog.RunOutcome(context.Background(), p, e), e
}

func askP() prog.Program[op, int] { return prog.Perform[op, int](ask{}) }

func tellP(msg string) prog.Program[op, struct{}] {
	return prog.Perform[op, struct{}](tell{Msg: msg})
}

func echoP(v int) prog.Program[op, int] { return prog.Perform[op, int](echo{V: v}) }

// snapshot is a comparable rendering of an outcome.
type snapshot struct {
	Kind     string
	Value    any
	Err      string
	Scope    string
	Deferred string
}

func snap[R any](o prog.Outcome[R]) snapshot {
	s := snapshot{Kind: o.Kind().String()}
	if v, ok := o.Value(); ok {
		s.Value = v
	}
	if err, ok := o.Err(); ok {
		s.Err = err.Error()
	}
	if scope, deferred, ok := o.Interruption(); ok {
		s.Scope = fmt.Sprint(scope)
		if deferred != nil {
			s.Deferred = deferred.Error()
		}
	}
	return s
}

func assertOutcome[R any](t *testing.T, got, want prog.Outcome[R]) {
	t.Helper()
	if diff := cmp.Diff(snap(want), snap(got)); diff != "" {
		t.Fatalf("outcome mismatch (-want +got):\n%s", diff)
	}
}

func assertOps(t *testing.T, got, want []op) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b error) bool { return a == b })); diff != "" {
		t.Fatalf("executed ops mismatch (-want +got):\n%s", diff)
	}
}
