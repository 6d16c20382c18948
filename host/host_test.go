// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package host_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/prog"
	"code.hybscloud.com/prog/host"
)

// store is the effect family used by the host tests.
type store interface{ store() }

// getUser runs itself and resolves an id to a name.
type getUser struct{ ID int }

// deleteUser always fails.
type deleteUser struct{ ID int }

// rawQuery does not implement host.Executor.
type rawQuery struct{ SQL string }

var errForbidden = errors.New("forbidden")

func (getUser) store()    {}
func (deleteUser) store() {}
func (rawQuery) store()   {}

func (g getUser) Execute(context.Context) (any, error) {
	if g.ID == 1 {
		return "ada", nil
	}
	return "guest", nil
}

func (deleteUser) Execute(context.Context) (any, error) {
	return nil, errForbidden
}

func getUserP(id int) prog.Program[store, string] {
	return prog.Perform[store, string](getUser{ID: id})
}

func TestFunc(t *testing.T) {
	h := host.Func(func(_ context.Context, op store) (prog.Erased, error) {
		return "from func", nil
	})
	v, ok, err := prog.Run(context.Background(), getUserP(1), h)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "from func", v)
}

func TestDispatch(t *testing.T) {
	p := prog.FlatMap(getUserP(1), func(a string) prog.Program[store, string] {
		return prog.Map(getUserP(2), func(b string) string { return a + "," + b })
	})
	v, ok, err := prog.Run(context.Background(), p, host.Dispatch[store]())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ada,guest", v)
}

func TestDispatchError(t *testing.T) {
	_, ok, err := prog.Run(context.Background(), prog.Perform[store, struct{}](deleteUser{ID: 1}), host.Dispatch[store]())
	assert.False(t, ok)
	assert.ErrorIs(t, err, errForbidden)
}

func TestDispatchUnhandled(t *testing.T) {
	_, ok, err := prog.Run(context.Background(), prog.Perform[store, string](rawQuery{SQL: "select 1"}), host.Dispatch[store]())
	assert.False(t, ok)
	var ue *host.UnhandledError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, rawQuery{SQL: "select 1"}, ue.Op)
	assert.Equal(t, "host: unhandled effect host_test.rawQuery", err.Error())
}

func TestDispatchCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok, err := prog.Run(ctx, getUserP(1), host.Dispatch[store]())
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDispatchErrorIsHandled(t *testing.T) {
	p := prog.HandleErrorWith(prog.Perform[store, string](deleteUser{ID: 1}), func(err error) prog.Program[store, string] {
		return prog.Pure[store]("kept: " + err.Error())
	})
	v, ok, err := prog.Run(context.Background(), p, host.Dispatch[store]())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "kept: forbidden", v)
}

func TestRecorder(t *testing.T) {
	r := host.Record(host.Dispatch[store]())
	p := prog.Then(getUserP(1), prog.Then(prog.Perform[store, struct{}](deleteUser{ID: 2}), getUserP(3)))

	_, ok, err := prog.Run(context.Background(), p, r)
	assert.False(t, ok)
	assert.ErrorIs(t, err, errForbidden)
	assert.Equal(t, []store{getUser{ID: 1}, deleteUser{ID: 2}}, r.Ops())

	ops := r.Ops()
	ops[0] = rawQuery{}
	assert.Equal(t, getUser{ID: 1}, r.Ops()[0], "Ops must return a copy")

	r.Reset()
	assert.Empty(t, r.Ops())
}

func TestRecorderConcurrent(t *testing.T) {
	r := host.Record(host.Dispatch[store]())
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Go(func() {
			_, _, _ = prog.Run(context.Background(), getUserP(i), r)
		})
	}
	wg.Wait()
	assert.Len(t, r.Ops(), 16)
}
