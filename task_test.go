package frost

import (
	"testing"

	"github.com/TheSnowfield/frost/porttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunArgsForwardsArguments(t *testing.T) {
	mock := porttest.NewMock()
	e := New(WithPort(mock))
	defer e.Close()

	var got []any
	e.RunArgs("with-args", func(t *Task, args []any) {
		got = args
	}, "a", 2, true)

	require.Equal(t, Ok, e.Schedule())
	assert.Equal(t, []any{"a", 2, true}, got)
}

func TestIntervalRejectsInvalidParameters(t *testing.T) {
	mock := porttest.NewMock()
	e := New(WithPort(mock))
	defer e.Close()

	_, kind := e.Interval("zero-period", 0, func(*Task) {})
	assert.Equal(t, InvalidParameter, kind)

	_, kind = e.Interval("nil-fn", 10, nil)
	assert.Equal(t, InvalidParameter, kind)
}

func TestOperationsAfterCloseReturnNeedInitialize(t *testing.T) {
	mock := porttest.NewMock()
	e := New(WithPort(mock))
	require.NoError(t, e.Close())

	_, kind := e.Interval("too-late", 10, func(*Task) {})
	assert.Equal(t, NeedInitialize, kind)

	aw := e.Run("too-late", func(*Task, []any) {})
	assert.True(t, aw.Finished())
	assert.Equal(t, NeedInitialize, aw.Status())

	assert.Equal(t, NeedInitialize, e.Schedule())
	assert.Equal(t, NeedInitialize, e.Sleep(10))
}

func TestFlags(t *testing.T) {
	mock := porttest.NewMock()
	e := New(WithPort(mock))
	defer e.Close()

	task, kind := e.Interval("flagged", 10, func(*Task) {})
	require.Equal(t, Ok, kind)

	assert.False(t, task.GetFlag(FlagFreeze))
	require.Equal(t, Ok, task.SetFlag(FlagFreeze|FlagUnfreezeByChanWrite))
	assert.True(t, task.GetFlag(FlagFreeze))
	assert.True(t, task.GetFlag(FlagUnfreezeByChanWrite))

	require.Equal(t, Ok, task.ClearFlag(FlagUnfreezeByChanWrite))
	assert.True(t, task.GetFlag(FlagFreeze))
	assert.False(t, task.GetFlag(FlagUnfreezeByChanWrite))
}

func TestEnumerateWalksEveryTask(t *testing.T) {
	mock := porttest.NewMock()
	e := New(WithPort(mock))
	defer e.Close()

	names := map[string]bool{}
	for _, n := range []string{"one", "two", "three"} {
		_, kind := e.Interval(n, 10, func(*Task) {})
		require.Equal(t, Ok, kind)
	}

	var it Enumerator
	for {
		task, kind := e.Enumerate(&it)
		if kind == Eof {
			break
		}
		require.Equal(t, Ok, kind)
		names[task.Name()] = true
	}
	assert.Equal(t, map[string]bool{"one": true, "two": true, "three": true}, names)
}

func TestContextResolvesCurrentTask(t *testing.T) {
	mock := porttest.NewMock()
	e := New(WithPort(mock))
	defer e.Close()

	if _, ok := e.Context(); ok {
		t.Fatal("expected no current task outside a callback")
	}

	var observed *Task
	var ok bool
	e.RunArgs("context-check", func(t *Task, args []any) {
		observed, ok = e.Context()
	})

	require.Equal(t, Ok, e.Schedule())
	require.True(t, ok)
	assert.Equal(t, "context-check", observed.Name())

	if _, ok := e.Context(); ok {
		t.Fatal("expected no current task after Schedule returns")
	}
}

func TestDeleteRejectsForeignOrStaleTask(t *testing.T) {
	mock := porttest.NewMock()
	e1 := New(WithPort(mock))
	defer e1.Close()
	e2 := New(WithPort(mock))
	defer e2.Close()

	foreign, kind := e2.Interval("foreign", 10, func(*Task) {})
	require.Equal(t, Ok, kind)
	assert.Equal(t, InvalidParameter, e1.Delete(foreign))

	local, kind := e1.Interval("local", 10, func(*Task) {})
	require.Equal(t, Ok, kind)
	require.Equal(t, Ok, e1.Delete(local))
	assert.Equal(t, InvalidParameter, e1.Delete(local))
}
