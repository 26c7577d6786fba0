package frost

import (
	"testing"
	"time"

	"github.com/TheSnowfield/frost/porttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwaitResolvesOnFinish(t *testing.T) {
	mock := porttest.NewMock()
	e := New(WithPort(mock))
	defer e.Close()

	aw := e.Run("worker", func(t *Task, args []any) {
		t.Awaiter().Finish(42)
	})

	result := e.Await(aw)
	require.True(t, result.Finished())
	assert.Equal(t, Ok, result.Status())
	assert.Equal(t, 42, result.Result())
}

func TestAwaitTimesOut(t *testing.T) {
	mock := porttest.NewMock()
	e := New(WithPort(mock))
	defer e.Close()

	// Stands in for the spec's "fn loops yielding forever" task: an awaiter
	// that never settles. A background goroutine advances the mock clock
	// concurrently with Await's tight polling loop, standing in for elapsed
	// wall-clock time without a real sleep inside the engine itself.
	aw := NewAwaiter()
	aw.SetTimeout(50)

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-done:
				return
			default:
				mock.Advance(10)
				time.Sleep(time.Millisecond)
			}
		}
	}()

	result := e.Await(aw)
	assert.True(t, result.Finished())
	assert.Equal(t, TaskTimeout, result.Status())
}

func TestAwaitOnNilReturnsInvalidParameter(t *testing.T) {
	mock := porttest.NewMock()
	e := New(WithPort(mock))
	defer e.Close()

	result := e.Await(nil)
	assert.True(t, result.Finished())
	assert.Equal(t, InvalidParameter, result.Status())
}

func TestAwaiterSettlesOnce(t *testing.T) {
	aw := NewAwaiter()
	assert.Equal(t, Ok, aw.Finish(1))
	assert.Equal(t, Ok, aw.Finish(2))
	assert.Equal(t, 1, aw.Result())

	aw2 := NewAwaiter()
	assert.Equal(t, Ok, aw2.Cancel())
	assert.Equal(t, TaskCanceled, aw2.Status())
	assert.Equal(t, Ok, aw2.Finish("late"))
	assert.Equal(t, TaskCanceled, aw2.Status())
}

func TestDeleteCancelsPendingAwaiter(t *testing.T) {
	mock := porttest.NewMock()
	e := New(WithPort(mock))
	defer e.Close()

	// Deleted before ever firing, so the awaiter is still pending — exercises
	// cancel-on-delete independently of the post-fire refill-or-delete path.
	aw := e.Run("to-delete", func(t *Task, args []any) {})
	require.False(t, aw.Finished())

	var it Enumerator
	task, kind := e.Enumerate(&it)
	require.Equal(t, Ok, kind)

	require.Equal(t, Ok, e.Delete(task))
	assert.True(t, aw.Finished())
	assert.Equal(t, TaskCanceled, aw.Status())
}
