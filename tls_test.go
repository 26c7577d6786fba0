package frost

import (
	"testing"

	"github.com/TheSnowfield/frost/porttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTLSAllocSetGet(t *testing.T) {
	mock := porttest.NewMock()
	e := New(WithTLSSize(4), WithPort(mock))
	defer e.Close()

	task, kind := e.Interval("tls-user", 10, func(*Task) {})
	require.Equal(t, Ok, kind)

	assert.False(t, e.TLSIsAllocatedEx(task))
	require.Equal(t, Ok, e.TLSAllocEx(task))
	assert.True(t, e.TLSIsAllocatedEx(task))

	require.Equal(t, Ok, e.TLSSetValueEx(task, 0, "hello"))
	v, kind := e.TLSGetValueEx(task, 0)
	require.Equal(t, Ok, kind)
	assert.Equal(t, "hello", v)

	assert.Equal(t, InvalidParameter, e.TLSSetValueEx(task, 4, "oob"))
	_, kind = e.TLSGetValueEx(task, -1)
	assert.Equal(t, InvalidParameter, kind)

	require.Equal(t, Ok, e.TLSDestroyEx(task))
	assert.False(t, e.TLSIsAllocatedEx(task))
	assert.Equal(t, InvalidParameter, e.TLSSetValueEx(task, 0, "gone"))
}

func TestTLSAllocIsIdempotent(t *testing.T) {
	mock := porttest.NewMock()
	e := New(WithPort(mock))
	defer e.Close()

	task, kind := e.Interval("idempotent", 10, func(*Task) {})
	require.Equal(t, Ok, kind)

	require.Equal(t, Ok, e.TLSAllocEx(task))
	require.Equal(t, Ok, e.TLSSetValueEx(task, 0, 1))
	require.Equal(t, Ok, e.TLSAllocEx(task))
	v, _ := e.TLSGetValueEx(task, 0)
	assert.Equal(t, 1, v)
}

func TestTLSDefaultSize(t *testing.T) {
	mock := porttest.NewMock()
	e := New(WithPort(mock))
	defer e.Close()

	task, kind := e.Interval("default-size", 10, func(*Task) {})
	require.Equal(t, Ok, kind)
	require.Equal(t, Ok, e.TLSAllocEx(task))

	assert.Equal(t, Ok, e.TLSSetValueEx(task, defaultTLSSize-1, "last"))
	assert.Equal(t, InvalidParameter, e.TLSSetValueEx(task, defaultTLSSize, "oob"))
}

func TestTLSReleasedOnTaskDelete(t *testing.T) {
	mock := porttest.NewMock()
	e := New(WithPort(mock))
	defer e.Close()

	task, kind := e.Interval("to-delete", 10, func(*Task) {})
	require.Equal(t, Ok, kind)
	require.Equal(t, Ok, e.TLSAllocEx(task))

	require.Equal(t, Ok, e.Delete(task))
	assert.False(t, e.TLSIsAllocatedEx(task))
}
