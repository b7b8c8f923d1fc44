package event

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatchOrderAndConsume(t *testing.T) {
	m := NewManager()
	var calls []string

	m.Subscribe(TypeBufferSaved, func(e Event) bool {
		calls = append(calls, "first")
		return false
	})
	m.Subscribe(TypeBufferSaved, func(e Event) bool {
		calls = append(calls, "second")
		data := e.Data.(BufferSavedData)
		require.Equal(t, "a.java", data.FilePath)
		return true
	})
	m.Subscribe(TypeBufferSaved, func(e Event) bool {
		calls = append(calls, "third")
		return false
	})

	m.Dispatch(TypeBufferSaved, BufferSavedData{FilePath: "a.java"})
	require.Equal(t, []string{"first", "second"}, calls)
}

func TestDispatchWithoutHandlers(t *testing.T) {
	m := NewManager()
	require.NotPanics(t, func() { m.Dispatch(TypeBufferLoaded, nil) })

	var nilManager *Manager
	require.NotPanics(t, func() { nilManager.Dispatch(TypeBufferLoaded, nil) })
}

func TestTypeAndOriginNames(t *testing.T) {
	require.Equal(t, "BufferModified", TypeBufferModified.String())
	require.Equal(t, "Unknown", Type(99).String())
	require.Equal(t, "undo", OriginUndo.String())
	require.Equal(t, "edit", OriginEdit.String())
}
