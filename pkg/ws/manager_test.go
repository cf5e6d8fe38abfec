package ws

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	id      string
	userId  string
	written []any
	failing bool
	closed  bool
}

func (f *fakeConn) ID() string     { return f.id }
func (f *fakeConn) UserID() string { return f.userId }

func (f *fakeConn) WriteMessage(_ int, _ []byte) error {
	if f.failing {
		return errors.New("write failed")
	}
	return nil
}

func (f *fakeConn) WriteJSON(v any) error {
	if f.failing {
		return errors.New("write failed")
	}
	f.written = append(f.written, v)
	return nil
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func TestHubBroadcastJSON(t *testing.T) {
	hub := NewHub()
	c1 := &fakeConn{id: "c1", userId: "u1"}
	c2 := &fakeConn{id: "c2", userId: "u2"}
	hub.Register(c1)
	hub.Register(c2)

	require.NoError(t, hub.BroadcastJSON(map[string]string{"title": "hello"}))
	assert.Len(t, c1.written, 1)
	assert.Len(t, c2.written, 1)
}

func TestHubBroadcastJSONReportsFailure(t *testing.T) {
	hub := NewHub()
	hub.Register(&fakeConn{id: "c1", failing: true})

	assert.Error(t, hub.BroadcastJSON("x"))
}

func TestHubSendToUserJSON(t *testing.T) {
	hub := NewHub()
	c1 := &fakeConn{id: "c1", userId: "u1"}
	c2 := &fakeConn{id: "c2", userId: "u2"}
	hub.Register(c1)
	hub.Register(c2)

	require.NoError(t, hub.SendToUserJSON("u1", "ping"))
	assert.Len(t, c1.written, 1)
	assert.Empty(t, c2.written)

	assert.ErrorIs(t, hub.SendToUserJSON("u3", "ping"), ErrConnNotFound)
}

func TestHubUnregisterClosesConn(t *testing.T) {
	hub := NewHub()
	c1 := &fakeConn{id: "c1"}
	hub.Register(c1)
	require.Equal(t, 1, hub.Count())

	hub.Unregister(c1)
	assert.Equal(t, 0, hub.Count())
	assert.True(t, c1.closed)
}
