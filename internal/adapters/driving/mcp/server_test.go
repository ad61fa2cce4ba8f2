package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil session returns error", func(t *testing.T) {
		ports := &Ports{}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingSession)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server := newTestServer(t)
		assert.NotNil(t, server)
		assert.NotNil(t, server.server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil session returns error", func(t *testing.T) {
		ports := &Ports{}
		err := ports.Validate()
		assert.ErrorIs(t, err, ErrMissingSession)
	})

	t.Run("session is valid", func(t *testing.T) {
		server := newTestServer(t)
		ports := &Ports{Session: server.ports.Session}
		assert.NoError(t, ports.Validate())
	})
}
