package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddress_Set_Valid(t *testing.T) {
	var a NetAddress
	require.NoError(t, a.Set("localhost:8080"))
	assert.Equal(t, "localhost", a.Host)
	assert.Equal(t, 8080, a.Port)
	assert.Equal(t, "localhost:8080", a.String())
}

func TestNetAddress_Set_IPHost(t *testing.T) {
	var a NetAddress
	require.NoError(t, a.Set("127.0.0.1:9090"))
	assert.Equal(t, "127.0.0.1", a.Host)
	assert.Equal(t, 9090, a.Port)
}

func TestNetAddress_Set_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no colon", "localhost"},
		{"bad port", "localhost:abc"},
		{"zero port", "localhost:0"},
		{"bad host", "not-an-ip:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			assert.Error(t, a.Set(tt.input))
		})
	}
}

func TestNetAddress_String_Empty(t *testing.T) {
	var a NetAddress
	assert.Equal(t, "", a.String())
}
