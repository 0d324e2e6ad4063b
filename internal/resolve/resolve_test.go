package resolve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsIP(t *testing.T) {
	assert.True(t, IsIP("192.168.1.1"))
	assert.True(t, IsIP("::1"))
	assert.False(t, IsIP("example.com"))
	assert.False(t, IsIP(""))
	assert.False(t, IsIP("300.1.1.1"))
}

func TestToIP_PassesThroughLiterals(t *testing.T) {
	ip, err := ToIP(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", ip)

	ip, err = ToIP(context.Background(), "::1")
	require.NoError(t, err)
	assert.Equal(t, "::1", ip)
}

func TestToIP_ResolvesLocalhost(t *testing.T) {
	ip, err := ToIP(context.Background(), "localhost")
	require.NoError(t, err)
	assert.True(t, IsIP(ip))
}
