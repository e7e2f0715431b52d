package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPCmd_Use(t *testing.T) {
	assert.Equal(t, "mcp", mcpCmd.Use)
}

func TestMCPServeCmd_Use(t *testing.T) {
	assert.Equal(t, "serve", mcpServeCmd.Use)
}

func TestMCPServeCmd_HasPortFlag(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "port flag should exist")
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}
