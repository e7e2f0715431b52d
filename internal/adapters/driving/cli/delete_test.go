package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeleteCmd_Use(t *testing.T) {
	assert.Equal(t, "delete [document-id]", deleteCmd.Use)
}

func TestDeleteCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"delete"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestDeleteCmd_ExecutesWithKnownID(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"delete", "doc-1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Deleted document doc-1")
}

func TestDeleteCmd_UnknownID(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"delete", "missing-id"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no document with id missing-id")
}
