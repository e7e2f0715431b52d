package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_Short(t *testing.T) {
	assert.Equal(t, "Search the document library", searchCmd.Short)
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_HasTopFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("top")
	require.NotNil(t, flag, "top flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "3", flag.DefValue)
}

func TestSearchCmd_ExecutesWithQuery(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "test query"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "doc doc-1")
	assert.Contains(t, buf.String(), "mock chunk content")
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "--json", "test query"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchJSON = false
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "\"ID\"")
	assert.Contains(t, buf.String(), "\"Score\"")
}

func TestSearchCmd_RejectsBadDate(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "--after", "yesterday", "query"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchAfter = ""
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")
}

func TestSearchCmd_ServiceNotConfigured(t *testing.T) {
	oldService := retrievalService
	retrievalService = nil
	defer func() {
		retrievalService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "test"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "retrieval service not configured")
}

func TestSearchCmd_ServiceError(t *testing.T) {
	oldService := retrievalService
	retrievalService = &mockRetrievalServiceError{}
	defer func() {
		retrievalService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "test"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "search failed")
}

func TestParseDay(t *testing.T) {
	ms, err := parseDay("2024-01-02")
	require.NoError(t, err)
	assert.Equal(t, int64(1704153600000), ms)

	ms, err = parseDay("")
	require.NoError(t, err)
	assert.Equal(t, int64(0), ms)

	_, err = parseDay("01/02/2024")
	assert.Error(t, err)
}

func TestSearchOptions_InclusiveBefore(t *testing.T) {
	searchType = "pdf"
	searchAfter = "2024-01-01"
	searchBefore = "2024-01-01"
	defer func() {
		searchType = ""
		searchAfter = ""
		searchBefore = ""
	}()

	opts, err := searchOptions()
	require.NoError(t, err)

	// The end bound covers the whole named day.
	assert.Equal(t, opts.DateStart+int64(24*60*60*1000)-1, opts.DateEnd)
	assert.Equal(t, "pdf", string(opts.DocType))
}
