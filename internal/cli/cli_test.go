package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/scrapeview/internal/config"
	"github.com/rshade/scrapeview/internal/pagination"
)

// testEnv isolates config, .env and page store from the developer's machine.
func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(config.EnvConfigPath, filepath.Join(dir, "missing.yaml"))
	t.Setenv(config.EnvStoreBackend, "file")
	t.Setenv(config.EnvStorePath, filepath.Join(dir, "state.json"))
	for _, key := range []string{
		config.EnvLogLevel, config.EnvLogFormat, config.EnvLogFile,
		config.EnvRowsPerPage, config.EnvDownloadHost,
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)
	return dir
}

// writeSnapshot writes n records one hour apart from 2024-01-01 00:00 local
// time and returns the file path.
func writeSnapshot(t *testing.T, dir string, n int) string {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	rows := make([]map[string]any, n)
	for i := range rows {
		rows[i] = map[string]any{
			"id":       i + 1,
			"dateTime": base.Add(time.Duration(i) * time.Hour).Format(time.RFC3339),
			"status":   i%2 == 0,
			"fileName": fmt.Sprintf("decree-%02d.pdf", i+1),
			"fileLink": fmt.Sprintf("2024/decree-%02d.pdf", i+1),
		}
	}
	data, err := json.Marshal(map[string]any{
		"category": map[string]string{"title": "Decrees", "type": "decrees"},
		"rows":     rows,
	})
	require.NoError(t, err)

	path := filepath.Join(dir, "snapshot.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd("test")
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, sub := range cmd.Commands() {
		if sub.Name() == name {
			return sub
		}
	}
	return nil
}

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd("1.2.3")
	assert.Equal(t, "scrapeview", root.Use)
	assert.Equal(t, "1.2.3", root.Version)
	assert.NotNil(t, root.PersistentFlags().Lookup("debug"))
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))

	for _, name := range []string{"list", "view", "open", "config"} {
		assert.NotNil(t, findSubcommand(root, name), "missing %s command", name)
	}

	list := findSubcommand(root, "list")
	for _, flag := range []string{"input", "page", "rows-per-page", "sort", "date"} {
		assert.NotNil(t, list.Flags().Lookup(flag), "list missing --%s", flag)
	}
	assert.NotNil(t, findSubcommand(root, "open").Flags().Lookup("index"))
}

func TestList_SecondPagePadding(t *testing.T) {
	dir := testEnv(t)
	input := writeSnapshot(t, dir, 12)

	out, err := execute(t, "list", "--input", input, "--page", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "Decrees")
	assert.Contains(t, out, "Date and Time ▼")
	assert.Contains(t, out, "decree-02.pdf")
	assert.Contains(t, out, "decree-01.pdf")
	assert.NotContains(t, out, "decree-03.pdf")
	assert.Contains(t, out, "(8 empty rows)")
	assert.Contains(t, out, "Rows per page: 10")
	assert.Contains(t, out, "11–12 of 12")
}

func TestList_FirstPageHasNoPadding(t *testing.T) {
	dir := testEnv(t)
	input := writeSnapshot(t, dir, 3)

	out, err := execute(t, "list", "--input", input)
	require.NoError(t, err)
	assert.NotContains(t, out, "empty rows")
	assert.Contains(t, out, "1–3 of 3")
}

func TestList_RestoresPersistedPage(t *testing.T) {
	dir := testEnv(t)
	input := writeSnapshot(t, dir, 12)

	_, err := execute(t, "list", "--input", input, "--page", "1")
	require.NoError(t, err)

	config.ResetGlobalConfigForTest()
	out, err := execute(t, "list", "--input", input)
	require.NoError(t, err)
	assert.Contains(t, out, "11–12 of 12")
}

func TestList_SortAndPageSize(t *testing.T) {
	dir := testEnv(t)
	input := writeSnapshot(t, dir, 30)

	out, err := execute(t, "list", "--input", input, "--sort", "fileName:asc", "--rows-per-page", "25")
	require.NoError(t, err)
	assert.Contains(t, out, "File Name ▲")
	assert.Contains(t, out, "1–25 of 30")
	assert.Contains(t, out, "decree-01.pdf")
	assert.NotContains(t, out, "decree-26.pdf")
}

func TestList_DateFilter(t *testing.T) {
	dir := testEnv(t)
	input := writeSnapshot(t, dir, 30)

	out, err := execute(t, "list", "--input", input, "--date", "2024-01-02")
	require.NoError(t, err)
	assert.Contains(t, out, "1–6 of 6")
	assert.NotContains(t, out, "decree-24.pdf")
	assert.Contains(t, out, "decree-25.pdf")
}

func TestList_Errors(t *testing.T) {
	dir := testEnv(t)
	input := writeSnapshot(t, dir, 3)

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{
			name:    "invalid rows per page",
			args:    []string{"--rows-per-page", "7"},
			wantErr: pagination.ErrInvalidRowsPerPage,
		},
		{
			name:    "negative page",
			args:    []string{"--page", "-1"},
			wantErr: pagination.ErrInvalidPage,
		},
		{
			name:    "unsortable field",
			args:    []string{"--sort", "fileLink"},
			wantErr: pagination.ErrUnsortableField,
		},
		{
			name:    "bad order",
			args:    []string{"--sort", "status:up"},
			wantErr: pagination.ErrInvalidSortOrder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config.ResetGlobalConfigForTest()
			_, err := execute(t, append([]string{"list", "--input", input}, tt.args...)...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("bad date", func(t *testing.T) {
		_, err := execute(t, "list", "--input", input, "--date", "01/02/2024")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid --date")
	})

	t.Run("missing input", func(t *testing.T) {
		_, err := execute(t, "list")
		require.Error(t, err)
	})
}

func TestOpen(t *testing.T) {
	dir := testEnv(t)
	input := writeSnapshot(t, dir, 12)

	out, err := execute(t, "open", "--input", input, "--index", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "route:     /pdf/decree-12")
	assert.Contains(t, out, "file link: http://188.245.216.211/public/download/decrees/2024/decree-12.pdf")
	assert.Contains(t, out, "local:     DB-Legale-doc/decrees/downloaded/2024/decree-12.pdf")
}

func TestOpen_DownloadHostFromEnv(t *testing.T) {
	dir := testEnv(t)
	input := writeSnapshot(t, dir, 2)
	t.Setenv(config.EnvDownloadHost, "https://files.example.test/dl/")

	out, err := execute(t, "open", "--input", input, "--index", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "file link: https://files.example.test/dl/decrees/2024/decree-01.pdf")
}

func TestOpen_IndexOutOfRange(t *testing.T) {
	dir := testEnv(t)
	input := writeSnapshot(t, dir, 12)

	_, err := execute(t, "open", "--input", input, "--page", "1", "--index", "2")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestView_RequiresTerminal(t *testing.T) {
	if isTerminal(os.Stdin) && isTerminal(os.Stdout) {
		t.Skip("test requires a non-interactive stdin or stdout")
	}
	dir := testEnv(t)
	input := writeSnapshot(t, dir, 3)

	_, err := execute(t, "view", "--input", input)
	assert.ErrorIs(t, err, ErrNotInteractive)
}

func TestConfigShow(t *testing.T) {
	testEnv(t)
	t.Setenv(config.EnvRowsPerPage, "25")

	out, err := execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "rows_per_page: 25")
	assert.Contains(t, out, "order_by: dateTime")
	assert.Contains(t, out, "backend: file")
	assert.Contains(t, out, "download_host: http://188.245.216.211/public/download")
}

func TestConfigShow_InvalidConfig(t *testing.T) {
	testEnv(t)
	t.Setenv(config.EnvStoreBackend, "redis")

	_, err := execute(t, "config", "show")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
