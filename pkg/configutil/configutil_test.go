package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl string `json:"base_url"`
	Timeout int    `json:"timeout"`
	Proxy   string `json:"proxy"`
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	err := os.WriteFile(path, []byte(contents), 0600)
	require.NoError(t, err)
}

func TestReadConfigMergesLocal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json5"), `{
		// comments are allowed
		"base_url": "http://a.example",
		"timeout": 10,
	}`)
	writeFile(t, filepath.Join(dir, "app.local.json5"), `{ "timeout": 30 }`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "app.json5"))
	require.NoError(t, err)
	require.Equal(t, "http://a.example", cfg.BaseUrl)
	require.Equal(t, 30, cfg.Timeout)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "nope.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadWithDefaults(t *testing.T) {
	defaults := testConfig{BaseUrl: "http://default.example", Timeout: 5}

	cfg, err := ReadWithDefaults(filepath.Join(t.TempDir(), "nope.json5"), defaults)
	require.NoError(t, err)
	require.Equal(t, defaults, cfg)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json5"), `{ "proxy": "http://proxy.example/" }`)
	cfg, err = ReadWithDefaults(filepath.Join(dir, "app.json5"), defaults)
	require.NoError(t, err)
	require.Equal(t, testConfig{
		BaseUrl: "http://default.example",
		Timeout: 5,
		Proxy:   "http://proxy.example/",
	}, cfg)
}

func TestLocalPath(t *testing.T) {
	require.Equal(t, "conf/app.local.json5", localPath("conf/app.json5"))
	require.Equal(t, "app.local", localPath("app"))
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		os.Chdir(wd)
	})
}

func TestReadRecursively(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0700))
	writeFile(t, filepath.Join(root, "app.json5"), `{ "timeout": 12 }`)
	chdir(t, nested)

	cfg, err := ReadRecursively[testConfig]("app.json5")
	require.NoError(t, err)
	require.Equal(t, 12, cfg.Timeout)

	defaults := testConfig{BaseUrl: "http://default.example", Timeout: 5}
	cfg, err = ReadRecursivelyWithDefaults("app.json5", defaults)
	require.NoError(t, err)
	require.Equal(t, testConfig{BaseUrl: "http://default.example", Timeout: 12}, cfg)

	cfg, err = ReadRecursivelyWithDefaults("missing-a9f3.json5", defaults)
	require.NoError(t, err)
	require.Equal(t, defaults, cfg)
}
