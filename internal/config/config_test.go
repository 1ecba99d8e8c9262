package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, 50, cfg.Scan.ConfirmThreshold)
	require.Equal(t, 2*time.Second, cfg.Scan.WatchDebounce)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "text", cfg.Log.Format)
	require.Equal(t, "missions_export.json", cfg.Export.Path)
	require.Equal(t, "missions_filtrees.csv", cfg.Export.CSVPath)
}

func TestLoad_ConfigFile(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
scan:
  confirm_threshold: 120
log:
  format: json
export:
  path: /tmp/out.json
`)))

	cfg, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, 120, cfg.Scan.ConfirmThreshold)
	require.Equal(t, "json", cfg.Log.Format)
	require.Equal(t, "/tmp/out.json", cfg.Export.Path)
	require.Equal(t, "missions_filtrees.csv", cfg.Export.CSVPath)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("MISSIONSCOPE_SCAN_CONFIRM_THRESHOLD", "7")
	t.Setenv("MISSIONSCOPE_EXPORT_CSV_PATH", "ids.csv")

	v := viper.New()
	SetDefaults(v)
	cfg, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, 7, cfg.Scan.ConfirmThreshold)
	require.Equal(t, "ids.csv", cfg.Export.CSVPath)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value interface{}
	}{
		{key: "scan.confirm_threshold", value: 0},
		{key: "log.level", value: "verbose"},
		{key: "log.format", value: "xml"},
		{key: "export.path", value: ""},
		{key: "log.max_backups", value: -1},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v := viper.New()
			SetDefaults(v)
			v.Set(tt.key, tt.value)
			_, err := Load(v)
			require.Error(t, err)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("MISSIONSCOPE_TEST_DOTENV=from-file\n"), 0o600))
	t.Setenv("MISSIONSCOPE_TEST_DOTENV", "")
	os.Unsetenv("MISSIONSCOPE_TEST_DOTENV")

	require.NoError(t, LoadDotEnv(path))
	require.Equal(t, "from-file", os.Getenv("MISSIONSCOPE_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}
