package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoadFile tests configuration layering with various scenarios
func TestLoadFile(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     string
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults only",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultPort, cfg.Server.Port)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, DefaultRequestTimeout, cfg.Server.RequestTimeout)
				assert.Equal(t, DefaultDatasetFile, cfg.Dataset.File)
				assert.Equal(t, DefaultChartWidth, cfg.Charts.Width)
				assert.Equal(t, "none", cfg.Telemetry.TracingExporter)
				assert.True(t, cfg.Telemetry.MetricsEnabled)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, "console", cfg.Logging.Output)
			},
		},
		{
			name: "file overrides defaults",
			file: `
server:
  port: 9000
dataset:
  file: /srv/data/outcomes.xlsx
charts:
  width: 1200
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9000, cfg.Server.Port)
				assert.Equal(t, "/srv/data/outcomes.xlsx", cfg.Dataset.File)
				assert.Equal(t, 1200, cfg.Charts.Width)
				// Untouched keys keep their defaults.
				assert.Equal(t, DefaultChartHeight, cfg.Charts.Height)
				assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
			},
		},
		{
			name: "env overrides file",
			file: "server:\n  port: 9000\nlogging:\n  level: warn\n",
			env: map[string]string{
				"TPD_SERVER_PORT":                "9100",
				"TPD_SECURITY_ALLOWED_ORIGINS":   "http://a.test,http://b.test",
				"TPD_TELEMETRY_TRACING_EXPORTER": "stdout",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9100, cfg.Server.Port)
				assert.Equal(t, "warn", cfg.Logging.Level)
				assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Security.AllowedOrigins)
				assert.Equal(t, "stdout", cfg.Telemetry.TracingExporter)
			},
		},
		{
			name:    "invalid port",
			env:     map[string]string{"TPD_SERVER_PORT": "70000"},
			wantErr: "invalid server port",
		},
		{
			name:    "unsupported dataset extension",
			env:     map[string]string{"TPD_DATASET_FILE": "data/outcomes.json"},
			wantErr: "dataset must be a .csv or .xlsx file",
		},
		{
			name:    "unknown exporter",
			file:    "telemetry:\n  tracing_exporter: jaeger\n",
			wantErr: "unknown tracing exporter",
		},
		{
			name:    "chart too small",
			env:     map[string]string{"TPD_CHARTS_HEIGHT": "10"},
			wantErr: "chart size must be at least",
		},
		{
			name:    "malformed yaml",
			file:    "server: [",
			wantErr: "failed to load config from file",
		},
		{
			name:    "malformed env value",
			env:     map[string]string{"TPD_SERVER_READ_TIMEOUT": "soon"},
			wantErr: "failed to load config from env",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeConfig(t, tt.file)
			}

			cfg, err := LoadFile(path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoad_ConfigFileFromEnv(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9300\n")
	t.Setenv("TPD_CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9300, cfg.Server.Port)
}

func TestValidate_FileOutputGetsDefaultPath(t *testing.T) {
	cfg := Default()
	cfg.Logging.Output = "both"
	cfg.Logging.FilePath = ""

	require.NoError(t, cfg.validate())
	assert.Equal(t, DefaultLogFile, cfg.Logging.FilePath)
}

func TestServerConfig_Addr(t *testing.T) {
	assert.Equal(t, ":8050", ServerConfig{Port: 8050}.Addr())
	assert.Equal(t, "127.0.0.1:9000", ServerConfig{Host: "127.0.0.1", Port: 9000}.Addr())
}
