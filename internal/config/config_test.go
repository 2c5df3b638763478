package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		flags   []string
		want    Config
		wantErr bool
	}{
		{
			name: "defaults",
			want: Config{
				Host:         "localhost",
				Port:         3000,
				InvoicesURL:  "https://takehome.api.bidsight.io/v2/invoices",
				FetchTimeout: 10 * time.Second,
				SessionTTL:   12 * time.Hour,
				LogLevel:     "info",
			},
		},
		{
			name: "env only",
			env: map[string]string{
				"HOST":          "0.0.0.0",
				"PORT":          "8080",
				"INVOICES_URL":  "http://localhost:9000/invoices",
				"FETCH_TIMEOUT": "2s",
				"SESSION_TTL":   "30m",
				"LOG_LEVEL":     "debug",
				"DEV":           "true",
			},
			want: Config{
				Host:         "0.0.0.0",
				Port:         8080,
				InvoicesURL:  "http://localhost:9000/invoices",
				FetchTimeout: 2 * time.Second,
				SessionTTL:   30 * time.Minute,
				LogLevel:     "debug",
				Development:  true,
			},
		},
		{
			name: "flags override env",
			env: map[string]string{
				"PORT":      "8080",
				"LOG_LEVEL": "debug",
			},
			flags: []string{"--port", "9090", "--invoices-url", "http://flag/invoices", "--dev"},
			want: Config{
				Host:         "localhost",
				Port:         9090,
				InvoicesURL:  "http://flag/invoices",
				FetchTimeout: 10 * time.Second,
				SessionTTL:   12 * time.Hour,
				LogLevel:     "debug",
				Development:  true,
			},
		},
		{
			name:    "bad duration",
			env:     map[string]string{"FETCH_TIMEOUT": "soon"},
			wantErr: true,
		},
		{
			name:    "zero port",
			env:     map[string]string{"PORT": "0"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parse(tt.env)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			cfg.BindFlags(fs)
			require.NoError(t, fs.Parse(tt.flags))
			require.NoError(t, cfg.Validate())

			assert.Equal(t, tt.want, *cfg)
		})
	}
}

func TestValidate_FlagValues(t *testing.T) {
	cfg, err := parse(map[string]string{})
	require.NoError(t, err)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"--fetch-timeout", "0s"}))

	assert.Error(t, cfg.Validate())
}

func TestParse_ReadsProcessEnvironment(t *testing.T) {
	t.Setenv("PORT", "4321")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, uint(4321), cfg.Port)
}
