package plancodec

import (
	"flag"
	"testing"

	"github.com/grafana/dskit/flagext"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfig_Defaults(t *testing.T) {
	var cfg Config
	flagext.DefaultValues(&cfg)

	require.Equal(t, DefaultMaxPlanSizeBytes, cfg.MaxPlanSizeBytes)
	require.Equal(t, "info", cfg.LogLevel.String())
	require.NoError(t, cfg.Validate())
}

func TestConfig_Flags(t *testing.T) {
	var cfg Config
	fs := flag.NewFlagSet("test", flag.PanicOnError)
	cfg.RegisterFlagsWithPrefix("engine.", fs)

	require.NoError(t, fs.Parse([]string{"-engine.max-plan-size-bytes=1024", "-engine.log.level=debug"}))
	require.Equal(t, 1024, cfg.MaxPlanSizeBytes)
	require.Equal(t, "debug", cfg.LogLevel.String())
	require.NotNil(t, cfg.LogLevel.Option)
}

func TestConfig_YAML(t *testing.T) {
	var cfg Config
	flagext.DefaultValues(&cfg)

	in := `
max_plan_size_bytes: 2048
log_level: warn
`
	require.NoError(t, yaml.Unmarshal([]byte(in), &cfg))
	require.Equal(t, 2048, cfg.MaxPlanSizeBytes)
	require.Equal(t, "warn", cfg.LogLevel.String())
}

func TestConfig_Validate(t *testing.T) {
	tests := map[string]struct {
		size      int
		expectErr bool
	}{
		"disabled": {size: 0},
		"default":  {size: DefaultMaxPlanSizeBytes},
		"negative": {size: -1, expectErr: true},
		"too large": {size: 1 << 33, expectErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := Config{MaxPlanSizeBytes: tc.size}
			err := cfg.Validate()
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
