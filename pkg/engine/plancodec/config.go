package plancodec

import (
	"flag"
	"math"

	dslog "github.com/grafana/dskit/log"
	"github.com/pkg/errors"
)

// DefaultMaxPlanSizeBytes is the default upper bound of an encoded plan.
const DefaultMaxPlanSizeBytes = 16 << 20 // 16MiB

// Config configures a [Codec].
type Config struct {
	// MaxPlanSizeBytes is the largest encoded plan accepted in either
	// direction. Zero disables the check.
	MaxPlanSizeBytes int `yaml:"max_plan_size_bytes"`

	LogLevel dslog.Level `yaml:"log_level"`
}

// RegisterFlags registers the flags of cfg with the "plan-codec." prefix.
func (cfg *Config) RegisterFlags(f *flag.FlagSet) {
	cfg.RegisterFlagsWithPrefix("plan-codec.", f)
}

// RegisterFlagsWithPrefix registers the flags of cfg, each prefixed with
// prefix.
func (cfg *Config) RegisterFlagsWithPrefix(prefix string, f *flag.FlagSet) {
	f.IntVar(&cfg.MaxPlanSizeBytes, prefix+"max-plan-size-bytes", DefaultMaxPlanSizeBytes, "Maximum size in bytes of an encoded physical plan. Larger plans are rejected when encoding and decoding. 0 to disable.")

	_ = cfg.LogLevel.Set("info")
	f.Var(&cfg.LogLevel, prefix+"log.level", "Only log messages with the given severity or above. Valid levels: [debug, info, warn, error]")
}

// Validate returns an error if cfg is invalid.
func (cfg *Config) Validate() error {
	if cfg.MaxPlanSizeBytes < 0 {
		return errors.Errorf("invalid max plan size %d: must not be negative", cfg.MaxPlanSizeBytes)
	}
	if uint64(cfg.MaxPlanSizeBytes) > math.MaxUint32 {
		return errors.Errorf("invalid max plan size %d: must not exceed %d", cfg.MaxPlanSizeBytes, uint32(math.MaxUint32))
	}
	return nil
}
