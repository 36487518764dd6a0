package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/go-kit/log/level"

	"github.com/strata-db/strata/pkg/engine/plancodec"
)

// mockCommand writes an encoded sample plan to out.
type mockCommand struct {
	global *globalFlags
	out    *string
	name   *string
	limit  *uint64
}

func (cmd *mockCommand) run(_ *kingpin.ParseContext) error {
	codec, logger, err := cmd.global.codec()
	if err != nil {
		exitWithErr(err)
	}

	plan, err := plancodec.SamplePlan(*cmd.name, *cmd.limit)
	if err != nil {
		exitWithErr(fmt.Errorf("failed to build sample plan: %w", err))
	}
	data, err := codec.Encode(context.TODO(), plan)
	if err != nil {
		exitWithErr(fmt.Errorf("failed to encode plan: %w", err))
	}
	if err := os.WriteFile(*cmd.out, data, 0o644); err != nil {
		exitWithErr(fmt.Errorf("failed to write file: %w", err))
	}

	level.Info(logger).Log("msg", "wrote sample plan", "file", *cmd.out, "size", humanize.Bytes(uint64(len(data))))
	return nil
}
