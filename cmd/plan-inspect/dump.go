package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/strata-db/strata/pkg/engine/plancodec"
)

// dumpCommand prints the plan encoded in each of files as a tree.
type dumpCommand struct {
	global *globalFlags
	files  *[]string
}

func (cmd *dumpCommand) run(_ *kingpin.ParseContext) error {
	codec, _, err := cmd.global.codec()
	if err != nil {
		exitWithErr(err)
	}
	for _, f := range *cmd.files {
		cmd.printPlan(context.TODO(), codec, f)
	}
	return nil
}

func (cmd *dumpCommand) printPlan(ctx context.Context, codec *plancodec.Codec, name string) {
	data, err := os.ReadFile(name)
	if err != nil {
		exitWithErr(fmt.Errorf("failed to read file: %w", err))
	}
	plan, err := codec.Decode(ctx, data)
	if err != nil {
		exitWithErr(fmt.Errorf("failed to decode plan %s: %w", name, err))
	}

	bold := color.New(color.Bold)
	bold.Printf("%s", name)
	fmt.Printf(" (%v)\n", humanize.Bytes(uint64(len(data))))
	if err := plancodec.WriteTree(os.Stdout, plan); err != nil {
		exitWithErr(fmt.Errorf("failed to print plan: %w", err))
	}
	fmt.Println()
}
