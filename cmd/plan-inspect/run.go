package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/fatih/color"

	"github.com/strata-db/strata/pkg/engine/plancodec"
)

// runCommand executes the plan encoded in file and prints its rows.
type runCommand struct {
	global    *globalFlags
	file      *string
	partition *int
}

func (cmd *runCommand) run(_ *kingpin.ParseContext) error {
	codec, _, err := cmd.global.codec()
	if err != nil {
		exitWithErr(err)
	}

	ctx := context.TODO()
	data, err := os.ReadFile(*cmd.file)
	if err != nil {
		exitWithErr(fmt.Errorf("failed to read file: %w", err))
	}
	plan, err := codec.Decode(ctx, data)
	if err != nil {
		exitWithErr(fmt.Errorf("failed to decode plan: %w", err))
	}

	records, err := plancodec.Execute(ctx, plan, *cmd.partition)
	if err != nil {
		exitWithErr(fmt.Errorf("failed to execute plan: %w", err))
	}
	defer func() {
		for _, rec := range records {
			rec.Release()
		}
	}()

	var rows int64
	for _, rec := range records {
		printRecord(rec)
		rows += rec.NumRows()
	}
	color.New(color.Faint).Printf("(%d rows)\n", rows)
	return nil
}

func printRecord(rec arrow.Record) {
	header := make([]string, rec.NumCols())
	for i, field := range rec.Schema().Fields() {
		header[i] = field.Name
	}
	color.New(color.Bold).Println(strings.Join(header, "\t"))

	values := make([]string, rec.NumCols())
	for row := 0; row < int(rec.NumRows()); row++ {
		for col := range values {
			values[col] = rec.Column(col).ValueStr(row)
		}
		fmt.Println(strings.Join(values, "\t"))
	}
}
