// plan-inspect dumps, generates and runs encoded physical plans.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/grafana/dskit/flagext"
	"gopkg.in/yaml.v3"

	"github.com/strata-db/strata/pkg/engine/plancodec"
	util_log "github.com/strata-db/strata/pkg/util/log"
)

type globalFlags struct {
	configFile  *string
	logLevel    *string
	logLevelSet bool
}

func main() {
	app := kingpin.New("plan-inspect", "A command-line tool to inspect encoded physical plans.")
	app.HelpFlag.Short('h')

	g := registerGlobalFlags(app)

	dump := &dumpCommand{global: g}
	dumpCmd := app.Command("dump", "Decode plan files and print them as trees.")
	dump.files = dumpCmd.Arg("file", "Encoded plan files.").Required().ExistingFiles()
	dumpCmd.Action(dump.run)

	mock := &mockCommand{global: g}
	mockCmd := app.Command("mock", "Write an encoded sample plan reading from a mock input.")
	mock.out = mockCmd.Arg("out", "File to write the encoded plan to.").Required().String()
	mock.name = mockCmd.Flag("name", "Name of the mock input.").Default("mock").String()
	mock.limit = mockCmd.Flag("limit", "Maximum number of rows returned by the plan. 0 for no limit.").Default("0").Uint64()
	mockCmd.Action(mock.run)

	run := &runCommand{global: g}
	runCmd := app.Command("run", "Decode a plan file, execute it and print the resulting rows.")
	run.file = runCmd.Arg("file", "Encoded plan file.").Required().ExistingFile()
	run.partition = runCmd.Flag("partition", "Partition to execute.").Default("0").Int()
	runCmd.Action(run.run)

	kingpin.MustParse(app.Parse(os.Args[1:]))
}

func registerGlobalFlags(app *kingpin.Application) *globalFlags {
	g := &globalFlags{}
	g.configFile = app.Flag("config.file", "YAML file holding the plan codec configuration.").String()
	g.logLevel = app.Flag("log.level", "Only log messages with the given severity or above. Overrides the config file.").
		Default("info").IsSetByUser(&g.logLevelSet).Enum("debug", "info", "warn", "error")
	return g
}

// config layers the defaults, the config file and an explicitly given log
// level flag, later sources taking precedence.
func (g *globalFlags) config() (plancodec.Config, error) {
	var cfg plancodec.Config
	flagext.DefaultValues(&cfg)

	if *g.configFile != "" {
		data, err := os.ReadFile(*g.configFile)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", *g.configFile, err)
		}
	}
	if g.logLevelSet {
		if err := cfg.LogLevel.Set(*g.logLevel); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func (g *globalFlags) codec() (*plancodec.Codec, log.Logger, error) {
	cfg, err := g.config()
	if err != nil {
		return nil, nil, err
	}

	logger := util_log.NewLogger(os.Stderr, cfg.LogLevel)
	codec, err := plancodec.New(cfg, logger, nil)
	if err != nil {
		return nil, nil, err
	}
	return codec, logger, nil
}

func exitWithErr(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}
