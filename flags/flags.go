package flags

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	opservice "github.com/ethereum-optimism/optimism/op-service"
	opflags "github.com/ethereum-optimism/optimism/op-service/flags"
	oplog "github.com/ethereum-optimism/optimism/op-service/log"
	opmetrics "github.com/ethereum-optimism/optimism/op-service/metrics"

	"github.com/theGhostJW/zenith-with-typescript-sub000/logging"
)

const EnvVarPrefix = "ZENITH"

var (
	RawLog = &cli.StringFlag{
		Name:    "raw-log",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "RAW_LOG"),
		Usage:   "Path to a raw run log to summarise (eg. 'logs/nightly.raw.yaml')",
	}
	LogDir = &cli.StringFlag{
		Name:    "log-dir",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "LOG_DIR"),
		Usage:   "Directory to scan for raw run logs that have not been summarised yet",
	}
	Divider = &cli.StringFlag{
		Name:    "divider",
		Value:   logging.DefaultDivider,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "DIVIDER"),
		Usage:   "Line prefix separating records in raw and elements logs",
	}
	MockDir = &cli.StringFlag{
		Name:    "mock-dir",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "MOCK_DIR"),
		Usage:   "Directory to write mocks for iterations with passing validators. Leave empty to skip mock writing.",
	}
	RunInterval = &cli.DurationFlag{
		Name:    "run-interval",
		Value:   0,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "RUN_INTERVAL"),
		Usage:   "Interval between scans of --log-dir (e.g. '1m', '30s'). Set to 0 or omit for run-once mode.",
	}
	HealthzAddr = &cli.StringFlag{
		Name:    "healthz.addr",
		Value:   "0.0.0.0",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "HEALTHZ_ADDR"),
		Usage:   "Healthz listening address used in watch mode",
	}
	HealthzPort = &cli.IntFlag{
		Name:    "healthz.port",
		Value:   8080,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "HEALTHZ_PORT"),
		Usage:   "Healthz listening port used in watch mode",
	}
	NoConsoleSummary = &cli.BoolFlag{
		Name:    "no-console-summary",
		Value:   false,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "NO_CONSOLE_SUMMARY"),
		Usage:   "Do not print the run summary table after each log is summarised",
	}
)

var requiredFlags = []cli.Flag{}

var optionalFlags = []cli.Flag{
	RawLog,
	LogDir,
	Divider,
	MockDir,
	RunInterval,
	HealthzAddr,
	HealthzPort,
	NoConsoleSummary,
}
var Flags []cli.Flag

func init() {
	optionalFlags = append(optionalFlags, oplog.CLIFlags(EnvVarPrefix)...)
	optionalFlags = append(optionalFlags, opmetrics.CLIFlags(EnvVarPrefix)...)

	Flags = append(requiredFlags, optionalFlags...)
}

func CheckRequired(ctx *cli.Context) error {
	for _, f := range requiredFlags {
		if !ctx.IsSet(f.Names()[0]) {
			return fmt.Errorf("flag %s is required", f.Names()[0])
		}
	}
	if ctx.String(RawLog.Name) == "" && ctx.String(LogDir.Name) == "" {
		return errors.New("one of --raw-log or --log-dir is required")
	}
	if ctx.Duration(RunInterval.Name) > 0 && ctx.String(LogDir.Name) == "" {
		return errors.New("--run-interval needs --log-dir to watch")
	}
	return opflags.CheckRequiredXor(ctx)
}
