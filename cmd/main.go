package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/ethereum-optimism/optimism/op-service/cliapp"
	"github.com/ethereum-optimism/optimism/op-service/ctxinterrupt"
	oplog "github.com/ethereum-optimism/optimism/op-service/log"

	zenith "github.com/theGhostJW/zenith-with-typescript-sub000"
	"github.com/theGhostJW/zenith-with-typescript-sub000/exitcodes"
	"github.com/theGhostJW/zenith-with-typescript-sub000/flags"
)

var (
	Version   = "v0.1.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	app := newApp()

	ctx := ctxinterrupt.WithSignalWaiterMain(context.Background())
	err := app.RunContext(ctx, os.Args)
	if err != nil {
		log.Crit("Application failed", "message", err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "zenith-summarise"
	app.Usage = "Summarise zenith raw run logs"
	app.Description = "zenith-summarise folds raw run logs into elements logs, reports and mocks"
	app.Flags = cliapp.ProtectFlags(flags.Flags)
	app.Action = cliapp.LifecycleCmd(run)
	app.ExitErrHandler = func(c *cli.Context, err error) {
		if err == nil {
			return
		}
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			cli.HandleExitCoder(exitErr)
			return
		}
		cli.HandleExitCoder(cli.Exit(err.Error(), exitCodeFor(err)))
	}
	return app
}

// exitCodeFor maps an error that carries no exit code of its own
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitcodes.Success
	case zenith.IsRuntimeError(err):
		return exitcodes.RuntimeErr
	case zenith.IsTestFailureError(err):
		return exitcodes.TestFailure
	default:
		return exitcodes.TestFailure
	}
}

func run(ctx *cli.Context, closeApp context.CancelCauseFunc) (cliapp.Lifecycle, error) {
	logCfg := oplog.ReadCLIConfig(ctx)
	log := oplog.NewLogger(oplog.AppOut(ctx), logCfg)
	oplog.SetGlobalLogHandler(log.Handler())
	oplog.SetupDefaults()

	cfg, err := zenith.NewConfig(ctx, log)
	if err != nil {
		return nil, zenith.NewRuntimeError("create config", err)
	}

	cfg.Log.Debug("Config", "config", cfg)

	summariser, err := zenith.New(ctx.Context, cfg, Version, closeApp)
	if err != nil {
		return nil, zenith.NewRuntimeError("create summariser", err)
	}

	return summariser, nil
}
