package zenith

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	opmetrics "github.com/ethereum-optimism/optimism/op-service/metrics"

	"github.com/theGhostJW/zenith-with-typescript-sub000/flags"
	"github.com/theGhostJW/zenith-with-typescript-sub000/logging"
	"github.com/theGhostJW/zenith-with-typescript-sub000/service"
)

// Config holds the application configuration
type Config struct {
	RawLog         string        // Single raw log to summarise
	LogDir         string        // Directory scanned for raw logs without an elements file
	Divider        string        // Record divider of raw and elements logs
	MockDir        string        // Root directory for mocks; empty disables mock writing
	RunInterval    time.Duration // Interval between scans of LogDir
	RunOnce        bool          // Exit after one pass
	ConsoleSummary bool          // Print the run table after each summarisation
	Service        service.Config
	Log            log.Logger
}

// NewConfig creates a new Config from cli context
func NewConfig(ctx *cli.Context, log log.Logger) (*Config, error) {
	if err := flags.CheckRequired(ctx); err != nil {
		return nil, fmt.Errorf("missing required flags: %w", err)
	}

	runInterval := ctx.Duration(flags.RunInterval.Name)
	if runInterval < 0 {
		return nil, fmt.Errorf("run interval must not be negative: %s", runInterval)
	}

	rawLog, err := absOrEmpty(ctx.String(flags.RawLog.Name), "raw log")
	if err != nil {
		return nil, err
	}
	if rawLog != "" && !logging.IsRawLog(rawLog) {
		return nil, fmt.Errorf("raw log '%s' must contain %q in its file name", rawLog, logging.RawInfix)
	}
	logDir, err := absOrEmpty(ctx.String(flags.LogDir.Name), "log directory")
	if err != nil {
		return nil, err
	}
	mockDir, err := absOrEmpty(ctx.String(flags.MockDir.Name), "mock directory")
	if err != nil {
		return nil, err
	}

	divider := ctx.String(flags.Divider.Name)
	if divider == "" {
		divider = logging.DefaultDivider
	}

	svc := service.Config{
		HealthzHost: ctx.String(flags.HealthzAddr.Name),
		HealthzPort: ctx.Int(flags.HealthzPort.Name),
	}
	if metricsCfg := opmetrics.ReadCLIConfig(ctx); metricsCfg.Enabled {
		svc.MetricsHost = metricsCfg.ListenAddr
		svc.MetricsPort = metricsCfg.ListenPort
	}

	return &Config{
		RawLog:         rawLog,
		LogDir:         logDir,
		Divider:        divider,
		MockDir:        mockDir,
		RunInterval:    runInterval,
		RunOnce:        runInterval == 0,
		ConsoleSummary: !ctx.Bool(flags.NoConsoleSummary.Name),
		Service:        svc,
		Log:            log,
	}, nil
}

func absOrEmpty(path, what string) (string, error) {
	if path == "" {
		return "", nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s '%s': %w", what, path, err)
	}
	return abs, nil
}
