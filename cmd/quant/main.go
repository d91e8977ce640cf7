// Command quant turns a trade returns CSV into the JSON files the returns
// dashboard reads.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/theapemachine/bloch/quant"
)

func main() {
	v, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := newLogger(v.GetString("log-level"))
	if err := run(v, logger); err != nil {
		logger.Error("quant build failed", "err", err)
		os.Exit(1)
	}
}

func loadConfig(args []string) (*viper.Viper, error) {
	flags := pflag.NewFlagSet("quant", pflag.ContinueOnError)
	flags.String("input", "data/quant/returns.csv", "trade returns CSV")
	flags.String("data-dir", "_data", "directory for metrics, monthly and overview JSON")
	flags.String("assets-dir", "assets/quant", "directory for the returns series JSON")
	flags.String("log-level", "info", "debug, info, warn or error")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("QUANT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}
	return v, nil
}

func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "quant",
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

func run(v *viper.Viper, logger *log.Logger) error {
	in, err := os.Open(v.GetString("input"))
	if err != nil {
		return err
	}
	defer in.Close()

	trades, err := quant.Load(in)
	if err != nil {
		return fmt.Errorf("load %s: %w", v.GetString("input"), err)
	}

	report := quant.Compute(trades)
	logger.Info("computed report", "trades", report.TradeCount, "total", report.TotalReturn)

	dataDir := v.GetString("data-dir")
	assetsDir := v.GetString("assets-dir")
	for _, dir := range []string{dataDir, assetsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	outputs := []struct {
		path  string
		value any
	}{
		{filepath.Join(dataDir, "quant_metrics.json"), report.Cards()},
		{filepath.Join(dataDir, "quant_monthly.json"), report.MonthlyTable()},
		{filepath.Join(dataDir, "quant_overview.json"), report.Overview()},
		{filepath.Join(assetsDir, "returns.json"), report.Series},
	}

	for _, out := range outputs {
		if err := writeJSON(out.path, out.value); err != nil {
			return err
		}
		logger.Debug("wrote", "path", out.path)
	}

	logger.Info("generated quant artifacts")
	return nil
}

func writeJSON(path string, value any) error {
	buf, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return os.WriteFile(path, append(buf, '\n'), 0o644)
}
