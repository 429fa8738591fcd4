package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/ngtax/internal/calculation"
	"github.com/rgehrsitz/ngtax/internal/config"
	"github.com/rgehrsitz/ngtax/internal/store"
	"github.com/spf13/cobra"
)

// slogLogger implements calculation.Logger on top of log/slog
type slogLogger struct {
	l *slog.Logger
}

func newSlogLogger(w io.Writer, debugEnabled bool) slogLogger {
	level := slog.LevelInfo
	if debugEnabled {
		level = slog.LevelDebug
	}
	return slogLogger{l: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))}
}

func (s slogLogger) Debugf(format string, args ...any) { s.l.Debug(fmt.Sprintf(format, args...)) }
func (s slogLogger) Infof(format string, args ...any)  { s.l.Info(fmt.Sprintf(format, args...)) }
func (s slogLogger) Warnf(format string, args ...any)  { s.l.Warn(fmt.Sprintf(format, args...)) }
func (s slogLogger) Errorf(format string, args ...any) { s.l.Error(fmt.Sprintf(format, args...)) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ngtax %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "ngtax",
	Short: "Nigerian personal income tax comparison",
	Long: "Compares personal income tax under the old regime (consolidated relief allowance)\n" +
		"and the new regime (rent relief) for the same income and deductions.",
	SilenceUsage: true,
}

// loadEngine builds an engine from an optional rules override file
func loadEngine(rulesFile string, logger calculation.Logger, debugEnabled bool) (*calculation.Engine, error) {
	engine := calculation.NewEngine()
	if rulesFile != "" {
		rules, err := config.NewInputParser().LoadRulesFromFile(rulesFile)
		if err != nil {
			return nil, err
		}
		engine, err = calculation.NewEngineWithRules(rules)
		if err != nil {
			return nil, err
		}
	}
	engine.SetLogger(logger)
	engine.Debug = debugEnabled
	return engine, nil
}

// openStore opens the record database named by the --db and --db-type flags
func openStore(ctx context.Context, cmd *cobra.Command) (*store.Store, error) {
	dsn, _ := cmd.Flags().GetString("db")
	driver, _ := cmd.Flags().GetString("db-type")
	return store.Open(ctx, driver, dsn)
}

func addStoreFlags(cmd *cobra.Command) {
	defaults := config.DefaultServerConfig()
	cmd.Flags().String("db", defaults.DatabaseURL, "Database file or connection URL")
	cmd.Flags().String("db-type", defaults.DatabaseType, "Database type: sqlite or postgres")
}

func init() {
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
