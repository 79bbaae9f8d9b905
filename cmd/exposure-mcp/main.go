package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ironsheep/exposure-tools-mcp/internal/config"
	"github.com/ironsheep/exposure-tools-mcp/internal/exposure"
	"github.com/ironsheep/exposure-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// app holds what PersistentPreRunE builds for the subcommands.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
	solver *exposure.Solver
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "exposure-mcp",
		Short: "Exposure reciprocity tools over MCP",
		Long: `exposure-mcp derives the missing shutter speed, aperture or ISO that keeps
an exposure equivalent to a metered reference, snapped to real camera scales.

Run without a subcommand to serve MCP over stdin/stdout.

Environment variables:
  EXPOSURE_MCP_LOG_LEVEL=debug     Enable debug logging
  EXPOSURE_MCP_GRANULARITY=half    Default scale granularity`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: a.runServe,
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve MCP over stdin/stdout (default)",
			Args:  cobra.NoArgs,
			RunE:  a.runServe,
		},
		a.newSolveCmd(),
		a.newScaleCmd(),
		a.newEVCmd(),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration and builds the logger and solver.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.logger, err = newLogger(cfg.Logging.Level, a.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.solver, err = cfg.NewSolver()
	if err != nil {
		return err
	}
	return nil
}

// newLogger builds a production zap logger on stderr; stdout carries MCP.
func newLogger(level string, verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{"stderr"}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

func (a *app) runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if Version != "dev" {
		server.Version = Version
	}
	a.logger.Info("starting exposure MCP server",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("commit", GitCommit))

	srv := server.New(a.cfg, a.solver, a.logger)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func (a *app) granularity(flag string) (exposure.Granularity, error) {
	if flag == "" {
		return a.cfg.DefaultGranularity()
	}
	return exposure.ParseGranularity(flag)
}

// parseTriple splits "1/125,f/8,100" into a Setting.
func parseTriple(s string) (exposure.Setting, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return exposure.Setting{}, fmt.Errorf("expected shutter,aperture,iso but got %q", s)
	}
	return exposure.Setting{
		ShutterSpeed: strings.TrimSpace(parts[0]),
		Aperture:     strings.TrimSpace(parts[1]),
		ISO:          strings.TrimSpace(parts[2]),
	}, nil
}

func (a *app) newSolveCmd() *cobra.Command {
	var (
		solveFor    string
		ref         string
		target      exposure.Setting
		granularity string
		ev          float64
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve the missing axis of an equivalent exposure",
		Long: `Computes the shutter speed, aperture or ISO that gives the same exposure as the
reference once the other two are changed.

Example:
  exposure-mcp solve --for aperture --ref 1/125,f/8,100 --shutter 1/500 --iso 100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			axis, err := exposure.ParseAxis(solveFor)
			if err != nil {
				return err
			}
			reference, err := parseTriple(ref)
			if err != nil {
				return err
			}
			g, err := a.granularity(granularity)
			if err != nil {
				return err
			}

			report, err := a.solver.Solve(exposure.Request{
				Reference:    reference,
				Target:       target,
				Solve:        axis,
				Granularity:  g,
				Compensation: ev,
			})
			if err != nil {
				return err
			}
			a.logger.Debug("solved", zap.Stringer("axis", axis), zap.String("value", report.Value))

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			return writeReport(cmd.OutOrStdout(), report)
		},
	}

	f := cmd.Flags()
	f.StringVar(&solveFor, "for", "", "axis to solve: shutter, aperture or iso")
	f.StringVar(&ref, "ref", "", "reference exposure as shutter,aperture,iso")
	f.StringVar(&target.ShutterSpeed, "shutter", "", "target shutter speed")
	f.StringVar(&target.Aperture, "aperture", "", "target aperture")
	f.StringVar(&target.ISO, "iso", "", "target ISO")
	f.StringVarP(&granularity, "granularity", "g", "", "scale granularity: full, half or third")
	f.Float64Var(&ev, "ev", 0, "EV compensation in stops; positive brightens")
	f.BoolVar(&asJSON, "json", false, "print the full report as JSON")
	_ = cmd.MarkFlagRequired("for")
	_ = cmd.MarkFlagRequired("ref")
	return cmd
}

func writeReport(w io.Writer, r *exposure.Report) error {
	fmt.Fprintf(w, "%s: %s (ideal %s)\n", r.Solved, r.Value, r.Ideal)
	fmt.Fprintf(w, "setting: %s %s ISO %s\n", r.Setting.ShutterSpeed, r.Setting.Aperture, r.Setting.ISO)
	fmt.Fprintf(w, "EV: %.2f (reference %.2f)\n", r.EV, r.ReferenceEV)
	for _, d := range r.Diagnostics {
		fmt.Fprintln(w, d.String())
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) newScaleCmd() *cobra.Command {
	var granularity string

	cmd := &cobra.Command{
		Use:       "scale <shutter|aperture|iso>",
		Short:     "List the settings of a camera scale",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"shutter", "aperture", "iso"},
		RunE: func(cmd *cobra.Command, args []string) error {
			axis, err := exposure.ParseAxis(args[0])
			if err != nil {
				return err
			}
			g, err := a.granularity(granularity)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(a.solver.Scale(axis, g), " "))
			return nil
		},
	}
	cmd.Flags().StringVarP(&granularity, "granularity", "g", "", "scale granularity: full, half or third")
	return cmd
}

func (a *app) newEVCmd() *cobra.Command {
	var granularity string

	cmd := &cobra.Command{
		Use:   "ev <shutter> <aperture> <iso>",
		Short: "Print the exposure value of a setting",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			setting := exposure.Setting{ShutterSpeed: args[0], Aperture: args[1], ISO: args[2]}
			ev, err := exposure.ExposureValue(setting)
			if err != nil {
				return err
			}
			g, err := a.granularity(granularity)
			if err != nil {
				return err
			}
			envelope, err := a.solver.Envelope(g)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "EV %.2f\n", ev)
			if d := envelope.Check(ev); d != nil {
				fmt.Fprintln(w, d.String())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&granularity, "granularity", "g", "", "scale granularity for the envelope check")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// No config or logger needed.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "exposure-tools-mcp %s\n", Version)
			fmt.Fprintf(w, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
		},
	}
}
