// The liveflow command runs a demo dataflow graph with the stock block
// catalog and serves the monitoring API.
package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/liveflow/blocks"
	"github.com/sarchlab/liveflow/datarecording"
	"github.com/sarchlab/liveflow/engine"
	"github.com/sarchlab/liveflow/monitoring"
)

var (
	flagRate    float64
	flagPort    int
	flagMonitor bool
	flagRecord  string
	flagOpen    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "liveflow",
	Short: "liveflow runs a live dataflow graph at a controlled tick rate.",
	Long: `liveflow wires a demo graph from the stock block catalog ` +
		`(an oscillator feeding a not gate and an or gate), drives it with the ` +
		`self-correcting tick scheduler, and exposes the engine's runtime ` +
		`controls over HTTP.`,
	RunE: run,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func init() {
	// A .env file can override the built-in defaults; flags win over both.
	_ = godotenv.Load()

	rootCmd.Flags().Float64Var(&flagRate, "rate",
		envFloat("LIVEFLOW_RATE", engine.DefaultTickRate),
		"target tick rate in ticks per second")
	rootCmd.Flags().IntVar(&flagPort, "port",
		envInt("LIVEFLOW_MONITOR_PORT", 0),
		"monitoring server port, 0 picks a random port")
	rootCmd.Flags().BoolVar(&flagMonitor, "monitor", true,
		"serve the monitoring API")
	rootCmd.Flags().StringVar(&flagRecord, "record", "",
		"record tick-rate samples into the given SQLite database path")
	rootCmd.Flags().BoolVar(&flagOpen, "open", false,
		"open the monitoring URL in a browser")
}

func run(_ *cobra.Command, _ []string) error {
	engine.UseXIDGenerator()

	e := engine.NewEngine().
		WithBlockTypes(blocks.Catalog()...).
		WithTickRate(flagRate)

	if err := buildDemoGraph(e); err != nil {
		return err
	}

	if flagRecord != "" {
		recorder := datarecording.New(flagRecord)
		e.AcceptHook(datarecording.NewRateLogger(recorder))
	}

	if flagMonitor {
		monitor := monitoring.NewMonitor()
		monitor.RegisterEngine(e)
		if flagPort != 0 {
			monitor.WithPortNumber(flagPort)
		}
		monitor.StartServer()
		defer monitor.StopServer()

		if flagOpen {
			_ = browser.OpenURL(monitor.URL())
		}
	}

	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := e.Run(ctx)
	if err == ctx.Err() {
		return nil
	}

	return err
}

// buildDemoGraph recreates the classic demo wiring: a hertz oscillator
// feeding a not gate, both feeding an or gate.
func buildDemoGraph(e *engine.Engine) error {
	hertz, err := e.AddBlock("hertz")
	if err != nil {
		return err
	}

	not, err := e.AddBlock("not")
	if err != nil {
		return err
	}

	or, err := e.AddBlock("or")
	if err != nil {
		return err
	}

	if err := e.Wire(not.ID(), "a", hertz.ID(), "hertz"); err != nil {
		return err
	}

	if err := e.Wire(or.ID(), "a", not.ID(), "out"); err != nil {
		return err
	}

	return e.Wire(or.ID(), "b", hertz.ID(), "hertz")
}

func envFloat(key string, fallback float64) float64 {
	s, found := os.LookupEnv(key)
	if !found {
		return fallback
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}

	return v
}

func envInt(key string, fallback int) int {
	s, found := os.LookupEnv(key)
	if !found {
		return fallback
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}

	return v
}
