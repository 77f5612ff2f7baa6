package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/netwatch/internal/config"
	"github.com/rileyhilliard/netwatch/internal/engine"
	"github.com/rileyhilliard/netwatch/internal/errors"
	"github.com/rileyhilliard/netwatch/internal/fetch"
	"github.com/rileyhilliard/netwatch/internal/probe"
	"github.com/rileyhilliard/netwatch/internal/render"
	"github.com/rileyhilliard/netwatch/internal/resolve"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Watch command flags
var (
	watchDevicesFlag  string
	watchIntervalFlag string
	watchPlainFlag    bool
)

// watchCmd is the explicit form of the default command.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the devices in the device file",
	Long: `Poll every device in the device file and show live reachability,
hostname and model.

Examples:
  netwatch watch
  netwatch watch --devices lab-devices.txt
  netwatch watch --interval 5s --plain`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchCommand(cmd.Context())
	},
}

// rootContext returns a context cancelled by SIGINT or SIGTERM.
func rootContext() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return ctx
}

// watchCommand loads config, assembles the engine and runs it until the
// context is cancelled or the TUI quits.
func watchCommand(ctx context.Context) error {
	cfg, err := config.LoadOrDefault(configFlag)
	if err != nil {
		return err
	}
	if err := applyWatchFlags(cfg); err != nil {
		return err
	}

	if len(cfg.Credentials) == 0 {
		return errors.New(errors.ErrConfig,
			"No SSH credentials configured",
			"Run 'netwatch init' or add a 'credentials' section to "+config.ConfigFileName)
	}

	resolver := resolve.New(resolve.WithTTL(cfg.DNS.TTL))
	prober := probe.New(
		probe.WithTimeout(cfg.Probe.Timeout),
		probe.WithMaxWorkers(cfg.Probe.MaxWorkers),
	)
	fetcher := fetch.New(cfg.Credentials,
		fetch.WithSessionTimeout(cfg.Fetch.SessionTimeout),
		fetch.WithCommandTimeout(cfg.Fetch.CommandTimeout),
		fetch.WithMaxWorkers(cfg.Fetch.MaxWorkers),
	)

	engineCfg := engine.Config{
		DeviceFile:     cfg.DeviceFile,
		PollInterval:   cfg.Poll.Interval,
		ReloadInterval: cfg.Poll.ReloadInterval,
		BlinkInterval:  cfg.Poll.BlinkInterval,
		HostnameTTL:    cfg.Fetch.HostnameTTL,
		ModelTTL:       cfg.Fetch.ModelTTL,
	}

	if useTUI() {
		return runTUI(ctx, engineCfg, resolver, prober, fetcher, cfg.Display)
	}
	return runConsole(ctx, engineCfg, resolver, prober, fetcher, cfg.Display)
}

// applyWatchFlags overrides config values with command-line flags.
func applyWatchFlags(cfg *config.Config) error {
	if watchDevicesFlag != "" {
		cfg.DeviceFile = watchDevicesFlag
	}
	if watchIntervalFlag != "" {
		parsed, err := time.ParseDuration(watchIntervalFlag)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("Invalid interval: %s", watchIntervalFlag),
				"Use a valid duration like 1s, 5s, or 1m")
		}
		if parsed < 100*time.Millisecond {
			return errors.New(errors.ErrConfig,
				"Interval too short",
				"Minimum interval is 100ms to avoid flooding the network")
		}
		cfg.Poll.Interval = parsed
	}
	return nil
}

// useTUI reports whether the interactive screen should be used.
func useTUI() bool {
	if watchPlainFlag {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// runTUI runs the engine behind a Bubble Tea program. The engine pushes
// snapshots through the bridge; quitting the TUI stops the engine.
func runTUI(ctx context.Context, engineCfg engine.Config,
	resolver engine.Resolver, prober engine.Prober, fetcher engine.Fetcher,
	display config.DisplayConfig) error {

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := render.NewModel(display.StripSuffixes)
	program := tea.NewProgram(model, tea.WithAltScreen())

	eng := engine.New(engineCfg, resolver, prober, fetcher, render.NewBridge(program))
	go func() {
		eng.Run(ctx)
		program.Quit()
	}()

	_, err := program.Run()
	return err
}

// runConsole runs the engine with the plain line writer. Used for pipes and
// with --plain; exits cleanly on SIGINT.
func runConsole(ctx context.Context, engineCfg engine.Config,
	resolver engine.Resolver, prober engine.Prober, fetcher engine.Fetcher,
	display config.DisplayConfig) error {

	renderer := render.NewConsole(os.Stdout,
		render.WithStripSuffixes(display.StripSuffixes),
		render.WithColor(colorEnabled(display.Color)),
	)

	eng := engine.New(engineCfg, resolver, prober, fetcher, renderer)
	if err := eng.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// colorEnabled resolves the display.color mode against the terminal.
func colorEnabled(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return false
		}
		return termenv.EnvColorProfile() != termenv.Ascii
	}
}

func init() {
	for _, cmd := range []*cobra.Command{rootCmd, watchCmd} {
		cmd.Flags().StringVar(&watchDevicesFlag, "devices", "", "device file path (overrides config)")
		cmd.Flags().StringVar(&watchIntervalFlag, "interval", "", "poll interval (e.g., 1s, 5s)")
		cmd.Flags().BoolVar(&watchPlainFlag, "plain", false, "force plain console output")
	}

	rootCmd.AddCommand(watchCmd)
}
