package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Global flags available to all subcommands
var (
	configFlag string
)

// rootCmd is the base command. Running it bare starts the watch screen.
var rootCmd = &cobra.Command{
	Use:   "netwatch",
	Short: "Watch reachability and identity of network devices",
	Long: `netwatch polls a list of network devices and shows, live, which ones
answer ping and what they call themselves.

Every second each device is pinged; reachable devices are asked over SSH
for their hostname and model, with answers cached so devices are not
hammered. The device list file is re-read while running, so devices can
be added or removed without a restart.

Examples:
  netwatch
  netwatch --devices lab-devices.txt
  netwatch --plain | tee reachability.log`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchCommand(cmd.Context())
	},
}

// Execute runs the root command and prints structured errors.
func Execute() {
	if err := rootCmd.ExecuteContext(rootContext()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file path")
}
