// Package cli implements the netwatch command-line interface.
//
// The package is organized around Cobra commands, with each command
// delegating to a workflow function for the actual work:
//
//	netwatch            - Watch the devices in the device file (default)
//	netwatch watch      - Same as the bare command
//	netwatch init       - Create a .netwatch.yaml config
//	netwatch version    - Print version information
//	netwatch completion - Generate shell completion scripts
//
// # Renderer Selection
//
// The watch command picks its renderer from the environment: an interactive
// terminal gets the Bubble Tea screen, anything else (pipes, cron, CI) gets
// the plain line-per-cycle console writer. --plain forces the console
// renderer on a terminal.
//
// # Flag Handling
//
// Global flags (--config) are defined on the root command. Watch-specific
// flags like --devices and --interval override the corresponding config
// values for one run without editing the file.
package cli
