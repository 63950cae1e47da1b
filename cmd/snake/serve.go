package main

import (
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/raster"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Snake SSH server",
	Long: `Start an SSH server where every connection gets its own Snake session
with the mode selector. All users share one leaderboard; runs are saved under
their SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snake/host_key

Examples:
  snake serve                           # Listen on :23234 with auto-generated key
  snake serve --ssh :2222               # Listen on port 2222
  snake serve --host-key ./my_host_key  # Use specific host key
  snake serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh -t localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 30*time.Minute, "Disconnect sessions idle for this long")
}

func runServe(cmd *cobra.Command, _ []string) error {
	if _, _, err := net.SplitHostPort(flagSSHAddr); err != nil {
		return fmt.Errorf("invalid --ssh address %q: %w", flagSSHAddr, err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("serving without scores", "error", err)
	} else {
		defer store.Close()
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: flagIdleTimeout,
		TickRate:    flagFPS,
	}

	server, err := tui.NewSSHServer(cfg, store, raster.OptionsFromConfig(loadConfig().Raster), logger)
	if err != nil {
		return err
	}

	_, port, _ := net.SplitHostPort(cfg.Address)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Starting Snake SSH server on %s\n", cfg.Address)
	fmt.Fprintf(out, "Connect with: ssh -t localhost -p %s\n", port)
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	return server.ListenAndServe()
}
