package main

import (
	"github.com/okian/sisu/internal/probe"
	"github.com/spf13/cobra"
)

var runFlags probe.Config

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Send random selections concurrently and verify every response",
	RunE:  runRun,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runFlags.BaseURL, "url", probe.DefaultBaseURL, "Base URL of the service")
	f.IntVarP(&runFlags.Requests, "requests", "n", probe.DefaultRequests, "Number of updates to send")
	f.IntVarP(&runFlags.Workers, "workers", "w", probe.DefaultWorkers, "Concurrent requests")
	f.Uint64Var(&runFlags.Seed, "seed", 0, "Selection seed (0 picks one)")
	f.DurationVar(&runFlags.Timeout, "timeout", probe.DefaultTimeout, "HTTP request timeout")
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg := runFlags
	cfg.Verbose = rootFlags.verbose
	sum, err := probe.Run(cmd.Context(), cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return sum.Err()
}
