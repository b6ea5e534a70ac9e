// Command probe exercises a running dashboard over HTTP.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/sisu/pkg/logger"
	"github.com/spf13/cobra"
)

var rootFlags struct {
	verbose bool
}

var rootCmd = &cobra.Command{
	Use:           "probe",
	Short:         "Send selections to a SISU dashboard and check the answers",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if err := logger.Init(logger.WithOutput(os.Stderr)); err != nil {
			return err
		}
		if rootFlags.verbose {
			return logger.SetLevelString("debug")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false, "Log every violation")
	rootCmd.AddCommand(runCmd, showCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = os.Stderr.WriteString("probe: " + err.Error() + "\n")
		os.Exit(1)
	}
}
