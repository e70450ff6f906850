// Command channels-console runs the terminal dashboard against a local
// channels-console HTTP query server.
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pawurb/channels-console-go/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "channels-console",
		Short: "Terminal dashboard for instrumented Go channels and streams",
	}
	root.AddCommand(newConsoleCmd())
	return root
}

func newConsoleCmd() *cobra.Command {
	var metricsPort int

	cmd := &cobra.Command{
		Use:   "console",
		Short: "Launch the interactive terminal dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := tui.NewApp(fmt.Sprintf("%d", metricsPort))
			if err := app.Run(); err != nil {
				log.WithField("component", "cmd").WithError(err).Error("dashboard exited with error")
				return err
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&metricsPort, "metrics-port", 6770, "port of the channels-console HTTP query server")
	return cmd
}
