// Command counterctl lets an operator stop, continue, reverse, reset and kill
// running infcounter processes by pid.
package main

import (
	"context"
	"os"

	"github.com/ngrok/infcounter"
	"github.com/ngrok/infcounter/internal/config"
	"github.com/ngrok/infcounter/internal/logging"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		atexit.Fatal(err)
	}

	cmd := &cobra.Command{
		Use:          "counterctl",
		Short:        "Send control signals to infcounter processes",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(cfg.LogLevel, os.Stderr, "cmd", "counterctl")
			if err != nil {
				return err
			}
			ctrl := infcounter.NewController(os.Stdin, os.Stdout,
				infcounter.WithLogger(l),
				infcounter.WithAnnounceDir(cfg.AnnounceDir),
			)
			atexit.Register(ctrl.Close)
			return ctrl.Run(context.Background())
		},
	}
	cmd.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level written to stderr")
	cmd.Flags().StringVar(&cfg.AnnounceDir, "announce-dir", cfg.AnnounceDir, "directory to list announced counters from")

	if err := cmd.Execute(); err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
