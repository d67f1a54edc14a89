// Command infcounter runs one counter that prints its value every second.
// Send it SIGUSR1 to reset the value and SIGUSR2 to reverse its direction.
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
		Use:          "infcounter",
		Short:        "Count forever, one step per second",
		Long:         "infcounter prints 'current count is '<n>' : <pid>' once a second. SIGUSR1 resets the count to zero and SIGUSR2 reverses the counting direction.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(cfg.LogLevel, os.Stderr, "cmd", "infcounter")
			if err != nil {
				return err
			}
			counter := infcounter.NewCounter(
				infcounter.WithLogger(l),
				infcounter.WithAnnounceDir(cfg.AnnounceDir),
			)
			return counter.Run(context.Background())
		},
	}
	cmd.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level written to stderr")
	cmd.Flags().StringVar(&cfg.AnnounceDir, "announce-dir", cfg.AnnounceDir, "directory to announce this counter in")

	if err := cmd.Execute(); err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
