package main

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/danielliu2707/folio/analytics"
	"github.com/danielliu2707/folio/config"
	"github.com/danielliu2707/folio/log"
	"github.com/danielliu2707/folio/server"
	"github.com/danielliu2707/folio/site"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:               "folio",
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	Short:             "Folio serves a personal portfolio and blog",
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer log.Sync()

		c, err := setup()
		if err != nil {
			return err
		}

		reporter, err := analytics.NewReporter(analytics.ModeFor(c.Development), c.DataDirectory)
		if err != nil {
			return err
		}
		if closer, ok := reporter.(io.Closer); ok {
			defer closer.Close()
		}

		err = analytics.Inject(c.Development, reporter)
		if err != nil {
			return err
		}

		server, err := server.NewServer(server.Options{Config: c})
		if err != nil {
			return err
		}

		log := log.S()
		quit := make(chan os.Signal, 1)

		go func() {
			log.Info("starting server")
			err := server.Start()
			if err != nil {
				log.Errorf("failed to start server: %s", err)
			}
			quit <- os.Interrupt
		}()

		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		log.Info("stopping server")
		return server.Stop()
	},
}

// setup parses the configuration and checks the site registries.
func setup() (*config.Config, error) {
	c, err := config.Parse()
	if err != nil {
		return nil, err
	}

	err = site.Validate()
	if err != nil {
		return nil, err
	}

	return c, nil
}
