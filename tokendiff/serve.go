package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"znkr.io/tokendiff/tokendiff/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve token diffs via HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			s, err := server.Run(cfg.Addr, cfg)
			if err != nil {
				return err
			}
			defer s.Shutdown(context.Background())
			log.Printf("Now serving at %s, press Ctrl-C to shut down", s.Addr())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			// Reload the config file whenever it changes. The address can't be changed
			// without a restart.
			path, _ := cmd.Flags().GetString("config")
			if path != "" {
				w, err := newFileWatcher(path)
				if err != nil {
					return err
				}
				defer w.Close()

				go func() {
					err := w.run(ctx, func(string) {
						next, err := loadConfig(cmd)
						if err != nil {
							log.Printf("failed to reload config: %v", err)
							return
						}
						if next.Addr != cfg.Addr {
							log.Printf("Ignoring changed address %s, restart to apply", next.Addr)
						}
						s.ReplaceConfig(next)
						log.Printf("Config reloaded")
					})
					if err != nil && ctx.Err() == nil {
						log.Printf("stopped watching config: %v", err)
					}
				}()
			}

			select {
			case err := <-s.Error():
				return fmt.Errorf("serving: %v", err)
			case <-ctx.Done():
				fmt.Print("\r") // remove Ctrl-C output characters
				log.Printf("Received Ctrl-C, shutting down")
				return nil
			}
		},
	}
	cmd.Flags().String("addr", "", "address to listen on (overrides config)")
	return cmd
}
