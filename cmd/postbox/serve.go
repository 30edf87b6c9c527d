package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/zulandar/postbox/internal/api"
	"github.com/zulandar/postbox/internal/channel"
	"github.com/zulandar/postbox/internal/digest"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Postbox HTTP server",
		Long:  "Serves POST /messages and GET /messages/user/{username}, backed by the configured store and notification channel. Blocks until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, s, err := openStore(configPath)
			if err != nil {
				return err
			}
			if err := s.Migrate(); err != nil {
				return err
			}

			logger, err := zap.NewProduction()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer logger.Sync()

			pub, err := channel.FromConfig(cfg.Channel, logger)
			if err != nil {
				return err
			}
			defer pub.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if cfg.Digest.Enabled {
				d, err := digest.New(digest.Opts{
					Store:    s,
					Pub:      pub,
					Topic:    cfg.Channel.Topic,
					Lookback: time.Duration(cfg.Digest.LookbackHours) * time.Hour,
					Logger:   logger,
				})
				if err != nil {
					return err
				}
				go func() {
					if err := d.Run(ctx, cfg.Digest.Schedule); err != nil {
						logger.Error("digest scheduler stopped", zap.Error(err))
					}
				}()
			}

			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			return api.Start(ctx, api.StartOpts{
				Handlers: api.NewHandlers(s, pub, cfg.Channel.Topic, logger),
				Port:     cfg.Server.Port,
				Out:      cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "postbox.yaml", "path to Postbox config file")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides config)")
	return cmd
}
