package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/zulandar/postbox/internal/channel"
	"github.com/zulandar/postbox/internal/models"
	"go.uber.org/zap"
)

func newPostCmd() *cobra.Command {
	var (
		configPath  string
		title       string
		description string
		username    string
	)

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post a message",
		Long:  "Stores a message and publishes it to the notification channel, the same sequence the HTTP submission path runs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := models.NewMessageRequest{
				Title:       title,
				Description: description,
				Username:    username,
			}
			if err := req.Validate(); err != nil {
				return err
			}

			cfg, s, err := openStore(configPath)
			if err != nil {
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

			ctx := cmd.Context()
			msg := models.NewMessage(req)
			if err := s.Put(ctx, msg); err != nil {
				return err
			}
			payload, err := json.Marshal(msg)
			if err != nil {
				return fmt.Errorf("marshal message: %w", err)
			}
			if err := pub.Publish(ctx, cfg.Channel.Topic, payload); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Posted message %s by %s\n", msg.ID, msg.Author)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "postbox.yaml", "path to Postbox config file")
	cmd.Flags().StringVar(&title, "title", "", "message title (required)")
	cmd.Flags().StringVar(&description, "description", "", "message description (required)")
	cmd.Flags().StringVar(&username, "username", "", "author username (required)")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("description")
	cmd.MarkFlagRequired("username")
	return cmd
}

func newListCmd() *cobra.Command {
	var (
		configPath string
		username   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List messages from an author",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := openStore(configPath)
			if err != nil {
				return err
			}

			msgs, err := s.ByAuthor(cmd.Context(), username)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(msgs) == 0 {
				fmt.Fprintf(out, "No messages from %s\n", username)
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCREATED")
			for _, m := range msgs {
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					m.ID, m.Title,
					time.UnixMilli(m.CreatedAt).Format("2006-01-02 15:04"))
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "postbox.yaml", "path to Postbox config file")
	cmd.Flags().StringVar(&username, "username", "", "author username (required)")
	cmd.MarkFlagRequired("username")
	return cmd
}
