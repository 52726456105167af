package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

const dayLayout = "2006-01-02"

func newChannelCmd(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channel",
		Short: "Channel post operations",
	}
	cmd.AddCommand(newChannelSendCmd(logger))
	return cmd
}

func newChannelSendCmd(logger *slog.Logger) *cobra.Command {
	var (
		pageID string
		today  bool
		day    string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send one post to the channel",
		Long: `Send one post to the channel.

With --page-id the post is sent directly. Otherwise the completed post
planned for the given day (--day, or today with --today) with the highest
publish priority is selected.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(logger)
			if err != nil {
				return err
			}
			svc, err := a.channelService(dryRun)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if pageID != "" {
				result, err := svc.SendByPageID(ctx, pageID, dryRun)
				if err != nil {
					return err
				}
				report(result)
				return nil
			}

			target := time.Now()
			if !today && day != "" {
				target, err = time.ParseInLocation(dayLayout, day, time.Local)
				if err != nil {
					return fmt.Errorf("parse --day: %w", err)
				}
			}

			result, err := svc.SendByDay(ctx, target, dryRun)
			if err != nil {
				return err
			}
			report(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&pageID, "page-id", "", "send this page directly")
	cmd.Flags().BoolVar(&today, "today", false, "select from posts planned for today")
	cmd.Flags().StringVar(&day, "day", "", "select from posts planned for this day (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "render without sending or writing state")
	cmd.MarkFlagsMutuallyExclusive("page-id", "today", "day")

	return cmd
}
