package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

func newNewsletterCmd(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "newsletter",
		Short: "Newsletter operations",
	}
	cmd.AddCommand(newNewsletterGenerateCmd(logger))
	cmd.AddCommand(newNewsletterPublishCmd(logger))
	return cmd
}

func newNewsletterGenerateCmd(logger *slog.Logger) *cobra.Command {
	var startDay, endDay string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compile the posts sent over a period into a new newsletter page",
		Long: `Compile the posts sent over a period into a new newsletter page.

The period defaults to the last seven days ending today. Both bounds are
whole days, inclusive.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(logger)
			if err != nil {
				return err
			}

			end := time.Now()
			if endDay != "" {
				end, err = time.ParseInLocation(dayLayout, endDay, time.Local)
				if err != nil {
					return fmt.Errorf("parse --end-day: %w", err)
				}
			}
			start := end.AddDate(0, 0, -6)
			if startDay != "" {
				start, err = time.ParseInLocation(dayLayout, startDay, time.Local)
				if err != nil {
					return fmt.Errorf("parse --start-day: %w", err)
				}
			}

			result, err := a.newsletterService().Generate(cmd.Context(), start, end)
			if err != nil {
				return err
			}
			report(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&startDay, "start-day", "", "first day of the period (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDay, "end-day", "", "last day of the period (YYYY-MM-DD)")

	return cmd
}

func newNewsletterPublishCmd(logger *slog.Logger) *cobra.Command {
	var (
		pageID string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Mark a generated newsletter as published",
		Long: `Mark a generated newsletter as published and move its posts to the
Published state. Without --page-id the most recently created unpublished
newsletter is targeted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(logger)
			if err != nil {
				return err
			}

			result, err := a.newsletterService().Publish(cmd.Context(), pageID, dryRun)
			if err != nil {
				return err
			}
			report(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&pageID, "page-id", "", "publish this newsletter page")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "resolve the target without writing state")

	return cmd
}
