package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"table-booking/internal/usecase/commands"

	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Manager reports",
	}
	cmd.AddCommand(newReportDailyCmd())
	return cmd
}

func newReportDailyCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Send every manager the day's reservation breakdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				reports commands.ReportCommands
				loc     *time.Location
			)
			app, err := startCore(cmd.Context(), &reports, &loc)
			if err != nil {
				return err
			}
			defer stopApp(app)

			return runDailyReport(cmd.Context(), cmd.OutOrStdout(), reports, loc, date)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "report day (YYYY-MM-DD), defaults to today in BOOKING_TIMEZONE")
	return cmd
}

func runDailyReport(ctx context.Context, out io.Writer, reports commands.ReportCommands, loc *time.Location, date string) error {
	day := time.Now().In(loc)
	if date != "" {
		var err error
		day, err = time.ParseInLocation(time.DateOnly, date, loc)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
	}

	summary, err := reports.SendDailyReports(ctx, day)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "day=%s managers=%d sent=%d failed=%d skipped=%d\n",
		summary.Day, summary.Managers, summary.Sent, summary.Failed, summary.Skipped)
	return nil
}
