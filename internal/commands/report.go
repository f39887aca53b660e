package primeview

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/mwiater/primeview/internal/reports"
	"github.com/mwiater/primeview/internal/reportview"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// reportCmd prints the filtered, sorted results of the report at a location.
var reportCmd = &cobra.Command{
	Use:   "report [location]",
	Short: "Print the results of a report as a table",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadedConfig()
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		page, err := openPage(cmd.Context(), cfg, argOrEmpty(args, 0), store, true)
		if err != nil {
			return err
		}
		report := page.Report()
		if report == nil {
			return fmt.Errorf("%w in %s", reports.ErrNotFound, cfg.ReportsDirOrDefault())
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, headingText(page.Title()))

		results := page.Results()
		table := tablewriter.NewWriter(out)
		table.SetHeader(reportview.Headers())
		table.SetAutoWrapText(false)
		for i, r := range results {
			table.Append(page.FormatRow(i+1, r))
		}
		table.Render()

		fmt.Fprintf(out, "%s of %s results shown\n", humanize.Comma(int64(len(results))), humanize.Comma(int64(len(report.Results))))
		return nil
	},
}

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Inspect the report directory",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the reports in the report directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := reports.DirReader{Dir: loadedConfig().ReportsDirOrDefault()}
		ids, err := reader.List()
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"ID", "USER", "GENERATED", "RESULTS"})
		for _, id := range ids {
			report, err := reader.GetReport(cmd.Context(), id)
			if err != nil {
				if !errors.Is(err, reports.ErrNotFound) {
					table.Append([]string{id, "", "unreadable", ""})
				}
				continue
			}
			user, generated := "", ""
			if report.User != nil {
				user = *report.User
			}
			if report.Date != nil {
				generated = humanize.Time(*report.Date)
			}
			table.Append([]string{id, user, generated, humanize.Comma(int64(len(report.Results)))})
		}
		table.Render()
		return nil
	},
}

func init() {
	reportsCmd.AddCommand(reportsListCmd)
	rootCmd.AddCommand(reportCmd, reportsCmd)
}
