package primeview

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/fatih/color"
	"github.com/k0kubun/pp"
	"github.com/mwiater/primeview/internal/filtergroup"
	"github.com/mwiater/primeview/internal/kvstore"
	"github.com/mwiater/primeview/internal/reportview"
	"github.com/spf13/cobra"
)

var (
	flagOn      = color.New(color.FgGreen).SprintFunc()
	flagOff     = color.New(color.FgRed).SprintFunc()
	warnText    = color.New(color.FgYellow).SprintFunc()
	headingText = color.New(color.Bold).SprintFunc()
	defaultText = color.New(color.Faint).SprintFunc()
)

// queryState is the decoded page state dumped with --debug.
type queryState struct {
	Location              string
	SortColumn            string
	SortDescending        bool
	HideSystemInformation bool
	HideFilters           bool
	HidePresets           bool
	ReportID              string
	Implementations       []string
	Filters               map[string]filtergroup.Flags
}

// queryCmd implements the 'query' command, which decodes a location without
// touching the preset store or the report directory.
var queryCmd = &cobra.Command{
	Use:   "query <location>",
	Short: "Decode and canonicalize a report location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := openPage(cmd.Context(), loadedConfig(), args[0], kvstore.NewMemory(), false)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, page.Location())
		writeState(out, page.Page)
		writeBindings(out, page.Page)
		writeUnknownTokens(out, normalizeLocation(args[0]))

		if loadedConfig().Debug {
			state := queryState{
				Location:              page.Location(),
				SortColumn:            page.SortColumn,
				SortDescending:        page.SortDescending,
				HideSystemInformation: page.HideSystemInformation,
				HideFilters:           page.HideFilters,
				HidePresets:           page.HideFilterPresets,
				ReportID:              page.ReportID,
				Implementations:       page.FilterImplementations(),
				Filters:               map[string]filtergroup.Flags{},
			}
			for _, g := range filtergroup.Groups() {
				state.Filters[g.Key] = g.Decode(page.FilterText(g))
			}
			pp.Fprintln(out, state)
		}
		return nil
	},
}

func writeState(out io.Writer, page *reportview.Page) {
	direction := "ascending"
	if page.SortDescending {
		direction = "descending"
	}
	report := page.ReportID
	if report == "" {
		report = "latest"
	}
	fmt.Fprintf(out, "%s %s %s\n", headingText("Sort:"), page.SortColumn, direction)
	fmt.Fprintf(out, "%s %s\n", headingText("Report:"), report)
	fmt.Fprintf(out, "%s system info %s, filters %s, presets %s\n", headingText("Panels:"),
		shownHidden(page.HideSystemInformation), shownHidden(page.HideFilters), shownHidden(page.HideFilterPresets))

	impls := "all"
	if selected := page.FilterImplementations(); len(selected) > 0 {
		impls = strings.Join(selected, ", ")
	}
	fmt.Fprintf(out, "%s %s\n", headingText("Implementations:"), impls)

	for _, g := range filtergroup.Groups() {
		parts := make([]string, 0, len(g.Flags))
		for _, f := range g.Flags {
			if page.Flag(g, f.Token) {
				parts = append(parts, flagOn("[x] "+f.Label))
			} else {
				parts = append(parts, flagOff("[ ] "+f.Label))
			}
		}
		fmt.Fprintf(out, "%s %s\n", headingText(g.Name+":"), strings.Join(parts, "  "))
	}
}

// writeBindings lists every query key with its value, dimming the ones left at
// their default and therefore absent from the location.
func writeBindings(out io.Writer, page *reportview.Page) {
	fmt.Fprintln(out, headingText("Query keys:"))
	for _, f := range page.Bindings() {
		line := fmt.Sprintf("  %-3s %-26s %q", f.Key, f.Name, f.Value())
		if f.IsDefault() {
			line = defaultText(line + " (default)")
		}
		fmt.Fprintln(out, line)
	}
}

func writeUnknownTokens(out io.Writer, location string) {
	u, err := url.Parse(location)
	if err != nil {
		return
	}
	values := u.Query()
	for _, g := range filtergroup.Groups() {
		if unknown := g.Unknown(values.Get(g.Key)); len(unknown) > 0 {
			fmt.Fprintln(out, warnText(fmt.Sprintf("ignored unknown %s tokens: %s", g.Key, strings.Join(unknown, ", "))))
		}
	}
}

func shownHidden(hidden bool) string {
	if hidden {
		return "hidden"
	}
	return "shown"
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
