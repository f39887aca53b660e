package primeview

import (
	"fmt"

	"github.com/mwiater/primeview/internal/tui"
	"github.com/spf13/cobra"
)

// viewCmd implements the 'view' command, the interactive report viewer.
var viewCmd = &cobra.Command{
	Use:         "view [location]",
	Short:       "Browse a report interactively",
	Long:        `Open the report at the given location (for example "/report?id=2021-07-15&fa=wh") in the terminal viewer. The final location is printed on exit.`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{annotationFileLogging: "true"},
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
		if err := tui.Run(cmd.Context(), page); err != nil {
			return fmt.Errorf("run viewer: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), page.Location())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
