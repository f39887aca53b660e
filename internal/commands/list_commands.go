// internal/commands/list_commands.go
package primeview

import (
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// commandInfo holds the path and description of a command for display.
type commandInfo struct {
	path        string
	description string
}

// commandsCmd prints the command tree, one indented path per row.
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List all commands and subcommands",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetBorder(false)
		table.SetColumnSeparator("")
		table.SetHeaderLine(false)
		table.SetAutoWrapText(false)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		table.SetHeader([]string{"Command", "Description"})
		for _, data := range collectCommandData(rootCmd, "", "") {
			table.Append([]string{data.path, data.description})
		}
		table.Render()
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}

// collectCommandData walks the command tree and returns a flattened slice of
// path/description pairs, leaving out help and shell completion.
func collectCommandData(cmd *cobra.Command, currentPath string, indent string) []commandInfo {
	if cmd.Name() == "help" || strings.Contains(cmd.Name(), "completion") {
		return nil
	}

	fullPath := cmd.Name()
	if currentPath != "" {
		fullPath = currentPath + " " + cmd.Name()
	}

	allData := []commandInfo{{path: indent + fullPath, description: cmd.Short}}
	for _, subCmd := range cmd.Commands() {
		allData = append(allData, collectCommandData(subCmd, fullPath, indent+"  ")...)
	}
	return allData
}
