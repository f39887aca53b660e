package primeview

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mwiater/primeview/internal/presets"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var flagPresetsOutput string

// presetsCmd groups the preset subcommands.
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Manage named filter presets",
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(loadedConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		list := presets.New(store).Load()
		return writePresets(cmd.OutOrStdout(), list, flagPresetsOutput)
	},
}

var presetsAddCmd = &cobra.Command{
	Use:   "add <name> [location]",
	Short: "Save the filters of a location as a preset",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(args[0]) == "" {
			return presets.ErrInvalidName
		}
		cfg := loadedConfig()
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		page, err := openPage(cmd.Context(), cfg, argOrEmpty(args, 1), store, false)
		if err != nil {
			return err
		}
		page.PresetName = args[0]
		if err := page.AddPreset(); err != nil {
			return err
		}
		index, _ := page.PresetStore().Find(args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "saved preset %q at position %d\n", args[0], index+1)
		return nil
	},
}

var presetsRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Delete a preset by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(loadedConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		s := presets.New(store)
		s.Load()
		index, ok := s.Find(args[0])
		if !ok {
			return presetNotFound(s, args[0])
		}
		name := s.List()[index].Name
		if err := s.RemoveAt(index); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed preset %q\n", name)
		return nil
	},
}

var presetsApplyCmd = &cobra.Command{
	Use:   "apply <name> [location]",
	Short: "Print the location with a preset's filters applied",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadedConfig()
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		page, err := openPage(cmd.Context(), cfg, argOrEmpty(args, 1), store, false)
		if err != nil {
			return err
		}
		index, ok := page.PresetStore().Find(args[0])
		if !ok {
			return presetNotFound(page.PresetStore(), args[0])
		}
		page.ApplyPreset(index)
		page.AfterRender()
		fmt.Fprintln(cmd.OutOrStdout(), page.Location())
		return nil
	},
}

func presetNotFound(s *presets.Store, name string) error {
	if suggestion, ok := s.Closest(name); ok {
		return fmt.Errorf("preset %q not found (did you mean %q?)", name, suggestion)
	}
	return fmt.Errorf("preset %q not found", name)
}

func writePresets(out io.Writer, list []presets.Preset, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		if list == nil {
			list = []presets.Preset{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	case "yaml":
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(list)
	case "", "table":
		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"#", "NAME", "PARALLELISM", "ALGORITHM", "FAITHFUL", "BITS", "IMPLEMENTATIONS"})
		for i, p := range list {
			table.Append([]string{strconv.Itoa(i + 1), p.Name, p.ParallelismText, p.AlgorithmText, p.FaithfulText, p.BitsText, p.ImplementationText})
		}
		table.Render()
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
	}
}

func init() {
	presetsListCmd.Flags().StringVarP(&flagPresetsOutput, "output", "o", "table", "Output format: table, json or yaml")
	presetsCmd.AddCommand(presetsListCmd, presetsAddCmd, presetsRemoveCmd, presetsApplyCmd)
	rootCmd.AddCommand(presetsCmd)
}
