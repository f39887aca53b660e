package primeview

import (
	"fmt"

	"github.com/mwiater/primeview/internal/appconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var flagShowConfigCheck bool

// showCmd groups the 'show' subcommands.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show application settings",
}

// showConfigCmd implements the 'show config' command, which displays the current configuration settings.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overridden by flags accordingly. With --check the config file itself is loaded and validated without flag overrides.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagShowConfigCheck {
			cfg, err := appconfig.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", cfg.ConfigPath)
			return nil
		}
		appconfig.ShowConfig(cmd.OutOrStdout(), viper.ConfigFileUsed(), loadedConfig())
		return nil
	},
}

func init() {
	showConfigCmd.Flags().BoolVar(&flagShowConfigCheck, "check", false, "load and validate the config file only")
	showCmd.AddCommand(showConfigCmd)
	rootCmd.AddCommand(showCmd)
}
