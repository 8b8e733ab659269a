package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pguedes/gesticle/commands"
	"github.com/pguedes/gesticle/configuration"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the gesture configuration",
	Long:  `Reads the configuration file and shows how settings resolve, without a running daemon.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadResolver()
	},
}

var configAppsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List applications with their own settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResponse(commands.AppsCommand())
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get [setting]",
	Short: "Resolve one setting",
	Long:  `Resolves a setting such as "swipe.up.3", applying the --app override when present.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResponse(commands.ResolveCommand(commands.ResolveRequest{
			Setting: args[0],
			App:     configApp,
		}))
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every configurable gesture",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResponse(commands.SettingsCommand(commands.SettingsRequest{App: configApp}))
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show which configuration file is used",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResponse(commands.PathCommand())
	},
}

func loadResolver() error {
	path, err := configuration.ConfigFilePath(configFile)
	if err != nil {
		return err
	}

	resolver, err := configuration.NewResolver(path)
	if err != nil {
		return err
	}

	commands.SetResolver(resolver)
	return nil
}

func printResponse(response *commands.CommandResponse) error {
	printJson(response)
	if response.IsError() {
		return fmt.Errorf("%s", response.Error)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configAppsCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configPathCmd)

	configCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "use a specific configuration file")
	configGetCmd.Flags().StringVar(&configApp, "app", "", "application whose overrides apply")
	configListCmd.Flags().StringVar(&configApp, "app", "", "application whose overrides apply")
}
