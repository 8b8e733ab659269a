package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pguedes/gesticle/commands"
	"github.com/pguedes/gesticle/daemon"
)

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Ask the running daemon to reload its configuration",
	Long: `Requests a configuration reload from the running gesticle daemon over the
D-Bus session bus, or over the JSON-RPC control server when --http is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var err error
		transport := "d-bus"
		if reloadHTTP != "" {
			transport = daemon.NormalizeAddress(reloadHTTP)
			err = daemon.ReloadOverHTTP(reloadHTTP)
		} else {
			err = daemon.RequestReload(cmd.Context())
		}

		if err != nil {
			response := commands.NewErrorResponse(err)
			printJson(response)
			return fmt.Errorf("%s", response.Error)
		}

		printJson(commands.NewSuccessResponse(map[string]interface{}{
			"message": "configuration reloaded",
			"via":     transport,
		}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reloadCmd)

	reloadCmd.Flags().StringVar(&reloadHTTP, "http", "", "reload through the control server at this address instead of d-bus")
}
