package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pguedes/gesticle/daemon"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Control server management commands",
	Long:  `Commands for managing the control server of a running gesticle daemon.`,
}

var serverKillCmd = &cobra.Command{
	Use:   "kill",
	Short: "Stop a running gesticle daemon",
	Long:  `Connects to the control server and sends a shutdown command via JSON-RPC.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// GetString cannot fail for defined flags
		addr, _ := cmd.Flags().GetString("listen")

		if err := daemon.ShutdownOverHTTP(addr); err != nil {
			return err
		}

		fmt.Printf("Shutdown command sent successfully\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.AddCommand(serverKillCmd)

	serverKillCmd.Flags().String("listen", "", fmt.Sprintf("Address of the control server (default: %s)", daemon.DefaultServerAddress))
}
