package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/pguedes/gesticle/utils"
)

const version = "dev"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gesticle",
	Short: "Configurable libinput gesture handling",
	Long: `gesticle turns touchpad swipes, pinches and rotations into key sequences.
Actions are configured per gesture and can be overridden per application.`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func initConfig() {
	utils.SetVerbose(verbose)
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command; ctx is cancelled on SIGINT/SIGTERM
func Execute(ctx context.Context) error {
	// enable microseconds in logs
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	return fang.Execute(ctx, rootCmd, fang.WithVersion(version))
}

// printJson is a helper function to print JSON responses
func printJson(data interface{}) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(jsonData))
}
