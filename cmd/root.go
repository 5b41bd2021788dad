package cmd

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configFile string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "upscaler",
	Short: "Upscale images 2x or 4x with Gemini",
	Long: `An image upscaler backed by the Gemini image model.

Run "upscaler serve" for the web interface (and the Telegram bot when a token is configured),
or "upscaler upscale <file>" to upscale a single image from the command line.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(configFile); err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			v.Set("log.level", logLevel)
		}
		setLogLevel(v.GetString("log.level"))

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ./config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")

	rootCmd.AddCommand(newServeCmd(), newUpscaleCmd())
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
