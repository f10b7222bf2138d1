package cmd

import (
	"strings"

	"github.com/fjordlane/counterpoint/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "counterpoint",
	Short: "Terminal companion for refining thoughts and sparring with opposing views",
	Long: `Counterpoint collects a thought you are working through, sends it to a
text generation service, and guides you through either a step-by-step
refinement loop or a simulated debate against an opposing persona.
Sessions are saved locally and can be resumed or turned into summaries.`,
	RunE: runStart,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/counterpoint/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/counterpoint")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("COUNTERPOINT")
	// Replace dots with underscores for nested keys in env vars
	// e.g., COUNTERPOINT_GENERATION_BASE_URL for generation.base_url
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
