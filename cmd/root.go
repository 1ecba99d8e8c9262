package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/liciel-tools/missionscope/internal/config"
	"github.com/liciel-tools/missionscope/internal/utils"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

// appConfig is loaded by initConfig before any command runs.
var appConfig *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "missionscope",
	Short: "Scans Liciel mission folders and exports what they contain.",
	Long: `missionscope reads the XML exports of Liciel inspection mission folders,
builds one record per mission and lets you filter, summarize and export them
as JSON, CSV or a plain list of folder identifiers.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.missionscope.yaml)")

	// Global flags
	rootCmd.PersistentFlags().String("env-file", "", "Load environment variables from this file (default: ./.env if present)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	envFile, _ := rootCmd.PersistentFlags().GetString("env-file")
	var envFiles []string
	if envFile != "" {
		envFiles = append(envFiles, envFile)
	}
	if err := config.LoadDotEnv(envFiles...); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".missionscope")
		viper.SetConfigType("yaml")
	}

	// Defaults first so a freshly written config file carries every key.
	config.SetDefaults(viper.GetViper())

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.missionscope.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		} else {
			fmt.Printf("Error reading config file: %s\n", err)
			os.Exit(1)
		}
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	appConfig = cfg

	// Init log library
	levelString := cfg.Log.Level
	if rootCmd.PersistentFlags().Changed("loglevel") {
		levelString, _ = rootCmd.PersistentFlags().GetString("loglevel")
	}
	utils.SetLogLevel(levelString)
	if err := utils.ConfigureLogOutput(utils.LogOutput{
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	}); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
