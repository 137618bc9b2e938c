package main

import (
	"fmt"
	"os"

	"github.com/chesterbot/chester/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version is set at build time
	Version = "dev"

	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "chester",
		Short: "Chester - track catalog and fetcher for a music library",
		Long: `chester maintains a SQLite catalog of tracks sourced from YouTube.
It downloads audio via yt-dlp, records titles, artists, origins, tags and
aliases, and keeps the catalog and the audio directory in sync.`,
		Version: Version,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/chester.yaml)")
	rootCmd.PersistentFlags().String("db", "media/db/library.sqlite3", "catalog database file")
	rootCmd.PersistentFlags().String("audio-dir", "media/audio", "directory holding downloaded audio")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "quiet output (errors only)")

	// Bind flags to viper
	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("audio_dir", rootCmd.PersistentFlags().Lookup("audio-dir"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in common locations
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.SetConfigName("chester")
		viper.SetConfigType("yaml")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix("CHESTER")
	viper.AutomaticEnv()

	if viper.GetBool("quiet") {
		util.SetQuiet(true)
	} else if viper.GetBool("verbose") {
		util.SetVerbose(true)
	}

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && !viper.GetBool("quiet") {
		util.InfoLog("Using config file: %s", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
