package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reconvoy/reconvoy/internal/config"
)

// Version is the current version of reconvoy
const Version = "0.1.0"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "reconvoy",
	Short: "Recon tool fleet runner",
	Long:  "Drives a fleet of reconnaissance tools against a target and routes their artifacts",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (YAML)")
	rootCmd.PersistentFlags().Bool("json", false, "JSON output")
}

// loadConfig reads the config file given on the command line, or the defaults.
func loadConfig() config.Config {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config %s: %v\n", cfgFile, err)
		os.Exit(1)
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
