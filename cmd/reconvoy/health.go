package main

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/reconvoy/reconvoy/internal/builder"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check installed tools",
	Run:   runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	fmt.Println("Checking installed tools...")
	fmt.Println()

	registry := builder.NewRegistry(builder.Paths{
		OutputsRoot:     cfg.OutputsRoot,
		WordlistsDir:    cfg.WordlistsDir,
		TargetListsDir:  cfg.TargetListsDir,
		ReconNGTemplate: cfg.ReconNG.Template,
	})
	for _, name := range registry.Names() {
		if _, err := exec.LookPath(builder.Binary(name)); err != nil {
			fmt.Printf("  [✗] %s - not found\n", name)
		} else {
			fmt.Printf("  [✓] %s\n", name)
		}
	}
}
