package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/reconvoy/reconvoy/internal/broker"
	"github.com/reconvoy/reconvoy/pkg/console"
)

var statusCmd = &cobra.Command{
	Use:   "status [job-id]",
	Short: "Check the status of a queued scan",
	Args:  cobra.ExactArgs(1),
	Run:   runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	b, err := newBroker(cfg, nil)
	if err != nil {
		fatal(fmt.Sprintf("could not connect to broker: %v", err))
	}
	defer b.Close()

	status, err := b.Status(ctx, broker.JobID(args[0]))
	if err != nil {
		fatal(fmt.Sprintf("could not fetch job status: %v", err))
	}
	fmt.Println(console.Info(fmt.Sprintf("Job %s: %s", args[0], status)))
}
