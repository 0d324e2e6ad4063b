package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reconvoy/reconvoy/internal/broker"
	"github.com/reconvoy/reconvoy/internal/broker/machinery"
	"github.com/reconvoy/reconvoy/internal/config"
	"github.com/reconvoy/reconvoy/pkg/console"
	"github.com/reconvoy/reconvoy/pkg/types"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start a worker consuming queued scans",
	Run:   runWorker,
}

func init() {
	workerCmd.Flags().IntP("concurrency", "c", 1, "Worker concurrency")
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	handler := func(handlerCtx context.Context, req types.ScanRequest) error {
		runner, uploader, publisher := newRunner(handlerCtx, cfg, false)
		defer uploader.Close()
		if publisher != nil {
			defer publisher.Close()
		}
		result, err := runner.Run(handlerCtx, req)
		if err != nil {
			return err
		}
		if publisher != nil {
			if err := publisher.ScanComplete(handlerCtx, result.ScanID, result.Target); err != nil {
				fmt.Println(console.Err(fmt.Sprintf("Failed to publish completion for %s: %v", result.ScanID, err)))
			}
		}
		return nil
	}

	b, err := newBroker(cfg, handler)
	if err != nil {
		fatal(fmt.Sprintf("could not connect to broker: %v", err))
	}
	defer b.Close()

	concurrency, _ := cmd.Flags().GetInt("concurrency")
	fmt.Println(console.Banner(Version))
	fmt.Println(console.Info(fmt.Sprintf("Worker started (concurrency %d, queue %s)", concurrency, cfg.Broker.Queue)))

	if err := b.StartWorker(ctx, concurrency); err != nil {
		fatal(fmt.Sprintf("worker stopped: %v", err))
	}
}

// newBroker builds the Machinery broker. A nil handler is allowed for
// enqueue-only processes.
func newBroker(cfg config.Config, handler broker.ScanHandler) (*machinery.Broker, error) {
	if handler == nil {
		handler = func(context.Context, types.ScanRequest) error {
			return errors.New("this process is not a worker")
		}
	}
	backend := cfg.Broker.ResultBackend
	if backend == "" {
		backend = cfg.Broker.URL
	}
	return machinery.New(machinery.Config{
		BrokerURL:     cfg.Broker.URL,
		ResultBackend: backend,
		DefaultQueue:  cfg.Broker.Queue,
		ResultsTTL:    cfg.Broker.ResultsTTL,
	}, handler)
}

// detectTargetType tries to determine the type of target
func detectTargetType(target string) string {
	switch {
	case strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://"):
		return "url"
	case strings.Count(target, ".") == 3 && !strings.ContainsAny(target, "abcdefghijklmnopqrstuvwxyz"):
		return "ip"
	case strings.Contains(target, "."):
		return "host"
	default:
		return ""
	}
}
