package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/reconvoy/reconvoy/internal/builder"
	"github.com/reconvoy/reconvoy/internal/config"
	"github.com/reconvoy/reconvoy/internal/engine"
	"github.com/reconvoy/reconvoy/internal/notify"
	"github.com/reconvoy/reconvoy/internal/notify/pubsub"
	"github.com/reconvoy/reconvoy/internal/postprocess"
	"github.com/reconvoy/reconvoy/internal/profile"
	"github.com/reconvoy/reconvoy/internal/results"
	resultsapi "github.com/reconvoy/reconvoy/internal/results/api"
	resultsmongo "github.com/reconvoy/reconvoy/internal/results/mongodb"
	"github.com/reconvoy/reconvoy/internal/scan"
	"github.com/reconvoy/reconvoy/internal/store"
	"github.com/reconvoy/reconvoy/internal/store/gcs"
	"github.com/reconvoy/reconvoy/internal/store/local"
	"github.com/reconvoy/reconvoy/pkg/console"
	"github.com/reconvoy/reconvoy/pkg/types"
)

var scanCmd = &cobra.Command{
	Use:   "scan [target]",
	Short: "Run a recon scan against a target",
	Args:  cobra.ExactArgs(1),
	Run:   runScan,
}

func init() {
	scanCmd.Flags().String("tools", "", "JSON file with the tools payload ([{name, parameters}])")
	scanCmd.Flags().StringSlice("tool", nil, "Tool to run with default parameters (repeatable)")
	scanCmd.Flags().String("profiles", "", "YAML file with named scan profiles")
	scanCmd.Flags().String("profile", "", "Profile from the profiles file to run")
	scanCmd.Flags().String("scan-id", "", "Scan identifier (default: random UUID)")
	scanCmd.Flags().Bool("queue", false, "Enqueue the scan instead of running inline")
	scanCmd.Flags().String("next-payload", "", "JSON file to hand off to the next pipeline stage on completion")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	scanID, _ := cmd.Flags().GetString("scan-id")
	if scanID == "" {
		scanID = uuid.New().String()
	}

	req := types.ScanRequest{
		Target: args[0],
		ScanID: scanID,
	}
	toolsFile, _ := cmd.Flags().GetString("tools")
	if toolsFile != "" {
		data, err := os.ReadFile(toolsFile)
		if err != nil {
			fatal(fmt.Sprintf("could not read tools payload: %v", err))
		}
		if err := json.Unmarshal(data, &req.Tools); err != nil {
			fatal(fmt.Sprintf("could not parse tools payload: %v", err))
		}
	}
	toolNames, _ := cmd.Flags().GetStringSlice("tool")
	for _, name := range toolNames {
		req.Tools = append(req.Tools, types.ToolRequest{Name: name})
	}
	if profileName, _ := cmd.Flags().GetString("profile"); profileName != "" {
		profilesFile, _ := cmd.Flags().GetString("profiles")
		if profilesFile == "" {
			fatal("--profile requires --profiles")
		}
		f, err := profile.Load(profilesFile)
		if err != nil {
			fatal(fmt.Sprintf("could not load profiles: %v", err))
		}
		p, err := f.Find(profileName)
		if err != nil {
			fatal(fmt.Sprintf("%v (available: %v)", err, f.Names()))
		}
		req.Tools = append(req.Tools, p.ToolRequests()...)
	}
	if len(req.Tools) == 0 {
		fatal("no tools requested; use --tools, --tool or --profile")
	}

	if enqueue, _ := cmd.Flags().GetBool("queue"); enqueue {
		b, err := newBroker(cfg, nil)
		if err != nil {
			fatal(fmt.Sprintf("could not connect to broker: %v", err))
		}
		defer b.Close()
		jobID, err := b.EnqueueScan(ctx, req)
		if err != nil {
			fatal(fmt.Sprintf("could not enqueue scan: %v", err))
		}
		fmt.Println(console.Info(fmt.Sprintf("Scan %s queued as job %s", scanID, jobID)))
		return
	}

	if !jsonOutput {
		fmt.Println(console.Banner(Version))
		fmt.Println(console.Target(req.Target, detectTargetType(req.Target)))
	}

	runner, uploader, publisher := newRunner(ctx, cfg, jsonOutput)
	defer uploader.Close()
	if publisher != nil {
		defer publisher.Close()
	}

	result, err := runner.Run(ctx, req)
	if err != nil {
		fatal(err.Error())
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
	} else {
		fmt.Println(console.Info(fmt.Sprintf("Scan %s finished: %s (%s)", result.ScanID, result.Status, result.Message)))
	}

	if payloadFile, _ := cmd.Flags().GetString("next-payload"); payloadFile != "" {
		handoff(ctx, uploader, publisher, result, payloadFile)
	}
}

// newRunner wires the scan runner with the configured uploader, result stores
// and publisher.
func newRunner(ctx context.Context, cfg config.Config, quiet bool) (*scan.Runner, store.Uploader, notify.Publisher) {
	var uploader store.Uploader
	if cfg.GCS.Bucket != "" {
		up, err := gcs.New(ctx, gcs.Config{Bucket: cfg.GCS.Bucket})
		if err != nil {
			fatal(fmt.Sprintf("could not create GCS uploader: %v", err))
		}
		uploader = up
	} else {
		uploader = local.New(cfg.OutputsRoot + "/_uploads")
	}

	stores := []results.Store{results.NewFileStore(cfg.OutputsRoot)}
	if cfg.API.URL != "" {
		as, err := resultsapi.New(resultsapi.Config{
			URL:        cfg.API.URL,
			Key:        cfg.API.Key,
			HeaderName: cfg.API.HeaderName,
			ForceSSL:   cfg.API.ForceSSL,
			ScanUpdate: cfg.API.ScanUpdate,
		})
		if err != nil {
			fmt.Println(console.Warn(fmt.Sprintf("API store unavailable: %v", err)))
		} else {
			stores = append(stores, as)
		}
	}
	if cfg.Mongo.URL != "" {
		ms, err := resultsmongo.New(resultsmongo.Config{
			URL:                    cfg.Mongo.URL,
			Database:               cfg.Mongo.Database,
			ServerSelectionTimeout: cfg.Mongo.ServerSelectionTimeout,
			MaxPoolSize:            cfg.Mongo.MaxPoolSize,
		})
		if err != nil {
			fmt.Println(console.Warn(fmt.Sprintf("MongoDB store unavailable: %v", err)))
		} else {
			stores = append(stores, ms)
		}
	}

	var publisher notify.Publisher
	if cfg.PubSub.Project != "" && cfg.PubSub.Topic != "" {
		pub, err := pubsub.New(ctx, pubsub.Config{Project: cfg.PubSub.Project, Topic: cfg.PubSub.Topic})
		if err != nil {
			fmt.Println(console.Warn(fmt.Sprintf("Pub/Sub unavailable: %v", err)))
		} else {
			publisher = pub
		}
	}

	logSink := func(msg string) { fmt.Println(msg) }
	if quiet {
		logSink = nil
	}

	runner := &scan.Runner{
		Builders: builder.NewRegistry(builder.Paths{
			OutputsRoot:     cfg.OutputsRoot,
			WordlistsDir:    cfg.WordlistsDir,
			TargetListsDir:  cfg.TargetListsDir,
			ReconNGTemplate: cfg.ReconNG.Template,
		}),
		Engine: engine.New(engine.Options{
			OutputsRoot: cfg.OutputsRoot,
			Timeout:     cfg.Timeout(),
			ReconNGHome: cfg.ReconNG.Home,
		}),
		Dispatcher:  postprocess.New(uploader),
		Results:     results.NewMultiStore(stores...),
		OutputsRoot: cfg.OutputsRoot,
		Log:         logSink,
	}
	return runner, uploader, publisher
}

// handoff uploads the next-stage payload and announces completion. A payload
// upload failure is fatal since the next stage cannot run without it; a
// publish failure after retries is only logged.
func handoff(ctx context.Context, uploader store.Uploader, publisher notify.Publisher, result *types.ScanResult, payloadFile string) {
	payload, err := os.ReadFile(payloadFile)
	if err != nil {
		fatal(fmt.Sprintf("could not read next-stage payload: %v", err))
	}
	if err := uploader.UploadBytes(ctx, payload, store.PayloadPath(result.ScanID), "application/json"); err != nil {
		fatal(fmt.Sprintf("could not upload next-stage payload: %v", err))
	}
	if publisher != nil {
		if err := publisher.ScanComplete(ctx, result.ScanID, result.Target); err != nil {
			fmt.Println(console.Err(fmt.Sprintf("Failed to publish completion for %s: %v", result.ScanID, err)))
		}
	}
}

func fatal(msg string) {
	fmt.Println(console.Err(msg))
	os.Exit(1)
}
