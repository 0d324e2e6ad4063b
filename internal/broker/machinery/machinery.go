// Package machinery implements the broker on top of Machinery with Redis as
// both broker and result backend.
package machinery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/RichardKnop/machinery/v2"
	backendsiface "github.com/RichardKnop/machinery/v2/backends/iface"
	backendsredis "github.com/RichardKnop/machinery/v2/backends/redis"
	brokersiface "github.com/RichardKnop/machinery/v2/brokers/iface"
	brokersredis "github.com/RichardKnop/machinery/v2/brokers/redis"
	"github.com/RichardKnop/machinery/v2/config"
	lockseager "github.com/RichardKnop/machinery/v2/locks/eager"
	locksiface "github.com/RichardKnop/machinery/v2/locks/iface"
	"github.com/RichardKnop/machinery/v2/tasks"

	"github.com/reconvoy/reconvoy/internal/broker"
	"github.com/reconvoy/reconvoy/pkg/types"
)

// scanTask is the name the scan handler registers under.
const scanTask = "reconvoy.scan"

// Config for Machinery
type Config struct {
	BrokerURL     string `yaml:"broker_url"`     // redis://localhost:6379
	ResultBackend string `yaml:"result_backend"` // redis://localhost:6379
	DefaultQueue  string `yaml:"default_queue"`
	ResultsTTL    int    `yaml:"results_ttl"`
}

// Broker implements broker.Broker using Machinery
type Broker struct {
	server *machinery.Server
}

// parseRedisURL parses a Redis URL and returns host, password, and db
func parseRedisURL(redisURL string) (host, username, password string, db int, err error) {
	u, err := url.Parse(redisURL)
	if err != nil {
		return "", "", "", 0, err
	}

	host = u.Host
	if u.User != nil {
		username = u.User.Username()
		password, _ = u.User.Password()
	}

	// Parse db from path (e.g., /0)
	db = 0
	if u.Path != "" && u.Path != "/" {
		dbStr := strings.TrimPrefix(u.Path, "/")
		if dbStr != "" {
			db, err = strconv.Atoi(dbStr)
			if err != nil {
				return "", "", "", 0, fmt.Errorf("invalid db number in URL: %w", err)
			}
		}
	}

	return host, username, password, db, nil
}

// New creates a new Machinery broker and registers the scan handler.
func New(cfg Config, handler broker.ScanHandler) (*Broker, error) {
	mcfg := &config.Config{
		Broker:          cfg.BrokerURL,
		DefaultQueue:    cfg.DefaultQueue,
		ResultBackend:   cfg.ResultBackend,
		ResultsExpireIn: cfg.ResultsTTL,
	}

	brokerHost, brokerUser, brokerPass, brokerDB, err := parseRedisURL(cfg.BrokerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse broker URL: %w", err)
	}
	backendHost, backendUser, backendPass, backendDB, err := parseRedisURL(cfg.ResultBackend)
	if err != nil {
		return nil, fmt.Errorf("failed to parse backend URL: %w", err)
	}

	var redisBroker brokersiface.Broker = brokersredis.New(mcfg, brokerHost, brokerUser, brokerPass, "", brokerDB)
	var redisBackend backendsiface.Backend = backendsredis.New(mcfg, backendHost, backendUser, backendPass, "", backendDB)
	var eagerLock locksiface.Lock = lockseager.New()

	server := machinery.NewServer(mcfg, redisBroker, redisBackend, eagerLock)

	err = server.RegisterTask(scanTask, func(reqJSON string) (string, error) {
		var req types.ScanRequest
		if err := json.Unmarshal([]byte(reqJSON), &req); err != nil {
			return "", fmt.Errorf("failed to unmarshal scan request: %w", err)
		}
		if err := handler(context.Background(), req); err != nil {
			return "", err
		}
		return req.ScanID, nil
	})
	if err != nil {
		return nil, err
	}

	return &Broker{server: server}, nil
}

// EnqueueScan submits a scan request for execution.
func (b *Broker) EnqueueScan(ctx context.Context, req types.ScanRequest) (broker.JobID, error) {
	reqJSON, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal scan request: %w", err)
	}

	sig := &tasks.Signature{
		Name: scanTask,
		Args: []tasks.Arg{
			{Type: "string", Value: string(reqJSON)},
		},
	}

	result, err := b.server.SendTaskWithContext(ctx, sig)
	if err != nil {
		return "", err
	}

	return broker.JobID(result.GetState().TaskUUID), nil
}

// Status returns the status of a queued scan.
func (b *Broker) Status(ctx context.Context, jobID broker.JobID) (broker.JobStatus, error) {
	state, err := b.server.GetBackend().GetState(string(jobID))
	if err != nil {
		return "", err
	}
	switch {
	case state.IsSuccess():
		return broker.JobSuccess, nil
	case state.IsFailure():
		return broker.JobFailure, nil
	case state.State == tasks.StateStarted:
		return broker.JobRunning, nil
	default:
		return broker.JobPending, nil
	}
}

// StartWorker starts a worker consuming queued scans.
func (b *Broker) StartWorker(ctx context.Context, concurrency int) error {
	worker := b.server.NewWorker("reconvoy-worker", concurrency)

	errCh := make(chan error)
	go func() {
		errCh <- worker.Launch()
	}()

	select {
	case <-ctx.Done():
		worker.Quit()
		return nil
	case err := <-errCh:
		return err
	}
}

// Close closes the broker
func (b *Broker) Close() error {
	return nil
}

// Compile-time check that Broker implements broker.Broker
var _ broker.Broker = (*Broker)(nil)
