// Package api provides an HTTP API-backed scan result store. It reports
// completed scans back to the gateway that issued the scan ID.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/reconvoy/reconvoy/pkg/types"
)

// Config holds API connection settings.
type Config struct {
	URL        string `yaml:"url"`
	Key        string `yaml:"key"`
	HeaderName string `yaml:"header_name"`
	ForceSSL   bool   `yaml:"force_ssl"`
	ScanUpdate string `yaml:"scan_update"` // e.g. /v1/scans/{scan_id}/results
}

// Store implements results.Store using HTTP API calls.
type Store struct {
	baseURL    string
	apiKey     string
	headerName string
	endpoint   string
	client     *http.Client
}

// New creates a new API store with the given configuration.
func New(cfg Config) (*Store, error) {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: !cfg.ForceSSL},
	}
	return &Store{
		baseURL:    cfg.URL,
		apiKey:     cfg.Key,
		headerName: cfg.HeaderName,
		endpoint:   cfg.ScanUpdate,
		client:     &http.Client{Transport: transport, Timeout: 30 * time.Second},
	}, nil
}

// Name returns the store identifier.
func (s *Store) Name() string { return "api" }

// SaveScan POSTs the scan result to the gateway's scan update endpoint.
func (s *Store) SaveScan(ctx context.Context, result *types.ScanResult) error {
	url := s.baseURL + strings.Replace(s.endpoint, "{scan_id}", result.ScanID, 1)

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set(s.headerName, s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error %d: %s", resp.StatusCode, body)
	}
	return nil
}

// Close is a no-op for API store.
func (s *Store) Close() error { return nil }
