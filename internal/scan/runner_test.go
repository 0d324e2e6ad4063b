package scan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reconvoy/reconvoy/internal/builder"
	"github.com/reconvoy/reconvoy/pkg/types"
)

type fakeBuilders struct {
	reg *builder.Registry
}

func (f *fakeBuilders) Resolve(tool string) (builder.Builder, error) {
	return f.reg.Resolve(tool)
}

// fakeExecutor returns canned results per tool without spawning processes.
type fakeExecutor struct {
	results  map[string]types.ToolResult
	executed []string
}

func (f *fakeExecutor) Execute(ctx context.Context, command []string, scanID, toolName string) types.ToolResult {
	f.executed = append(f.executed, toolName)
	res, ok := f.results[toolName]
	if !ok {
		res = types.ToolResult{ToolName: toolName, Success: true}
	}
	res.ToolName = toolName
	res.Command = command
	return res
}

type fakeProcessor struct {
	calls []string
	err   error
}

func (f *fakeProcessor) Process(ctx context.Context, scanID, toolName, outputDir string, artifacts []string) error {
	f.calls = append(f.calls, toolName)
	return f.err
}

type fakeSink struct {
	saved *types.ScanResult
}

func (f *fakeSink) SaveScan(ctx context.Context, result *types.ScanResult) error {
	f.saved = result
	return nil
}

func newTestRunner(t *testing.T, exec *fakeExecutor) (*Runner, *fakeProcessor, *fakeSink) {
	t.Helper()
	root := t.TempDir()
	reg := builder.NewRegistry(builder.Paths{
		OutputsRoot:    root,
		WordlistsDir:   "/app/wordlists",
		TargetListsDir: "/app/target_lists",
	})
	proc := &fakeProcessor{}
	sink := &fakeSink{}
	return &Runner{
		Builders:    &fakeBuilders{reg: reg},
		Engine:      exec,
		Dispatcher:  proc,
		Results:     sink,
		OutputsRoot: root,
	}, proc, sink
}

func request(tools ...string) types.ScanRequest {
	req := types.ScanRequest{Target: "example.com", ScanID: "scan-1"}
	for _, name := range tools {
		req.Tools = append(req.Tools, types.ToolRequest{Name: name})
	}
	return req
}

func TestRun_InvalidRequest(t *testing.T) {
	r, _, _ := newTestRunner(t, &fakeExecutor{})

	_, err := r.Run(context.Background(), types.ScanRequest{ScanID: "scan-1"})
	require.Error(t, err)

	_, err = r.Run(context.Background(), types.ScanRequest{Target: "example.com"})
	require.Error(t, err)
}

func TestRun_AllToolsSucceed(t *testing.T) {
	exec := &fakeExecutor{results: map[string]types.ToolResult{
		"nmap":      {Success: true, ReturnCode: 0},
		"subfinder": {Success: true, ReturnCode: 0},
	}}
	r, proc, sink := newTestRunner(t, exec)

	result, err := r.Run(context.Background(), request("nmap", "subfinder"))
	require.NoError(t, err)

	assert.Equal(t, types.StatusSuccess, result.Status)
	assert.Equal(t, "All tools executed successfully.", result.Message)
	assert.Len(t, result.Results, 2)
	assert.Equal(t, []string{"nmap", "subfinder"}, exec.executed)
	assert.Equal(t, []string{"nmap", "subfinder"}, proc.calls)
	require.NotNil(t, sink.saved)
	assert.Equal(t, "scan-1", sink.saved.ScanID)
}

func TestRun_MixedOutcomeIsPartialFailure(t *testing.T) {
	exec := &fakeExecutor{results: map[string]types.ToolResult{
		"nmap":    {Success: true, ReturnCode: 0},
		"dnsenum": {Success: false, ReturnCode: 2},
	}}
	r, _, _ := newTestRunner(t, exec)

	result, err := r.Run(context.Background(), request("nmap", "dnsenum"))
	require.NoError(t, err)

	assert.Equal(t, types.StatusPartialFailure, result.Status)
	assert.Equal(t, "Some tools failed.", result.Message)
}

func TestRun_UnknownToolIsIsolated(t *testing.T) {
	exec := &fakeExecutor{results: map[string]types.ToolResult{
		"nmap": {Success: true, ReturnCode: 0},
	}}
	r, proc, _ := newTestRunner(t, exec)

	result, err := r.Run(context.Background(), request("nosuchtool", "nmap"))
	require.NoError(t, err)

	assert.Equal(t, types.StatusPartialFailure, result.Status)
	require.Len(t, result.Results, 2)

	bad := result.Results[0]
	assert.Equal(t, "nosuchtool", bad.ToolName)
	assert.False(t, bad.Success)
	assert.Equal(t, -1, bad.ReturnCode)
	assert.Empty(t, bad.Command)
	assert.Contains(t, bad.Stderr, "nosuchtool")

	// the unknown tool never reached execution or post-processing
	assert.Equal(t, []string{"nmap"}, exec.executed)
	assert.Equal(t, []string{"nmap"}, proc.calls)
}

func TestRun_AllToolsFailed(t *testing.T) {
	exec := &fakeExecutor{results: map[string]types.ToolResult{
		"nmap": {Success: false, ReturnCode: 1},
	}}
	r, _, _ := newTestRunner(t, exec)

	result, err := r.Run(context.Background(), request("nmap"))
	require.NoError(t, err)

	assert.Equal(t, types.StatusFailed, result.Status)
	assert.Equal(t, "All tools failed.", result.Message)
}

func TestRun_PostProcessErrorKeepsVerdict(t *testing.T) {
	exec := &fakeExecutor{results: map[string]types.ToolResult{
		"nmap": {Success: true, ReturnCode: 0},
	}}
	r, proc, _ := newTestRunner(t, exec)
	proc.err = assert.AnError

	result, err := r.Run(context.Background(), request("nmap"))
	require.NoError(t, err)

	assert.Equal(t, types.StatusSuccess, result.Status)
	assert.True(t, result.Results[0].Success)
}

func TestRun_MasscanGetsIPTarget(t *testing.T) {
	exec := &fakeExecutor{results: map[string]types.ToolResult{
		"masscan": {Success: true, ReturnCode: 0},
	}}
	r, _, _ := newTestRunner(t, exec)

	req := types.ScanRequest{
		Target: "127.0.0.1",
		ScanID: "scan-1",
		Tools:  []types.ToolRequest{{Name: "masscan"}},
	}
	result, err := r.Run(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	command := result.Results[0].Command
	require.NotEmpty(t, command)
	assert.Equal(t, "127.0.0.1", command[len(command)-1])
}

func TestRun_NoDispatcherOrSink(t *testing.T) {
	exec := &fakeExecutor{}
	root := t.TempDir()
	reg := builder.NewRegistry(builder.Paths{OutputsRoot: root})
	r := &Runner{
		Builders:    &fakeBuilders{reg: reg},
		Engine:      exec,
		OutputsRoot: root,
	}

	result, err := r.Run(context.Background(), request("whatweb"))
	require.NoError(t, err)
	assert.Equal(t, types.StatusSuccess, result.Status)
}
