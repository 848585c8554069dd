package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/elC0mpa/vm-doctor/cmd/mcp/response"
	"github.com/elC0mpa/vm-doctor/model"
)

type recordingRunner struct {
	flags []model.Flags
	err   error
}

func (r *recordingRunner) run(_ context.Context, flags model.Flags, _ *zap.Logger) (*model.Report, error) {
	r.flags = append(r.flags, flags)
	if r.err != nil {
		return nil, r.err
	}
	return &model.Report{Summary: model.RunSummary{Provider: flags.Provider, DryRun: flags.Run.DryRun}}, nil
}

func baseFlags() model.Flags {
	run := model.DefaultRunConfig()
	return model.Flags{Run: run, Provider: "gcp"}
}

func call(t *testing.T, r *recordingRunner, provider string, allowStop bool, args map[string]any) *mcp.CallToolResult {
	t.Helper()

	req := mcp.CallToolRequest{}
	req.Params.Name = provider + "_tool"
	req.Params.Arguments = args

	result, err := makeIdleHandler(baseFlags(), provider, allowStop, r.run, zap.NewNop())(context.Background(), req)
	require.NoError(t, err)
	return result
}

func text(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	tc, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestReportToolIsAlwaysDryRun(t *testing.T) {
	r := &recordingRunner{}
	result := call(t, r, "aws", false, map[string]any{"dry_run": false})

	assert.False(t, result.IsError)
	require.Len(t, r.flags, 1)
	assert.True(t, r.flags[0].Run.DryRun)
	assert.Equal(t, "aws", r.flags[0].Provider)

	var resp response.IdleReport
	require.NoError(t, json.Unmarshal([]byte(text(t, result)), &resp))
	assert.True(t, resp.Summary.DryRun)
}

func TestShutdownToolDefaultsToDryRun(t *testing.T) {
	r := &recordingRunner{}
	call(t, r, "gcp", true, nil)
	call(t, r, "gcp", true, map[string]any{"dry_run": false, "idle_threshold": 0.1, "lookback_hours": 6})

	require.Len(t, r.flags, 2)
	assert.True(t, r.flags[0].Run.DryRun)
	assert.False(t, r.flags[1].Run.DryRun)
	assert.Equal(t, 0.1, r.flags[1].Run.IdleThreshold)
	assert.Equal(t, 6, r.flags[1].Run.LookbackHours)
}

func TestToolRejectsInvalidArguments(t *testing.T) {
	r := &recordingRunner{}
	result := call(t, r, "gcp", true, map[string]any{"lookback_hours": 48})

	assert.True(t, result.IsError)
	assert.Contains(t, text(t, result), "Invalid arguments")
	assert.Empty(t, r.flags)
}

func TestToolReportsRunFailure(t *testing.T) {
	r := &recordingRunner{err: errors.New("failed to enumerate fleet: permission denied")}
	result := call(t, r, "gcp", false, nil)

	assert.True(t, result.IsError)
	assert.Contains(t, text(t, result), "permission denied")
}
