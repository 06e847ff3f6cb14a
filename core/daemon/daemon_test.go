package daemon

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pihole-manager/core/config"
	"pihole-manager/core/pihole"
	"pihole-manager/core/pihole/mocks"
	"pihole-manager/core/reconcile"
	"pihole-manager/core/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const declaredState = `
instances:
  - name: primary
    base_url: https://pihole.lan
    password: secret
    lists:
      - address: https://lists.example.com/ads.txt
        type: block
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testDaemon(opts Options, client *mocks.Client) (*Daemon, *status.Tracker) {
	dial := func(config.Instance) (pihole.Client, error) { return client, nil }
	tracker := status.NewTracker()
	return New(opts, reconcile.New(dial, zap.NewNop()), tracker, zap.NewNop()), tracker
}

func TestRunPassRecordsResults(t *testing.T) {
	client := &mocks.Client{}
	client.On("FetchLists", mock.Anything).Return([]pihole.List{}, nil)
	client.On("CreateList", mock.Anything, mock.Anything).Return(nil)
	client.On("Close", mock.Anything).Return(nil)

	d, tracker := testDaemon(Options{ConfigPath: writeConfig(t, declaredState)}, client)
	d.RunPass(context.Background())

	report, ok := tracker.Last()
	require.True(t, ok)
	assert.NotEmpty(t, report.RunID)
	assert.False(t, report.DryRun)
	assert.Empty(t, report.Err)
	require.Len(t, report.Results, 1)
	assert.Equal(t, "primary", report.Results[0].Name)

	client.AssertExpectations(t)
}

func TestRunPassDryRun(t *testing.T) {
	client := &mocks.Client{}
	client.On("FetchLists", mock.Anything).Return([]pihole.List{}, nil)
	client.On("Close", mock.Anything).Return(nil)

	d, tracker := testDaemon(Options{ConfigPath: writeConfig(t, declaredState), DryRun: true}, client)
	d.RunPass(context.Background())

	report, ok := tracker.Last()
	require.True(t, ok)
	assert.True(t, report.DryRun)
	require.Len(t, report.Results, 1)

	client.AssertExpectations(t)
}

func TestRunPassSkipsOnUnreadableConfig(t *testing.T) {
	var dialed int
	dial := func(config.Instance) (pihole.Client, error) {
		dialed++
		return &mocks.Client{}, nil
	}
	tracker := status.NewTracker()
	d := New(Options{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")},
		reconcile.New(dial, zap.NewNop()), tracker, zap.NewNop())

	d.RunPass(context.Background())

	report, ok := tracker.Last()
	require.True(t, ok)
	assert.NotEmpty(t, report.Err)
	assert.Empty(t, report.Results)
	assert.Zero(t, dialed)
}

func TestRunPassRejectsUnknownInstanceFilter(t *testing.T) {
	d, tracker := testDaemon(Options{
		ConfigPath: writeConfig(t, declaredState),
		Instance:   "missing",
	}, &mocks.Client{})

	d.RunPass(context.Background())

	report, ok := tracker.Last()
	require.True(t, ok)
	assert.Contains(t, report.Err, "no instance found")
}

func TestRunStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d, _ := testDaemon(Options{
		ConfigPath: filepath.Join(t.TempDir(), "missing.yaml"),
		Interval:   time.Hour,
	}, &mocks.Client{})

	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("daemon did not stop on context cancellation")
	}
}
