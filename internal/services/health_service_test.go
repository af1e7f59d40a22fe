package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/shared/testutil"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts"
)

type fixedClients int

func (c fixedClients) ClientCount() int { return int(c) }

func TestHealthService_ReadinessCheck(t *testing.T) {
	tests := []struct {
		name       string
		loaded     bool
		loadErr    error
		wantStatus string
		wantMsg    string
	}{
		{name: "dataset loaded", loaded: true, wantStatus: "ready"},
		{name: "dataset missing", loadErr: errors.New("open data.csv: no such file"), wantStatus: "not_ready", wantMsg: "dataset not loaded: open data.csv: no such file"},
		{name: "no load error recorded", wantStatus: "not_ready", wantMsg: "dataset not loaded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			hs := NewHealthService(nil, tt.loadErr, fixedClients(2), logger)
			if tt.loaded {
				hs = NewHealthService(testutil.OutcomeDataset(), nil, fixedClients(2), logger)
			}

			status := hs.ReadinessCheck(context.Background())
			assert.Equal(t, tt.wantStatus, status.Status)

			data, ok := status.Services["dataset"].(DatasetHealth)
			require.True(t, ok)
			assert.Equal(t, tt.wantStatus, data.Status)
			assert.Equal(t, tt.wantMsg, data.Message)
			if tt.loaded {
				assert.Equal(t, 11, data.Rows)
				assert.Equal(t, 3, data.Periods)
			}

			ws, ok := status.Services["websocket"].(ServiceHealth)
			require.True(t, ok)
			assert.Equal(t, "2 clients connected", ws.Message)
		})
	}
}

func TestHealthService_HealthCheck(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)

	ok := NewHealthService(testutil.OutcomeDataset(), nil, nil, logger).HealthCheck(context.Background())
	assert.Equal(t, "ok", ok.Status)
	assert.Equal(t, contracts.Version, ok.Version)

	degraded := NewHealthService(nil, errors.New("boom"), nil, logger).HealthCheck(context.Background())
	assert.Equal(t, "degraded", degraded.Status)
}

func TestHealthService_LivenessAndVersion(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	hs := NewHealthService(nil, nil, nil, logger)

	live := hs.LivenessCheck(context.Background())
	assert.Equal(t, "alive", live.Status)
	assert.Contains(t, live.Runtime, "goroutines")

	v := hs.Version()
	assert.Equal(t, contracts.Version, v["version"])
	assert.Equal(t, contracts.APIVersion, v["api_version"])
	assert.NotContains(t, v, "git_commit")
}
