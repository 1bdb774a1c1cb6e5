package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/qclab/internal/domain/models"
	"github.com/mamadbah2/qclab/internal/repository/memory"
	"github.com/mamadbah2/qclab/internal/service/trends"
)

var now = time.Date(2026, 10, 17, 18, 0, 0, 0, time.UTC)

func seededService() *Service {
	svc := NewService(memory.NewStore(models.SampleRecords(now.Add(-time.Hour))), trends.Options{}, nil)
	svc.now = func() time.Time { return now }
	return svc
}

func TestDashboard(t *testing.T) {
	dash, err := seededService().Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.Stats{Total: 3, Approved: 2, Rejected: 0, ConditionalOrPending: 1}, dash.Stats)

	require.Len(t, dash.Density, 3)
	assert.Equal(t, "88", dash.Density[0].Label)
	assert.Equal(t, 0.659, dash.Density[0].Value)
	assert.Equal(t, "09", dash.Density[1].Label)
	assert.Equal(t, "908", dash.Density[2].Label)

	require.Len(t, dash.Purity, 2)
	assert.Equal(t, "GC - Normal Hexane", dash.Purity[0].Parameter)
	assert.Equal(t, "Acid Purity", dash.Purity[1].Parameter)
	assert.Equal(t, 98.2, dash.Purity[1].Value)
}

func TestDashboardEmpty(t *testing.T) {
	dash, err := NewService(memory.NewStore(nil), trends.Options{}, nil).Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Stats{}, dash.Stats)
	assert.Empty(t, dash.Density)
	assert.Empty(t, dash.Purity)
}

func TestDailySummary(t *testing.T) {
	summary, err := seededService().DailySummary(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), summary.Date)
	assert.Equal(t, 3, summary.Stats.Total)
	assert.Equal(t, 1, summary.RecordsToday)
	assert.Equal(t, now, summary.CreatedAt)

	require.NotNil(t, summary.LatestDensity)
	assert.Equal(t, 1.84, summary.LatestDensity.Value)
	require.NotNil(t, summary.LatestPurity)
	assert.Equal(t, "Acid Purity", summary.LatestPurity.Parameter)
}

func TestFormatSummary(t *testing.T) {
	summary, err := seededService().DailySummary(context.Background(), now)
	require.NoError(t, err)

	text := FormatSummary(summary)
	assert.Contains(t, text, "QC daily summary (2026-10-17)")
	assert.Contains(t, text, "Records today: 1")
	assert.Contains(t, text, "Total: 3")
	assert.Contains(t, text, "Latest density: 1.84 (Density, Sulfuric Acid, batch 908)")

	empty := FormatSummary(models.DailySummary{Date: now})
	assert.Contains(t, empty, "Latest density: no data")
	assert.Contains(t, empty, "Latest purity: no data")
}
