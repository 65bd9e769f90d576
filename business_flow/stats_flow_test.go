package business_flow

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/pabst/shortener/models"
	"github.com/pabst/shortener/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func seedStats(repo *fakeLinkRepo) {
	repo.statsRows = []*models.LinkStats{
		{
			ID:            2,
			OriginalURL:   "https://example.com/newer",
			Title:         "Newer",
			Segment:       "new123",
			ClickCount:    3,
			CreatedAt:     utils.UTCNow(),
			LastClickedAt: utils.UTCNowPtr(),
		},
		{
			ID:          1,
			OriginalURL: "https://example.com/older",
			Segment:     "old123",
			CreatedAt:   utils.UTCNowAdd(-48 * time.Hour),
		},
	}
}

func TestStatsList(t *testing.T) {
	repo := newFakeLinkRepo()
	seedStats(repo)
	flow := NewStatsFlow(repo, "https://sho.rt/")

	rows, err := flow.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "new123", rows[0].Segment)
	assert.Nil(t, rows[1].LastClickedAt)
}

func TestStatsExportExcel(t *testing.T) {
	repo := newFakeLinkRepo()
	seedStats(repo)
	flow := NewStatsFlow(repo, "https://sho.rt/")

	payload, err := flow.ExportExcel(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, payload)

	workbook, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Links")
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two data rows")
	assert.Equal(t, "Original URL", rows[0][0])
	assert.Equal(t, "https://example.com/newer", rows[1][0])
	assert.Equal(t, "https://sho.rt/new123", rows[1][2])
	assert.Equal(t, "Never", rows[2][5], "never-clicked links render as Never")
}
