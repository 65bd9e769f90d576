package business_flow

import (
	"bytes"
	"context"
	"fmt"

	"github.com/pabst/shortener/models"
	"github.com/pabst/shortener/repository"
	"github.com/pabst/shortener/utils"
	"github.com/xuri/excelize/v2"
)

// StatsFlow reports on every stored link
type StatsFlow interface {
	List(ctx context.Context) ([]*models.LinkStats, error)
	ExportExcel(ctx context.Context) ([]byte, error)
}

// StatsFlowImpl implements the stats flow
type StatsFlowImpl struct {
	linkRepo repository.LinkRepository
	rootURL  string
}

// NewStatsFlow creates a new stats flow
func NewStatsFlow(linkRepo repository.LinkRepository, rootURL string) StatsFlow {
	return &StatsFlowImpl{
		linkRepo: linkRepo,
		rootURL:  rootURL,
	}
}

// List returns every link with its click summary, newest first
func (f *StatsFlowImpl) List(ctx context.Context) ([]*models.LinkStats, error) {
	rows, err := f.linkRepo.ListWithStats(ctx)
	if err != nil {
		return nil, NewBusinessError("STATS_FAILED", "Failed to load link stats", err)
	}
	return rows, nil
}

// ExportExcel renders the stats listing as an xlsx workbook
func (f *StatsFlowImpl) ExportExcel(ctx context.Context) ([]byte, error) {
	rows, err := f.List(ctx)
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	defer file.Close()

	sheet := "Links"
	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	headers := []interface{}{"Original URL", "Title", "Short Link", "Clicks", "Created", "Last Clicked", "Expires"}
	if err := file.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell name: %w", err)
		}

		values := []interface{}{
			row.OriginalURL,
			row.Title,
			f.rootURL + row.Segment,
			row.ClickCount,
			utils.FormatDate(row.CreatedAt),
			utils.FormatDatePtr(row.LastClickedAt),
			utils.FormatDatePtr(row.ExpiresAt),
		}
		if err := file.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	return buf.Bytes(), nil
}
