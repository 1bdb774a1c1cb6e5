package sheets

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/qclab/internal/config"
	"github.com/mamadbah2/qclab/internal/domain/models"
)

const rowDateLayout = "2006-01-02 15:04"

// Writer appends rows to a spreadsheet range.
type Writer interface {
	WriteRow(ctx context.Context, sheetRange string, values []interface{}) error
}

// GoogleSheetRepository implements Writer using the official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger, opts ...option.ClientOption) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOpts := []option.ClientOption{option.WithScopes(sheetsapi.SpreadsheetsScope)}
	if cfg.CredentialsPath != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.CredentialsPath))
	}
	clientOpts = append(clientOpts, opts...)

	service, err := sheetsapi.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// WriteRow appends the provided values to the supplied sheet range.
func (r *GoogleSheetRepository) WriteRow(ctx context.Context, sheetRange string, values []interface{}) error {
	if sheetRange == "" {
		return fmt.Errorf("sheetRange must not be empty")
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append row into range %s: %w", sheetRange, err)
	}

	r.logger.Debug("row appended to sheet", zap.String("range", sheetRange))
	return nil
}

// RecordExporter writes one row per created record.
type RecordExporter struct {
	writer     Writer
	sheetRange string
}

// NewRecordExporter binds a writer to the export range.
func NewRecordExporter(writer Writer, sheetRange string) *RecordExporter {
	return &RecordExporter{writer: writer, sheetRange: sheetRange}
}

// Export appends rec to the export sheet.
func (e *RecordExporter) Export(ctx context.Context, rec models.QCRecord) error {
	if err := e.writer.WriteRow(ctx, e.sheetRange, RecordRow(rec)); err != nil {
		return fmt.Errorf("export record %s: %w", rec.ID, err)
	}
	return nil
}

// RecordRow flattens a record into spreadsheet cells.
func RecordRow(rec models.QCRecord) []interface{} {
	params := make([]string, 0, len(rec.Parameters))
	for _, p := range rec.Parameters {
		cell := fmt.Sprintf("%s=%s", p.Name, p.Value.String())
		if p.Unit != "" && p.Unit != "-" {
			cell += " " + p.Unit
		}
		params = append(params, cell)
	}

	return []interface{}{
		rec.Date.Format(rowDateLayout),
		rec.ID,
		rec.BatchNumber,
		rec.ProductName,
		rec.Category.Label(),
		rec.EffectivePurpose().Label(),
		rec.CustomerName,
		string(rec.Status),
		rec.Technician,
		strings.Join(params, "; "),
	}
}
