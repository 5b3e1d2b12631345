package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"medexplain/internal/domain"
)

const (
	interactionsSheet = "Interactions"
	summarySheet      = "Summary"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat resolves a query value to a Format. Empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// WriteXLSX writes a workbook with an Interactions sheet holding one row per record
// and a Summary sheet holding the per-severity counts.
func WriteXLSX(out io.Writer, records []domain.InteractionRecord) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", interactionsSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	if err := f.SetSheetRow(interactionsSheet, "A1", &columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := recordToRow(&records[i])
		if err := f.SetSheetRow(interactionsSheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}
	if err := f.SetSheetRow(summarySheet, "A1", &[]string{"Severity", "Count"}); err != nil {
		return err
	}
	counts := domain.CountBySeverity(records)
	for i, sev := range domain.Severities {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &[]interface{}{string(sev), counts[sev]}); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// Write renders records in the given format.
func Write(out io.Writer, format Format, records []domain.InteractionRecord) error {
	if format == FormatXLSX {
		return WriteXLSX(out, records)
	}
	return WriteCSV(out, records)
}
