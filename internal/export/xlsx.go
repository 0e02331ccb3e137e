package export

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/pitchlens/pitchlens/internal/model"
)

// WriteXLSX writes the company summary as an Excel workbook. Excel is
// what these tables usually end up in, so the optional workbook saves
// a CSV import step.
func (e *Exporter) WriteXLSX(report *model.Report) error {
	if len(report.Summary) == 0 {
		return nil
	}
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Company Summary"
	f.SetSheetName("Sheet1", sheet)

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("creating stream writer: %w", err)
	}

	header := make([]interface{}, len(summaryHeaders))
	for i, h := range summaryHeaders {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}

	for i, row := range report.Summary {
		record := summaryRecord(row)
		cells := make([]interface{}, len(record))
		// First three columns are text, the rest are counts
		for j, v := range record {
			if j < 3 {
				cells[j] = v
			} else {
				cells[j] = row2int(v)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("resolving cell name: %w", err)
		}
		if err := sw.SetRow(cell, cells); err != nil {
			return fmt.Errorf("writing summary row: %w", err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flushing stream writer: %w", err)
	}

	path := filepath.Join(e.dir, "summary.xlsx")
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing summary.xlsx: %w", err)
	}
	e.logf("✓ wrote summary.xlsx (%d rows)", len(report.Summary))
	return nil
}

func row2int(s string) interface{} {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return s
		}
		n = n*10 + int(s[i]-'0')
	}
	return n
}
