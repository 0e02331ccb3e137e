package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pitchlens/pitchlens/internal/model"
)

// WriteJSON writes the complete report as report.json
func (e *Exporter) WriteJSON(report *model.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	path := filepath.Join(e.dir, "report.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report.json: %w", err)
	}
	e.logf("✓ wrote report.json (%d bytes)", len(data))
	return nil
}
