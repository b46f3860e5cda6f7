// Package report serializes each run's job records and summarizes the
// outcome for the end-of-run log block.
package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/benyamin-persia/dice-automation-apply/models"
)

// csvHeader is the fixed column set of the tabular export.
var csvHeader = []string{"Job Detail Link", "Job Title", "Skills", "Applied"}

// WriteCSV writes all job records to filename, one row per processed
// candidate, in processing order. Returns the number of rows written.
func WriteCSV(filename string, records []models.JobRecord) (int, error) {
	f, err := os.Create(filename)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", filename, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return 0, fmt.Errorf("write %s: %w", filename, err)
	}
	for _, r := range records {
		row := []string{r.DetailURL, r.Title, r.Skills, r.AppliedLabel()}
		if err := w.Write(row); err != nil {
			return 0, fmt.Errorf("write %s: %w", filename, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, fmt.Errorf("write %s: %w", filename, err)
	}

	return len(records), nil
}
