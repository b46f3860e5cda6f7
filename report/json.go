package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/benyamin-persia/dice-automation-apply/models"
)

// WriteJSON writes all job records to filename as an indented JSON array.
// Returns the number of records written.
func WriteJSON(filename string, records []models.JobRecord) (int, error) {
	if records == nil {
		records = []models.JobRecord{}
	}

	f, err := os.Create(filename)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", filename, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return 0, fmt.Errorf("encode %s: %w", filename, err)
	}

	return len(records), nil
}
