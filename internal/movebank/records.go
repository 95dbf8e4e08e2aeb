package movebank

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"movedata/internal/models"
)

// ParseRecords parses a delimited Movebank response body into rows keyed by
// the header field names. An empty body yields no records.
func ParseRecords(body string) ([]models.RawEventRecord, error) {
	reader := csv.NewReader(strings.NewReader(body))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("movebank: response header: %w", err)
	}

	var records []models.RawEventRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("movebank: response row: %w", err)
		}
		record := make(models.RawEventRecord, len(header))
		for i, name := range header {
			if i < len(row) {
				record[name] = row[i]
			}
		}
		records = append(records, record)
	}
	return records, nil
}
