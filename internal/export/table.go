package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"movedata/internal/models"
)

// Table is a column-ordered tabular artifact ready for delimited export.
type Table struct {
	Columns []string
	Rows    [][]string
}

var (
	accelerationColumns = []string{"timestamp", "deployment_id", "AccX", "AccY", "AccZ"}
	gpsColumns          = []string{"timestamp", "deployment_id", "location_lat", "location_long"}
)

// AccelerationTable flattens per-burst sample slices into one table, burst
// order preserved.
func AccelerationTable(bursts [][]models.CalibratedSample) Table {
	table := Table{Columns: accelerationColumns}
	for _, burst := range bursts {
		for _, s := range burst {
			table.Rows = append(table.Rows, []string{
				s.Timestamp,
				strconv.FormatInt(s.DeploymentID, 10),
				formatValue(s.AccX),
				formatValue(s.AccY),
				formatValue(s.AccZ),
			})
		}
	}
	return table
}

// GPSTable renders fixes one row each. Coordinates that never parsed keep
// their raw string form, matching the tolerance of the normalizer.
func GPSTable(fixes []models.GPSFix) Table {
	table := Table{Columns: gpsColumns}
	for _, f := range fixes {
		table.Rows = append(table.Rows, []string{
			f.Timestamp,
			f.DeploymentID,
			coordinate(f.Latitude, f.LatitudeRaw),
			coordinate(f.Longitude, f.LongitudeRaw),
		})
	}
	return table
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func coordinate(parsed *float64, raw string) string {
	if parsed != nil {
		return strconv.FormatFloat(*parsed, 'f', -1, 64)
	}
	return raw
}

// WriteCSV writes the table with a header row.
func (t Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// SaveCSV writes the table to a file, replacing any existing content.
func (t Table) SaveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	if err := t.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return f.Close()
}
