package decode

import (
	"strconv"

	"go.uber.org/zap"

	"movedata/internal/models"
)

// GPSNormalizer converts raw location rows into typed fixes. Coordinate
// problems never fail the record: an empty or unparsable value stays absent
// and the fix keeps its timestamp and deployment id for downstream filtering.
type GPSNormalizer struct {
	logger *zap.Logger
}

// NewGPSNormalizer returns a normalizer.
func NewGPSNormalizer(logger *zap.Logger) *GPSNormalizer {
	return &GPSNormalizer{logger: logger}
}

// Normalize converts one raw location record into a fix.
func (n *GPSNormalizer) Normalize(record models.RawEventRecord) models.GPSFix {
	return models.GPSFix{
		Timestamp:    record[models.FieldTimestamp],
		DeploymentID: record[models.FieldDeploymentID],
		Latitude:     n.parseCoordinate(record, models.FieldLocationLat),
		Longitude:    n.parseCoordinate(record, models.FieldLocationLong),
		LatitudeRaw:  record[models.FieldLocationLat],
		LongitudeRaw: record[models.FieldLocationLong],
	}
}

// NormalizeBatch converts all records, one fix per record.
func (n *GPSNormalizer) NormalizeBatch(records []models.RawEventRecord) []models.GPSFix {
	fixes := make([]models.GPSFix, 0, len(records))
	for _, record := range records {
		fixes = append(fixes, n.Normalize(record))
	}
	return fixes
}

func (n *GPSNormalizer) parseCoordinate(record models.RawEventRecord, field string) *float64 {
	raw := record[field]
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		n.logger.Warn("could not parse coordinate",
			zap.String("field", field),
			zap.String("value", raw))
		return nil
	}
	return &v
}
