package decode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"movedata/internal/models"
)

// TimestampLayout is the fixed Movebank wire format for event timestamps,
// microsecond precision.
const TimestampLayout = "2006-01-02 15:04:05.000000"

// adcZeroBias is the zero-g offset of the 12-bit ADC.
const adcZeroBias = 2048

var (
	// ErrRaggedBurst marks a raw sample list whose length is not a multiple of
	// three. A trailing partial triple is a data contract violation, so the
	// record fails rather than being silently truncated.
	ErrRaggedBurst = errors.New("decode: raw acceleration count not divisible by three")
	// ErrBadSamplingFrequency marks a missing, unparsable, or non-positive
	// sampling frequency.
	ErrBadSamplingFrequency = errors.New("decode: invalid sampling frequency")
)

// AccelerationDecoder converts raw interleaved acceleration bursts into
// calibrated, timestamped tri-axial samples. Raw values arrive as a flat
// X,Y,Z,X,Y,Z,... integer list; per-sample timestamps are reconstructed from
// the burst start time and the sampling frequency.
type AccelerationDecoder struct {
	unit        Unit
	sensitivity Sensitivity
	logger      *zap.Logger
}

// NewAccelerationDecoder returns a decoder for the given unit and sensitivity.
// Empty values fall back to m/s2 and high sensitivity.
func NewAccelerationDecoder(unit Unit, sensitivity Sensitivity, logger *zap.Logger) *AccelerationDecoder {
	if unit == "" {
		unit = UnitMetersPerSecondSquared
	}
	if sensitivity == "" {
		sensitivity = SensitivityHigh
	}
	return &AccelerationDecoder{
		unit:        unit,
		sensitivity: sensitivity,
		logger:      logger,
	}
}

// Decode transforms one raw burst record into calibrated samples, in original
// order.
func (d *AccelerationDecoder) Decode(record models.RawEventRecord) ([]models.CalibratedSample, error) {
	fields := strings.Fields(record[models.FieldAccelerationsRaw])
	if len(fields)%3 != 0 {
		return nil, fmt.Errorf("%w: got %d values", ErrRaggedBurst, len(fields))
	}

	raw := make([]int64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("decode: raw acceleration value %q: %w", f, err)
		}
		raw[i] = v
	}

	freq, err := strconv.ParseFloat(record[models.FieldSamplingFrequency], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadSamplingFrequency, record[models.FieldSamplingFrequency])
	}
	if freq <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrBadSamplingFrequency, freq)
	}
	period := 1.0 / freq

	start, err := time.Parse(TimestampLayout, record[models.FieldTimestamp])
	if err != nil {
		return nil, fmt.Errorf("decode: burst timestamp: %w", err)
	}

	tagID, err := strconv.ParseInt(record[models.FieldTagLocalIdentifier], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("decode: tag identifier: %w", err)
	}

	deploymentID, err := strconv.ParseInt(record[models.FieldDeploymentID], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("decode: deployment id: %w", err)
	}

	factor := SlopeFor(tagID, d.sensitivity) * d.unit.factor()

	samples := make([]models.CalibratedSample, 0, len(raw)/3)
	for i := 0; i+2 < len(raw); i += 3 {
		idx := i / 3
		ts := start.Add(time.Duration(float64(idx) * period * float64(time.Second)))
		samples = append(samples, models.CalibratedSample{
			Timestamp:    ts.Format(TimestampLayout),
			DeploymentID: deploymentID,
			AccX:         float64(raw[i]-adcZeroBias) * factor,
			AccY:         float64(raw[i+1]-adcZeroBias) * factor,
			AccZ:         float64(raw[i+2]-adcZeroBias) * factor,
		})
	}
	return samples, nil
}

// DecodeBatch decodes each record independently and returns one sample slice
// per surviving record, never a flattened sequence. A record that fails to
// decode is skipped with a warning so sibling records are unaffected.
func (d *AccelerationDecoder) DecodeBatch(records []models.RawEventRecord) [][]models.CalibratedSample {
	bursts := make([][]models.CalibratedSample, 0, len(records))
	for _, record := range records {
		samples, err := d.Decode(record)
		if err != nil {
			d.logger.Warn("skipping undecodable acceleration record",
				zap.String("timestamp", record[models.FieldTimestamp]),
				zap.Error(err))
			continue
		}
		bursts = append(bursts, samples)
	}
	return bursts
}
