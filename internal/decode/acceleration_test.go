package decode

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"movedata/internal/models"
)

func burstRecord(raw string) models.RawEventRecord {
	return models.RawEventRecord{
		models.FieldTimestamp:          "2020-01-01 00:00:00.000000",
		models.FieldDeploymentID:       "42",
		models.FieldTagLocalIdentifier: "2000",
		models.FieldSamplingFrequency:  "10",
		models.FieldAccelerationsRaw:   raw,
	}
}

func TestDecodeInterpolatesTimestamps(t *testing.T) {
	d := NewAccelerationDecoder(UnitG, SensitivityHigh, zap.NewNop())

	samples, err := d.Decode(burstRecord("2048 2048 2048 2048 2048 2048 2048 2048 2048"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(samples))
	}

	want := []string{
		"2020-01-01 00:00:00.000000",
		"2020-01-01 00:00:00.100000",
		"2020-01-01 00:00:00.200000",
	}
	for i, s := range samples {
		if s.Timestamp != want[i] {
			t.Fatalf("sample %d: expected timestamp %q, got %q", i, want[i], s.Timestamp)
		}
		if s.DeploymentID != 42 {
			t.Fatalf("sample %d: expected deployment 42, got %d", i, s.DeploymentID)
		}
	}
}

func TestDecodeZeroBiasMapsToZero(t *testing.T) {
	d := NewAccelerationDecoder(UnitMetersPerSecondSquared, SensitivityLow, zap.NewNop())

	samples, err := d.Decode(burstRecord("2048 2048 2048"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := samples[0]
	if s.AccX != 0 || s.AccY != 0 || s.AccZ != 0 {
		t.Fatalf("expected zero acceleration, got (%v, %v, %v)", s.AccX, s.AccY, s.AccZ)
	}
}

func TestDecodeUnitConversion(t *testing.T) {
	// tag 2000 at high sensitivity has slope 0.001, so a raw excursion of
	// 1000 is exactly 1 g
	record := burstRecord("3048 2048 2048")

	inG := NewAccelerationDecoder(UnitG, SensitivityHigh, zap.NewNop())
	samples, err := inG.Decode(record)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := samples[0].AccX; math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("expected 1.0 g, got %v", got)
	}

	inMS2 := NewAccelerationDecoder(UnitMetersPerSecondSquared, SensitivityHigh, zap.NewNop())
	samples, err = inMS2.Decode(record)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := samples[0].AccX; math.Abs(got-9.81) > 1e-9 {
		t.Fatalf("expected 9.81 m/s2, got %v", got)
	}
}

func TestDecodeIsDeterministic(t *testing.T) {
	d := NewAccelerationDecoder(UnitMetersPerSecondSquared, SensitivityHigh, zap.NewNop())
	record := burstRecord("100 2200 3000 512 1024 4095")

	first, err := d.Decode(record)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := d.Decode(record)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output, got %v and %v", first, second)
	}
}

func TestDecodeRejectsRaggedBurst(t *testing.T) {
	d := NewAccelerationDecoder(UnitG, SensitivityHigh, zap.NewNop())

	_, err := d.Decode(burstRecord("2048 2048 2048 2048"))
	if !errors.Is(err, ErrRaggedBurst) {
		t.Fatalf("expected ErrRaggedBurst, got %v", err)
	}
}

func TestDecodeRejectsBadSamplingFrequency(t *testing.T) {
	d := NewAccelerationDecoder(UnitG, SensitivityHigh, zap.NewNop())

	record := burstRecord("2048 2048 2048")
	record[models.FieldSamplingFrequency] = "0"
	if _, err := d.Decode(record); !errors.Is(err, ErrBadSamplingFrequency) {
		t.Fatalf("expected ErrBadSamplingFrequency for zero, got %v", err)
	}

	record[models.FieldSamplingFrequency] = ""
	if _, err := d.Decode(record); !errors.Is(err, ErrBadSamplingFrequency) {
		t.Fatalf("expected ErrBadSamplingFrequency for missing, got %v", err)
	}
}

func TestDecodeBatchIsolatesFailingRecords(t *testing.T) {
	d := NewAccelerationDecoder(UnitG, SensitivityHigh, zap.NewNop())

	good := burstRecord("2048 2048 2048")
	bad := burstRecord("2048 2048")
	bursts := d.DecodeBatch([]models.RawEventRecord{bad, good})

	if len(bursts) != 1 {
		t.Fatalf("expected 1 surviving burst, got %d", len(bursts))
	}
	if len(bursts[0]) != 1 {
		t.Fatalf("expected 1 sample in surviving burst, got %d", len(bursts[0]))
	}
}

func TestDecodeBatchKeepsBurstsSeparate(t *testing.T) {
	d := NewAccelerationDecoder(UnitG, SensitivityHigh, zap.NewNop())

	bursts := d.DecodeBatch([]models.RawEventRecord{
		burstRecord("2048 2048 2048 2048 2048 2048"),
		burstRecord("2048 2048 2048"),
	})
	if len(bursts) != 2 {
		t.Fatalf("expected 2 bursts, got %d", len(bursts))
	}
	if len(bursts[0]) != 2 || len(bursts[1]) != 1 {
		t.Fatalf("expected burst sizes 2 and 1, got %d and %d", len(bursts[0]), len(bursts[1]))
	}
}
