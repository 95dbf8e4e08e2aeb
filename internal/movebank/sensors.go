package movebank

import "fmt"

// SensorType is Movebank's fixed numeric sensor identifier.
type SensorType int64

const (
	SensorBirdRing                SensorType = 397
	SensorGPS                     SensorType = 653
	SensorRadioTransmitter        SensorType = 673
	SensorArgosDopplerShift       SensorType = 82798
	SensorNaturalMark             SensorType = 2365682
	SensorAcceleration            SensorType = 2365683
	SensorSolarGeolocator         SensorType = 3886361
	SensorAccessoryMeasurements   SensorType = 7842954
	SensorSolarGeolocatorRaw      SensorType = 9301403
	SensorBarometer               SensorType = 77740391
	SensorMagnetometer            SensorType = 77740402
	SensorOrientation             SensorType = 819073350
	SensorSolarGeolocatorTwilight SensorType = 914097241
)

var sensorNames = map[SensorType]string{
	SensorBirdRing:                "Bird Ring",
	SensorGPS:                     "GPS",
	SensorRadioTransmitter:        "Radio Transmitter",
	SensorArgosDopplerShift:       "Argos Doppler Shift",
	SensorNaturalMark:             "Natural Mark",
	SensorAcceleration:            "Acceleration",
	SensorSolarGeolocator:         "Solar Geolocator",
	SensorAccessoryMeasurements:   "Accessory Measurements",
	SensorSolarGeolocatorRaw:      "Solar Geolocator Raw",
	SensorBarometer:               "Barometer",
	SensorMagnetometer:            "Magnetometer",
	SensorOrientation:             "Orientation",
	SensorSolarGeolocatorTwilight: "Solar Geolocator Twilight",
}

// String returns the Movebank display name for the sensor.
func (s SensorType) String() string {
	if name, ok := sensorNames[s]; ok {
		return name
	}
	return fmt.Sprintf("sensor(%d)", int64(s))
}
