package models

// CalibratedSample is a single tri-axial acceleration sample in physical units.
// The timestamp keeps the wire format of the source record so that exported
// tables line up with raw Movebank output.
type CalibratedSample struct {
	Timestamp    string  `json:"timestamp"`
	DeploymentID int64   `json:"deployment_id"`
	AccX         float64 `json:"acc_x"`
	AccY         float64 `json:"acc_y"`
	AccZ         float64 `json:"acc_z"`
}

// GPSFix is a normalized location reading. A coordinate that was empty or did
// not parse stays nil; the raw string form is preserved so downstream consumers
// can decide how to treat incomplete fixes.
type GPSFix struct {
	Timestamp    string   `json:"timestamp"`
	DeploymentID string   `json:"deployment_id"`
	Latitude     *float64 `json:"location_lat"`
	Longitude    *float64 `json:"location_long"`
	LatitudeRaw  string   `json:"-"`
	LongitudeRaw string   `json:"-"`
}
