package models

// RawEventRecord is one row of a Movebank response, keyed by the header field
// name. Records live only for the duration of a single request cycle.
type RawEventRecord map[string]string

// Field names of interest in event rows.
const (
	FieldTimestamp          = "timestamp"
	FieldDeploymentID       = "deployment_id"
	FieldTagLocalIdentifier = "tag_local_identifier"
	FieldSamplingFrequency  = "acceleration_sampling_frequency_per_axis"
	FieldAccelerationsRaw   = "accelerations_raw"
	FieldLocationLat        = "location_lat"
	FieldLocationLong       = "location_long"
)
