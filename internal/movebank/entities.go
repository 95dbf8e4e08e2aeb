package movebank

import (
	"context"
	"strconv"
	"strings"

	"movedata/internal/models"
)

// Studies lists the studies the credentials can fully see. The visibility
// filters are both requested server-side and re-checked on the parsed rows.
func (c *Client) Studies(ctx context.Context) ([]models.RawEventRecord, error) {
	body, err := c.Call(ctx, Params{
		{Key: "entity_type", Value: "study"},
		{Key: "i_can_see_data", Value: "true"},
		{Key: "there_are_data_which_i_cannot_see", Value: "false"},
	})
	if err != nil {
		return nil, err
	}
	records, err := ParseRecords(body)
	if err != nil {
		return nil, err
	}

	var visible []models.RawEventRecord
	for _, r := range records {
		if r["i_can_see_data"] == "true" && r["there_are_data_which_i_cannot_see"] == "false" {
			visible = append(visible, r)
		}
	}
	return visible, nil
}

// StudiesBySensor filters study rows advertising the named sensor in their
// sensor_type_ids column.
func StudiesBySensor(studies []models.RawEventRecord, sensorName string) []models.RawEventRecord {
	var out []models.RawEventRecord
	for _, s := range studies {
		if strings.Contains(s["sensor_type_ids"], sensorName) {
			out = append(out, s)
		}
	}
	return out
}

// IndividualsByStudy lists the tracked individuals of one study.
func (c *Client) IndividualsByStudy(ctx context.Context, studyID int64) ([]models.RawEventRecord, error) {
	body, err := c.Call(ctx, Params{
		{Key: "entity_type", Value: "individual"},
		{Key: "study_id", Value: strconv.FormatInt(studyID, 10)},
	})
	if err != nil {
		return nil, err
	}
	return ParseRecords(body)
}

// IndividualEvents fetches all event rows of one individual for one sensor,
// with all attributes.
func (c *Client) IndividualEvents(ctx context.Context, studyID, individualID int64, sensor SensorType) ([]models.RawEventRecord, error) {
	body, err := c.Call(ctx, Params{
		{Key: "entity_type", Value: "event"},
		{Key: "study_id", Value: strconv.FormatInt(studyID, 10)},
		{Key: "individual_id", Value: strconv.FormatInt(individualID, 10)},
		{Key: "sensor_type_id", Value: strconv.FormatInt(int64(sensor), 10)},
		{Key: "attributes", Value: "all"},
	})
	if err != nil {
		return nil, err
	}
	return ParseRecords(body)
}
