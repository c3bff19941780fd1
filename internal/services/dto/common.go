package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

type MessageResponse struct {
	Message string `json:"message"`
}

// FlexibleTime accepts RFC3339 timestamps and plain YYYY-MM-DD dates, the
// latter as midnight UTC.
type FlexibleTime struct {
	time.Time
}

var flexibleLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func (t *FlexibleTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("time must be a string: %w", err)
	}

	for _, layout := range flexibleLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid time %q: expected RFC3339 or YYYY-MM-DD", raw)
}

func (t FlexibleTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339))
}
