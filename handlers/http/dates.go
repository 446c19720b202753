package httpHandler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// dueDate accepts RFC 3339 timestamps or plain YYYY-MM-DD dates (UTC midnight).
type dueDate struct {
	time.Time
}

func (d *dueDate) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("dueDate must be a string: %w", err)
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("dueDate %q is not an RFC 3339 timestamp or YYYY-MM-DD date", s)
}

func (d *dueDate) ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
