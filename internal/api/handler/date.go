package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// dateField is an optional calendar date in a request body. Browsers send
// "YYYY-MM-DD" from date inputs and "" when the input is cleared; RFC 3339
// timestamps and null are accepted too.
type dateField struct {
	// Set reports whether the key was present in the body.
	Set bool
	// Value is nil when the client sent "" or null.
	Value *time.Time
}

func (d *dateField) UnmarshalJSON(b []byte) error {
	d.Set = true
	d.Value = nil
	if string(b) == "null" {
		return nil
	}

	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return errors.New("date must be a string")
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	for _, layout := range []string{dateLayout, time.RFC3339Nano} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			d.Value = &t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q: use YYYY-MM-DD or RFC 3339", raw)
}

// cleared reports whether the client explicitly emptied the date.
func (d dateField) cleared() bool {
	return d.Set && d.Value == nil
}
