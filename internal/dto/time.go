package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ledgerTimeLayouts are tried in order. The ledger emits zone-less local
// date-times; RFC 3339 is accepted for completeness.
var ledgerTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// LedgerTime is a timestamp decoded from any of the formats the ledger uses.
// Zone-less values are interpreted as UTC.
type LedgerTime struct {
	time.Time
}

// ParseLedgerTime parses s using the known ledger layouts.
func ParseLedgerTime(s string) (time.Time, error) {
	for _, layout := range ledgerTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

func (t *LedgerTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	// Some serialisers emit local date-times as [y, m, d, h, min, s, nanos].
	if len(data) > 0 && data[0] == '[' {
		var parts []int
		if err := json.Unmarshal(data, &parts); err != nil {
			return fmt.Errorf("invalid timestamp array: %w", err)
		}
		for len(parts) < 7 {
			parts = append(parts, 0)
		}
		t.Time = time.Date(parts[0], time.Month(parts[1]), parts[2], parts[3], parts[4], parts[5], parts[6], time.UTC)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid timestamp: %w", err)
	}
	if s == "" {
		return nil
	}
	parsed, err := ParseLedgerTime(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t LedgerTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}
