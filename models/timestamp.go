// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the wire format of every timestamp in the HTTP API
// (millisecond precision with a numeric zone offset, e.g.
// "2026-10-16T09:30:00.000+0000").
const TimestampLayout = "2006-01-02T15:04:05.000-0700"

// storageLayouts lists the textual forms a driver may hand back for a
// TIMESTAMP column when it does not convert the value to time.Time itself.
var storageLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Timestamp wraps time.Time with the API's JSON layout and with
// [database/sql.Scanner] support for drivers that return timestamps as text.
type Timestamp struct {
	time.Time
}

// NewTimestamp returns t as a Timestamp.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// MarshalJSON encodes the timestamp using [TimestampLayout]. A zero value is
// encoded as null.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(t.Format(TimestampLayout))
}

// UnmarshalJSON accepts null, [TimestampLayout] or RFC 3339 strings.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		t.Time = time.Time{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}

	parsed, err := time.Parse(TimestampLayout, raw)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", raw, err)
		}
	}

	t.Time = parsed
	return nil
}

// Scan implements [database/sql.Scanner].
func (t *Timestamp) Scan(src any) error {
	switch value := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = value
		return nil
	case string:
		return t.parseStorage(value)
	case []byte:
		return t.parseStorage(string(value))
	default:
		return fmt.Errorf("cannot scan %T into Timestamp", src)
	}
}

func (t *Timestamp) parseStorage(value string) error {
	value = strings.TrimSpace(value)
	for _, layout := range storageLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			t.Time = parsed
			return nil
		}
	}

	return fmt.Errorf("cannot parse %q as timestamp", value)
}
