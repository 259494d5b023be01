package server

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// parseOptionalDate parses a YYYY-MM-DD query value; empty means unset.
func parseOptionalDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
