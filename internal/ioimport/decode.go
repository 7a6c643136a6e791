package ioimport

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// stamp is a date sent either as epoch milliseconds or as an ISO string.
type stamp struct {
	time.Time
}

var stampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	time.DateOnly,
}

func (s *stamp) UnmarshalJSON(b []byte) error {
	str := strings.TrimSpace(string(b))
	if str == "null" || str == `""` {
		return nil
	}
	if strings.HasPrefix(str, `"`) {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		for _, l := range stampLayouts {
			if t, err := time.Parse(l, v); err == nil {
				s.Time = t.UTC()
				return nil
			}
		}
		return fmt.Errorf("cannot parse date '%s'", v)
	}
	ms, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return fmt.Errorf("cannot parse date %s: %w", str, err)
	}
	s.Time = time.UnixMilli(int64(ms)).UTC()
	return nil
}

// ptr returns nil for an unset stamp.
func (s stamp) ptr() *time.Time {
	if s.IsZero() {
		return nil
	}
	t := s.Time
	return &t
}

// text takes a JSON string and ignores values of other types.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err == nil {
		*t = text(v)
	}
	return nil
}

// decodeList reads a JSON array either bare or wrapped in an object
// under key, optionally inside a GraphQL "data" envelope.
func decodeList[T any](data []byte, key string) ([]T, error) {
	var list []T
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		err := json.Unmarshal(data, &list)
		return list, err
	}

	var env map[string]json.RawMessage
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	if raw, ok := env[key]; ok {
		err := json.Unmarshal(raw, &list)
		return list, err
	}
	if raw, ok := env["data"]; ok {
		return decodeList[T](raw, key)
	}
	return nil, fmt.Errorf("no '%s' list found", key)
}
