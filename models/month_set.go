package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// MonthSet is a set of calendar months stored as a JSON array of month
// numbers. It replaces free-text month lists so that window checks are a
// typed membership test rather than a locale-dependent string comparison.
type MonthSet []time.Month

func (m MonthSet) Contains(month time.Month) bool {
	for _, v := range m {
		if v == month {
			return true
		}
	}
	return false
}

func (m MonthSet) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]time.Month(m))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *MonthSet) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported MonthSet column type %T", value)
	}
	if len(raw) == 0 {
		*m = nil
		return nil
	}
	var months []time.Month
	if err := json.Unmarshal(raw, &months); err != nil {
		return err
	}
	*m = months
	return nil
}

// ParseMonthSet reads month lists as they appear in the crop catalog CSV,
// e.g. "June, July, September" or "June-September". Ranges are inclusive
// and may wrap the year end ("November-February").
func ParseMonthSet(s string) (MonthSet, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var out MonthSet
	add := func(m time.Month) {
		if !out.Contains(m) {
			out = append(out, m)
		}
	}

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.Contains(part, "-") {
			bounds := strings.SplitN(part, "-", 2)
			from, err := parseMonthName(bounds[0])
			if err != nil {
				return nil, err
			}
			to, err := parseMonthName(bounds[1])
			if err != nil {
				return nil, err
			}
			for m := from; ; m = nextMonth(m) {
				add(m)
				if m == to {
					break
				}
			}
			continue
		}
		m, err := parseMonthName(part)
		if err != nil {
			return nil, err
		}
		add(m)
	}
	return out, nil
}

func parseMonthName(s string) (time.Month, error) {
	s = strings.TrimSpace(s)
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(s, m.String()) || (len(s) >= 3 && strings.EqualFold(s[:3], m.String()[:3])) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown month %q", s)
}

func nextMonth(m time.Month) time.Month {
	if m == time.December {
		return time.January
	}
	return m + 1
}
