package util

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var guayaquilLocation *time.Location

func init() {
	var err error
	guayaquilLocation, err = time.LoadLocation("America/Guayaquil")
	if err != nil {
		guayaquilLocation = time.FixedZone("ECT", -5*60*60)
	}
}

func Location() *time.Location {
	return guayaquilLocation
}

// ParseDate reads a YYYY-MM-DD value as local midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), guayaquilLocation)
}

// EndOfDay returns the last instant of t's local day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.In(guayaquilLocation).Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, guayaquilLocation).Add(-time.Nanosecond)
}

func TimePtr(t time.Time) *time.Time {
	return &t
}

// LocalDate is a calendar date serialized as YYYY-MM-DD.
type LocalDate struct {
	time.Time
}

func NewLocalDate(t time.Time) LocalDate {
	y, m, d := t.In(guayaquilLocation).Date()
	return LocalDate{time.Date(y, m, d, 0, 0, 0, 0, guayaquilLocation)}
}

func (ld LocalDate) String() string {
	if ld.IsZero() {
		return ""
	}
	return ld.In(guayaquilLocation).Format(DateLayout)
}

func (ld *LocalDate) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	ld.Time = t
	return nil
}

func (ld LocalDate) MarshalJSON() ([]byte, error) {
	if ld.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + ld.String() + `"`), nil
}

func (ld LocalDate) Value() (driver.Value, error) {
	if ld.IsZero() {
		return nil, nil
	}
	return ld.String(), nil
}

func (ld *LocalDate) Scan(value interface{}) error {
	if value == nil {
		ld.Time = time.Time{}
		return nil
	}

	switch v := value.(type) {
	case time.Time:
		y, m, d := v.Date()
		ld.Time = time.Date(y, m, d, 0, 0, 0, 0, guayaquilLocation)
		return nil
	case []byte:
		return ld.scanString(string(v))
	case string:
		return ld.scanString(v)
	default:
		return fmt.Errorf("cannot scan type %T into LocalDate", value)
	}
}

func (ld *LocalDate) scanString(s string) error {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	ld.Time = t
	return nil
}
