package sales

import (
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/vishal-24-1/demodashboard/pkg/errors"
)

const (
	// RecordDateLayout is the DD-MM-YYYY convention used by the record set.
	RecordDateLayout = "02-01-2006"
	// SelectionDateLayout is the YYYY-MM-DD convention used by range selection and trend buckets.
	SelectionDateLayout = "2006-01-02"
)

// Date is a UTC calendar day taken from a record. The zero value is an invalid
// date; every range comparison against it is false.
type Date struct {
	t     time.Time
	valid bool
}

// NewDate builds a valid Date. Out-of-range components are normalized by time.Date.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), valid: true}
}

// ParseDate parses a DD-MM-YYYY string. Anything that is not exactly three
// numeric components, or that does not name a real calendar day, yields an
// invalid Date instead of an error.
func ParseDate(value string) Date {
	parts := strings.Split(strings.TrimSpace(value), "-")
	if len(parts) != 3 {
		return Date{}
	}
	var nums [3]int
	for i, part := range parts {
		if !isDigits(part) {
			return Date{}
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return Date{}
		}
		nums[i] = n
	}
	day, month, year := nums[0], nums[1], nums[2]
	d := NewDate(year, time.Month(month), day)
	if d.t.Day() != day || int(d.t.Month()) != month || d.t.Year() != year {
		return Date{}
	}
	return d
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (d Date) Valid() bool {
	return d.valid
}

// Time returns the midnight UTC instant of the day, or the zero time when invalid.
func (d Date) Time() time.Time {
	if !d.valid {
		return time.Time{}
	}
	return d.t
}

// ISO renders the day as YYYY-MM-DD; invalid dates render as "".
func (d Date) ISO() string {
	if !d.valid {
		return ""
	}
	return d.t.Format(SelectionDateLayout)
}

func (d Date) String() string {
	if !d.valid {
		return "invalid date"
	}
	return d.ISO()
}

// Before reports whether d is strictly earlier than other. Invalid dates never compare.
func (d Date) Before(other Date) bool {
	return d.valid && other.valid && d.t.Before(other.t)
}

// ParseSelectionDate parses a YYYY-MM-DD range bound. An empty value means
// "no bound" and returns the zero time.
func ParseSelectionDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(SelectionDateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "date must use YYYY-MM-DD").
			WithDetails(map[string]any{"value": value})
	}
	return t, nil
}
