package sales

import "time"

// DateRange is an inclusive window. A zero Start is unbounded below; a zero End
// resolves to the current instant when the filter runs.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a range from two optional YYYY-MM-DD strings.
func NewDateRange(from, to string) (DateRange, error) {
	start, err := ParseSelectionDate(from)
	if err != nil {
		return DateRange{}, err
	}
	end, err := ParseSelectionDate(to)
	if err != nil {
		return DateRange{}, err
	}
	return DateRange{Start: start, End: end}, nil
}

// Contains reports whether the day falls inside the window evaluated at now.
func (r DateRange) Contains(d Date, now time.Time) bool {
	if !d.Valid() {
		return false
	}
	if !r.Start.IsZero() && d.t.Before(r.Start) {
		return false
	}
	end := r.End
	if end.IsZero() {
		end = now
	}
	return !d.t.After(end)
}

// From renders the lower bound as YYYY-MM-DD, or "" when unbounded.
func (r DateRange) From() string {
	if r.Start.IsZero() {
		return ""
	}
	return r.Start.Format(SelectionDateLayout)
}

// To renders the upper bound as YYYY-MM-DD, or "" when it defaults to now.
func (r DateRange) To() string {
	if r.End.IsZero() {
		return ""
	}
	return r.End.Format(SelectionDateLayout)
}

// FilterByRange returns the records whose date falls inside rng, in input order.
// The input slice is never modified.
func FilterByRange(records []Record, rng DateRange, now time.Time) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if rng.Contains(rec.Date, now) {
			out = append(out, rec)
		}
	}
	return out
}
