package validators

import (
	"net/http"
	"strings"
)

// DateRangeQuery is the range selection accepted by the dashboard endpoints.
// Preset is a shorthand for a trailing window and excludes explicit bounds.
type DateRangeQuery struct {
	From   string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To     string `json:"to" validate:"omitempty,datetime=2006-01-02"`
	Preset string `json:"preset" validate:"omitempty,oneof=7d 30d 90d all,excluded_with=From To"`
}

// ParseDateRangeQuery reads and validates from, to and preset.
func ParseDateRangeQuery(r *http.Request) (DateRangeQuery, error) {
	query := r.URL.Query()
	q := DateRangeQuery{
		From:   strings.TrimSpace(query.Get("from")),
		To:     strings.TrimSpace(query.Get("to")),
		Preset: strings.ToLower(strings.TrimSpace(query.Get("preset"))),
	}
	if err := validate.Struct(q); err != nil {
		return DateRangeQuery{}, formatValidationErrors(err)
	}
	return q, nil
}
