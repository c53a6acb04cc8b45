package dashboard

import (
	"net/http"
	"time"

	"github.com/vishal-24-1/demodashboard/api/validators"
	"github.com/vishal-24-1/demodashboard/internal/sales"
)

var timeNowUTC = func() time.Time {
	return time.Now().UTC()
}

// resolveDashboardRange returns the from/to strings handed to the service.
// A preset expands to a trailing window ending today; "all" and an empty
// query leave both bounds open.
func resolveDashboardRange(r *http.Request, now time.Time) (string, string, error) {
	q, err := validators.ParseDateRangeQuery(r)
	if err != nil {
		return "", "", err
	}
	if q.Preset == "" {
		return q.From, q.To, nil
	}

	days, ok := presetDays(q.Preset)
	if !ok {
		return "", "", nil
	}
	end := now.UTC()
	start := end.AddDate(0, 0, -days)
	return start.Format(sales.SelectionDateLayout), end.Format(sales.SelectionDateLayout), nil
}

func presetDays(value string) (int, bool) {
	switch value {
	case "7d":
		return 7, true
	case "30d":
		return 30, true
	case "90d":
		return 90, true
	default:
		return 0, false
	}
}
