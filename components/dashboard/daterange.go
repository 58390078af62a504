package dashboard

import (
	"fmt"
	"time"
)

// DateRange is the shared two-field query filter. Bounds are ISO calendar
// dates; an empty string means unset. The range is replaced as one value, so
// panels never observe a partial update.
type DateRange struct {
	Start string `json:"startDate"`
	End   string `json:"endDate"`
}

// IsZero reports whether both bounds are unset.
func (r DateRange) IsZero() bool {
	return r.Start == "" && r.End == ""
}

// Equal reports whether both bounds match.
func (r DateRange) Equal(other DateRange) bool {
	return r.Start == other.Start && r.End == other.End
}

// Validate checks that set bounds parse as calendar dates and that the end
// does not precede the start.
func (r DateRange) Validate() error {
	var start, end time.Time
	var err error
	if r.Start != "" {
		if start, err = time.Parse(time.DateOnly, r.Start); err != nil {
			return fmt.Errorf("dashboard: invalid start date %q: %w", r.Start, err)
		}
	}
	if r.End != "" {
		if end, err = time.Parse(time.DateOnly, r.End); err != nil {
			return fmt.Errorf("dashboard: invalid end date %q: %w", r.End, err)
		}
	}
	if r.Start != "" && r.End != "" && end.Before(start) {
		return fmt.Errorf("dashboard: end date %s precedes start date %s", r.End, r.Start)
	}
	return nil
}
