package repository

import (
	"database/sql"
	"time"

	"github.com/alexanderramin/strata/internal/domain"
)

// Schedule dates are calendar days and are stored as YYYY-MM-DD text.
const dateLayout = "2006-01-02"

// dateValue returns the column value for an optional date.
func dateValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}

// parseDate reads an optional date column. Unparseable text reads as absent.
func parseDate(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// daysValue stores a duration as its day count.
func daysValue(d *domain.Duration) any {
	if d == nil {
		return nil
	}
	return d.Value
}

func parseDays(v sql.NullFloat64) *domain.Duration {
	if !v.Valid {
		return nil
	}
	d := domain.Days(v.Float64)
	return &d
}
