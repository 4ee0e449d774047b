package domain

import "time"

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// MinTime returns a copy of the earlier of a and b. A nil value is ignored,
// so the result is nil only when both are nil.
func MinTime(a, b *time.Time) *time.Time {
	switch {
	case a == nil:
		return copyTime(b)
	case b == nil:
		return copyTime(a)
	case b.Before(*a):
		return copyTime(b)
	default:
		return copyTime(a)
	}
}

// MaxTime returns a copy of the later of a and b, ignoring nil values.
func MaxTime(a, b *time.Time) *time.Time {
	switch {
	case a == nil:
		return copyTime(b)
	case b == nil:
		return copyTime(a)
	case b.After(*a):
		return copyTime(b)
	default:
		return copyTime(a)
	}
}

// ClampPercent limits a percentage to the closed range [0, 100].
func ClampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
