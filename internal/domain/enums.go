package domain

type RelationType string

const (
	RelationFinishStart  RelationType = "FS"
	RelationStartStart   RelationType = "SS"
	RelationFinishFinish RelationType = "FF"
	RelationStartFinish  RelationType = "SF"
)

// String returns the long form used in reports, e.g. "FinishStart".
func (r RelationType) String() string {
	switch r {
	case RelationFinishStart:
		return "FinishStart"
	case RelationStartStart:
		return "StartStart"
	case RelationFinishFinish:
		return "FinishFinish"
	case RelationStartFinish:
		return "StartFinish"
	default:
		return string(r)
	}
}

type ConstraintType string

const (
	ConstraintNone               ConstraintType = ""
	ConstraintStartNoEarlierThan ConstraintType = "SNET"
	ConstraintStartNoLaterThan   ConstraintType = "SNLT"
	ConstraintFinishNoEarlier    ConstraintType = "FNET"
	ConstraintFinishNoLaterThan  ConstraintType = "FNLT"
)

type DurationUnit string

const (
	UnitDays DurationUnit = "d"
)

// Duration is a span of working time as stored in the source file. No unit
// conversion is performed; P3 stores whole working days.
type Duration struct {
	Value float64      `json:"value" yaml:"value"`
	Units DurationUnit `json:"units" yaml:"units"`
}

// Days returns a Duration of n working days.
func Days(n float64) Duration {
	return Duration{Value: n, Units: UnitDays}
}

// IsZero reports whether the duration has no length.
func (d Duration) IsZero() bool {
	return d.Value == 0
}
