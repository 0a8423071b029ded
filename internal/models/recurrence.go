package models

// Frequency is the step between two occurrences of a recurring series.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// EndCondition decides when a recurring series stops.
type EndCondition string

const (
	EndNever            EndCondition = "never"
	EndAfterOccurrences EndCondition = "afterOccurrences"
	EndOnDate           EndCondition = "onDate"
)

// Valid reports whether c is a known end condition.
func (c EndCondition) Valid() bool {
	switch c {
	case EndNever, EndAfterOccurrences, EndOnDate:
		return true
	}
	return false
}

// RecurrenceRule describes how a template repeats. Occurrences is only
// meaningful for EndAfterOccurrences and EndDate only for EndOnDate.
type RecurrenceRule struct {
	Frequency    Frequency    `gorm:"column:frequency" json:"frequency,omitempty" validate:"frequency"`
	EndCondition EndCondition `gorm:"column:end_condition" json:"end_condition,omitempty" validate:"end_condition"`
	Occurrences  int          `gorm:"column:occurrences" json:"occurrences,omitempty"`
	EndDate      *Date        `gorm:"column:end_date" json:"end_date,omitempty"`
}

// Equal reports whether two rules would expand identically from the same anchor.
func (r RecurrenceRule) Equal(o RecurrenceRule) bool {
	if r.Frequency != o.Frequency || r.EndCondition != o.EndCondition || r.Occurrences != o.Occurrences {
		return false
	}
	switch {
	case r.EndDate == nil && o.EndDate == nil:
		return true
	case r.EndDate == nil || o.EndDate == nil:
		return false
	default:
		return r.EndDate.Equal(*o.EndDate)
	}
}
