package domain

// SplitStatus is the display status derived from isActive and isPlanned.
type SplitStatus string

const (
	StatusInactive SplitStatus = "inactive"
	StatusPlanned  SplitStatus = "planned"
	StatusActive   SplitStatus = "active"
)

// Next returns the status that follows s in the three-state cycle.
func (s SplitStatus) Next() SplitStatus {
	switch s {
	case StatusInactive:
		return StatusPlanned
	case StatusPlanned:
		return StatusActive
	default:
		return StatusInactive
	}
}

// Label is the badge text shown next to a split.
func (s SplitStatus) Label() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusPlanned:
		return "Planned"
	default:
		return "Inactive"
	}
}
