package domain

// Priority represents the allocation class a demand falls into at a given instant.
type Priority string

const (
	PriorityCritical    Priority = "critical"
	PriorityNonCritical Priority = "non_critical"
)

func (p Priority) String() string {
	return string(p)
}

func (p Priority) IsCritical() bool {
	return p == PriorityCritical
}
