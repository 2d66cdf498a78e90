package domain

import "time"

// ComplaintStatus enumerates complaint lifecycle states.
type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "Pending"
	StatusInProgress ComplaintStatus = "In Progress"
	StatusResolved   ComplaintStatus = "Resolved"
)

// ComplaintCategory classifies what a complaint concerns.
type ComplaintCategory string

const (
	CategoryProduct   ComplaintCategory = "Product"
	CategoryService   ComplaintCategory = "Service"
	CategorySupport   ComplaintCategory = "Support"
	CategoryTechnical ComplaintCategory = "Technical"
	CategoryOther     ComplaintCategory = "Other"
)

// ComplaintPriority enumerates urgency levels.
type ComplaintPriority string

const (
	PriorityLow    ComplaintPriority = "Low"
	PriorityMedium ComplaintPriority = "Medium"
	PriorityHigh   ComplaintPriority = "High"
)

const (
	// TitleMaxLen and DescriptionMaxLen bound user input; the same bounds
	// exist as CHECK constraints in the schema.
	TitleMaxLen       = 100
	DescriptionMaxLen = 1000
)

// Complaint is the aggregate for user-submitted complaints.
type Complaint struct {
	ID            string
	UserID        string
	Title         string
	Description   string
	Category      ComplaintCategory
	Priority      ComplaintPriority
	Status        ComplaintStatus
	DateSubmitted time.Time
}

// ValidStatus reports whether s is one of the three defined states.
func ValidStatus(s ComplaintStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// ValidCategory reports whether c is in the category vocabulary.
func ValidCategory(c ComplaintCategory) bool {
	switch c {
	case CategoryProduct, CategoryService, CategorySupport, CategoryTechnical, CategoryOther:
		return true
	}
	return false
}

// ValidPriority reports whether p is in the priority vocabulary.
func ValidPriority(p ComplaintPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// statusTransitions is the explicit transition table. Every state is
// currently reachable from every state, self-transitions included;
// tightening the policy later means removing entries here.
var statusTransitions = map[ComplaintStatus][]ComplaintStatus{
	StatusPending:    {StatusPending, StatusInProgress, StatusResolved},
	StatusInProgress: {StatusPending, StatusInProgress, StatusResolved},
	StatusResolved:   {StatusPending, StatusInProgress, StatusResolved},
}

// CanTransition reports whether the status machine permits moving a
// complaint from one state to another.
func CanTransition(from, to ComplaintStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
