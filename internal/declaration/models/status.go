package models

// Status is the workflow state of a declaration of performance.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusReviewed  Status = "reviewed"
	StatusApproved  Status = "approved"
	StatusPublished Status = "published"
	StatusRevoked   Status = "revoked"
)

// forward lists the linear workflow in order; revoked sits outside it.
var forward = []Status{StatusDraft, StatusSubmitted, StatusReviewed, StatusApproved, StatusPublished}

// Statuses returns every workflow state in lifecycle order.
func Statuses() []Status {
	return append(append([]Status{}, forward...), StatusRevoked)
}

// ParseStatus returns the status named by s.
func ParseStatus(s string) (Status, bool) {
	st := Status(s)
	return st, st.IsValid()
}

func (s Status) IsValid() bool {
	return s == StatusRevoked || s.position() >= 0
}

func (s Status) String() string {
	return string(s)
}

func (s Status) position() int {
	for i, st := range forward {
		if st == s {
			return i
		}
	}
	return -1
}

// Next returns the forward-adjacent status, if any.
func (s Status) Next() (Status, bool) {
	i := s.position()
	if i < 0 || i == len(forward)-1 {
		return "", false
	}
	return forward[i+1], true
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == StatusRevoked
}

// CanTransitionTo allows the forward-adjacent step and revocation of any
// declaration that has left draft.
func (s Status) CanTransitionTo(target Status) bool {
	if s.IsTerminal() || !target.IsValid() {
		return false
	}
	if target == StatusRevoked {
		return s != StatusDraft
	}
	next, ok := s.Next()
	return ok && next == target
}

// RequiresSignatory reports whether entering s needs the strict rule set.
// Findings only block transitions into these states.
func (s Status) RequiresSignatory() bool {
	return s == StatusApproved || s == StatusPublished
}
