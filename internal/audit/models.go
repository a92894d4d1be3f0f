package audit

import "time"

// EventType names a workflow action worth keeping a trail of.
type EventType string

const (
	EventDeclarationCreated      EventType = "declaration_created"
	EventDeclarationTransitioned EventType = "declaration_transitioned"
	EventTransitionRejected      EventType = "declaration_transition_rejected"
	EventDeclarationRevised      EventType = "declaration_revised"
	EventDeclarationDeactivated  EventType = "declaration_deactivated"
	EventRecipeCreated           EventType = "recipe_created"
)

// Event is emitted from the workflow to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Type          EventType         `json:"type"`
	Timestamp     time.Time         `json:"timestamp"`
	DeclarationID string            `json:"declaration_id,omitempty"`
	RecipeID      string            `json:"recipe_id,omitempty"`
	Actor         string            `json:"actor,omitempty"`
	FromStatus    string            `json:"from_status,omitempty"`
	ToStatus      string            `json:"to_status,omitempty"`
	Reason        string            `json:"reason,omitempty"`
	RequestID     string            `json:"request_id,omitempty"`
	Details       map[string]string `json:"details,omitempty"`
}

// Key is the partitioning key for ordered sinks: events of one declaration
// stay in order.
func (e Event) Key() string {
	if e.DeclarationID != "" {
		return e.DeclarationID
	}
	return e.RecipeID
}
