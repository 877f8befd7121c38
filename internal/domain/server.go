package domain

import "time"

// Status represents the provisioning state of a server.
type Status string

const (
	StatusPending    Status = "pending"
	StatusScheduled  Status = "scheduled"
	StatusProcessing Status = "processing"
	StatusReady      Status = "ready"
)

// Event represents an action that triggers a state transition.
type Event string

const (
	EventSchedule Event = "schedule"
	EventProcess  Event = "process"
	EventComplete Event = "complete"
)

// Transition defines a valid state change: an event moves a server from Src to Dst.
type Transition struct {
	Event Event
	Src   Status
	Dst   Status
}

// Transitions defines all valid state changes in the provisioning lifecycle.
// The sequence is linear and forward-only: a server never regresses and never
// skips a step. This is domain knowledge consumed by the FSM adapter.
var Transitions = []Transition{
	{Event: EventSchedule, Src: StatusPending, Dst: StatusScheduled},
	{Event: EventProcess, Src: StatusScheduled, Dst: StatusProcessing},
	{Event: EventComplete, Src: StatusProcessing, Dst: StatusReady},
}

// NextEvent returns the event that advances a server from the given status,
// or false if the status is terminal.
func NextEvent(current Status) (Event, bool) {
	for _, t := range Transitions {
		if t.Src == current {
			return t.Event, true
		}
	}
	return "", false
}

// Server is the core domain entity: a provisionable resource owned by a tenant.
type Server struct {
	ID          int64
	TenantID    int64
	Name        string
	Status      Status
	DateCreated time.Time
}

// Name length bounds, enforced at the application boundary.
const (
	NameMinLen = 5
	NameMaxLen = 20
)

// ValidName reports whether a server name satisfies the length constraint.
func ValidName(name string) bool {
	return len(name) >= NameMinLen && len(name) <= NameMaxLen
}
