// README: Trip aggregate and lifecycle state machine.
package trip

import (
	"time"

	"convoy/internal/modules/asset"
	"convoy/internal/types"
)

type Status string

const (
	StatusDraft       Status = "draft"
	StatusRecommended Status = "recommended"
	StatusConfirmed   Status = "confirmed"
	StatusInTransit   Status = "in_transit"
	StatusOnSite      Status = "on_site"
	StatusReturning   Status = "returning"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
)

// Stop is one ordered leg of a trip. StopOrder values are unique per trip and
// totally order its stops.
type Stop struct {
	VenueID   types.ID
	StopOrder int
}

// Trip is one vehicle's scheduled round trip. Cascades currently pin every
// linked asset's on-site location to the first stop; per-asset stop
// destinations on multi-stop trips are an open product question.
type Trip struct {
	ID           types.ID
	Status       Status
	VehicleID    types.ID
	OriginHubID  types.ID
	IsManual     bool
	Notes        string
	Stops        []Stop
	AssetIDs     []types.ID
	PersonnelIDs []types.ID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AllowedTransitions represents the trip state flow (diagram) as code.
// draft and recommended are entry states; completed and cancelled are terminal.
var AllowedTransitions = map[Status][]Status{
	StatusDraft:       {StatusConfirmed, StatusCancelled},
	StatusRecommended: {StatusConfirmed, StatusCancelled},
	StatusConfirmed:   {StatusInTransit, StatusCancelled},
	StatusInTransit:   {StatusOnSite},
	StatusOnSite:      {StatusReturning},
	StatusReturning:   {StatusCompleted},
}

// CanTransition reports whether from -> to is an allowed edge. Same-state
// transitions are invalid so a replayed request cannot re-run a cascade.
func CanTransition(from, to Status) bool {
	if from == to {
		return false
	}
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a trip can still change state. Terminal trips
// accept notes updates only.
func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled
}

// cascadeTargets maps an operational trip status to the asset status every
// linked asset takes when the trip enters it. Transitions absent from this
// map (confirm, cancel) do not move assets.
var cascadeTargets = map[Status]asset.Status{
	StatusInTransit: asset.StatusInTransit,
	StatusOnSite:    asset.StatusOnSite,
	StatusReturning: asset.StatusReturning,
	StatusCompleted: asset.StatusAtHub,
}
