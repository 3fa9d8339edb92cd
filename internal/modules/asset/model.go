// README: Asset aggregate, status state machine, and transition resolution.
package asset

import (
	"time"

	"convoy/internal/modules/movement"
	"convoy/internal/types"
)

type Status string

const (
	StatusAtHub      Status = "at_hub"
	StatusLoaded     Status = "loaded"
	StatusInTransit  Status = "in_transit"
	StatusOnSite     Status = "on_site"
	StatusReturning  Status = "returning"
	StatusRebranding Status = "rebranding"
)

// Asset is one tracked piece of equipment. Exactly one of the location
// references is meaningful for a given status: at_hub/loaded/rebranding keep
// CurrentHubID, on_site keeps CurrentVenueID, in_transit/returning keep only
// CurrentTripID.
type Asset struct {
	ID             types.ID
	Name           string
	Category       string
	Status         Status
	CurrentHubID   *types.ID
	CurrentVenueID *types.ID
	CurrentTripID  *types.ID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Snapshot is the read-model row used to build a transition context: current
// status plus the display names of the current location, joined in one query
// before anything mutates.
type Snapshot struct {
	ID        types.ID
	Status    Status
	HubID     *types.ID
	HubName   string
	VenueID   *types.ID
	VenueName string
	TripID    *types.ID
}

// AllowedTransitions represents the asset state flow (diagram) as code.
// The operational chain mirrors a trip's legs; at_hub <-> rebranding is an
// administrative loop independent of any trip.
var AllowedTransitions = map[Status][]Status{
	StatusAtHub:      {StatusLoaded, StatusInTransit, StatusRebranding},
	StatusLoaded:     {StatusInTransit, StatusAtHub},
	StatusInTransit:  {StatusOnSite},
	StatusOnSite:     {StatusReturning},
	StatusReturning:  {StatusAtHub},
	StatusRebranding: {StatusAtHub},
}

// CanTransition reports whether from -> to is an allowed edge. Same-state
// transitions are invalid: a replayed request must not append a second ledger row.
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

// TransitionContext carries everything a transition needs, captured before the
// write: the current status and location names (the ledger's "from" side) and
// the destination references resolved by the caller.
type TransitionContext struct {
	From          Status
	FromHubName   string
	FromVenueName string

	TripID    *types.ID
	HubID     *types.ID
	HubName   string
	VenueID   *types.ID
	VenueName string

	Note string
}

// UpdatePayload is the persisted outcome of a transition.
type UpdatePayload struct {
	Status  Status
	HubID   *types.ID
	VenueID *types.ID
	TripID  *types.ID
}

// ResolvePayload computes the new location fields for a transition to the
// given status. It enforces the location invariant: each status populates
// exactly the references it needs and clears the rest.
func ResolvePayload(to Status, ctx TransitionContext) (UpdatePayload, error) {
	switch to {
	case StatusAtHub:
		if ctx.HubID == nil {
			return UpdatePayload{}, ErrBadRequest
		}
		return UpdatePayload{Status: to, HubID: ctx.HubID}, nil
	case StatusLoaded:
		if ctx.HubID == nil {
			return UpdatePayload{}, ErrBadRequest
		}
		return UpdatePayload{Status: to, HubID: ctx.HubID, TripID: ctx.TripID}, nil
	case StatusInTransit, StatusReturning:
		if ctx.TripID == nil {
			return UpdatePayload{}, ErrBadRequest
		}
		return UpdatePayload{Status: to, TripID: ctx.TripID}, nil
	case StatusOnSite:
		if ctx.VenueID == nil || ctx.TripID == nil {
			return UpdatePayload{}, ErrBadRequest
		}
		return UpdatePayload{Status: to, VenueID: ctx.VenueID, TripID: ctx.TripID}, nil
	case StatusRebranding:
		if ctx.HubID == nil {
			return UpdatePayload{}, ErrBadRequest
		}
		return UpdatePayload{Status: to, HubID: ctx.HubID}, nil
	}
	return UpdatePayload{}, ErrBadRequest
}

// ResolveMovement builds the ledger row for a transition. Both endpoint names
// come from the context as it existed before the write, so a later hub or
// venue rename cannot drift the audit trail.
func ResolveMovement(assetID types.ID, to Status, ctx TransitionContext, now time.Time) movement.Record {
	fromKind, fromName := locationOf(ctx.From, ctx.FromHubName, ctx.FromVenueName)
	toKind, toName := locationOf(to, ctx.HubName, ctx.VenueName)
	return movement.Record{
		AssetID:   assetID,
		FromKind:  fromKind,
		FromName:  fromName,
		ToKind:    toKind,
		ToName:    toName,
		TripID:    ctx.TripID,
		Note:      ctx.Note,
		CreatedAt: now,
	}
}

func locationOf(s Status, hubName, venueName string) (movement.LocationKind, string) {
	switch s {
	case StatusAtHub, StatusLoaded, StatusRebranding:
		return movement.KindHub, hubName
	case StatusOnSite:
		return movement.KindVenue, venueName
	case StatusInTransit, StatusReturning:
		return movement.KindTransit, movement.TransitLabel
	}
	return movement.KindNone, ""
}
