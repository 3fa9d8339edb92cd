// README: Cascade planning; derives asset updates and ledger rows for a trip transition.
package trip

import (
	"time"

	"convoy/internal/modules/asset"
	"convoy/internal/modules/movement"
	"convoy/internal/types"
)

// CascadeContext is the read-model snapshot taken in one query before a trip
// transition: the trip's identity and origin hub name, its first stop, and
// every linked asset with its current location names. Ledger rows are built
// from these names, never from a later read.
type CascadeContext struct {
	TripID        types.ID
	Status        Status
	OriginHubID   types.ID
	OriginHubName string

	// First stop by stop_order; HasStop is false for trips without stops.
	HasStop        bool
	FirstVenueID   types.ID
	FirstVenueName string

	Assets []asset.Snapshot
}

// AssetChange is one asset's planned update within a cascade.
type AssetChange struct {
	ID      types.ID
	From    asset.Status
	Payload asset.UpdatePayload
}

// CascadePlan is the full unit of work for one trip transition: the trip's
// conditional status write, N conditional asset writes, and N ledger inserts.
// The store executes it atomically.
type CascadePlan struct {
	TripID    types.ID
	From      Status
	To        Status
	Assets    []AssetChange
	Movements []movement.Record
}

// PlanCascade validates the trip transition and computes the consequential
// asset transitions. It is pure: no I/O, deterministic given the context and
// clock. Any linked asset that cannot legally make the mapped transition
// rejects the whole plan, so a cascade never partially applies.
func PlanCascade(cc CascadeContext, to Status, now time.Time) (CascadePlan, error) {
	if !CanTransition(cc.Status, to) {
		return CascadePlan{}, ErrInvalidTransition
	}

	plan := CascadePlan{TripID: cc.TripID, From: cc.Status, To: to}

	target, cascades := cascadeTargets[to]
	if !cascades {
		return plan, nil
	}
	if to == StatusOnSite && !cc.HasStop {
		return CascadePlan{}, ErrBadRequest
	}

	tripID := cc.TripID
	originHub := cc.OriginHubID
	firstVenue := cc.FirstVenueID

	for _, a := range cc.Assets {
		if !asset.CanTransition(a.Status, target) {
			return CascadePlan{}, ErrInvalidTransition
		}

		tctx := asset.TransitionContext{
			From:          a.Status,
			FromHubName:   a.HubName,
			FromVenueName: a.VenueName,
			TripID:        &tripID,
		}
		switch target {
		case asset.StatusOnSite:
			tctx.VenueID = &firstVenue
			tctx.VenueName = cc.FirstVenueName
		case asset.StatusAtHub:
			// Trip completed: assets come home to the origin hub and drop
			// their trip reference.
			tctx.HubID = &originHub
			tctx.HubName = cc.OriginHubName
		}

		payload, err := asset.ResolvePayload(target, tctx)
		if err != nil {
			return CascadePlan{}, err
		}

		plan.Assets = append(plan.Assets, AssetChange{ID: a.ID, From: a.Status, Payload: payload})
		plan.Movements = append(plan.Movements, asset.ResolveMovement(a.ID, target, tctx, now))
	}
	return plan, nil
}
