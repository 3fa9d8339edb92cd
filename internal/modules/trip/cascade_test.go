// README: Cascade planning tests (pure, no database).
package trip

import (
	"errors"
	"testing"
	"time"

	"convoy/internal/modules/asset"
	"convoy/internal/modules/movement"
	"convoy/internal/types"
)

func hubSnapshot(id types.ID, hubID types.ID, hubName string) asset.Snapshot {
	h := hubID
	return asset.Snapshot{ID: id, Status: asset.StatusAtHub, HubID: &h, HubName: hubName}
}

func testContext(status Status, assets ...asset.Snapshot) CascadeContext {
	return CascadeContext{
		TripID:         "t1",
		Status:         status,
		OriginHubID:    "hub-cle",
		OriginHubName:  "Cleveland",
		HasStop:        true,
		FirstVenueID:   "venue-sf",
		FirstVenueName: "Soldier Field",
		Assets:         assets,
	}
}

func TestPlanCascadeDepart(t *testing.T) {
	now := time.Now().UTC()
	cc := testContext(StatusConfirmed,
		hubSnapshot("a1", "hub-cle", "Cleveland"),
		hubSnapshot("a2", "hub-cle", "Cleveland"),
	)

	plan, err := PlanCascade(cc, StatusInTransit, now)
	if err != nil {
		t.Fatalf("PlanCascade: %v", err)
	}
	if plan.From != StatusConfirmed || plan.To != StatusInTransit {
		t.Fatalf("unexpected edge %s -> %s", plan.From, plan.To)
	}
	if len(plan.Assets) != 2 || len(plan.Movements) != 2 {
		t.Fatalf("expected 2 asset updates and 2 movements, got %d/%d", len(plan.Assets), len(plan.Movements))
	}
	for _, ch := range plan.Assets {
		if ch.Payload.Status != asset.StatusInTransit {
			t.Errorf("asset %s: status %s, want in_transit", ch.ID, ch.Payload.Status)
		}
		if ch.Payload.HubID != nil || ch.Payload.VenueID != nil {
			t.Errorf("asset %s: in_transit must clear hub and venue", ch.ID)
		}
		if ch.Payload.TripID == nil || *ch.Payload.TripID != "t1" {
			t.Errorf("asset %s: in_transit must reference the trip", ch.ID)
		}
	}
	for _, rec := range plan.Movements {
		if rec.FromName != "Cleveland" {
			t.Errorf("movement from %q, want Cleveland", rec.FromName)
		}
		if rec.ToName != movement.TransitLabel {
			t.Errorf("movement to %q, want %q", rec.ToName, movement.TransitLabel)
		}
		if rec.TripID == nil || *rec.TripID != "t1" {
			t.Error("trip-driven movement must reference the trip")
		}
	}
}

func TestPlanCascadeArrive(t *testing.T) {
	now := time.Now().UTC()
	tripID := types.ID("t1")
	cc := testContext(StatusInTransit,
		asset.Snapshot{ID: "a1", Status: asset.StatusInTransit, TripID: &tripID},
	)

	plan, err := PlanCascade(cc, StatusOnSite, now)
	if err != nil {
		t.Fatalf("PlanCascade: %v", err)
	}
	ch := plan.Assets[0]
	if ch.Payload.Status != asset.StatusOnSite {
		t.Fatalf("status %s, want on_site", ch.Payload.Status)
	}
	if ch.Payload.VenueID == nil || *ch.Payload.VenueID != "venue-sf" {
		t.Fatal("on_site must set the first stop's venue")
	}
	if ch.Payload.HubID != nil {
		t.Fatal("on_site must clear the hub")
	}
	rec := plan.Movements[0]
	if rec.FromName != movement.TransitLabel || rec.ToName != "Soldier Field" {
		t.Fatalf("movement %q -> %q, want In Transit -> Soldier Field", rec.FromName, rec.ToName)
	}
}

func TestPlanCascadeComplete(t *testing.T) {
	now := time.Now().UTC()
	tripID := types.ID("t1")
	cc := testContext(StatusReturning,
		asset.Snapshot{ID: "a1", Status: asset.StatusReturning, TripID: &tripID},
	)

	plan, err := PlanCascade(cc, StatusCompleted, now)
	if err != nil {
		t.Fatalf("PlanCascade: %v", err)
	}
	ch := plan.Assets[0]
	if ch.Payload.Status != asset.StatusAtHub {
		t.Fatalf("status %s, want at_hub", ch.Payload.Status)
	}
	if ch.Payload.HubID == nil || *ch.Payload.HubID != "hub-cle" {
		t.Fatal("completion must return assets to the origin hub")
	}
	if ch.Payload.TripID != nil {
		t.Fatal("completion must clear the trip reference")
	}
	rec := plan.Movements[0]
	if rec.FromName != movement.TransitLabel || rec.ToName != "Cleveland" {
		t.Fatalf("movement %q -> %q, want In Transit -> Cleveland", rec.FromName, rec.ToName)
	}
}

// TestPlanCascadeRoundTrip drives a trip through its four operational
// transitions and checks every asset ends back at the origin hub with exactly
// one movement per leg.
func TestPlanCascadeRoundTrip(t *testing.T) {
	now := time.Now().UTC()
	cc := testContext(StatusConfirmed, hubSnapshot("a1", "hub-cle", "Cleveland"))

	legs := []Status{StatusInTransit, StatusOnSite, StatusReturning, StatusCompleted}
	movements := 0
	for _, to := range legs {
		plan, err := PlanCascade(cc, to, now)
		if err != nil {
			t.Fatalf("PlanCascade(%s): %v", to, err)
		}
		if len(plan.Movements) != 1 {
			t.Fatalf("leg %s: expected 1 movement, got %d", to, len(plan.Movements))
		}
		movements += len(plan.Movements)

		// Apply the plan to the context the way the store would.
		cc.Status = to
		ch := plan.Assets[0]
		snap := asset.Snapshot{ID: ch.ID, Status: ch.Payload.Status}
		snap.HubID = ch.Payload.HubID
		snap.VenueID = ch.Payload.VenueID
		snap.TripID = ch.Payload.TripID
		if ch.Payload.HubID != nil {
			snap.HubName = "Cleveland"
		}
		if ch.Payload.VenueID != nil {
			snap.VenueName = "Soldier Field"
		}
		cc.Assets = []asset.Snapshot{snap}
	}

	if movements != 4 {
		t.Fatalf("expected 4 movements across the round trip, got %d", movements)
	}
	final := cc.Assets[0]
	if final.Status != asset.StatusAtHub {
		t.Fatalf("final status %s, want at_hub", final.Status)
	}
	if final.HubID == nil || *final.HubID != "hub-cle" {
		t.Fatal("asset did not come home to the origin hub")
	}
}

func TestPlanCascadeInvalidEdge(t *testing.T) {
	now := time.Now().UTC()
	cc := testContext(StatusDraft, hubSnapshot("a1", "hub-cle", "Cleveland"))

	if _, err := PlanCascade(cc, StatusOnSite, now); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("draft -> on_site: expected ErrInvalidTransition, got %v", err)
	}
	if _, err := PlanCascade(cc, StatusDraft, now); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("draft -> draft: expected ErrInvalidTransition, got %v", err)
	}
}

func TestPlanCascadeNoAssetMoveOnConfirmOrCancel(t *testing.T) {
	now := time.Now().UTC()
	cc := testContext(StatusDraft, hubSnapshot("a1", "hub-cle", "Cleveland"))

	plan, err := PlanCascade(cc, StatusConfirmed, now)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if len(plan.Assets) != 0 || len(plan.Movements) != 0 {
		t.Fatal("confirm must not move assets")
	}

	plan, err = PlanCascade(cc, StatusCancelled, now)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if len(plan.Assets) != 0 || len(plan.Movements) != 0 {
		t.Fatal("cancel must not move assets")
	}
}

// TestPlanCascadeBlockedAsset checks that one asset stuck in an
// administrative state rejects the whole cascade instead of being skipped.
func TestPlanCascadeBlockedAsset(t *testing.T) {
	now := time.Now().UTC()
	hubID := types.ID("hub-cle")
	cc := testContext(StatusConfirmed,
		hubSnapshot("a1", "hub-cle", "Cleveland"),
		asset.Snapshot{ID: "a2", Status: asset.StatusRebranding, HubID: &hubID, HubName: "Cleveland"},
	)

	if _, err := PlanCascade(cc, StatusInTransit, now); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for blocked asset, got %v", err)
	}
}

func TestPlanCascadeOnSiteRequiresStop(t *testing.T) {
	now := time.Now().UTC()
	tripID := types.ID("t1")
	cc := testContext(StatusInTransit,
		asset.Snapshot{ID: "a1", Status: asset.StatusInTransit, TripID: &tripID},
	)
	cc.HasStop = false

	if _, err := PlanCascade(cc, StatusOnSite, now); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest for stopless trip, got %v", err)
	}
}
