// README: Trip candidates proposed by the external route optimizer.
package planner

import "convoy/internal/types"

// Candidate is one proposed trip from the optimizer's feed. The engine itself
// is opaque; candidates are filed as recommended trips and reviewed by an
// operator before confirmation.
type Candidate struct {
	ID           string          `json:"id"`
	VehicleID    types.ID        `json:"vehicle_id"`
	OriginHubID  types.ID        `json:"origin_hub_id"`
	Stops        []CandidateStop `json:"stops"`
	AssetIDs     []types.ID      `json:"asset_ids"`
	PersonnelIDs []types.ID      `json:"personnel_ids"`
	Notes        string          `json:"notes"`
}

type CandidateStop struct {
	VenueID   types.ID `json:"venue_id"`
	StopOrder int      `json:"stop_order"`
}
