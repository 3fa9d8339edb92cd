// README: Append-only movement ledger records for asset location changes.
package movement

import (
	"time"

	"convoy/internal/types"
)

// LocationKind classifies the endpoints of a movement.
type LocationKind string

const (
	KindHub     LocationKind = "hub"
	KindVenue   LocationKind = "venue"
	KindTransit LocationKind = "transit"
	// KindNone marks the origin side of an intake record; an asset entering the
	// system has no prior location.
	KindNone LocationKind = "none"
)

// TransitLabel is the display name persisted for in-transit endpoints. Ledger
// names are snapshotted at write time, never re-derived from current rows.
const TransitLabel = "In Transit"

// Record is one ledger row. Rows are inserted once and never updated or deleted.
type Record struct {
	ID       int64
	AssetID  types.ID
	FromKind LocationKind
	FromName string
	ToKind   LocationKind
	ToName   string
	// TripID is set only when the movement was driven by a trip transition.
	TripID    *types.ID
	Note      string
	CreatedAt time.Time
}
