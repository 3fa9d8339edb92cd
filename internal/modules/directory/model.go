// README: Hubs, venues, vehicles and personnel reference data.
package directory

import (
	"time"

	"convoy/internal/types"
)

// Hub is a fixed warehouse location where vehicles and assets return between trips.
type Hub struct {
	ID        types.ID
	Name      string
	City      string
	CreatedAt time.Time
}

// Venue is an event site; the destination of a trip stop.
type Venue struct {
	ID        types.ID
	Name      string
	Address   string
	Location  *types.Point
	CreatedAt time.Time
}

type Vehicle struct {
	ID        types.ID
	Plate     string
	HomeHubID types.ID
	CreatedAt time.Time
}

type Person struct {
	ID        types.ID
	Name      string
	Role      string
	CreatedAt time.Time
}
