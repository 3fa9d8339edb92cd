// README: Common value types shared across modules.
package types

// ID identifies hubs, venues, vehicles, trips, assets and personnel.
type ID string

// Point is a WGS84 coordinate pair, populated when a venue is geocoded.
type Point struct {
	Lat float64
	Lng float64
}
