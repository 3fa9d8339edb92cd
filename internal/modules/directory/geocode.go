// README: Venue geocoding via the Google Maps Geocoding API.
package directory

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"convoy/internal/types"
)

// Geocoder turns a postal address into coordinates. A nil Geocoder on the
// service disables geocoding; venues then store no location.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (types.Point, bool, error)
}

type MapsGeocoder struct {
	client *maps.Client
}

func NewMapsGeocoder(client *maps.Client) *MapsGeocoder {
	return &MapsGeocoder{client: client}
}

func (g *MapsGeocoder) Geocode(ctx context.Context, address string) (types.Point, bool, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return types.Point{}, false, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return types.Point{}, false, nil
	}
	loc := results[0].Geometry.Location
	return types.Point{Lat: loc.Lat, Lng: loc.Lng}, true, nil
}
