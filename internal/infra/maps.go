// README: Google Maps client initialization for venue geocoding.
package infra

import (
	"fmt"

	"googlemaps.github.io/maps"
)

func NewMaps(apiKey string) (*maps.Client, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return client, nil
}
