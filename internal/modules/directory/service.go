// README: Directory service; name lookups for transition contexts go through the cache.
package directory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"convoy/internal/types"
)

var (
	ErrNotFound   = errors.New("directory entry not found")
	ErrBadRequest = errors.New("bad request")
)

type Service struct {
	store    *Store
	cache    NameCache
	geocoder Geocoder
	log      *zap.Logger
}

// NewService wires the directory. cache and geocoder may be nil: a nil cache
// means every lookup hits Postgres, a nil geocoder skips venue coordinates.
func NewService(store *Store, cache NameCache, geocoder Geocoder, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, cache: cache, geocoder: geocoder, log: log}
}

func (s *Service) CreateHub(ctx context.Context, name, city string) (types.ID, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrBadRequest
	}
	h := &Hub{
		ID:        types.ID(uuid.NewString()),
		Name:      strings.TrimSpace(name),
		City:      strings.TrimSpace(city),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateHub(ctx, h); err != nil {
		return "", err
	}
	return h.ID, nil
}

func (s *Service) CreateVenue(ctx context.Context, name, address string) (types.ID, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrBadRequest
	}
	v := &Venue{
		ID:        types.ID(uuid.NewString()),
		Name:      strings.TrimSpace(name),
		Address:   strings.TrimSpace(address),
		CreatedAt: time.Now().UTC(),
	}
	if s.geocoder != nil && v.Address != "" {
		point, ok, err := s.geocoder.Geocode(ctx, v.Address)
		if err != nil {
			// Geocoding is best effort; the venue is still usable without coordinates.
			s.log.Warn("venue geocoding failed", zap.String("address", v.Address), zap.Error(err))
		} else if ok {
			v.Location = &point
		}
	}
	if err := s.store.CreateVenue(ctx, v); err != nil {
		return "", err
	}
	return v.ID, nil
}

func (s *Service) CreateVehicle(ctx context.Context, plate string, homeHubID types.ID) (types.ID, error) {
	if strings.TrimSpace(plate) == "" || homeHubID == "" {
		return "", ErrBadRequest
	}
	v := &Vehicle{
		ID:        types.ID(uuid.NewString()),
		Plate:     strings.TrimSpace(plate),
		HomeHubID: homeHubID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateVehicle(ctx, v); err != nil {
		return "", err
	}
	return v.ID, nil
}

func (s *Service) CreatePerson(ctx context.Context, name, role string) (types.ID, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrBadRequest
	}
	p := &Person{
		ID:        types.ID(uuid.NewString()),
		Name:      strings.TrimSpace(name),
		Role:      strings.TrimSpace(role),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreatePerson(ctx, p); err != nil {
		return "", err
	}
	return p.ID, nil
}

func (s *Service) RenameHub(ctx context.Context, id types.ID, name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrBadRequest
	}
	if err := s.store.RenameHub(ctx, id, strings.TrimSpace(name)); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, "hub", string(id))
	}
	return nil
}

func (s *Service) RenameVenue(ctx context.Context, id types.ID, name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrBadRequest
	}
	if err := s.store.RenameVenue(ctx, id, strings.TrimSpace(name)); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, "venue", string(id))
	}
	return nil
}

// HubName implements the name port consumed by the asset module.
func (s *Service) HubName(ctx context.Context, id types.ID) (string, bool, error) {
	if s.cache != nil {
		if name, ok := s.cache.GetName(ctx, "hub", string(id)); ok {
			return name, true, nil
		}
	}
	h, err := s.store.GetHub(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if s.cache != nil {
		s.cache.SetName(ctx, "hub", string(id), h.Name)
	}
	return h.Name, true, nil
}

// VenueName implements the name port consumed by the asset module.
func (s *Service) VenueName(ctx context.Context, id types.ID) (string, bool, error) {
	if s.cache != nil {
		if name, ok := s.cache.GetName(ctx, "venue", string(id)); ok {
			return name, true, nil
		}
	}
	v, err := s.store.GetVenue(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if s.cache != nil {
		s.cache.SetName(ctx, "venue", string(id), v.Name)
	}
	return v.Name, true, nil
}

func (s *Service) GetHub(ctx context.Context, id types.ID) (*Hub, error) {
	return s.store.GetHub(ctx, id)
}

func (s *Service) GetVenue(ctx context.Context, id types.ID) (*Venue, error) {
	return s.store.GetVenue(ctx, id)
}

func (s *Service) ListHubs(ctx context.Context) ([]Hub, error) {
	return s.store.ListHubs(ctx)
}

func (s *Service) ListVenues(ctx context.Context) ([]Venue, error) {
	return s.store.ListVenues(ctx)
}

func (s *Service) ListVehicles(ctx context.Context) ([]Vehicle, error) {
	return s.store.ListVehicles(ctx)
}

func (s *Service) ListPersonnel(ctx context.Context) ([]Person, error) {
	return s.store.ListPersonnel(ctx)
}
