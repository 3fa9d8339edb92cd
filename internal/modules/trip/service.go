// README: Trip service implements lifecycle transitions and the asset cascade.
package trip

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"convoy/internal/types"
)

var (
	ErrInvalidTransition = errors.New("invalid trip status transition")
	ErrNotFound          = errors.New("trip not found")
	ErrConflict          = errors.New("trip state conflict")
	ErrBadRequest        = errors.New("bad request")
)

type Service struct {
	store *Store
	log   *zap.Logger
}

func NewService(store *Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, log: log}
}

type CreateCommand struct {
	VehicleID    types.ID
	OriginHubID  types.ID
	Notes        string
	Stops        []Stop
	AssetIDs     []types.ID
	PersonnelIDs []types.ID
}

type TransitionCommand struct {
	TripID types.ID
	To     Status
}

type TransitionResult struct {
	NewStatus     Status
	AssetsUpdated int
}

// Create files a manually entered trip in draft.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (types.ID, error) {
	return s.create(ctx, cmd, StatusDraft, true)
}

// FileRecommended files a trip candidate proposed by the external optimizer.
func (s *Service) FileRecommended(ctx context.Context, cmd CreateCommand) (types.ID, error) {
	return s.create(ctx, cmd, StatusRecommended, false)
}

func (s *Service) create(ctx context.Context, cmd CreateCommand, status Status, manual bool) (types.ID, error) {
	if cmd.VehicleID == "" || cmd.OriginHubID == "" {
		return "", ErrBadRequest
	}
	seen := make(map[int]bool, len(cmd.Stops))
	for _, st := range cmd.Stops {
		if st.VenueID == "" || seen[st.StopOrder] {
			return "", ErrBadRequest
		}
		seen[st.StopOrder] = true
	}

	now := time.Now().UTC()
	t := &Trip{
		ID:           types.ID(uuid.NewString()),
		Status:       status,
		VehicleID:    cmd.VehicleID,
		OriginHubID:  cmd.OriginHubID,
		IsManual:     manual,
		Notes:        cmd.Notes,
		Stops:        cmd.Stops,
		AssetIDs:     cmd.AssetIDs,
		PersonnelIDs: cmd.PersonnelIDs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Create(ctx, t); err != nil {
		return "", err
	}
	return t.ID, nil
}

// Transition validates and applies one trip transition together with its
// asset cascade. The outcome is all-or-nothing: on any failure the trip, the
// assets, and the ledger are untouched.
func (s *Service) Transition(ctx context.Context, cmd TransitionCommand) (TransitionResult, error) {
	cc, err := s.store.GetCascadeContext(ctx, cmd.TripID)
	if err != nil {
		return TransitionResult{}, err
	}

	plan, err := PlanCascade(cc, cmd.To, time.Now().UTC())
	if err != nil {
		s.log.Info("rejected trip transition",
			zap.String("trip_id", string(cmd.TripID)),
			zap.String("from", string(cc.Status)),
			zap.String("to", string(cmd.To)),
			zap.Error(err))
		return TransitionResult{}, err
	}

	ok, err := s.store.ApplyCascade(ctx, plan)
	if err != nil {
		s.log.Error("trip cascade write failed",
			zap.String("trip_id", string(cmd.TripID)),
			zap.String("from", string(cc.Status)),
			zap.String("to", string(cmd.To)),
			zap.Int("assets", len(plan.Assets)),
			zap.Error(err))
		return TransitionResult{}, err
	}
	if !ok {
		s.log.Info("trip transition lost race",
			zap.String("trip_id", string(cmd.TripID)),
			zap.String("from", string(cc.Status)),
			zap.String("to", string(cmd.To)))
		return TransitionResult{}, ErrConflict
	}

	s.log.Debug("trip transition applied",
		zap.String("trip_id", string(cmd.TripID)),
		zap.String("to", string(cmd.To)),
		zap.Int("assets_updated", len(plan.Assets)))
	return TransitionResult{NewStatus: cmd.To, AssetsUpdated: len(plan.Assets)}, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Trip, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, status Status, limit int) ([]Trip, error) {
	return s.store.List(ctx, status, limit)
}

func (s *Service) UpdateNotes(ctx context.Context, id types.ID, notes string) error {
	return s.store.UpdateNotes(ctx, id, notes)
}
