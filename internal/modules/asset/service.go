// README: Asset service implements standalone transitions and intake.
package asset

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"convoy/internal/modules/movement"
	"convoy/internal/types"
)

var (
	ErrInvalidTransition = errors.New("invalid asset status transition")
	ErrNotFound          = errors.New("asset not found")
	ErrConflict          = errors.New("asset state conflict")
	ErrBadRequest        = errors.New("bad request")
)

// Names resolves hub and venue display names for transition contexts. The
// found flag is false when the reference does not exist.
type Names interface {
	HubName(ctx context.Context, id types.ID) (string, bool, error)
	VenueName(ctx context.Context, id types.ID) (string, bool, error)
}

type Service struct {
	store  *Store
	ledger *movement.Store
	names  Names
	log    *zap.Logger
}

func NewService(store *Store, ledger *movement.Store, names Names, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, ledger: ledger, names: names, log: log}
}

type CreateCommand struct {
	Name     string
	Category string
	HubID    types.ID
}

type TransitionCommand struct {
	AssetID types.ID
	To      Status
	TripID  *types.ID
	HubID   *types.ID
	VenueID *types.ID
	Note    string
}

type TransitionResult struct {
	NewStatus Status
}

// Create intakes a new asset at a hub and writes its intake ledger row.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (types.ID, error) {
	if strings.TrimSpace(cmd.Name) == "" || cmd.HubID == "" {
		return "", ErrBadRequest
	}
	hubName, ok, err := s.names.HubName(ctx, cmd.HubID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrBadRequest
	}

	now := time.Now().UTC()
	hubID := cmd.HubID
	a := &Asset{
		ID:           types.ID(uuid.NewString()),
		Name:         strings.TrimSpace(cmd.Name),
		Category:     strings.TrimSpace(cmd.Category),
		Status:       StatusAtHub,
		CurrentHubID: &hubID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Create(ctx, a); err != nil {
		return "", err
	}
	if err := s.ledger.Append(ctx, movement.Record{
		AssetID:   a.ID,
		FromKind:  movement.KindNone,
		ToKind:    movement.KindHub,
		ToName:    hubName,
		Note:      "intake",
		CreatedAt: now,
	}); err != nil {
		s.log.Warn("intake ledger append failed",
			zap.String("asset_id", string(a.ID)), zap.Error(err))
	}
	return a.ID, nil
}

// Transition applies one standalone asset transition: validate against the
// table, snapshot the current location name, resolve the new payload and
// ledger row, then commit both conditionally.
func (s *Service) Transition(ctx context.Context, cmd TransitionCommand) (TransitionResult, error) {
	snap, err := s.store.GetSnapshot(ctx, cmd.AssetID)
	if err != nil {
		return TransitionResult{}, err
	}
	if !CanTransition(snap.Status, cmd.To) {
		s.log.Info("rejected asset transition",
			zap.String("asset_id", string(cmd.AssetID)),
			zap.String("from", string(snap.Status)),
			zap.String("to", string(cmd.To)))
		return TransitionResult{}, ErrInvalidTransition
	}

	tctx := TransitionContext{
		From:          snap.Status,
		FromHubName:   snap.HubName,
		FromVenueName: snap.VenueName,
		TripID:        cmd.TripID,
		HubID:         cmd.HubID,
		VenueID:       cmd.VenueID,
		Note:          cmd.Note,
	}
	if cmd.HubID != nil {
		name, ok, err := s.names.HubName(ctx, *cmd.HubID)
		if err != nil {
			return TransitionResult{}, err
		}
		if !ok {
			return TransitionResult{}, ErrBadRequest
		}
		tctx.HubName = name
	}
	if cmd.VenueID != nil {
		name, ok, err := s.names.VenueName(ctx, *cmd.VenueID)
		if err != nil {
			return TransitionResult{}, err
		}
		if !ok {
			return TransitionResult{}, ErrBadRequest
		}
		tctx.VenueName = name
	}

	payload, err := ResolvePayload(cmd.To, tctx)
	if err != nil {
		return TransitionResult{}, err
	}
	rec := ResolveMovement(cmd.AssetID, cmd.To, tctx, time.Now().UTC())

	ok, err := s.store.ApplyTransition(ctx, cmd.AssetID, snap.Status, payload, rec)
	if err != nil {
		s.log.Error("asset transition write failed",
			zap.String("asset_id", string(cmd.AssetID)),
			zap.String("from", string(snap.Status)),
			zap.String("to", string(cmd.To)),
			zap.Error(err))
		return TransitionResult{}, err
	}
	if !ok {
		s.log.Info("asset transition lost race",
			zap.String("asset_id", string(cmd.AssetID)),
			zap.String("from", string(snap.Status)),
			zap.String("to", string(cmd.To)))
		return TransitionResult{}, ErrConflict
	}
	return TransitionResult{NewStatus: cmd.To}, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Asset, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, status Status, hubID types.ID, limit int) ([]Asset, error) {
	return s.store.List(ctx, status, hubID, limit)
}

// Movements returns the asset's ledger, newest first.
func (s *Service) Movements(ctx context.Context, id types.ID, limit int) ([]movement.Record, error) {
	if _, err := s.store.GetSnapshot(ctx, id); err != nil {
		return nil, err
	}
	return s.ledger.ListByAsset(ctx, id, limit)
}
