// README: Planner intake; polls the optimizer and files candidates as recommended trips.
package planner

import (
	"context"
	"time"

	"go.uber.org/zap"

	"convoy/internal/config"
	"convoy/internal/modules/trip"
	"convoy/internal/types"
)

// CandidateFetcher is implemented by Client; swapped for a stub in tests.
type CandidateFetcher interface {
	FetchCandidates(ctx context.Context) ([]Candidate, error)
}

// TripFiler is the narrow slice of the trip service the intake needs.
type TripFiler interface {
	FileRecommended(ctx context.Context, cmd trip.CreateCommand) (types.ID, error)
}

type Service struct {
	client CandidateFetcher
	dedupe Dedupe
	trips  TripFiler
	cfg    config.PlannerConfig
	log    *zap.Logger
}

func NewService(client CandidateFetcher, dedupe Dedupe, trips TripFiler, cfg config.PlannerConfig, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{client: client, dedupe: dedupe, trips: trips, cfg: cfg, log: log}
}

// RunIntake polls the optimizer until the context is cancelled.
func (s *Service) RunIntake(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.PollOnce(ctx); err != nil {
				s.log.Warn("planner intake poll failed", zap.Error(err))
			}
		}
	}
}

// PollOnce fetches the candidate feed and files every candidate not seen
// before. Each id is claimed in the dedupe store before filing, so two intake
// processes cannot double-file the same candidate.
func (s *Service) PollOnce(ctx context.Context) error {
	candidates, err := s.client.FetchCandidates(ctx)
	if err != nil {
		return err
	}
	for _, c := range candidates {
		if c.ID == "" || c.VehicleID == "" || c.OriginHubID == "" {
			s.log.Warn("skipping malformed candidate", zap.String("candidate_id", c.ID))
			continue
		}
		fresh, err := s.dedupe.MarkFiled(ctx, c.ID)
		if err != nil {
			return err
		}
		if !fresh {
			continue
		}
		stops := make([]trip.Stop, len(c.Stops))
		for i, st := range c.Stops {
			stops[i] = trip.Stop{VenueID: st.VenueID, StopOrder: st.StopOrder}
		}
		tripID, err := s.trips.FileRecommended(ctx, trip.CreateCommand{
			VehicleID:    c.VehicleID,
			OriginHubID:  c.OriginHubID,
			Notes:        c.Notes,
			Stops:        stops,
			AssetIDs:     c.AssetIDs,
			PersonnelIDs: c.PersonnelIDs,
		})
		if err != nil {
			s.log.Error("filing candidate failed",
				zap.String("candidate_id", c.ID), zap.Error(err))
			continue
		}
		s.log.Info("filed recommended trip",
			zap.String("candidate_id", c.ID), zap.String("trip_id", string(tripID)))
	}
	return nil
}
