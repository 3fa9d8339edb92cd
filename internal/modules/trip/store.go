// README: Trip store backed by PostgreSQL; cascades run in one transaction.
package trip

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"convoy/internal/modules/asset"
	"convoy/internal/modules/movement"
	"convoy/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, t *Trip) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
        INSERT INTO trips (id, status, vehicle_id, origin_hub_id, is_manual, notes, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		string(t.ID), string(t.Status), string(t.VehicleID), string(t.OriginHubID),
		t.IsManual, t.Notes, t.CreatedAt, t.UpdatedAt,
	); err != nil {
		return err
	}
	for _, st := range t.Stops {
		if _, err := tx.Exec(ctx, `
            INSERT INTO trip_stops (trip_id, venue_id, stop_order) VALUES ($1, $2, $3)`,
			string(t.ID), string(st.VenueID), st.StopOrder,
		); err != nil {
			return err
		}
	}
	for _, id := range t.AssetIDs {
		if _, err := tx.Exec(ctx, `
            INSERT INTO trip_assets (trip_id, asset_id) VALUES ($1, $2)`,
			string(t.ID), string(id),
		); err != nil {
			return err
		}
	}
	for _, id := range t.PersonnelIDs {
		if _, err := tx.Exec(ctx, `
            INSERT INTO trip_personnel (trip_id, person_id) VALUES ($1, $2)`,
			string(t.ID), string(id),
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Trip, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, status, vehicle_id, origin_hub_id, is_manual, notes, created_at, updated_at
        FROM trips
        WHERE id = $1`, string(id),
	)
	var t Trip
	err := row.Scan(&t.ID, &t.Status, &t.VehicleID, &t.OriginHubID, &t.IsManual, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	stops, err := s.db.Query(ctx, `
        SELECT venue_id, stop_order FROM trip_stops WHERE trip_id = $1 ORDER BY stop_order`, string(id))
	if err != nil {
		return nil, err
	}
	defer stops.Close()
	for stops.Next() {
		var st Stop
		if err := stops.Scan(&st.VenueID, &st.StopOrder); err != nil {
			return nil, err
		}
		t.Stops = append(t.Stops, st)
	}
	if err := stops.Err(); err != nil {
		return nil, err
	}

	t.AssetIDs, err = s.linkedIDs(ctx, `SELECT asset_id FROM trip_assets WHERE trip_id = $1`, id)
	if err != nil {
		return nil, err
	}
	t.PersonnelIDs, err = s.linkedIDs(ctx, `SELECT person_id FROM trip_personnel WHERE trip_id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) linkedIDs(ctx context.Context, q string, tripID types.ID) ([]types.ID, error) {
	rows, err := s.db.Query(ctx, q, string(tripID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []types.ID
	for rows.Next() {
		var id types.ID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (s *Store) List(ctx context.Context, status Status, limit int) ([]Trip, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := `
        SELECT id, status, vehicle_id, origin_hub_id, is_manual, notes, created_at, updated_at
        FROM trips`
	args := []any{}
	if status != "" {
		q += ` WHERE status = $1 ORDER BY created_at DESC LIMIT $2`
		args = append(args, string(status), limit)
	} else {
		q += ` ORDER BY created_at DESC LIMIT $1`
		args = append(args, limit)
	}
	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Trip
	for rows.Next() {
		var t Trip
		if err := rows.Scan(&t.ID, &t.Status, &t.VehicleID, &t.OriginHubID, &t.IsManual, &t.Notes, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpdateNotes is allowed in any status, including terminal ones; notes are
// not part of the state machine.
func (s *Store) UpdateNotes(ctx context.Context, id types.ID, notes string) error {
	tag, err := s.db.Exec(ctx, `
        UPDATE trips SET notes = $1, updated_at = $2 WHERE id = $3`,
		notes, time.Now().UTC(), string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return ErrNotFound
	}
	return nil
}

// GetCascadeContext reads everything a transition needs before any write: the
// trip with its origin hub name, the first stop with its venue name, and the
// linked assets with their current location names.
func (s *Store) GetCascadeContext(ctx context.Context, id types.ID) (CascadeContext, error) {
	var cc CascadeContext
	row := s.db.QueryRow(ctx, `
        SELECT t.id, t.status, t.origin_hub_id, h.name
        FROM trips t
        JOIN hubs h ON h.id = t.origin_hub_id
        WHERE t.id = $1`, string(id),
	)
	err := row.Scan(&cc.TripID, &cc.Status, &cc.OriginHubID, &cc.OriginHubName)
	if errors.Is(err, pgx.ErrNoRows) {
		return CascadeContext{}, ErrNotFound
	}
	if err != nil {
		return CascadeContext{}, err
	}

	row = s.db.QueryRow(ctx, `
        SELECT s.venue_id, v.name
        FROM trip_stops s
        JOIN venues v ON v.id = s.venue_id
        WHERE s.trip_id = $1
        ORDER BY s.stop_order
        LIMIT 1`, string(id),
	)
	err = row.Scan(&cc.FirstVenueID, &cc.FirstVenueName)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// trips without stops cascade everywhere except on_site
	case err != nil:
		return CascadeContext{}, err
	default:
		cc.HasStop = true
	}

	rows, err := s.db.Query(ctx, `
        SELECT a.id, a.status,
               a.current_hub_id, COALESCE(h.name, ''),
               a.current_venue_id, COALESCE(v.name, ''),
               a.current_trip_id
        FROM trip_assets ta
        JOIN assets a ON a.id = ta.asset_id
        LEFT JOIN hubs h ON h.id = a.current_hub_id
        LEFT JOIN venues v ON v.id = a.current_venue_id
        WHERE ta.trip_id = $1
        ORDER BY a.id`, string(id),
	)
	if err != nil {
		return CascadeContext{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var snap asset.Snapshot
		var hubID, venueID, tripID sql.NullString
		if err := rows.Scan(&snap.ID, &snap.Status, &hubID, &snap.HubName, &venueID, &snap.VenueName, &tripID); err != nil {
			return CascadeContext{}, err
		}
		if hubID.Valid {
			v := types.ID(hubID.String)
			snap.HubID = &v
		}
		if venueID.Valid {
			v := types.ID(venueID.String)
			snap.VenueID = &v
		}
		if tripID.Valid {
			v := types.ID(tripID.String)
			snap.TripID = &v
		}
		cc.Assets = append(cc.Assets, snap)
	}
	if err := rows.Err(); err != nil {
		return CascadeContext{}, err
	}
	return cc, nil
}

// ApplyCascade executes a plan atomically: the trip's conditional status
// write, every asset's conditional status/location write, and one ledger
// insert per asset. Any conditional write that misses aborts the transaction
// and reports a conflict; any error rolls everything back. Partial application
// is never visible.
func (s *Store) ApplyCascade(ctx context.Context, plan CascadePlan) (bool, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	tag, err := tx.Exec(ctx, `
        UPDATE trips SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		string(plan.To), now, string(plan.TripID), string(plan.From),
	)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() != 1 {
		return false, nil
	}

	b := &pgx.Batch{}
	for _, ch := range plan.Assets {
		b.Queue(`
            UPDATE assets
            SET status = $1,
                current_hub_id = $2,
                current_venue_id = $3,
                current_trip_id = $4,
                updated_at = $5
            WHERE id = $6 AND status = $7`,
			string(ch.Payload.Status), idPtr(ch.Payload.HubID), idPtr(ch.Payload.VenueID),
			idPtr(ch.Payload.TripID), now, string(ch.ID), string(ch.From),
		)
	}
	for _, rec := range plan.Movements {
		movement.Queue(b, rec)
	}

	br := tx.SendBatch(ctx, b)
	applied := true
	var batchErr error
	for range plan.Assets {
		tag, err := br.Exec()
		if err != nil {
			batchErr = err
			break
		}
		if tag.RowsAffected() != 1 {
			applied = false
			break
		}
	}
	if batchErr == nil && applied {
		for range plan.Movements {
			if _, err := br.Exec(); err != nil {
				batchErr = err
				break
			}
		}
	}
	closeErr := br.Close()
	if batchErr != nil {
		return false, batchErr
	}
	if closeErr != nil {
		return false, closeErr
	}
	if !applied {
		return false, nil
	}
	return true, tx.Commit(ctx)
}

func idPtr(v *types.ID) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}
