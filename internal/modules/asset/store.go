// README: Asset store backed by PostgreSQL; transitions are conditional writes.
package asset

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"convoy/internal/modules/movement"
	"convoy/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, a *Asset) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO assets (
            id, name, category, status, current_hub_id, current_venue_id, current_trip_id,
            created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		string(a.ID), a.Name, a.Category, string(a.Status),
		idPtr(a.CurrentHubID), idPtr(a.CurrentVenueID), idPtr(a.CurrentTripID),
		a.CreatedAt, a.UpdatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Asset, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, name, category, status, current_hub_id, current_venue_id, current_trip_id,
               created_at, updated_at
        FROM assets
        WHERE id = $1`, string(id),
	)
	var a Asset
	var hubID, venueID, tripID sql.NullString
	err := row.Scan(
		&a.ID, &a.Name, &a.Category, &a.Status, &hubID, &venueID, &tripID,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	a.CurrentHubID = toIDPtr(hubID)
	a.CurrentVenueID = toIDPtr(venueID)
	a.CurrentTripID = toIDPtr(tripID)
	return &a, nil
}

// GetSnapshot reads the asset's status together with its current location
// display names in one joined query. The names feed the ledger's "from" side.
func (s *Store) GetSnapshot(ctx context.Context, id types.ID) (Snapshot, error) {
	row := s.db.QueryRow(ctx, `
        SELECT a.id, a.status,
               a.current_hub_id, COALESCE(h.name, ''),
               a.current_venue_id, COALESCE(v.name, ''),
               a.current_trip_id
        FROM assets a
        LEFT JOIN hubs h ON h.id = a.current_hub_id
        LEFT JOIN venues v ON v.id = a.current_venue_id
        WHERE a.id = $1`, string(id),
	)
	var snap Snapshot
	var hubID, venueID, tripID sql.NullString
	err := row.Scan(&snap.ID, &snap.Status, &hubID, &snap.HubName, &venueID, &snap.VenueName, &tripID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, err
	}
	snap.HubID = toIDPtr(hubID)
	snap.VenueID = toIDPtr(venueID)
	snap.TripID = toIDPtr(tripID)
	return snap, nil
}

func (s *Store) List(ctx context.Context, status Status, hubID types.ID, limit int) ([]Asset, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	q := `
        SELECT id, name, category, status, current_hub_id, current_venue_id, current_trip_id,
               created_at, updated_at
        FROM assets`
	args := []any{}
	where := ""
	if status != "" {
		args = append(args, string(status))
		where = " WHERE status = $1"
	}
	if hubID != "" {
		args = append(args, string(hubID))
		if where == "" {
			where = " WHERE current_hub_id = $1"
		} else {
			where += " AND current_hub_id = $2"
		}
	}
	args = append(args, limit)
	q += where + " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args))

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Asset
	for rows.Next() {
		var a Asset
		var hub, venue, trip sql.NullString
		if err := rows.Scan(
			&a.ID, &a.Name, &a.Category, &a.Status, &hub, &venue, &trip,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		a.CurrentHubID = toIDPtr(hub)
		a.CurrentVenueID = toIDPtr(venue)
		a.CurrentTripID = toIDPtr(trip)
		out = append(out, a)
	}
	return out, rows.Err()
}

// ApplyTransition persists one standalone asset transition and its ledger row
// in a single transaction. The status update is conditional on the expected
// current status; zero affected rows aborts the transaction and reports a
// lost race to the caller.
func (s *Store) ApplyTransition(ctx context.Context, id types.ID, from Status, p UpdatePayload, rec movement.Record) (bool, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
        UPDATE assets
        SET status = $1,
            current_hub_id = $2,
            current_venue_id = $3,
            current_trip_id = $4,
            updated_at = $5
        WHERE id = $6 AND status = $7`,
		string(p.Status), idPtr(p.HubID), idPtr(p.VenueID), idPtr(p.TripID),
		time.Now().UTC(), string(id), string(from),
	)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() != 1 {
		return false, nil
	}
	if err := movement.Insert(ctx, tx, rec); err != nil {
		return false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func idPtr(v *types.ID) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

func toIDPtr(v sql.NullString) *types.ID {
	if !v.Valid {
		return nil
	}
	id := types.ID(v.String)
	return &id
}
