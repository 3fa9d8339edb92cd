// README: Directory store backed by PostgreSQL.
package directory

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"convoy/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) CreateHub(ctx context.Context, h *Hub) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO hubs (id, name, city, created_at) VALUES ($1, $2, $3, $4)`,
		string(h.ID), h.Name, h.City, h.CreatedAt)
	return err
}

func (s *Store) GetHub(ctx context.Context, id types.ID) (*Hub, error) {
	row := s.db.QueryRow(ctx, `SELECT id, name, city, created_at FROM hubs WHERE id = $1`, string(id))
	var h Hub
	err := row.Scan(&h.ID, &h.Name, &h.City, &h.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (s *Store) ListHubs(ctx context.Context) ([]Hub, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name, city, created_at FROM hubs ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Hub
	for rows.Next() {
		var h Hub
		if err := rows.Scan(&h.ID, &h.Name, &h.City, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *Store) RenameHub(ctx context.Context, id types.ID, name string) error {
	tag, err := s.db.Exec(ctx, `UPDATE hubs SET name = $1 WHERE id = $2`, name, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) CreateVenue(ctx context.Context, v *Venue) error {
	var lat, lng *float64
	if v.Location != nil {
		lat, lng = &v.Location.Lat, &v.Location.Lng
	}
	_, err := s.db.Exec(ctx, `
        INSERT INTO venues (id, name, address, lat, lng, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		string(v.ID), v.Name, v.Address, lat, lng, v.CreatedAt)
	return err
}

func (s *Store) GetVenue(ctx context.Context, id types.ID) (*Venue, error) {
	row := s.db.QueryRow(ctx, `SELECT id, name, address, lat, lng, created_at FROM venues WHERE id = $1`, string(id))
	var v Venue
	var lat, lng sql.NullFloat64
	err := row.Scan(&v.ID, &v.Name, &v.Address, &lat, &lng, &v.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if lat.Valid && lng.Valid {
		v.Location = &types.Point{Lat: lat.Float64, Lng: lng.Float64}
	}
	return &v, nil
}

func (s *Store) ListVenues(ctx context.Context) ([]Venue, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name, address, lat, lng, created_at FROM venues ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Venue
	for rows.Next() {
		var v Venue
		var lat, lng sql.NullFloat64
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &lat, &lng, &v.CreatedAt); err != nil {
			return nil, err
		}
		if lat.Valid && lng.Valid {
			v.Location = &types.Point{Lat: lat.Float64, Lng: lng.Float64}
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *Store) RenameVenue(ctx context.Context, id types.ID, name string) error {
	tag, err := s.db.Exec(ctx, `UPDATE venues SET name = $1 WHERE id = $2`, name, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) CreateVehicle(ctx context.Context, v *Vehicle) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO vehicles (id, plate, home_hub_id, created_at) VALUES ($1, $2, $3, $4)`,
		string(v.ID), v.Plate, string(v.HomeHubID), v.CreatedAt)
	return err
}

func (s *Store) ListVehicles(ctx context.Context) ([]Vehicle, error) {
	rows, err := s.db.Query(ctx, `SELECT id, plate, home_hub_id, created_at FROM vehicles ORDER BY plate`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Vehicle
	for rows.Next() {
		var v Vehicle
		if err := rows.Scan(&v.ID, &v.Plate, &v.HomeHubID, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *Store) CreatePerson(ctx context.Context, p *Person) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO personnel (id, name, role, created_at) VALUES ($1, $2, $3, $4)`,
		string(p.ID), p.Name, p.Role, p.CreatedAt)
	return err
}

func (s *Store) ListPersonnel(ctx context.Context) ([]Person, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name, role, created_at FROM personnel ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Person
	for rows.Next() {
		var p Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Role, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
