package historyrepo

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/weathermate/weather-mate/internal/domain/history"
)

// PostgresRepository implements history.Repository using pgx.
//
// Expected schema:
//
//	CREATE TABLE weather_observations (
//	    id BIGSERIAL PRIMARY KEY,
//	    city TEXT NOT NULL,
//	    temperature DOUBLE PRECISION NOT NULL,
//	    condition TEXT NOT NULL,
//	    recorded_at TIMESTAMPTZ NOT NULL
//	);
//	CREATE TABLE search_history (
//	    city TEXT PRIMARY KEY,
//	    searched_at TIMESTAMPTZ NOT NULL
//	);
//	CREATE TABLE favorite_cities (
//	    city TEXT PRIMARY KEY,
//	    added_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) SaveObservation(ctx context.Context, obs history.Observation, keep int) error {
	city := cityKey(obs.City)
	if _, err := r.pool.Exec(ctx, `
		INSERT INTO weather_observations (city, temperature, condition, recorded_at)
		VALUES ($1, $2, $3, $4)
	`, city, obs.Temperature, obs.Condition, obs.RecordedAt); err != nil {
		return err
	}
	if keep <= 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx, `
		DELETE FROM weather_observations
		WHERE city = $1 AND id NOT IN (
			SELECT id FROM weather_observations
			WHERE city = $1
			ORDER BY recorded_at DESC, id DESC
			LIMIT $2
		)
	`, city, keep)
	return err
}

func (r *PostgresRepository) Observations(ctx context.Context, city string, limit int) ([]history.Observation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT city, temperature, condition, recorded_at
		FROM (
			SELECT id, city, temperature, condition, recorded_at
			FROM weather_observations
			WHERE city = $1
			ORDER BY recorded_at DESC, id DESC
			LIMIT $2
		) latest
		ORDER BY recorded_at ASC, id ASC
	`, cityKey(city), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var observations []history.Observation
	for rows.Next() {
		var obs history.Observation
		if err := rows.Scan(&obs.City, &obs.Temperature, &obs.Condition, &obs.RecordedAt); err != nil {
			return nil, err
		}
		observations = append(observations, obs)
	}
	return observations, rows.Err()
}

func (r *PostgresRepository) AddRecentSearch(ctx context.Context, city string, keep int) error {
	if _, err := r.pool.Exec(ctx, `
		INSERT INTO search_history (city, searched_at)
		VALUES ($1, now())
		ON CONFLICT (city) DO UPDATE SET searched_at = now()
	`, strings.TrimSpace(city)); err != nil {
		return err
	}
	if keep <= 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx, `
		DELETE FROM search_history
		WHERE city NOT IN (
			SELECT city FROM search_history
			ORDER BY searched_at DESC
			LIMIT $1
		)
	`, keep)
	return err
}

func (r *PostgresRepository) RecentSearches(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT city FROM search_history
		ORDER BY searched_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCities(rows)
}

func (r *PostgresRepository) AddFavorite(ctx context.Context, city string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO favorite_cities (city)
		VALUES ($1)
		ON CONFLICT (city) DO NOTHING
	`, strings.TrimSpace(city))
	return err
}

func (r *PostgresRepository) RemoveFavorite(ctx context.Context, city string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM favorite_cities WHERE lower(city) = lower($1)`, strings.TrimSpace(city))
	return err
}

func (r *PostgresRepository) Favorites(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT city FROM favorite_cities ORDER BY added_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCities(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanCities(rows rowScanner) ([]string, error) {
	var cities []string
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, err
		}
		cities = append(cities, city)
	}
	return cities, rows.Err()
}

var _ history.Repository = (*PostgresRepository)(nil)
