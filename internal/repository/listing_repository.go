package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"afisha/internal/models"
)

var ErrListingNotFound = errors.New("listing not found")

type ListingRepository struct {
	pool *pgxpool.Pool
}

func NewListingRepository(pool *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{pool: pool}
}

func (r *ListingRepository) Create(ctx context.Context, listing models.Listing) (models.Listing, error) {
	const query = `
		INSERT INTO listings (title, description, release_date, poster, genre, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	row := r.pool.QueryRow(ctx, query,
		listing.Title,
		listing.Description,
		listing.ReleaseDate,
		listing.Poster,
		listing.Genre,
	)
	if err := row.Scan(&listing.ID, &listing.CreatedAt, &listing.UpdatedAt); err != nil {
		return models.Listing{}, err
	}
	return listing, nil
}

// List returns every listing in insertion order, unpaginated.
func (r *ListingRepository) List(ctx context.Context) ([]models.Listing, error) {
	const query = `
		SELECT id, title, description, release_date, poster, genre, created_at, updated_at
		FROM listings
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []models.Listing
	for rows.Next() {
		var listing models.Listing
		if err := rows.Scan(
			&listing.ID,
			&listing.Title,
			&listing.Description,
			&listing.ReleaseDate,
			&listing.Poster,
			&listing.Genre,
			&listing.CreatedAt,
			&listing.UpdatedAt,
		); err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	return listings, rows.Err()
}

func (r *ListingRepository) GetByID(ctx context.Context, id int64) (models.Listing, error) {
	const query = `
		SELECT id, title, description, release_date, poster, genre, created_at, updated_at
		FROM listings WHERE id = $1
	`

	row := r.pool.QueryRow(ctx, query, id)
	var listing models.Listing
	if err := row.Scan(
		&listing.ID,
		&listing.Title,
		&listing.Description,
		&listing.ReleaseDate,
		&listing.Poster,
		&listing.Genre,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Listing{}, ErrListingNotFound
		}
		return models.Listing{}, err
	}
	return listing, nil
}

func (r *ListingRepository) Update(ctx context.Context, listing models.Listing) error {
	const query = `
		UPDATE listings
		SET title = $2, description = $3, release_date = $4, poster = $5, genre = $6, updated_at = NOW()
		WHERE id = $1
	`

	cmd, err := r.pool.Exec(ctx, query,
		listing.ID,
		listing.Title,
		listing.Description,
		listing.ReleaseDate,
		listing.Poster,
		listing.Genre,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM listings WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrListingNotFound
	}
	return nil
}

// PosterRefs returns every poster reference currently persisted, for the
// orphaned-file sweep.
func (r *ListingRepository) PosterRefs(ctx context.Context) ([]string, error) {
	const query = `SELECT poster FROM listings`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []string
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}
