// Package postgres provides PostgreSQL implementation of the jokes
// repository.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dadlab/jokeboard/internal/domain"
	"github.com/dadlab/jokeboard/internal/jokes"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements the jokes.Repository interface using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateJoke inserts a new joke.
func (r *Repository) CreateJoke(ctx context.Context, joke *domain.Joke) error {
	query := `
		INSERT INTO jokes (content, status, submitted_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		joke.Content,
		joke.Status,
		nullableID(joke.SubmittedBy),
	).Scan(&joke.ID, &joke.CreatedAt, &joke.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create joke: %w", err)
	}
	return nil
}

// GetJokeByID retrieves a joke by ID.
func (r *Repository) GetJokeByID(ctx context.Context, id string) (*domain.Joke, error) {
	query := `
		SELECT id, content, status, COALESCE(submitted_by::text, ''), created_at, updated_at
		FROM jokes
		WHERE id = $1
	`
	return r.scanJoke(r.db.QueryRow(ctx, query, id))
}

// UpdateJokeStatus sets a joke's status, bumping updated_at.
func (r *Repository) UpdateJokeStatus(ctx context.Context, id string, status domain.JokeStatus) (*domain.Joke, error) {
	query := `
		UPDATE jokes
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, content, status, COALESCE(submitted_by::text, ''), created_at, updated_at
	`
	return r.scanJoke(r.db.QueryRow(ctx, query, id, status))
}

// GetRandomJoke picks one joke with the given status uniformly at
// random. ORDER BY random() is fine at this table size; revisit with
// TABLESAMPLE if the corpus ever gets large.
func (r *Repository) GetRandomJoke(ctx context.Context, status domain.JokeStatus) (*domain.Joke, error) {
	query := `
		SELECT id, content, status, COALESCE(submitted_by::text, ''), created_at, updated_at
		FROM jokes
		WHERE status = $1
		ORDER BY random()
		LIMIT 1
	`
	return r.scanJoke(r.db.QueryRow(ctx, query, status))
}

// ListJokes retrieves jokes matching the filter, newest first.
func (r *Repository) ListJokes(ctx context.Context, filter jokes.Filter) ([]domain.Joke, error) {
	query := `
		SELECT id, content, status, COALESCE(submitted_by::text, ''), created_at, updated_at
		FROM jokes
	`
	args := make([]interface{}, 0, 3)
	conditions := make([]string, 0, 2)

	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.SubmittedBy != nil {
		args = append(args, *filter.SubmittedBy)
		conditions = append(conditions, fmt.Sprintf("submitted_by = $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jokes: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Joke, 0)
	for rows.Next() {
		var joke domain.Joke
		err := rows.Scan(
			&joke.ID,
			&joke.Content,
			&joke.Status,
			&joke.SubmittedBy,
			&joke.CreatedAt,
			&joke.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan joke: %w", err)
		}
		result = append(result, joke)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jokes: %w", err)
	}

	return result, nil
}

func (r *Repository) scanJoke(row pgx.Row) (*domain.Joke, error) {
	var joke domain.Joke
	err := row.Scan(
		&joke.ID,
		&joke.Content,
		&joke.Status,
		&joke.SubmittedBy,
		&joke.CreatedAt,
		&joke.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, jokes.ErrJokeNotFound
		}
		return nil, fmt.Errorf("scan joke: %w", err)
	}

	return &joke, nil
}

// nullableID maps an empty string to NULL for uuid foreign keys.
func nullableID(id string) interface{} {
	if id == "" {
		return nil
	}
	return id
}
