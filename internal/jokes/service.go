// Package jokes provides HTTP handlers and business logic for
// submitting, moderating, and retrieving dad jokes.
package jokes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dadlab/jokeboard/internal/domain"
)

// Service implements jokes business logic.
type Service struct {
	repo Repository
}

// NewService creates a new jokes service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Submit stores a new joke in PENDING status on behalf of the
// submitting user.
func (s *Service) Submit(ctx context.Context, content, submittedBy string) (*domain.Joke, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	joke := &domain.Joke{
		Content:     content,
		Status:      domain.JokeStatusPending,
		SubmittedBy: submittedBy,
	}

	if err := s.repo.CreateJoke(ctx, joke); err != nil {
		return nil, fmt.Errorf("create joke: %w", err)
	}

	return joke, nil
}

// Moderate sets a joke's moderation status.
func (s *Service) Moderate(ctx context.Context, jokeID string, newStatus domain.JokeStatus) (*domain.Joke, error) {
	if !newStatus.IsValid() {
		return nil, ErrInvalidStatus
	}

	joke, err := s.repo.UpdateJokeStatus(ctx, jokeID, newStatus)
	if err != nil {
		if errors.Is(err, ErrJokeNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update joke status: %w", err)
	}

	return joke, nil
}

// Random returns a uniformly random approved joke. When no approved
// jokes exist it returns the fallback joke rather than an error.
func (s *Service) Random(ctx context.Context) (*domain.Joke, error) {
	joke, err := s.repo.GetRandomJoke(ctx, domain.JokeStatusApproved)
	if err != nil {
		if errors.Is(err, ErrJokeNotFound) {
			return domain.FallbackJoke(), nil
		}
		return nil, fmt.Errorf("get random joke: %w", err)
	}

	return joke, nil
}

// List returns jokes matching the filter.
func (s *Service) List(ctx context.Context, filter Filter) ([]domain.Joke, error) {
	jokes, err := s.repo.ListJokes(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list jokes: %w", err)
	}
	return jokes, nil
}
