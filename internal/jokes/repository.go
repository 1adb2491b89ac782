package jokes

import (
	"context"

	"github.com/dadlab/jokeboard/internal/domain"
)

// Repository defines the interface for joke storage.
type Repository interface {
	CreateJoke(ctx context.Context, joke *domain.Joke) error
	GetJokeByID(ctx context.Context, id string) (*domain.Joke, error)
	UpdateJokeStatus(ctx context.Context, id string, status domain.JokeStatus) (*domain.Joke, error)
	GetRandomJoke(ctx context.Context, status domain.JokeStatus) (*domain.Joke, error)
	ListJokes(ctx context.Context, filter Filter) ([]domain.Joke, error)
}

// Filter represents filter criteria for listing jokes.
type Filter struct {
	Status      *domain.JokeStatus
	SubmittedBy *string
	Limit       int
	Offset      int
}
