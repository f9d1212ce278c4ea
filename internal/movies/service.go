package movies

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrMovieNotFound = errors.New("movie not found")

type Service interface {
	CreateMovie(ctx context.Context, req CreateMovieRequest) (*MovieResponse, error)
	GetMovieByID(ctx context.Context, id uuid.UUID) (*MovieResponse, error)
	ListMovies(ctx context.Context) ([]MovieResponse, error)
	UpdateMovie(ctx context.Context, id uuid.UUID, req UpdateMovieRequest) (*MovieResponse, error)
	DeleteMovie(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateMovie(ctx context.Context, req CreateMovieRequest) (*MovieResponse, error) {
	movie := &Movie{
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Director:        req.Director,
		Year:            req.Year,
		PosterURL:       req.PosterURL,
	}

	if err := s.repo.Create(ctx, movie); err != nil {
		return nil, err
	}

	resp := movie.ToResponse()
	return &resp, nil
}

func (s *service) GetMovieByID(ctx context.Context, id uuid.UUID) (*MovieResponse, error) {
	movie, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := movie.ToResponse()
	return &resp, nil
}

func (s *service) ListMovies(ctx context.Context) ([]MovieResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]MovieResponse, 0, len(items))
	for i := range items {
		responses = append(responses, items[i].ToResponse())
	}
	return responses, nil
}

// UpdateMovie updates descriptive fields only. The running time is an
// immutable input to scheduling math: changing it would silently
// invalidate every session derived from it.
func (s *service) UpdateMovie(ctx context.Context, id uuid.UUID, req UpdateMovieRequest) (*MovieResponse, error) {
	movie, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Description != nil {
		movie.Description = *req.Description
	}
	if req.Director != nil {
		movie.Director = *req.Director
	}
	if req.Year != nil {
		movie.Year = *req.Year
	}
	if req.PosterURL != nil {
		movie.PosterURL = *req.PosterURL
	}

	if err := s.repo.Update(ctx, movie); err != nil {
		return nil, err
	}

	resp := movie.ToResponse()
	return &resp, nil
}

func (s *service) DeleteMovie(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
