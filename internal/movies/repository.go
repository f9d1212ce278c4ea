package movies

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cinehall/internal/shared/store"
)

type Repository interface {
	Create(ctx context.Context, movie *Movie) error
	GetByID(ctx context.Context, id uuid.UUID) (*Movie, error)
	List(ctx context.Context) ([]Movie, error)
	Update(ctx context.Context, movie *Movie) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, movie *Movie) error {
	return store.Unavailable(r.db.WithContext(ctx).Create(movie).Error)
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Movie, error) {
	var movie Movie
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&movie).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, store.Unavailable(err)
	}
	return &movie, nil
}

func (r *repository) List(ctx context.Context) ([]Movie, error) {
	var result []Movie
	err := r.db.WithContext(ctx).Order("title ASC").Find(&result).Error
	return result, store.Unavailable(err)
}

func (r *repository) Update(ctx context.Context, movie *Movie) error {
	return store.Unavailable(r.db.WithContext(ctx).Save(movie).Error)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Movie{})
	if result.Error != nil {
		return store.Unavailable(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrMovieNotFound
	}
	return nil
}
