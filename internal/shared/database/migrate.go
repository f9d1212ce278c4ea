package database

import (
	"cinehall/internal/bookings"
	"cinehall/internal/movies"
	"cinehall/internal/rooms"
	"cinehall/internal/sessions"
	"cinehall/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&rooms.Room{},
		&movies.Movie{},
		&sessions.Session{},
		&bookings.Ticket{},
	)
}
