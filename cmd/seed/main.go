package main

import (
	"fmt"
	"log"
	"time"

	"cinehall/internal/movies"
	"cinehall/internal/rooms"
	"cinehall/internal/schedule"
	"cinehall/internal/sessions"
	"cinehall/internal/shared/config"
	"cinehall/internal/shared/database"
	"cinehall/internal/users"

	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Cinehall Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(cfg.Scheduling.BreakMinutes); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"tickets",
		"sessions",
		"movies",
		"rooms",
		"users",
	}

	pg := s.db.GetPostgreSQL()
	for _, table := range tables {
		if err := pg.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}

func (s *Seeder) SeedAll(breakMinutes int) error {
	if err := s.seedUsers(); err != nil {
		return err
	}

	seededRooms, err := s.seedRooms()
	if err != nil {
		return err
	}

	seededMovies, err := s.seedMovies()
	if err != nil {
		return err
	}

	return s.seedSessions(seededRooms, seededMovies, breakMinutes)
}

func (s *Seeder) seedUsers() error {
	pg := s.db.GetPostgreSQL()

	hash := func(pw string) string {
		h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("bcrypt: %v", err)
		}
		return string(h)
	}

	seedUsers := []users.User{
		{
			FirstName: "Olga",
			LastName:  "Petrova",
			Email:     "admin@cinehall.local",
			Phone:     "+15550100",
			Password:  hash("admin12345"),
			Role:      users.RoleAdmin,
		},
		{
			FirstName: "Ivan",
			LastName:  "Smirnov",
			Email:     "ivan@example.com",
			Phone:     "+15550101",
			Password:  hash("password123"),
			Role:      users.RoleUser,
		},
	}

	for i := range seedUsers {
		if err := pg.Create(&seedUsers[i]).Error; err != nil {
			return fmt.Errorf("seed user %s: %w", seedUsers[i].Email, err)
		}
	}
	fmt.Printf("   👤 %d users\n", len(seedUsers))
	return nil
}

func (s *Seeder) seedRooms() ([]rooms.Room, error) {
	pg := s.db.GetPostgreSQL()

	seedRooms := []rooms.Room{
		{Title: "Red Hall", SeatsCount: 60},
		{Title: "Blue Hall", SeatsCount: 40},
		{Title: "VIP Lounge", SeatsCount: 12},
	}

	for i := range seedRooms {
		if err := pg.Create(&seedRooms[i]).Error; err != nil {
			return nil, fmt.Errorf("seed room %s: %w", seedRooms[i].Title, err)
		}
	}
	fmt.Printf("   🏛  %d rooms\n", len(seedRooms))
	return seedRooms, nil
}

func (s *Seeder) seedMovies() ([]movies.Movie, error) {
	pg := s.db.GetPostgreSQL()

	seedMovies := []movies.Movie{
		{Title: "Solaris", DurationMinutes: 167, Director: "Andrei Tarkovsky", Year: 1972},
		{Title: "The Grand Budapest Hotel", DurationMinutes: 99, Director: "Wes Anderson", Year: 2014},
		{Title: "Paddington 2", DurationMinutes: 103, Director: "Paul King", Year: 2017},
		{Title: "Short Cuts", DurationMinutes: 45, Director: "Various", Year: 2020},
	}

	for i := range seedMovies {
		if err := pg.Create(&seedMovies[i]).Error; err != nil {
			return nil, fmt.Errorf("seed movie %s: %w", seedMovies[i].Title, err)
		}
	}
	fmt.Printf("   🎬 %d movies\n", len(seedMovies))
	return seedMovies, nil
}

func (s *Seeder) seedSessions(seedRooms []rooms.Room, seedMovies []movies.Movie, breakMinutes int) error {
	pg := s.db.GetPostgreSQL()

	today := schedule.DateOnly(time.Now().UTC())
	nextWeek := today.AddDate(0, 0, 7)

	type showtime struct {
		room  int
		movie int
		start string
		price float64
	}

	showtimes := []showtime{
		{room: 0, movie: 0, start: "10:00", price: 8.50},
		{room: 0, movie: 1, start: "14:00", price: 10.00},
		{room: 0, movie: 2, start: "18:30", price: 12.00},
		{room: 1, movie: 1, start: "11:00", price: 9.00},
		{room: 1, movie: 3, start: "16:00", price: 6.50},
		{room: 2, movie: 0, start: "19:00", price: 25.00},
	}

	for _, st := range showtimes {
		start := schedule.MustTimeOfDay(st.start)
		finish := schedule.DeriveFinish(start, seedMovies[st.movie].DurationMinutes, breakMinutes)

		movieID := seedMovies[st.movie].ID
		dateFinish := nextWeek
		session := sessions.Session{
			RoomID:     seedRooms[st.room].ID,
			MovieID:    &movieID,
			DateStart:  today,
			DateFinish: &dateFinish,
			TimeStart:  start,
			TimeFinish: finish,
			Price:      st.price,
		}

		if err := pg.Create(&session).Error; err != nil {
			return fmt.Errorf("seed session %s %s: %w", seedMovies[st.movie].Title, st.start, err)
		}
	}
	fmt.Printf("   🎟  %d sessions\n", len(showtimes))
	return nil
}
