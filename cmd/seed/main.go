package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"cinebook/internal/bookings"
	"cinebook/internal/movies"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/database"
	"cinebook/internal/slots"
	"cinebook/internal/theatres"
	"cinebook/internal/users"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Cinebook Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"bookings",
		"slots",
		"auditoriums",
		"theatres",
		"movies",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	userIDs, err := s.SeedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	movieIDs, err := s.SeedMovies()
	if err != nil {
		return fmt.Errorf("failed to seed movies: %w", err)
	}

	audiIDs, err := s.SeedTheatres()
	if err != nil {
		return fmt.Errorf("failed to seed theatres: %w", err)
	}

	slotIDs, err := s.SeedSlots(movieIDs, audiIDs)
	if err != nil {
		return fmt.Errorf("failed to seed slots: %w", err)
	}

	if err := s.SeedBookings(userIDs, slotIDs); err != nil {
		return fmt.Errorf("failed to seed bookings: %w", err)
	}

	// Clear Redis cache to ensure fresh state
	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis cache: %v", err)
	}

	return nil
}

// SeedUsers creates 1 admin and 2 regular users
func (s *Seeder) SeedUsers() (map[string]uuid.UUID, error) {
	fmt.Println("  👤 Seeding users...")

	userIDs := make(map[string]uuid.UUID)

	// Hash password for all users (using "qwerty")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		key    string
		name   string
		email  string
		gender users.Gender
		role   users.Role
	}{
		{"admin", "Admin User", "admin@cinebook.app", users.GenderMale, users.RoleAdmin},
		{"user1", "Asha Rao", "asha.rao@example.com", users.GenderFemale, users.RoleUser},
		{"user2", "Rohan Mehta", "rohan.mehta@example.com", users.GenderMale, users.RoleUser},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:        uuid.New(),
			Name:      userData.name,
			Email:     userData.email,
			Password:  string(hashedPassword),
			Gender:    userData.gender,
			Role:      userData.role,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		userIDs[userData.key] = user.ID
		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Email, user.Role)
	}

	return userIDs, nil
}

// SeedMovies creates the movie catalog
func (s *Seeder) SeedMovies() ([]uuid.UUID, error) {
	fmt.Println("  🎬 Seeding movies...")

	moviesData := []movies.Movie{
		{
			ID:         uuid.New(),
			Name:       "Interstellar",
			Duration:   2.49,
			About:      "A team of explorers travel through a wormhole in space.",
			Languages:  pq.StringArray{"English", "Hindi"},
			MovieTypes: pq.StringArray{"2D", "IMAX"},
		},
		{
			ID:         uuid.New(),
			Name:       "3 Idiots",
			Duration:   2.51,
			About:      "Two friends search for their long lost companion.",
			Languages:  pq.StringArray{"Hindi"},
			MovieTypes: pq.StringArray{"2D"},
		},
		{
			ID:         uuid.New(),
			Name:       "Avatar",
			Duration:   2.42,
			About:      "A paraplegic Marine dispatched to the moon Pandora.",
			Languages:  pq.StringArray{"English", "Hindi", "Tamil"},
			MovieTypes: pq.StringArray{"2D", "3D", "IMAX"},
		},
	}

	ids := make([]uuid.UUID, 0, len(moviesData))
	for i := range moviesData {
		if err := s.db.PostgreSQL.Create(&moviesData[i]).Error; err != nil {
			return nil, fmt.Errorf("failed to create movie %s: %w", moviesData[i].Name, err)
		}
		ids = append(ids, moviesData[i].ID)
		fmt.Printf("    ✅ Created movie: %s\n", moviesData[i].Name)
	}

	return ids, nil
}

// SeedTheatres creates theatres with auditoriums
func (s *Seeder) SeedTheatres() ([]uuid.UUID, error) {
	fmt.Println("  🏛️  Seeding theatres and auditoriums...")

	zipcode := 400001
	theatre := theatres.Theatre{
		ID:         uuid.New(),
		Name:       "Galaxy Multiplex",
		City:       "Mumbai",
		State:      "Maharashtra",
		Zipcode:    &zipcode,
		Functional: true,
	}

	if err := s.db.PostgreSQL.Create(&theatre).Error; err != nil {
		return nil, fmt.Errorf("failed to create theatre %s: %w", theatre.Name, err)
	}
	fmt.Printf("    ✅ Created theatre: %s\n", theatre.Name)

	audisData := []theatres.Auditorium{
		{ID: uuid.New(), Name: "Audi 1", Seats: 120, OpeningHour: 9, ClosingHour: 21, TheatreID: theatre.ID},
		{ID: uuid.New(), Name: "Audi 2", Seats: 80, OpeningHour: 12, ClosingHour: 23, TheatreID: theatre.ID},
	}

	audiIDs := make([]uuid.UUID, 0, len(audisData))
	for i := range audisData {
		if err := s.db.PostgreSQL.Create(&audisData[i]).Error; err != nil {
			return nil, fmt.Errorf("failed to create auditorium %s: %w", audisData[i].Name, err)
		}
		audiIDs = append(audiIDs, audisData[i].ID)
		fmt.Printf("    ✅ Created auditorium: %s (%d seats)\n", audisData[i].Name, audisData[i].Seats)
	}

	return audiIDs, nil
}

// SeedSlots creates screening slots for the next three days
func (s *Seeder) SeedSlots(movieIDs, audiIDs []uuid.UUID) ([]uuid.UUID, error) {
	fmt.Println("  🕘 Seeding slots...")

	var slotIDs []uuid.UUID
	tomorrow := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1)

	for day := 0; day < 3; day++ {
		date := tomorrow.AddDate(0, 0, day)
		for i, audiID := range audiIDs {
			movieID := movieIDs[(day+i)%len(movieIDs)]
			for _, hour := range []int{9, 12, 15} {
				slot := slots.Slot{
					ID:             uuid.New(),
					AuditoriumID:   audiID,
					MovieID:        movieID,
					SeatsAvailable: 100,
					Date:           date,
					SlotHour:       hour,
					MovieType:      "2D",
					MovieLanguage:  "Hindi",
				}

				if err := s.db.PostgreSQL.Create(&slot).Error; err != nil {
					return nil, fmt.Errorf("failed to create slot: %w", err)
				}
				slotIDs = append(slotIDs, slot.ID)
			}
		}
	}

	fmt.Printf("    ✅ Created %d slots\n", len(slotIDs))
	return slotIDs, nil
}

// SeedBookings creates a few confirmed bookings against seeded slots
func (s *Seeder) SeedBookings(userIDs map[string]uuid.UUID, slotIDs []uuid.UUID) error {
	fmt.Println("  🎟️  Seeding bookings...")

	if len(slotIDs) < 2 {
		return nil
	}

	bookingsData := []bookings.Booking{
		{ID: uuid.New(), UserID: userIDs["user1"], SlotID: slotIDs[0], SeatsBooked: 2, Status: bookings.BookingStatusConfirmed},
		{ID: uuid.New(), UserID: userIDs["user2"], SlotID: slotIDs[0], SeatsBooked: 4, Status: bookings.BookingStatusConfirmed},
		{ID: uuid.New(), UserID: userIDs["user1"], SlotID: slotIDs[1], SeatsBooked: 1, Status: bookings.BookingStatusConfirmed},
	}

	for i := range bookingsData {
		booking := &bookingsData[i]

		// Mirror the conditional decrement the booking path performs
		result := s.db.PostgreSQL.Table("slots").
			Where("id = ? AND seats_available >= ?", booking.SlotID, booking.SeatsBooked).
			Update("seats_available", gorm.Expr("seats_available - ?", booking.SeatsBooked))
		if result.Error != nil {
			return fmt.Errorf("failed to decrement seats: %w", result.Error)
		}

		if err := s.db.PostgreSQL.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		fmt.Printf("    ✅ Created booking: %d seats on slot %s\n", booking.SeatsBooked, booking.SlotID)
	}

	return nil
}
