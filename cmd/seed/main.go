package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dentalcare/clinic-api/internal/appointment"
	"github.com/dentalcare/clinic-api/internal/auth"
	"github.com/dentalcare/clinic-api/internal/db"
)

var dentists = []string{
	"Dr. Rao",
	"Dr. Okafor",
	"Dr. Jensen",
	"Dr. Petrova",
	"Dr. Tanaka",
	"Dr. Alvarez",
}

var reasons = []string{
	"Cleaning",
	"Checkup",
	"Root canal",
	"Filling",
	"Whitening",
	"Wisdom tooth extraction",
	"Crown fitting",
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	if err := seedAdmin(context.Background(), pool); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	patients, err := seedPatients(context.Background(), pool, 50)
	if err != nil {
		log.Fatalf("seed patients: %v", err)
	}

	if err := seedAppointments(context.Background(), pool, patients, 200); err != nil {
		log.Fatalf("seed appointments: %v", err)
	}

	log.Println("seed complete")
}

// seedAdmin provisions the clinic administrator. Admin accounts never come
// from self-registration, so the seeder is where the role gets assigned.
func seedAdmin(ctx context.Context, pool *pgxpool.Pool) error {
	email := envOr("ADMIN_EMAIL", "admin@dentalcare.local")
	password := envOr("ADMIN_PASSWORD", "change-me-now")

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
		VALUES ($1, 'Clinic Admin', $2, $3, 'admin', now(), now())
		ON CONFLICT (email) DO NOTHING
	`, uuid.New(), email, hash)
	if err != nil {
		return err
	}

	log.Printf("admin seeded: %s", email)
	return nil
}

func seedPatients(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d patients", count)

	hash, err := auth.HashPassword("patient-password")
	if err != nil {
		return nil, err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		name := gofakeit.Name()
		email := gofakeit.Email()

		_, err := tx.Exec(ctx, `
			INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
			VALUES ($1, $2, $3, $4, 'user', now(), now())
		`, id, name, email, hash)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Println("patients seeded")
	return ids, nil
}

func seedAppointments(ctx context.Context, pool *pgxpool.Pool, patients []uuid.UUID, count int) error {
	log.Printf("seeding %d appointments", count)

	statuses := []appointment.Status{
		appointment.StatusPending,
		appointment.StatusBooked,
		appointment.StatusCancelled,
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := 0; i < count; i++ {
		owner := patients[gofakeit.Number(0, len(patients)-1)]
		dentist := dentists[gofakeit.Number(0, len(dentists)-1)]
		reason := reasons[gofakeit.Number(0, len(reasons)-1)]
		status := statuses[gofakeit.Number(0, len(statuses)-1)]
		startsAt := gofakeit.DateRange(time.Now(), time.Now().AddDate(0, 2, 0))

		_, err := tx.Exec(ctx, `
			INSERT INTO appointments (id, user_id, dentist, reason, starts_at, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		`, uuid.New(), owner, dentist, reason, startsAt, status)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("appointments seeded")
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
