package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/movierental/rental/internal/audit"
	"github.com/movierental/rental/internal/movies"
	"github.com/movierental/rental/internal/rentals"
	"github.com/movierental/rental/internal/users"
	"github.com/movierental/rental/internal/zerrors"
)

// openTestDB connects to RENTAL_TEST_DATABASE_URL and skips when it is unset or unreachable
func openTestDB(t *testing.T) *bun.DB {
	t.Helper()

	url := os.Getenv("RENTAL_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("RENTAL_TEST_DATABASE_URL not set, skipping PostgreSQL integration test")
	}

	ctx := context.Background()
	db, err := Open(ctx, url, 5)
	if err != nil {
		t.Skipf("PostgreSQL not available: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(ctx, db))
	return db
}

func TestPostgresRentalLifecycle(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	userStore := users.NewUserStore(db)
	movieStore := movies.NewPostgresStore(db)
	rentalStore := rentals.NewPostgresStore(db)

	suffix := uuid.New().String()[:8]
	user := &users.User{
		FirstName: "Integration",
		LastName:  "Test",
		Email:     "integration-" + suffix + "@example.com",
		CPF:       "it-" + suffix,
		BirthDate: time.Date(1985, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, userStore.CreateUser(ctx, user))
	require.NotZero(t, user.ID)

	first := &movies.Movie{Name: "Integration A " + suffix}
	second := &movies.Movie{Name: "Integration B " + suffix}
	require.NoError(t, movieStore.CreateMovie(ctx, first))
	require.NoError(t, movieStore.CreateMovie(ctx, second))

	service := rentals.NewService(rentalStore, userStore, movieStore)

	require.NoError(t, service.CreateRental(ctx, &rentals.CreateRentalRequest{
		UserID:   user.ID,
		MovieIDs: []int64{first.ID, second.ID},
	}))

	open, err := rentalStore.GetByUserID(ctx, user.ID, false)
	require.NoError(t, err)
	require.Len(t, open, 1)
	rentalID := open[0].ID

	movie, err := movieStore.GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, movie.RentalID)
	assert.Equal(t, rentalID, *movie.RentalID)

	err = service.CreateRental(ctx, &rentals.CreateRentalRequest{UserID: user.ID, MovieIDs: []int64{first.ID}})
	assert.ErrorIs(t, err, zerrors.ErrPendentRental)

	require.NoError(t, service.FinishRental(ctx, rentalID))

	rental, err := service.GetRentalByID(ctx, rentalID)
	require.NoError(t, err)
	assert.True(t, rental.Closed)

	movie, err = movieStore.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Nil(t, movie.RentalID)

	require.NoError(t, service.FinishRental(ctx, rentalID))
	rental, err = service.GetRentalByID(ctx, rentalID)
	require.NoError(t, err)
	assert.True(t, rental.Closed)

	missing, err := rentalStore.GetByID(ctx, -1)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPostgresAuditStore(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	recorder := audit.NewRecorder(audit.NewPostgresStore(db))
	requestID := uuid.New().String()

	require.NoError(t, recorder.Record(ctx, &audit.Event{
		Operation:  "list_rentals",
		Method:     "GET",
		Endpoint:   "/rentals",
		RequestID:  requestID,
		StatusCode: 200,
		Success:    true,
	}))

	events, err := recorder.Recent(ctx, 50)
	require.NoError(t, err)

	var found bool
	for _, event := range events {
		if event.RequestID == requestID {
			found = true
		}
	}
	assert.True(t, found)
}

func TestHealthChecker(t *testing.T) {
	db := openTestDB(t)

	checker := NewHealthChecker(db)
	assert.Equal(t, "database", checker.Name())
	assert.NoError(t, checker.HealthCheck(context.Background()))
}
