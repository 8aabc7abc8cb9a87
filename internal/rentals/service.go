package rentals

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/movierental/rental/internal/movies"
	"github.com/movierental/rental/internal/users"
	"github.com/movierental/rental/internal/zerrors"
)

const (
	// DefaultRentalPeriod is how long a rental stays open before its end date
	DefaultRentalPeriod = 72 * time.Hour

	// AdultAge is the minimum age for adults-only movies
	AdultAge = 18
)

// Messages returned to callers
const (
	MsgRentalNotFound  = "Rental not found."
	MsgUserNotFound    = "User not found."
	MsgMovieNotFound   = "Movie not found."
	MsgPendentRental   = "The user already have a rental!"
	MsgMovieInRental   = "Movie already in a rental."
	MsgInsufficientAge = "Cannot see that movie."
	MsgInvalidRequest  = "Invalid rental request."
)

// Operation names reported to the OperationRecorder
const (
	OpList   = "list"
	OpGet    = "get"
	OpCreate = "create"
	OpFinish = "finish"
)

// Service implements the RentalManager interface. It holds no mutable state
// between calls; concurrent CreateRental calls for the same user are not
// serialized and may both pass the pending rental check.
type Service struct {
	store    RentalStore
	users    users.UserStore
	movies   movies.MovieStore
	logger   *zap.Logger
	recorder OperationRecorder
	period   time.Duration
	now      func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRentalPeriod sets the length of new rentals
func WithRentalPeriod(period time.Duration) Option {
	return func(s *Service) {
		if period > 0 {
			s.period = period
		}
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRecorder reports operation outcomes, typically to metrics
func WithRecorder(recorder OperationRecorder) Option {
	return func(s *Service) {
		s.recorder = recorder
	}
}

// NewService creates a new rental service
func NewService(store RentalStore, userStore users.UserStore, movieStore movies.MovieStore, opts ...Option) *Service {
	s := &Service{
		store:  store,
		users:  userStore,
		movies: movieStore,
		logger: zap.NewNop(),
		period: DefaultRentalPeriod,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListRentals returns every rental held by the store, unfiltered
func (s *Service) ListRentals(ctx context.Context) (list []Rental, err error) {
	defer func() { s.observe(OpList, err) }()

	return s.store.List(ctx)
}

// GetRentalByID retrieves a rental by ID
func (s *Service) GetRentalByID(ctx context.Context, id int64) (rental *Rental, err error) {
	defer func() { s.observe(OpGet, err) }()

	rental, err = s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, zerrors.NewNotFoundError(MsgRentalNotFound)
	}
	return rental, nil
}

// CreateRental opens a rental for a user. The user must exist, must not
// have a pending rental, and every movie must be available to that user.
func (s *Service) CreateRental(ctx context.Context, req *CreateRentalRequest) (err error) {
	defer func() { s.observe(OpCreate, err) }()

	if req == nil {
		return zerrors.NewValidationError(MsgInvalidRequest, nil)
	}
	if err := req.Validate(); err != nil {
		return zerrors.NewValidationError(MsgInvalidRequest, err)
	}

	user, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return zerrors.NewNotFoundError(MsgUserNotFound)
	}

	// Any record returned here blocks the rental; the store query already
	// restricts itself to open rentals.
	pending, err := s.store.GetByUserID(ctx, req.UserID, false)
	if err != nil {
		return err
	}
	if len(pending) > 0 {
		return zerrors.NewPendentRentalError(MsgPendentRental)
	}

	now := s.now()
	for _, movieID := range req.MovieIDs {
		if err := s.checkMovie(ctx, movieID, user, now); err != nil {
			return err
		}
	}

	payload := &CreateRentalPayload{
		UserID:   req.UserID,
		MovieIDs: append([]int64(nil), req.MovieIDs...),
		Date:     now,
		EndDate:  now.Add(s.period),
	}
	if err := s.store.Create(ctx, payload); err != nil {
		return err
	}

	s.logger.Info("Rental created",
		zap.Int64("user_id", req.UserID),
		zap.Int64s("movie_ids", req.MovieIDs),
		zap.Time("end_date", payload.EndDate))
	return nil
}

func (s *Service) checkMovie(ctx context.Context, movieID int64, user *users.User, now time.Time) error {
	movie, err := s.movies.GetByID(ctx, movieID)
	if err != nil {
		return err
	}
	if movie == nil {
		return zerrors.NewNotFoundError(MsgMovieNotFound)
	}
	if movie.InRental() {
		return zerrors.NewMovieInRentalError(MsgMovieInRental)
	}
	if movie.AdultsOnly && user.AgeAt(now) < AdultAge {
		return zerrors.NewInsufficientAgeError(MsgInsufficientAge)
	}
	return nil
}

// FinishRental closes a rental. The closed flag is not checked here; finishing
// an already closed rental is left to the store.
func (s *Service) FinishRental(ctx context.Context, id int64) (err error) {
	defer func() { s.observe(OpFinish, err) }()

	rental, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rental == nil {
		return zerrors.NewNotFoundError(MsgRentalNotFound)
	}

	if err := s.store.Finish(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Rental finished",
		zap.Int64("rental_id", id),
		zap.Int64("user_id", rental.UserID))
	return nil
}

func (s *Service) observe(operation string, err error) {
	if s.recorder == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = zerrors.NameOf(err)
	}
	s.recorder.ObserveRentalOperation(operation, outcome)
}
