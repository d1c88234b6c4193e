package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"rentalhub/internal/domain/booking"
	"rentalhub/internal/domain/user"
	"rentalhub/internal/infra"
	"rentalhub/internal/pkg/clock"
	"rentalhub/internal/pkg/errs"
	"rentalhub/internal/usecase/readmodel"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrProductNotFound = errors.New("product not found")
	ErrBookingConflict = errors.New("booking dates conflict with an existing booking")
	ErrForbidden       = errors.New("not allowed to access this booking")

	ErrDatabaseOperationFailed = errors.New("database operation failed")
)

// ActivityEntry is the audit record written alongside every lifecycle
// change, in the same transaction.
type ActivityEntry struct {
	BookingID  uuid.UUID
	Action     string
	FromStatus string
	ToStatus   string
	ActorID    uuid.UUID
}

type BookingEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	Action     string    `json:"action"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ActorID    uuid.UUID `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type BookingRepository interface {
	// Create inserts the booking and its creation activity entry in one
	// transaction, failing with a conflict when a non-cancelled booking
	// for the same product overlaps the period.
	Create(ctx context.Context, b *booking.Booking, entry ActivityEntry) error
	FindEntityByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	FindByID(ctx context.Context, id uuid.UUID) (*readmodel.BookingRM, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*readmodel.BookingListRM, error)
	FindAll(ctx context.Context, status *booking.Status) ([]*readmodel.BookingListRM, error)
	// UpdateStatus is a guarded update: it only succeeds while the row is
	// still in the from status, so a lost race surfaces as a conflict.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to booking.Status, entry ActivityEntry) error
	FindActivity(ctx context.Context, bookingID uuid.UUID) ([]*readmodel.ActivityEntryRM, error)
}

// BookingEventPublisher pushes lifecycle events to the message broker.
// Publishing is best-effort; failures must never fail the request.
type BookingEventPublisher interface {
	PublishStatusChanged(ctx context.Context, event BookingEvent) error
}

type CreateBookingParams struct {
	ProductID uuid.UUID
	UserID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

type BookingUseCase interface {
	CreateBooking(ctx context.Context, params CreateBookingParams) (*readmodel.BookingRM, error)
	GetBooking(ctx context.Context, id, actorID uuid.UUID, role user.Role) (*readmodel.BookingRM, error)
	GetBookingActivity(ctx context.Context, id, actorID uuid.UUID, role user.Role) ([]*readmodel.ActivityEntryRM, error)
	ListUserBookings(ctx context.Context, userID uuid.UUID) ([]*readmodel.BookingListRM, error)
	ListAllBookings(ctx context.Context, status *booking.Status) ([]*readmodel.BookingListRM, error)
	ApplyAction(ctx context.Context, id uuid.UUID, action booking.Action, actorID uuid.UUID, role user.Role) (*readmodel.BookingRM, error)
}

type bookingUseCaseImpl struct {
	bookingRepo BookingRepository
	productRepo ProductRepository
	factory     *booking.Factory
	publisher   BookingEventPublisher
	clock       clock.Clock
}

func NewBookingUseCase(
	bookingRepo BookingRepository,
	productRepo ProductRepository,
	factory *booking.Factory,
	publisher BookingEventPublisher,
	clk clock.Clock,
) BookingUseCase {
	return &bookingUseCaseImpl{
		bookingRepo: bookingRepo,
		productRepo: productRepo,
		factory:     factory,
		publisher:   publisher,
		clock:       clk,
	}
}

func (u *bookingUseCaseImpl) CreateBooking(ctx context.Context, params CreateBookingParams) (*readmodel.BookingRM, error) {
	productEntity, err := u.productRepo.FindEntityByID(ctx, params.ProductID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	period, err := booking.NewDateRange(params.StartDate, params.EndDate)
	if err != nil {
		return nil, err
	}

	bookingEntity, err := u.factory.CreateBooking(productEntity, params.UserID, period)
	if err != nil {
		return nil, err
	}

	if bookingEntity.TotalPrice().IsZero() {
		// Preserved source behavior: products without pricing data book at
		// zero. Kept observable until the intent is clarified.
		slog.Warn("booking created with zero total price",
			"booking_id", bookingEntity.ID(), "product_id", productEntity.ID())
	}

	entry := ActivityEntry{
		BookingID: bookingEntity.ID(),
		Action:    "create",
		ToStatus:  bookingEntity.Status().String(),
		ActorID:   params.UserID,
	}
	if err := u.bookingRepo.Create(ctx, bookingEntity, entry); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, ErrBookingConflict
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return u.bookingRepo.FindByID(ctx, bookingEntity.ID())
}

func (u *bookingUseCaseImpl) GetBooking(ctx context.Context, id, actorID uuid.UUID, role user.Role) (*readmodel.BookingRM, error) {
	rm, err := u.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if role != user.RoleAdmin && rm.UserID != actorID {
		return nil, ErrForbidden
	}

	return rm, nil
}

func (u *bookingUseCaseImpl) GetBookingActivity(ctx context.Context, id, actorID uuid.UUID, role user.Role) ([]*readmodel.ActivityEntryRM, error) {
	if _, err := u.GetBooking(ctx, id, actorID, role); err != nil {
		return nil, err
	}
	return u.bookingRepo.FindActivity(ctx, id)
}

func (u *bookingUseCaseImpl) ListUserBookings(ctx context.Context, userID uuid.UUID) ([]*readmodel.BookingListRM, error) {
	return u.bookingRepo.FindByUserID(ctx, userID)
}

func (u *bookingUseCaseImpl) ListAllBookings(ctx context.Context, status *booking.Status) ([]*readmodel.BookingListRM, error) {
	return u.bookingRepo.FindAll(ctx, status)
}

func (u *bookingUseCaseImpl) ApplyAction(ctx context.Context, id uuid.UUID, action booking.Action, actorID uuid.UUID, role user.Role) (*readmodel.BookingRM, error) {
	bookingEntity, err := u.bookingRepo.FindEntityByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if role != user.RoleAdmin && !bookingEntity.IsOwnedBy(actorID) {
		return nil, ErrForbidden
	}

	from := bookingEntity.Status()
	if err := bookingEntity.Apply(action, role, u.clock.Now()); err != nil {
		return nil, err
	}

	entry := ActivityEntry{
		BookingID:  id,
		Action:     action.String(),
		FromStatus: from.String(),
		ToStatus:   bookingEntity.Status().String(),
		ActorID:    actorID,
	}
	if err := u.bookingRepo.UpdateStatus(ctx, id, from, bookingEntity.Status(), entry); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, ErrBookingConflict
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	event := BookingEvent{
		BookingID:  id,
		Action:     action.String(),
		FromStatus: from.String(),
		ToStatus:   bookingEntity.Status().String(),
		ActorID:    actorID,
		OccurredAt: u.clock.Now(),
	}
	if err := u.publisher.PublishStatusChanged(ctx, event); err != nil {
		slog.Warn("failed to publish booking event", "booking_id", id, "error", err)
	}

	return u.bookingRepo.FindByID(ctx, id)
}
