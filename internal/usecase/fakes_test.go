//go:build unit

package usecase_test

import (
	"context"
	"time"

	"rentalhub/internal/domain/booking"
	"rentalhub/internal/domain/product"
	"rentalhub/internal/domain/user"
	"rentalhub/internal/infra"
	"rentalhub/internal/usecase"
	"rentalhub/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type fakeProductRepo struct {
	entities  map[uuid.UUID]*product.Product
	views     map[uuid.UUID]*readmodel.ProductRM
	list      []*readmodel.ProductListRM
	createErr error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		entities: map[uuid.UUID]*product.Product{},
		views:    map[uuid.UUID]*readmodel.ProductRM{},
	}
}

func (f *fakeProductRepo) Create(_ context.Context, p *product.Product) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.entities[p.ID()] = p
	f.views[p.ID()] = &readmodel.ProductRM{ID: p.ID(), Name: p.Name()}
	return nil
}

func (f *fakeProductRepo) FindEntityByID(_ context.Context, id uuid.UUID) (*product.Product, error) {
	p, ok := f.entities[id]
	if !ok {
		return nil, infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return p, nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*readmodel.ProductRM, error) {
	rm, ok := f.views[id]
	if !ok {
		return nil, infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return rm, nil
}

func (f *fakeProductRepo) FindAll(_ context.Context, _ bool) ([]*readmodel.ProductListRM, error) {
	return f.list, nil
}

type fakeBookingRepo struct {
	entities  map[uuid.UUID]*booking.Booking
	views     map[uuid.UUID]*readmodel.BookingRM
	activity  map[uuid.UUID][]usecase.ActivityEntry
	createErr error
	updateErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		entities: map[uuid.UUID]*booking.Booking{},
		views:    map[uuid.UUID]*readmodel.BookingRM{},
		activity: map[uuid.UUID][]usecase.ActivityEntry{},
	}
}

func (f *fakeBookingRepo) put(b *booking.Booking) {
	f.entities[b.ID()] = b
	f.views[b.ID()] = &readmodel.BookingRM{
		ID:         b.ID(),
		ProductID:  b.ProductID(),
		UserID:     b.UserID(),
		StartDate:  b.Period().Start(),
		EndDate:    b.Period().End(),
		Status:     b.Status().String(),
		TotalPrice: b.TotalPrice(),
	}
}

func (f *fakeBookingRepo) Create(_ context.Context, b *booking.Booking, entry usecase.ActivityEntry) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.put(b)
	f.activity[b.ID()] = append(f.activity[b.ID()], entry)
	return nil
}

func (f *fakeBookingRepo) FindEntityByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := f.entities[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return b, nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*readmodel.BookingRM, error) {
	rm, ok := f.views[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return rm, nil
}

func (f *fakeBookingRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*readmodel.BookingListRM, error) {
	var out []*readmodel.BookingListRM
	for _, rm := range f.views {
		if rm.UserID == userID {
			out = append(out, &readmodel.BookingListRM{ID: rm.ID, Status: rm.Status})
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) FindAll(_ context.Context, status *booking.Status) ([]*readmodel.BookingListRM, error) {
	var out []*readmodel.BookingListRM
	for _, rm := range f.views {
		if status != nil && rm.Status != status.String() {
			continue
		}
		out = append(out, &readmodel.BookingListRM{ID: rm.ID, Status: rm.Status})
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to booking.Status, entry usecase.ActivityEntry) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	rm, ok := f.views[id]
	if !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	if rm.Status != from.String() {
		return infra.WrapRepoErr("status moved concurrently", nil, infra.KindConflict)
	}
	rm.Status = to.String()
	f.activity[id] = append(f.activity[id], entry)
	return nil
}

func (f *fakeBookingRepo) FindActivity(_ context.Context, bookingID uuid.UUID) ([]*readmodel.ActivityEntryRM, error) {
	var out []*readmodel.ActivityEntryRM
	for _, e := range f.activity[bookingID] {
		out = append(out, &readmodel.ActivityEntryRM{
			BookingID:  e.BookingID,
			Action:     e.Action,
			FromStatus: e.FromStatus,
			ToStatus:   e.ToStatus,
			ActorID:    e.ActorID,
		})
	}
	return out, nil
}

type fakePublisher struct {
	events []usecase.BookingEvent
	err    error
}

func (f *fakePublisher) PublishStatusChanged(_ context.Context, event usecase.BookingEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

type fakeUserRepo struct {
	byEmail map[string]*readmodel.AuthorizedUserRM
	byID    map[uuid.UUID]*readmodel.AuthorizedUserRM
	hashes  map[string]string
	logins  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: map[string]*readmodel.AuthorizedUserRM{},
		byID:    map[uuid.UUID]*readmodel.AuthorizedUserRM{},
		hashes:  map[string]string{},
	}
}

func (f *fakeUserRepo) add(u *readmodel.AuthorizedUserRM, hash string) {
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	f.hashes[u.Email] = hash
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email user.Email) (*readmodel.AuthorizedUserRM, string, error) {
	u, ok := f.byEmail[email.Value()]
	if !ok {
		return nil, "", infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return u, f.hashes[email.Value()], nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*readmodel.AuthorizedUserRM, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return u, nil
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, _ uuid.UUID) error {
	f.logins++
	return nil
}

type fakeSessionStore struct {
	sessions map[string]uuid.UUID
	saveErr  error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]uuid.UUID{}}
}

func (f *fakeSessionStore) Save(_ context.Context, token string, userID uuid.UUID, _ time.Duration) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.sessions[token] = userID
	return nil
}

func (f *fakeSessionStore) Resolve(_ context.Context, token string) (uuid.UUID, error) {
	userID, ok := f.sessions[token]
	if !ok {
		return uuid.Nil, infra.WrapRepoErr("session not found", nil, infra.KindNotFound)
	}
	return userID, nil
}

func (f *fakeSessionStore) Delete(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

type fakePaymentRepo struct {
	payments map[uuid.UUID][]*readmodel.PaymentRM
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[uuid.UUID][]*readmodel.PaymentRM{}}
}

func (f *fakePaymentRepo) Insert(_ context.Context, bookingID uuid.UUID, amount decimal.Decimal, method string) (decimal.Decimal, error) {
	f.payments[bookingID] = append(f.payments[bookingID], &readmodel.PaymentRM{
		ID:        uuid.New(),
		BookingID: bookingID,
		Amount:    amount,
		Method:    method,
	})
	total := decimal.Zero
	for _, p := range f.payments[bookingID] {
		total = total.Add(p.Amount)
	}
	return total, nil
}

func (f *fakePaymentRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) ([]*readmodel.PaymentRM, error) {
	return f.payments[bookingID], nil
}
