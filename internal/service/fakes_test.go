package service

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/events"
)

// In-memory repository fakes. Records are stored by value so callers cannot
// mutate repository state without an explicit Update, matching how a row in
// the database behaves.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	nextID     int64
	categories map[int64]domain.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[int64]domain.Category{}}
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	category.ID = r.nextID
	r.categories[category.ID] = *category
	return nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[category.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.categories[category.ID] = *category
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	category, ok := r.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &category, nil
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Category, 0, len(r.categories))
	for _, category := range r.categories {
		out = append(out, category)
	}
	return out, nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.categories, id)
	return nil
}

type fakePropertyRepo struct {
	mu         sync.Mutex
	nextID     int64
	properties map[int64]domain.Property
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{properties: map[int64]domain.Property{}}
}

func (r *fakePropertyRepo) Create(_ context.Context, property *domain.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	property.ID = r.nextID
	r.properties[property.ID] = *property
	return nil
}

func (r *fakePropertyRepo) Update(_ context.Context, property *domain.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.properties[property.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.properties[property.ID] = *property
	return nil
}

func (r *fakePropertyRepo) GetByID(_ context.Context, id int64) (*domain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	property, ok := r.properties[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &property, nil
}

func (r *fakePropertyRepo) List(_ context.Context) ([]domain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Property, 0, len(r.properties))
	for _, property := range r.properties {
		out = append(out, property)
	}
	return out, nil
}

func (r *fakePropertyRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.properties[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.properties, id)
	return nil
}

func (r *fakePropertyRepo) CountByCategory(_ context.Context, categoryID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, property := range r.properties {
		if property.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

type fakeInquiryRepo struct {
	mu        sync.Mutex
	nextID    int64
	inquiries map[int64]domain.Inquiry
	details   map[int64]struct{ sender, property string }
}

func newFakeInquiryRepo() *fakeInquiryRepo {
	return &fakeInquiryRepo{
		inquiries: map[int64]domain.Inquiry{},
		details:   map[int64]struct{ sender, property string }{},
	}
}

func (r *fakeInquiryRepo) Create(_ context.Context, inquiry *domain.Inquiry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	inquiry.ID = r.nextID
	r.inquiries[inquiry.ID] = *inquiry
	return nil
}

func (r *fakeInquiryRepo) Update(_ context.Context, inquiry *domain.Inquiry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.inquiries[inquiry.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.inquiries[inquiry.ID] = *inquiry
	return nil
}

func (r *fakeInquiryRepo) GetByID(_ context.Context, id int64) (*domain.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inquiry, ok := r.inquiries[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &inquiry, nil
}

func (r *fakeInquiryRepo) ListWithDetails(_ context.Context) ([]domain.InquiryListing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.InquiryListing, 0, len(r.inquiries))
	for id, inquiry := range r.inquiries {
		listing := domain.InquiryListing{Inquiry: inquiry}
		if d, ok := r.details[id]; ok {
			listing.SenderName = d.sender
			listing.PropertyName = d.property
		}
		out = append(out, listing)
	}
	return out, nil
}

func (r *fakeInquiryRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.inquiries[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.inquiries, id)
	return nil
}

func (r *fakeInquiryRepo) CountByProperty(_ context.Context, propertyID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, inquiry := range r.inquiries {
		if inquiry.PropertyID == propertyID {
			count++
		}
	}
	return count, nil
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *fakeMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type capturingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *capturingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *capturingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *capturingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.Event, len(d.events))
	copy(out, d.events)
	return out
}
