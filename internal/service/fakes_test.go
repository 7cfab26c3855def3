package service

import (
	"context"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/lodging-service/internal/domain"
	"github.com/spec-kit/lodging-service/internal/events"
	"github.com/spec-kit/lodging-service/internal/repository"
)

// store is an in-memory stand-in for the database shared by the fake repositories.
type store struct {
	mu          sync.Mutex
	nextID      int64
	users       map[int64]*domain.User
	sessions    map[string]*domain.Session
	enrollments map[int64]*domain.Enrollment
	ticketTypes map[int64]*domain.TicketType
	tickets     map[int64]*domain.Ticket
	payments    map[int64]*domain.Payment
	hotels      map[int64]*domain.Hotel
	rooms       map[int64]*domain.Room
	bookings    map[int64]*domain.Booking

	roomLookups   int
	bookingWrites int
	storageErr    error
}

func newStore() *store {
	return &store{
		users:       map[int64]*domain.User{},
		sessions:    map[string]*domain.Session{},
		enrollments: map[int64]*domain.Enrollment{},
		ticketTypes: map[int64]*domain.TicketType{},
		tickets:     map[int64]*domain.Ticket{},
		payments:    map[int64]*domain.Payment{},
		hotels:      map[int64]*domain.Hotel{},
		rooms:       map[int64]*domain.Room{},
		bookings:    map[int64]*domain.Booking{},
	}
}

func (s *store) id() int64 {
	s.nextID++
	return s.nextID
}

// addTicketHolder enrolls userID and gives them a ticket with the given properties.
func (s *store) addTicketHolder(userID int64, status domain.TicketStatus, isRemote, includesHotel bool) *domain.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	enrollment := &domain.Enrollment{ID: s.id(), UserID: userID, Name: "guest"}
	s.enrollments[enrollment.ID] = enrollment
	tt := &domain.TicketType{ID: s.id(), Name: "in person", Price: 250, IsRemote: isRemote, IncludesHotel: includesHotel}
	s.ticketTypes[tt.ID] = tt
	ticket := &domain.Ticket{ID: s.id(), TicketTypeID: tt.ID, EnrollmentID: enrollment.ID, Status: status}
	s.tickets[ticket.ID] = ticket
	return ticket
}

func (s *store) addEligibleUser(userID int64) {
	s.addTicketHolder(userID, domain.TicketStatusPaid, false, true)
}

func (s *store) addEnrollment(userID int64) *domain.Enrollment {
	s.mu.Lock()
	defer s.mu.Unlock()
	enrollment := &domain.Enrollment{ID: s.id(), UserID: userID}
	s.enrollments[enrollment.ID] = enrollment
	return enrollment
}

func (s *store) addTicketType(price int64) *domain.TicketType {
	s.mu.Lock()
	defer s.mu.Unlock()
	tt := &domain.TicketType{ID: s.id(), Price: price}
	s.ticketTypes[tt.ID] = tt
	return tt
}

func (s *store) addHotel(name string) *domain.Hotel {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := &domain.Hotel{ID: s.id(), Name: name}
	s.hotels[h.ID] = h
	return h
}

func (s *store) addRoom(hotelID int64, capacity int) *domain.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := &domain.Room{ID: s.id(), HotelID: hotelID, Capacity: capacity, Name: "room"}
	s.rooms[r.ID] = r
	return r
}

func (s *store) addBooking(userID, roomID int64) *domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := &domain.Booking{ID: s.id(), UserID: userID, RoomID: roomID}
	s.bookings[b.ID] = b
	return b
}

func (s *store) occupancy(roomID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.occupancyLocked(roomID)
}

func (s *store) occupancyLocked(roomID int64) int {
	n := 0
	for _, b := range s.bookings {
		if b.RoomID == roomID {
			n++
		}
	}
	return n
}

func (s *store) roomLookupCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roomLookups
}

func (s *store) bookingWriteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bookingWrites
}

// serialTx runs units of work one at a time, the way the room lock orders them in Postgres.
type serialTx struct {
	mu    sync.Mutex
	calls int
}

func (t *serialTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls++
	return fn(ctx)
}

type userRepo struct{ *store }

func (r userRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = r.id()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r userRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type sessionRepo struct{ *store }

func (r sessionRepo) Create(_ context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session.ID = r.id()
	cp := *session
	r.sessions[session.Token] = &cp
	return nil
}

func (r sessionRepo) GetByToken(_ context.Context, token string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[token]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

type enrollmentRepo struct{ *store }

func (r enrollmentRepo) GetByUserID(_ context.Context, userID int64) (*domain.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.storageErr != nil {
		return nil, r.storageErr
	}
	var found *domain.Enrollment
	for _, e := range r.enrollments {
		if e.UserID == userID && (found == nil || e.ID < found.ID) {
			found = e
		}
	}
	if found == nil {
		return nil, pgx.ErrNoRows
	}
	cp := *found
	return &cp, nil
}

func (r enrollmentRepo) GetByID(_ context.Context, id int64) (*domain.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.enrollments[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

type ticketRepo struct{ *store }

func (r ticketRepo) withType(t *domain.Ticket) *domain.Ticket {
	cp := *t
	if tt, ok := r.ticketTypes[t.TicketTypeID]; ok {
		ttCopy := *tt
		cp.TicketType = &ttCopy
	}
	return &cp
}

func (r ticketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tickets {
		if t.EnrollmentID == ticket.EnrollmentID {
			return repository.ErrDuplicate
		}
	}
	ticket.ID = r.id()
	cp := *ticket
	r.tickets[ticket.ID] = &cp
	return nil
}

func (r ticketRepo) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tickets[id]; ok {
		return r.withType(t), nil
	}
	return nil, pgx.ErrNoRows
}

func (r ticketRepo) GetByEnrollmentID(_ context.Context, enrollmentID int64) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found *domain.Ticket
	for _, t := range r.tickets {
		if t.EnrollmentID == enrollmentID && (found == nil || t.ID < found.ID) {
			found = t
		}
	}
	if found == nil {
		return nil, pgx.ErrNoRows
	}
	return r.withType(found), nil
}

func (r ticketRepo) MarkPaid(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tickets[id]
	if !ok || t.Status != domain.TicketStatusReserved {
		return pgx.ErrNoRows
	}
	t.Status = domain.TicketStatusPaid
	return nil
}

type ticketTypeRepo struct{ *store }

func (r ticketTypeRepo) List(_ context.Context) ([]domain.TicketType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []domain.TicketType{}
	for _, tt := range r.ticketTypes {
		result = append(result, *tt)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r ticketTypeRepo) GetByID(_ context.Context, id int64) (*domain.TicketType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tt, ok := r.ticketTypes[id]; ok {
		cp := *tt
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

type paymentRepo struct{ *store }

func (r paymentRepo) Create(_ context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.TicketID == payment.TicketID {
			return repository.ErrDuplicate
		}
	}
	payment.ID = r.id()
	cp := *payment
	r.payments[payment.ID] = &cp
	return nil
}

func (r paymentRepo) GetByTicketID(_ context.Context, ticketID int64) (*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.TicketID == ticketID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type hotelRepo struct {
	*store
	listCalls int
}

func (r *hotelRepo) List(_ context.Context) ([]domain.Hotel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	result := []domain.Hotel{}
	for _, h := range r.hotels {
		result = append(result, *h)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *hotelRepo) GetByID(_ context.Context, id int64) (*domain.Hotel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.hotels[id]; ok {
		cp := *h
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

type roomRepo struct{ *store }

func (r roomRepo) lookup(id int64) (*domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roomLookups++
	room, ok := r.rooms[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *room
	cp.Occupancy = r.occupancyLocked(id)
	return &cp, nil
}

func (r roomRepo) GetByID(_ context.Context, id int64) (*domain.Room, error) {
	return r.lookup(id)
}

func (r roomRepo) GetForUpdate(_ context.Context, id int64) (*domain.Room, error) {
	return r.lookup(id)
}

func (r roomRepo) ListByHotel(_ context.Context, hotelID int64) ([]domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []domain.Room{}
	for _, room := range r.rooms {
		if room.HotelID == hotelID {
			cp := *room
			cp.Occupancy = r.occupancyLocked(room.ID)
			result = append(result, cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type bookingRepo struct{ *store }

func (r bookingRepo) Create(_ context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookingWrites++
	booking.ID = r.id()
	cp := *booking
	r.bookings[booking.ID] = &cp
	return nil
}

func (r bookingRepo) UpdateRoom(_ context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookingWrites++
	existing, ok := r.bookings[booking.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	existing.RoomID = booking.RoomID
	existing.UserID = booking.UserID
	return nil
}

func (r bookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bookings[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (r bookingRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.GetByID(ctx, id)
}

func (r bookingRepo) GetFirstByUserID(_ context.Context, userID int64) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found *domain.Booking
	for _, b := range r.bookings {
		if b.UserID == userID && (found == nil || b.ID < found.ID) {
			found = b
		}
	}
	if found == nil {
		return nil, pgx.ErrNoRows
	}
	cp := *found
	if room, ok := r.rooms[found.RoomID]; ok {
		roomCopy := *room
		cp.Room = &roomCopy
	}
	return &cp, nil
}

// recordingDispatcher captures published events.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, 0, len(d.events))
	for _, e := range d.events {
		out = append(out, e.Type)
	}
	return out
}

var (
	_ repository.UserRepository       = userRepo{}
	_ repository.SessionRepository    = sessionRepo{}
	_ repository.EnrollmentRepository = enrollmentRepo{}
	_ repository.TicketRepository     = ticketRepo{}
	_ repository.TicketTypeRepository = ticketTypeRepo{}
	_ repository.PaymentRepository    = paymentRepo{}
	_ repository.HotelRepository      = (*hotelRepo)(nil)
	_ repository.RoomRepository       = roomRepo{}
	_ repository.BookingRepository    = bookingRepo{}
	_ repository.TxManager            = (*serialTx)(nil)
)
