package services

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"resort-backend/events"
	"resort-backend/models"
	"resort-backend/repositories"
)

// memStore is an in-memory stand-in for the gorm repositories. Transactions
// are serialised by txMu and rolled back from a snapshot when fn fails.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	nextID          uint
	guests          map[uint]models.Guest
	rooms           map[uint]models.Room
	services        map[uint]models.Service
	roomBookings    map[uint]models.RoomBooking
	serviceBookings map[uint]models.ServiceBooking
	payments        map[uint]models.Payment
	admins          map[uint]models.Admin
	reviews         map[uint]models.Review
	settings        *models.ResortSetting

	faults map[string][]error
	calls  map[string]int
}

func newMemStore() *memStore {
	return &memStore{
		guests:          map[uint]models.Guest{},
		rooms:           map[uint]models.Room{},
		services:        map[uint]models.Service{},
		roomBookings:    map[uint]models.RoomBooking{},
		serviceBookings: map[uint]models.ServiceBooking{},
		payments:        map[uint]models.Payment{},
		admins:          map[uint]models.Admin{},
		reviews:         map[uint]models.Review{},
		faults:          map[string][]error{},
		calls:           map[string]int{},
	}
}

// failOn queues errors returned by the next calls of op.
func (m *memStore) failOn(op string, errs ...error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faults[op] = append(m.faults[op], errs...)
}

func (m *memStore) callCount(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

// enter records a call of op and returns a queued fault; the caller holds mu
// on success and must release it.
func (m *memStore) enter(op string) error {
	m.mu.Lock()
	m.calls[op]++
	if q := m.faults[op]; len(q) > 0 {
		m.faults[op] = q[1:]
		m.mu.Unlock()
		return q[0]
	}
	return nil
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

type snapshot struct {
	nextID          uint
	roomBookings    map[uint]models.RoomBooking
	serviceBookings map[uint]models.ServiceBooking
	payments        map[uint]models.Payment
}

func (m *memStore) snapshot() snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return snapshot{
		nextID:          m.nextID,
		roomBookings:    maps.Clone(m.roomBookings),
		serviceBookings: maps.Clone(m.serviceBookings),
		payments:        maps.Clone(m.payments),
	}
}

func (m *memStore) restore(s snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID = s.nextID
	m.roomBookings = s.roomBookings
	m.serviceBookings = s.serviceBookings
	m.payments = s.payments
}

func (m *memStore) inTx(fn func() error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	snap := m.snapshot()
	if err := fn(); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

// --- seeding helpers ---

func (m *memStore) addGuest(g models.Guest) models.Guest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g.ID == 0 {
		g.ID = m.id()
	}
	m.guests[g.ID] = g
	return g
}

func (m *memStore) addRoom(r models.Room) models.Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == 0 {
		r.ID = m.id()
	}
	m.rooms[r.ID] = r
	return r
}

func (m *memStore) addService(s models.Service) models.Service {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == 0 {
		s.ID = m.id()
	}
	m.services[s.ID] = s
	return s
}

func (m *memStore) addRoomBooking(b models.RoomBooking) models.RoomBooking {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID == 0 {
		b.ID = m.id()
	}
	m.roomBookings[b.ID] = b
	return b
}

func (m *memStore) addServiceBooking(b models.ServiceBooking) models.ServiceBooking {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID == 0 {
		b.ID = m.id()
	}
	m.serviceBookings[b.ID] = b
	return b
}

func (m *memStore) roomBooking(id uint) models.RoomBooking {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roomBookings[id]
}

func (m *memStore) serviceBooking(id uint) models.ServiceBooking {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.serviceBookings[id]
}

// --- BookingRepository / OccupancyRepository ---

type memBookings struct{ *memStore }

var (
	_ repositories.BookingRepository   = memBookings{}
	_ repositories.OccupancyRepository = memBookings{}
	_ repositories.PaymentRepository   = memPayments{}
	_ repositories.ResourceRepository  = (*memStore)(nil)
	_ repositories.GuestRepository     = (*memStore)(nil)
	_ repositories.AdminRepository     = (*memStore)(nil)
	_ repositories.SettingsRepository  = (*memStore)(nil)
	_ repositories.ReviewRepository    = (*memStore)(nil)
)

func (r memBookings) Transaction(ctx context.Context, fn func(tx repositories.BookingRepository) error) error {
	if err := r.enter("Transaction"); err != nil {
		return err
	}
	r.mu.Unlock()
	return r.inTx(func() error { return fn(r) })
}

func (r memBookings) LockRoom(_ context.Context, id uint) (*models.Room, error) {
	if err := r.enter("LockRoom"); err != nil {
		return nil, err
	}
	defer r.mu.Unlock()
	room, ok := r.rooms[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &room, nil
}

func (r memBookings) LockService(_ context.Context, id uint) (*models.Service, error) {
	if err := r.enter("LockService"); err != nil {
		return nil, err
	}
	defer r.mu.Unlock()
	svc, ok := r.services[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &svc, nil
}

func (r memBookings) GuestExists(_ context.Context, id uint) (bool, error) {
	if err := r.enter("GuestExists"); err != nil {
		return false, err
	}
	defer r.mu.Unlock()
	_, ok := r.guests[id]
	return ok, nil
}

func (r memBookings) OverlappingRoomBookings(_ context.Context, roomID uint, start, end time.Time) ([]models.RoomBooking, error) {
	if err := r.enter("OverlappingRoomBookings"); err != nil {
		return nil, err
	}
	defer r.mu.Unlock()
	var out []models.RoomBooking
	for _, b := range r.roomBookings {
		if b.RoomID == roomID && b.Status != models.StatusCancelled && b.CheckIn.Before(end) && b.CheckOut.After(start) {
			out = append(out, b)
		}
	}
	sortRoomBookings(out)
	return out, nil
}

func (r memBookings) OverlappingServiceBookings(_ context.Context, serviceID uint, start, end time.Time) ([]models.ServiceBooking, error) {
	if err := r.enter("OverlappingServiceBookings"); err != nil {
		return nil, err
	}
	defer r.mu.Unlock()
	var out []models.ServiceBooking
	for _, b := range r.serviceBookings {
		if b.ServiceID == serviceID && b.Status != models.StatusCancelled && b.StartTime.Before(end) && b.EndTime.After(start) {
			out = append(out, b)
		}
	}
	sortServiceBookings(out)
	return out, nil
}

func (r memBookings) CreateRoomBooking(_ context.Context, b *models.RoomBooking) error {
	if err := r.enter("CreateRoomBooking"); err != nil {
		return err
	}
	defer r.mu.Unlock()
	b.ID = r.id()
	b.CreatedAt = time.Now()
	r.roomBookings[b.ID] = *b
	return nil
}

func (r memBookings) CreateServiceBooking(_ context.Context, b *models.ServiceBooking) error {
	if err := r.enter("CreateServiceBooking"); err != nil {
		return err
	}
	defer r.mu.Unlock()
	b.ID = r.id()
	b.CreatedAt = time.Now()
	r.serviceBookings[b.ID] = *b
	return nil
}

func (r memBookings) FindRoomBooking(_ context.Context, id uint, forUpdate bool) (*models.RoomBooking, error) {
	if err := r.enter("FindRoomBooking"); err != nil {
		return nil, err
	}
	defer r.mu.Unlock()
	b, ok := r.roomBookings[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if !forUpdate {
		b.Guest = r.guests[b.GuestID]
		b.Room = r.rooms[b.RoomID]
	}
	return &b, nil
}

func (r memBookings) FindServiceBooking(_ context.Context, id uint, forUpdate bool) (*models.ServiceBooking, error) {
	if err := r.enter("FindServiceBooking"); err != nil {
		return nil, err
	}
	defer r.mu.Unlock()
	b, ok := r.serviceBookings[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if !forUpdate {
		b.Guest = r.guests[b.GuestID]
		b.Service = r.services[b.ServiceID]
	}
	return &b, nil
}

func (r memBookings) UpdateRoomBookingStatus(_ context.Context, id uint, status string) error {
	if err := r.enter("UpdateRoomBookingStatus"); err != nil {
		return err
	}
	defer r.mu.Unlock()
	b, ok := r.roomBookings[id]
	if !ok {
		return repositories.ErrNotFound
	}
	b.Status = status
	r.roomBookings[id] = b
	return nil
}

func (r memBookings) UpdateServiceBookingStatus(_ context.Context, id uint, status string) error {
	if err := r.enter("UpdateServiceBookingStatus"); err != nil {
		return err
	}
	defer r.mu.Unlock()
	b, ok := r.serviceBookings[id]
	if !ok {
		return repositories.ErrNotFound
	}
	b.Status = status
	r.serviceBookings[id] = b
	return nil
}

func (r memBookings) GuestRoomBookings(_ context.Context, guestID uint) ([]models.RoomBooking, error) {
	if err := r.enter("GuestRoomBookings"); err != nil {
		return nil, err
	}
	defer r.mu.Unlock()
	var out []models.RoomBooking
	for _, b := range r.roomBookings {
		if b.GuestID == guestID {
			b.Room = r.rooms[b.RoomID]
			out = append(out, b)
		}
	}
	sortRoomBookings(out)
	return out, nil
}

func (r memBookings) GuestServiceBookings(_ context.Context, guestID uint) ([]models.ServiceBooking, error) {
	if err := r.enter("GuestServiceBookings"); err != nil {
		return nil, err
	}
	defer r.mu.Unlock()
	var out []models.ServiceBooking
	for _, b := range r.serviceBookings {
		if b.GuestID == guestID {
			b.Service = r.services[b.ServiceID]
			out = append(out, b)
		}
	}
	sortServiceBookings(out)
	return out, nil
}

func (r memBookings) RoomBookingsBetween(_ context.Context, roomIDs []uint, start, end time.Time) ([]models.RoomBooking, error) {
	if err := r.enter("RoomBookingsBetween"); err != nil {
		return nil, err
	}
	defer r.mu.Unlock()
	want := map[uint]bool{}
	for _, id := range roomIDs {
		want[id] = true
	}
	var out []models.RoomBooking
	for _, b := range r.roomBookings {
		if len(want) > 0 && !want[b.RoomID] {
			continue
		}
		if b.Status != models.StatusCancelled && b.CheckIn.Before(end) && b.CheckOut.After(start) {
			b.Guest = r.guests[b.GuestID]
			out = append(out, b)
		}
	}
	sortRoomBookings(out)
	return out, nil
}

func (r memBookings) ServiceBookingsBetween(_ context.Context, serviceID uint, start, end time.Time) ([]models.ServiceBooking, error) {
	if err := r.enter("ServiceBookingsBetween"); err != nil {
		return nil, err
	}
	defer r.mu.Unlock()
	var out []models.ServiceBooking
	for _, b := range r.serviceBookings {
		if b.ServiceID == serviceID && b.Status != models.StatusCancelled && b.StartTime.Before(end) && b.EndTime.After(start) {
			b.Guest = r.guests[b.GuestID]
			out = append(out, b)
		}
	}
	sortServiceBookings(out)
	return out, nil
}

func (r memBookings) RoomBookingsCheckingIn(_ context.Context, day time.Time) ([]models.RoomBooking, error) {
	return r.roomBookingsOn("RoomBookingsCheckingIn", day, func(b models.RoomBooking) time.Time { return b.CheckIn })
}

func (r memBookings) RoomBookingsCheckingOut(_ context.Context, day time.Time) ([]models.RoomBooking, error) {
	return r.roomBookingsOn("RoomBookingsCheckingOut", day, func(b models.RoomBooking) time.Time { return b.CheckOut })
}

func (r memBookings) roomBookingsOn(op string, day time.Time, field func(models.RoomBooking) time.Time) ([]models.RoomBooking, error) {
	if err := r.enter(op); err != nil {
		return nil, err
	}
	defer r.mu.Unlock()
	var out []models.RoomBooking
	for _, b := range r.roomBookings {
		if b.Status != models.StatusCancelled && field(b).Equal(day) {
			b.Guest = r.guests[b.GuestID]
			b.Room = r.rooms[b.RoomID]
			out = append(out, b)
		}
	}
	sortRoomBookings(out)
	return out, nil
}

func (r memBookings) RoomBookingTotals(context.Context) (repositories.Totals, error) {
	if err := r.enter("RoomBookingTotals"); err != nil {
		return repositories.Totals{}, err
	}
	defer r.mu.Unlock()
	var t repositories.Totals
	for _, b := range r.roomBookings {
		addTotals(&t, b.Status, b.TotalPrice)
	}
	return t, nil
}

func (r memBookings) ServiceBookingTotals(context.Context) (repositories.Totals, error) {
	if err := r.enter("ServiceBookingTotals"); err != nil {
		return repositories.Totals{}, err
	}
	defer r.mu.Unlock()
	var t repositories.Totals
	for _, b := range r.serviceBookings {
		addTotals(&t, b.Status, b.TotalPrice)
	}
	return t, nil
}

func addTotals(t *repositories.Totals, status string, total float64) {
	t.Total++
	if status == models.StatusCancelled {
		t.Cancelled++
		return
	}
	t.Active++
	t.Revenue += total
}

func sortRoomBookings(list []models.RoomBooking) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CheckIn.Equal(list[j].CheckIn) {
			return list[i].CheckIn.Before(list[j].CheckIn)
		}
		return list[i].ID < list[j].ID
	})
}

func sortServiceBookings(list []models.ServiceBooking) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].StartTime.Equal(list[j].StartTime) {
			return list[i].StartTime.Before(list[j].StartTime)
		}
		return list[i].ID < list[j].ID
	})
}

// --- PaymentRepository ---

type memPayments struct{ *memStore }

func (r memPayments) Transaction(ctx context.Context, fn func(tx repositories.PaymentRepository) error) error {
	if err := r.enter("PaymentTransaction"); err != nil {
		return err
	}
	r.mu.Unlock()
	return r.inTx(func() error { return fn(r) })
}

func (r memPayments) Bookings() repositories.BookingRepository {
	return memBookings{r.memStore}
}

func (r memPayments) CreatePayment(_ context.Context, p *models.Payment) error {
	if err := r.enter("CreatePayment"); err != nil {
		return err
	}
	defer r.mu.Unlock()
	p.ID = r.id()
	r.payments[p.ID] = *p
	return nil
}

func (r memPayments) FindPayment(_ context.Context, id uint, _ bool) (*models.Payment, error) {
	if err := r.enter("FindPayment"); err != nil {
		return nil, err
	}
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (r memPayments) UpdatePayment(_ context.Context, p *models.Payment) error {
	if err := r.enter("UpdatePayment"); err != nil {
		return err
	}
	defer r.mu.Unlock()
	r.payments[p.ID] = *p
	return nil
}

func (r memPayments) PaymentsForRoomBooking(_ context.Context, bookingID uint) ([]models.Payment, error) {
	return r.paymentsWhere(func(p models.Payment) bool { return p.RoomBookingID != nil && *p.RoomBookingID == bookingID })
}

func (r memPayments) PaymentsForServiceBooking(_ context.Context, bookingID uint) ([]models.Payment, error) {
	return r.paymentsWhere(func(p models.Payment) bool { return p.ServiceBookingID != nil && *p.ServiceBookingID == bookingID })
}

func (r memPayments) paymentsWhere(match func(models.Payment) bool) ([]models.Payment, error) {
	if err := r.enter("ListPayments"); err != nil {
		return nil, err
	}
	defer r.mu.Unlock()
	var out []models.Payment
	for _, p := range r.payments {
		if match(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- ResourceRepository ---

func (m *memStore) ListRooms(_ context.Context, onlyAvailable bool) ([]models.Room, error) {
	if err := m.enter("ListRooms"); err != nil {
		return nil, err
	}
	defer m.mu.Unlock()
	var out []models.Room
	for _, r := range m.rooms {
		if !onlyAvailable || r.IsAvailable {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) FindRoom(_ context.Context, id uint) (*models.Room, error) {
	if err := m.enter("FindRoom"); err != nil {
		return nil, err
	}
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &r, nil
}

func (m *memStore) CreateRoom(_ context.Context, room *models.Room) error {
	if err := m.enter("CreateRoom"); err != nil {
		return err
	}
	defer m.mu.Unlock()
	room.ID = m.id()
	m.rooms[room.ID] = *room
	return nil
}

func (m *memStore) SaveRoom(_ context.Context, room *models.Room) error {
	if err := m.enter("SaveRoom"); err != nil {
		return err
	}
	defer m.mu.Unlock()
	m.rooms[room.ID] = *room
	return nil
}

func (m *memStore) ListServices(_ context.Context, onlyAvailable bool) ([]models.Service, error) {
	if err := m.enter("ListServices"); err != nil {
		return nil, err
	}
	defer m.mu.Unlock()
	var out []models.Service
	for _, s := range m.services {
		if !onlyAvailable || s.IsAvailable {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) FindService(_ context.Context, id uint) (*models.Service, error) {
	if err := m.enter("FindService"); err != nil {
		return nil, err
	}
	defer m.mu.Unlock()
	s, ok := m.services[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &s, nil
}

func (m *memStore) CreateService(_ context.Context, svc *models.Service) error {
	if err := m.enter("CreateService"); err != nil {
		return err
	}
	defer m.mu.Unlock()
	svc.ID = m.id()
	m.services[svc.ID] = *svc
	return nil
}

func (m *memStore) SaveService(_ context.Context, svc *models.Service) error {
	if err := m.enter("SaveService"); err != nil {
		return err
	}
	defer m.mu.Unlock()
	m.services[svc.ID] = *svc
	return nil
}

// --- GuestRepository ---

func (m *memStore) FindGuest(_ context.Context, id uint) (*models.Guest, error) {
	if err := m.enter("FindGuest"); err != nil {
		return nil, err
	}
	defer m.mu.Unlock()
	g, ok := m.guests[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &g, nil
}

func (m *memStore) FindGuestByExternalID(_ context.Context, externalID string) (*models.Guest, error) {
	if err := m.enter("FindGuestByExternalID"); err != nil {
		return nil, err
	}
	defer m.mu.Unlock()
	for _, g := range m.guests {
		if g.ExternalID == externalID {
			return &g, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memStore) UpsertGuest(_ context.Context, g *models.Guest) error {
	if err := m.enter("UpsertGuest"); err != nil {
		return err
	}
	defer m.mu.Unlock()
	for id, existing := range m.guests {
		if existing.ExternalID == g.ExternalID {
			g.ID = id
			break
		}
	}
	if g.ID == 0 {
		g.ID = m.id()
	}
	m.guests[g.ID] = *g
	return nil
}

// --- AdminRepository ---

func (m *memStore) ListAdmins(context.Context) ([]models.Admin, error) {
	if err := m.enter("ListAdmins"); err != nil {
		return nil, err
	}
	defer m.mu.Unlock()
	var out []models.Admin
	for _, a := range m.admins {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) FindAdmin(_ context.Context, id uint) (*models.Admin, error) {
	if err := m.enter("FindAdmin"); err != nil {
		return nil, err
	}
	defer m.mu.Unlock()
	a, ok := m.admins[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &a, nil
}

func (m *memStore) FindAdminByUsername(_ context.Context, username string) (*models.Admin, error) {
	if err := m.enter("FindAdminByUsername"); err != nil {
		return nil, err
	}
	defer m.mu.Unlock()
	for _, a := range m.admins {
		if a.Username == username {
			return &a, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memStore) CreateAdmin(_ context.Context, a *models.Admin) error {
	if err := m.enter("CreateAdmin"); err != nil {
		return err
	}
	defer m.mu.Unlock()
	for _, existing := range m.admins {
		if existing.Username == a.Username {
			return repositories.ErrDuplicate
		}
	}
	a.ID = m.id()
	for i := range a.Permissions {
		a.Permissions[i].AdminID = a.ID
	}
	m.admins[a.ID] = *a
	return nil
}

func (m *memStore) DeleteAdmin(_ context.Context, id uint) error {
	if err := m.enter("DeleteAdmin"); err != nil {
		return err
	}
	defer m.mu.Unlock()
	if _, ok := m.admins[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.admins, id)
	return nil
}

func (m *memStore) SetPermissions(_ context.Context, adminID uint, permissions []string) error {
	if err := m.enter("SetPermissions"); err != nil {
		return err
	}
	defer m.mu.Unlock()
	a, ok := m.admins[adminID]
	if !ok {
		return repositories.ErrNotFound
	}
	a.Permissions = nil
	for _, p := range permissions {
		a.Permissions = append(a.Permissions, models.AdminPermission{AdminID: adminID, Permission: p})
	}
	m.admins[adminID] = a
	return nil
}

// --- SettingsRepository ---

func (m *memStore) GetSettings(context.Context) (*models.ResortSetting, error) {
	if err := m.enter("GetSettings"); err != nil {
		return nil, err
	}
	defer m.mu.Unlock()
	if m.settings == nil {
		return nil, repositories.ErrNotFound
	}
	s := *m.settings
	return &s, nil
}

func (m *memStore) SaveSettings(_ context.Context, s *models.ResortSetting) error {
	if err := m.enter("SaveSettings"); err != nil {
		return err
	}
	defer m.mu.Unlock()
	s.ID = models.ResortSettingID
	cp := *s
	m.settings = &cp
	return nil
}

// --- events ---

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}

// --- ReviewRepository ---

func (m *memStore) CreateReview(_ context.Context, r *models.Review) error {
	if err := m.enter("CreateReview"); err != nil {
		return err
	}
	defer m.mu.Unlock()
	r.ID = m.id()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	m.reviews[r.ID] = *r
	return nil
}

func (m *memStore) RoomReviews(_ context.Context, roomID uint) ([]models.Review, error) {
	if err := m.enter("RoomReviews"); err != nil {
		return nil, err
	}
	defer m.mu.Unlock()
	var out []models.Review
	for _, r := range m.reviews {
		if r.RoomID == roomID {
			r.Guest = m.guests[r.GuestID]
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *memStore) addReview(r models.Review) models.Review {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == 0 {
		r.ID = m.id()
	}
	m.reviews[r.ID] = r
	return r
}

// --- fixtures ---

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func at(date, clock string) time.Time {
	t, err := time.Parse(time.DateOnly+" 15:04", date+" "+clock)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr[T any](v T) *T { return &v }
