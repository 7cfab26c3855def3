package http

import (
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/lodging-service/internal/api/http/handlers"
	"github.com/spec-kit/lodging-service/internal/auth"
	"github.com/spec-kit/lodging-service/internal/domain"
	"github.com/spec-kit/lodging-service/internal/observability"
	"github.com/spec-kit/lodging-service/internal/service"
	apperrors "github.com/spec-kit/lodging-service/pkg/util/errorutil"
)

type sessionStore map[string]int64

func (s sessionStore) Create(context.Context, *domain.Session) error { return nil }

func (s sessionStore) GetByToken(_ context.Context, token string) (*domain.Session, error) {
	userID, ok := s[token]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &domain.Session{UserID: userID, Token: token}, nil
}

type stubBooking struct {
	createdRoomID int64
	updated       [2]int64
	createErr     error
}

func (s *stubBooking) GetBooking(_ context.Context, userID int64) (*domain.Booking, error) {
	if userID != 7 {
		return nil, apperrors.NewNotFound("booking", nil)
	}
	return &domain.Booking{ID: 11, UserID: 7, RoomID: 3, Room: &domain.Room{ID: 3, Name: "101", Capacity: 2, HotelID: 1}}, nil
}

func (s *stubBooking) CreateBooking(_ context.Context, _ int64, roomID int64) (*domain.Booking, error) {
	s.createdRoomID = roomID
	if s.createErr != nil {
		return nil, s.createErr
	}
	if roomID <= 0 {
		return nil, apperrors.NewForbidden("invalid room id")
	}
	return &domain.Booking{ID: 42, RoomID: roomID}, nil
}

func (s *stubBooking) UpdateBooking(_ context.Context, _ int64, roomID, bookingID int64) (*domain.Booking, error) {
	s.updated = [2]int64{roomID, bookingID}
	return &domain.Booking{ID: bookingID, RoomID: roomID}, nil
}

type stubHotels struct{}

func (stubHotels) ListHotels(context.Context, int64) ([]domain.Hotel, error) {
	return nil, apperrors.NewPaymentRequired("ticket not paid")
}

func (stubHotels) ListRooms(_ context.Context, hotelID, _ int64) (*domain.Hotel, error) {
	return &domain.Hotel{ID: hotelID, Name: "Seaside", Rooms: []domain.Room{{ID: 1, Capacity: 3, Occupancy: 1}}}, nil
}

type stubTickets struct{}

func (stubTickets) ListTicketTypes(context.Context) ([]domain.TicketType, error) {
	return []domain.TicketType{{ID: 1, Name: "in person", Price: 250, IncludesHotel: true}}, nil
}

func (stubTickets) GetTicket(context.Context, int64) (*domain.Ticket, error) {
	return nil, apperrors.NewNotFound("ticket", nil)
}

func (stubTickets) CreateTicket(_ context.Context, _ int64, ticketTypeID int64) (*domain.Ticket, error) {
	return &domain.Ticket{ID: 5, TicketTypeID: ticketTypeID, Status: domain.TicketStatusReserved}, nil
}

type stubPayments struct{}

func (stubPayments) GetPayment(_ context.Context, ticketID, _ int64) (*domain.Payment, error) {
	return &domain.Payment{ID: 1, TicketID: ticketID, Value: 250}, nil
}

func (stubPayments) ProcessPayment(_ context.Context, _ int64, input service.ProcessPaymentInput) (*domain.Payment, error) {
	return &domain.Payment{ID: 2, TicketID: input.TicketID, CardLastDigits: input.Card.LastDigits()}, nil
}

type stubAuth struct{}

func (stubAuth) RegisterUser(_ context.Context, email, _ string) (*domain.User, error) {
	return &domain.User{ID: 9, Email: email}, nil
}

func (stubAuth) SignIn(context.Context, string, string) (*domain.User, *domain.Token, error) {
	return nil, nil, apperrors.NewUnauthorized("invalid credentials")
}

type testServer struct {
	app     *fiber.App
	token   string
	booking *stubBooking
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	tokens := auth.NewTokenManager("test-secret", 5)
	token, _, err := tokens.GenerateToken(7)
	require.NoError(t, err)

	booking := &stubBooking{}
	metrics := observability.NewMetrics()
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), metrics, 0)
	RegisterRoutes(app, RouteConfig{
		Health:       handlers.NewHealthHandler("lodging-service", "test", nil, metrics),
		Users:        handlers.NewUsersHandler(stubAuth{}),
		Tickets:      handlers.NewTicketsHandler(stubTickets{}),
		Payments:     handlers.NewPaymentsHandler(stubPayments{}),
		Hotels:       handlers.NewHotelsHandler(stubHotels{}),
		Booking:      handlers.NewBookingHandler(booking),
		Authenticate: auth.NewAuthMiddleware(tokens, sessionStore{token: 7}).Handle,
	})
	return &testServer{app: app, token: token, booking: booking}
}

func (s *testServer) do(t *testing.T, method, path, body string) (*nethttp.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	decoded := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func TestCreateBookingReturnsBookingID(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, nethttp.MethodPost, "/booking", `{"roomId": 3}`)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(42), body["bookingId"])
	assert.Equal(t, int64(3), s.booking.createdRoomID)
}

func TestCreateBookingAcceptsNumericStringRoom(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, nethttp.MethodPost, "/booking", `{"roomId": "5"}`)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(42), body["bookingId"])
	assert.Equal(t, int64(5), s.booking.createdRoomID)
}

func TestCreateBookingMissingRoomIsForbidden(t *testing.T) {
	for _, payload := range []string{"", `{}`, `{"roomId": "abc"}`, `{"roomId": null}`, `{"roomId": -1}`} {
		s := newTestServer(t)

		resp, body := s.do(t, nethttp.MethodPost, "/booking", payload)
		assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode, payload)
		assert.Equal(t, "FORBIDDEN", body["error"].(map[string]any)["code"])
		assert.LessOrEqual(t, s.booking.createdRoomID, int64(0))
	}
}

func TestUpdateBookingPassesPathAndBody(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, nethttp.MethodPut, "/booking/11", `{"roomId": 4}`)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(11), body["bookingId"])
	assert.Equal(t, [2]int64{4, 11}, s.booking.updated)
}

func TestGetBookingIncludesRoom(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, nethttp.MethodGet, "/booking", "")
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(11), body["id"])
	room := body["Room"].(map[string]any)
	assert.Equal(t, "101", room["name"])
}

func TestErrorKindsMapToStatusCodes(t *testing.T) {
	s := newTestServer(t)

	resp, _ := s.do(t, nethttp.MethodGet, "/hotels", "")
	assert.Equal(t, nethttp.StatusPaymentRequired, resp.StatusCode)

	resp, _ = s.do(t, nethttp.MethodGet, "/tickets", "")
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)

	resp, _ = s.do(t, nethttp.MethodPost, "/auth/sign-in", `{"email":"a@b.co","password":"x"}`)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)

	s.booking.createErr = apperrors.NewConflict("duplicate", nil)
	resp, _ = s.do(t, nethttp.MethodPost, "/booking", `{"roomId": 3}`)
	assert.Equal(t, nethttp.StatusConflict, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)
	s.token = "not-a-token"

	resp, body := s.do(t, nethttp.MethodGet, "/booking", "")
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", body["error"].(map[string]any)["code"])
}

func TestHotelRoomsAndUnknownHotel(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, nethttp.MethodGet, "/hotels/2", "")
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["id"])
	assert.Len(t, body["Rooms"], 1)

	for _, path := range []string{"/hotels/abc", "/hotels/0", "/hotels/-4"} {
		resp, body = s.do(t, nethttp.MethodGet, path, "")
		assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode, path)
		assert.Equal(t, "NOT_FOUND", body["error"].(map[string]any)["code"], path)
	}
}

func TestRequestValidation(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, nethttp.MethodPost, "/auth/sign-up", `{"email":"nope","password":"secret-pass"}`)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	details := body["error"].(map[string]any)["details"].(map[string]any)
	assert.Contains(t, details, "email")

	resp, _ = s.do(t, nethttp.MethodPost, "/auth/sign-up", `{"email":"guest@example.com","password":"secret-pass"}`)
	assert.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	resp, _ = s.do(t, nethttp.MethodPost, "/tickets", `{"ticketTypeId": 0}`)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)

	resp, body = s.do(t, nethttp.MethodPost, "/tickets", `{"ticketTypeId": 1}`)
	assert.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	assert.Equal(t, "RESERVED", body["status"])

	resp, _ = s.do(t, nethttp.MethodGet, "/payments", "")
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
}

func TestProcessPayment(t *testing.T) {
	s := newTestServer(t)

	payload := `{"ticketId": 5, "cardData": {"issuer": "VISA", "number": "4111111111111234", "name": "Guest", "expirationDate": "12/30", "cvv": "123"}}`
	resp, body := s.do(t, nethttp.MethodPost, "/payments/process", payload)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "1234", body["cardLastDigits"])

	resp, _ = s.do(t, nethttp.MethodPost, "/payments/process", `{"ticketId": 5, "cardData": {"issuer": "VISA"}}`)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
}

func TestHealthAndUnknownRoutes(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, nethttp.MethodGet, "/health/ready", "")
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "ready", body["status"])

	resp, _ = s.do(t, nethttp.MethodGet, "/nowhere", "")
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
}
