package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lodging-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Users    *handlers.UsersHandler
	Tickets  *handlers.TicketsHandler
	Payments *handlers.PaymentsHandler
	Hotels   *handlers.HotelsHandler
	Booking  *handlers.BookingHandler
	// Authenticate guards every route outside /health and /auth.
	Authenticate fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/sign-up", cfg.Users.SignUp)
	authGroup.Post("/sign-in", cfg.Users.SignIn)

	tickets := app.Group("/tickets", cfg.Authenticate)
	tickets.Get("/types", cfg.Tickets.ListTypes)
	tickets.Get("/", cfg.Tickets.GetTicket)
	tickets.Post("/", cfg.Tickets.CreateTicket)

	payments := app.Group("/payments", cfg.Authenticate)
	payments.Get("/", cfg.Payments.GetPayment)
	payments.Post("/process", cfg.Payments.ProcessPayment)

	hotels := app.Group("/hotels", cfg.Authenticate)
	hotels.Get("/", cfg.Hotels.ListHotels)
	hotels.Get("/:hotelId", cfg.Hotels.ListRooms)

	booking := app.Group("/booking", cfg.Authenticate)
	booking.Get("/", cfg.Booking.GetBooking)
	booking.Post("/", cfg.Booking.CreateBooking)
	booking.Put("/:bookingId", cfg.Booking.UpdateBooking)
}
