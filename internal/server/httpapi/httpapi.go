// Package httpapi exposes the contact book over HTTP. It owns the router,
// the authentication middleware, the request/response DTOs, and the mapping
// from service errors to status codes. Handlers stay thin: decode,
// validate, call the service, encode.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/contactbook/internal/logging"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/contactbook/internal/server/services"
)

// UserService is the slice of the user service the HTTP layer needs.
type UserService interface {
	Register(ctx context.Context, username, password, name string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, string, error)
	Resolve(ctx context.Context, token string) (*models.User, error)
	Logout(ctx context.Context, user *models.User) error
	UpdateProfile(ctx context.Context, user *models.User, name, password *string) (*models.User, error)
}

// ContactService is the slice of the contact service the HTTP layer needs.
type ContactService interface {
	Create(ctx context.Context, user *models.User, fields services.ContactFields) (*models.Contact, error)
	Get(ctx context.Context, user *models.User, id int64) (*models.Contact, error)
	Update(ctx context.Context, user *models.User, id int64, fields services.ContactFields) (*models.Contact, error)
	Delete(ctx context.Context, user *models.User, id int64) error
	Search(ctx context.Context, user *models.User, filter contacts.SearchFilter, page, size int) ([]*models.Contact, *services.Paging, error)
}

// AddressService is the slice of the address service the HTTP layer needs.
type AddressService interface {
	Create(ctx context.Context, user *models.User, contactID int64, fields services.AddressFields) (*models.Address, error)
	Get(ctx context.Context, user *models.User, contactID, addressID int64) (*models.Address, error)
	Update(ctx context.Context, user *models.User, contactID, addressID int64, fields services.AddressFields) (*models.Address, error)
	Delete(ctx context.Context, user *models.User, contactID, addressID int64) error
	List(ctx context.Context, user *models.User, contactID int64) ([]*models.Address, error)
}

// Pinger reports database liveness for the health endpoint.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	logger    logging.Logger
	users     UserService
	contacts  ContactService
	addresses AddressService
	db        Pinger
}

// NewHandler constructs a Handler.
func NewHandler(logger logging.Logger, users UserService, contacts ContactService, addresses AddressService, db Pinger) *Handler {
	return &Handler{
		logger:    logger,
		users:     users,
		contacts:  contacts,
		addresses: addresses,
		db:        db,
	}
}

// Router builds the chi router with all API routes. Extra middleware (such
// as metrics collection) is applied to every route.
func (h *Handler) Router(extra ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	for _, mw := range extra {
		r.Use(mw)
	}

	r.Get("/healthz", h.Healthz)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", h.Register)
		r.Post("/users/login", h.Login)

		// everything below requires a resolved user
		r.Group(func(r chi.Router) {
			r.Use(h.Authenticate)

			r.Route("/users/current", func(r chi.Router) {
				r.Get("/", h.CurrentUser)
				r.Patch("/", h.UpdateProfile)
				r.Delete("/", h.Logout)
			})

			r.Route("/contacts", func(r chi.Router) {
				r.Post("/", h.CreateContact)
				r.Get("/", h.SearchContacts)

				r.Route("/{contactId}", func(r chi.Router) {
					r.Get("/", h.GetContact)
					r.Put("/", h.UpdateContact)
					r.Delete("/", h.DeleteContact)

					r.Route("/addresses", func(r chi.Router) {
						r.Post("/", h.CreateAddress)
						r.Get("/", h.ListAddresses)
						r.Get("/{addressId}", h.GetAddress)
						r.Put("/{addressId}", h.UpdateAddress)
						r.Delete("/{addressId}", h.DeleteAddress)
					})
				})
			})
		})
	})

	return r
}

// Healthz reports liveness, including a database round-trip.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		h.logger.Error(r.Context(), "health check failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeData(w, http.StatusOK, "OK")
}
