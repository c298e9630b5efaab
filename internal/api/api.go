package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"github.com/skybi/rendezvous/internal/activity"
	"github.com/skybi/rendezvous/internal/api/schema"
	"github.com/skybi/rendezvous/internal/config"
	"github.com/skybi/rendezvous/internal/function"
	"github.com/skybi/rendezvous/internal/message"
	"github.com/skybi/rendezvous/internal/photo"
	"github.com/skybi/rendezvous/internal/reference"
	"github.com/skybi/rendezvous/internal/storage"
	"github.com/skybi/rendezvous/internal/user"
)

// Service represents the HTTP API service
type Service struct {
	server *http.Server

	Config *config.Config

	Storage storage.Driver

	// Reference serves the reference data; it usually is a caching decorator around the storage driver's store
	Reference reference.Repository

	// Activity records the last activity of calling users if set
	Activity *activity.Tracker

	users    *user.Service
	messages *message.Service
	photos   *photo.Service

	writer *schema.Writer
}

// Handler builds the HTTP handler serving all API endpoints
func (service *Service) Handler() http.Handler {
	// Create the HTTP schema writer
	service.writer = &schema.Writer{
		InternalErrorHook: func(err error) {
			log.Error().Err(err).Msg("the API experienced an unexpected error")
		},
	}

	// Create the domain services
	service.users = &user.Service{
		Users: service.Storage.Users(),
		Likes: service.Storage.Likes(),
	}
	service.messages = &message.Service{
		Messages: service.Storage.Messages(),
		Users:    service.Storage.Users(),
	}
	service.photos = &photo.Service{
		Store: service.Storage.Photos(),
	}
	if service.Reference == nil {
		service.Reference = reference.NewRepository(service.Storage.Reference())
	}

	// Create the HTTP router
	router := chi.NewRouter()
	router.Use(middleware.RedirectSlashes)
	router.Use(service.MiddlewareLogRequest)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{service.Config.AllowedOrigin},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{schema.PaginationHeader},
		AllowCredentials: true,
	}))
	router.NotFound(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
	})
	router.MethodNotAllowed(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteErrors(writer, http.StatusMethodNotAllowed, schema.ErrMethodNotAllowed)
	})

	authenticated := func(end http.HandlerFunc) http.HandlerFunc {
		return function.Nest(end, service.MiddlewareIdentifyCaller, service.MiddlewareTrackActivity)
	}

	// Register the user controller endpoints
	router.Get("/v1/users", authenticated(service.EndpointSearchUsers))
	router.Get("/v1/users/{userId}", authenticated(service.EndpointGetUser))
	router.Put("/v1/users/{userId}", authenticated(service.EndpointUpdateUser))
	router.Post("/v1/users/{userId}/like/{recipientId}", authenticated(service.EndpointLikeUser))

	// Register the message controller endpoints
	router.Get("/v1/users/{userId}/messages", authenticated(service.EndpointGetMessages))
	router.Post("/v1/users/{userId}/messages", authenticated(service.EndpointCreateMessage))
	router.Get("/v1/users/{userId}/messages/{id}", authenticated(service.EndpointGetMessage))
	router.Get("/v1/users/{userId}/messages/thread/{recipientId}", authenticated(service.EndpointGetMessageThread))

	// Register the photo controller endpoints
	router.Post("/v1/users/{userId}/photos", authenticated(service.EndpointAddPhoto))
	router.Get("/v1/users/{userId}/photos/{id}", authenticated(service.EndpointGetPhoto))
	router.Post("/v1/users/{userId}/photos/{id}/main", authenticated(service.EndpointSetMainPhoto))
	router.Delete("/v1/users/{userId}/photos/{id}", authenticated(service.EndpointDeletePhoto))

	// Register the reference data endpoints; they do not require a caller identity
	router.Get("/v1/regions", service.EndpointGetRegions)
	router.Get("/v1/regions/{id}", service.EndpointGetRegion)
	router.Get("/v1/regions/{id}/cities", service.EndpointGetRegionCities)
	router.Get("/v1/cities", service.EndpointGetCities)
	router.Get("/v1/cities/{id}", service.EndpointGetCity)
	router.Get("/v1/genders", service.EndpointGetGenders)
	router.Get("/v1/genders/{id}", service.EndpointGetGender)
	router.Get("/v1/statuses", service.EndpointGetStatuses)
	router.Get("/v1/statuses/{id}", service.EndpointGetStatus)

	return router
}

// Startup starts up the API; unexpected server errors are sent to errs
func (service *Service) Startup(errs chan<- error) {
	server := &http.Server{
		Addr:    service.Config.ListenAddress,
		Handler: service.Handler(),
	}
	service.server = server
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()
}

// Shutdown shuts down the API
func (service *Service) Shutdown() {
	if service.server != nil {
		service.server.Close()
		service.server = nil
	}
}
