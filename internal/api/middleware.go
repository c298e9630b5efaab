package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/skybi/rendezvous/internal/api/schema"
)

const (
	headerUserID    = "X-User-ID"
	headerRequestID = "X-Request-ID"
)

type contextKey string

const contextValueCallerID contextKey = "caller_id"

// MiddlewareLogRequest logs every request once it was handled.
// The request ID is taken from the 'X-Request-ID' header or generated and echoed back.
func (service *Service) MiddlewareLogRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requestID := request.Header.Get(headerRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		writer.Header().Set(headerRequestID, requestID)

		wrapped := middleware.NewWrapResponseWriter(writer, request.ProtoMajor)
		started := time.Now()
		next.ServeHTTP(wrapped, request)

		log.Debug().
			Str("request_id", requestID).
			Str("method", request.Method).
			Str("path", request.URL.Path).
			Int("status", wrapped.Status()).
			Int("bytes", wrapped.BytesWritten()).
			Dur("duration", time.Since(started)).
			Msg("handled request")
	})
}

// MiddlewareIdentifyCaller makes sure that the authenticating gateway provided the ID of the calling user.
// Additionally, it injects the caller ID into the request context.
func (service *Service) MiddlewareIdentifyCaller(next http.HandlerFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		callerID, err := strconv.ParseInt(request.Header.Get(headerUserID), 10, 64)
		if err != nil || callerID < 1 {
			service.writer.WriteErrors(writer, http.StatusUnauthorized, schema.ErrUnauthorized)
			return
		}

		request = request.WithContext(context.WithValue(request.Context(), contextValueCallerID, callerID))
		next(writer, request)
	}
}

// MiddlewareTrackActivity records the activity of the calling user
func (service *Service) MiddlewareTrackActivity(next http.HandlerFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		if service.Activity != nil {
			service.Activity.Touch(callerID(request))
		}
		next(writer, request)
	}
}

func callerID(request *http.Request) int64 {
	id, _ := request.Context().Value(contextValueCallerID).(int64)
	return id
}
