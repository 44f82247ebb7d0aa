package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-logr/logr"
	"github.com/google/uuid"
)

const (
	headerRequestID = "X-Request-Id"
)

// requestID tags each request with an ID, either the one the
// client sent or a new one, so that chi's request logger as
// well as the request's logr.Logger include it.
func (h *handler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			ctx = r.Context()
			id  = r.Header.Get(headerRequestID)
		)

		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(headerRequestID, id)

		log, err := logr.FromContext(ctx)
		if err != nil {
			log = h.log
		}

		ctx = context.WithValue(ctx, middleware.RequestIDKey, id)
		ctx = logr.NewContext(ctx, log.WithValues("requestID", id))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// logPrinter lets chi's middleware.DefaultLogFormatter write through a logr.Logger.
type logPrinter struct {
	log logr.Logger
}

var _ middleware.LoggerInterface = &logPrinter{}

func (p *logPrinter) Print(v ...interface{}) {
	p.log.Info(strings.TrimSpace(fmt.Sprint(v...)))
}
