package web

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/avstrong/hotel/internal/booking"
	"github.com/avstrong/hotel/internal/logger"
	"github.com/avstrong/hotel/internal/staff"
)

type Server struct {
	srv      *http.Server
	router   *http.ServeMux
	l        *logger.Logger
	conf     Conf
	bManager *booking.Manager
	staff    *staff.Authenticator
	now      func() time.Time
}

type Conf struct {
	L                 *logger.Logger
	ServerLogger      *log.Logger
	Host              string
	Port              string
	ReadHeaderTimeout time.Duration
	LivenessEndpoint  string
	StaticDir         string
	CORSOrigins       []string
}

func New(ctx context.Context, conf Conf, bookingManager *booking.Manager, staff *staff.Authenticator) (*Server, error) {
	mux := http.NewServeMux()

	corsHandler := cors.New(cors.Options{ //nolint:exhaustruct
		AllowedOrigins: conf.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", idempotencyKeyHeader, requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	})

	//nolint:exhaustruct
	srv := &http.Server{
		Addr:              net.JoinHostPort(conf.Host, conf.Port),
		ReadHeaderTimeout: conf.ReadHeaderTimeout,
		ErrorLog:          conf.ServerLogger,
		Handler:           corsHandler.Handler(mux),
		BaseContext: func(listener net.Listener) context.Context {
			return ctx
		},
	}

	server := &Server{
		srv:      srv,
		router:   mux,
		l:        conf.L.Named("web"),
		conf:     conf,
		bManager: bookingManager,
		staff:    staff,
		now:      time.Now,
	}

	server.addRoutes(mux)

	return server, nil
}

func (s *Server) Srv() *http.Server {
	return s.srv
}
