// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/peerwallet/peerwallet/internal/accountdelivery"
	"github.com/peerwallet/peerwallet/internal/accountrepo"
	"github.com/peerwallet/peerwallet/internal/accountservice"
	"github.com/peerwallet/peerwallet/internal/entrydelivery"
	"github.com/peerwallet/peerwallet/internal/entryrepo"
	"github.com/peerwallet/peerwallet/internal/entryservice"
	"github.com/peerwallet/peerwallet/internal/messagedelivery"
	"github.com/peerwallet/peerwallet/internal/messagerepo"
	"github.com/peerwallet/peerwallet/internal/messageservice"
	"github.com/peerwallet/peerwallet/internal/middleware"
	"github.com/peerwallet/peerwallet/internal/sessiondelivery"
	"github.com/peerwallet/peerwallet/internal/sessionrepo"
	"github.com/peerwallet/peerwallet/internal/sessionservice"
	"github.com/peerwallet/peerwallet/internal/transferdelivery"
	"github.com/peerwallet/peerwallet/internal/transferrepo"
	"github.com/peerwallet/peerwallet/internal/transferservice"
	"github.com/peerwallet/peerwallet/internal/userdelivery"
	"github.com/peerwallet/peerwallet/internal/userrepo"
	"github.com/peerwallet/peerwallet/internal/userservice"
	"github.com/peerwallet/peerwallet/pkg/configpkg"
	"github.com/peerwallet/peerwallet/pkg/eventpkg"
	"github.com/peerwallet/peerwallet/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB        *sql.DB
	Engine    *gin.Engine
	Config    configpkg.Config
	publisher eventpkg.Publisher
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// Close releases the server's long-lived resources: the event
// publisher first, so buffered events get flushed, then the db pool.
func (s *Server) Close() error {
	var errs []error

	if closer, ok := s.publisher.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	entryRepo := entryrepo.NewRepoPGS(conn)
	transferRepo := transferrepo.NewRepoPGS(conn)
	sessionRepo := sessionrepo.NewRepoPGS(conn)
	messageRepo := messagerepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	var publisher eventpkg.Publisher = eventpkg.NoOpPublisher{}
	if config.EventBrokers != "" {
		publisher = eventpkg.NewKafkaPublisher(strings.Split(config.EventBrokers, ","))
	}

	accountService := accountservice.New(accountRepo)
	entryService := entryservice.New(entryRepo)
	transferService := transferservice.New(transferRepo, accountService, publisher)
	userService := userservice.New(userRepo)
	messageService := messageservice.New(messageRepo, userService)

	sessionService, err := sessionservice.New(sessionRepo, config, tokenMaker)
	if err != nil {
		return nil, errors.New("cannot initialize session service")
	}

	userHandler := userdelivery.NewHandler(userService, sessionService)
	accountHandler := accountdelivery.NewHandler(accountService)
	entryHandler := entrydelivery.NewHandler(entryService, accountService)
	transferHandler := transferdelivery.NewHandler(transferService)
	sessionHandler := sessiondelivery.NewHandler(sessionService)
	messageHandler := messagedelivery.NewHandler(messageService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/users", userHandler.Create)
	engine.POST("/users/login", userHandler.Login)
	engine.POST("/sessions", sessionHandler.RenewAccessToken)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(sessionService.TokenMaker))

	authRoutes.GET("/users", userHandler.List)
	authRoutes.GET("/users/me", userHandler.Me)
	authRoutes.PATCH("/users/me", userHandler.Update)

	authRoutes.GET("/accounts/balance", accountHandler.Balance)
	authRoutes.GET("/accounts/:id", accountHandler.Get)

	authRoutes.POST("/transfers", transferHandler.Create)
	authRoutes.POST("/deposits", transferHandler.Deposit)

	authRoutes.GET("/entries", entryHandler.List)
	authRoutes.GET("/entries/inbox", entryHandler.Inbox)

	authRoutes.POST("/messages", messageHandler.Send)
	authRoutes.GET("/messages/inbox", messageHandler.Inbox)
	authRoutes.GET("/messages/:username", messageHandler.Conversation)

	server := &Server{
		DB:        conn,
		Engine:    engine,
		Config:    config,
		publisher: publisher,
	}

	return server, nil
}
