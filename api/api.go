package api

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/career-compass-api/utils/response"
	"go.uber.org/zap"
)

// shutdownTimeout bounds how long in-flight requests may take after a stop signal
const shutdownTimeout = 10 * time.Second

type APIServer struct {
	app           *fiber.App
	listenAddress string
	log           *zap.Logger
}

func NewAPIServer(listenAddress string, log *zap.Logger) *APIServer {
	if log == nil {
		log = zap.NewNop()
	}
	return &APIServer{
		app:           fiber.New(Config()),
		listenAddress: listenAddress,
		log:           log,
	}
}

// Config is the fiber configuration used by the server and by handler tests
func Config() fiber.Config {
	return fiber.Config{
		AppName:      "Career Compass API",
		BodyLimit:    2 * 1024 * 1024,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		ErrorHandler: errorHandler,
	}
}

// errorHandler renders errors that escape handlers, such as unknown routes, in the
// standard response envelope
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusNotFound:
			return response.NotFound(c, "Route not found")
		case fiber.StatusMethodNotAllowed:
			return response.Error(c, fe.Code, fe.Message, "METHOD_NOT_ALLOWED")
		case fiber.StatusRequestEntityTooLarge:
			return response.Error(c, fe.Code, "Request body too large", "PAYLOAD_TOO_LARGE")
		}
		return response.Error(c, fe.Code, fe.Message, "ERROR")
	}
	return response.InternalServerError(c, "")
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *APIServer) Run(ctx context.Context) error {
	s.log.Info("starting API server", zap.String("address", s.listenAddress))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(s.listenAddress)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.log.Info("shutting down API server")
		return s.app.ShutdownWithTimeout(shutdownTimeout)
	}
}
