package main

import (
	"log"

	"gigseat/config"
	"gigseat/internal/handler"
	"gigseat/internal/middleware"
	"gigseat/internal/repository"
	"gigseat/internal/service"
	"gigseat/pkg/database"
	"gigseat/pkg/rabbitmq"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ is optional: without a URL the services simply skip publishing.
	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		var err error
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	eventSvc := service.NewEventService(eventRepo, ticketRepo, publisher)
	bookingSvc := service.NewBookingService(orderRepo, eventRepo, ticketRepo, publisher)
	commentSvc := service.NewCommentService(commentRepo, eventRepo)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "gigseat"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.Static("/uploads", cfg.UploadDir)

	authHandler := handler.NewAuthHandler(authSvc)
	eventHandler := handler.NewEventHandler(eventSvc, cfg.UploadDir)
	bookingHandler := handler.NewBookingHandler(bookingSvc)
	commentHandler := handler.NewCommentHandler(commentSvc)

	authHandler.RegisterRoutes(e.Group("/api/v1/auth"))

	events := e.Group("/api/v1/events")
	eventHandler.RegisterPublicRoutes(events)
	commentHandler.RegisterPublicRoutes(events)
	bookingHandler.RegisterPublicRoutes(e)

	protected := e.Group("/api/v1", middleware.JWTAuth(cfg.JWTSecret))
	eventsProtected := e.Group("/api/v1/events", middleware.JWTAuth(cfg.JWTSecret))
	authHandler.RegisterProtectedRoutes(protected)
	eventHandler.RegisterProtectedRoutes(eventsProtected)
	commentHandler.RegisterProtectedRoutes(eventsProtected)
	bookingHandler.RegisterProtectedRoutes(protected)

	log.Printf("gigseat starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
