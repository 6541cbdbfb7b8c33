package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kohai/gamecredit/internal/adapter/config"
	"github.com/kohai/gamecredit/internal/core/port"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type Router struct {
	*gin.Engine
	logger *zap.Logger
}

func NewRouter(
	auth *config.Auth,
	tokenService port.TokenService,
	orderHandler *OrderHandler,
	catalogHandler *CatalogHandler,
	callbackHandler *CallbackHandler,
	adminHandler *AdminHandler,
	logger *zap.Logger) (*Router, error) {

	router := gin.New()
	base := NewHandler(logger)
	router.Use(gin.Recovery(), base.requestLogger())

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		api.POST("/vendor/callback", callbackHandler.Callback)

		products := api.Group("/products")
		{
			products.GET("", catalogHandler.ListProducts)
			products.GET("/:id/items", catalogHandler.ListProductItems)
		}

		user := api.Group("/user")
		{
			user.Use(base.authCheck(tokenService))
			user.POST("/game-accounts/validate", catalogHandler.ValidateGameAccount)

			orders := user.Group("/orders")
			{
				orders.POST("", orderHandler.CreateOrder)
				orders.GET("", orderHandler.ListOrdersByUser)
				orders.GET("/:number", orderHandler.GetOrder)
				orders.POST("/:number/cancel", orderHandler.CancelOrder)
			}
		}

		admin := api.Group("/admin")
		{
			admin.Use(base.adminCheck(auth.AdminKey))
			admin.POST("/reconcile", adminHandler.Reconcile)
			admin.POST("/orders/:number/complete", adminHandler.CompleteOrder)
			admin.POST("/tokens", adminHandler.IssueToken)
		}
	}

	return &Router{Engine: router, logger: logger}, nil
}

// Serve runs the HTTP server until ctx is done, then shuts it down gracefully.
func (r *Router) Serve(ctx context.Context, listenAddr string) error {
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           r.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("HTTP server started", zap.String("address", listenAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
