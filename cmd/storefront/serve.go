package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"storefront/internal/auth"
	"storefront/internal/client"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/handlers"
	"storefront/internal/notify"
	"storefront/internal/repo"
	"storefront/internal/storefront"
	"storefront/internal/web"
)

const sessionTTL = 24 * time.Hour

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "run the HTTP API and the shop pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			database, err := db.NewPostgresDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			return serve(ctx, cfg, database)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, database *sqlx.DB) error {
	notifier, err := newNotifier(ctx, cfg)
	if err != nil {
		return err
	}

	router, err := setupRouter(cfg, database, notifier)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Println("Server shutdown complete")
	return nil
}

func setupRouter(cfg *config.Config, database *sqlx.DB, notifier notify.Notifier) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	users := repo.NewUserRepo(database)
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(handlers.ErrorResponder())
	router.Use(auth.Middleware(tokens, users))

	api := handlers.NewAPI(
		repo.NewOrderRepo(database),
		repo.NewProductRepo(database),
		repo.NewCategoryRepo(database),
		repo.NewShippingRepo(database),
		users,
		tokens,
		notifier,
	)
	api.Register(router.Group("/api"))

	apiClient := client.New(cfg.APIBaseURL, client.DefaultTimeout)
	sessions := storefront.NewSessions(func(sessionID, token string) storefront.API {
		return apiClient.WithCredentials(sessionID, token)
	}, sessionTTL)
	go sweepSessions(sessions)

	if err := web.NewHandler(sessions).Register(router); err != nil {
		return nil, err
	}
	return router, nil
}

func sweepSessions(sessions *storefront.Sessions) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		if n := sessions.Sweep(); n > 0 {
			log.Printf("Dropped %d idle sessions", n)
		}
	}
}

// newNotifier starts the Telegram notifier when a bot token is configured.
func newNotifier(ctx context.Context, cfg *config.Config) (notify.Notifier, error) {
	if cfg.BotToken == "" {
		log.Printf("BOT_TOKEN not set, status notifications disabled")
		return notify.Nop{}, nil
	}
	if cfg.NotifyChatID == 0 {
		return nil, errors.New("NOTIFY_CHAT_ID is required with BOT_TOKEN")
	}

	telegram, err := notify.NewTelegram(cfg.BotToken, cfg.NotifyChatID)
	if err != nil {
		return nil, err
	}
	go telegram.Run(ctx)
	return telegram, nil
}
