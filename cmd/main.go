package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/maxsound/backend/internal/config"
	"github.com/maxsound/backend/internal/delivery"
	ws "github.com/maxsound/backend/internal/delivery/ws"
	"github.com/maxsound/backend/internal/domain"
	"github.com/maxsound/backend/internal/infra"
	"github.com/maxsound/backend/internal/ports"
)

func main() {

	// LOGGER
	zcore, _ := zap.NewProduction()
	zl := logger.NewZapLogger(zcore.Sugar())

	// CONFIG
	cfg, err := config.Load()
	if err != nil {
		panic("config: " + err.Error())
	}

	// POSTGRES
	ctx := context.Background()

	pool, err := infra.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		panic("cannot connect pgxpool: " + err.Error())
	}
	defer pool.Close()

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(ctxPing); err != nil {
		panic("postgres ping failed: " + err.Error())
	}

	if err := infra.InitSchema(ctx, pool); err != nil {
		panic("schema init failed: " + err.Error())
	}

	// REPOS
	trackRepo := infra.NewPostgresTrackRepo(pool)
	ledger := infra.NewPostgresPurchaseLedger(pool)
	pushStore := infra.NewPostgresPushStore(pool)

	// EXTERNAL PROVIDERS
	provider := infra.NewStripeProvider(cfg.StripeSecretKey)

	var mediaHost ports.MediaHost
	if cfg.CloudinaryConfigured() {
		mediaHost, err = infra.NewCloudinaryHost(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			panic("cloudinary init failed: " + err.Error())
		}
	} else {
		log.Println("WARN: Cloudinary credentials not configured; uploads disabled")
	}

	notifier := infra.NewWebPushNotifier(pushStore, cfg.VAPIDSubject, cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey)

	// SERVICES
	checkoutService := domain.NewCheckoutService(trackRepo, ledger, provider, cfg.FrontendURL)
	entitlement := domain.NewEntitlementService(ledger)
	uploadService := domain.NewUploadService(trackRepo, mediaHost, cfg.FrontendURL)

	// WS HUB
	hub := ws.NewHub()

	// NEW-TRACK LISTENER
	go func() {
		for ev := range uploadService.Events() {
			track := ev.Track

			payload, err := json.Marshal(map[string]string{
				"event":   "new_track",
				"trackId": track.ID,
				"title":   track.Title,
				"artist":  track.Artist,
			})
			if err == nil {
				hub.Broadcast(payload)
			}

			ctxNotify, cancelNotify := context.WithTimeout(context.Background(), 30*time.Second)
			if err := notifier.NotifyNewTrack(ctxNotify, &track); err != nil {
				log.Printf("[PUSH][FAIL] track=%s err=%v", track.ID, err)
			}
			cancelNotify()
		}
	}()

	// HANDLERS
	hTracks := delivery.NewTrackHandler(trackRepo, entitlement, zl)
	hCheckout := delivery.NewCheckoutHandler(checkoutService, zl)
	hUploads := delivery.NewUploadHandler(uploadService, zl)
	hPush := delivery.NewPushHandler(pushStore, cfg.VAPIDPublicKey, zl)

	// ROUTER
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))

	delivery.RegisterRoutes(r, hTracks, hCheckout, hUploads, hPush)

	r.Get("/ws", ws.FeedHandler(hub))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "server started",
		Fields:  map[string]any{"port": cfg.Port},
	})

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		zl.Log(logger.LogEntry{
			Level:   "error",
			Message: "server crashed",
			Error:   err,
		})
	}
}
