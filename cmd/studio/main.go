package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/edukita/educbt-studio/internal/api/http"
	auth "github.com/edukita/educbt-studio/internal/auth/middleware"
	"github.com/edukita/educbt-studio/internal/bank"
	"github.com/edukita/educbt-studio/internal/config"
	"github.com/edukita/educbt-studio/internal/db"
	"github.com/edukita/educbt-studio/internal/genai"
	"github.com/edukita/educbt-studio/internal/storage"
	syncx "github.com/edukita/educbt-studio/internal/sync"
)

func main() {
	cfg := config.FromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := bank.NewSQLStore(dbh, cfg.DBDriver)
	events := syncx.NewEventRepo(dbh)

	gemCfg := genai.DefaultConfig()
	gem := genai.NewClient(gemCfg)
	svc := genai.NewService(gem)

	secret := getenvOr("AUTH_HMAC_SECRET", "supersecret-dev-key")
	authSvc := auth.NewAuthService(secret, cfg.AdminUser, cfg.AdminPassHash)

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/api/auth/login", auth.LoginHandler(authSvc))

	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.Route("/api/assets", func(ar chi.Router) {
			api.MountAssets(ar, bs)
		})

		pr.Get("/api/workspaces", api.ListWorkspacesHandler(store))
		pr.Route("/api/workspaces/{workspaceID}", func(wr chi.Router) {
			wr.Get("/questions", api.GetQuestionsHandler(store))
			wr.Put("/questions", api.PutQuestionsHandler(store))
			wr.Get("/events", api.EventsHandler(events))

			wr.Post("/generate", api.GenerateHandler(store, svc))
			wr.Post("/repair", api.RepairHandler(store, svc))
			wr.Post("/shuffle", api.ShuffleQuestionsHandler(store))
			wr.Post("/reorder", api.ReorderHandler(store))

			wr.Route("/questions/{questionID}", func(qr chi.Router) {
				qr.Delete("/", api.DeleteQuestionHandler(store))
				qr.Post("/regenerate", api.RegenerateHandler(store, svc))
				qr.Post("/retype", api.RetypeHandler(store))
				qr.Post("/shuffle-options", api.ShuffleOptionsHandler(store))
				qr.Post("/trash", api.TrashHandler(store))
				qr.Post("/restore", api.RestoreHandler(store))
				qr.Post("/explanation", api.ExplanationHandler(store, svc))
			})

			wr.Post("/import/json", api.ImportJSONHandler(store))
			wr.Post("/import/xlsx", api.ImportXLSXHandler(store))
			wr.Get("/export/json", api.ExportJSONHandler(store))
			wr.Get("/export/xlsx", api.ExportXLSXHandler(store))
			wr.Get("/export/paper", api.ExportPaperHandler(store))
			wr.Get("/export/blueprint", api.ExportBlueprintHandler(store))
		})

		pr.Post("/api/suggest-level", api.SuggestLevelHandler(svc))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s, gemini=%v)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver, gemCfg.IsEnabled())
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}

func getenvOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
