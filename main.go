package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/vasudha-connect/kinshipbackend/config"
	"github.com/vasudha-connect/kinshipbackend/database"
	"github.com/vasudha-connect/kinshipbackend/handlers"
	"github.com/vasudha-connect/kinshipbackend/media"
	"github.com/vasudha-connect/kinshipbackend/models"
	"github.com/vasudha-connect/kinshipbackend/repository"
	"github.com/vasudha-connect/kinshipbackend/services"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	storagePaths := []string{cfg.AvatarsPath, filepath.Dir(cfg.DatabasePath)}
	for _, p := range storagePaths {
		log.Printf("Ensuring storage directory exists: %s", p)
		if err := os.MkdirAll(p, 0755); err != nil {
			log.Fatalf("FATAL: Failed to create storage directory %s: %v", p, err)
		}
	}

	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatalf("FATAL: Failed to migrate database schema: %v", err)
	}

	mediaSubDirs := map[media.AssetType]string{
		media.AssetTypeAvatar: filepath.Base(cfg.AvatarsPath),
	}
	mediaStore, err := media.NewLocalStorage(cfg.MediaStoragePath, mediaSubDirs)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize media store: %v", err)
	}
	avatarProcessor := media.NewAvatarProcessor(mediaStore, cfg.PublicBaseURL, cfg.AvatarSize)

	personRepo := repository.NewGormPersonRepository(db)
	suggestionRepo := repository.NewGormSuggestionRepository(db)
	adminRepo := repository.NewGormAdminRepository(db)

	if err := bootstrapAdmin(adminRepo, cfg); err != nil {
		log.Fatalf("FATAL: Failed to bootstrap admin account: %v", err)
	}

	personService := services.NewPersonService(personRepo, avatarProcessor)

	log.Printf("Using database: %s", cfg.DatabasePath)
	log.Printf("Storing avatars in: %s", cfg.AvatarsPath)
	log.Printf("Avatar size (square crop): %dpx", cfg.AvatarSize)

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}

	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	personHandler := &handlers.PersonHandler{Service: personService, Repo: personRepo, Avatars: avatarProcessor, Cfg: cfg}
	familyHandler := &handlers.FamilyHandler{Repo: personRepo}
	suggestionHandler := &handlers.SuggestionHandler{Repo: suggestionRepo, PersonRepo: personRepo}
	exportHandler := &handlers.ExportHandler{Repo: personRepo}
	authHandler := handlers.NewAuthHandler(adminRepo, cfg.JWTSecret)

	requireAdmin := func(next http.Handler) http.Handler {
		return handlers.AuthMiddleware(adminRepo, []byte(cfg.JWTSecret), next)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)

		r.Route("/people", func(r chi.Router) {
			r.Get("/", personHandler.ListPeople)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/", personHandler.CreatePerson)
				r.Post("/bulk_delete", personHandler.BulkDeletePeople)
				r.Post("/deceased_status", personHandler.SetDeceasedStatus)
			})

			r.Route("/{person_id}", func(r chi.Router) {
				r.Get("/", personHandler.GetPerson)
				r.Get("/family", familyHandler.GetFamily)
				r.Get("/children", personHandler.FindChildren)
				r.Get("/siblings", personHandler.FindSiblings)

				r.Group(func(r chi.Router) {
					r.Use(requireAdmin)
					r.Put("/", personHandler.UpdatePerson)
					r.Delete("/", personHandler.DeletePerson)
					r.Put("/avatar", personHandler.UploadAvatar)
					r.Delete("/relations/{relation}", personHandler.ClearRelation)
				})
			})
		})

		r.Route("/spouses", func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", personHandler.LinkSpouses)
			r.Delete("/{person_id}", personHandler.UnlinkSpouses)
		})

		r.Route("/suggestions", func(r chi.Router) {
			r.Post("/", suggestionHandler.CreateSuggestion)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Get("/", suggestionHandler.ListSuggestions)
				r.Delete("/{suggestion_id}", suggestionHandler.DeleteSuggestion)
			})
		})

		r.With(requireAdmin).Get("/export", exportHandler.ExportPeople)

		avatarsSubDir := filepath.Base(cfg.AvatarsPath)
		r.Get(fmt.Sprintf("/media/%s/*", avatarsSubDir), handlers.AssetServer(cfg.MediaStoragePath, avatarsSubDir))
		log.Printf("Registered avatar server at /api/media/%s/*", avatarsSubDir)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	serverAddr := ":" + port
	fmt.Printf("Server starting on http://localhost:%s\n", port)
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}

// bootstrapAdmin creates the administrator account from the environment on
// first start. Later starts leave existing accounts untouched.
func bootstrapAdmin(adminRepo repository.AdminRepositoryInterface, cfg config.Config) error {
	count, err := adminRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		log.Printf("Warning: no admin account exists and ADMIN_USERNAME/ADMIN_PASSWORD are not set; admin endpoints will be unusable")
		return nil
	}

	admin := &models.Admin{Username: cfg.AdminUsername}
	if err := admin.SetPassword(cfg.AdminPassword); err != nil {
		return err
	}
	if err := adminRepo.Create(admin); err != nil {
		return err
	}
	log.Printf("Created administrator account %q", cfg.AdminUsername)
	return nil
}
