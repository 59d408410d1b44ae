package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/yeremiapane/restaurant-floor/config"
	"github.com/yeremiapane/restaurant-floor/controllers"
	"github.com/yeremiapane/restaurant-floor/database"
	"github.com/yeremiapane/restaurant-floor/display"
	"github.com/yeremiapane/restaurant-floor/middlewares"
	"github.com/yeremiapane/restaurant-floor/models"
	"github.com/yeremiapane/restaurant-floor/natsbridge"
	"github.com/yeremiapane/restaurant-floor/router"
	"github.com/yeremiapane/restaurant-floor/services"
	"github.com/yeremiapane/restaurant-floor/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Invalid configuration: %v", err)
	}
	utils.SetLevel(cfg.LogLevel)
	utils.SetJWTSecret(cfg.JWTSecret, cfg.TokenTTL)

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	if cfg.SetupSQL != "" {
		if err := database.ExecuteScript(db, cfg.SetupSQL); err != nil {
			utils.ErrorLogger.Printf("Error running setup script: %v", err)
		}
	}

	store := database.NewStore(db)
	seedAdmin(store, cfg.AdminPassword)

	engine := services.NewEngine(store, cfg.Engine())
	hub := display.NewHub()
	clashes := services.NewClashLog(0)
	engine.Subscribe(services.LogSubscriber{})
	engine.Subscribe(clashes)
	engine.Subscribe(hub)

	if cfg.NATSURL != "" {
		publisher, err := natsbridge.NewPublisher(cfg.NATSURL)
		if err != nil {
			utils.ErrorLogger.Printf("NATS disabled: %v", err)
		} else {
			engine.Subscribe(publisher)
			defer publisher.Close()
		}
	}

	if err := engine.Start(); err != nil {
		utils.ErrorLogger.Fatalf("Failed to start floor engine: %v", err)
	}

	r := router.SetupRouter(router.Options{
		Engine:        engine,
		Hub:           hub,
		Clashes:       clashes,
		TableDefaults: cfg.TableDefaults,
		CORSOrigin:    cfg.CORSOrigin,
		LoginLimiter:  middlewares.NewRateLimiter(float64(cfg.LoginRate), cfg.LoginBurst),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	<-ctx.Done()
	utils.InfoLogger.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.Printf("Server shutdown: %v", err)
	}
	engine.Stop()
}

// seedAdmin creates the first administrator on an empty staff directory.
func seedAdmin(store *database.Store, password string) {
	count, err := store.CountStaff()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to count staff: %v", err)
	}
	if count > 0 {
		return
	}
	if password == "" {
		utils.ErrorLogger.Println("Warning: no staff exist and ADMIN_PASSWORD is not set, nobody can log in")
		return
	}

	hashed, err := controllers.HashPassword(password)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to hash admin password: %v", err)
	}
	admin := &models.Staff{FirstName: "Admin", Admin: true, Password: hashed}
	if err := store.InsertStaff(admin); err != nil {
		utils.ErrorLogger.Fatalf("Failed to create administrator: %v", err)
	}
	utils.InfoLogger.Printf("Administrator created with staff id %d", admin.ID)
}
