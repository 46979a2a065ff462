package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travelmap/internal/cache"
	intconfig "travelmap/internal/config"
	router "travelmap/internal/http"
	"travelmap/internal/repositories"
	"travelmap/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db := intconfig.ConnectDB(env.DBDSN)
	defer intconfig.CloseDB()

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	if created, err := repositories.EnsureSchema(bootCtx, db); err != nil {
		log.Printf("Gagal menyiapkan tabel: %v", err)
	} else if len(created) > 0 {
		log.Printf("Tabel dibuat: %v", created)
	}

	costs, err := cache.NewRedis(bootCtx, env.RedisAddr, env.RedisDB)
	if err != nil {
		log.Printf("Redis tidak tersedia, cache dimatikan: %v", err)
	}
	cancelBoot()

	var directions services.Directions
	if env.MapboxToken != "" {
		directions = services.MapboxDirections{Token: env.MapboxToken}
	}
	trips := services.NewTripService(repositories.Store{DB: db}, services.LogNotifier{}, directions)

	r := router.NewRouter(env, router.Deps{
		Trips: trips,
		Cache: costs,
		Users: repositories.UserRepository{DB: db},
	})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server berjalan di http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Gagal menjalankan server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Mematikan server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown server gagal: %v", err)
	}

	log.Println("Server berhenti dengan aman.")
}
