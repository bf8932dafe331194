package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"trip-planner-service/internal/adapters/places"
	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/adapters/routing"
	"trip-planner-service/internal/adapters/session"
	"trip-planner-service/internal/api"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Redis, ORS) behind ports and starts
// the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/places.json")
	port := config.Get("PORT", "8080")

	conn, err := db.OpenSqlite(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	// Initialize schema and seed the place directory on startup for local runs.
	if err := repositories.InitSchema(conn); err != nil {
		log.Fatal(err)
	}
	if _, err := os.Stat(seedPath); err == nil {
		if err := repositories.SeedPlacesFromJSON(conn, seedPath); err != nil {
			log.Fatal(err)
		}
	} else {
		log.Printf("no place seed file at %q, skipping", seedPath)
	}

	resolver := places.NewSqlitePlaceStore(conn)
	itineraries := repositories.NewSqliteItineraryRepository(conn)

	// Without an ORS key every leg is a great-circle estimate; the planner
	// stays fully usable.
	var routeProvider ports.RouteProvider
	if key := os.Getenv("ORS_API_KEY"); key != "" {
		provider, err := routing.NewORSRouteProvider(key)
		if err != nil {
			log.Fatal(err)
		}
		routeProvider = provider
	} else {
		log.Println("ORS_API_KEY not set, drive legs will use great-circle estimates")
	}

	sessionTTL, err := time.ParseDuration(config.Get("SESSION_TTL", "24h"))
	if err != nil {
		log.Fatalf("invalid SESSION_TTL: %v", err)
	}

	var sessions ports.SessionStore
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		store := session.NewRedisSessionStore(addr, sessionTTL)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			log.Fatal(err)
		}
		sessions = store
	} else {
		log.Println("REDIS_ADDR not set, sessions are process-local")
		sessions = session.NewMemorySessionStore(sessionTTL)
	}

	router := api.NewRouter(resolver, routeProvider, sessions, itineraries)

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
