package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/samuraislice/slicer/internal/catalog"
	"github.com/samuraislice/slicer/internal/config"
	"github.com/samuraislice/slicer/internal/engine"
	"github.com/samuraislice/slicer/internal/logging"
	mw "github.com/samuraislice/slicer/internal/middleware"
	"github.com/samuraislice/slicer/internal/preview"
	"github.com/samuraislice/slicer/internal/session"
	"github.com/samuraislice/slicer/internal/typeid"
)

// playgroundSessionID is the shared room anyone can join without first
// creating a session.
const playgroundSessionID = "playground"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)
	logging.SetLogger(logger)

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		cat, err = catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			slog.Error("load catalog", "error", err, "path", cfg.CatalogPath)
			os.Exit(1)
		}
	}

	opts := cfg.EngineOptions()
	hub := session.NewHub(func() *engine.Engine {
		return engine.New(opts, cat)
	}, cfg.TickRate, cfg.World())
	go hub.Run()

	previewHandler := preview.NewHandler(cat, opts)

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.Origins()))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Catalog endpoints
	r.HandleFunc("/catalog", previewHandler.List).Methods("GET")
	r.HandleFunc("/catalog/{kind}/preview.png", previewHandler.Preview).Methods("GET")
	r.HandleFunc("/catalog/{kind}/slice", previewHandler.Slice).Methods("GET")

	// Session endpoints
	r.HandleFunc("/sessions", createSession).Methods("POST", "OPTIONS")
	r.HandleFunc("/ws/session/{sessionId}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, cfg.Origins())
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Stop rooms first so clients get their channels closed
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr, "catalog", len(cat.Kinds()))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func createSession(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"sessionId": typeid.NewSessionID()})
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *session.Hub, origins []string) {
	sessionID := mux.Vars(r)["sessionId"]
	if sessionID != playgroundSessionID {
		if err := typeid.Validate(sessionID, typeid.PrefixSession); err != nil {
			http.Error(w, "invalid session id", http.StatusBadRequest)
			return
		}
	}

	displayName := r.URL.Query().Get("name")
	if displayName == "" {
		displayName = "Anonymous"
	}
	playerID := r.URL.Query().Get("player")
	if err := typeid.Validate(playerID, typeid.PrefixPlayer); err != nil {
		playerID = typeid.NewPlayerID()
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: origins,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	clientID := uuid.New().String()
	client := session.NewClient(hub, conn, playerID, displayName, sessionID, clientID)

	hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}
