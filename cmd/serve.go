package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/investor-match/internal/profile"
	"github.com/sells-group/investor-match/internal/rank"
	"github.com/sells-group/investor-match/internal/recommend"
	"github.com/sells-group/investor-match/internal/session"
	"github.com/sells-group/investor-match/internal/store"
	"github.com/sells-group/investor-match/pkg/anthropic"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the investor matching API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		profiles, err := loadOrBuild(ctx)
		if err != nil {
			return err
		}

		var rec *recommend.Recommender
		if cfg.Anthropic.Key != "" {
			client := anthropic.NewClient(cfg.Anthropic.Key, anthropic.WithRateLimit(cfg.Anthropic.RateLimit))
			rec = recommend.New(client, cfg.Anthropic.Model)
		} else {
			zap.L().Warn("no anthropic key configured, /api/chat will return ranked results without prose")
		}

		api := &apiServer{
			profiles: profiles,
			searcher: rank.KeywordSearcher{Profiles: profiles},
			rec:      rec,
			sessions: session.NewStore(),
			maxCtx:   cfg.Search.MaxResults,
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: api.routes(cfg.Server.AllowedOrigins),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server",
			zap.Int("port", port),
			zap.Int("profiles", len(profiles)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

type apiServer struct {
	profiles []profile.Profile
	searcher store.Searcher
	rec      *recommend.Recommender
	sessions *session.Store
	maxCtx   int
}

func (a *apiServer) routes(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/health", a.handleHealth)
	r.Post("/api/upload", a.handleUpload)
	r.Post("/api/chat", a.handleChat)
	r.Delete("/api/session/{id}", a.handleClearSession)

	return r
}

func (a *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "healthy",
		"profiles": len(a.profiles),
	})
}

// handleUpload registers extracted pitch-deck text under a new session.
// PDF extraction happens upstream; this endpoint takes plain text.
func (a *apiServer) handleUpload(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		Text string `json:"text_content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text_content is required")
		return
	}

	deck := a.sessions.Create(req.Name, req.Text)
	zap.L().Info("deck uploaded",
		zap.String("session_id", deck.ID),
		zap.String("name", deck.Name),
		zap.Int("chars", len(deck.Text)),
	)
	writeJSON(w, http.StatusOK, deck)
}

func (a *apiServer) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query     string `json:"query"`
		DeckText  string `json:"pitch_deck_text"`
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	deckText := req.DeckText
	if deckText == "" && req.SessionID != "" {
		if deck, ok := a.sessions.Get(req.SessionID); ok {
			deckText = deck.Text
		}
	}

	rankQuery := req.Query
	if deckText != "" {
		rankQuery = req.Query + " " + deckText
	}
	top, err := a.searcher.Search(r.Context(), rankQuery, a.maxCtx)
	if err != nil {
		zap.L().Error("profile search failed",
			zap.String("query", req.Query),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	if a.rec == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"query":    req.Query,
			"response": recommend.ConciseContext(top),
		})
		return
	}

	response, err := a.rec.Recommend(r.Context(), req.Query, deckText, top)
	if err != nil {
		zap.L().Error("chat recommendation failed",
			zap.String("query", req.Query),
			zap.Error(err),
		)
		writeError(w, http.StatusBadGateway, "recommendation failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"query":    req.Query,
		"response": response,
	})
}

func (a *apiServer) handleClearSession(w http.ResponseWriter, r *http.Request) {
	a.sessions.Clear(chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
