package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve run history, hotspot stats, and rendered artifacts over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		mux := newServeMux(st, cfg.Data.OutputDir)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server",
			zap.Int("port", port),
			zap.String("artifacts", cfg.Data.OutputDir),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newServeMux wires the API routes and the artifacts file server.
func newServeMux(st store.Store, artifactsDir string) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /api/runs", func(w http.ResponseWriter, r *http.Request) {
		limit := 50
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				httpError(w, http.StatusBadRequest, "invalid limit")
				return
			}
			limit = n
		}

		runs, err := st.ListRuns(r.Context(), store.RunFilter{
			Status: model.RunStatus(r.URL.Query().Get("status")),
			Limit:  limit,
		})
		if err != nil {
			zap.L().Error("list runs failed", zap.Error(err))
			httpError(w, http.StatusInternalServerError, "list runs failed")
			return
		}
		if runs == nil {
			runs = []model.Run{}
		}
		writeJSON(w, http.StatusOK, runs)
	})

	mux.HandleFunc("GET /api/hotspots", func(w http.ResponseWriter, r *http.Request) {
		runID := r.URL.Query().Get("run_id")
		if runID == "" {
			run, err := st.LatestRun(r.Context())
			if err != nil {
				zap.L().Error("latest run lookup failed", zap.Error(err))
				httpError(w, http.StatusInternalServerError, "latest run lookup failed")
				return
			}
			if run == nil {
				httpError(w, http.StatusNotFound, "no recorded runs")
				return
			}
			runID = run.ID
		}

		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				httpError(w, http.StatusBadRequest, "invalid limit")
				return
			}
			limit = n
		}

		hotspots, err := st.ListHotspots(r.Context(), runID, limit)
		if err != nil {
			zap.L().Error("list hotspots failed", zap.Error(err))
			httpError(w, http.StatusInternalServerError, "list hotspots failed")
			return
		}
		if hotspots == nil {
			hotspots = []model.Hotspot{}
		}
		writeJSON(w, http.StatusOK, hotspots)
	})

	mux.Handle("GET /artifacts/",
		http.StripPrefix("/artifacts/", http.FileServer(http.Dir(artifactsDir))))

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
