package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rkwm713/makeready-cli/internal/model"
	"github.com/rkwm713/makeready-cli/internal/report"
	"github.com/rkwm713/makeready-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reconciliation HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		mux := newServeMux(st)

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

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newServeMux wires the HTTP routes against a store.
func newServeMux(st store.Store) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /runs", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SurveyFile   string   `json:"survey_file"`
			AnalysisFile string   `json:"analysis_file"`
			Poles        []string `json:"poles"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.SurveyFile == "" && req.AnalysisFile == "" {
			http.Error(w, `{"error":"survey_file or analysis_file is required"}`, http.StatusBadRequest)
			return
		}

		ctx := r.Context()
		run, err := st.CreateRun(ctx, model.RunInput{
			SurveyFile:   req.SurveyFile,
			AnalysisFile: req.AnalysisFile,
		})
		if err != nil {
			http.Error(w, `{"error":"create run failed"}`, http.StatusInternalServerError)
			return
		}

		// Reconcile asynchronously; the response carries the run ID for
		// polling.
		go func() {
			bg := context.Background()
			if err := st.UpdateRunStatus(bg, run.ID, model.RunStatusRunning); err != nil {
				zap.L().Error("run status update failed", zap.String("run_id", run.ID), zap.Error(err))
				return
			}

			result, err := executeRun(bg, req.SurveyFile, req.AnalysisFile, req.Poles)
			if err != nil {
				zap.L().Error("run failed", zap.String("run_id", run.ID), zap.Error(err))
				_ = st.UpdateRunStatus(bg, run.ID, model.RunStatusFailed)
				return
			}
			if err := st.UpdateRunResult(bg, run.ID, result); err != nil {
				zap.L().Error("run result store failed", zap.String("run_id", run.ID), zap.Error(err))
				return
			}
			zap.L().Info("run complete", zap.String("run_id", run.ID), zap.Int("poles", len(result.Poles)))
		}()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]string{
			"run_id": run.ID,
			"status": string(model.RunStatusQueued),
		})
	})

	mux.HandleFunc("GET /runs", func(w http.ResponseWriter, r *http.Request) {
		filter := store.RunFilter{Status: model.RunStatus(r.URL.Query().Get("status"))}
		runs, err := st.ListRuns(r.Context(), filter)
		if err != nil {
			http.Error(w, `{"error":"list runs failed"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(runs)
	})

	mux.HandleFunc("GET /runs/{id}", func(w http.ResponseWriter, r *http.Request) {
		run, err := st.GetRun(r.Context(), r.PathValue("id"))
		if err != nil {
			http.Error(w, `{"error":"run not found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(run)
	})

	mux.HandleFunc("GET /runs/{id}/report", func(w http.ResponseWriter, r *http.Request) {
		run, err := st.GetRun(r.Context(), r.PathValue("id"))
		if err != nil {
			http.Error(w, `{"error":"run not found"}`, http.StatusNotFound)
			return
		}
		if run.Result == nil {
			http.Error(w, `{"error":"run has no result yet"}`, http.StatusConflict)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "makeready_report.xlsx"))
		if err := report.EncodeXLSX(w, run.Result); err != nil {
			zap.L().Error("report encode failed", zap.String("run_id", run.ID), zap.Error(err))
		}
	})

	mux.HandleFunc("GET /runs/{id}/geojson", func(w http.ResponseWriter, r *http.Request) {
		run, err := st.GetRun(r.Context(), r.PathValue("id"))
		if err != nil {
			http.Error(w, `{"error":"run not found"}`, http.StatusNotFound)
			return
		}
		if run.Result == nil {
			http.Error(w, `{"error":"run has no result yet"}`, http.StatusConflict)
			return
		}
		data, err := report.GeoJSON(run.Result.Geo)
		if err != nil {
			http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/geo+json")
		w.Write(data)
	})

	return mux
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
