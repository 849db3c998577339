package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	canopyerrors "github.com/matzehuels/canopy/pkg/errors"
	"github.com/matzehuels/canopy/pkg/graph"
	"github.com/matzehuels/canopy/pkg/layout"
	"github.com/matzehuels/canopy/pkg/pipeline"
)

// serveCommand creates the serve command exposing the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout pipeline as an HTTP API",
		Long: `Serve the layout pipeline as an HTTP API.

Endpoints:

  POST /v1/layouts   {"graph": <document JSON>, "options": {...}}
                     -> {"id": ..., "layout": {...}, "cache_hit": bool}
  GET  /healthz      liveness probe

With the redis cache backend configured, multiple instances share computed
layouts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

// =============================================================================
// HTTP Wiring
// =============================================================================

// layoutRequest is the POST /v1/layouts body.
type layoutRequest struct {
	Graph   json.RawMessage  `json:"graph"`
	Options pipeline.Options `json:"options"`
}

// layoutResponse is the POST /v1/layouts response.
type layoutResponse struct {
	ID       string       `json:"id"`
	Layout   graph.Layout `json:"layout"`
	CacheHit bool         `json:"cache_hit"`
}

// errorResponse carries a coded error to API clients.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	runner := c.newRunner(ctx, false)
	defer runner.Close()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Post("/v1/layouts", c.handleLayout(runner))

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (c *CLI) handleLayout(runner *pipeline.Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req layoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, canopyerrors.Wrap(canopyerrors.ErrCodeInvalidFormat, err, "decode request"))
			return
		}
		if len(req.Graph) == 0 {
			writeError(w, http.StatusBadRequest, canopyerrors.New(canopyerrors.ErrCodeInvalidInput, "missing graph"))
			return
		}

		opts := req.Options
		opts.Logger = c.Logger
		if opts.Params == (layout.Params{}) {
			opts.Params = c.Config.Layout
		}

		result, err := runner.ComputeFromBytes(r.Context(), req.Graph, opts)
		if err != nil {
			status := http.StatusInternalServerError
			switch canopyerrors.GetCode(err) {
			case canopyerrors.ErrCodeInvalidInput, canopyerrors.ErrCodeInvalidFormat,
				canopyerrors.ErrCodeInvalidAlgorithm, canopyerrors.ErrCodeInvalidCanvas:
				status = http.StatusBadRequest
			}
			writeError(w, status, err)
			return
		}

		c.Logger.Info("served layout",
			"request_id", middleware.GetReqID(r.Context()),
			"algorithm", result.Layout.Algorithm,
			"visible", result.Stats.VisibleNodes,
			"cache_hit", result.CacheInfo.LayoutHit)

		writeJSON(w, http.StatusOK, layoutResponse{
			ID:       uuid.NewString(),
			Layout:   result.Layout,
			CacheHit: result.CacheInfo.LayoutHit,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{
		Code:    string(canopyerrors.GetCode(err)),
		Message: canopyerrors.UserMessage(err),
	})
}
