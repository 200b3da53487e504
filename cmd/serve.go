package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jsphweid/pianocoach/constants"
	"github.com/jsphweid/pianocoach/engine"
	"github.com/jsphweid/pianocoach/logging"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var port int

func init() {
	serveCmd.Flags().IntVar(&port, "port", 0, "port to listen on (env PORT, default 5000)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the practice API",
	Long:  `Serves the practice API used by the piano app: saving notes, suggestions, scale analysis and progress reports.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New(constants.GetLogFile(), constants.IsProd())
		defer log.Sync()

		st, err := openStore(storeKind, log)
		if err != nil {
			return err
		}
		if port == 0 {
			port = constants.GetPort()
		}
		app := NewApp(engine.New(), st, log)
		return serve(commandContext(cmd), app, fmt.Sprintf(":%d", port), constants.GetCorsAllowedOrigins())
	},
}

func NewRouter(app *App, allowedOrigins []string) http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(app.recoverer)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/suggestions", app.HandleSuggestions).Methods(http.MethodPost)
	api.HandleFunc("/analyze-scale", app.HandleAnalyzeScale).Methods(http.MethodPost)
	api.HandleFunc("/progress-report", app.HandleProgressReport).Methods(http.MethodGet)
	api.HandleFunc("/daily-goal", app.HandleDailyGoal).Methods(http.MethodGet)
	api.HandleFunc("/save-note", app.HandleSaveNote).Methods(http.MethodPost)
	api.HandleFunc("/notes", app.HandleNotes).Methods(http.MethodGet)
	api.HandleFunc("/sessions", app.HandleSessions).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(router)
}

func serve(ctx context.Context, app *App, addr string, allowedOrigins []string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(app, allowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		app.log.Info("listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	app.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
