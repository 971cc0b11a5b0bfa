package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/Lllllllleong/hackrx-docqa/internal/config"
	"github.com/Lllllllleong/hackrx-docqa/internal/models"
	"github.com/Lllllllleong/hackrx-docqa/internal/services"
)

var (
	runInstance *services.RunFunction
	once        sync.Once
	initErr     error
)

func init() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	functions.HTTP("HandleRun", handleRun)
}

// main is required by the Go Functions Framework.
func main() {}

func newRunFunction(ctx context.Context) (*services.RunFunction, error) {
	cfg, err := config.Load(config.GetEnv("CONFIG_FILE", ""))
	if err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, config.JoinErrors(errs)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	return services.NewRunFunctionFromConfig(ctx, cfg), nil
}

// handleRun is the Cloud Function entry point.
func handleRun(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		runInstance, initErr = newRunFunction(context.Background())
	})
	if initErr != nil {
		slog.Error("Critical error during function initialization", "error", initErr)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(models.ErrorResponse{Error: initErr.Error()})
		return
	}
	runInstance.ServeHTTP(w, r)
}
