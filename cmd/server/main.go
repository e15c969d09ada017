package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quiz-solver/internal/di"
	"quiz-solver/internal/infrastructure/env"
)

func main() {
	envService := env.NewEnvService()

	container, err := di.NewContainer(di.Config{
		QuizSecret:      envService.MustGet("QUIZ_SECRET"),
		LLMAPIKey:       envService.Get("LLM_API_KEY"),
		LLMModel:        envService.GetDefault("LLM_MODEL", "gpt-4o-mini"),
		LLMBaseURL:      envService.Get("LLM_BASE_URL"),
		BrowserHeadless: envService.GetBool("BROWSER_HEADLESS", true),
		EnableOCR:       envService.GetBool("OCR_ENABLED", false),
		BudgetSeconds:   envService.GetInt("TIMEOUT_SECONDS", 180),
		LogLevel:        envService.GetDefault("LOG_LEVEL", "info"),
	})
	if err != nil {
		log.Fatalf("init failed: %v", err)
	}
	defer container.Close()

	addr := fmt.Sprintf(":%d", envService.GetInt("PORT", 8000))
	srv := &http.Server{
		Addr:    addr,
		Handler: container.Server.Router(),
	}

	go func() {
		container.Logger.Info("Server listening", "addr", addr, "budget", container.Budget.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			container.Logger.Error("Server stopped", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	container.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		container.Logger.Error("Shutdown failed", "error", err)
	}
}
