package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/martin1reich-code/voicelab/config"
	"github.com/martin1reich-code/voicelab/internal/api"
	"github.com/martin1reich-code/voicelab/internal/database"
	"github.com/martin1reich-code/voicelab/internal/services"
	"github.com/martin1reich-code/voicelab/internal/storage"
	"github.com/martin1reich-code/voicelab/internal/synth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logrus.SetLevel(level)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize database")
	}
	defer db.Close()

	audio, err := storage.New(cfg.Audio.Dir)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize audio storage")
	}

	credentialsFile := cfg.Tts.CredentialsFile
	if _, err := os.Stat(credentialsFile); err != nil {
		// Fall back to ambient credentials when no key file is present.
		credentialsFile = ""
	}

	var engine synth.Synthesizer
	engine, err = synth.NewGoogleEngine(context.Background(), credentialsFile)
	if err != nil {
		// Keep the app usable without vendor credentials.
		logrus.WithError(err).Warn("Google TTS unavailable, using dummy engine")
		engine = synth.NewDummyEngine()
	}
	defer engine.Close()

	recordService := services.NewRecordService(db, audio)
	settingsService := services.NewSettingsService(db)
	ttsService := services.NewTTSService(engine, audio, recordService)

	handler := api.New(ttsService, recordService, settingsService, audio, cfg.Tts.VoicesLanguage)

	r := mux.NewRouter()
	apiRouter := r.PathPrefix("/api").Subrouter()
	handler.RegisterRoutes(apiRouter)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: c.Handler(r),
	}

	go func() {
		logrus.WithFields(logrus.Fields{
			"port":   cfg.Server.Port,
			"engine": engine.Name(),
		}).Info("voicelab server starting")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logrus.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("graceful shutdown failed")
	}
}
