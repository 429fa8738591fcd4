package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rgehrsitz/ngtax/internal/cache"
	"github.com/rgehrsitz/ngtax/internal/compare"
	"github.com/rgehrsitz/ngtax/internal/config"
	"github.com/rgehrsitz/ngtax/internal/server"
	"github.com/rgehrsitz/ngtax/internal/store"
	"github.com/spf13/cobra"
)

// serverConfigFromFlags merges serve flags with .env and the environment
func serverConfigFromFlags(cmd *cobra.Command) (config.ServerConfig, error) {
	cfg := config.DefaultServerConfig()
	cfg.Port, _ = cmd.Flags().GetInt("port")
	cfg.DatabaseType, _ = cmd.Flags().GetString("db-type")
	cfg.DatabaseURL, _ = cmd.Flags().GetString("db")
	cfg.RedisAddr, _ = cmd.Flags().GetString("redis")
	cfg.RulesFile, _ = cmd.Flags().GetString("rules")
	cfg.RateLimitPerMinute, _ = cmd.Flags().GetInt("rate-limit")
	cfg.TrustProxy, _ = cmd.Flags().GetBool("trust-proxy")

	envFile, _ := cmd.Flags().GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(cmd.Flags().Changed); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newCache selects redis when an address is configured, falling back to
// the in-process cache when redis cannot be reached
func newCache(ctx context.Context, addr string, logger *slog.Logger) (cache.Cache, func()) {
	if addr == "" {
		return cache.NewMemoryCache(), func() {}
	}
	rc := cache.NewRedisCache(addr)
	if err := rc.Ping(ctx); err != nil {
		logger.Warn("redis unavailable, using in-memory cache", "addr", addr, "error", err)
		rc.Close()
		return cache.NewMemoryCache(), func() {}
	}
	logger.Info("Using redis cache", "addr", addr)
	return rc, func() { rc.Close() }
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP comparison service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := serverConfigFromFlags(cmd)
		if err != nil {
			return err
		}

		logger := slog.Default()
		calcLogger := slogLogger{l: logger}
		ctx := cmd.Context()

		engine, err := loadEngine(cfg.RulesFile, calcLogger, false)
		if err != nil {
			return err
		}

		st, err := store.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer st.Close()
		logger.Info("Database schema ready", "type", cfg.DatabaseType)

		c, closeCache := newCache(ctx, cfg.RedisAddr, logger)
		defer closeCache()

		svc := compare.NewService(engine, compare.Options{
			Cache:  c,
			Store:  st,
			Logger: calcLogger,
		})

		limiter := server.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
		limiter.TrustProxy = cfg.TrustProxy
		defer limiter.Stop()

		srv := http.Server{
			Handler:           server.NewHandler(svc, limiter),
			Addr:              ":" + strconv.Itoa(cfg.Port),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// signal.Notify requires the channel to be buffered
		ctrlc := make(chan os.Signal, 1)
		signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(ctrlc)
		go func() {
			<-ctrlc
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		logger.Info("Listening", "port", cfg.Port)
		err = srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		logger.Info("Server closed")
		return nil
	},
}

func init() {
	defaults := config.DefaultServerConfig()
	serveCmd.Flags().IntP("port", "p", defaults.Port, "Port to listen on (env PORT)")
	serveCmd.Flags().String("db", defaults.DatabaseURL, "Database file or connection URL (env DATABASE_URL)")
	serveCmd.Flags().String("db-type", defaults.DatabaseType, "Database type: sqlite or postgres (env DATABASE_TYPE)")
	serveCmd.Flags().String("redis", "", "Redis address for the result cache (env REDIS_ADDR)")
	serveCmd.Flags().String("rules", "", "Rules override file (env RULES_FILE)")
	serveCmd.Flags().Int("rate-limit", defaults.RateLimitPerMinute, "Requests per minute per client (env RATE_LIMIT_PER_MINUTE)")
	serveCmd.Flags().Bool("trust-proxy", false, "Rate-limit on X-Forwarded-For; only behind a reverse proxy (env TRUST_PROXY)")
	serveCmd.Flags().String("env-file", ".env", "Environment file to load")

	rootCmd.AddCommand(serveCmd)
}
