package main

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gitscreen-engine/internal/config"
	"gitscreen-engine/internal/events"
	"gitscreen-engine/internal/httpapi"
	"gitscreen-engine/internal/scheduler"
	"gitscreen-engine/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local HTTP API for dashboards",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("candidates", "c", "candidates.csv", "candidate CSV screened by POST /screen/run")
	serveCmd.Flags().String("job", "job_description.txt", "job description used for fit keywords")
}

func serve(cmd *cobra.Command) {
	log := newLogger()
	defer log.Sync()

	env, err := openEngine(log)
	if err != nil {
		log.Fatal("bootstrap failed", zap.Error(err))
	}
	defer env.db.Close()

	candidatesPath, _ := cmd.Flags().GetString("candidates")
	jobPath, _ := cmd.Flags().GetString("job")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := events.NewHub()

	var cfgVal atomic.Value
	cfgVal.Store(env.cfg)
	var screenStatus atomic.Value
	screenStatus.Store(httpapi.ScreenStatus{})

	deps := httpapi.Deps{
		DB:           env.db.Pool,
		Hub:          hub,
		Log:          log,
		CfgVal:       &cfgVal,
		ScreenStatus: &screenStatus,
		UserCfgPath:  env.userCfgPath,
		LoadCfg: func() (config.Config, error) {
			loaded, err := config.Load(env.userCfgPath)
			if err != nil {
				return loaded, err
			}
			normalized, vr := config.NormalizeAndValidate(loaded)
			if !vr.OK() {
				return normalized, vr
			}
			return normalized, nil
		},
		RunScreening: func(ctx context.Context, cfg config.Config, progress func(done, total int, handle string)) (httpapi.ScreenResult, error) {
			return screenOnce(ctx, env, cfg, candidatesPath, jobPath, progress)
		},
	}

	mux := httpapi.NewMux(deps)

	srv := &http.Server{
		Handler:           httpapi.Chain(mux, httpapi.Cors, httpapi.RequestID, httpapi.AccessLog(log), httpapi.Recover(log)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Shutdown endpoint so a desktop wrapper can stop us cleanly.
	token, err := randomToken(16)
	if err != nil {
		log.Fatal("shutdown token", zap.Error(err))
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))

	// Hourly sweep so a long-lived server does not accumulate stale
	// snapshots.
	if env.cfg.GitHub.CacheTTLHours > 0 {
		ttl := time.Duration(env.cfg.GitHub.CacheTTLHours) * time.Hour
		go scheduler.Every(ctx, log, time.Hour, "cache-cleanup", func(ctx context.Context) error {
			n, err := store.CleanupExpired(ctx, env.db.Pool, ttl)
			if err == nil && n > 0 {
				log.Debug("expired cache rows removed", zap.Int64("rows", n))
			}
			return err
		})
	}

	addr := fmt.Sprintf("127.0.0.1:%d", env.cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal("listen", zap.String("addr", addr), zap.Error(err))
	}
	log.Info("engine listening",
		zap.String("addr", "http://"+addr),
		zap.String("shutdown_token", token))

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()

	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		log.Fatal("server", zap.Error(err))
	}
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func shutdownHandler(token *string, srv *http.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		// Local-only guard (covers typical desktop usage)
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if host != "127.0.0.1" && host != "::1" && host != "localhost" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		got := r.Header.Get("X-Shutdown-Token")
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(*token)) != 1 {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// Respond immediately, then shutdown asynchronously
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("shutting down\n"))

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}
}
