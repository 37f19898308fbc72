package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/zhouzirui/avatar-smoke/internal/config"
	"github.com/zhouzirui/avatar-smoke/internal/handler"
	avatarModel "github.com/zhouzirui/avatar-smoke/internal/model/avatar"
	avatarService "github.com/zhouzirui/avatar-smoke/internal/service/avatar"
)

const (
	cacheSweepInterval = time.Minute
	shutdownTimeout    = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	voiceStore := avatarModel.NewMemoryVoiceStore(avatarModel.SeedVoices())
	avatarSvc := avatarService.NewService(avatarService.Config{
		CacheTTL:  cfg.Stub.CacheTTL,
		HasAPIKey: cfg.Stub.HasAPIKey(),
	})
	if !cfg.Stub.HasAPIKey() {
		log.Println("AVATAR_STUB_API_KEY missing, /tts will answer with the API key reminder")
	}

	stub := newStubServer(cfg.Server, handler.NewRouter(voiceStore, avatarSvc), avatarSvc.Cache(), cfg.Stub.CacheTTL)

	log.Printf("[stub] avatar stub backend listening on %s", cfg.Server.Addr)
	if err := stub.run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// stubServer 把 HTTP 服务与响应缓存的清理协程放在同一个生命周期里：
// 服务退出前先停掉清理协程。
type stubServer struct {
	srv        *http.Server
	cache      *avatarService.Cache
	sweepEvery time.Duration
}

// newStubServer 只在缓存开启时安排清理；TTL 不超过 0 表示不缓存。
func newStubServer(serverCfg config.ServerConfig, router http.Handler, cache *avatarService.Cache, cacheTTL time.Duration) *stubServer {
	var sweepEvery time.Duration
	if cacheTTL > 0 {
		sweepEvery = min(cacheSweepInterval, cacheTTL)
	}

	return &stubServer{
		srv: &http.Server{
			Addr:              serverCfg.Addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		cache:      cache,
		sweepEvery: sweepEvery,
	}
}

func (s *stubServer) run(ctx context.Context) error {
	stopSweep := s.startSweeper()
	defer stopSweep()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Printf("[stub] shutting down: %v", context.Cause(ctx))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[stub] graceful shutdown incomplete: %v", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", s.srv.Addr, err)
	}
}

// startSweeper 启动缓存清理，返回的函数会等待协程真正退出。
func (s *stubServer) startSweeper() func() {
	if s.cache == nil || s.sweepEvery <= 0 {
		return func() {}
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.cache.Sweep(done, s.sweepEvery)
	}()

	return func() {
		close(done)
		wg.Wait()
		log.Printf("[cache] sweeper stopped with %d cached responses", s.cache.Len())
	}
}
