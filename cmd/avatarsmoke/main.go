package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/zhouzirui/avatar-smoke/internal/config"
	"github.com/zhouzirui/avatar-smoke/internal/service/smoke"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] could not load .env, using system environment only: %v", err)
	}

	cfg, err := config.LoadSmoke()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	suiteName := flag.String("suite", smoke.AllSuites, "suite to run: "+strings.Join(smoke.SuiteNames(), ", "))
	baseURL := flag.String("url", cfg.BaseURL, "avatar backend base URL")
	timeout := flag.Duration("timeout", cfg.Timeout, "per-request timeout, 0 waits forever")
	list := flag.Bool("list", false, "list suites and exit")
	flag.Parse()

	if *list {
		for _, name := range smoke.SuiteNames() {
			fmt.Println(name)
		}
		return
	}

	selected, err := smoke.Lookup(*suiteName)
	if err != nil {
		flag.Usage()
		log.Fatal(err)
	}

	runner, err := smoke.NewRunner(smoke.Options{
		BaseURL:    *baseURL,
		Timeout:    *timeout,
		PreviewLen: cfg.PreviewLen,
		Out:        os.Stdout,
	})
	if err != nil {
		log.Fatalf("invalid -url: %v", err)
	}

	// Ctrl-C aborts an in-flight request; the remaining cases then fail fast.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("[smoke] running %d suite(s) against %s", len(selected), runner.BaseURL())
	smoke.RunAll(ctx, runner, selected, cfg.FrontendURL)
}
