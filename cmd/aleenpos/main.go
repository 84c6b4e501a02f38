package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Mustagiz/Aleen/config"
	"github.com/Mustagiz/Aleen/internal/adminapi"
	"github.com/Mustagiz/Aleen/internal/app"
	"github.com/Mustagiz/Aleen/internal/webserver"
)

var (
	cfile   = flag.String("c", "aleenpos.yml", "config file")
	initdb  = flag.Bool("initdb", false, "drop and recreate all tables, then exit")
	showver = flag.Bool("v", false, "print version and exit")
)

var version = "dev"

func main() {
	flag.Parse()

	if *showver {
		fmt.Println("aleenpos", version)
		return
	}

	cfg := config.LoadConfig(*cfile)

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.L().Info("database initialized")
		return
	}

	ws := webserver.Init(application)
	adminapi.Initialize()

	errCh := make(chan error, 1)
	go func() {
		errCh <- ws.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			zap.L().Fatal("web server failed", zap.Error(err))
		}
	case sig := <-sigCh:
		zap.L().Info("shutting down", zap.String("signal", sig.String()))
		if err := ws.Shutdown(10 * time.Second); err != nil {
			zap.L().Error("shutdown error", zap.Error(err))
		}
	}
}
