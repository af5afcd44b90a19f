package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tilazone/tilazone/config"
	"github.com/tilazone/tilazone/internal/adminapi"
	"github.com/tilazone/tilazone/internal/app"
	"github.com/tilazone/tilazone/internal/storeapi"
	"github.com/tilazone/tilazone/internal/webserver"
)

var (
	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	conffile = flag.String("c", "/etc/tilazone.yml", "config file")
)

var (
	// set by the build
	BuildVersion = "dev"
)

func printHelp() {
	if *h {
		ustr := fmt.Sprintf("tilazone version: %s, usage: tilazone -h | -v | -c <config file>", BuildVersion)
		fmt.Fprintln(os.Stderr, ustr)
		flag.PrintDefaults()
		os.Exit(0)
	}
}

func main() {
	flag.Parse()
	printHelp()

	if *showVer {
		fmt.Println(BuildVersion)
		os.Exit(0)
	}

	cfg := config.LoadConfig(*conffile)

	a := app.NewApplication(cfg)
	if err := a.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "init failed: %v\n", err)
		os.Exit(1)
	}
	defer a.Release()

	ws := webserver.Init(cfg, a, adminapi.SigningKey())
	storeapi.InitRouter()
	adminapi.InitRouter()

	go func() {
		if err := ws.Listen(); err != nil {
			zap.L().Error("web server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := ws.Echo().Shutdown(ctx); err != nil {
		zap.L().Error("shutdown error", zap.Error(err))
	}
}
