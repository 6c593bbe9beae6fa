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
	"golang.org/x/sync/errgroup"

	"github.com/lahorisamosa/lahorisamosa/config"
	"github.com/lahorisamosa/lahorisamosa/internal/adminapi"
	"github.com/lahorisamosa/lahorisamosa/internal/app"
	"github.com/lahorisamosa/lahorisamosa/internal/storeapi"
	"github.com/lahorisamosa/lahorisamosa/internal/webserver"
)

var (
	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	conffile = flag.String("c", "lahorisamosa.yml", "config file")
	initdb   = flag.Bool("initdb", false, "drop and recreate the database schema, then exit")
)

func printHelp() {
	if *h {
		ustr := fmt.Sprintf("lahorisamosa usage:\nUsage: %s [-hv] [-c config_file] [-initdb]\nOptions:", os.Args[0])
		fmt.Fprintf(os.Stderr, ustr)
		flag.PrintDefaults()
		os.Exit(0)
	}
}

func main() {
	flag.Parse()
	printHelp()

	if *showVer {
		fmt.Println(app.Version())
		os.Exit(0)
	}

	cfg := config.LoadConfig(*conffile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.L().Info("database schema recreated")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application.StartBackgroundJobs(ctx)

	ws := webserver.Init(application)
	storeapi.RegisterRoutes()
	adminapi.RegisterRoutes()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return ws.Start()
	})
	g.Go(func() error {
		<-ctx.Done()
		shctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return ws.Shutdown(shctx)
	})

	if err := g.Wait(); err != nil {
		zap.L().Error("server stopped", zap.Error(err))
	}
}
