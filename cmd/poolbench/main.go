// Command poolbench compares bulk allocation through a blockpool.TypedPool
// with the same allocations on the Go heap.
package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/alecthomas/kingpin/v2"

	"github.com/pavanmanishd/blockpool/internal/bench"
	"github.com/pavanmanishd/blockpool/internal/logger"
)

const (
	appName = "poolbench"
	appDesc = "Time bulk allocate/deallocate cycles of a fixed-size pool against the Go heap."
)

var log = logger.Get().WithField("prefix", appName)

func main() {
	cfg, err := bench.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("Couldn't load configuration")
	}

	app := kingpin.New(appName, appDesc)
	app.HelpFlag.Short('h')
	app.Flag("count", "Number of elements allocated per round.").
		Short('n').Default(strconv.Itoa(cfg.Count)).IntVar(&cfg.Count)
	app.Flag("rounds", "Number of allocate/deallocate rounds per allocator.").
		Short('r').Default(strconv.Itoa(cfg.Rounds)).IntVar(&cfg.Rounds)
	app.Flag("log-level", "Log level: debug, info, warn or error.").
		Default(cfg.LogLevel).StringVar(&cfg.LogLevel)
	app.Flag("json", "Print the report as JSON.").
		Default(strconv.FormatBool(cfg.JSON)).BoolVar(&cfg.JSON)
	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := bench.Run(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Error("Benchmark failed")
		stop()
		os.Exit(1)
	}

	if cfg.JSON {
		err = report.WriteJSON(os.Stdout)
	} else {
		err = report.WriteText(os.Stdout)
	}
	if err != nil {
		log.WithError(err).Error("Couldn't write report")
		stop()
		os.Exit(1)
	}
}
