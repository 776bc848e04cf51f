// Command rogour-solve drives internal/solver end to end: it fills a
// probability database stratum by stratum, checkpointing progress to a
// badger ledger so a long-running solve can be interrupted (SIGINT) and
// resumed without redoing finished work.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/msheby/rogour/internal/checkpoint"
	"github.com/msheby/rogour/internal/probdb"
	"github.com/msheby/rogour/internal/solver"
)

func main() {
	dbPath := flag.String("db", "rogour.bin", "path to the probability database (loaded if it exists, created otherwise)")
	checkpointDir := flag.String("checkpoint", "rogour-checkpoint", "directory for the badger resume ledger")
	wsize := flag.Int("wsize", 4, "entry width in bytes for a newly created database (2 or 4)")
	tolerance := flag.Float64("tolerance", 1e-6, "per-sweep maximum-change convergence tolerance")
	threads := flag.Int("threads", 1, "sweep goroutine count; 1 runs the default Gauss-Seidel walk, >1 switches to Jacobi-parallel")
	header := flag.Bool("header", false, "save the database with the ROGOURDB magic header instead of the headerless flat format")
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339

	ledger, err := checkpoint.Open(*checkpointDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", *checkpointDir).Msg("failed to open checkpoint ledger")
	}
	defer ledger.Close()

	skip, err := ledger.CompletedStrata()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read completed strata")
	}

	db, err := openOrCreateDb(*dbPath, *wsize, *header)
	if err != nil {
		log.Fatal().Err(err).Str("path", *dbPath).Msg("failed to open database")
	}

	log.Info().
		Int("wsize", db.Wsize()).
		Int("threads", *threads).
		Float64("tolerance", *tolerance).
		Int("completed-strata", len(skip)).
		Msg("starting solve")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := solver.Options{
		Tolerance: *tolerance,
		Threads:   *threads,
		Skip:      skip,
		OnStratumDone: func(info solver.StratumInfo) error {
			log.Info().
				Int("gOff", info.GOff).
				Int("rOff", info.ROff).
				Int("rounds", info.Rounds).
				Float64("maxError", info.MaxError).
				Dur("elapsed", info.Elapsed).
				Msg("stratum converged")

			if err := ledger.RecordStratum(info.GOff, info.ROff, checkpoint.StratumRecord{
				MaxError: info.MaxError,
				Rounds:   info.Rounds,
				Elapsed:  info.Elapsed,
			}); err != nil {
				return err
			}
			return saveDb(db, *dbPath, *header)
		},
	}

	if err := solver.Solve(ctx, db, opts); err != nil {
		if ctx.Err() != nil {
			log.Warn().Err(err).Msg("solve interrupted; checkpoint reflects last completed stratum")
			os.Exit(1)
		}
		log.Fatal().Err(err).Msg("solve failed")
	}

	if err := saveDb(db, *dbPath, *header); err != nil {
		log.Fatal().Err(err).Msg("failed to save final database")
	}
	log.Info().Str("path", *dbPath).Msg("solve complete")
}

func openOrCreateDb(path string, wsize int, header bool) (*probdb.ProbDb, error) {
	if _, err := os.Stat(path); err == nil {
		if header {
			return probdb.LoadAuto(path)
		}
		return probdb.Load(path)
	}
	return probdb.NewEmpty(wsize), nil
}

func saveDb(db *probdb.ProbDb, path string, header bool) error {
	if header {
		return db.SaveWithHeader(path)
	}
	return db.Save(path)
}
