package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/exascience/forkcalc/internal/logger"
	"github.com/exascience/forkcalc/pool"
)

// app holds what the subcommands share. The pool is nil when running
// sequentially.
type app struct {
	workers    int
	sequential bool
	logLevel   string

	log  *zap.Logger
	pool *pool.Pool
}

// setup builds the logger and the pool for one run of cmd. It must be
// paired with a deferred teardown.
func (a *app) setup(cmd *cobra.Command) error {
	log, err := logger.New(a.logLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.log = log.With(zap.String("run_id", uuid.NewString()), zap.String("command", cmd.Name()))
	if a.workers < 0 {
		return fmt.Errorf("invalid number of workers: %v", a.workers)
	}
	if !a.sequential {
		a.pool = pool.New(a.workers, pool.WithLogger(a.log))
	}
	return nil
}

func (a *app) teardown() {
	if a.pool != nil {
		a.pool.Close()
		a.pool = nil
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

func (a *app) mode() string {
	if a.pool == nil {
		return "sequential"
	}
	return "parallel"
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "forkcalc",
		Short:        "Fork/join matrix multiplication, polynomial evaluation and word counting",
		SilenceUsage: true,
	}
	flags := root.PersistentFlags()
	flags.IntVarP(&a.workers, "workers", "w", 0, "number of pool workers (0 uses GOMAXPROCS)")
	flags.BoolVar(&a.sequential, "sequential", false, "compute without a worker pool")
	flags.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (default $"+logger.EnvLevel+" or info)")

	root.AddCommand(newMatmulCommand(a), newPolyCommand(a), newWordcountCommand(a))
	return root
}
