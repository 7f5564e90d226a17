package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/udisondev/battlecore/internal/config"
	"github.com/udisondev/battlecore/internal/data"
	"github.com/udisondev/battlecore/internal/db"
	"github.com/udisondev/battlecore/internal/game/combat"
	"github.com/udisondev/battlecore/internal/scenario"
	"github.com/udisondev/battlecore/internal/sim"
)

const ConfigPath = "config/battlesim.yaml"

type options struct {
	scenario string
	config   string
	runs     int
	workers  int
	seed     uint64
	persist  bool
	json     bool
	trace    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var opts options
	flag.StringVar(&opts.scenario, "scenario", "scenarios/duel.yaml", "scenario file")
	flag.StringVar(&opts.config, "config", "", "simulator config (default $BATTLECORE_CONFIG or "+ConfigPath+")")
	flag.IntVar(&opts.runs, "runs", 1, "number of battles to simulate")
	flag.IntVar(&opts.workers, "workers", 0, "concurrent battles (0 = from config)")
	flag.Uint64Var(&opts.seed, "seed", 0, "base seed; battle i uses seed+i (0 = scenario seed or random)")
	flag.BoolVar(&opts.persist, "persist", false, "store reports in PostgreSQL")
	flag.BoolVar(&opts.json, "json", false, "print reports as JSON")
	flag.BoolVar(&opts.trace, "trace", false, "print the event log of the first battle")
	flag.Parse()

	if err := run(ctx, opts); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfgPath := opts.config
	if cfgPath == "" {
		cfgPath = ConfigPath
		if p := os.Getenv("BATTLECORE_CONFIG"); p != "" {
			cfgPath = p
		}
	}
	cfg, err := config.LoadSimulator(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	})))

	balance := config.DefaultBalance()
	if cfg.BalancePath != "" {
		if balance, err = config.LoadBalance(cfg.BalancePath); err != nil {
			return fmt.Errorf("loading balance: %w", err)
		}
	}

	reg, err := data.DefaultRegistry()
	if err != nil {
		return fmt.Errorf("loading definitions: %w", err)
	}
	sum := reg.Summary()
	for _, c := range sum.Categories {
		slog.Debug("definitions loaded", "category", c.Category, "count", c.Count)
	}
	slog.Info("registry ready", "definitions", sum.Total(), "duplicates", sum.Duplicates)

	sc, err := scenario.Load(opts.scenario)
	if err != nil {
		return fmt.Errorf("loading scenario: %w", err)
	}

	// База нужна только для ссылок на ростер и сохранения отчётов
	persist := opts.persist || cfg.Persist
	var database *db.DB
	if persist || len(sc.Refs()) > 0 {
		dsn := cfg.Database.DSN()
		if v := os.Getenv("BATTLECORE_DB_DSN"); v != "" {
			dsn = v
		}
		database, err = db.New(ctx, dsn)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()

		if err := db.RunMigrations(ctx, dsn); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database ready")
	}

	var roster scenario.RecordSource
	if database != nil {
		roster = database.Roster()
	}
	setup, stage, err := sc.Setup(ctx, roster)
	if err != nil {
		return fmt.Errorf("building scenario %q: %w", sc.Name, err)
	}

	base := setup.Seed
	if opts.seed != 0 {
		base = opts.seed
	}
	jobs := make([]sim.Job, max(opts.runs, 1))
	for i := range jobs {
		s := setup
		if base != 0 {
			s.Seed = base + uint64(i)
		}
		jobs[i] = sim.Job{Scenario: sc.Name, Setup: s, Stage: stage}
	}

	workers := cfg.Workers
	if opts.workers > 0 {
		workers = opts.workers
	}
	var runnerOpts []sim.RunnerOption
	if persist {
		runnerOpts = append(runnerOpts, sim.WithStore(database.Reports()))
	}
	runner := sim.NewRunner(combat.NewEngine(reg, balance), workers, runnerOpts...)

	slog.Info("simulating", "scenario", sc.Name, "runs", len(jobs), "workers", workers, "persist", persist)
	start := time.Now()
	reports, err := runner.Run(ctx, jobs)
	if err != nil {
		return fmt.Errorf("simulating: %w", err)
	}
	summary := sim.Summarize(reports)
	slog.Info("simulation finished", "elapsed", time.Since(start))

	if opts.trace && len(reports) > 0 {
		printTrace(reports[0].Result.Log)
	}
	if opts.json {
		return printJSON(reports, summary)
	}
	printSummary(sc.Name, reports, summary)
	return nil
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func printTrace(log combat.Log) {
	for _, e := range log {
		var b strings.Builder
		fmt.Fprintf(&b, "[%3d] %-7s %s", e.Turn, e.Kind, e.Actor)
		if e.Action != "" {
			fmt.Fprintf(&b, " %s", e.Action)
		}
		if e.Target != "" {
			fmt.Fprintf(&b, " -> %s", e.Target)
		}
		if e.Amount != 0 {
			fmt.Fprintf(&b, " %+d", e.Amount)
		}
		if e.Crit {
			b.WriteString(" crit")
		}
		if len(e.EffectsApplied) > 0 {
			fmt.Fprintf(&b, " %v", e.EffectsApplied)
		}
		fmt.Println(b.String())
	}
}

func printSummary(name string, reports []sim.Report, s sim.Summary) {
	fmt.Printf("scenario %s: %d battles\n", name, s.Runs)
	fmt.Printf("  ally wins  %d (%.1f%%)\n", s.AllyWins, s.WinRate()*100)
	fmt.Printf("  enemy wins %d\n", s.EnemyWins)
	fmt.Printf("  draws      %d (timed out %d)\n", s.Draws, s.TimedOut)
	fmt.Printf("  turns      min %d / avg %.1f / max %d\n", s.MinTurns, s.AvgTurns, s.MaxTurns)
	fmt.Printf("  rewards    %d exp, %d gold\n", s.Experience, s.Gold)
	if len(reports) == 1 {
		r := reports[0].Result
		fmt.Printf("  seed %d digest %s\n", r.Seed, r.DigestHex())
	}
}

type reportJSON struct {
	ID         string `json:"id"`
	Seed       uint64 `json:"seed"`
	Victor     string `json:"victor"`
	Turns      int    `json:"turns"`
	TimedOut   bool   `json:"timed_out"`
	Experience int64  `json:"experience"`
	Gold       int64  `json:"gold"`
	Digest     string `json:"digest"`
}

func printJSON(reports []sim.Report, s sim.Summary) error {
	out := struct {
		Summary sim.Summary  `json:"summary"`
		Reports []reportJSON `json:"reports"`
	}{Summary: s}
	for _, r := range reports {
		out.Reports = append(out.Reports, reportJSON{
			ID:         r.ID.String(),
			Seed:       r.Result.Seed,
			Victor:     r.Result.Victor.String(),
			Turns:      r.Result.Turns,
			TimedOut:   r.Result.TimedOut,
			Experience: r.Experience,
			Gold:       r.Gold,
			Digest:     r.Result.DigestHex(),
		})
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
