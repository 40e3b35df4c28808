package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"text/tabwriter"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/LianHaeming/sleepwell/handlers"
	"github.com/LianHaeming/sleepwell/metrics"
	"github.com/LianHaeming/sleepwell/models"
	"github.com/LianHaeming/sleepwell/tmpl"
)

var printer = message.NewPrinter(language.English)

// ServeCmd runs the HTTP server.
type ServeCmd struct {
	Port string `help:"Listen port (overrides config)"`
}

func (s *ServeCmd) Run(cli *CLI) error {
	cfg := cli.cfg
	if s.Port != "" {
		cfg.Port = s.Port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var rec metrics.Recorder = metrics.NoopRecorder{}
	reg := prom.NewRegistry()
	if cfg.Metrics {
		rec = metrics.NewPrometheusRecorder(reg)
	}

	a, err := openApp(ctx, cfg, rec)
	if err != nil {
		return err
	}
	defer a.Close()

	deps := &handlers.Deps{
		Sessions:  a.sessions,
		Routines:  a.routines,
		Templates: tmpl.Load(),
		Logger:    slog.Default(),
	}

	mux := http.NewServeMux()
	deps.Register(mux)
	if cfg.Metrics {
		mux.Handle("GET /metrics", metrics.HTTPHandler(reg))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Sleepwell listening", "url", "http://localhost:"+cfg.Port, "backend", cfg.Backend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// withApp opens the stores for a one-shot command.
func withApp(cli *CLI, fn func(ctx context.Context, a *app) error) error {
	ctx := context.Background()
	a, err := openApp(ctx, cli.cfg, metrics.NoopRecorder{})
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

// LogCmd logs one night.
type LogCmd struct {
	Bed     string `name:"bed" required:"" help:"Bedtime (HH:MM, 24h)"`
	Wake    string `name:"wake" required:"" help:"Wake time (HH:MM, 24h)"`
	Quality int    `short:"q" default:"7" help:"Sleep quality 1-10"`
	Notes   string `short:"n" help:"Optional notes"`
}

func (l *LogCmd) Run(cli *CLI) error {
	return withApp(cli, func(ctx context.Context, a *app) error {
		return l.run(ctx, a, os.Stdout, time.Now())
	})
}

func (l *LogCmd) run(ctx context.Context, a *app, w io.Writer, now time.Time) error {
	q := l.Quality
	session, err := models.SessionInput{Bedtime: l.Bed, WakeTime: l.Wake, Quality: &q, Notes: l.Notes}.Validate(now)
	if err != nil {
		return err
	}
	saved, err := a.sessions.Add(ctx, session)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Sleep session logged: %s (%s, %s)\n", saved.ID, models.FormatDuration(saved.Duration()), saved.Tier().Label())
	return nil
}

// HistoryCmd prints the session history.
type HistoryCmd struct {
	Limit   int  `short:"n" help:"Show at most N sessions (0 for all)"`
	Reverse bool `help:"Oldest first instead of newest first"`
}

func (h *HistoryCmd) Run(cli *CLI) error {
	return withApp(cli, func(_ context.Context, a *app) error {
		return h.run(a, os.Stdout)
	})
}

func (h *HistoryCmd) run(a *app, w io.Writer) error {
	sessions := a.sessions.List()
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sleep sessions logged yet.")
		return nil
	}
	if !h.Reverse {
		slices.Reverse(sessions)
	}
	if h.Limit > 0 && len(sessions) > h.Limit {
		sessions = sessions[:h.Limit]
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLOGGED\tBED\tWAKE\tDURATION\tQUALITY\tNOTES")
	for _, s := range sessions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d/10 %s\t%s\n",
			s.ID, s.Date.Local().Format("Mon Jan 2 2006 15:04"), s.Bedtime, s.WakeTime,
			models.FormatDuration(s.Duration()), s.Quality, s.Tier().Label(), s.Notes)
	}
	return tw.Flush()
}

// DeleteCmd removes a session.
type DeleteCmd struct {
	ID string `arg:"" help:"Session id (see history)"`
}

func (d *DeleteCmd) Run(cli *CLI) error {
	return withApp(cli, func(ctx context.Context, a *app) error {
		return d.run(ctx, a, os.Stdout)
	})
}

func (d *DeleteCmd) run(ctx context.Context, a *app, w io.Writer) error {
	if err := a.sessions.Delete(ctx, d.ID); err != nil {
		return err
	}
	fmt.Fprintln(w, "Sleep session deleted")
	return nil
}

// StatsCmd prints averages and the recent window.
type StatsCmd struct{}

func (s *StatsCmd) Run(cli *CLI) error {
	return withApp(cli, func(_ context.Context, a *app) error {
		return s.run(a, os.Stdout)
	})
}

func (s *StatsCmd) run(a *app, w io.Writer) error {
	sum := models.Summarize(a.sessions.List())
	printer.Fprintf(w, "Avg sleep duration: %s (%.1f h)\n", sum.AvgDuration, sum.AvgDurationHours)
	printer.Fprintf(w, "Avg sleep quality:  %.1f/10\n", sum.AvgQuality)
	printer.Fprintf(w, "Total nights:       %d\n", sum.TotalNights)
	if len(sum.Recent) == 0 {
		fmt.Fprintln(w, "No sleep data yet. Start tracking to see your progress!")
		return nil
	}

	fmt.Fprintf(w, "\nLast %d nights:\n", len(sum.Recent))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, p := range sum.Recent {
		fmt.Fprintf(tw, "%s\t%.1fh\t%d/10\t%s\n", p.Date, p.Duration, p.Quality, models.QualityTier(p.Tier).Label())
	}
	return tw.Flush()
}

// RoutineCmd groups the checklist subcommands.
type RoutineCmd struct {
	List   RoutineListCmd   `cmd:"" default:"1" help:"Show the checklist"`
	Add    RoutineAddCmd    `cmd:"" help:"Add an activity"`
	Toggle RoutineToggleCmd `cmd:"" help:"Mark an activity done or not done"`
	Delete RoutineDeleteCmd `cmd:"" help:"Remove an activity"`
	Reset  RoutineResetCmd  `cmd:"" help:"Reset the checklist for tonight"`
}

type RoutineListCmd struct{}

func (c *RoutineListCmd) Run(cli *CLI) error {
	return withApp(cli, func(_ context.Context, a *app) error {
		return printRoutines(a, os.Stdout)
	})
}

type RoutineAddCmd struct {
	Name     string `arg:"" help:"Activity name"`
	Duration string `arg:"" help:"Duration in minutes"`
}

func (c *RoutineAddCmd) Run(cli *CLI) error {
	return withApp(cli, func(ctx context.Context, a *app) error {
		return c.run(ctx, a, os.Stdout)
	})
}

func (c *RoutineAddCmd) run(ctx context.Context, a *app, w io.Writer) error {
	item, err := a.routines.Add(ctx, c.Name, c.Duration)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Routine added: %s (%s)\n", item.Name, item.ID)
	return nil
}

type RoutineToggleCmd struct {
	ID string `arg:"" help:"Activity id"`
}

func (c *RoutineToggleCmd) Run(cli *CLI) error {
	return withApp(cli, func(ctx context.Context, a *app) error {
		if _, err := a.routines.Toggle(ctx, c.ID); err != nil {
			return err
		}
		return printRoutines(a, os.Stdout)
	})
}

type RoutineDeleteCmd struct {
	ID string `arg:"" help:"Activity id"`
}

func (c *RoutineDeleteCmd) Run(cli *CLI) error {
	return withApp(cli, func(ctx context.Context, a *app) error {
		if err := a.routines.Delete(ctx, c.ID); err != nil {
			return err
		}
		fmt.Println("Routine removed")
		return nil
	})
}

type RoutineResetCmd struct{}

func (c *RoutineResetCmd) Run(cli *CLI) error {
	return withApp(cli, func(ctx context.Context, a *app) error {
		if err := a.routines.Reset(ctx); err != nil {
			return err
		}
		fmt.Println("Routines reset for tonight")
		return nil
	})
}

func printRoutines(a *app, w io.Writer) error {
	items := a.routines.List()
	total, done := models.RoutineTotals(items)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range items {
		mark := "[ ]"
		if r.Completed {
			mark = "[x]"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d min\n", mark, r.ID, r.Name, r.Duration)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "%d/%d done, %d min total\n", done, len(items), total)
	return nil
}
