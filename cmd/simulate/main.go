// Command simulate previews workout compositions across styles and durations
// without touching persistence. It is a smoke-testing tool for eyeballing what
// the generator produces from a fixed seed token.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/noble-hunt/AXLE-sub000/internal/errors"
	"github.com/noble-hunt/AXLE-sub000/internal/generation"
	"github.com/noble-hunt/AXLE-sub000/internal/logging"
	"github.com/noble-hunt/AXLE-sub000/internal/registry"
	"golang.org/x/sync/errgroup"
)

type cli struct {
	Styles      []string `help:"Styles to simulate." default:"crossfit,olympic_weightlifting,powerlifting,strength,hiit,endurance"`
	Durations   []int    `help:"Durations in minutes." default:"30,45,60"`
	Intensity   int      `help:"Intensity from 1 to 10." default:"6"`
	Equipment   []string `help:"Available equipment." default:"barbell,dumbbell,kettlebell,medicine_ball,pull_up_bar,box,rower,bike,ski_erg,jump_rope,bench"`
	Constraints []string `help:"Constraints such as no_running."`
	Token       string   `help:"Seed token prefix. Fixed prefix makes runs reproducible." default:"simulate"`
	Concurrency int      `help:"Parallel previews." default:"4"`
	Verbose     bool     `help:"Log at debug level."`
}

type result struct {
	Style           string             `json:"style"`
	DurationMinutes int                `json:"duration_minutes"`
	Token           string             `json:"token"`
	Workout         generation.Workout `json:"workout"`
	Error           string             `json:"error,omitempty"`
}

func run(ctx context.Context, args cli, logger *slog.Logger) error {
	engine := generation.NewEngine(registry.New(), nil, logger)

	results := make([]result, len(args.Styles)*len(args.Durations))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(args.Concurrency)

	for i, style := range args.Styles {
		for j, duration := range args.Durations {
			idx := i*len(args.Durations) + j
			token := fmt.Sprintf("%s:%s:%d", args.Token, style, duration)
			req := generation.Request{
				Style:           generation.Style(style),
				DurationMinutes: duration,
				Intensity:       args.Intensity,
				Equipment:       args.Equipment,
				Constraints:     args.Constraints,
			}
			g.Go(func() error {
				res := result{
					Style:           style,
					DurationMinutes: duration,
					Token:           token,
				}
				w, err := engine.Preview(ctx, req, token)
				if err != nil {
					// Infeasible combinations are part of the answer, not a
					// reason to abort the whole sweep.
					res.Error = err.Error()
					logger.LogAttrs(ctx, slog.LevelWarn, "preview failed",
						slog.String("style", style),
						slog.Int("duration_minutes", duration),
						errors.SlogError(err))
				} else {
					res.Workout = w
				}
				results[idx] = res
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "run previews")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return errors.Wrap(err, "encode results")
	}
	return nil
}

func main() {
	var args cli
	kctx := kong.Parse(&args,
		kong.Name("simulate"),
		kong.Description("Preview workout compositions across styles and durations."))

	level := slog.LevelInfo
	if args.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	if err := run(context.Background(), args, logger); err != nil {
		logger.LogAttrs(context.Background(), slog.LevelError, "simulation failed", errors.SlogError(err))
		kctx.Exit(1)
	}
}
