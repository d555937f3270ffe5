// Command ecs-stress measures the tick cost of the game with many moving
// entities next to the player and prints a markdown report.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/boringgame/ecs"
	"github.com/plus3/boringgame/game"
	"github.com/plus3/boringgame/settings"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The number of lasers moving next to the player.")
	maxTicks := flag.Int("ticks", 0, "Stop after this many ticks. Zero runs for the whole duration.")
	seed := flag.Uint64("seed", 1, "Seed for laser placement.")
	configPath := flag.String("config", "", "Path to a YAML settings file.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	s := settings.Default()
	s.Log.Level = "warn"
	if *configPath != "" {
		loaded, err := settings.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		s = loaded
	}

	logger, err := s.Log.NewLogger(os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger.Info().Msg("starting ECS stress test")

	// 1. Setup the game with the lasers' components registered next to its own
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Laser](registry)

	viewport := game.Viewport{Width: float64(s.Window.Width), Height: float64(s.Window.Height)}
	g, err := game.New(viewport,
		game.WithConfig(s.Game.Config()),
		game.WithLogger(logger),
		game.WithRegistry(registry),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create game")
	}
	g.Scheduler().Register(&LaserSystem{Sprite: s.Assets.LaserSprite})

	// 2. Populate storage with lasers
	logger.Info().Int("entities", *entityCount).Msg("populating storage")
	rng := rand.New(rand.NewPCG(*seed, *seed))
	for range *entityCount {
		SpawnLaser(g.Storage(), viewport, s.Assets.LaserSprite, rng)
	}

	// 3. Run the simulation loop
	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		TickRate:       g.Config().TickRate,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info().Dur("duration", *duration).Msg("running simulation")
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	dt := g.Config().DeltaTime()
	startTime := time.Now()
	var totalUpdates int64

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			if *maxTicks > 0 && totalUpdates >= int64(*maxTicks) {
				break Loop
			}

			keys := ScriptedKeys(totalUpdates)

			updateStart := time.Now()
			g.Step(keys, dt)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Collect(g)

	logger.Info().Int64("ticks", totalUpdates).Msg("simulation finished")

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal().Err(err).Msg("failed to generate report")
	}
	fmt.Println("--- End of Report ---")

	logger.Info().Msg("stress test complete")
}
