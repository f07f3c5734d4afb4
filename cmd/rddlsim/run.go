package main

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rddlgo/rddlgo/internal/rlenv"
)

func newRunCmd() *cobra.Command {
	var scenario, configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Roll out a scenario against a uniform random policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			gm, cfg, err := loadScenario(scenario, configPath)
			if err != nil {
				return err
			}

			env := rlenv.New(gm, cfg.Seed, cfg.EnforceActionConstraints)
			obs, err := env.Reset()
			if err != nil {
				return fmt.Errorf("reset: %w", err)
			}
			fmt.Printf("%s episode %s, horizon %d\n", cyan("→"), env.EpisodeID(), env.Horizon())
			printObservation(obs)

			rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
			var cumulative float64
			for step := 0; step < env.Horizon(); step++ {
				actions := randomActions(env.ActionSpace(), rng)
				obs, reward, done, err := env.Step(actions)
				if err != nil {
					return fmt.Errorf("step %d: %w", step, err)
				}
				cumulative += reward
				fmt.Printf("%s step %d reward=%s done=%v\n", cyan("→"), step, formatFloat(reward), done)
				printObservation(obs)
				if done {
					break
				}
			}
			fmt.Printf("%s cumulative reward %s\n", green("✓"), formatFloat(cumulative))
			return nil
		},
	}

	cmd.Flags().StringVar(&scenario, "scenario", "", "scenario name (see 'rddlsim version --scenarios')")
	cmd.Flags().StringVar(&configPath, "config", "", "optional scenario.yml path")
	cmd.MarkFlagRequired("scenario")

	return cmd
}

func randomActions(spaces map[string]rlenv.Space, rng *rand.Rand) map[string]any {
	actions := make(map[string]any, len(spaces))
	for name, s := range spaces {
		switch s.Kind {
		case rlenv.KindDiscrete:
			actions[name] = s.Start + rng.Int64N(s.N)
		case rlenv.KindBox:
			low, high := s.Low, s.High
			if math.IsInf(low, -1) {
				low = -1
			}
			if math.IsInf(high, 1) {
				high = 1
			}
			if low >= high {
				actions[name] = low
				continue
			}
			actions[name] = low + rng.Float64()*(high-low)
		}
	}
	return actions
}

func printObservation(obs map[string]any) {
	names := make([]string, 0, len(obs))
	for name := range obs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s = %v\n", name, obs[name])
	}
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%g", f)
}
