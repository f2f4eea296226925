package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/seabattle/internal/api/response"
	"github.com/mcoot/seabattle/internal/services/match"
)

func newSimulateCmd() *cobra.Command {
	var (
		req   match.BatchConfig
		seed  uint64
		local bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play a batch of self-play games and report shot statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Simulation

			if local {
				sim, rnd := localSimulator(seed)
				stats, err := sim.RunBatch(cmd.Context(), req)
				if err != nil {
					return err
				}
				result = response.Simulation{BatchStats: *stats, Seed: rnd.Seed()}
			} else {
				body := map[string]any{
					"strategy":   req.Strategy,
					"policy":     req.Policy,
					"games":      req.Games,
					"seed":       seed,
					"omniscient": req.Omniscient,
				}
				if err := client.Post(cmd.Context(), "/api/v1/simulations", body, &result); err != nil {
					return err
				}
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Strategy, "strategy", "", "Targeting strategy (required)")
	cmd.Flags().StringVar(&req.Policy, "policy", "", "Placement policy of the target fleets (default: unbiased)")
	cmd.Flags().IntVarP(&req.Games, "games", "n", 100, "Number of games")
	cmd.Flags().BoolVar(&req.Omniscient, "omniscient", false, "Let the adaptive strategy see live enemy cells")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed for a reproducible run")
	cmd.Flags().BoolVar(&local, "local", false, "Run in-process instead of calling the server")
	_ = cmd.MarkFlagRequired("strategy")

	return cmd
}

// parseContender reads "strategy[:policy]"
func parseContender(name, value string) (match.Contender, error) {
	strategy, policy, _ := strings.Cut(value, ":")
	if strategy == "" {
		return match.Contender{}, fmt.Errorf("--%s needs a strategy, e.g. heatmap or adaptive:border", name)
	}
	return match.Contender{Name: name, Strategy: strategy, Policy: policy}, nil
}

func newDuelCmd() *cobra.Command {
	var (
		contenderA, contenderB string
		seed                   uint64
		local                  bool
	)

	cmd := &cobra.Command{
		Use:   "duel",
		Short: "Pit two strategies against each other in one game",
		Long: `Pit two strategies against each other. Each side is given as
strategy[:policy], where policy is how that side places its own fleet.
A hit earns the shooter another shot.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parseContender("a", contenderA)
			if err != nil {
				return err
			}
			b, err := parseContender("b", contenderB)
			if err != nil {
				return err
			}

			var result response.Duel

			if local {
				sim, rnd := localSimulator(seed)
				duel, err := sim.Duel(cmd.Context(), a, b)
				if err != nil {
					return err
				}
				result = response.DuelFromResult([2]string{a.Name, b.Name}, rnd.Seed(), duel)
			} else {
				body := map[string]any{"a": a, "b": b, "seed": seed}
				if err := client.Post(cmd.Context(), "/api/v1/duels", body, &result); err != nil {
					return err
				}
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&contenderA, "a", "", "First contender as strategy[:policy] (required)")
	cmd.Flags().StringVar(&contenderB, "b", "", "Second contender as strategy[:policy] (required)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed for a reproducible duel")
	cmd.Flags().BoolVar(&local, "local", false, "Run in-process instead of calling the server")
	_ = cmd.MarkFlagRequired("a")
	_ = cmd.MarkFlagRequired("b")

	return cmd
}
