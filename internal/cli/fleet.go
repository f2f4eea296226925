package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/seabattle/internal/api/response"
	"github.com/mcoot/seabattle/internal/dependencies/random"
	"github.com/mcoot/seabattle/internal/services/placement"
)

func newFleetCmd() *cobra.Command {
	var (
		policy string
		seed   uint64
		local  bool
	)

	cmd := &cobra.Command{
		Use:   "fleet",
		Short: "Generate a fleet layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Fleet

			if local {
				p, err := placement.NewPolicy(policy)
				if err != nil {
					return err
				}
				rnd := random.NewSeeded(seed)
				layout, err := placement.NewGenerator(rnd, localLogger()).Generate(p)
				if err != nil {
					return err
				}
				result = response.FleetFromModel(p.Name(), rnd.Seed(), layout)
			} else {
				req := map[string]any{"policy": policy, "seed": seed}
				if err := client.Post(cmd.Context(), "/api/v1/fleets", req, &result); err != nil {
					return err
				}
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&policy, "policy", "", "Placement policy (default: unbiased)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed for a reproducible layout")
	cmd.Flags().BoolVar(&local, "local", false, "Generate in-process instead of calling the server")

	return cmd
}
