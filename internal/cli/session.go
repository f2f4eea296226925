package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/seabattle/internal/api/response"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Drive a persisted bot opponent",
	}

	cmd.AddCommand(newSessionCreateCmd())
	cmd.AddCommand(newSessionListCmd())
	cmd.AddCommand(newSessionGetCmd())
	cmd.AddCommand(newSessionDeleteCmd())
	cmd.AddCommand(newSessionNextCmd())
	cmd.AddCommand(newSessionResultCmd())
	cmd.AddCommand(newSessionIncomingCmd())

	return cmd
}

func sessionPath(id, suffix string) string {
	return fmt.Sprintf("/api/v1/sessions/%s%s", id, suffix)
}

func newSessionCreateCmd() *cobra.Command {
	var strategy, policy string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a bot session with a freshly placed fleet",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"strategy": strategy}
			if policy != "" {
				req["policy"] = policy
			}

			var result response.Session

			if err := client.Post(cmd.Context(), "/api/v1/sessions", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "", "Targeting strategy (required)")
	cmd.Flags().StringVar(&policy, "policy", "", "Placement policy for the bot's fleet (default: unbiased)")
	_ = cmd.MarkFlagRequired("strategy")

	return cmd
}

func newSessionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List bot sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.SessionList

			if err := client.Get(cmd.Context(), "/api/v1/sessions", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newSessionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a session and the bot's tracking board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Session

			if err := client.Get(cmd.Context(), sessionPath(args[0], ""), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newSessionDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(cmd.Context(), sessionPath(args[0], "")); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage(fmt.Sprintf("Deleted session %s", args[0]))
			return nil
		},
	}
}

func newSessionNextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next <id>",
		Short: "Ask the bot for its next shot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Shot

			if err := client.Post(cmd.Context(), sessionPath(args[0], "/shots"), nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

// parseVerdict maps miss, hit and sunk onto the hit/sunk flags
func parseVerdict(s string) (hit, sunk bool, err error) {
	switch s {
	case "miss":
		return false, false, nil
	case "hit":
		return true, false, nil
	case "sunk":
		return true, true, nil
	default:
		return false, false, fmt.Errorf("verdict must be miss, hit or sunk, got %q", s)
	}
}

func newSessionResultCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "result <id> <miss|hit|sunk>",
		Short:     "Report what the bot's pending shot did",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"miss", "hit", "sunk"},
		RunE: func(cmd *cobra.Command, args []string) error {
			hit, sunk, err := parseVerdict(args[1])
			if err != nil {
				return err
			}

			var result response.Session

			req := map[string]bool{"hit": hit, "sunk": sunk}
			if err := client.Post(cmd.Context(), sessionPath(args[0], "/results"), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newSessionIncomingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "incoming <id> <row> <col>",
		Short: "Fire at the bot's fleet",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("row must be a number: %w", err)
			}
			col, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("col must be a number: %w", err)
			}

			var result response.IncomingResult

			req := map[string]int{"row": row, "col": col}
			if err := client.Post(cmd.Context(), sessionPath(args[0], "/incoming"), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}
