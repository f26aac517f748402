package cli

import (
	"github.com/spf13/cobra"
)

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Typing test commands",
	}

	cmd.AddCommand(newTestStartCmd())
	cmd.AddCommand(newTestTypeCmd())

	return cmd
}

func newTestStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <roomKey> <playerId>",
		Short: "Start a typing test (host only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"roomKey":  args[0],
				"playerId": args[1],
			}

			if err := client.Post("/api/post/start", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Test started")
			return nil
		},
	}
}

func newTestTypeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "type <roomKey> <playerId> <typed>",
		Short: "Submit typed progress for a running test",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"roomKey":  args[0],
				"playerId": args[1],
				"typed":    args[2],
			}

			if err := client.Post("/api/post/testData", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Progress submitted")
			return nil
		},
	}
}
