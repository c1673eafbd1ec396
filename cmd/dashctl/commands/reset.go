package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dayboard/dayboard/internal/models"
	"github.com/dayboard/dayboard/internal/store"
	"github.com/spf13/cobra"
)

// NewResetCmd creates the reset command. This is a development convenience:
// the engine itself never clears state or deducts points.
func NewResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear all persisted dashboard state",
		Long:  "Overwrites stats, tasks and the rollover marker with empty values. Irreversible.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Print("This wipes all dashboard state. Type 'yes' to continue: ")
				reader := bufio.NewReader(os.Stdin)
				answer, _ := reader.ReadString('\n')
				if strings.TrimSpace(answer) != "yes" {
					fmt.Println("Aborted")
					return nil
				}
			}

			s, cleanup, err := openStore()
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := context.Background()
			if err := s.Set(ctx, store.KeyUserStats, &models.UserStats{Level: 1}); err != nil {
				return fmt.Errorf("failed to reset stats: %w", err)
			}
			if err := s.Set(ctx, store.KeyUserTasks, []models.Task{}); err != nil {
				return fmt.Errorf("failed to reset tasks: %w", err)
			}
			if err := s.Set(ctx, store.KeyLastActiveDate, models.Date("")); err != nil {
				return fmt.Errorf("failed to reset rollover marker: %w", err)
			}

			fmt.Println("Dashboard state reset")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}
