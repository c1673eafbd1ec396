package commands

import (
	"context"
	"fmt"

	"github.com/dayboard/dayboard/internal/models"
	"github.com/dayboard/dayboard/internal/store"
	"github.com/spf13/cobra"
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the persisted user stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := openStore()
			if err != nil {
				return err
			}
			defer cleanup()

			var stats models.UserStats
			found, err := s.Get(context.Background(), store.KeyUserStats, &stats)
			if err != nil {
				return fmt.Errorf("failed to read stats: %w", err)
			}
			if !found {
				fmt.Println("No stats persisted yet")
				return nil
			}

			fmt.Printf("Total points:    %d\n", stats.TotalPoints)
			fmt.Printf("Level:           %d\n", models.LevelForPoints(stats.TotalPoints, 0))
			fmt.Printf("XP today:        %d\n", stats.XPToday)
			fmt.Printf("Tasks completed: %d\n", stats.TasksCompleted)
			fmt.Printf("Streak days:     %d\n", stats.StreakDays)
			fmt.Printf("Last active:     %s\n", stats.LastActiveDate)

			return nil
		},
	}

	return cmd
}
