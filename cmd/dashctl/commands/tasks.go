package commands

import (
	"context"
	"fmt"

	"github.com/dayboard/dayboard/internal/config"
	"github.com/dayboard/dayboard/internal/models"
	"github.com/dayboard/dayboard/internal/store"
	"github.com/spf13/cobra"
)

// openStore connects to the configured Redis store. The returned cleanup
// closes the connection.
func openStore() (*store.RedisStore, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	s, err := store.NewRedisStore(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to store: %w", err)
	}

	cleanup := func() {
		_ = s.Close()
	}
	return s, cleanup, nil
}

// NewTasksCmd creates the tasks command
func NewTasksCmd() *cobra.Command {
	var includeCompleted bool

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List the persisted tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := openStore()
			if err != nil {
				return err
			}
			defer cleanup()

			var tasks []models.Task
			found, err := s.Get(context.Background(), store.KeyUserTasks, &tasks)
			if err != nil {
				return fmt.Errorf("failed to read tasks: %w", err)
			}
			if !found || len(tasks) == 0 {
				fmt.Println("No tasks persisted")
				return nil
			}

			for _, task := range tasks {
				if task.Completed && !includeCompleted {
					continue
				}
				marker := " "
				if task.Completed {
					marker = "x"
				}
				fmt.Printf("[%s] %s  %-10s %-8s %s\n",
					marker, task.Date, task.Category, task.Priority, task.Title)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&includeCompleted, "all", "a", false, "include completed tasks")

	return cmd
}
