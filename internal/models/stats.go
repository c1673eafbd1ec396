package models

// DefaultPointsPerLevel is the flat level divisor: level = totalPoints/500 + 1.
const DefaultPointsPerLevel = 500

// UserStats holds the gamification counters for the single dashboard profile.
// TotalPoints and TasksCompleted only ever grow; Level is derived from
// TotalPoints and is recomputed (never trusted) on every load.
type UserStats struct {
	TotalPoints    int  `json:"total_points"`
	Level          int  `json:"level"`
	XPToday        int  `json:"xp_today"`
	TasksCompleted int  `json:"tasks_completed"`
	StreakDays     int  `json:"streak_days"`
	LastActiveDate Date `json:"last_active_date"`
}

// LevelForPoints computes the level tier for a lifetime point total.
func LevelForPoints(totalPoints, pointsPerLevel int) int {
	if pointsPerLevel <= 0 {
		pointsPerLevel = DefaultPointsPerLevel
	}
	return totalPoints/pointsPerLevel + 1
}
