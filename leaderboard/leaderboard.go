package leaderboard

import (
	"math"
	"sort"
	"time"

	"tastebud/models"
)

// ResultEntry is one ranked row of a per-quiz leaderboard.
type ResultEntry struct {
	Rank        int       `json:"rank"`
	Username    string    `json:"username"`
	Score       int       `json:"score"`
	TimeTaken   *int      `json:"time_taken,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}

// Rank orders results by score descending and assigns dense 1-based ranks,
// truncated to limit (limit <= 0 means no truncation). The sort is stable:
// tied scores keep their input order, which is the defined tie-break.
func Rank(results []models.Result, limit int) []ResultEntry {
	sorted := make([]models.Result, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	entries := make([]ResultEntry, len(sorted))
	for i, r := range sorted {
		entries[i] = ResultEntry{
			Rank:        i + 1,
			Username:    r.User.Username,
			Score:       r.Score,
			TimeTaken:   r.TimeTaken,
			CompletedAt: r.CompletedAt,
		}
	}
	return entries
}

// UserEntry is one row of the global leaderboard.
type UserEntry struct {
	Rank         int      `json:"rank"`
	Username     string   `json:"username"`
	AvatarURL    string   `json:"avatar_url,omitempty"`
	TotalScore   int      `json:"total_score"`
	QuizzesTaken int      `json:"quizzes_taken"`
	AverageScore float64  `json:"average_score"`
	Achievements []string `json:"achievements"`
}

// RankUsers orders users by running total score descending (stable, dense
// ranks, truncated to limit) and attaches each user's average score and
// earned achievement names. Users are expected with Achievements preloaded.
func RankUsers(users []models.User, limit int) []UserEntry {
	sorted := make([]models.User, len(users))
	copy(sorted, users)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalScore > sorted[j].TotalScore
	})

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	entries := make([]UserEntry, len(sorted))
	for i, u := range sorted {
		average := 0.0
		if u.QuizzesTaken > 0 {
			average = math.Round(float64(u.TotalScore)/float64(u.QuizzesTaken)*100) / 100
		}

		names := make([]string, 0, len(u.Achievements))
		for _, a := range u.Achievements {
			if a.Name != "" {
				names = append(names, a.Name)
			}
		}

		entries[i] = UserEntry{
			Rank:         i + 1,
			Username:     u.Username,
			AvatarURL:    u.AvatarURL,
			TotalScore:   u.TotalScore,
			QuizzesTaken: u.QuizzesTaken,
			AverageScore: average,
			Achievements: names,
		}
	}
	return entries
}
