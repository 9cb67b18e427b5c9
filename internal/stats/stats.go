// Package stats summarizes a player's daily results into the numbers shown on
// the results screen: games played, win rate, streaks, guess distribution.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/robalobadob/friendle/internal/daily"
)

type Stats struct {
	Played        int     `json:"played"`
	Wins          int     `json:"wins"`
	WinPercentage int     `json:"winPercentage"`
	CurrentStreak int     `json:"currentStreak"`
	MaxStreak     int     `json:"maxStreak"`
	Distribution  []int   `json:"distribution,omitempty"`
	AverageScore  float64 `json:"averageScore"`
}

// Compute folds history into Stats.
//
// buckets > 0 fills Distribution with the number of wins per score 1..buckets
// (guess counts); scores outside that range are not bucketed. A streak is a
// run of wins on consecutive UTC days; a loss or a skipped day resets it. The
// current streak survives until the day after its last win, measured against
// today.
func Compute(history []daily.Result, buckets int, today time.Time) Stats {
	var st Stats
	if buckets > 0 {
		st.Distribution = make([]int, buckets)
	}
	if len(history) == 0 {
		return st
	}

	sorted := append([]daily.Result(nil), history...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	var (
		total   int
		run     int
		lastWin time.Time
	)
	for _, r := range sorted {
		st.Played++
		total += r.Score

		day, err := daily.ParseDateKey(r.Date)
		if !r.Won || err != nil {
			run = 0
			continue
		}
		st.Wins++
		if buckets > 0 && r.Score >= 1 && r.Score <= buckets {
			st.Distribution[r.Score-1]++
		}
		if run > 0 && day.Sub(lastWin) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		lastWin = day
		if run > st.MaxStreak {
			st.MaxStreak = run
		}
	}

	st.WinPercentage = int(math.Round(float64(st.Wins) * 100 / float64(st.Played)))
	st.AverageScore = math.Round(float64(total)/float64(st.Played)*10) / 10

	if run > 0 {
		todayKey, _ := daily.ParseDateKey(daily.DateKey(today))
		if todayKey.Sub(lastWin) <= 24*time.Hour {
			st.CurrentStreak = run
		}
	}
	return st
}
