// Package leaderboard ranks sales reps by composite scores. All variants use
// a stable sort so equal scores keep their original relative order.
package leaderboard

import (
	"fmt"
	"sort"

	"github.com/sells-group/sales-dashboard/internal/model"
)

// Composite score weights for the gamified variant.
const (
	revenueWeight   = 0.0001
	winRateWeight   = 50
	dealCountWeight = 100
)

// Badge thresholds.
const (
	sniperWinRate    = 40
	rainmakerRevenue = 5_000_000
	streakMinimum    = 5
)

// Entry is one ranked actor.
type Entry struct {
	UserID    string   `json:"userId"`
	Name      string   `json:"name"`
	Revenue   float64  `json:"revenue"`
	WinRate   float64  `json:"winRate"`
	DealCount int      `json:"dealCount"`
	Score     float64  `json:"score"`
	Badges    []string `json:"badges,omitempty"`
}

// StreakSource supplies consecutive-win counters. Real deployments back this
// with externally tracked history; tests supply StaticStreaks.
type StreakSource interface {
	Streak(userID string) int
}

// StaticStreaks is a fixed StreakSource.
type StaticStreaks map[string]int

// Streak implements StreakSource.
func (s StaticStreaks) Streak(userID string) int { return s[userID] }

// rank sorts entries by score descending (stable) and truncates to topN.
func rank(entries []Entry, topN int) []Entry {
	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Score > entries[b].Score
	})
	if topN > 0 && len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}

// Simple ranks users by an externally supplied score, top 5 by default.
func Simple(users []model.User, score func(model.User) float64, topN int) []Entry {
	entries := make([]Entry, 0, len(users))
	for _, u := range users {
		entries = append(entries, Entry{UserID: u.ID, Name: u.Name, Score: score(u)})
	}
	return rank(entries, topN)
}

// Gamified ranks sales reps by the deal-based composite score and assigns
// badges. Only users with the sales_rep role participate. Badge assignment is
// deterministic for fixed input; any randomness lives in the StreakSource.
func Gamified(users []model.User, deals []model.Deal, won model.StageSet, streaks StreakSource, topN int) []Entry {
	entries := make([]Entry, 0, len(users))
	for _, u := range users {
		if u.Role != model.RoleSalesRep {
			continue
		}
		var revenue float64
		owned, wonCount := 0, 0
		for _, d := range deals {
			if d.OwnerID != u.ID {
				continue
			}
			owned++
			if won.Contains(d.Stage) {
				wonCount++
				revenue += d.Value
			}
		}
		winRate := 0.0
		if owned > 0 {
			winRate = 100 * float64(wonCount) / float64(owned)
		}
		entries = append(entries, Entry{
			UserID:    u.ID,
			Name:      u.Name,
			Revenue:   revenue,
			WinRate:   winRate,
			DealCount: wonCount,
			Score:     revenue*revenueWeight + winRate*winRateWeight + float64(wonCount)*dealCountWeight,
		})
	}

	entries = rank(entries, topN)

	for i := range entries {
		e := &entries[i]
		if i == 0 {
			e.Badges = append(e.Badges, "MVP")
		}
		if e.WinRate > sniperWinRate {
			e.Badges = append(e.Badges, "Sniper")
		}
		if e.Revenue > rainmakerRevenue {
			e.Badges = append(e.Badges, "Rainmaker")
		}
		if streaks != nil {
			if s := streaks.Streak(e.UserID); s > streakMinimum {
				e.Badges = append(e.Badges, fmt.Sprintf("%d-Win Streak", s))
			}
		}
	}
	return entries
}

// ByQuoteRevenue ranks reps by revenue from closed-won quotes, top 5 by
// default. Locale-equivalent closed-won labels count.
func ByQuoteRevenue(quotes []model.Quote, topN int) []Entry {
	closedWon := model.ClosedWonQuoteStatuses()
	index := make(map[string]int)
	var entries []Entry
	for _, q := range quotes {
		if _, ok := closedWon[q.Status]; !ok {
			continue
		}
		i, ok := index[q.SalesRepID]
		if !ok {
			i = len(entries)
			index[q.SalesRepID] = i
			entries = append(entries, Entry{UserID: q.SalesRepID, Name: q.SalesRepName})
		}
		entries[i].Revenue += q.Amount
		entries[i].DealCount++
	}
	for i := range entries {
		entries[i].Score = entries[i].Revenue
	}
	return rank(entries, topN)
}
