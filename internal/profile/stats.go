package profile

import (
	"sort"

	"playdamnit/internal/library"
	"playdamnit/pkg/models"
)

// Stats is the headline card block on a profile page.
type Stats struct {
	Total          int             `json:"total"`
	StatusCounts   map[string]int  `json:"statusCounts"`
	CompletionRate float64         `json:"completionRate"`
	Platforms      []PlatformShare `json:"platforms"`
}

// PlatformShare is one slice of the primary-platform distribution.
type PlatformShare struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ComputeStats derives the profile stat cards from a library snapshot.
// Entries without user data count toward the total but toward no
// status bucket. Completion rate is finished/total*100, 0 for an
// empty library.
func ComputeStats(entries []models.LibraryEntry) Stats {
	stats := Stats{
		Total: len(entries),
		StatusCounts: map[string]int{
			models.StatusFinished:   0,
			models.StatusPlaying:    0,
			models.StatusDropped:    0,
			models.StatusWantToPlay: 0,
		},
	}

	platformCounts := make(map[string]int)
	for _, e := range entries {
		if e.UserGameData != nil {
			if _, ok := stats.StatusCounts[e.UserGameData.Status]; ok {
				stats.StatusCounts[e.UserGameData.Status]++
			}
		}
		platformCounts[e.PrimaryPlatform()]++
	}

	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.StatusCounts[models.StatusFinished]) / float64(stats.Total) * 100
	}

	for name, count := range platformCounts {
		stats.Platforms = append(stats.Platforms, PlatformShare{
			Name:       name,
			Count:      count,
			Percentage: float64(count) / float64(stats.Total) * 100,
		})
	}
	// biggest share first, names break ties so output is stable
	sort.Slice(stats.Platforms, func(i, j int) bool {
		if stats.Platforms[i].Count != stats.Platforms[j].Count {
			return stats.Platforms[i].Count > stats.Platforms[j].Count
		}
		return stats.Platforms[i].Name < stats.Platforms[j].Name
	})

	return stats
}

// TabCounts reports how many entries each tab would show, for the tab
// badges above the game list.
func TabCounts(entries []models.LibraryEntry) map[string]int {
	counts := make(map[string]int, 5)
	for _, tab := range []library.Tab{library.TabAll, library.TabFinished, library.TabPlaying, library.TabDropped, library.TabWant} {
		n := 0
		for _, e := range entries {
			if library.MatchesTab(e, tab) {
				n++
			}
		}
		counts[string(tab)] = n
	}
	return counts
}
