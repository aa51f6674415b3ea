package library

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"playdamnit/pkg/models"
)

// UnknownYear labels entries with no usable date. Their bucket always
// sorts after every real year.
const UnknownYear = "Unknown Year"

// Tab is a profile filter tab as the UI names it.
type Tab string

const (
	TabAll      Tab = "All"
	TabFinished Tab = "Finished"
	TabPlaying  Tab = "Playing"
	TabDropped  Tab = "Dropped"
	TabWant     Tab = "Want"
)

// ParseTab maps user input onto a tab, accepting the stored status
// names as aliases. Unrecognized input yields "" and false.
func ParseTab(s string) (Tab, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return TabAll, true
	case "finished":
		return TabFinished, true
	case "playing":
		return TabPlaying, true
	case "dropped":
		return TabDropped, true
	case "want", "want_to_play", "wishlist":
		return TabWant, true
	default:
		return "", false
	}
}

// Status returns the backend status a tab selects, "" for All.
func (t Tab) Status() string {
	switch t {
	case TabFinished:
		return models.StatusFinished
	case TabPlaying:
		return models.StatusPlaying
	case TabDropped:
		return models.StatusDropped
	case TabWant:
		return models.StatusWantToPlay
	default:
		return ""
	}
}

// timestamp layouts the backend has been seen emitting. addedAt/endedAt
// are ISO-8601; date-only values appear in imported data.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// PrimaryDate picks the single date used to sort and group an entry:
// endedAt when the user finished or dropped the game, then addedAt,
// then the catalog release date. The zero time is the "no date known"
// sentinel; real epoch-era releases still carry their own year.
// Malformed timestamps never panic, they fall through to the next
// source.
func PrimaryDate(e models.LibraryEntry) time.Time {
	if ugd := e.UserGameData; ugd != nil {
		if ugd.Status == models.StatusFinished || ugd.Status == models.StatusDropped {
			if t, ok := parseTimestamp(ugd.EndedAt); ok {
				return t
			}
		}
		if t, ok := parseTimestamp(ugd.AddedAt); ok {
			return t
		}
	}
	if e.FirstReleaseDate != 0 {
		return time.Unix(e.FirstReleaseDate, 0).UTC()
	}
	return time.Time{}
}

// YearLabel is the four-digit bucket key for a primary date.
func YearLabel(t time.Time) string {
	if t.IsZero() {
		return UnknownYear
	}
	return strconv.Itoa(t.Year())
}

// YearGroup is one rendered bucket of the profile list.
type YearGroup struct {
	Year    string                `json:"year"`
	Entries []models.LibraryEntry `json:"entries"`
}

// GroupByYear partitions entries into year buckets. Buckets are ordered
// by descending year with Unknown Year last; entries within a bucket by
// descending primary date, ties broken by case-insensitive name. Pure:
// the same input sequence always yields the same output.
func GroupByYear(entries []models.LibraryEntry) []YearGroup {
	type dated struct {
		entry models.LibraryEntry
		at    time.Time
	}

	buckets := make(map[string][]dated)
	var years []string
	for _, e := range entries {
		at := PrimaryDate(e)
		year := YearLabel(at)
		if _, seen := buckets[year]; !seen {
			years = append(years, year)
		}
		buckets[year] = append(buckets[year], dated{entry: e, at: at})
	}

	sort.SliceStable(years, func(i, j int) bool {
		if years[i] == UnknownYear {
			return false
		}
		if years[j] == UnknownYear {
			return true
		}
		yi, _ := strconv.Atoi(years[i])
		yj, _ := strconv.Atoi(years[j])
		return yi > yj
	})

	groups := make([]YearGroup, 0, len(years))
	for _, year := range years {
		items := buckets[year]
		sort.SliceStable(items, func(i, j int) bool {
			if !items[i].at.Equal(items[j].at) {
				return items[i].at.After(items[j].at)
			}
			return strings.ToLower(items[i].entry.Name) < strings.ToLower(items[j].entry.Name)
		})

		out := make([]models.LibraryEntry, len(items))
		for i, it := range items {
			out[i] = it.entry
		}
		groups = append(groups, YearGroup{Year: year, Entries: out})
	}
	return groups
}

// MatchesTab reports whether the entry's status belongs on the tab.
// All matches everything, including entries with no user data.
func MatchesTab(e models.LibraryEntry, tab Tab) bool {
	if tab == TabAll {
		return true
	}
	if e.UserGameData == nil {
		return false
	}
	return e.UserGameData.Status == tab.Status()
}

// MatchesSearch is a case-insensitive substring match against the name,
// the primary platform and every genre. An empty term matches.
func MatchesSearch(e models.LibraryEntry, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(e.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(e.PrimaryPlatform()), term) {
		return true
	}
	for _, g := range e.Genres {
		if strings.Contains(strings.ToLower(g.Name), term) {
			return true
		}
	}
	return false
}

// Matches combines the active tab and the search term into the single
// inclusion predicate the profile list uses.
func Matches(e models.LibraryEntry, tab Tab, term string) bool {
	return MatchesTab(e, tab) && MatchesSearch(e, term)
}

// Filter returns the entries matching tab and term, preserving input order.
func Filter(entries []models.LibraryEntry, tab Tab, term string) []models.LibraryEntry {
	out := make([]models.LibraryEntry, 0, len(entries))
	for _, e := range entries {
		if Matches(e, tab, term) {
			out = append(out, e)
		}
	}
	return out
}
