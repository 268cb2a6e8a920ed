// Package analytics derives summary statistics from a document snapshot.
// Every function here is pure: it reads the snapshot and an injected
// reference time, mutates nothing, and never returns an error. Missing
// or malformed data degrades to zero values.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/mahavak/rhonda/internal/constants"
	"github.com/mahavak/rhonda/internal/models"
)

// CurrentStreak walks day-by-day backward from now's date and counts
// consecutive days with at least one supplement or sauna event. The walk
// starts at today: a day without activity, today included, ends the
// count, so a streak that lapsed yesterday reads 0 until something is
// recorded again.
func CurrentStreak(doc models.Document, now time.Time) int {
	active := activeDates(doc)

	streak := 0
	day := dateOf(now)
	for active[day.Format(constants.DateFormat)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// AverageConsistency is the share of days in the trailing window with at
// least one event, as a 0-100 integer percentage. The window includes
// now's date and excludes dates before now minus the window.
func AverageConsistency(doc models.Document, now time.Time) int {
	windowDays := constants.ConsistencyWindowDays
	cutoff := dateOf(now).AddDate(0, 0, -(windowDays - 1)).Format(constants.DateFormat)
	today := dateOf(now).Format(constants.DateFormat)

	activeDays := 0
	for date := range activeDates(doc) {
		if date >= cutoff && date <= today {
			activeDays++
		}
	}

	return int(math.Round(float64(activeDays) / float64(windowDays) * 100))
}

// CostSummary is the monthly spend rollup across the catalog.
type CostSummary struct {
	Total          float64
	BySlot         map[models.TimingSlot]float64
	AveragePerItem float64
}

// CostRollup groups monthly cost by timing slot. Every slot appears in
// the result even when empty. An empty catalog yields average 0.
func CostRollup(catalog []models.SupplementDefinition) CostSummary {
	out := CostSummary{
		BySlot: make(map[models.TimingSlot]float64, len(models.TimingSlots())),
	}
	for _, slot := range models.TimingSlots() {
		out.BySlot[slot] = 0
	}

	for _, def := range catalog {
		out.BySlot[def.Timing] += def.CostPerMonth
		out.Total += def.CostPerMonth
	}

	if len(catalog) > 0 {
		out.AveragePerItem = out.Total / float64(len(catalog))
	}
	return out
}

// FrequencyCount is one histogram bar: a supplement id and how many
// times it was recorded.
type FrequencyCount struct {
	SupplementID string
	Count        int
}

// FrequencyHistogram counts events per supplement id, sorted descending
// by count. Ties keep first-recorded order. At most topN entries are
// returned.
func FrequencyHistogram(doc models.Document) []FrequencyCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, e := range doc.ActivityLog.SupplementEvents {
		if _, seen := counts[e.SupplementID]; !seen {
			order = append(order, e.SupplementID)
		}
		counts[e.SupplementID]++
	}

	out := make([]FrequencyCount, 0, len(order))
	for _, id := range order {
		out = append(out, FrequencyCount{SupplementID: id, Count: counts[id]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})

	if len(out) > constants.FrequencyTopN {
		out = out[:constants.FrequencyTopN]
	}
	return out
}

// HeatmapDay is one calendar cell of the activity heatmap.
type HeatmapDay struct {
	Date      string
	Count     int
	Intensity float64
}

// HeatmapBuckets returns one bucket per trailing calendar day, oldest
// first. Intensity is the day's count scaled by the window maximum; an
// all-zero window maps every intensity to 0.
func HeatmapBuckets(doc models.Document, now time.Time) []HeatmapDay {
	windowDays := constants.HeatmapWindowDays

	counts := make(map[string]int)
	for _, a := range doc.ActivityLog.Activities() {
		counts[a.Date]++
	}

	start := dateOf(now).AddDate(0, 0, -(windowDays - 1))
	out := make([]HeatmapDay, 0, windowDays)
	max := 0
	for i := 0; i < windowDays; i++ {
		date := start.AddDate(0, 0, i).Format(constants.DateFormat)
		c := counts[date]
		if c > max {
			max = c
		}
		out = append(out, HeatmapDay{Date: date, Count: c})
	}

	if max > 0 {
		for i := range out {
			out[i].Intensity = float64(out[i].Count) / float64(max)
		}
	}
	return out
}

// TrendPoint is one day of the supplement trend line.
type TrendPoint struct {
	Date  string
	Count int
}

// TrendSeries returns per-day taken-supplement counts over the trailing
// consistency window, oldest first.
func TrendSeries(doc models.Document, now time.Time) []TrendPoint {
	counts := make(map[string]int)
	for _, e := range doc.ActivityLog.SupplementEvents {
		if e.Taken {
			counts[e.Date]++
		}
	}

	start := dateOf(now).AddDate(0, 0, -(constants.ConsistencyWindowDays - 1))
	out := make([]TrendPoint, 0, constants.ConsistencyWindowDays)
	for i := 0; i < constants.ConsistencyWindowDays; i++ {
		date := start.AddDate(0, 0, i).Format(constants.DateFormat)
		out = append(out, TrendPoint{Date: date, Count: counts[date]})
	}
	return out
}

// Stats bundles the dashboard derivations for one snapshot.
type Stats struct {
	Streak      int
	Consistency int
	LegacyScore int
	Costs       CostSummary
	Frequency   []FrequencyCount
	Heatmap     []HeatmapDay
	Trend       []TrendPoint
	Supplements int
	SaunaTotal  int
	SaunaAvgMin float64
	DaysTracked int
}

// Derive computes the full dashboard stat set.
func Derive(doc models.Document, now time.Time) Stats {
	return Stats{
		Streak:      CurrentStreak(doc, now),
		Consistency: AverageConsistency(doc, now),
		LegacyScore: LegacyConsistencyScore(doc, now),
		Costs:       CostRollup(doc.SupplementCatalog),
		Frequency:   FrequencyHistogram(doc),
		Heatmap:     HeatmapBuckets(doc, now),
		Trend:       TrendSeries(doc, now),
		Supplements: supplementsTaken(doc),
		SaunaTotal:  len(doc.ActivityLog.SaunaEvents),
		SaunaAvgMin: averageSaunaMinutes(doc),
		DaysTracked: len(activeDates(doc)),
	}
}

// Metrics maps each achievement requirement type to its current value,
// so the award engine can evaluate the whole definition table against
// one snapshot.
func Metrics(doc models.Document, now time.Time) map[models.RequirementType]int {
	return map[models.RequirementType]int{
		models.ReqSupplementsTaken:    supplementsTaken(doc),
		models.ReqSaunaSessions:       len(doc.ActivityLog.SaunaEvents),
		models.ReqStreakDays:          CurrentStreak(doc, now),
		models.ReqDaysTracked:         len(activeDates(doc)),
		models.ReqChallengesCompleted: doc.Progress.ChallengesCompleted,
	}
}

// LegacyConsistencyScore reproduces the historical dashboard score: the
// 30-day supplement count against a 10-per-day target, averaged with the
// sauna count against a fixed 16-session denominator. The sauna side
// does not scale with elapsed days; the asymmetry is preserved so scores
// stay comparable with old exports.
func LegacyConsistencyScore(doc models.Document, now time.Time) int {
	cutoff := dateOf(now).AddDate(0, 0, -(constants.ConsistencyWindowDays - 1)).Format(constants.DateFormat)
	today := dateOf(now).Format(constants.DateFormat)

	supplements := 0
	for _, e := range doc.ActivityLog.SupplementEvents {
		if e.Taken && e.Date >= cutoff && e.Date <= today {
			supplements++
		}
	}
	sauna := 0
	for _, e := range doc.ActivityLog.SaunaEvents {
		if e.Date >= cutoff && e.Date <= today {
			sauna++
		}
	}

	supplementScore := math.Min(float64(supplements)/float64(constants.ConsistencyWindowDays*constants.ConsistencyTargetPerDay), 1)
	saunaScore := math.Min(float64(sauna)/float64(constants.ConsistencySaunaDenom), 1)
	return int(math.Round((supplementScore + saunaScore) / 2 * 100))
}

func averageSaunaMinutes(doc models.Document) float64 {
	if len(doc.ActivityLog.SaunaEvents) == 0 {
		return 0
	}
	total := 0
	for _, e := range doc.ActivityLog.SaunaEvents {
		total += e.DurationMin
	}
	return float64(total) / float64(len(doc.ActivityLog.SaunaEvents))
}

func supplementsTaken(doc models.Document) int {
	n := 0
	for _, e := range doc.ActivityLog.SupplementEvents {
		if e.Taken {
			n++
		}
	}
	return n
}

func activeDates(doc models.Document) map[string]bool {
	dates := make(map[string]bool)
	for _, a := range doc.ActivityLog.Activities() {
		if a.Date != "" {
			dates[a.Date] = true
		}
	}
	return dates
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
