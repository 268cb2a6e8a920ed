package analytics

import (
	"testing"
	"time"

	"github.com/mahavak/rhonda/internal/models"
)

var testNow = time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)

func dayOffset(offset int) string {
	return testNow.AddDate(0, 0, offset).Format("2006-01-02")
}

func docWithSupplementDays(offsets ...int) models.Document {
	doc := models.Document{}
	for _, off := range offsets {
		doc.ActivityLog.SupplementEvents = append(doc.ActivityLog.SupplementEvents, models.SupplementEvent{
			SupplementID: "creatine",
			Taken:        true,
			Date:         dayOffset(off),
			Timestamp:    testNow.AddDate(0, 0, off),
		})
	}
	return doc
}

func TestCurrentStreak(t *testing.T) {
	t.Run("empty log", func(t *testing.T) {
		if got := CurrentStreak(models.Document{}, testNow); got != 0 {
			t.Errorf("CurrentStreak() = %d, want 0", got)
		}
	})

	t.Run("no event today yields zero", func(t *testing.T) {
		// Events on day -1 and -3 only: the walk starts at today, finds
		// nothing, and stops before reaching either event.
		doc := docWithSupplementDays(-1, -3)
		if got := CurrentStreak(doc, testNow); got != 0 {
			t.Errorf("CurrentStreak() = %d, want 0", got)
		}
	})

	t.Run("lapsed streak reads zero until recorded again", func(t *testing.T) {
		doc := docWithSupplementDays(-1, -2, -3)
		if got := CurrentStreak(doc, testNow); got != 0 {
			t.Errorf("CurrentStreak() = %d, want 0", got)
		}
		// Recording today revives the whole run.
		doc.ActivityLog.SupplementEvents = append(doc.ActivityLog.SupplementEvents,
			models.SupplementEvent{SupplementID: "creatine", Taken: true, Date: dayOffset(0)})
		if got := CurrentStreak(doc, testNow); got != 4 {
			t.Errorf("CurrentStreak() = %d after recording today, want 4", got)
		}
	})

	t.Run("today and yesterday", func(t *testing.T) {
		doc := docWithSupplementDays(0, -1)
		if got := CurrentStreak(doc, testNow); got != 2 {
			t.Errorf("CurrentStreak() = %d, want 2", got)
		}
	})

	t.Run("old activity only", func(t *testing.T) {
		doc := docWithSupplementDays(-3, -4)
		if got := CurrentStreak(doc, testNow); got != 0 {
			t.Errorf("CurrentStreak() = %d, want 0", got)
		}
	})

	t.Run("sauna events count too", func(t *testing.T) {
		doc := models.Document{}
		doc.ActivityLog.SaunaEvents = []models.SaunaEvent{
			{ID: "s1", Date: dayOffset(0), Timestamp: testNow},
			{ID: "s2", Date: dayOffset(-1), Timestamp: testNow.AddDate(0, 0, -1)},
		}
		if got := CurrentStreak(doc, testNow); got != 2 {
			t.Errorf("CurrentStreak() = %d, want 2", got)
		}
	})

	t.Run("multiple events per day count once", func(t *testing.T) {
		doc := docWithSupplementDays(0, 0, 0, -1, -1)
		if got := CurrentStreak(doc, testNow); got != 2 {
			t.Errorf("CurrentStreak() = %d, want 2", got)
		}
	})
}

func TestAverageConsistency(t *testing.T) {
	t.Run("empty log", func(t *testing.T) {
		if got := AverageConsistency(models.Document{}, testNow); got != 0 {
			t.Errorf("AverageConsistency() = %d, want 0", got)
		}
	})

	t.Run("fifteen active days", func(t *testing.T) {
		offsets := make([]int, 0, 15)
		for i := 0; i < 15; i++ {
			offsets = append(offsets, -i)
		}
		doc := docWithSupplementDays(offsets...)
		if got := AverageConsistency(doc, testNow); got != 50 {
			t.Errorf("AverageConsistency() = %d, want 50", got)
		}
	})

	t.Run("events outside window are ignored", func(t *testing.T) {
		doc := docWithSupplementDays(-40, -50)
		if got := AverageConsistency(doc, testNow); got != 0 {
			t.Errorf("AverageConsistency() = %d, want 0", got)
		}
	})

	t.Run("full window", func(t *testing.T) {
		offsets := make([]int, 0, 30)
		for i := 0; i < 30; i++ {
			offsets = append(offsets, -i)
		}
		doc := docWithSupplementDays(offsets...)
		if got := AverageConsistency(doc, testNow); got != 100 {
			t.Errorf("AverageConsistency() = %d, want 100", got)
		}
	})
}

func TestCostRollup(t *testing.T) {
	t.Run("groups by slot", func(t *testing.T) {
		catalog := []models.SupplementDefinition{
			{ID: "a", Timing: models.SlotMorning, CostPerMonth: 25},
			{ID: "b", Timing: models.SlotMorning, CostPerMonth: 20},
			{ID: "c", Timing: models.SlotMorning, CostPerMonth: 15},
		}

		got := CostRollup(catalog)

		if got.Total != 60 {
			t.Errorf("Total = %.2f, want 60", got.Total)
		}
		if got.BySlot[models.SlotMorning] != 60 {
			t.Errorf("BySlot[morning] = %.2f, want 60", got.BySlot[models.SlotMorning])
		}
		if got.BySlot[models.SlotBreakfast] != 0 {
			t.Errorf("BySlot[breakfast] = %.2f, want 0", got.BySlot[models.SlotBreakfast])
		}
		if got.AveragePerItem != 20 {
			t.Errorf("AveragePerItem = %.2f, want 20", got.AveragePerItem)
		}
	})

	t.Run("empty catalog", func(t *testing.T) {
		got := CostRollup(nil)
		if got.Total != 0 || got.AveragePerItem != 0 {
			t.Errorf("empty catalog rollup = %+v, want zeros", got)
		}
		if len(got.BySlot) != 4 {
			t.Errorf("BySlot has %d slots, want all 4", len(got.BySlot))
		}
	})
}

func TestFrequencyHistogram(t *testing.T) {
	t.Run("sorted descending with stable ties", func(t *testing.T) {
		doc := models.Document{}
		add := func(id string, n int) {
			for i := 0; i < n; i++ {
				doc.ActivityLog.SupplementEvents = append(doc.ActivityLog.SupplementEvents,
					models.SupplementEvent{SupplementID: id, Taken: true, Date: dayOffset(0)})
			}
		}
		add("creatine", 3)
		add("fish_oil_am", 5)
		add("magnesium", 3)

		got := FrequencyHistogram(doc)

		want := []FrequencyCount{
			{SupplementID: "fish_oil_am", Count: 5},
			{SupplementID: "creatine", Count: 3},
			{SupplementID: "magnesium", Count: 3},
		}
		if len(got) != len(want) {
			t.Fatalf("got %d entries, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
			}
		}
	})

	t.Run("truncates to top eight", func(t *testing.T) {
		doc := models.Document{}
		for i := 0; i < 12; i++ {
			doc.ActivityLog.SupplementEvents = append(doc.ActivityLog.SupplementEvents,
				models.SupplementEvent{SupplementID: string(rune('a' + i)), Taken: true})
		}
		if got := FrequencyHistogram(doc); len(got) != 8 {
			t.Errorf("got %d entries, want 8", len(got))
		}
	})
}

func TestHeatmapBuckets(t *testing.T) {
	t.Run("window size and order", func(t *testing.T) {
		got := HeatmapBuckets(models.Document{}, testNow)
		if len(got) != 90 {
			t.Fatalf("got %d buckets, want 90", len(got))
		}
		if got[89].Date != dayOffset(0) {
			t.Errorf("last bucket date = %s, want today", got[89].Date)
		}
		if got[0].Date != dayOffset(-89) {
			t.Errorf("first bucket date = %s, want oldest day", got[0].Date)
		}
	})

	t.Run("all-zero window has zero intensity", func(t *testing.T) {
		for _, day := range HeatmapBuckets(models.Document{}, testNow) {
			if day.Intensity != 0 {
				t.Fatalf("intensity = %f on empty log, want 0", day.Intensity)
			}
		}
	})

	t.Run("intensity scales by max", func(t *testing.T) {
		doc := docWithSupplementDays(0, 0, 0, 0, -1, -1)
		got := HeatmapBuckets(doc, testNow)

		today := got[89]
		yesterday := got[88]
		if today.Intensity != 1 {
			t.Errorf("today intensity = %f, want 1", today.Intensity)
		}
		if yesterday.Intensity != 0.5 {
			t.Errorf("yesterday intensity = %f, want 0.5", yesterday.Intensity)
		}
	})
}

func TestTrendSeries(t *testing.T) {
	doc := docWithSupplementDays(0, 0, -1)
	// Skipped doses are not part of the trend.
	doc.ActivityLog.SupplementEvents = append(doc.ActivityLog.SupplementEvents,
		models.SupplementEvent{SupplementID: "creatine", Taken: false, Date: dayOffset(0)})

	got := TrendSeries(doc, testNow)
	if len(got) != 30 {
		t.Fatalf("got %d points, want 30", len(got))
	}
	last := got[29]
	if last.Date != dayOffset(0) || last.Count != 2 {
		t.Errorf("today's point = %+v, want count 2", last)
	}
	if got[28].Count != 1 {
		t.Errorf("yesterday's count = %d, want 1", got[28].Count)
	}
	if got[0].Count != 0 {
		t.Errorf("oldest count = %d, want 0", got[0].Count)
	}
}

func TestAverageSaunaMinutes(t *testing.T) {
	doc := models.Document{}
	if got := Derive(doc, testNow).SaunaAvgMin; got != 0 {
		t.Errorf("SaunaAvgMin = %f with no sessions, want 0", got)
	}

	doc.ActivityLog.SaunaEvents = []models.SaunaEvent{
		{ID: "a", DurationMin: 20, Date: dayOffset(0)},
		{ID: "b", DurationMin: 10, Date: dayOffset(-1)},
	}
	if got := Derive(doc, testNow).SaunaAvgMin; got != 15 {
		t.Errorf("SaunaAvgMin = %f, want 15", got)
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	doc := docWithSupplementDays(0, -1, -2, -5)
	doc.ActivityLog.SaunaEvents = []models.SaunaEvent{{ID: "s1", Date: dayOffset(0)}}

	a := Derive(doc, testNow)
	b := Derive(doc, testNow)

	if a.Streak != b.Streak || a.Consistency != b.Consistency || a.Supplements != b.Supplements {
		t.Errorf("Derive() is not deterministic: %+v vs %+v", a, b)
	}
}

func TestMetrics(t *testing.T) {
	doc := docWithSupplementDays(0, 0, -1)
	doc.ActivityLog.SaunaEvents = []models.SaunaEvent{{ID: "s1", Date: dayOffset(0)}}
	doc.Progress.ChallengesCompleted = 2

	got := Metrics(doc, testNow)

	if got[models.ReqSupplementsTaken] != 3 {
		t.Errorf("supplements_taken = %d, want 3", got[models.ReqSupplementsTaken])
	}
	if got[models.ReqSaunaSessions] != 1 {
		t.Errorf("sauna_sessions = %d, want 1", got[models.ReqSaunaSessions])
	}
	if got[models.ReqDaysTracked] != 2 {
		t.Errorf("days_tracked = %d, want 2", got[models.ReqDaysTracked])
	}
	if got[models.ReqStreakDays] != 2 {
		t.Errorf("streak_days = %d, want 2", got[models.ReqStreakDays])
	}
	if got[models.ReqChallengesCompleted] != 2 {
		t.Errorf("challenges_completed = %d, want 2", got[models.ReqChallengesCompleted])
	}
}

func TestLegacyConsistencyScore(t *testing.T) {
	t.Run("empty log", func(t *testing.T) {
		if got := LegacyConsistencyScore(models.Document{}, testNow); got != 0 {
			t.Errorf("LegacyConsistencyScore() = %d, want 0", got)
		}
	})

	t.Run("sauna side uses fixed denominator", func(t *testing.T) {
		doc := models.Document{}
		for i := 0; i < 16; i++ {
			doc.ActivityLog.SaunaEvents = append(doc.ActivityLog.SaunaEvents,
				models.SaunaEvent{ID: "s", Date: dayOffset(-i % 10)})
		}
		// Sauna side saturates at 1.0, supplement side is 0.
		if got := LegacyConsistencyScore(doc, testNow); got != 50 {
			t.Errorf("LegacyConsistencyScore() = %d, want 50", got)
		}
	})
}

func TestCacheMemoizes(t *testing.T) {
	cache := NewCache()
	doc := docWithSupplementDays(0, -1)

	first := cache.Stats(doc, testNow)
	second := cache.Stats(doc, testNow)
	if first.Streak != second.Streak {
		t.Errorf("cached stats differ: %d vs %d", first.Streak, second.Streak)
	}

	// A changed log must produce fresh stats.
	doc.ActivityLog.SupplementEvents = append(doc.ActivityLog.SupplementEvents,
		models.SupplementEvent{SupplementID: "creatine", Taken: true, Date: dayOffset(-2)})
	third := cache.Stats(doc, testNow)
	if third.Supplements != 3 {
		t.Errorf("Supplements = %d after log change, want 3", third.Supplements)
	}

	// A different reference date also invalidates.
	fourth := cache.Stats(doc, testNow.AddDate(0, 0, 5))
	if fourth.Streak != 0 {
		t.Errorf("Streak = %d five days later, want 0", fourth.Streak)
	}
}
