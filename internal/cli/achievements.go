package cli

import (
	"fmt"
	"time"

	"github.com/mahavak/rhonda/internal/analytics"
	"github.com/mahavak/rhonda/internal/catalog"
	"github.com/mahavak/rhonda/internal/gamify"
)

type AchievementsCmd struct {
	All bool `help:"Include locked achievements."`
}

func (c *AchievementsCmd) Run(ctx *Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}
	doc, err := ctx.Store.Snapshot()
	if err != nil {
		return err
	}

	fmt.Printf("Level %d  (%d points)\n", gamify.Level(doc.Progress.TotalPoints), doc.Progress.TotalPoints)
	fmt.Printf("Streak: %d days (longest %d)\n", doc.Progress.StreakCurrent, doc.Progress.StreakLongest)
	fmt.Println()

	metrics := analytics.Metrics(doc, time.Now())
	for _, def := range catalog.Achievements() {
		unlocked := doc.Progress.HasAchievement(def.ID)
		if !unlocked && !c.All {
			continue
		}

		marker := " "
		if unlocked {
			marker = "x"
		}
		fmt.Printf("[%s] %-20s %-45s %4d pts  %s\n", marker, def.Name, def.Description, def.Points, def.Rarity)
		if !unlocked {
			fmt.Printf("     progress: %d/%d\n", metrics[def.Requirement.Type], def.Requirement.Value)
		}
	}
	return nil
}
