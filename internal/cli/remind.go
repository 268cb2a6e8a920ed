package cli

import (
	"fmt"
	"time"

	"github.com/mahavak/rhonda/internal/models"
	"github.com/mahavak/rhonda/internal/scheduler"
)

type RemindCmd struct{}

func (c *RemindCmd) Run(ctx *Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}
	doc, err := ctx.Store.Snapshot()
	if err != nil {
		return err
	}

	tick := scheduler.Evaluate(doc, time.Now())

	if tick.NewDay {
		fmt.Println("New day. Yesterday's log is closed; today starts fresh.")
	}

	if len(tick.DueSlots) == 0 {
		fmt.Println("All scheduled supplements are recorded. Nothing due right now.")
	} else {
		fmt.Println("Pending slots:")
		for _, slot := range tick.DueSlots {
			fmt.Printf("  %s\n", slot)
			for _, def := range doc.SupplementCatalog {
				if def.Timing == slot {
					fmt.Printf("    %-20s %s\n", def.Name, def.Dose)
				}
			}
		}
	}

	if len(tick.ExpiredChallenges) > 0 {
		err := ctx.Store.Update(func(doc *models.Document) error {
			scheduler.ExpireChallenges(doc, tick.ExpiredChallenges)
			return nil
		})
		if err != nil {
			return err
		}
		for _, id := range tick.ExpiredChallenges {
			fmt.Printf("Challenge %s expired without reaching its target and was deactivated.\n", id)
		}
	}

	return nil
}
