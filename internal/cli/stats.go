package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/mahavak/rhonda/internal/analytics"
	"github.com/mahavak/rhonda/internal/models"
	"github.com/mahavak/rhonda/internal/syncer"
)

type StatsCmd struct {
	Catalog bool `help:"List the supplement catalog instead of stats."`
	Remote  bool `help:"Also fetch the server-side rollup."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}
	doc, err := ctx.Store.Snapshot()
	if err != nil {
		return err
	}

	if c.Catalog {
		printCatalog(doc.SupplementCatalog)
		return nil
	}

	stats := analytics.Derive(doc, time.Now())

	fmt.Printf("Current streak:      %d days\n", stats.Streak)
	fmt.Printf("Consistency (30d):   %d%%\n", stats.Consistency)
	fmt.Printf("Legacy score:        %d\n", stats.LegacyScore)
	fmt.Printf("Supplements taken:   %d\n", stats.Supplements)
	fmt.Printf("Sauna sessions:      %d\n", stats.SaunaTotal)
	if stats.SaunaTotal > 0 {
		fmt.Printf("Avg sauna duration:  %.0f min\n", stats.SaunaAvgMin)
	}
	fmt.Printf("Days tracked:        %d\n", stats.DaysTracked)
	fmt.Println()

	fmt.Printf("Monthly cost: $%.2f total, $%.2f average per supplement\n", stats.Costs.Total, stats.Costs.AveragePerItem)
	for _, slot := range models.TimingSlots() {
		fmt.Printf("  %-10s $%.2f\n", slot, stats.Costs.BySlot[slot])
	}

	if len(stats.Frequency) > 0 {
		fmt.Println()
		fmt.Println("Most tracked supplements:")
		for _, fc := range stats.Frequency {
			fmt.Printf("  %-20s %d\n", fc.SupplementID, fc.Count)
		}
	}

	if c.Remote {
		fmt.Println()
		body, err := ctx.FetchRemote(context.Background(), "stats")
		if err != nil {
			fmt.Printf("Server stats unavailable: %v\n", err)
			return nil
		}
		remote, err := syncer.DecodeStats(body)
		if err != nil {
			fmt.Printf("Server stats unavailable: %v\n", err)
			return nil
		}
		fmt.Printf("Server rollup (30d): %d supplements, %d sauna sessions, %.0f min average\n",
			remote.SupplementsTracked30Days, remote.SaunaSessions30Days, remote.AverageSaunaDuration)
	}
	return nil
}

func printCatalog(catalog []models.SupplementDefinition) {
	for _, slot := range models.TimingSlots() {
		fmt.Printf("%s:\n", slot)
		for _, def := range catalog {
			if def.Timing != slot {
				continue
			}
			fmt.Printf("  %-20s %-25s %-12s $%.0f/mo\n", def.ID, def.Name, def.Dose, def.CostPerMonth)
		}
	}
}
