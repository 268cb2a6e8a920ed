package cli

import (
	"fmt"
)

type TrackSupplementCmd struct {
	Supplement string `arg:"" help:"Supplement id or name."`
	Skipped    bool   `help:"Record as skipped rather than taken."`
	Notes      string `help:"Optional note on this dose."`
}

func (c *TrackSupplementCmd) Run(ctx *Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}

	doc, err := ctx.Store.Snapshot()
	if err != nil {
		return err
	}
	def, ok := FindSupplement(doc.SupplementCatalog, c.Supplement)
	if !ok {
		return fmt.Errorf("unknown supplement: %s (run 'rhonda stats --catalog' to list)", c.Supplement)
	}

	event, err := ctx.Recorder.RecordSupplement(def.ID, !c.Skipped, c.Notes)
	if err != nil {
		return err
	}
	ctx.EnqueueSync("track-supplement", event)

	if c.Skipped {
		fmt.Printf("Recorded %s as skipped (%s)\n", def.Name, event.Date)
	} else {
		fmt.Printf("Recorded %s (%s %s)\n", def.Name, def.Dose, def.Timing)
	}
	return nil
}

type TrackSaunaCmd struct {
	Duration    int     `arg:"" help:"Session duration in minutes."`
	Temperature float64 `help:"Temperature in Fahrenheit." default:"174"`
	Notes       string  `help:"Optional note on this session."`
}

func (c *TrackSaunaCmd) Run(ctx *Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}

	event, err := ctx.Recorder.RecordSauna(c.Duration, c.Temperature, c.Notes)
	if err != nil {
		return err
	}
	ctx.EnqueueSync("track-sauna", event)

	fmt.Printf("Recorded sauna session: %d min at %.0fF (%s)\n", event.DurationMin, event.Temperature, event.Date)
	return nil
}
