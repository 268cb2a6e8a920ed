package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/mahavak/rhonda/internal/gamify"
	"github.com/mahavak/rhonda/internal/models"
)

type ChallengeListCmd struct{}

func (c *ChallengeListCmd) Run(ctx *Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}
	doc, err := ctx.Store.Snapshot()
	if err != nil {
		return err
	}

	for _, ch := range doc.Challenges {
		status := "inactive"
		if ch.Active {
			status = fmt.Sprintf("active since %s, %d/%d", ch.StartDate, ch.Progress, ch.Target)
		}
		fmt.Printf("%-20s %-45s %4d pts  [%s]\n", ch.ID, ch.Description, ch.Points, status)
	}
	return nil
}

type ChallengeStartCmd struct {
	ID string `arg:"" help:"Challenge id."`
}

func (c *ChallengeStartCmd) Run(ctx *Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}

	err := ctx.Store.Update(func(doc *models.Document) error {
		return gamify.StartChallenge(doc, c.ID, time.Now())
	})
	if err != nil {
		return err
	}

	fmt.Printf("Started challenge %s. Any previously active challenge was deactivated.\n", c.ID)
	return nil
}

type ChallengeClaimCmd struct {
	ID string `arg:"" help:"Challenge id."`
}

func (c *ChallengeClaimCmd) Run(ctx *Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}

	var points int
	err := ctx.Store.Update(func(doc *models.Document) error {
		if ch := doc.FindChallenge(c.ID); ch != nil {
			points = ch.Points
		}
		return gamify.ClaimReward(doc, c.ID)
	})
	if errors.Is(err, gamify.ErrAlreadyClaimed) {
		fmt.Printf("Reward for %s was already claimed.\n", c.ID)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("Claimed %d points for %s\n", points, c.ID)
	return nil
}
