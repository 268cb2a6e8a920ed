package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/mahavak/rhonda/internal/syncer"
)

type SyncNowCmd struct{}

func (c *SyncNowCmd) Run(ctx *Context) error {
	if ctx.Queue == nil {
		return fmt.Errorf("sync queue unavailable")
	}
	pending := ctx.Queue.Len()
	if pending == 0 {
		fmt.Println("Sync queue is empty.")
		return nil
	}

	fmt.Printf("Replaying %d queued entries...\n", pending)
	drained, err := ctx.Queue.Drain(context.Background(), ctx.Client)

	var replayErr *syncer.ReplayError
	if errors.As(err, &replayErr) {
		fmt.Printf("Synced %d entries before the server stopped responding.\n", drained)
		fmt.Printf("Entry %s (%s) stays queued and will retry on the next sync.\n", replayErr.EntryID, replayErr.Action)
		return err
	}
	if err != nil {
		return err
	}

	fmt.Printf("Synced %d entries.\n", drained)
	return nil
}

type SyncStatusCmd struct{}

func (c *SyncStatusCmd) Run(ctx *Context) error {
	if ctx.Queue == nil {
		return fmt.Errorf("sync queue unavailable")
	}
	pending := ctx.Queue.Pending()
	if len(pending) == 0 {
		fmt.Println("Sync queue is empty.")
		return nil
	}

	fmt.Printf("%d entries pending:\n", len(pending))
	for _, e := range pending {
		fmt.Printf("  %s  %-18s queued %s\n", e.ID, e.Action, formatTimestamp(e.EnqueuedAt))
	}
	return nil
}
