package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/mahavak/rhonda/internal/backup"
	"github.com/mahavak/rhonda/internal/constants"
)

type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeReachable := false

	// Check 1: store reachable and parseable
	if err := ctx.LoadStore(); err != nil {
		fmt.Printf("FAIL  Store reachable: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("ok    Store reachable\n")
		storeReachable = true
	}

	// Check 2: document version (only if store is reachable)
	if storeReachable {
		doc, err := ctx.Store.Snapshot()
		if err != nil || doc.Version != constants.DocumentVersion {
			fmt.Printf("FAIL  Document version: expected %d\n", constants.DocumentVersion)
			hasError = true
		} else {
			fmt.Printf("ok    Document version %d\n", doc.Version)
		}
	} else {
		fmt.Printf("skip  Document version (store not reachable)\n")
	}

	// Check 3: backups present (warning only)
	mgr := backup.NewManager(ctx.Store.Path())
	if backups, err := mgr.ListBackups(); err != nil || len(backups) == 0 {
		fmt.Printf("warn  No backups found; run 'rhonda backup create'\n")
	} else {
		fmt.Printf("ok    %d backups present\n", len(backups))
	}

	// Check 4: sync queue readable
	if ctx.Queue != nil {
		fmt.Printf("ok    Sync queue readable (%d pending)\n", ctx.Queue.Len())
	} else {
		fmt.Printf("warn  Sync queue unavailable\n")
	}

	// Check 5: no second rhonda process against the same store
	if err := checkDuplicateProcess(); err != nil {
		fmt.Printf("warn  %v\n", err)
	} else {
		fmt.Printf("ok    No other rhonda process running\n")
	}

	// Check 6: clock sanity
	if err := checkClock(); err != nil {
		fmt.Printf("FAIL  Clock: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("ok    Clock and timezone\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

// checkDuplicateProcess scans the process table for another rhonda
// instance. Two processes sharing one store file can lose updates.
func checkDuplicateProcess() error {
	procs, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("could not scan process table: %v", err)
	}

	self := os.Getpid()
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		if strings.HasPrefix(p.Executable(), constants.AppName) {
			return fmt.Errorf("another %s process is running (pid %d); concurrent writers are unsupported", constants.AppName, p.Pid())
		}
	}
	return nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock reports %s, which predates this tool", now.Format(constants.DateFormat))
	}
	if _, offset := now.Zone(); offset < -14*3600 || offset > 14*3600 {
		return fmt.Errorf("timezone offset out of range")
	}
	return nil
}
