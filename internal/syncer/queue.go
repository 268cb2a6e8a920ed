package syncer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mahavak/rhonda/internal/logger"
)

// ReplayError reports a queue drain halted mid-way. Entries[0] is the
// entry that failed; it and everything behind it stay queued for the
// next drain.
type ReplayError struct {
	EntryID string
	Action  string
	Err     error
}

func (e *ReplayError) Error() string {
	return fmt.Sprintf("failed to replay %s entry %s: %v", e.Action, e.EntryID, e.Err)
}

func (e *ReplayError) Unwrap() error { return e.Err }

// Entry is one queued mutation awaiting replay.
type Entry struct {
	ID         string          `json:"id"`
	Action     string          `json:"action"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

// Queue is a durable FIFO of mutations recorded while offline. Entries
// survive restarts; an entry leaves the queue only after the server
// confirms it.
type Queue struct {
	mu      sync.Mutex
	path    string
	entries []Entry
}

// OpenQueue loads the queue file, creating an empty queue when none
// exists yet.
func OpenQueue(path string) (*Queue, error) {
	q := &Queue{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return q, nil
		}
		return nil, fmt.Errorf("failed to read sync queue: %w", err)
	}

	if err := json.Unmarshal(data, &q.entries); err != nil {
		return nil, fmt.Errorf("failed to parse sync queue: %w", err)
	}
	return q, nil
}

// Enqueue appends a mutation and persists the queue before returning.
func (q *Queue) Enqueue(action string, payload any) (Entry, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to serialize payload: %w", err)
	}

	entry := Entry{
		ID:         uuid.NewString(),
		Action:     action,
		Payload:    body,
		EnqueuedAt: time.Now(),
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.entries = append(q.entries, entry)
	if err := q.save(); err != nil {
		q.entries = q.entries[:len(q.entries)-1]
		return Entry{}, err
	}
	return entry, nil
}

// Len returns the number of pending entries.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Pending returns a copy of the queued entries in replay order.
func (q *Queue) Pending() []Entry {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Entry(nil), q.entries...)
}

// Drain replays entries in order through the client. Each entry is
// removed only after the server confirms it. The first failure halts the
// drain and leaves the failed entry at the head, so ordering is
// preserved across retries. Returns the number of entries confirmed.
func (q *Queue) Drain(ctx context.Context, client *Client) (int, error) {
	drained := 0
	for {
		entry, ok := q.peek()
		if !ok {
			return drained, nil
		}

		if err := ctx.Err(); err != nil {
			return drained, err
		}

		// Network I/O runs outside the queue lock.
		if err := client.Post(ctx, entry.Action, entry.Payload); err != nil {
			return drained, &ReplayError{EntryID: entry.ID, Action: entry.Action, Err: err}
		}

		if err := q.pop(entry.ID); err != nil {
			return drained, err
		}
		drained++
		logger.Debug("Replayed sync entry", "action", entry.Action, "id", entry.ID)
	}
}

func (q *Queue) peek() (Entry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.entries) == 0 {
		return Entry{}, false
	}
	return q.entries[0], true
}

func (q *Queue) pop(id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) == 0 || q.entries[0].ID != id {
		return fmt.Errorf("sync queue head changed during replay")
	}
	q.entries = q.entries[1:]
	return q.save()
}

func (q *Queue) save() error {
	data, err := json.MarshalIndent(q.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize sync queue: %w", err)
	}

	dir := filepath.Dir(q.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create sync queue directory: %w", err)
	}
	if err := os.WriteFile(q.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write sync queue: %w", err)
	}
	return nil
}
