package repository

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"
)

// journalTimeLayout is the line timestamp: "YYYY-MM-DD HH:MM:SS", local time.
const journalTimeLayout = "2006-01-02 15:04:05"

// TextJournal appends "<timestamp> - <event text>" lines to a file.
// The file is opened per append, so external rotation is safe.
type TextJournal struct {
	mu   sync.Mutex
	path string
}

func NewTextJournal(path string) *TextJournal {
	return &TextJournal{path: path}
}

// FormatJournalLine renders one journal line, newline included.
func FormatJournalLine(at time.Time, text string) string {
	return fmt.Sprintf("%s - %s\n", at.Format(journalTimeLayout), text)
}

func (j *TextJournal) Append(ctx context.Context, at time.Time, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open journal %q: %w", j.path, err)
	}
	if _, err := f.WriteString(FormatJournalLine(at, text)); err != nil {
		_ = f.Close()
		return fmt.Errorf("write journal %q: %w", j.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close journal %q: %w", j.path, err)
	}
	return nil
}

var _ Journal = (*TextJournal)(nil)
