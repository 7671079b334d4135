package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nxadm/tail"
)

// Ledger is the set of every account this bot has ever followed, one id per
// line in an append-only file. It exists so we never follow the same person
// twice, even after they've been unfollowed.
type Ledger struct {
	path   string
	ids    idSet
	loaded bool
}

func NewLedger(path string) *Ledger {
	return &Ledger{path: path, ids: idSet{}}
}

// Contains loads the ledger file on first use.
func (l *Ledger) Contains(id int64) (bool, error) {
	if !l.loaded {
		if err := l.load(); err != nil {
			return false, err
		}
		l.loaded = true
	}
	return l.ids.has(id), nil
}

// Add appends id to the file and the in-memory set. It does not check for
// duplicates; call Contains first.
func (l *Ledger) Add(id int64) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &StorageError{Op: "open ledger", Path: l.path, Err: err}
	}
	if _, err := f.WriteString(strconv.FormatInt(id, 10) + "\n"); err != nil {
		f.Close()
		return &StorageError{Op: "append ledger", Path: l.path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &StorageError{Op: "close ledger", Path: l.path, Err: err}
	}

	l.ids.add(id)
	return nil
}

// load reads the whole file once. With Follow off, tail stops and closes
// Lines at EOF, and no inotify watch is ever set up, so there's nothing to
// Cleanup.
func (l *Ledger) load() error {
	t, err := tail.TailFile(l.path, tail.Config{
		MustExist: true,
		Follow:    false,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return &StorageError{Op: "open ledger", Path: l.path, Err: err}
	}

	var loadErr error
	n := 0
	for line := range t.Lines {
		n++
		if loadErr != nil {
			continue // drain so the tail goroutine can exit
		}
		if line.Err != nil {
			loadErr = &StorageError{Op: "read ledger", Path: l.path, Err: line.Err}
			continue
		}
		text := strings.TrimSpace(line.Text)
		if text == "" {
			continue
		}
		id, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			loadErr = &StorageError{Op: "parse ledger", Path: l.path, Err: fmt.Errorf("line %d: %w", n, err)}
			continue
		}
		l.ids.add(id)
	}
	if loadErr != nil {
		return loadErr
	}
	if err := t.Wait(); err != nil {
		return &StorageError{Op: "read ledger", Path: l.path, Err: err}
	}
	return nil
}

// writeLedger replaces the ledger file with ids. Only used to bootstrap a
// ledger from the accounts already being followed.
func writeLedger(path string, ids []int64, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return &StorageError{Op: "create ledger", Path: path, Err: err}
	}

	var b strings.Builder
	for _, id := range ids {
		b.WriteString(strconv.FormatInt(id, 10))
		b.WriteByte('\n')
	}
	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		return &StorageError{Op: "write ledger", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &StorageError{Op: "close ledger", Path: path, Err: err}
	}
	return nil
}
