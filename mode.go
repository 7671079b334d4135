package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Mode selects what a run does.
type Mode int

const (
	ModeGrow  Mode = 0 // search for accounts and follow one
	ModePrune Mode = 1 // unfollow someone who doesn't follow back
)

func (m Mode) String() string {
	switch m {
	case ModeGrow:
		return "grow"
	case ModePrune:
		return "prune"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func parseModeName(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "grow", "0":
		return ModeGrow, nil
	case "prune", "1":
		return ModePrune, nil
	}
	return 0, fmt.Errorf("unknown mode %q (want grow or prune)", s)
}

// ModeFile persists the current Mode as a single number in a text file.
// Nothing is locked; overlapping runs can lose an update.
type ModeFile struct {
	path string
	log  zerolog.Logger
}

func NewModeFile(path string, log zerolog.Logger) *ModeFile {
	return &ModeFile{path: path, log: log}
}

// Read returns the number on the first line of the mode file.
func (f *ModeFile) Read() (Mode, error) {
	body, err := os.ReadFile(f.path)
	if err != nil {
		return 0, &StorageError{Op: "read mode", Path: f.path, Err: err}
	}

	firstLine, _, _ := strings.Cut(string(body), "\n")
	n, err := strconv.Atoi(strings.TrimSpace(firstLine))
	if err != nil {
		return 0, &StorageError{Op: "parse mode", Path: f.path, Err: err}
	}

	m := Mode(n)
	if m != ModeGrow && m != ModePrune {
		return 0, &StorageError{Op: "parse mode", Path: f.path, Err: fmt.Errorf("unknown mode %d", n)}
	}
	return m, nil
}

// Write replaces the file contents with m.
func (f *ModeFile) Write(m Mode) error {
	if err := os.WriteFile(f.path, []byte(strconv.Itoa(int(m))), 0o644); err != nil {
		return &StorageError{Op: "write mode", Path: f.path, Err: err}
	}
	f.log.Info().Stringer("mode", m).Msg("updated mode")
	return nil
}
