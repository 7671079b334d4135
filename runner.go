package main

import (
	"fmt"

	"github.com/rs/zerolog"
)

// action is one run's worth of work. A false result means that kind of
// work is exhausted and the mode should flip.
type action interface {
	Run() (bool, error)
}

// Runner performs exactly one action per invocation, chosen by the mode
// file. Looping happens through the external scheduler calling us again.
type Runner struct {
	mode  *ModeFile
	grow  action
	prune action
	log   zerolog.Logger
}

func NewRunner(mode *ModeFile, grow, prune action, log zerolog.Logger) *Runner {
	return &Runner{mode: mode, grow: grow, prune: prune, log: log}
}

func (r *Runner) Run() error {
	mode, err := r.mode.Read()
	if err != nil {
		return err
	}
	r.log.Debug().Stringer("mode", mode).Msg("starting run")

	var (
		act  action
		next Mode
	)
	switch mode {
	case ModeGrow:
		act, next = r.grow, ModePrune
	case ModePrune:
		act, next = r.prune, ModeGrow
	default:
		return fmt.Errorf("no action for mode %s", mode)
	}

	more, err := act.Run()
	if err != nil {
		return err
	}
	if more {
		return nil
	}
	return r.mode.Write(next)
}
