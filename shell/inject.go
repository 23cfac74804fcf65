// Package shell: this file contains the chrome script injection
// scheduler.
package shell

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/onyx-dot-app/onyx-desktop/common"
)

// InjectionScheduler delivers the window chrome script to a surface on
// a fixed delay ladder. The page may be redirected or reloaded by the
// hosted application at unpredictable times, so the script is applied
// repeatedly; it is idempotent and later applications no-op.
//
// Each Schedule call starts a new generation for the surface and
// silently supersedes any schedule still running for it, so a reload
// storm never stacks injection loops.
type InjectionScheduler struct {
	enabled bool
	script  func(label string) string
	delays  []time.Duration
	log     zerolog.Logger

	mu   sync.Mutex
	gens map[string]uint64
}

// NewInjectionScheduler builds a scheduler. script renders the chrome
// source for one window label. When enabled is false, Schedule is a
// no-op.
func NewInjectionScheduler(enabled bool, script func(label string) string, log zerolog.Logger) *InjectionScheduler {
	return &InjectionScheduler{
		enabled: enabled,
		script:  script,
		delays:  common.InjectionDelays,
		gens:    make(map[string]uint64),
		log:     log.With().Str("component", "inject").Logger(),
	}
}

// Schedule starts the delay ladder for the surface, superseding any
// schedule already running for it.
func (i *InjectionScheduler) Schedule(s Surface) {
	if !i.enabled {
		return
	}
	gen := i.bump(s.Label())
	i.log.Debug().Str("label", s.Label()).Uint64("generation", gen).Msg("arming chrome injection")
	go i.run(s, gen)
}

func (i *InjectionScheduler) run(s Surface, gen uint64) {
	js := i.script(s.Label())
	elapsed := time.Duration(0)
	for _, d := range i.delays {
		if d > elapsed {
			time.Sleep(d - elapsed)
			elapsed = d
		}
		if !i.current(s.Label(), gen) {
			i.log.Debug().Str("label", s.Label()).Msg("injection schedule superseded")
			return
		}
		// Script failures are expected while the page is mid-load;
		// the next rung of the ladder retries.
		if err := s.Eval(js); err != nil {
			i.log.Debug().Err(err).Str("label", s.Label()).Msg("injection attempt failed")
		}
	}
}

func (i *InjectionScheduler) bump(label string) uint64 {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.gens[label]++
	return i.gens[label]
}

func (i *InjectionScheduler) current(label string, gen uint64) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.gens[label] == gen
}
