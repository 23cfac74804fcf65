package shell

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/onyx-dot-app/onyx-desktop/common"
)

func newTestScheduler(delays []time.Duration) *InjectionScheduler {
	s := NewInjectionScheduler(true, func(label string) string {
		return "/* chrome " + label + " */"
	}, zerolog.Nop())
	s.delays = delays
	return s
}

func TestInjectionDelayLadder(t *testing.T) {
	want := []time.Duration{
		0,
		200 * time.Millisecond,
		600 * time.Millisecond,
		1200 * time.Millisecond,
		2 * time.Second,
		4 * time.Second,
		6 * time.Second,
		8 * time.Second,
		10 * time.Second,
	}
	if !reflect.DeepEqual(common.InjectionDelays, want) {
		t.Errorf("InjectionDelays = %v, want %v", common.InjectionDelays, want)
	}

	s := NewInjectionScheduler(true, func(string) string { return "" }, zerolog.Nop())
	if !reflect.DeepEqual(s.delays, common.InjectionDelays) {
		t.Errorf("scheduler delays = %v, want the shared ladder", s.delays)
	}
}

func TestInjectionAppliesEveryRung(t *testing.T) {
	sched := newTestScheduler([]time.Duration{0, 20 * time.Millisecond, 40 * time.Millisecond})
	surface := &fakeSurface{label: "main"}

	sched.Schedule(surface)

	waitFor(t, 2*time.Second, func() bool { return surface.evalCount() == 3 }, "expected three injection attempts")
	if !surface.containsEval("/* chrome main */") {
		t.Error("script should be rendered for the surface label")
	}
}

func TestInjectionDisabled(t *testing.T) {
	sched := NewInjectionScheduler(false, func(string) string { return "x" }, zerolog.Nop())
	sched.delays = []time.Duration{0}
	surface := &fakeSurface{label: "main"}

	sched.Schedule(surface)

	time.Sleep(50 * time.Millisecond)
	if n := surface.evalCount(); n != 0 {
		t.Errorf("evals = %d, disabled scheduler must not inject", n)
	}
}

func TestInjectionRescheduleSupersedes(t *testing.T) {
	sched := newTestScheduler([]time.Duration{0, 200 * time.Millisecond})
	surface := &fakeSurface{label: "main"}

	sched.Schedule(surface)
	waitFor(t, 2*time.Second, func() bool { return surface.evalCount() >= 1 }, "first schedule never ran")

	sched.Schedule(surface)
	waitFor(t, 2*time.Second, func() bool { return surface.evalCount() >= 2 }, "second schedule never ran")

	// Only the second schedule may deliver its delayed rung.
	waitFor(t, 2*time.Second, func() bool { return surface.evalCount() == 3 }, "second schedule's ladder should finish")
	time.Sleep(300 * time.Millisecond)
	if n := surface.evalCount(); n != 3 {
		t.Errorf("evals = %d, superseded schedule must stop", n)
	}
}

func TestInjectionKeepsGoingAfterEvalFailure(t *testing.T) {
	sched := newTestScheduler([]time.Duration{0, 10 * time.Millisecond, 20 * time.Millisecond})
	surface := &fakeSurface{label: "main", evalErr: errors.New("page mid-load")}

	sched.Schedule(surface)

	waitFor(t, 2*time.Second, func() bool { return surface.evalCount() == 3 }, "failures must not stop the ladder")
}

func TestInjectionTracksSurfacesIndependently(t *testing.T) {
	sched := newTestScheduler([]time.Duration{0, 100 * time.Millisecond})
	first := &fakeSurface{label: "main"}
	second := &fakeSurface{label: "onyx-2"}

	sched.Schedule(first)
	sched.Schedule(second)
	// Superseding one surface leaves the other's ladder alone.
	sched.Schedule(second)

	waitFor(t, 2*time.Second, func() bool { return first.evalCount() == 2 }, "first surface ladder should finish")
}
