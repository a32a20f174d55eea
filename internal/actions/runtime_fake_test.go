package actions_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nicholas-fedor/harborlift/pkg/types"
)

var errFake = errors.New("fake runtime failure")

// fakeRuntime records every call and fails the steps it was told to.
type fakeRuntime struct {
	mu       sync.Mutex
	calls    []string
	failures map[string]int // "step ref" -> remaining failures, -1 fails forever
	logins   []string
	delay    time.Duration
	inFlight int
	peak     int
}

func newFakeRuntime() *fakeRuntime {
	return &fakeRuntime{failures: map[string]int{}}
}

// failOn makes a recorded call fail the given number of times.
func (f *fakeRuntime) failOn(call string, times int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.failures[call] = times
}

func (f *fakeRuntime) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, call)

	remaining, ok := f.failures[call]
	if !ok || remaining == 0 {
		return nil
	}

	if remaining > 0 {
		f.failures[call] = remaining - 1
	}

	return fmt.Errorf("%w: %s", errFake, call)
}

func (f *fakeRuntime) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.calls...)
}

func (f *fakeRuntime) Count(step string) int {
	count := 0

	for _, call := range f.Calls() {
		if len(call) > len(step) && call[:len(step)+1] == step+" " {
			count++
		}
	}

	return count
}

func (f *fakeRuntime) Name() string { return "fake" }

func (f *fakeRuntime) Login(_ context.Context, cfg types.RegistryConfig) error {
	f.mu.Lock()
	f.logins = append(f.logins, cfg.Host)
	f.mu.Unlock()

	return f.record("login " + cfg.Host)
}

func (f *fakeRuntime) Pull(_ context.Context, ref types.ImageRef) error {
	f.mu.Lock()
	f.inFlight++
	f.peak = max(f.peak, f.inFlight)
	f.mu.Unlock()

	time.Sleep(f.delay)

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()

	return f.record("pull " + ref.String())
}

func (f *fakeRuntime) Tag(_ context.Context, src, dst types.ImageRef) error {
	return f.record("tag " + src.String() + " " + dst.String())
}

func (f *fakeRuntime) Push(_ context.Context, ref types.ImageRef) error {
	return f.record("push " + ref.String())
}

func (f *fakeRuntime) Remove(_ context.Context, refs ...types.ImageRef) error {
	call := "remove"
	for _, ref := range refs {
		call += " " + ref.String()
	}

	return f.record(call)
}

// fakeCatalog serves a fixed project layout.
type fakeCatalog struct {
	repositories []string
	tags         map[string][]string
	tagErrors    map[string]error
}

func (c *fakeCatalog) ListRepositories(_ context.Context, _ string) ([]string, error) {
	return c.repositories, nil
}

func (c *fakeCatalog) ListTags(_ context.Context, _, repository string) ([]string, error) {
	if err := c.tagErrors[repository]; err != nil {
		return nil, err
	}

	return c.tags[repository], nil
}
