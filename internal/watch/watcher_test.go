// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu    sync.Mutex
	calls [][]string
	ch    chan []string
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan []string, 16)}
}

func (r *recorder) onChange(_ context.Context, changed []string) error {
	r.mu.Lock()
	r.calls = append(r.calls, changed)
	r.mu.Unlock()
	r.ch <- changed
	return nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func startWatcher(t *testing.T, cfg Config) (cancel func()) {
	t.Helper()
	w, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancelCtx := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	return func() {
		cancelCtx()
		select {
		case err := <-errCh:
			if err != nil {
				t.Errorf("Run() error: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Error("Run() did not return after cancel")
		}
	}
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestWatcherDebounce(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rec := newRecorder()
	stop := startWatcher(t, Config{
		Root:     dir,
		Patterns: []string{"**/*.rs"},
		Debounce: 100 * time.Millisecond,
		OnChange: rec.onChange,
	})
	defer stop()

	for _, name := range []string{"a.rs", "b.rs", "c.rs"} {
		writeFile(t, filepath.Join(dir, name))
		time.Sleep(10 * time.Millisecond)
	}

	var changed []string
	select {
	case changed = <-rec.ch:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}

	time.Sleep(250 * time.Millisecond)
	if n := rec.count(); n != 1 {
		t.Errorf("expected 1 debounced callback, got %d", n)
	}
	if !slices.Equal(changed, []string{"a.rs", "b.rs", "c.rs"}) {
		t.Errorf("changed = %v, want [a.rs b.rs c.rs]", changed)
	}
}

func TestWatcherPatternFiltering(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "src"), 0o755); err != nil {
		t.Fatal(err)
	}
	rec := newRecorder()
	stop := startWatcher(t, Config{
		Root:     dir,
		Patterns: []string{"**/*.py"},
		Debounce: 50 * time.Millisecond,
		OnChange: rec.onChange,
	})
	defer stop()

	writeFile(t, filepath.Join(dir, "notes.txt"))
	writeFile(t, filepath.Join(dir, "src", "app.py"))

	select {
	case changed := <-rec.ch:
		if !slices.Equal(changed, []string{"src/app.py"}) {
			t.Errorf("changed = %v, want [src/app.py]", changed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
}

func TestWatcherIgnorePatterns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, sub := range []string{"target", "gen"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	rec := newRecorder()
	stop := startWatcher(t, Config{
		Root:     dir,
		Patterns: []string{"**/*.rs"},
		Ignore:   []string{"gen/**"},
		Debounce: 50 * time.Millisecond,
		OnChange: rec.onChange,
	})
	defer stop()

	writeFile(t, filepath.Join(dir, "target", "build.rs"))
	writeFile(t, filepath.Join(dir, "gen", "bindings.rs"))

	select {
	case changed := <-rec.ch:
		t.Fatalf("callback fired for ignored paths: %v", changed)
	case <-time.After(300 * time.Millisecond):
	}

	writeFile(t, filepath.Join(dir, "main.rs"))
	select {
	case changed := <-rec.ch:
		if !slices.Equal(changed, []string{"main.rs"}) {
			t.Errorf("changed = %v, want [main.rs]", changed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
}

func TestWatcherNewDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rec := newRecorder()
	stop := startWatcher(t, Config{
		Root:     dir,
		Patterns: []string{"**/*.go"},
		Debounce: 50 * time.Millisecond,
		OnChange: rec.onChange,
	})
	defer stop()

	sub := filepath.Join(dir, "pkg")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	// Give the event loop a moment to register the new directory.
	time.Sleep(100 * time.Millisecond)
	writeFile(t, filepath.Join(sub, "pkg.go"))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case changed := <-rec.ch:
			if slices.Contains(changed, "pkg/pkg.go") {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for pkg/pkg.go")
		}
	}
}

func TestWatcherCallbacksDoNotOverlap(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	var (
		active  sync.Mutex
		overlap bool
		calls   = make(chan struct{}, 16)
	)
	stop := startWatcher(t, Config{
		Root:     dir,
		Debounce: 20 * time.Millisecond,
		OnChange: func(context.Context, []string) error {
			if !active.TryLock() {
				overlap = true
				return nil
			}
			defer active.Unlock()
			time.Sleep(150 * time.Millisecond)
			calls <- struct{}{}
			return nil
		},
	})
	defer stop()

	writeFile(t, filepath.Join(dir, "one.go"))
	<-calls
	writeFile(t, filepath.Join(dir, "two.go"))
	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for second callback")
	}

	if !active.TryLock() {
		t.Fatal("callback still running")
	}
	if overlap {
		t.Error("callbacks overlapped")
	}
}

func TestWatcherContextCancel(t *testing.T) {
	t.Parallel()

	stop := startWatcher(t, Config{Root: t.TempDir()})
	stop()
}

func TestWatcherDoubleRunError(t *testing.T) {
	t.Parallel()

	w, err := New(Config{Root: t.TempDir()})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	if err := w.Run(ctx); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Run() error = %v, want ErrAlreadyRunning", err)
	}
	cancel()
	if err := <-errCh; err != nil {
		t.Errorf("first Run() error: %v", err)
	}
}

func TestWatcherInvalidPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
	}{
		{"pattern", Config{Patterns: []string{"[abc"}}},
		{"ignore", Config{Ignore: []string{"{a,b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tt.cfg.Root = t.TempDir()
			if _, err := New(tt.cfg); !errors.Is(err, ErrInvalidPattern) {
				t.Errorf("New() error = %v, want ErrInvalidPattern", err)
			}
		})
	}
}

func TestDefaultIgnores(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rel  string
		want bool
	}{
		{".git/HEAD", true},
		{"target/debug/main.rs", true},
		{"web/node_modules/x/index.js", true},
		{"pkg/__pycache__/m.py", true},
		{"src/main.rs.swp", true},
		{"src/main.rs", false},
		{"targets/main.rs", false},
	}

	w, err := New(Config{Root: t.TempDir(), Ignore: []string{"gen/**"}})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	for _, tt := range tests {
		if got := w.isIgnored(tt.rel); got != tt.want {
			t.Errorf("default ignore match %q = %v, want %v", tt.rel, got, tt.want)
		}
	}
	if !w.isIgnored("gen/x.rs") {
		t.Error("configured ignore gen/** not applied alongside defaults")
	}
}
