// SPDX-License-Identifier: MPL-2.0

package grab

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/codegrab/codegrab/internal/clipboard"
	"github.com/codegrab/codegrab/internal/discovery"
	"github.com/codegrab/codegrab/internal/ecosystem"
	"github.com/codegrab/codegrab/internal/testutil"

	"github.com/spf13/afero"
)

func builtins(t *testing.T, names ...string) []ecosystem.Ecosystem {
	t.Helper()
	reg, err := ecosystem.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}
	ecos, err := reg.Resolve(names)
	if err != nil {
		t.Fatalf("Resolve(%v) error: %v", names, err)
	}
	return ecos
}

func newGrabber(t *testing.T, fsys afero.Fs, sink clipboard.Sink, opts Options) (*Grabber, *strings.Builder) {
	t.Helper()
	var out strings.Builder
	if opts.Ecosystems == nil {
		opts.Ecosystems = builtins(t)
	}
	opts.Out = &out
	g, err := New(fsys, sink, opts)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return g, &out
}

func TestRun_CopiesRustProject(t *testing.T) {
	t.Parallel()

	fsys := testutil.MemTree(t, "/proj", map[string]string{
		"Cargo.toml":  "[package]\n",
		"src/":        "",
		"main.rs":     "fn main() {}",
		"lib/util.rs": "pub fn util() {}",
	})
	sink := &clipboard.Memory{}
	g, out := newGrabber(t, fsys, sink, Options{})

	report, err := g.Run(context.Background(), filepath.FromSlash("/proj"))
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if report.Status != StatusCopied {
		t.Fatalf("Status = %v, want %v", report.Status, StatusCopied)
	}
	if report.Ecosystem.Name != ecosystem.Rust {
		t.Errorf("Ecosystem = %q, want rust", report.Ecosystem.Name)
	}

	want := "=== " + filepath.FromSlash("/proj/lib/util.rs") + " ===\npub fn util() {}\n\n" +
		"=== " + filepath.FromSlash("/proj/main.rs") + " ===\nfn main() {}\n\n"
	if sink.Text != want {
		t.Errorf("clipboard =\n%q\nwant\n%q", sink.Text, want)
	}
	if sink.Calls != 1 {
		t.Errorf("sink calls = %d, want 1", sink.Calls)
	}

	got := out.String()
	detected := strings.Index(got, "Detected a Rust project at: "+filepath.FromSlash("/proj"))
	tree := strings.Index(got, "Tree of `.rs` files")
	copied := strings.Index(got, CopiedMessage())
	if detected < 0 || tree < 0 || copied < 0 || detected >= tree || tree >= copied {
		t.Errorf("output out of order:\n%s", got)
	}
}

func TestRun_EmptyDoesNotFallThrough(t *testing.T) {
	t.Parallel()

	// Python would match through requirements.txt, but Rust is tried first.
	fsys := testutil.MemTree(t, "/proj", map[string]string{
		"Cargo.toml":       "[package]\n",
		"src/":             "",
		"requirements.txt": "",
		"app.py":           "print(1)",
	})
	sink := &clipboard.Memory{}
	g, out := newGrabber(t, fsys, sink, Options{})

	report, err := g.Run(context.Background(), filepath.FromSlash("/proj"))
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if report.Status != StatusEmpty {
		t.Fatalf("Status = %v, want %v", report.Status, StatusEmpty)
	}
	if sink.Calls != 0 {
		t.Errorf("sink called %d times, want 0", sink.Calls)
	}
	if !strings.Contains(out.String(), "No `.rs` files found") {
		t.Errorf("output missing empty message:\n%s", out.String())
	}
	if strings.Contains(out.String(), "Tree of") {
		t.Errorf("tree printed for empty project:\n%s", out.String())
	}
}

func TestRun_NotDetected(t *testing.T) {
	t.Parallel()

	fsys := testutil.MemTree(t, "/proj", map[string]string{
		"README.md": "hello",
	})
	sink := &clipboard.Memory{}
	g, out := newGrabber(t, fsys, sink, Options{})

	report, err := g.Run(context.Background(), filepath.FromSlash("/proj"))
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if report.Status != StatusNotDetected {
		t.Fatalf("Status = %v, want %v", report.Status, StatusNotDetected)
	}
	if sink.Calls != 0 {
		t.Errorf("sink called %d times, want 0", sink.Calls)
	}
	want := "No supported project detected (tried Rust, Python, or Go).\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRun_PriorityOrder(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"go.mod":           "module x\n",
		"main.go":          "package main",
		"requirements.txt": "",
		"app.py":           "print(1)",
	}

	tests := []struct {
		name     string
		priority []string
		want     string
	}{
		{"default prefers python", nil, ecosystem.Python},
		{"go first", []string{ecosystem.Go, ecosystem.Python}, ecosystem.Go},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fsys := testutil.MemTree(t, "/proj", files)
			sink := &clipboard.Memory{}
			g, _ := newGrabber(t, fsys, sink, Options{Ecosystems: builtins(t, tt.priority...)})

			report, err := g.Run(context.Background(), filepath.FromSlash("/proj"))
			if err != nil {
				t.Fatalf("Run() error: %v", err)
			}
			if report.Ecosystem.Name != tt.want {
				t.Errorf("Ecosystem = %q, want %q", report.Ecosystem.Name, tt.want)
			}
		})
	}
}

func TestRun_LocatesFromSubdirectory(t *testing.T) {
	t.Parallel()

	fsys := testutil.MemTree(t, "/proj", map[string]string{
		"go.mod":       "module x\n",
		"pkg/a/a.go":   "package a",
		"pkg/a/b/c/d/": "",
	})

	tests := []struct {
		name   string
		origin string
		want   Status
	}{
		{"two levels up", "/proj/pkg/a", StatusCopied},
		{"too deep", "/proj/pkg/a/b/c/d", StatusNotDetected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sink := &clipboard.Memory{}
			g, _ := newGrabber(t, fsys, sink, Options{Ecosystems: builtins(t, ecosystem.Go)})

			report, err := g.Run(context.Background(), filepath.FromSlash(tt.origin))
			if err != nil {
				t.Fatalf("Run() error: %v", err)
			}
			if report.Status != tt.want {
				t.Fatalf("Status = %v, want %v", report.Status, tt.want)
			}
			if tt.want == StatusCopied && report.Root != filepath.FromSlash("/proj") {
				t.Errorf("Root = %q, want /proj", report.Root)
			}
		})
	}
}

func TestRun_CopyFailureIsReported(t *testing.T) {
	t.Parallel()

	fsys := testutil.MemTree(t, "/proj", map[string]string{
		"go.mod":  "module x\n",
		"main.go": "package main",
	})
	sinkErr := errors.New("no display")
	sink := &clipboard.Memory{Err: sinkErr}
	g, out := newGrabber(t, fsys, sink, Options{})

	report, err := g.Run(context.Background(), filepath.FromSlash("/proj"))
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if report.Status != StatusCopyFailed {
		t.Fatalf("Status = %v, want %v", report.Status, StatusCopyFailed)
	}
	if !errors.Is(report.CopyErr, sinkErr) {
		t.Errorf("CopyErr = %v, want %v", report.CopyErr, sinkErr)
	}
	if !strings.Contains(out.String(), "Failed to copy to clipboard: no display") {
		t.Errorf("output missing failure line:\n%s", out.String())
	}
}

func TestRun_ReadFailureIsError(t *testing.T) {
	t.Parallel()

	base := testutil.MemTree(t, "/proj", map[string]string{
		"go.mod":  "module x\n",
		"main.go": "package main",
	})
	fsys := testutil.NewFailingFs(base).Fail(filepath.FromSlash("/proj/main.go"), nil)
	sink := &clipboard.Memory{}
	g, _ := newGrabber(t, fsys, sink, Options{})

	_, err := g.Run(context.Background(), filepath.FromSlash("/proj"))
	if !errors.Is(err, fs.ErrPermission) {
		t.Fatalf("Run() error = %v, want permission error", err)
	}
	if sink.Calls != 0 {
		t.Errorf("sink called %d times after read failure", sink.Calls)
	}
}

func TestRun_ProjectInfo(t *testing.T) {
	t.Parallel()

	t.Run("required but missing", func(t *testing.T) {
		t.Parallel()

		fsys := testutil.MemTree(t, "/proj", map[string]string{
			"go.mod":  "module x\n",
			"main.go": "package main",
		})
		sink := &clipboard.Memory{}
		g, out := newGrabber(t, fsys, sink, Options{RequireProjectInfo: true})

		report, err := g.Run(context.Background(), filepath.FromSlash("/proj"))
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		if report.Status != StatusNoProjectInfo {
			t.Fatalf("Status = %v, want %v", report.Status, StatusNoProjectInfo)
		}
		if sink.Calls != 0 {
			t.Errorf("sink called %d times, want 0", sink.Calls)
		}
		if !strings.Contains(out.String(), ProjectInfoMissingMessage()) {
			t.Errorf("output missing message:\n%s", out.String())
		}
	})

	t.Run("anchors origin and restricts ecosystem", func(t *testing.T) {
		t.Parallel()

		fsys := testutil.MemTree(t, "/proj", map[string]string{
			"project_info.toml": "ecosystem = \"go\"\nignore = [\"vendor/**\"]\n",
			"Cargo.toml":        "[package]\n",
			"src/":              "",
			"main.go":           "package main",
			"vendor/dep/dep.go": "package dep",
			"tools/x/":          "",
		})
		sink := &clipboard.Memory{}
		g, _ := newGrabber(t, fsys, sink, Options{})

		report, err := g.Run(context.Background(), filepath.FromSlash("/proj/tools/x"))
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		if report.Status != StatusCopied {
			t.Fatalf("Status = %v, want %v", report.Status, StatusCopied)
		}
		if report.Origin != filepath.FromSlash("/proj") {
			t.Errorf("Origin = %q, want /proj", report.Origin)
		}
		if report.Ecosystem.Name != ecosystem.Go {
			t.Errorf("Ecosystem = %q, want go", report.Ecosystem.Name)
		}
		if strings.Contains(sink.Text, "dep.go") {
			t.Errorf("ignored vendor file was aggregated:\n%s", sink.Text)
		}
	})

	t.Run("unknown ecosystem", func(t *testing.T) {
		t.Parallel()

		fsys := testutil.MemTree(t, "/proj", map[string]string{
			"project_info.toml": "ecosystem = \"cobol\"\n",
		})
		g, _ := newGrabber(t, fsys, &clipboard.Memory{}, Options{})

		_, err := g.Run(context.Background(), filepath.FromSlash("/proj"))
		if !errors.Is(err, ecosystem.ErrUnknownEcosystem) {
			t.Fatalf("Run() error = %v, want ErrUnknownEcosystem", err)
		}
	})
}

func TestRun_CollectsLocateDiagnostics(t *testing.T) {
	t.Parallel()

	base := testutil.MemTree(t, "/proj", map[string]string{
		"go.mod":      "module demo\n",
		"main.go":     "package main",
		"app/main.py": "print(1)",
	})
	fsys := testutil.NewFailingFs(base).Fail(filepath.FromSlash("/proj/app"), nil)
	g, _ := newGrabber(t, fsys, &clipboard.Memory{}, Options{})

	report, err := g.Run(context.Background(), filepath.FromSlash("/proj/app"))
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if report.Status != StatusCopied || report.Ecosystem.Name != ecosystem.Go {
		t.Fatalf("Run() = %v for %q, want copied go", report.Status, report.Ecosystem.Name)
	}
	if len(report.LocateDiagnostics) != 1 || report.LocateDiagnostics[0].Code != discovery.CodeMarkerCheckFailed {
		t.Fatalf("LocateDiagnostics = %v, want one marker_check_failed", report.LocateDiagnostics)
	}

	all := report.Diagnostics()
	if len(all) != 2 {
		t.Fatalf("Diagnostics() = %v, want locate then walk entries", all)
	}
	if all[0].Code != discovery.CodeMarkerCheckFailed || all[1].Code != discovery.CodeWalkEntrySkipped {
		t.Errorf("Diagnostics() order = [%s %s]", all[0].Code, all[1].Code)
	}
}

func TestRun_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g, _ := newGrabber(t, afero.NewMemMapFs(), &clipboard.Memory{}, Options{})
	if _, err := g.Run(ctx, "/"); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	if _, err := New(fsys, &clipboard.Memory{}, Options{}); !errors.Is(err, ErrNoEcosystems) {
		t.Errorf("New(no ecosystems) error = %v, want ErrNoEcosystems", err)
	}
	if _, err := New(fsys, &clipboard.Memory{}, Options{Ecosystems: builtins(t), Ignore: []string{"[bad"}}); err == nil {
		t.Error("New(invalid ignore) error = nil, want error")
	}
}

func TestNotDetectedMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		names []string
		want  string
	}{
		{[]string{ecosystem.Go}, "No supported project detected (tried Go)."},
		{[]string{ecosystem.Rust, ecosystem.Go}, "No supported project detected (tried Rust or Go)."},
	}
	for _, tt := range tests {
		if got := NotDetectedMessage(builtins(t, tt.names...)); got != tt.want {
			t.Errorf("NotDetectedMessage(%v) = %q, want %q", tt.names, got, tt.want)
		}
	}
}
