package browser

import (
	"errors"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// recorder captures the last launched command
type recorder struct {
	name string
	args []string
	err  error
}

func (r *recorder) start(name string, args ...string) error {
	r.name = name
	r.args = args
	return r.err
}

func newTestLauncher(goos string) (*Launcher, *recorder) {
	rec := &recorder{}
	return &Launcher{BaseURL: "http://192.168.1.20:8081/", GOOS: goos, Start: rec.start}, rec
}

func TestOpen_Platforms(t *testing.T) {
	const target = "http://192.168.1.20:8081/admin"

	tests := []struct {
		goos     string
		wantName string
		wantArgs []string
	}{
		{"linux", "xdg-open", []string{target}},
		{"freebsd", "xdg-open", []string{target}},
		{"darwin", "open", []string{target}},
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", target}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			l, rec := newTestLauncher(tt.goos)
			if err := l.Open(target); err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			if rec.name != tt.wantName {
				t.Errorf("expected command %q, got %q", tt.wantName, rec.name)
			}
			if diff := cmp.Diff(tt.wantArgs, rec.args); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOpen_UnsupportedPlatform(t *testing.T) {
	l, rec := newTestLauncher("plan9")

	err := l.Open("http://localhost")
	if err == nil || !strings.Contains(err.Error(), "plan9") {
		t.Errorf("expected unsupported platform error, got %v", err)
	}
	if rec.name != "" {
		t.Error("nothing should have been launched")
	}
}

func TestOpen_StartError(t *testing.T) {
	l, rec := newTestLauncher("linux")
	rec.err = errors.New("xdg-open not found")

	if err := l.Open("http://localhost"); err == nil {
		t.Error("expected start error to be returned")
	}
}

func TestLauncher_Pages(t *testing.T) {
	tests := []struct {
		name string
		open func(l *Launcher) error
		want string
	}{
		{"index", (*Launcher).Index, "http://192.168.1.20:8081/"},
		{"admin", (*Launcher).Admin, "http://192.168.1.20:8081/admin"},
		{"bracket", func(l *Launcher) error { return l.Bracket("spring derby") }, "http://192.168.1.20:8081/bracket/spring%20derby"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, rec := newTestLauncher("darwin")
			if err := tt.open(l); err != nil {
				t.Fatalf("open failed: %v", err)
			}
			if len(rec.args) != 1 || rec.args[0] != tt.want {
				t.Errorf("expected %s, got %v", tt.want, rec.args)
			}
		})
	}
}

func TestLauncher_BracketRequiresID(t *testing.T) {
	l, rec := newTestLauncher("linux")

	if err := l.Bracket("  "); err == nil {
		t.Error("expected error for empty tournament id")
	}
	if rec.name != "" {
		t.Error("nothing should have been launched")
	}
}

func TestNew_UsesCurrentPlatform(t *testing.T) {
	l := New("http://localhost:8081")

	if l.GOOS != runtime.GOOS {
		t.Errorf("expected GOOS %s, got %s", runtime.GOOS, l.GOOS)
	}
	if l.Start == nil {
		t.Error("expected a start function")
	}
}
