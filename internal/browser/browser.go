package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// StartFunc launches a program without waiting for it
type StartFunc func(name string, args ...string) error

func startProcess(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// openers maps GOOS to the program and leading arguments that open a URL
var openers = map[string][]string{
	"linux":   {"xdg-open"},
	"freebsd": {"xdg-open"},
	"darwin":  {"open"},
	"windows": {"rundll32", "url.dll,FileProtocolHandler"},
}

// Launcher opens pages of a running bracket server in the desktop browser
type Launcher struct {
	BaseURL string
	GOOS    string
	Start   StartFunc
}

// New returns a Launcher for the current platform
func New(baseURL string) *Launcher {
	return &Launcher{BaseURL: baseURL, GOOS: runtime.GOOS, Start: startProcess}
}

// Index opens the public tournament list
func (l *Launcher) Index() error {
	return l.Open(l.page("/"))
}

// Admin opens the admin dashboard
func (l *Launcher) Admin() error {
	return l.Open(l.page("/admin"))
}

// Bracket opens the public view of one tournament
func (l *Launcher) Bracket(tournamentID string) error {
	if strings.TrimSpace(tournamentID) == "" {
		return fmt.Errorf("tournament id is required")
	}
	return l.Open(l.page("/bracket/" + url.PathEscape(tournamentID)))
}

func (l *Launcher) page(path string) string {
	return strings.TrimRight(l.BaseURL, "/") + path
}

// Open opens an arbitrary URL
func (l *Launcher) Open(target string) error {
	cmd, ok := openers[l.GOOS]
	if !ok {
		return fmt.Errorf("unsupported platform: %s", l.GOOS)
	}
	args := append(append([]string{}, cmd[1:]...), target)
	return l.Start(cmd[0], args...)
}
