package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/abrezinsky/derbybracket/internal/browser"
	"github.com/abrezinsky/derbybracket/internal/logger"
)

// keyActions runs the keyboard shortcuts shared by every platform
type keyActions struct {
	pages *browser.Launcher
	log   *logger.SlogLogger
	out   io.Writer
}

func newKeyActions(baseURL string, appLog *logger.SlogLogger, out io.Writer) *keyActions {
	return &keyActions{pages: browser.New(baseURL), log: appLog, out: out}
}

// handle performs the action bound to key and reports whether the server
// should shut down
func (k *keyActions) handle(key byte) (quit bool) {
	switch strings.ToLower(string(key)) {
	case "a":
		k.openPage("admin page", k.pages.Admin)
	case "b":
		k.openPage("public brackets", k.pages.Index)
	case "h":
		if k.log.IsHTTPLoggingEnabled() {
			k.log.DisableHTTPLogging()
			fmt.Fprintf(k.out, "%sHTTP logging disabled%s\n", yellow, reset)
		} else {
			k.log.EnableHTTPLogging()
			fmt.Fprintf(k.out, "%sHTTP logging enabled%s\n", green, reset)
		}
	case "l":
		next := cycleLogLevel(k.log)
		fmt.Fprintf(k.out, "%sLog level: %s%s%s\n", green, yellow, next, reset)
	case "?":
		printKeyboardHelp()
	case "q", "\x03": // Ctrl+C
		fmt.Fprintf(k.out, "%sShutting down server...%s\n", yellow, reset)
		return true
	}
	return false
}

func (k *keyActions) openPage(what string, open func() error) {
	fmt.Fprintf(k.out, "%sOpening %s in browser...%s\n", cyan, what, reset)
	if err := open(); err != nil {
		fmt.Fprintf(k.out, "%sError opening browser: %v%s\n", red, err, reset)
	}
}
