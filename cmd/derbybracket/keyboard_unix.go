//go:build linux || darwin

package main

import (
	"os"

	"golang.org/x/sys/unix"
)

// listenForKeyboard switches the terminal to unbuffered input and hands each
// key to the shared actions
func listenForKeyboard(keys *keyActions) {
	fd := int(os.Stdin.Fd())
	oldState, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		// Not a terminal
		return
	}

	// Disable canonical mode and echo; output processing stays on so \n
	// still returns the carriage
	newState := *oldState
	newState.Lflag &^= unix.ICANON | unix.ECHO
	newState.Cc[unix.VMIN] = 1
	newState.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &newState); err != nil {
		return
	}
	restore := func() { unix.IoctlSetTermios(fd, ioctlSetTermios, oldState) }
	defer restore()

	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			continue
		}
		if keys.handle(buf[0]) {
			restore()
			os.Exit(0)
		}
	}
}
