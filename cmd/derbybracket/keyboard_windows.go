//go:build windows

package main

import "os"

// listenForKeyboard reads keys from stdin. The console stays line buffered,
// so each key needs Enter.
func listenForKeyboard(keys *keyActions) {
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			continue
		}
		if keys.handle(buf[0]) {
			os.Exit(0)
		}
	}
}
