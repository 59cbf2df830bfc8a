//go:build !linux && !darwin && !windows

package main

// listenForKeyboard is a no-op where raw terminal input is not supported
func listenForKeyboard(keys *keyActions) {}
