//go:build windows

package main

import (
	"os"

	"golang.org/x/sys/windows"
)

// enableVT switches the console into virtual terminal mode before
// interactiveSelect takes over: arrow keys then arrive as the ANSI
// sequences the selector decodes, and its clear-screen and highlight
// escapes are rendered instead of printed.
func enableVT() {
	addConsoleMode(os.Stdin, windows.ENABLE_VIRTUAL_TERMINAL_INPUT)
	addConsoleMode(os.Stdout, windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING)
}

// addConsoleMode sets flag on f's console mode. Redirected handles have no
// console mode and are left alone.
func addConsoleMode(f *os.File, flag uint32) bool {
	h := windows.Handle(f.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return false
	}
	return windows.SetConsoleMode(h, mode|flag) == nil
}
