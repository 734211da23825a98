// Package core holds process-wide helpers shared by every goroutine
package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

var (
	crashMu      sync.Mutex
	crashCleanup func()
	crashOut     io.Writer = os.Stderr
	crashExit              = os.Exit
)

// SetCrashCleanup registers the terminal restore to run before a crash report
func SetCrashCleanup(fn func()) {
	crashMu.Lock()
	defer crashMu.Unlock()
	crashCleanup = fn
}

// HandleCrash restores the terminal, prints the panic value with a stack trace, and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	cleanup := crashCleanup
	crashCleanup = nil
	crashMu.Unlock()

	if cleanup != nil {
		cleanup()
	}

	fmt.Fprintf(crashOut, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(crashOut, "Stack Trace:\r\n%s\r\n", debug.Stack())
	crashExit(1)
}

// Recover is deferred at the top of main
func Recover() {
	if r := recover(); r != nil {
		HandleCrash(r)
	}
}

// Go runs fn in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword so the terminal is restored on crash.
func Go(fn func()) {
	go func() {
		defer Recover()
		fn()
	}()
}
