// Package notify delivers desktop reminders. Delivery is fire and
// forget: nothing in the core waits on or retries a notification.
package notify

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Notifier is the reminder sink injected into the tracker.
type Notifier interface {
	Fire(title, body string)
}

// Nop swallows every notification. Used in tests and when the user has
// not enabled reminders.
type Nop struct{}

func (Nop) Fire(string, string) {}

// Func adapts a function to the Notifier interface.
type Func func(title, body string)

func (f Func) Fire(title, body string) { f(title, body) }

// Desktop sends best-effort notifications through whatever the host
// platform offers (notify-send on Linux, osascript on macOS). A
// missing helper or failed send is silently dropped; in-app banners
// remain the primary channel.
type Desktop struct{}

func (Desktop) Fire(title, body string) {
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", body, title)
		go exec.Command("osascript", "-e", script).Run()
	default:
		if _, err := exec.LookPath("notify-send"); err != nil {
			return
		}
		go exec.Command("notify-send", title, body).Run()
	}
}
