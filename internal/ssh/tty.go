// Package ssh bridges gliderlabs SSH sessions to tcell terminals so the
// inspector can be served remotely.
package ssh

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// SessionTty implements tcell.Tty over one gliderlabs/ssh session. Every
// connected client gets its own SessionTty → tcell.Screen pair.
type SessionTty struct {
	session gossh.Session
	mu      sync.Mutex
	window  gossh.Window
	winCh   <-chan gossh.Window
	resize  func()
}

// NewSessionTty wraps an SSH session as a tcell Tty. pty carries the
// initial window size; winCh delivers resize events for the lifetime of
// the connection.
func NewSessionTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *SessionTty {
	return &SessionTty{
		session: s,
		window:  pty.Window,
		winCh:   winCh,
	}
}

// Read pulls raw keyboard bytes from the client.
func (t *SessionTty) Read(b []byte) (int, error) { return t.session.Read(b) }

// Write pushes rendered output to the client.
func (t *SessionTty) Write(b []byte) (int, error) { return t.session.Write(b) }

// Close closes the SSH channel.
func (t *SessionTty) Close() error { return t.session.Close() }

// Start is a no-op; the SSH channel is already open.
func (t *SessionTty) Start() error { return nil }

// Stop is a no-op; the server handler owns the channel.
func (t *SessionTty) Stop() error { return nil }

// Drain is a no-op; SSH writes flush immediately.
func (t *SessionTty) Drain() error { return nil }

// WindowSize reports the client's current terminal dimensions.
func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers tcell's resize callback and starts draining the
// window-change channel.
func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.resize = cb
	t.mu.Unlock()

	go func() {
		for win := range t.winCh {
			t.mu.Lock()
			t.window = win
			cb := t.resize
			t.mu.Unlock()
			if cb != nil {
				cb()
			}
		}
	}()
}
