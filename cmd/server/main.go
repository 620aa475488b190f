// tilelight-server serves the lighting inspector over SSH: every client
// gets its own generated world on its own terminal. Build:
//
//	go build -o tilelight-server ./cmd/server
//
// Connect from any terminal:
//
//	ssh -p 2222 localhost
package main

import (
	"crypto/ed25519"
	cryptorand "crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"

	"tilelight/config"
	"tilelight/internal/demo"
	internalssh "tilelight/internal/ssh"
)

// allowedTerms is the set of TERM values accepted from clients; anything
// else falls back to xterm-256color.
var allowedTerms = map[string]bool{
	"xterm-256color":        true,
	"xterm":                 true,
	"xterm-color":           true,
	"screen-256color":       true,
	"screen":                true,
	"tmux-256color":         true,
	"tmux":                  true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode-256color": true,
}

func main() {
	cfgPath := flag.String("config", "", "Path to a YAML config overriding the embedded defaults")
	port := flag.Int("port", 0, "SSH server port (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *port == 0 {
		*port = cfg.Server.Port
	}

	signer := loadOrCreateHostKey(cfg.Server.HostKey)

	srv := &gossh.Server{
		Addr:        fmt.Sprintf(":%d", *port),
		IdleTimeout: 10 * time.Minute,
		MaxTimeout:  4 * time.Hour,
		Handler: func(s gossh.Session) {
			handleSession(cfg, s)
		},
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		HostSigners: []gossh.Signer{signer},
	}

	log.Printf("tilelight inspector listening on :%d", *port)
	log.Printf("Connect with:  ssh -p %d -o StrictHostKeyChecking=no localhost", *port)
	log.Fatal(srv.ListenAndServe())
}

// termMu serializes os.Setenv("TERM") around tcell screen creation;
// several goroutines may build screens concurrently.
var termMu sync.Mutex

// handleSession runs one client's inspector world.
func handleSession(cfg *config.Config, s gossh.Session) {
	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintln(s, "The inspector needs a PTY. Connect with: ssh -t -p 2222 <host>")
		return
	}

	term := "xterm-256color"
	for _, env := range s.Environ() {
		if strings.HasPrefix(env, "TERM=") {
			if candidate := env[5:]; allowedTerms[candidate] {
				term = candidate
			}
			break
		}
	}

	tty := internalssh.NewSessionTty(s, pty, winCh)
	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(s, "Screen init failed: %v\n", err)
		return
	}
	defer screen.Fini()

	world := demo.NewSession(cfg, time.Now().UnixNano())
	if err := world.Run(screen); err != nil {
		log.Printf("session from %s: %v", s.RemoteAddr(), err)
	}
}

// loadOrCreateHostKey reads the PEM host key, generating and persisting a
// fresh ed25519 key on first start.
func loadOrCreateHostKey(path string) gossh.Signer {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.Printf("Loaded host key from %s", path)
			return signer
		}
	}

	log.Printf("Generating new ed25519 host key → %s", path)
	_, key, err := ed25519.GenerateKey(cryptorand.Reader)
	if err != nil {
		log.Fatalf("generate host key: %v", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		log.Fatalf("create signer: %v", err)
	}
	if pemBlock, err := xssh.MarshalPrivateKey(key, "tilelight server"); err == nil {
		_ = os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600)
	}
	return signer
}
