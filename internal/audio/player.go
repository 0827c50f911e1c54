// Package audio plays preview clips through an external media player.
package audio

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
)

const DefaultBinary = "mpv"

var (
	ErrEmptyURL       = errors.New("empty preview url")
	ErrAlreadyStarted = errors.New("playback already started")
)

// Player loads a clip without starting it.
type Player interface {
	Load(url string) (Handle, error)
}

// Handle controls one loaded clip.
type Handle interface {
	Play() error
	Stop() error
	Playing() bool
}

type MPVParams struct {
	Binary    string   // optional, defaults to DefaultBinary
	ExtraArgs []string // placed before the player flags
	Env       []string // appended to the process environment
}

// MPV spawns one player process per clip.
type MPV struct {
	binary    string
	extraArgs []string
	env       []string
}

func NewMPV(params MPVParams) *MPV {
	binary := params.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	return &MPV{
		binary:    binary,
		extraArgs: params.ExtraArgs,
		env:       params.Env,
	}
}

// Binary returns the player executable name.
func (m *MPV) Binary() string {
	return m.binary
}

func (m *MPV) Load(url string) (Handle, error) {
	if url == "" {
		return nil, ErrEmptyURL
	}
	return &mpvHandle{player: m, url: url}, nil
}

type mpvHandle struct {
	player *MPV
	url    string

	mu      sync.Mutex
	cmd     *exec.Cmd
	done    chan struct{}
	stopped bool
}

func (h *mpvHandle) Play() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cmd != nil {
		return ErrAlreadyStarted
	}

	args := append([]string{}, h.player.extraArgs...)
	args = append(args, "--no-video", "--really-quiet", h.url)
	cmd := exec.Command(h.player.binary, args...)
	if len(h.player.env) > 0 {
		cmd.Env = append(os.Environ(), h.player.env...)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", h.player.binary, err)
	}

	done := make(chan struct{})
	h.cmd = cmd
	h.done = done

	go func() {
		_ = cmd.Wait()
		close(done)
	}()
	return nil
}

func (h *mpvHandle) Stop() error {
	h.mu.Lock()
	cmd, done := h.cmd, h.done
	if cmd == nil || h.stopped {
		h.mu.Unlock()
		return nil
	}
	h.stopped = true
	h.mu.Unlock()

	select {
	case <-done:
		return nil
	default:
	}

	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("stop %s: %w", h.player.binary, err)
	}
	<-done
	return nil
}

func (h *mpvHandle) Playing() bool {
	h.mu.Lock()
	done := h.done
	h.mu.Unlock()

	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}
