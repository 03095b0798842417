// Package sound provides the ambient sound catalog and a best-effort
// looping player behind an interface the session screen drives.
package sound

import (
	"os/exec"
	"strconv"
	"sync"
)

// Sound is one ambient loop from the catalog.
type Sound struct {
	ID   string
	Name string
	URL  string
}

// Catalog lists the selectable ambient loops.
var Catalog = []Sound{
	{ID: "rain", Name: "Yağmur Sesi", URL: "https://actions.google.com/sounds/v1/weather/rain_heavy_loud.ogg"},
	{ID: "fire", Name: "Şömine", URL: "https://actions.google.com/sounds/v1/ambiences/fireplace.ogg"},
	{ID: "cafe", Name: "Kafe Ortamı", URL: "https://actions.google.com/sounds/v1/ambiences/coffee_shop.ogg"},
}

// ByID looks a sound up in the catalog.
func ByID(id string) (Sound, bool) {
	for _, s := range Catalog {
		if s.ID == id {
			return s, true
		}
	}
	return Sound{}, false
}

// ClampVolume bounds a volume scalar to [0, 1].
func ClampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Player loops an ambient sound. Implementations are best effort: the
// core never consults playback success.
type Player interface {
	Play(url string, volume float64) error
	Stop()
}

// Nop ignores playback. Used in tests and when no player binary exists.
type Nop struct{}

func (Nop) Play(string, float64) error { return nil }
func (Nop) Stop()                      {}

// Exec plays through an external player binary (mpv, then ffplay).
type Exec struct {
	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewPlayer returns an Exec player when a supported binary is on PATH,
// otherwise Nop.
func NewPlayer() Player {
	for _, bin := range []string{"mpv", "ffplay"} {
		if _, err := exec.LookPath(bin); err == nil {
			return &Exec{}
		}
	}
	return Nop{}
}

func (p *Exec) Play(url string, volume float64) error {
	p.Stop()

	volume = ClampVolume(volume)
	var cmd *exec.Cmd
	if _, err := exec.LookPath("mpv"); err == nil {
		cmd = exec.Command("mpv", "--no-video", "--really-quiet", "--loop=inf",
			"--volume="+strconv.Itoa(int(volume*100)), url)
	} else {
		cmd = exec.Command("ffplay", "-nodisp", "-loglevel", "quiet", "-loop", "0",
			"-volume", strconv.Itoa(int(volume*100)), url)
	}
	if err := cmd.Start(); err != nil {
		return err
	}

	p.mu.Lock()
	p.cmd = cmd
	p.mu.Unlock()

	// Reap the process when it exits on its own.
	go cmd.Wait()
	return nil
}

func (p *Exec) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cmd != nil && p.cmd.Process != nil {
		p.cmd.Process.Kill()
	}
	p.cmd = nil
}
