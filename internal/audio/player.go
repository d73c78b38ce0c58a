// Package audio plays per-verse recitation with ordered fallback across
// multiple remote sources.
package audio

import (
	"context"
	"errors"
	"sync"
)

// ErrPlaybackUnavailable is the single user-facing failure surfaced after
// every candidate source has failed.
var ErrPlaybackUnavailable = errors.New("playback unavailable")

type State int

const (
	Idle State = iota
	Probing
	Playing
	Failed
)

func (s State) String() string {
	switch s {
	case Probing:
		return "probing"
	case Playing:
		return "playing"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Backend loads and plays a single audio source. Probe must release
// whatever it loaded before returning an error; Play blocks until playback
// completes or ctx is cancelled.
type Backend interface {
	Probe(ctx context.Context, url string) error
	Play(ctx context.Context, url string) error
}

// Player controls playback of one verse. Sources are tried strictly in
// order: a candidate is probed only after the previous one has definitively
// failed, and stopping cancels whichever probe or playback is in flight.
type Player struct {
	mu      sync.Mutex
	backend Backend
	state   State
	cancel  context.CancelFunc
}

func NewPlayer(backend Backend) *Player {
	return &Player{backend: backend}
}

func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Play walks the candidate list until one source plays or all are
// exhausted. It blocks for the whole playback session and is a no-op when a
// session is already probing or playing.
func (p *Player) Play(ctx context.Context, sources []string) error {
	p.mu.Lock()
	if p.state == Probing || p.state == Playing {
		p.mu.Unlock()
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.state = Probing
	p.mu.Unlock()

	defer cancel()

	it := &candidates{list: sources}
	for {
		if ctx.Err() != nil {
			// Stopped mid-search; the session is already back to Idle.
			return nil
		}
		url, ok := it.next()
		if !ok {
			p.setState(Failed)
			return ErrPlaybackUnavailable
		}
		if err := p.backend.Probe(ctx, url); err != nil {
			continue
		}
		// The source became playable. A stop that raced the probe wins:
		// playback must not start after the user already stopped.
		if !p.transition(Probing, Playing) {
			return nil
		}
		err := p.backend.Play(ctx, url)
		p.setState(Idle)
		if err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	}
}

// Stop halts the current session, if any. Calling it when idle is a no-op.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.state = Idle
}

// Toggle stops a playing session, starts one when idle, and is ignored
// while a play attempt is still probing sources.
func (p *Player) Toggle(ctx context.Context, sources []string) error {
	p.mu.Lock()
	switch p.state {
	case Probing:
		p.mu.Unlock()
		return nil
	case Playing:
		p.mu.Unlock()
		p.Stop()
		return nil
	}
	p.mu.Unlock()
	return p.Play(ctx, sources)
}

func (p *Player) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

// transition moves from to to, failing when another caller changed the
// state in between (a concurrent Stop).
func (p *Player) transition(from, to State) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != from {
		return false
	}
	p.state = to
	return true
}
