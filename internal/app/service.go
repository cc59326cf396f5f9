package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jaminalder/tictactoe-history/internal/domain"
)

// Errors exposed by the service layer.
var ErrNotFound = errors.New("game not found")

// GameState is the in-memory state tracked per game.
type GameState struct {
	ID      string
	Game    domain.Game
	Created time.Time
	Updated time.Time
}

func (gs *GameState) snapshot() *GameState {
	cp := *gs
	cp.Game = gs.Game.Clone()
	return &cp
}

type subscriber struct {
	mu     sync.Mutex
	ch     chan []byte
	closed bool
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}

// offer sends without blocking; false means the buffer was full.
func (s *subscriber) offer(b []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return true
	}
	select {
	case s.ch <- b:
		return true
	default:
		return false
	}
}

// Service manages games and subscribers.
type Service struct {
	mu     sync.Mutex
	games  map[string]*GameState
	subs   map[string]map[*subscriber]struct{}
	render func(GameState) []byte
	log    zerolog.Logger
	now    func() time.Time
}

// NewService creates a service with a renderer that broadcasts nothing useful.
func NewService() *Service { return NewServiceWithRenderer(nil) }

// NewServiceWithRenderer allows injecting a renderer for broadcast payloads.
func NewServiceWithRenderer(renderer func(GameState) []byte) *Service {
	s := &Service{
		games: make(map[string]*GameState),
		subs:  make(map[string]map[*subscriber]struct{}),
		log:   zerolog.Nop(),
		now:   time.Now,
	}
	s.SetRenderer(renderer)
	return s
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(GameState) []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if renderer == nil {
		s.render = func(gs GameState) []byte { return nil }
		return
	}
	s.render = renderer
}

// SetLogger replaces the service logger.
func (s *Service) SetLogger(l zerolog.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = l.With().Str("component", "games").Logger()
}

// CreateGame creates and registers a new game.
func (s *Service) CreateGame() (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	gs := &GameState{ID: uuid.NewString(), Game: domain.New(), Created: now, Updated: now}
	s.games[gs.ID] = gs
	s.log.Debug().Str("game", gs.ID).Msg("game created")
	return gs.snapshot(), nil
}

// Get returns a copy of the game state if present.
func (s *Service) Get(id string) (*GameState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.games[id]
	if !ok {
		return nil, false
	}
	return gs.snapshot(), true
}

// Play clicks a cell of the live board. A rejected click returns the
// unchanged state together with the domain error.
func (s *Service) Play(id string, cell int) (*GameState, error) {
	return s.apply(id, func(g *domain.Game) error { return g.Play(cell) })
}

// JumpTo makes a recorded move the live one.
func (s *Service) JumpTo(id string, move int) (*GameState, error) {
	return s.apply(id, func(g *domain.Game) error { return g.JumpTo(move) })
}

// ToggleOrder flips the move list order.
func (s *Service) ToggleOrder(id string) (*GameState, error) {
	return s.apply(id, func(g *domain.Game) error {
		g.ToggleOrder()
		return nil
	})
}

// apply runs one transition under the lock, then broadcasts the new state
// if the transition succeeded.
func (s *Service) apply(id string, transition func(*domain.Game) error) (*GameState, error) {
	s.mu.Lock()
	gs, ok := s.games[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	if err := transition(&gs.Game); err != nil {
		cp := gs.snapshot()
		s.mu.Unlock()
		return cp, err
	}
	gs.Updated = s.now()

	// Snapshot state and subscribers
	cp := gs.snapshot()
	subs := s.copySubsLocked(id)
	payload := s.render(*cp)
	log := s.log
	s.mu.Unlock()

	s.broadcast(id, subs, payload, log)
	return cp, nil
}

func (s *Service) broadcast(id string, subs map[*subscriber]struct{}, payload []byte, log zerolog.Logger) {
	var toDrop []*subscriber
	// Fan-out; drop slow subscribers by closing and marking for deletion
	for sub := range subs {
		if !sub.offer(payload) {
			sub.close()
			toDrop = append(toDrop, sub)
		}
	}
	if len(toDrop) == 0 {
		return
	}
	s.mu.Lock()
	for _, sub := range toDrop {
		if set, ok := s.subs[id]; ok {
			delete(set, sub)
		}
	}
	s.mu.Unlock()
	log.Debug().Str("game", id).Int("dropped", len(toDrop)).Msg("dropped slow subscribers")
}

// Subscribe registers a subscriber for a game. Returns a channel and an
// unsubscribe func; the subscription also ends when ctx is done.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return nil, func() {}, ErrNotFound
	}
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	sub := &subscriber{ch: make(chan []byte, 1)}
	set[sub] = struct{}{}

	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			s.mu.Lock()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
			s.mu.Unlock()
			sub.close()
		})
	}
	go func() {
		<-ctx.Done()
		unsub()
	}()
	return sub.ch, unsub, nil
}

// Sweep removes games not updated within ttl of now and closes their
// subscribers. It returns the number of games removed.
func (s *Service) Sweep(now time.Time, ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, gs := range s.games {
		if now.Sub(gs.Updated) < ttl {
			continue
		}
		for sub := range s.subs[id] {
			sub.close()
		}
		delete(s.subs, id)
		delete(s.games, id)
		removed++
	}
	return removed
}

// RunJanitor sweeps idle games every interval until ctx is done.
func (s *Service) RunJanitor(ctx context.Context, interval, ttl time.Duration) {
	if interval <= 0 || ttl <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(s.now(), ttl); n > 0 {
				s.mu.Lock()
				log := s.log
				s.mu.Unlock()
				log.Info().Int("removed", n).Dur("ttl", ttl).Msg("swept idle games")
			}
		}
	}
}

func (s *Service) copySubsLocked(id string) map[*subscriber]struct{} {
	out := make(map[*subscriber]struct{})
	if set, ok := s.subs[id]; ok {
		for k := range set {
			out[k] = struct{}{}
		}
	}
	return out
}
