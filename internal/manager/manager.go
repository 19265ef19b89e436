// Package manager orchestrates the single current game and the
// persisted game repository. Every mutation of the current game is
// flushed to the store before the call returns, so the repository never
// lags behind the last completed operation.
package manager

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/jeepscore/jeepscore/internal/game"
	"github.com/jeepscore/jeepscore/internal/store"
)

// repositoryKey is the single namespaced store key holding the whole
// game-id -> record mapping, read and written in full on every access.
const repositoryKey = "jeepscore.games"

// DefaultRetention is how many saved games the repository keeps before
// evicting the oldest.
const DefaultRetention = 10

var (
	// ErrConflict indicates an attempt to start or load a game while one
	// is already current.
	ErrConflict = errors.New("a game is already in progress")

	// ErrNotFound indicates an operation referencing a game that is not
	// in the repository, or a current-game operation with no current
	// game.
	ErrNotFound = errors.New("game not found")
)

// Manager owns at most one current game and the persisted repository.
type Manager struct {
	logger    *log.Logger
	store     store.Store
	clock     quartz.Clock
	retention int

	mu      sync.Mutex
	current *game.Game
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock sets the clock used for game timestamps.
func WithClock(clock quartz.Clock) Option {
	return func(m *Manager) { m.clock = clock }
}

// WithRetention caps how many saved games the repository keeps. Values
// below one disable eviction.
func WithRetention(n int) Option {
	return func(m *Manager) { m.retention = n }
}

// New creates a manager over the given store.
func New(s store.Store, logger *log.Logger, opts ...Option) *Manager {
	m := &Manager{
		logger:    logger.WithPrefix("manager"),
		store:     s,
		clock:     quartz.NewReal(),
		retention: DefaultRetention,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CurrentGame returns the current game, nil if none.
func (m *Manager) CurrentGame() *game.Game {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// IsGameInProgress reports whether a game is current.
func (m *Manager) IsGameInProgress() bool {
	return m.CurrentGame() != nil
}

// StartGame constructs and starts a new game from the given players,
// persists it, and makes it current. It fails with ErrConflict while a
// game is current, leaving the current game and repository untouched.
func (m *Manager) StartGame(players []*game.Player, opts ...game.Option) (*game.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		return nil, fmt.Errorf("%w: game %s", ErrConflict, m.current.ID())
	}

	g, err := game.NewGame(m.clock, players, opts...)
	if err != nil {
		return nil, err
	}
	if err := g.Start(); err != nil {
		return nil, err
	}
	if err := m.saveLocked(g); err != nil {
		return nil, err
	}

	m.current = g
	m.logger.Info("started game", "id", g.ID(), "players", g.NumPlayers())
	return g, nil
}

// EndGame transitions the current game to ended, persists it, and
// clears the current pointer; the finished game lives on in the
// repository as history. Late count corrections are still possible by
// loading the ended game again.
func (m *Manager) EndGame() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, err := m.requireCurrent()
	if err != nil {
		return err
	}
	if err := g.End(); err != nil {
		return err
	}
	if err := m.saveLocked(g); err != nil {
		return err
	}
	m.current = nil
	m.logger.Info("ended game", "id", g.ID(), "count", g.Count())
	return nil
}

// IncCount increments the current game's count, persists, and returns
// the new count.
func (m *Manager) IncCount() (int, error) {
	return m.mutateCount((*game.Game).IncCount)
}

// DecCount decrements the current game's count, persists, and returns
// the new count.
func (m *Manager) DecCount() (int, error) {
	return m.mutateCount((*game.Game).DecCount)
}

func (m *Manager) mutateCount(op func(*game.Game) error) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, err := m.requireCurrent()
	if err != nil {
		return 0, err
	}
	if err := op(g); err != nil {
		return g.Count(), err
	}
	if err := m.saveLocked(g); err != nil {
		return g.Count(), err
	}
	return g.Count(), nil
}

// SetName renames the current game and persists.
func (m *Manager) SetName(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, err := m.requireCurrent()
	if err != nil {
		return err
	}
	g.SetName(name)
	return m.saveLocked(g)
}

// SetAlgorithm switches the current game's scoring algorithm and
// persists.
func (m *Manager) SetAlgorithm(algorithm game.Algorithm) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, err := m.requireCurrent()
	if err != nil {
		return err
	}
	g.SetAlgorithm(algorithm)
	return m.saveLocked(g)
}

// SaveGame upserts the game's snapshot into the repository and evicts
// the chronologically oldest entries beyond the retention cap.
func (m *Manager) SaveGame(g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked(g)
}

// ResetGame abandons the current game: the current pointer is cleared
// and the game's snapshot is removed from the repository. Resetting with
// no current game is a no-op.
func (m *Manager) ResetGame() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return nil
	}

	games, err := m.readRepository()
	if err != nil {
		return err
	}
	id := m.current.ID()
	if _, ok := games[id]; ok {
		delete(games, id)
		if err := m.writeRepository(games); err != nil {
			return err
		}
	}

	m.current = nil
	m.logger.Info("reset game", "id", id)
	return nil
}

// DeleteSavedGame removes a saved game by id, failing with ErrNotFound
// for absent ids. The current pointer is cleared if it referenced the
// deleted game.
func (m *Manager) DeleteSavedGame(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	games, err := m.readRepository()
	if err != nil {
		return err
	}
	if _, ok := games[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(games, id)
	if err := m.writeRepository(games); err != nil {
		return err
	}

	if m.current != nil && m.current.ID() == id {
		m.current = nil
	}
	m.logger.Info("deleted saved game", "id", id)
	return nil
}

// GetSavedGames returns all saved game records, oldest first.
func (m *Manager) GetSavedGames() ([]game.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	games, err := m.readRepository()
	if err != nil {
		return nil, err
	}
	records := make([]game.Record, 0, len(games))
	for _, rec := range games {
		records = append(records, rec)
	}
	// Ids are time-ordered, so id order is chronological order.
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

// GetLatestSavedGame returns the newest saved game record, failing with
// ErrNotFound when the repository is empty.
func (m *Manager) GetLatestSavedGame() (game.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latestLocked()
}

// LoadGame reconstructs a saved game and makes it current. It fails with
// ErrConflict while a game is current and ErrNotFound for absent ids.
func (m *Manager) LoadGame(id string) (*game.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		return nil, fmt.Errorf("%w: game %s", ErrConflict, m.current.ID())
	}

	games, err := m.readRepository()
	if err != nil {
		return nil, err
	}
	rec, ok := games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	g, err := game.GameFromRecord(m.clock, rec)
	if err != nil {
		return nil, err
	}
	m.current = g
	m.logger.Debug("loaded game", "id", g.ID(), "state", g.State())
	return g, nil
}

// ResumeLatest reconstructs the newest saved game, whatever its state,
// and makes it current.
func (m *Manager) ResumeLatest() (*game.Game, error) {
	return m.resume(false)
}

// ResumeActive reconstructs the newest saved game only if it has not
// ended, failing with ErrNotFound otherwise. This is the restore-on-load
// behavior: a finished game is history, not something to resume.
func (m *Manager) ResumeActive() (*game.Game, error) {
	return m.resume(true)
}

func (m *Manager) resume(activeOnly bool) (*game.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		return nil, fmt.Errorf("%w: game %s", ErrConflict, m.current.ID())
	}

	rec, err := m.latestLocked()
	if err != nil {
		return nil, err
	}
	if activeOnly && rec.EndTime != nil {
		return nil, fmt.Errorf("%w: latest game %s has ended", ErrNotFound, rec.ID)
	}

	g, err := game.GameFromRecord(m.clock, rec)
	if err != nil {
		return nil, err
	}
	m.current = g
	m.logger.Debug("resumed game", "id", g.ID(), "state", g.State())
	return g, nil
}

func (m *Manager) requireCurrent() (*game.Game, error) {
	if m.current == nil {
		return nil, fmt.Errorf("%w: no game in progress", ErrNotFound)
	}
	return m.current, nil
}

func (m *Manager) latestLocked() (game.Record, error) {
	games, err := m.readRepository()
	if err != nil {
		return game.Record{}, err
	}
	latest := ""
	for id := range games {
		if id > latest {
			latest = id
		}
	}
	if latest == "" {
		return game.Record{}, fmt.Errorf("%w: repository is empty", ErrNotFound)
	}
	return games[latest], nil
}

func (m *Manager) saveLocked(g *game.Game) error {
	games, err := m.readRepository()
	if err != nil {
		return err
	}
	games[g.ID()] = g.Record()

	// Evict oldest entries beyond the cap. Ids are time-ordered, so the
	// lexicographically smallest id is the chronologically earliest game.
	if m.retention > 0 {
		for len(games) > m.retention {
			oldest := ""
			for id := range games {
				if oldest == "" || id < oldest {
					oldest = id
				}
			}
			delete(games, oldest)
			m.logger.Debug("evicted oldest saved game", "id", oldest)
		}
	}

	return m.writeRepository(games)
}

func (m *Manager) readRepository() (map[string]game.Record, error) {
	raw, ok, err := m.store.Get(repositoryKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read repository: %w", err)
	}
	games := make(map[string]game.Record)
	if !ok || raw == "" {
		return games, nil
	}
	if err := json.Unmarshal([]byte(raw), &games); err != nil {
		return nil, fmt.Errorf("failed to decode repository: %w", err)
	}
	return games, nil
}

func (m *Manager) writeRepository(games map[string]game.Record) error {
	data, err := json.Marshal(games)
	if err != nil {
		return fmt.Errorf("failed to encode repository: %w", err)
	}
	if err := m.store.Set(repositoryKey, string(data)); err != nil {
		return fmt.Errorf("failed to write repository: %w", err)
	}
	return nil
}
