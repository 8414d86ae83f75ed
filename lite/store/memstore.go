package store

import (
	"sync"

	log "github.com/tendermint/tendermint/libs/log"

	lerrors "github.com/bftlite/lightclient/lite/errors"
	"github.com/bftlite/lightclient/lite/types"
)

// MemStore is an in-memory TrustedStore bounded to capacity states,
// evicting the lowest-height entry once full. It plays the cache role the
// teacher's multiProvider delegated to an inner Provider, except it
// carries its own state directly rather than wrapping another store.
type MemStore[H types.Header, C types.Commit] struct {
	mu       sync.RWMutex
	capacity int
	byHeight map[types.Height]types.TrustedState[H, C]
	latest   types.Height
	hasAny   bool
	logger   log.Logger
}

// NewMemStore returns a MemStore retaining at most capacity states.
// capacity <= 0 means unbounded.
func NewMemStore[H types.Header, C types.Commit](capacity int) *MemStore[H, C] {
	return &MemStore[H, C]{
		capacity: capacity,
		byHeight: make(map[types.Height]types.TrustedState[H, C]),
		logger:   log.NewNopLogger(),
	}
}

// SetLogger sets the logger.
func (m *MemStore[H, C]) SetLogger(logger log.Logger) {
	m.logger = logger
}

func (m *MemStore[H, C]) SaveTrustedState(ts types.TrustedState[H, C]) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	height := ts.LastHeader().Header().Height()
	m.logger.Info("MemStore.SaveTrustedState()...", "height", height)
	m.byHeight[height] = ts
	if !m.hasAny || height > m.latest {
		m.latest = height
		m.hasAny = true
	}

	if m.capacity > 0 && len(m.byHeight) > m.capacity {
		m.evictOldestLocked()
	}
	return nil
}

func (m *MemStore[H, C]) evictOldestLocked() {
	var oldest types.Height
	first := true
	for h := range m.byHeight {
		if first || h < oldest {
			oldest = h
			first = false
		}
	}
	m.logger.Debug("MemStore evicting oldest", "height", oldest)
	delete(m.byHeight, oldest)
}

func (m *MemStore[H, C]) LatestTrustedState() (types.TrustedState[H, C], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.hasAny {
		m.logger.Error("MemStore.LatestTrustedState() found nothing")
		return types.TrustedState[H, C]{}, lerrors.ErrCommitNotFound()
	}
	m.logger.Info("MemStore.LatestTrustedState() found latest", "height", m.latest)
	return m.byHeight[m.latest], nil
}

func (m *MemStore[H, C]) TrustedState(height types.Height) (types.TrustedState[H, C], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ts, ok := m.byHeight[height]
	if !ok {
		m.logger.Error("MemStore.TrustedState() got error", "height", height, "err", lerrors.ErrCommitNotFound())
		return types.TrustedState[H, C]{}, lerrors.ErrCommitNotFound()
	}
	return ts, nil
}
