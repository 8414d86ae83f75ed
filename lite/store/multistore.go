package store

import (
	log "github.com/tendermint/tendermint/libs/log"

	lerrors "github.com/bftlite/lightclient/lite/errors"
	"github.com/bftlite/lightclient/lite/types"
)

// MultiStore consults a list of stores in order, adapted directly from the
// teacher's multiProvider: saves fan out to every store, aborting on the
// first error. LatestTrustedState returns the best answer across all of
// them rather than stopping at the first hit, exactly matching
// multiProvider.LatestFullCommit's "greatest height wins" behavior, while
// TrustedState returns the first hit.
type MultiStore[H types.Header, C types.Commit] struct {
	stores []TrustedStore[H, C]
	logger log.Logger
}

// NewMultiStore wraps stores, consulted in the given order for
// TrustedState (first hit wins) and compared by height for
// LatestTrustedState (highest wins).
func NewMultiStore[H types.Header, C types.Commit](stores ...TrustedStore[H, C]) *MultiStore[H, C] {
	return &MultiStore[H, C]{stores: stores, logger: log.NewNopLogger()}
}

// SetLogger sets the logger.
func (m *MultiStore[H, C]) SetLogger(logger log.Logger) {
	m.logger = logger
}

func (m *MultiStore[H, C]) SaveTrustedState(ts types.TrustedState[H, C]) error {
	m.logger.Info("MultiStore.SaveTrustedState()...", "height", ts.LastHeader().Header().Height())
	for i, s := range m.stores {
		if err := s.SaveTrustedState(ts); err != nil {
			m.logger.Error("MultiStore.SaveTrustedState() got error", "store", i, "err", err)
			return err
		}
	}
	return nil
}

func (m *MultiStore[H, C]) LatestTrustedState() (types.TrustedState[H, C], error) {
	m.logger.Info("MultiStore.LatestTrustedState()...")
	var (
		best  types.TrustedState[H, C]
		found bool
	)
	for _, s := range m.stores {
		ts, err := s.LatestTrustedState()
		if lerrors.IsErrCommitNotFound(err) {
			continue
		}
		if err != nil {
			m.logger.Error("MultiStore.LatestTrustedState() got error", "err", err)
			return types.TrustedState[H, C]{}, err
		}
		if !found || ts.LastHeader().Header().Height() > best.LastHeader().Header().Height() {
			best = ts
			found = true
		}
	}
	if !found {
		m.logger.Error("MultiStore.LatestTrustedState() found nothing")
		return types.TrustedState[H, C]{}, lerrors.ErrCommitNotFound()
	}
	m.logger.Info("MultiStore.LatestTrustedState() found latest", "height", best.LastHeader().Header().Height())
	return best, nil
}

func (m *MultiStore[H, C]) TrustedState(height types.Height) (types.TrustedState[H, C], error) {
	for _, s := range m.stores {
		ts, err := s.TrustedState(height)
		if lerrors.IsErrCommitNotFound(err) {
			continue
		}
		if err != nil {
			m.logger.Error("MultiStore.TrustedState() got error", "height", height, "err", err)
			return types.TrustedState[H, C]{}, err
		}
		return ts, nil
	}
	return types.TrustedState[H, C]{}, lerrors.ErrCommitNotFound()
}
