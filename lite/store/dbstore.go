package store

import (
	"fmt"
	"regexp"
	"strconv"
	"sync"

	amino "github.com/tendermint/go-amino"
	cryptoAmino "github.com/tendermint/tendermint/crypto/encoding/amino"
	log "github.com/tendermint/tendermint/libs/log"

	dbm "github.com/tendermint/tm-db"

	lerrors "github.com/bftlite/lightclient/lite/errors"
	"github.com/bftlite/lightclient/lite/types"
)

// persistedSignedHeader gives SignedHeader's otherwise-unexported header
// and commit fields an amino-visible shape, since amino's reflection-based
// codec (like encoding/json) only sees exported fields.
type persistedSignedHeader[H types.Header, C types.Commit] struct {
	Header H
	Commit C
}

// DBStore is a tm-db-backed TrustedStore, adapted from the teacher's
// providers/db/db.go: same "<chainID>/<height>/sh" and
// "<chainID>/<height>/vs" key scheme, same amino codec wiring via
// cryptoAmino.RegisterAmino, same optional bounded-retention garbage
// collection. V is the concrete ValidatorSet implementation to decode
// into; it must be a struct amino can unmarshal into, not the
// types.ValidatorSet interface itself.
type DBStore[H types.Header, C types.Commit, V types.ValidatorSet] struct {
	mu        sync.RWMutex
	chainID   string
	db        dbm.DB
	cdc       *amino.Codec
	retention int

	logger log.Logger
}

// NewDBStore returns a DBStore for chainID backed by db. Call
// WithRetention to bound how many heights' worth of state it keeps.
func NewDBStore[H types.Header, C types.Commit, V types.ValidatorSet](chainID string, db dbm.DB) *DBStore[H, C, V] {
	cdc := amino.NewCodec()
	cryptoAmino.RegisterAmino(cdc)
	return &DBStore[H, C, V]{
		chainID: chainID,
		db:      db,
		cdc:     cdc,
		logger:  log.NewNopLogger(),
	}
}

// SetLogger sets the logger.
func (s *DBStore[H, C, V]) SetLogger(logger log.Logger) {
	s.logger = logger
}

// WithRetention limits DBStore to keeping state for only the retention
// most recent heights, pruning older entries after every save. retention
// <= 0 disables pruning. Returns the receiver for chaining, mirroring the
// teacher's DB.SetLimit.
func (s *DBStore[H, C, V]) WithRetention(retention int) *DBStore[H, C, V] {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.retention = retention
	return s
}

func (s *DBStore[H, C, V]) SaveTrustedState(ts types.TrustedState[H, C]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	height := ts.LastHeader().Header().Height()
	s.logger.Info("DBStore.SaveTrustedState()...", "height", height)

	vals, ok := ts.Validators().(V)
	if !ok {
		return lerrors.ErrImplementationSpecific("validator set is not the store's configured concrete type")
	}

	batch := s.db.NewBatch()
	defer batch.Close()

	vsBz, err := s.cdc.MarshalBinaryLengthPrefixed(vals)
	if err != nil {
		return lerrors.ErrIO(err)
	}
	batch.Set(validatorSetKey(s.chainID, uint64(height)+1), vsBz)

	shBz, err := s.cdc.MarshalBinaryLengthPrefixed(persistedSignedHeader[H, C]{
		Header: ts.LastHeader().Header(),
		Commit: ts.LastHeader().Commit(),
	})
	if err != nil {
		return lerrors.ErrIO(err)
	}
	batch.Set(signedHeaderKey(s.chainID, uint64(height)), shBz)

	if err := batch.WriteSync(); err != nil {
		return lerrors.ErrIO(err)
	}

	if s.retention > 0 {
		s.pruneOlderThanLocked(s.retention)
	}
	return nil
}

func (s *DBStore[H, C, V]) LatestTrustedState() (types.TrustedState[H, C], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.logger.Info("DBStore.LatestTrustedState()...")

	itr, err := s.db.ReverseIterator(
		signedHeaderKey(s.chainID, 1),
		append(signedHeaderKey(s.chainID, 1<<63-1), byte(0x00)),
	)
	if err != nil {
		s.logger.Error("DBStore.LatestTrustedState() got error", "err", err)
		return types.TrustedState[H, C]{}, lerrors.ErrIO(err)
	}
	defer itr.Close()

	for ; itr.Valid(); itr.Next() {
		_, height, part, ok := parseKey(itr.Key())
		if !ok || part != "sh" {
			continue
		}
		ts, err := s.loadAt(height)
		if err != nil {
			s.logger.Error("DBStore.LatestTrustedState() got error", "height", height, "err", err)
			return ts, err
		}
		s.logger.Info("DBStore.LatestTrustedState() found latest", "height", height)
		return ts, nil
	}
	s.logger.Error("DBStore.LatestTrustedState() found nothing")
	return types.TrustedState[H, C]{}, lerrors.ErrCommitNotFound()
}

func (s *DBStore[H, C, V]) TrustedState(height types.Height) (types.TrustedState[H, C], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.logger.Info("DBStore.TrustedState()...", "height", height)
	ts, err := s.loadAt(uint64(height))
	if err != nil {
		s.logger.Error("DBStore.TrustedState() got error", "height", height, "err", err)
	}
	return ts, err
}

// loadAt assumes the caller already holds s.mu for reading.
func (s *DBStore[H, C, V]) loadAt(height uint64) (types.TrustedState[H, C], error) {
	shBz, err := s.db.Get(signedHeaderKey(s.chainID, height))
	if err != nil {
		return types.TrustedState[H, C]{}, lerrors.ErrIO(err)
	}
	if shBz == nil {
		return types.TrustedState[H, C]{}, lerrors.ErrCommitNotFound()
	}

	var psh persistedSignedHeader[H, C]
	if err := s.cdc.UnmarshalBinaryLengthPrefixed(shBz, &psh); err != nil {
		return types.TrustedState[H, C]{}, lerrors.ErrParse(err.Error())
	}

	vsBz, err := s.db.Get(validatorSetKey(s.chainID, height+1))
	if err != nil {
		return types.TrustedState[H, C]{}, lerrors.ErrIO(err)
	}
	if vsBz == nil {
		return types.TrustedState[H, C]{}, lerrors.ErrValidatorSetNotFound(height + 1)
	}
	var vals V
	if err := s.cdc.UnmarshalBinaryLengthPrefixed(vsBz, &vals); err != nil {
		return types.TrustedState[H, C]{}, lerrors.ErrParse(err.Error())
	}

	sh := types.NewSignedHeader[H, C](psh.Header, psh.Commit)
	return types.NewTrustedState[H, C](sh, vals), nil
}

// pruneOlderThanLocked deletes every signed-header/validator-set pair
// except the retain most recent heights. Adapted from the teacher's
// DB.deleteAfterN, renamed to describe what it keeps rather than what it
// deletes. Caller must hold s.mu for writing.
func (s *DBStore[H, C, V]) pruneOlderThanLocked(retain int) {
	s.logger.Debug("DBStore.pruneOlderThanLocked()...", "retain", retain)

	itr, err := s.db.ReverseIterator(
		signedHeaderKey(s.chainID, 1),
		append(signedHeaderKey(s.chainID, 1<<63-1), byte(0x00)),
	)
	if err != nil {
		s.logger.Error("DBStore.pruneOlderThanLocked() got error", "err", err)
		return
	}
	defer itr.Close()

	seen, pruned := 0, 0
	for ; itr.Valid(); itr.Next() {
		_, height, part, ok := parseKey(itr.Key())
		if !ok || part != "sh" {
			continue
		}
		seen++
		if seen > retain {
			s.db.Delete(signedHeaderKey(s.chainID, height))
			s.db.Delete(validatorSetKey(s.chainID, height+1))
			pruned++
		}
	}

	s.logger.Debug("DBStore.pruneOlderThanLocked() pruned heights", "pruned", pruned, "seen", seen)
}

//----------------------------------------
// key encoding, unchanged from the teacher's scheme

func signedHeaderKey(chainID string, height uint64) []byte {
	return []byte(fmt.Sprintf("%s/%020d/sh", chainID, height))
}

func validatorSetKey(chainID string, height uint64) []byte {
	return []byte(fmt.Sprintf("%s/%020d/vs", chainID, height))
}

var keyPattern = regexp.MustCompile(`^([^/]+)/([0-9]*)/(.*)$`)

func parseKey(key []byte) (chainID string, height uint64, part string, ok bool) {
	submatch := keyPattern.FindSubmatch(key)
	if submatch == nil {
		return "", 0, "", false
	}
	chainID = string(submatch[1])
	heightInt, err := strconv.ParseUint(string(submatch[2]), 10, 64)
	if err != nil {
		return "", 0, "", false
	}
	return chainID, heightInt, string(submatch[3]), true
}
