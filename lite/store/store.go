// Package store implements the caller-owned persistence layer for
// round-tripping TrustedState values across calls to package verifier.
//
// verifier never imports this package: the data model treats persisted
// state as the caller's responsibility, and a store is simply the
// reference way to discharge it. Every implementation here is safe for
// concurrent use by multiple goroutines, unlike package verifier, which
// assumes a single caller per call.
package store

import "github.com/bftlite/lightclient/lite/types"

// TrustedStore persists TrustedState values, keyed by the height of their
// last header. It mirrors the teacher's Provider/PersistentProvider split
// collapsed into one capability, since TrustedState is already this
// module's complete, self-contained unit of trust — there is no
// equivalent of the teacher's separate "FullCommit" fetch-then-fill step.
type TrustedStore[H types.Header, C types.Commit] interface {
	// SaveTrustedState persists ts as-is, without re-verifying it. Callers
	// are expected to only ever save states returned by package verifier.
	SaveTrustedState(ts types.TrustedState[H, C]) error

	// LatestTrustedState returns the highest-height TrustedState known to
	// the store, or ErrCommitNotFound if the store holds nothing yet.
	LatestTrustedState() (types.TrustedState[H, C], error)

	// TrustedState returns the TrustedState whose last header is at
	// height, or ErrCommitNotFound if none is stored there.
	TrustedState(height types.Height) (types.TrustedState[H, C], error)
}
