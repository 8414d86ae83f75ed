// Package types declares the capability contracts the verification core is
// polymorphic over (Header, Commit, ValidatorSet, Requester) and the
// immutable value types (SignedHeader, TrustedState) built from them.
//
// The core never constructs a Header, Commit, or ValidatorSet itself — it
// only calls the methods below and compares the Hash values they return.
// Picking generic type parameters over an interface{}-based registry means
// a verifier instantiated for one chain's concrete types compiles to
// straight-line code with no dynamic dispatch per call.
package types

import (
	"context"
	"time"

	"github.com/bftlite/lightclient/lite/hash"
)

// Height is a block height. All arithmetic performed on it by this module
// is overflow-checked.
type Height uint64

// Header is the subset of a block header the verifier needs. Callers
// provide a concrete implementation bound to their chain's wire format;
// the verifier treats it as opaque and never mutates it.
type Header interface {
	// Height is the header's height.
	Height() Height
	// BFTTime is the header's BFT time, as agreed by consensus, not wall
	// clock time of observation.
	BFTTime() time.Time
	// ValidatorsHash is the hash of the validator set that signed this
	// header.
	ValidatorsHash() hash.Hash
	// NextValidatorsHash is the hash of the validator set expected to sign
	// the next header.
	NextValidatorsHash() hash.Hash
	// Hash is the hash of the header itself (i.e. the block hash).
	Hash() hash.Hash
}

// ValidatorSet is the opaque set of validators eligible to sign at a given
// height, together with their total voting power. The core never
// enumerates validators; it only compares hashes and totals.
type ValidatorSet interface {
	Hash() hash.Hash
	TotalPower() uint64
}

// Commit aggregates the signatures attesting that a header was agreed upon.
type Commit interface {
	// HeaderHash is the hash of the header this commit is for.
	HeaderHash() hash.Hash

	// VotingPowerIn returns the total voting power, within vals, of
	// validators that legitimately signed this commit. Signature
	// verification happens here, inside the collaborator.
	//
	// VotingPowerIn cannot detect signatures from validators outside vals:
	// it can only tell you how much of vals' power is accounted for. This
	// is an accepted limitation for the trusting-level (skipping) check;
	// for the full (+2/3) check it is moot because the commit's signers
	// coincide with the validator set being checked by definition.
	VotingPowerIn(vals ValidatorSet) (uint64, error)

	// Validate performs structural checks against vals (e.g. the number
	// of included signatures matches the number of validators).
	Validate(vals ValidatorSet) error
}

// SignedHeader immutably pairs a Header with the Commit that attests to it.
type SignedHeader[H Header, C Commit] struct {
	header H
	commit C
}

// NewSignedHeader bundles header and commit together.
func NewSignedHeader[H Header, C Commit](header H, commit C) SignedHeader[H, C] {
	return SignedHeader[H, C]{header: header, commit: commit}
}

func (sh SignedHeader[H, C]) Header() H { return sh.header }
func (sh SignedHeader[H, C]) Commit() C { return sh.commit }

// TrustedState immutably pairs the last trusted SignedHeader (at height
// h-1) with the validator set expected to sign the next header (at height
// h). It is the atomic unit of trust the verifier consumes and produces:
// constructed only once all of the verifier's safety predicates have
// passed, and never mutated afterward.
type TrustedState[H Header, C Commit] struct {
	lastHeader SignedHeader[H, C]
	validators ValidatorSet
}

// NewTrustedState builds a TrustedState. Callers outside this module's
// verifier package should treat this as a deserialization helper only —
// the verifier is the sole source of new, safety-checked trusted states
// during normal operation.
func NewTrustedState[H Header, C Commit](lastHeader SignedHeader[H, C], validators ValidatorSet) TrustedState[H, C] {
	return TrustedState[H, C]{lastHeader: lastHeader, validators: validators}
}

func (ts TrustedState[H, C]) LastHeader() SignedHeader[H, C] { return ts.lastHeader }
func (ts TrustedState[H, C]) Validators() ValidatorSet       { return ts.validators }

// Requester is an injected pull capability for fetching headers and
// validator sets by height, e.g. by talking to a full node's RPC
// interface. The core makes no assumption about caching, retries, or
// transport: all failure must be reported as ErrRequestFailed or
// ErrImplementationSpecific (see package errors).
type Requester[H Header, C Commit] interface {
	SignedHeader(ctx context.Context, h Height) (SignedHeader[H, C], error)
	ValidatorSet(ctx context.Context, h Height) (ValidatorSet, error)
}
