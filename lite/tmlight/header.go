package tmlight

import (
	"time"

	tmtypes "github.com/tendermint/tendermint/types"

	"github.com/bftlite/lightclient/lite/hash"
	"github.com/bftlite/lightclient/lite/types"
)

// Header adapts *tendermint/types.Header to this module's types.Header.
type Header struct {
	h *tmtypes.Header
}

// NewHeader wraps h without inspecting it. The hash accessors
// (ValidatorsHash, NextValidatorsHash, Hash) panic if the corresponding
// hash of h is not 32 bytes, which would indicate a malformed header from a misbehaving or non-Tendermint
// peer — callers are expected to have already run h.ValidateBasic().
func NewHeader(h *tmtypes.Header) Header {
	return Header{h: h}
}

func (h Header) Height() types.Height         { return types.Height(h.h.Height) }
func (h Header) BFTTime() time.Time           { return h.h.Time }
func (h Header) ValidatorsHash() hash.Hash     { return mustHash(h.h.ValidatorsHash) }
func (h Header) NextValidatorsHash() hash.Hash { return mustHash(h.h.NextValidatorsHash) }
func (h Header) Hash() hash.Hash               { return mustHash(h.h.Hash()) }

// Unwrap returns the underlying tendermint header, for callers that need
// fields the verifier core does not (e.g. for display or re-broadcast).
func (h Header) Unwrap() *tmtypes.Header { return h.h }
