// Package tmlight binds the verifier core's generic Header/Commit/
// ValidatorSet contracts to a real chain: github.com/tendermint/tendermint's
// own wire types. It is the concrete collaborator the core's doc comments
// describe as "supplied by the caller" — crypto, RPC transport, and wire
// encoding all live here, never in package verifier.
package tmlight

import (
	tmbytes "github.com/tendermint/tendermint/libs/bytes"

	"github.com/bftlite/lightclient/lite/errors"
	"github.com/bftlite/lightclient/lite/hash"
)

// toHash converts a Tendermint hex-encoded hash into this module's Hash,
// failing closed (ErrLength) rather than truncating or padding on a
// length mismatch.
func toHash(b tmbytes.HexBytes) (hash.Hash, error) {
	h, err := hash.New(hash.SHA256, b)
	if err != nil {
		return hash.Hash{}, errors.ErrLength("tendermint hash: " + err.Error())
	}
	return h, nil
}

func mustHash(b tmbytes.HexBytes) hash.Hash {
	h, err := toHash(b)
	if err != nil {
		panic(err)
	}
	return h
}
