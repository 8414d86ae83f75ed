/*
Package lite is the root of a Tendermint-family light client's
verification core.

The concept of light clients was introduced in the Bitcoin white paper. It
describes a watcher of a distributed consensus process that only validates
the consensus algorithm and not the state machine transactions within.

Tendermint light clients allow bandwidth- and compute-constrained devices —
smartphones, low-power embedded chips, or other blockchains — to efficiently
verify the consensus of a Tendermint blockchain without downloading or
re-executing every intervening block.

Light clients (and full nodes) operating under Proof of Stake need a trusted
block height from a trusted source no older than one unbonding window
(minus a configurable evidence-submission synchrony bound). This is weak
subjectivity: buying up voting keys that are no longer bonded is costless
for an attacker, so trust cannot extend further back than the unbonding
period allows slashing to punish.

# Package layout

  - package types — the capability contracts (Header, Commit, ValidatorSet,
    Requester) and immutable value types (SignedHeader, TrustedState) the
    rest of this module is built from.
  - package hash — a fixed-length, constant-time-comparable hash value.
  - package threshold — trust-threshold fraction arithmetic.
  - package errors — the error Kind taxonomy and its Err*/Is* constructors.
  - package verifier — the verification core itself: the single-step and
    skipping/bisection verifiers. This package is pure, synchronous, and
    makes no network calls, reads no clock, and persists nothing.
  - package store — the reference TrustedState persistence layer
    (in-memory, tm-db-backed, and multi-store fallback), used by callers
    to round-trip state across calls into package verifier.
  - package tmlight — the concrete binding of package types' generic
    contracts to github.com/tendermint/tendermint's own wire types and RPC
    client, including the one place this module does cryptographic
    signature verification.

A typical caller wires these together as:

	req := tmlight.NewRPCRequester(chainID, rpcClient)
	trustedStore := store.NewDBStore[tmlight.Header, tmlight.Commit, tmlight.ValidatorSet](chainID, db)
	trusted, _ := trustedStore.LatestTrustedState()
	newStates, err := verifier.VerifyBisection(ctx, trusted, targetHeight, threshold.DefaultFraction, trustingPeriod, time.Now(), req)
	for _, ts := range newStates {
		_ = trustedStore.SaveTrustedState(ts)
	}

How validator-set changes are tracked

Unless a client blindly trusts the node it talks to, every response must be
traced back to a hash in a block header, and the commit signatures on that
header must be checked against the proper validator set. If the validator
set is static, the client stores it once and checks against it forever. If
it is dynamic, updating from a trusted height H to a candidate height H' is
done either adjacently — the new header's validator set hash exactly
matches the hash the trusted header committed to as its next validator set
— or, for H' far beyond H, by skipping: checking that enough of the old,
trusted voting power also vouches for the new commit. When a single skip
cannot bridge the gap, bisection repeatedly picks a midpoint height and
recurses until every step is either adjacent or a successful skip.

Since no server is ever trusted in this protocol — only signatures
themselves — it does not matter whether a candidate header comes from a
malicious node or a malicious user. It is accepted or rejected solely on
the trusted validator set and the cryptographic proofs attached to it, which
makes correctly establishing the very first trusted height and hash (weak
subjectivity) the root of all trust this package provides.
*/
package lite
