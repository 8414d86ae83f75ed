package tmlight

import (
	"context"
	"fmt"

	log "github.com/tendermint/tendermint/libs/log"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
	tmtypes "github.com/tendermint/tendermint/types"

	lerrors "github.com/bftlite/lightclient/lite/errors"
	"github.com/bftlite/lightclient/lite/types"
)

// SignStatusClient is the subset of a Tendermint RPC client RPCRequester
// needs, named after the teacher's HTTP provider's own SignStatusClient.
type SignStatusClient interface {
	rpcclient.SignClient
	rpcclient.StatusClient
}

// RPCRequester implements types.Requester by querying a Tendermint full
// node's RPC endpoints, adapted from the teacher's HTTP provider
// (providers/http.go): same Commit/Validators calls and chain-ID guard,
// generalized to take a context and to paginate validator results.
type RPCRequester struct {
	chainID string
	client  SignStatusClient

	logger log.Logger
}

// NewRPCRequester builds an RPCRequester for chainID talking to client.
func NewRPCRequester(chainID string, client SignStatusClient) *RPCRequester {
	return &RPCRequester{chainID: chainID, client: client, logger: log.NewNopLogger()}
}

// SetLogger sets the logger.
func (r *RPCRequester) SetLogger(logger log.Logger) {
	r.logger = logger
}

func (r *RPCRequester) SignedHeader(ctx context.Context, h types.Height) (types.SignedHeader[Header, Commit], error) {
	r.logger.Info("RPCRequester.SignedHeader()...", "height", h)

	var heightPtr *int64
	if h > 0 {
		height := int64(h)
		heightPtr = &height
	}

	result, err := r.client.Commit(ctx, heightPtr)
	if err != nil {
		r.logger.Error("RPCRequester.SignedHeader() got error", "height", h, "err", err)
		return types.SignedHeader[Header, Commit]{}, lerrors.ErrRequestFailed(err)
	}
	if result.Header.ChainID != r.chainID {
		err := lerrors.ErrImplementationSpecific(
			fmt.Sprintf("expected chain %q, got %q", r.chainID, result.Header.ChainID))
		r.logger.Error("RPCRequester.SignedHeader() got error", "height", h, "err", err)
		return types.SignedHeader[Header, Commit]{}, err
	}

	header := NewHeader(result.Header)
	commit := NewCommit(r.chainID, result.Commit)
	return types.NewSignedHeader[Header, Commit](header, commit), nil
}

func (r *RPCRequester) ValidatorSet(ctx context.Context, h types.Height) (types.ValidatorSet, error) {
	r.logger.Info("RPCRequester.ValidatorSet()...", "height", h)

	height := int64(h)
	if height < 1 {
		return nil, lerrors.ErrImplementationSpecific(fmt.Sprintf("validator set height must be >= 1, got %d", height))
	}

	const perPage = 100
	var all []*tmtypes.Validator
	for page := 1; ; page++ {
		p, pp := page, perPage
		res, err := r.client.Validators(ctx, &height, &p, &pp)
		if err != nil {
			r.logger.Error("RPCRequester.ValidatorSet() got error", "height", h, "err", err)
			return nil, lerrors.ErrRequestFailed(err)
		}
		all = append(all, res.Validators...)
		if len(all) >= res.Total {
			break
		}
	}

	return NewValidatorSet(tmtypes.NewValidatorSet(all)), nil
}
