package ethereum

import (
	"context"
	"fmt"
	"strings"

	"github.com/tarancss/chaingate/lib/block/node"
	"github.com/tarancss/chaingate/lib/block/types"
)

// GetToken returns the name, symbol and decimals of the ERC20 token configured for the network. token is the contract
// address, or the token symbol or name.
func (e *Ethereum) GetToken(ctx context.Context, netName, token string) (*types.Token, error) {
	n, err := e.network(netName)
	if err != nil {
		return nil, err
	}

	for _, addr := range n.tokens {
		if strings.EqualFold(addr, token) {
			return e.token(ctx, n, addr)
		}
	}

	all, err := e.GetAll(ctx, netName)
	if err != nil {
		return nil, err
	}

	for i := range all {
		if strings.EqualFold(all[i].Symbol, token) || strings.EqualFold(all[i].Name, token) {
			return &all[i], nil
		}
	}

	return nil, types.NotFound(fmt.Errorf("%w: %s", types.ErrNoToken, token))
}

// GetAll returns the ERC20 tokens configured for the network.
func (e *Ethereum) GetAll(ctx context.Context, netName string) ([]types.Token, error) {
	n, err := e.network(netName)
	if err != nil {
		return nil, err
	}

	toks := make([]types.Token, 0, len(n.tokens))

	for _, addr := range n.tokens {
		t, err := e.token(ctx, n, addr)
		if err != nil {
			return nil, err
		}

		toks = append(toks, *t)
	}

	return toks, nil
}

func (e *Ethereum) token(ctx context.Context, n *network, addr string) (*types.Token, error) {
	return node.Read(ctx, n.node, "token", func(context.Context) (*types.Token, error) {
		var err error

		t := &types.Token{ID: addr}

		if t.Name, err = n.cli.GetTokenName(addr); err != nil {
			return nil, tokenErr(addr, err)
		}

		if t.Symbol, err = n.cli.GetTokenSymbol(addr); err != nil {
			return nil, tokenErr(addr, err)
		}

		dec, err := n.cli.GetTokenDecimals(addr)
		if err != nil {
			return nil, tokenErr(addr, err)
		}

		t.Decimals = uint8(dec) //nolint:gosec // ERC20 decimals is a uint8

		return t, nil
	})
}

// tokenErr reports a contract that does not answer the ERC20 calls as not found.
func tokenErr(addr string, err error) error {
	if err = classify(err, false); types.KindOf(err) != types.KindUnknown {
		return err
	}

	return types.NotFound(fmt.Errorf("%w %s: %w", types.ErrNoToken, addr, err))
}
