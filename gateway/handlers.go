package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/tarancss/chaingate/lib/block"
	"github.com/tarancss/chaingate/lib/block/types"
	mtype "github.com/tarancss/chaingate/lib/msg/types"
	"github.com/tarancss/chaingate/lib/store"
)

const (
	readHeaderTimeout = 5 * time.Second
	writeGrace        = time.Second
	recordTimeout     = 5 * time.Second
	maxBody           = 4 << 20
)

// Errors returned to client requests.
var (
	ErrBadHeight  = errors.New("invalid block height")
	ErrBadDetails = errors.New("invalid includeDetails, has to be true or false")
	ErrBadRequest = errors.New("bad request")
	ErrInternal   = errors.New("internal error")
)

// request contains the route variables of an API request.
type request struct {
	r       *http.Request
	vars    map[string]string
	network string
	coin    types.Coin
}

func newRequest(r *http.Request) *request {
	v := mux.Vars(r)

	return &request{r: r, vars: v, network: v["network"], coin: types.Coin(v["coin"])}
}

func (req *request) fields(err error) []zap.Field {
	f := []zap.Field{
		zap.String("coin", req.coin.String()),
		zap.String("network", req.network),
		zap.String("uri", req.r.RequestURI),
	}

	if err != nil {
		f = append(f, zap.Stringer("kind", types.KindOf(err)), zap.Error(err))
	}

	return f
}

// handlerFunc serves an API request with the providers of the coin requested.
type handlerFunc func(ctx context.Context, p *block.Providers, req *request) (interface{}, error)

// handle returns the http handler dispatching requests to fn. It resolves the coin in the uri to its providers and
// replies the result of fn, or a 400 ErrorModel if any step fails or panics.
func (g *Gateway) handle(fn handlerFunc) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		var (
			res interface{}
			err error
		)

		req := newRequest(r)

		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("%w: %v", ErrInternal, p)
			}

			g.reply(rw, req, res, err)
		}()

		ctx, cancel := g.context(r)
		defer cancel()

		var coin types.Coin
		if coin, err = types.ParseCoin(req.vars["coin"]); err != nil {
			return
		}

		var p *block.Providers
		if p, err = g.reg.GetInstance(coin); err != nil {
			return
		}

		res, err = fn(ctx, p, req)
	}
}

func (g *Gateway) context(r *http.Request) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(r.Context())
	}

	return context.WithTimeout(r.Context(), g.timeout)
}

// reply writes res, or the ErrorModel of err if not nil, to the requester.
func (g *Gateway) reply(rw http.ResponseWriter, req *request, res interface{}, err error) {
	rw.Header().Set("Content-Type", "application/json;charset=utf8")

	if err != nil {
		res = types.ErrorModel{Message: err.Error()}

		rw.WriteHeader(http.StatusBadRequest)
		g.log.Error("request failed", req.fields(err)...)
	} else {
		rw.WriteHeader(http.StatusOK)
		g.log.Debug("request served", req.fields(nil)...)
	}

	if err = json.NewEncoder(rw).Encode(res); err != nil {
		g.log.Warn("cannot write response", req.fields(err)...)
	}
}

// coinsHandler replies the coins served by the gateway.
func (g *Gateway) coinsHandler(rw http.ResponseWriter, r *http.Request) {
	coins := g.reg.Coins()

	res := make([]string, len(coins))
	for i, c := range coins {
		res[i] = c.String()
	}

	g.reply(rw, newRequest(r), res, nil)
}

func (g *Gateway) txByID(ctx context.Context, p *block.Providers, req *request) (interface{}, error) {
	return p.Transaction.GetTransactionByID(ctx, req.network, req.vars["txId"])
}

func (g *Gateway) txsByBlock(ctx context.Context, p *block.Providers, req *request) (interface{}, error) {
	return p.Transaction.GetTransactionsByBlock(ctx, req.network, req.vars["block"])
}

// txsByHeight replies the summary of the block's transactions unless includeDetails is true.
func (g *Gateway) txsByHeight(ctx context.Context, p *block.Providers, req *request) (interface{}, error) {
	height, err := strconv.ParseUint(req.vars["height"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadHeight, req.vars["height"])
	}

	var details bool

	if v, ok := req.vars["includeDetails"]; ok {
		if details, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadDetails, v)
		}
	}

	return p.Transaction.GetTransactionsByBlockHeight(ctx, req.network, height, details)
}

// sendRaw broadcasts the raw transaction in the body. Rejections of the transaction are enriched with the chain tip
// and the payload, a successful broadcast is recorded for the tracker service.
func (g *Gateway) sendRaw(ctx context.Context, p *block.Providers, req *request) (interface{}, error) {
	var tr types.TransactionRequest

	if err := json.NewDecoder(io.LimitReader(req.r.Body, maxBody)).Decode(&tr); err != nil {
		return nil, fmt.Errorf("%w: cannot decode transaction request: %w", ErrBadRequest, err)
	}

	txID, err := p.Transaction.SendRawTransaction(ctx, req.network, tr)
	if err != nil {
		return nil, g.enrich.Enrich(ctx, req.coin, req.network, p.Block, tr.RawTx, err)
	}

	g.record(ctx, req, txID, tr.RawTx)

	return types.TransactionResponse{TxID: txID}, nil
}

func (g *Gateway) currentHeight(ctx context.Context, p *block.Providers, req *request) (interface{}, error) {
	return p.Block.GetCurrentHeight(ctx, req.network)
}

func (g *Gateway) tokens(ctx context.Context, p *block.Providers, req *request) (interface{}, error) {
	return p.Token.GetAll(ctx, req.network)
}

func (g *Gateway) token(ctx context.Context, p *block.Providers, req *request) (interface{}, error) {
	return p.Token.GetToken(ctx, req.network, req.vars["token"])
}

// record saves the submission and publishes it to the tracker. Failures are logged, the transaction has already been
// broadcast.
func (g *Gateway) record(ctx context.Context, req *request, txID, raw string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	now := time.Now().UTC()
	fields := append(req.fields(nil), zap.String("txId", txID))

	if g.db != nil {
		err := g.db.SaveSubmission(ctx, store.Submission{
			Coin:      req.coin.String(),
			Network:   req.network,
			TxID:      txID,
			RawTx:     raw,
			Status:    store.StatusPending,
			Submitted: now,
			Updated:   now,
		})
		if err != nil {
			g.log.Warn("cannot save submission", append(fields, zap.Error(err))...)
		}
	}

	if g.mb != nil {
		err := g.mb.SendSubmission(ctx, mtype.Submission{
			Coin:      req.coin.String(),
			Network:   req.network,
			TxID:      txID,
			Submitted: now,
		})
		if err != nil {
			g.log.Warn("cannot publish submission", append(fields, zap.Error(err))...)
		}
	}
}
