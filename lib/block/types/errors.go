package types

import (
	"errors"
)

// Kind classifies failures so that callers can decide on enrichment or retries without inspecting backend errors.
type Kind uint8

// Failure kinds.
const (
	KindUnknown Kind = iota
	KindUnknownCoin
	KindNotFound
	KindInvalidTransaction
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindUnknownCoin:
		return "unknown_coin"
	case KindNotFound:
		return "not_found"
	case KindInvalidTransaction:
		return "invalid_transaction"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// Sentinel errors, one per kind. A *Error of a kind matches its sentinel with errors.Is.
var (
	ErrUnknownCoin        = errors.New("unknown coin")
	ErrNotFound           = errors.New("not found")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrNetwork            = errors.New("network error")
)

// Errors returned by backends and decoders.
var (
	ErrUnknownNetwork = errors.New("network not available")
	ErrNoBlock        = errors.New("block not available yet")
	ErrNoTrx          = errors.New("transaction not found")
	ErrNoToken        = errors.New("token not found")
	ErrUnsupported    = errors.New("operation not supported by this chain")
	ErrBlockDecode    = errors.New("unable to decode block data")
	ErrNoBlockNumber  = errors.New("block data does not contain a block number")
	ErrNoTS           = errors.New("block data does not contain a timestamp")
	ErrNoHash         = errors.New("block data does not contain a hash")
	ErrNoTrxHash      = errors.New("malformed tx data in block, field 'hash' missing")
	ErrNoTrxInput     = errors.New("malformed tx data in block, field 'input' missing")
	ErrNoTrxValue     = errors.New("malformed tx data in block, field 'value' missing")
	ErrNoTrxFrom      = errors.New("malformed tx data in block, field 'from' missing")
	ErrTrxWrongLen    = errors.New("malformed tx data in block, field 'input' has wrong length for ERC20 transfer")
)

// Error is a classified failure. Its message is the message of the wrapped error so that the text a node returned
// reaches the client unchanged.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}

	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnknownCoin:
		return e.Kind == KindUnknownCoin
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrInvalidTransaction:
		return e.Kind == KindInvalidTransaction
	case ErrNetwork:
		return e.Kind == KindNetwork
	}

	return false
}

// UnknownCoin classifies err as KindUnknownCoin.
func UnknownCoin(err error) error { return classify(KindUnknownCoin, err) }

// NotFound classifies err as KindNotFound.
func NotFound(err error) error { return classify(KindNotFound, err) }

// InvalidTransaction classifies err as KindInvalidTransaction.
func InvalidTransaction(err error) error { return classify(KindInvalidTransaction, err) }

// Network classifies err as KindNetwork.
func Network(err error) error { return classify(KindNetwork, err) }

func classify(k Kind, err error) error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) && e.Kind == k {
		return err
	}

	return &Error{Kind: k, Err: err}
}

// KindOf returns the kind of the outermost classified error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindUnknown
}
