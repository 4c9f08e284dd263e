package sim

import (
	"errors"
	"fmt"
	"math"
)

// MaxBlockWeight is the consensus block weight limit, in weight units.
const MaxBlockWeight = 4000000

var (
	// ErrEmptyPool is returned by Fill when there are no transactions to
	// assign to blocks.
	ErrEmptyPool = errors.New("empty pool: no transactions to fill")

	// ErrTxNotFound is returned by position lookup when the target
	// transaction is absent from the fill output. Fill never drops a
	// transaction, so this indicates a caller bug.
	ErrTxNotFound = errors.New("transaction not found in fill output")
)

// InvalidTxError reports a transaction that cannot be simulated.
type InvalidTxError struct {
	Reason string
}

func (e InvalidTxError) Error() string {
	return "invalid transaction: " + e.Reason
}

// Tx is one transaction competing for block space. Transactions are
// identified by pointer; two pool entries may be numerically equal, and the
// hypothetical transaction under evaluation remains distinguishable from
// all of them.
type Tx struct {
	VSize   int64   `json:"vsize"`   // virtual bytes
	Weight  int64   `json:"weight"`  // weight units; always VSize * 4
	Fee     int64   `json:"fee"`     // satoshis
	FeeRate float64 `json:"feerate"` // satoshis per virtual byte
}

// VirtualSize computes the segwit-discounted size from the base
// (non-witness) size and the total serialized size, rounding up as the
// protocol does.
func VirtualSize(baseSize, totalSize int64) int64 {
	return (3*baseSize + totalSize + 3) / 4
}

// NewTx builds a Tx from raw serialized sizes and an absolute fee.
func NewTx(baseSize, totalSize, fee int64) (*Tx, error) {
	switch {
	case baseSize < 0:
		return nil, InvalidTxError{Reason: fmt.Sprintf("negative base size %d", baseSize)}
	case totalSize < baseSize:
		return nil, InvalidTxError{Reason: fmt.Sprintf("total size %d < base size %d", totalSize, baseSize)}
	case fee < 0:
		return nil, InvalidTxError{Reason: fmt.Sprintf("negative fee %d", fee)}
	}
	vsize := VirtualSize(baseSize, totalSize)
	if vsize == 0 {
		return nil, InvalidTxError{Reason: "zero vsize"}
	}
	return &Tx{
		VSize:   vsize,
		Weight:  vsize * 4,
		Fee:     fee,
		FeeRate: float64(fee) / float64(vsize),
	}, nil
}

// NewTxRate builds a Tx from a virtual size and a fee rate, the form in
// which snapshot loaders and callers describe transactions. The absolute
// fee is rounded to the nearest satoshi.
func NewTxRate(vsize int64, feeRate float64) (*Tx, error) {
	if vsize <= 0 {
		return nil, InvalidTxError{Reason: fmt.Sprintf("non-positive vsize %d", vsize)}
	}
	if feeRate < 0 || math.IsNaN(feeRate) || math.IsInf(feeRate, 0) {
		return nil, InvalidTxError{Reason: fmt.Sprintf("bad fee rate %v", feeRate)}
	}
	return &Tx{
		VSize:   vsize,
		Weight:  vsize * 4,
		Fee:     int64(feeRate*float64(vsize) + 0.5),
		FeeRate: feeRate,
	}, nil
}

func (tx *Tx) String() string {
	return fmt.Sprintf("Tx{vsize: %d, feerate: %.1f}", tx.VSize, tx.FeeRate)
}
