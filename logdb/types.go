// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"math/big"

	"github.com/meterio/dexpet/dexpet"
	"github.com/meterio/dexpet/tx"
	"github.com/meterio/dexpet/xenv"
)

//Event represents tx.Event that can be stored in db.
type Event struct {
	Seq      uint64
	Index    uint32
	Time     uint64
	TxID     dexpet.Bytes32
	TxOrigin dexpet.Address
	Address  dexpet.Address // always the module address
	Topics   [5]*dexpet.Bytes32
	Data     []byte
}

//newEvent converts tx.Event to Event.
func newEvent(blockCtx *xenv.BlockContext, index uint32, txID dexpet.Bytes32, txOrigin dexpet.Address, txEvent *tx.Event) *Event {
	ev := &Event{
		Seq:      blockCtx.Number,
		Index:    index,
		Time:     blockCtx.Time,
		TxID:     txID,
		TxOrigin: txOrigin,
		Address:  txEvent.Address,
		Data:     txEvent.Data,
	}
	for i := 0; i < len(txEvent.Topics) && i < len(ev.Topics); i++ {
		ev.Topics[i] = &txEvent.Topics[i]
	}
	return ev
}

//Transfer represents tx.Transfer that can be stored in db.
type Transfer struct {
	Seq       uint64
	Index     uint32
	Time      uint64
	TxID      dexpet.Bytes32
	TxOrigin  dexpet.Address
	Sender    dexpet.Address
	Recipient dexpet.Address
	Amount    *big.Int
	Token     uint32
}

//newTransfer converts tx.Transfer to Transfer.
func newTransfer(blockCtx *xenv.BlockContext, index uint32, txID dexpet.Bytes32, txOrigin dexpet.Address, transfer *tx.Transfer) *Transfer {
	return &Transfer{
		Seq:       blockCtx.Number,
		Index:     index,
		Time:      blockCtx.Time,
		TxID:      txID,
		TxOrigin:  txOrigin,
		Sender:    transfer.Sender,
		Recipient: transfer.Recipient,
		Amount:    transfer.Amount,
		Token:     uint32(transfer.Token),
	}
}

type RangeType string

const (
	Seq  RangeType = "seq"
	Time RangeType = "time"
)

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

type Range struct {
	Unit RangeType
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

type EventCriteria struct {
	Address *dexpet.Address // always the module address
	Topics  [5]*dexpet.Bytes32
}

//EventFilter filter
type EventFilter struct {
	CriteriaSet []*EventCriteria
	Range       *Range
	Options     *Options
	Order       Order //default asc
}

type TransferCriteria struct {
	TxOrigin  *dexpet.Address //who sent the call
	Sender    *dexpet.Address //who transferred tokens
	Recipient *dexpet.Address //who received tokens
}

type TransferFilter struct {
	TxID        *dexpet.Bytes32
	CriteriaSet []*TransferCriteria
	Range       *Range
	Options     *Options
	Order       Order //default asc
}
