// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transfers

import (
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/meterio/dexpet/dexpet"
	"github.com/meterio/dexpet/logdb"
)

// LogMeta pins a log entry to the call that produced it.
type LogMeta struct {
	Seq      uint64         `json:"seq"`
	Time     uint64         `json:"time"`
	TxID     dexpet.Bytes32 `json:"txID"`
	TxOrigin dexpet.Address `json:"txOrigin"`
}

type FilteredTransfer struct {
	Sender    dexpet.Address        `json:"sender"`
	Recipient dexpet.Address        `json:"recipient"`
	Amount    *math.HexOrDecimal256 `json:"amount"`
	Token     uint32                `json:"token"`
	Meta      LogMeta               `json:"meta"`
}

func convertTransfer(transfer *logdb.Transfer) *FilteredTransfer {
	return &FilteredTransfer{
		Sender:    transfer.Sender,
		Recipient: transfer.Recipient,
		Amount:    (*math.HexOrDecimal256)(transfer.Amount),
		Token:     transfer.Token,
		Meta: LogMeta{
			Seq:      transfer.Seq,
			Time:     transfer.Time,
			TxID:     transfer.TxID,
			TxOrigin: transfer.TxOrigin,
		},
	}
}

type TransferFilter struct {
	TxID        *dexpet.Bytes32           `json:"txID"`
	CriteriaSet []*logdb.TransferCriteria `json:"criteriaSet"`
	Range       *logdb.Range              `json:"range"`
	Options     *logdb.Options            `json:"options"`
	Order       logdb.Order               `json:"order"`
}

func convertTransferFilter(filter *TransferFilter) *logdb.TransferFilter {
	return &logdb.TransferFilter{
		TxID:        filter.TxID,
		CriteriaSet: filter.CriteriaSet,
		Range:       filter.Range,
		Options:     filter.Options,
		Order:       filter.Order,
	}
}
