// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/meterio/dexpet/dexpet"
	"github.com/meterio/dexpet/node"
)

type EventMessage struct {
	Address dexpet.Address   `json:"address"`
	Topics  []dexpet.Bytes32 `json:"topics"`
	Data    string           `json:"data"`
}

type TransferMessage struct {
	Sender    dexpet.Address        `json:"sender"`
	Recipient dexpet.Address        `json:"recipient"`
	Amount    *math.HexOrDecimal256 `json:"amount"`
	Token     uint32                `json:"token"`
}

// ReceiptMessage one committed script call, pushed to subscribers.
type ReceiptMessage struct {
	Seq       uint64             `json:"seq"`
	Time      uint64             `json:"time"`
	TxID      dexpet.Bytes32     `json:"txID"`
	TxOrigin  dexpet.Address     `json:"txOrigin"`
	Output    string             `json:"output"`
	Events    []*EventMessage    `json:"events"`
	Transfers []*TransferMessage `json:"transfers"`
}

func convertReceipt(receipt *node.CallReceipt) *ReceiptMessage {
	msg := &ReceiptMessage{
		Seq:       receipt.Seq,
		Time:      receipt.Time,
		TxID:      receipt.TxID,
		TxOrigin:  receipt.TxOrigin,
		Output:    hexutil.Encode(receipt.Output),
		Events:    make([]*EventMessage, 0, len(receipt.Events)),
		Transfers: make([]*TransferMessage, 0, len(receipt.Transfers)),
	}
	for _, event := range receipt.Events {
		msg.Events = append(msg.Events, &EventMessage{
			Address: event.Address,
			Topics:  event.Topics,
			Data:    hexutil.Encode(event.Data),
		})
	}
	for _, transfer := range receipt.Transfers {
		msg.Transfers = append(msg.Transfers, &TransferMessage{
			Sender:    transfer.Sender,
			Recipient: transfer.Recipient,
			Amount:    (*math.HexOrDecimal256)(transfer.Amount),
			Token:     uint32(transfer.Token),
		})
	}
	return msg
}
