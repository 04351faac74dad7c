// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"fmt"

	"github.com/meterio/dexpet/dexpet"
)

// BlockContext call-time context shared by every operation executed in
// the same serialized slot.
type BlockContext struct {
	Number uint64 // call sequence number assigned by the node
	Time   uint64 // wall clock captured when the call was admitted
}

// TransactionContext transaction context.
type TransactionContext struct {
	ID     dexpet.Bytes32
	Origin dexpet.Address // tamper-proof caller identity
	Nonce  uint64
}

func (ctx *TransactionContext) String() string {
	return fmt.Sprintf("txCtx{ID:%s Origin:%s Nonce:%d}", ctx.ID.String(), ctx.Origin.String(), ctx.Nonce)
}
