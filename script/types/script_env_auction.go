// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package types

import (
	"fmt"
	"math/big"

	"github.com/meterio/dexpet/dexpet"
)

// ==================== account operation ===========================
// Escrow moves through exactly two paths: a bid (or refund) during
// OP_BID and the payout during OP_ENDAUCTION. Nothing else debits the
// auction module account.

// from bidder ==> AuctionModuleAddr
func (env *ScriptEnv) TransferBidToAuction(bidder dexpet.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	state := env.GetState()

	balance := state.GetBalance(bidder)
	if balance.Cmp(amount) < 0 {
		return fmt.Errorf("not enough balance, bidder:%v balance:%v amount:%v", bidder, balance, amount)
	}

	state.SubBalance(bidder, amount)
	state.AddBalance(dexpet.AuctionModuleAddr, amount)
	env.AddTransfer(bidder, dexpet.AuctionModuleAddr, amount, dexpet.DPT)
	return nil
}

// from AuctionModuleAddr ==> displaced bidder
func (env *ScriptEnv) RefundBidder(bidder dexpet.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	state := env.GetState()

	escrow := state.GetBalance(dexpet.AuctionModuleAddr)
	if escrow.Cmp(amount) < 0 {
		return fmt.Errorf("not enough balance in auction module, escrow:%v amount:%v", escrow, amount)
	}

	state.SubBalance(dexpet.AuctionModuleAddr, amount)
	state.AddBalance(bidder, amount)
	env.AddTransfer(dexpet.AuctionModuleAddr, bidder, amount, dexpet.DPT)
	return nil
}

// from AuctionModuleAddr ==> administrator
func (env *ScriptEnv) PayoutToAdmin(admin dexpet.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	state := env.GetState()

	escrow := state.GetBalance(dexpet.AuctionModuleAddr)
	if escrow.Cmp(amount) < 0 {
		return fmt.Errorf("not enough balance in auction module, escrow:%v amount:%v", escrow, amount)
	}

	state.SubBalance(dexpet.AuctionModuleAddr, amount)
	state.AddBalance(admin, amount)
	env.AddTransfer(dexpet.AuctionModuleAddr, admin, amount, dexpet.DPT)
	return nil
}
