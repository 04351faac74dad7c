// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"

	setypes "github.com/meterio/dexpet/script/types"
)

// HandleBid accepts a bid against an open auction. The attached amount
// moves into escrow and the displaced bidder, if any, is refunded in the
// same call. Any failure aborts the call; the engine reverts the state so
// no partial bid can ever be observed.
func (a *Auction) HandleBid(env *setypes.ScriptEnv, ab *AuctionBody) (err error) {
	var ret []byte
	defer func() {
		if err != nil {
			ret = []byte(err.Error())
		}
		env.SetReturnData(ret)
	}()
	state := env.GetState()
	auctionList := a.GetAuctionList(state)

	pa := auctionList.Get(ab.PetID)
	if pa == nil || !pa.IsOpen() {
		a.logger.Info("bid rejected, no active auction", "petID", ab.PetID)
		err = errAuctionNotActive
		return
	}

	now := env.GetBlockCtx().Time
	if pa.HasExpired(now) {
		a.logger.Info("bid rejected, auction has ended", "petID", ab.PetID, "endTime", pa.EndTime, "now", now)
		err = errAuctionHasEnded
		return
	}

	amount := ab.Amount
	if amount == nil {
		amount = big.NewInt(0)
	}
	// the first bid must exceed the starting price, every later one the
	// current highest bid; strictly, no minimum increment beyond that
	floor := pa.HighestBid
	if pa.HighestBidder.IsZero() && pa.StartingPrice.Cmp(floor) > 0 {
		floor = pa.StartingPrice
	}
	if amount.Cmp(floor) <= 0 {
		a.logger.Info("bid rejected, too low", "petID", ab.PetID, "amount", amount, "floor", floor)
		err = errBidTooLow
		return
	}

	if state.GetBalance(ab.Bidder).Cmp(amount) < 0 {
		a.logger.Info("bid rejected, not enough balance", "bidder", ab.Bidder, "amount", amount)
		err = errNotEnoughBalance
		return
	}

	// refund the displaced bidder before recording the new bid
	if !pa.HighestBidder.IsZero() {
		if err = env.RefundBidder(pa.HighestBidder, pa.HighestBid); err != nil {
			a.logger.Error("refund of displaced bidder failed", "bidder", pa.HighestBidder, "amount", pa.HighestBid, "err", err)
			return
		}
	}

	if err = env.TransferBidToAuction(ab.Bidder, amount); err != nil {
		a.logger.Error("bid transfer failed", "bidder", ab.Bidder, "amount", amount, "err", err)
		err = errNotEnoughBalance
		return
	}

	pa.HighestBid = amount
	pa.HighestBidder = ab.Bidder
	pa.BidCount++
	a.SetAuctionList(auctionList, state)
	a.SetTotalBids(a.GetTotalBids(state)+1, state)

	emitBidPlaced(env, ab.PetID, ab.Bidder, amount)
	bidsPlacedCounter.Inc()
	a.logger.Info("bid placed", "petID", ab.PetID, "bidder", ab.Bidder, "amount", amount)
	return
}
