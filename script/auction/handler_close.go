// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"

	"github.com/meterio/dexpet/dexpet"
	setypes "github.com/meterio/dexpet/script/types"
)

// EndAuction settles an expired auction: flips it to closed, pays the
// winning bid to the administrator and marks the pet sold. With no bids
// the pet stays unsold and nothing is transferred. Closing twice fails,
// so funds can never be paid out twice.
func (a *Auction) EndAuction(env *setypes.ScriptEnv, ab *AuctionBody) (err error) {
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
		a.logger.Info("end auction failed, not active", "petID", ab.PetID)
		err = errAuctionNotActive
		return
	}

	now := env.GetBlockCtx().Time
	if !pa.HasExpired(now) {
		a.logger.Info("end auction failed, still active", "petID", ab.PetID, "endTime", pa.EndTime, "now", now)
		err = errAuctionIsActive
		return
	}

	pa.Status = AUCTION_CLOSED

	winner := pa.HighestBidder
	amount := pa.HighestBid
	sold := !winner.IsZero()
	if sold {
		admin := GetAdminAddress(state)
		if err = env.PayoutToAdmin(admin, amount); err != nil {
			a.logger.Error("payout to admin failed", "amount", amount, "err", err)
			return
		}
		petList := a.GetPetList(state)
		if pet := petList.Get(ab.PetID); pet != nil {
			pet.Sold = true
			a.SetPetList(petList, state)
		}
	} else {
		winner = dexpet.Address{}
		amount = big.NewInt(0)
	}

	a.SetAuctionList(auctionList, state)

	summary := &AuctionSummary{
		AuctionID:     pa.AuctionID,
		PetID:         pa.PetID,
		StartingPrice: pa.StartingPrice,
		CreateTime:    pa.CreateTime,
		EndTime:       pa.EndTime,
		HighestBid:    amount,
		HighestBidder: winner,
		BidCount:      pa.BidCount,
		Sold:          sold,
	}
	summaryList := a.GetSummaryList(state)

	// limit the summary list to AUCTION_MAX_SUMMARIES
	var summaries []*AuctionSummary
	sumLen := len(summaryList.Summaries)
	if sumLen >= dexpet.AUCTION_MAX_SUMMARIES {
		summaries = append(summaryList.Summaries[sumLen-dexpet.AUCTION_MAX_SUMMARIES+1:], summary)
	} else {
		summaries = append(summaryList.Summaries, summary)
	}
	a.SetSummaryList(NewSummaryList(summaries), state)

	emitAuctionEnded(env, pa.PetID, winner, amount)
	auctionsClosedCounter.Inc()
	a.logger.Info("auction ended", "petID", pa.PetID, "winner", winner, "amount", amount, "sold", sold)
	return
}
