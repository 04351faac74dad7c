// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"

	setypes "github.com/meterio/dexpet/script/types"
)

// ListPetForAuction opens a time-bounded auction for a registered pet.
// A pet with an open auction cannot be listed again until settlement;
// duration and starting price are taken as supplied, unbounded.
func (a *Auction) ListPetForAuction(env *setypes.ScriptEnv, ab *AuctionBody) (err error) {
	var ret []byte
	defer func() {
		if err != nil {
			ret = []byte(err.Error())
		}
		env.SetReturnData(ret)
	}()
	state := env.GetState()
	petList := a.GetPetList(state)

	if !petList.Exist(ab.PetID) {
		a.logger.Info("list pet failed, pet not found", "petID", ab.PetID)
		err = errPetNotFound
		return
	}

	auctionList := a.GetAuctionList(state)
	if prev := auctionList.Get(ab.PetID); prev != nil && prev.IsOpen() {
		a.logger.Info("list pet failed, already in open bid", "petID", ab.PetID, "auctionID", prev.AuctionID.AbbrevString())
		err = errPetIsInOpenBid
		return
	}

	startingPrice := ab.StartingPrice
	if startingPrice == nil {
		startingPrice = big.NewInt(0)
	}
	now := env.GetBlockCtx().Time
	pa := &PetAuction{
		PetID:         ab.PetID,
		StartingPrice: startingPrice,
		CreateTime:    now,
		EndTime:       now + ab.Duration,
		HighestBid:    big.NewInt(0),
		BidCount:      0,
		Status:        AUCTION_OPEN,
	}
	pa.AuctionID = pa.ID()

	auctionList.Add(pa)
	a.SetAuctionList(auctionList, state)

	emitPetListed(env, pa)
	auctionsOpenedCounter.Inc()
	a.logger.Info("pet listed for auction", "petID", pa.PetID, "auctionID", pa.AuctionID.AbbrevString(), "startingPrice", pa.StartingPrice, "endTime", pa.EndTime)
	return
}
