// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/meterio/dexpet/dexpet"
	"github.com/meterio/dexpet/script/auction"
)

type AuctionSummary struct {
	AuctionID     dexpet.Bytes32        `json:"auctionID"`
	PetID         uint64                `json:"petID"`
	StartingPrice *math.HexOrDecimal256 `json:"startingPrice"`
	CreateTime    uint64                `json:"createTime"`
	EndTime       uint64                `json:"endTime"`
	HighestBid    *math.HexOrDecimal256 `json:"highestBid"`
	HighestBidder dexpet.Address        `json:"highestBidder"`
	BidCount      uint32                `json:"bidCount"`
	Sold          bool                  `json:"sold"`
}

func convertSummary(s *auction.AuctionSummary) *AuctionSummary {
	return &AuctionSummary{
		AuctionID:     s.AuctionID,
		PetID:         s.PetID,
		StartingPrice: (*math.HexOrDecimal256)(s.StartingPrice),
		CreateTime:    s.CreateTime,
		EndTime:       s.EndTime,
		HighestBid:    (*math.HexOrDecimal256)(s.HighestBid),
		HighestBidder: s.HighestBidder,
		BidCount:      s.BidCount,
		Sold:          s.Sold,
	}
}

func convertSummaryList(list []auction.AuctionSummary) []*AuctionSummary {
	summaries := make([]*AuctionSummary, 0, len(list))
	for i := range list {
		summaries = append(summaries, convertSummary(&list[i]))
	}
	return summaries
}

type TotalBids struct {
	TotalBids uint64 `json:"totalBids"`
}
