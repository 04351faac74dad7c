// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/meterio/dexpet/dexpet"
)

// AuctionSummary the record a settlement leaves behind.
type AuctionSummary struct {
	AuctionID     dexpet.Bytes32
	PetID         uint64
	StartingPrice *big.Int
	CreateTime    uint64
	EndTime       uint64
	HighestBid    *big.Int
	HighestBidder dexpet.Address
	BidCount      uint32
	Sold          bool
}

func (s *AuctionSummary) ToString() string {
	return fmt.Sprintf("AuctionSummary(id=%v, petID=%v, startingPrice=%v, highestBid=%v, highestBidder=%v, bidCount=%v, sold=%v, endTime=%v)",
		s.AuctionID.AbbrevString(), s.PetID, s.StartingPrice.String(), s.HighestBid.String(),
		s.HighestBidder.String(), s.BidCount, s.Sold, fmt.Sprintln(time.Unix(int64(s.EndTime), 0)))
}

// SummaryList history of settled auctions, newest last, capped at
// AUCTION_MAX_SUMMARIES by the settlement handler.
type SummaryList struct {
	Summaries []*AuctionSummary
}

func NewSummaryList(summaries []*AuctionSummary) *SummaryList {
	if summaries == nil {
		summaries = make([]*AuctionSummary, 0)
	}
	return &SummaryList{Summaries: summaries}
}

func (sl *SummaryList) Get(id dexpet.Bytes32) *AuctionSummary {
	for _, s := range sl.Summaries {
		if s.AuctionID == id {
			return s
		}
	}
	return nil
}

func (sl *SummaryList) Count() int {
	return len(sl.Summaries)
}

func (sl *SummaryList) ToString() string {
	if sl == nil || len(sl.Summaries) == 0 {
		return "SummaryList (size:0)"
	}
	s := []string{fmt.Sprintf("SummaryList (size:%v) {", len(sl.Summaries))}
	for i, v := range sl.Summaries {
		s = append(s, fmt.Sprintf("  %d.%v", i, v.ToString()))
	}
	s = append(s, "}")
	return strings.Join(s, "\n")
}

func (sl *SummaryList) ToList() []AuctionSummary {
	result := make([]AuctionSummary, 0)
	for _, v := range sl.Summaries {
		result = append(result, *v)
	}
	return result
}
