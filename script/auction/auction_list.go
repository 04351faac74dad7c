// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/meterio/dexpet/dexpet"
)

// PetAuction one auction attached to a pet. At most one auction record per
// pet is kept here (the open one, or the most recently closed one until the
// pet gets relisted); the full history lives in the summary list.
type PetAuction struct {
	AuctionID     dexpet.Bytes32
	PetID         uint64
	StartingPrice *big.Int
	CreateTime    uint64
	EndTime       uint64

	// changed fields after auction start
	HighestBid    *big.Int
	HighestBidder dexpet.Address
	BidCount      uint32
	Status        uint32
}

// ID computes the auction id over the immutable fields.
func (pa *PetAuction) ID() (hash dexpet.Bytes32) {
	hw := dexpet.NewBlake2b()
	err := rlp.Encode(hw, []interface{}{
		pa.PetID,
		pa.StartingPrice,
		pa.CreateTime,
		pa.EndTime,
	})
	if err != nil {
		return dexpet.Bytes32{}
	}
	hw.Sum(hash[:0])
	return
}

func (pa *PetAuction) IsOpen() bool {
	return pa.Status == AUCTION_OPEN
}

// HasExpired lazy expiry: the bidding window is closed once now reaches
// EndTime, whether or not settlement has flipped the status yet.
func (pa *PetAuction) HasExpired(now uint64) bool {
	return now >= pa.EndTime
}

func (pa *PetAuction) ToString() string {
	return fmt.Sprintf("PetAuction(id=%v, petID=%v, startingPrice=%v, endTime=%v, highestBid=%v, highestBidder=%v, bidCount=%v, status=%v, createTime=%v)",
		pa.AuctionID.AbbrevString(), pa.PetID, pa.StartingPrice.String(), pa.EndTime, pa.HighestBid.String(),
		pa.HighestBidder.String(), pa.BidCount, pa.Status, fmt.Sprintln(time.Unix(int64(pa.CreateTime), 0)))
}

// AuctionList auctions sorted by pet id.
type AuctionList struct {
	Auctions []*PetAuction
}

func NewAuctionList(auctions []*PetAuction) *AuctionList {
	if auctions == nil {
		auctions = make([]*PetAuction, 0)
	}
	return &AuctionList{Auctions: auctions}
}

func (al *AuctionList) indexOf(petID uint64) (int, int) {
	// return values:
	//     first parameter: if found, the index of the item
	//     second parameter: if not found, the correct insert index of the item
	if len(al.Auctions) <= 0 {
		return -1, 0
	}
	l := 0
	r := len(al.Auctions)
	for l < r {
		m := (l + r) / 2
		if petID < al.Auctions[m].PetID {
			r = m
		} else if petID > al.Auctions[m].PetID {
			l = m + 1
		} else {
			return m, -1
		}
	}
	return -1, r
}

func (al *AuctionList) Get(petID uint64) *PetAuction {
	index, _ := al.indexOf(petID)
	if index < 0 {
		return nil
	}
	return al.Auctions[index]
}

func (al *AuctionList) Exist(petID uint64) bool {
	index, _ := al.indexOf(petID)
	return index >= 0
}

// Add inserts the auction, replacing any previous record for the same pet.
func (al *AuctionList) Add(pa *PetAuction) error {
	index, insertIndex := al.indexOf(pa.PetID)
	if index < 0 {
		if len(al.Auctions) == 0 {
			al.Auctions = append(al.Auctions, pa)
			return nil
		}
		newList := make([]*PetAuction, insertIndex)
		copy(newList, al.Auctions[:insertIndex])
		newList = append(newList, pa)
		newList = append(newList, al.Auctions[insertIndex:]...)
		al.Auctions = newList
	} else {
		al.Auctions[index] = pa
	}
	return nil
}

func (al *AuctionList) Remove(petID uint64) error {
	index, _ := al.indexOf(petID)
	if index >= 0 {
		al.Auctions = append(al.Auctions[:index], al.Auctions[index+1:]...)
	}
	return nil
}

func (al *AuctionList) Count() int {
	return len(al.Auctions)
}

func (al *AuctionList) ToString() string {
	if al == nil || len(al.Auctions) == 0 {
		return "AuctionList (size:0)"
	}
	s := []string{fmt.Sprintf("AuctionList (size:%v) {", len(al.Auctions))}
	for i, a := range al.Auctions {
		s = append(s, fmt.Sprintf("  %d.%v", i, a.ToString()))
	}
	s = append(s, "}")
	return strings.Join(s, "\n")
}

func (al *AuctionList) ToList() []PetAuction {
	result := make([]PetAuction, 0)
	for _, v := range al.Auctions {
		result = append(result, *v)
	}
	return result
}
