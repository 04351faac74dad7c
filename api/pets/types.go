// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pets

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/meterio/dexpet/dexpet"
	"github.com/meterio/dexpet/node"
	"github.com/meterio/dexpet/script/auction"
)

type Pet struct {
	ID          uint64                `json:"id"`
	Name        string                `json:"name"`
	Breed       uint32                `json:"breed"`
	Color       string                `json:"color"`
	BasePrice   *math.HexOrDecimal256 `json:"basePrice"`
	Picture     string                `json:"picture"`
	YearOfBirth uint32                `json:"yearOfBirth"`
	Description string                `json:"description"`
	Category    uint32                `json:"category"`
	Sold        bool                  `json:"sold"`
}

func convertPet(pet *dexpet.Pet) *Pet {
	return &Pet{
		ID:          pet.ID,
		Name:        pet.Name,
		Breed:       pet.Breed,
		Color:       pet.Color,
		BasePrice:   (*math.HexOrDecimal256)(pet.BasePrice),
		Picture:     pet.Picture,
		YearOfBirth: pet.YearOfBirth,
		Description: pet.Description,
		Category:    pet.Category,
		Sold:        pet.Sold,
	}
}

type Auction struct {
	AuctionID     dexpet.Bytes32        `json:"auctionID"`
	PetID         uint64                `json:"petID"`
	StartingPrice *math.HexOrDecimal256 `json:"startingPrice"`
	CreateTime    uint64                `json:"createTime"`
	EndTime       uint64                `json:"endTime"`
	HighestBid    *math.HexOrDecimal256 `json:"highestBid"`
	HighestBidder dexpet.Address        `json:"highestBidder"`
	BidCount      uint32                `json:"bidCount"`
	Status        string                `json:"status"`
}

func convertAuction(pa *auction.PetAuction) *Auction {
	status := "closed"
	if pa.IsOpen() {
		status = "open"
	}
	return &Auction{
		AuctionID:     pa.AuctionID,
		PetID:         pa.PetID,
		StartingPrice: (*math.HexOrDecimal256)(pa.StartingPrice),
		CreateTime:    pa.CreateTime,
		EndTime:       pa.EndTime,
		HighestBid:    (*math.HexOrDecimal256)(pa.HighestBid),
		HighestBidder: pa.HighestBidder,
		BidCount:      pa.BidCount,
		Status:        status,
	}
}

type AddPetRequest struct {
	Origin      dexpet.Address        `json:"origin"`
	Nonce       uint64                `json:"nonce"`
	Name        string                `json:"name"`
	Breed       uint32                `json:"breed"`
	Color       string                `json:"color"`
	BasePrice   *math.HexOrDecimal256 `json:"basePrice"`
	Picture     string                `json:"picture"`
	YearOfBirth uint32                `json:"yearOfBirth"`
	Description string                `json:"description"`
	Category    uint32                `json:"category"`
}

type ListPetRequest struct {
	Origin        dexpet.Address        `json:"origin"`
	Nonce         uint64                `json:"nonce"`
	StartingPrice *math.HexOrDecimal256 `json:"startingPrice"`
	Duration      uint64                `json:"duration"`
}

type BidRequest struct {
	Origin dexpet.Address        `json:"origin"`
	Nonce  uint64                `json:"nonce"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

type EndAuctionRequest struct {
	Origin dexpet.Address `json:"origin"`
	Nonce  uint64         `json:"nonce"`
}

// CallResult acknowledges a committed script call.
type CallResult struct {
	Seq    uint64         `json:"seq"`
	TxID   dexpet.Bytes32 `json:"txID"`
	Output string         `json:"output"`
}

func convertReceipt(receipt *node.CallReceipt) *CallResult {
	return &CallResult{
		Seq:    receipt.Seq,
		TxID:   receipt.TxID,
		Output: hexutil.Encode(receipt.Output),
	}
}
