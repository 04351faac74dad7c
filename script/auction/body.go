// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/meterio/dexpet/dexpet"
)

// AuctionBody carries one auction operation. Fields that an opcode does
// not use are left at their zero value by the builders below.
type AuctionBody struct {
	Opcode  uint32
	Version uint32
	PetID   uint64

	// pet registration fields
	Name        string
	Breed       uint32
	Color       string
	BasePrice   *big.Int
	Picture     string
	YearOfBirth uint32
	Description string
	Category    uint32

	// listing fields
	StartingPrice *big.Int
	Duration      uint64 // seconds, caller supplied and deliberately unbounded

	// bid fields
	Bidder dexpet.Address
	Amount *big.Int // value attached to the bid
	Token  byte

	Timestamp uint64
	Nonce     uint64
}

func (ab *AuctionBody) ToString() string {
	return fmt.Sprintf("AuctionBody: Opcode=%v, Version=%v, PetID=%v, Name=%v, BasePrice=%v, StartingPrice=%v, Duration=%v, Bidder=%v, Amount=%v, Token=%v, Timestamp=%v, Nonce=%v",
		ab.Opcode, ab.Version, ab.PetID, ab.Name, ab.BasePrice.String(), ab.StartingPrice.String(), ab.Duration, ab.Bidder.String(), ab.Amount.String(), ab.Token, ab.Timestamp, ab.Nonce)
}

func (ab *AuctionBody) GetOpName(op uint32) string {
	return dexpet.GetOpName(op)
}

func AuctionEncodeBytes(ab *AuctionBody) []byte {
	auctionBytes, err := rlp.EncodeToBytes(ab)
	if err != nil {
		return []byte{}
	}
	return auctionBytes
}

func AuctionDecodeFromBytes(bytes []byte) (*AuctionBody, error) {
	ab := AuctionBody{}
	err := rlp.DecodeBytes(bytes, &ab)
	return &ab, err
}

// NewAddPetBody builds the body for OP_ADDPET.
func NewAddPetBody(name string, breed uint32, color string, basePrice *big.Int, picture string, yearOfBirth uint32, description string, category uint32, nonce uint64) *AuctionBody {
	return &AuctionBody{
		Opcode:        dexpet.OP_ADDPET,
		Name:          name,
		Breed:         breed,
		Color:         color,
		BasePrice:     basePrice,
		Picture:       picture,
		YearOfBirth:   yearOfBirth,
		Description:   description,
		Category:      category,
		StartingPrice: big.NewInt(0),
		Amount:        big.NewInt(0),
		Token:         dexpet.DPT,
		Nonce:         nonce,
	}
}

// NewListPetBody builds the body for OP_LISTPET.
func NewListPetBody(petID uint64, startingPrice *big.Int, duration uint64, nonce uint64) *AuctionBody {
	return &AuctionBody{
		Opcode:        dexpet.OP_LISTPET,
		PetID:         petID,
		BasePrice:     big.NewInt(0),
		StartingPrice: startingPrice,
		Duration:      duration,
		Amount:        big.NewInt(0),
		Token:         dexpet.DPT,
		Nonce:         nonce,
	}
}

// NewBidBody builds the body for OP_BID. The amount is the value moved
// into escrow together with the call.
func NewBidBody(petID uint64, bidder dexpet.Address, amount *big.Int, nonce uint64) *AuctionBody {
	return &AuctionBody{
		Opcode:        dexpet.OP_BID,
		PetID:         petID,
		BasePrice:     big.NewInt(0),
		StartingPrice: big.NewInt(0),
		Bidder:        bidder,
		Amount:        amount,
		Token:         dexpet.DPT,
		Nonce:         nonce,
	}
}

// NewEndAuctionBody builds the body for OP_ENDAUCTION.
func NewEndAuctionBody(petID uint64, nonce uint64) *AuctionBody {
	return &AuctionBody{
		Opcode:        dexpet.OP_ENDAUCTION,
		PetID:         petID,
		BasePrice:     big.NewInt(0),
		StartingPrice: big.NewInt(0),
		Amount:        big.NewInt(0),
		Token:         dexpet.DPT,
		Nonce:         nonce,
	}
}
