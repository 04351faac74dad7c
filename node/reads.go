// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"errors"
	"math/big"

	"github.com/meterio/dexpet/dexpet"
	"github.com/meterio/dexpet/script/auction"
	"github.com/meterio/dexpet/state"
)

var errPetNotFound = errors.New("pet not found")

func (n *Node) state() (*state.State, error) {
	return n.stateC.NewState()
}

// GetPet returns a registered pet, strict on unknown ids.
func (n *Node) GetPet(id uint64) (*dexpet.Pet, error) {
	st, err := n.state()
	if err != nil {
		return nil, err
	}
	pet := auction.GetAuctionGlobInst().GetPetList(st).Get(id)
	if pet == nil {
		return nil, errPetNotFound
	}
	return pet, nil
}

// GetPets returns the whole registry in id order.
func (n *Node) GetPets() ([]dexpet.Pet, error) {
	st, err := n.state()
	if err != nil {
		return nil, err
	}
	return auction.GetAuctionGlobInst().GetPetList(st).ToList(), nil
}

// GetAuction returns the auction record of a pet, open or closed, nil
// when the pet was never listed.
func (n *Node) GetAuction(petID uint64) (*auction.PetAuction, error) {
	st, err := n.state()
	if err != nil {
		return nil, err
	}
	return auction.GetAuctionGlobInst().GetAuctionList(st).Get(petID), nil
}

// GetAuctions returns every auction record, sorted by pet id.
func (n *Node) GetAuctions() ([]auction.PetAuction, error) {
	st, err := n.state()
	if err != nil {
		return nil, err
	}
	return auction.GetAuctionGlobInst().GetAuctionList(st).ToList(), nil
}

// GetSummaries returns the retained settlement history, oldest first.
func (n *Node) GetSummaries() ([]auction.AuctionSummary, error) {
	st, err := n.state()
	if err != nil {
		return nil, err
	}
	return auction.GetAuctionGlobInst().GetSummaryList(st).ToList(), nil
}

// GetTotalBids returns the lifetime count of accepted bids.
func (n *Node) GetTotalBids() (uint64, error) {
	st, err := n.state()
	if err != nil {
		return 0, err
	}
	return auction.GetAuctionGlobInst().GetTotalBids(st), nil
}

// GetBalance returns the spendable balance of an account.
func (n *Node) GetBalance(addr dexpet.Address) (*big.Int, error) {
	st, err := n.state()
	if err != nil {
		return nil, err
	}
	return st.GetBalance(addr), nil
}

// GetAdmin returns the marketplace administrator.
func (n *Node) GetAdmin() (dexpet.Address, error) {
	st, err := n.state()
	if err != nil {
		return dexpet.Address{}, err
	}
	return auction.GetAdminAddress(st), nil
}
