// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"

	"github.com/meterio/dexpet/dexpet"
	"github.com/meterio/dexpet/state"
)

// Pet list
func (a *Auction) GetPetList(state *state.State) (result *PetList) {
	state.DecodeStorage(dexpet.AuctionModuleAddr, PetListKey, func(raw []byte) error {
		pets := make([]*dexpet.Pet, 0)
		if len(raw) > 0 {
			decoder := gob.NewDecoder(bytes.NewBuffer(raw))
			if err := decoder.Decode(&pets); err != nil {
				a.logger.Warn("error during decoding pet list, set it as an empty list", "err", err)
				pets = make([]*dexpet.Pet, 0)
			}
		}
		result = NewPetList(pets)
		return nil
	})
	return
}

func (a *Auction) SetPetList(petList *PetList, state *state.State) {
	state.EncodeStorage(dexpet.AuctionModuleAddr, PetListKey, func() ([]byte, error) {
		buf := bytes.NewBuffer([]byte{})
		encoder := gob.NewEncoder(buf)
		err := encoder.Encode(petList.Pets)
		return buf.Bytes(), err
	})
}

// Auction list
func (a *Auction) GetAuctionList(state *state.State) (result *AuctionList) {
	state.DecodeStorage(dexpet.AuctionModuleAddr, AuctionListKey, func(raw []byte) error {
		auctions := make([]*PetAuction, 0)
		if len(raw) > 0 {
			decoder := gob.NewDecoder(bytes.NewBuffer(raw))
			if err := decoder.Decode(&auctions); err != nil {
				a.logger.Warn("error during decoding auction list, set it as an empty list", "err", err)
				auctions = make([]*PetAuction, 0)
			}
		}
		result = NewAuctionList(auctions)
		return nil
	})
	return
}

func (a *Auction) SetAuctionList(auctionList *AuctionList, state *state.State) {
	state.EncodeStorage(dexpet.AuctionModuleAddr, AuctionListKey, func() ([]byte, error) {
		buf := bytes.NewBuffer([]byte{})
		encoder := gob.NewEncoder(buf)
		err := encoder.Encode(auctionList.Auctions)
		return buf.Bytes(), err
	})
}

// Summary list
func (a *Auction) GetSummaryList(state *state.State) (result *SummaryList) {
	state.DecodeStorage(dexpet.AuctionModuleAddr, SummaryListKey, func(raw []byte) error {
		summaries := make([]*AuctionSummary, 0)
		if len(raw) > 0 {
			decoder := gob.NewDecoder(bytes.NewBuffer(raw))
			if err := decoder.Decode(&summaries); err != nil {
				a.logger.Warn("error during decoding summary list, set it as an empty list", "err", err)
				summaries = make([]*AuctionSummary, 0)
			}
		}
		result = NewSummaryList(summaries)
		return nil
	})
	return
}

func (a *Auction) SetSummaryList(summaryList *SummaryList, state *state.State) {
	state.EncodeStorage(dexpet.AuctionModuleAddr, SummaryListKey, func() ([]byte, error) {
		buf := bytes.NewBuffer([]byte{})
		encoder := gob.NewEncoder(buf)
		err := encoder.Encode(summaryList.Summaries)
		return buf.Bytes(), err
	})
}

// Total bids counter
func (a *Auction) GetTotalBids(state *state.State) (total uint64) {
	state.DecodeStorage(dexpet.AuctionModuleAddr, TotalBidsKey, func(raw []byte) error {
		if len(raw) >= 8 {
			total = binary.BigEndian.Uint64(raw)
		}
		return nil
	})
	return
}

func (a *Auction) SetTotalBids(total uint64, state *state.State) {
	state.EncodeStorage(dexpet.AuctionModuleAddr, TotalBidsKey, func() ([]byte, error) {
		raw := make([]byte, 8)
		binary.BigEndian.PutUint64(raw, total)
		return raw, nil
	})
}

// Administrator identity, captured once at genesis and immutable afterwards.
func GetAdminAddress(state *state.State) (admin dexpet.Address) {
	state.DecodeStorage(dexpet.AuctionModuleAddr, AdminKey, func(raw []byte) error {
		admin = dexpet.BytesToAddress(raw)
		return nil
	})
	return
}

func SetAdminAddress(admin dexpet.Address, state *state.State) {
	state.EncodeStorage(dexpet.AuctionModuleAddr, AdminKey, func() ([]byte, error) {
		return admin.Bytes(), nil
	})
}
