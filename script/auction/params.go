// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import "github.com/meterio/dexpet/dexpet"

// the global storage keys of the auction module account
var (
	PetListKey     = dexpet.Blake2b([]byte("pet-list-key"))
	AuctionListKey = dexpet.Blake2b([]byte("auction-list-key"))
	SummaryListKey = dexpet.Blake2b([]byte("summary-list-key"))
	TotalBidsKey   = dexpet.Blake2b([]byte("total-bids-key"))
	AdminKey       = dexpet.Blake2b([]byte("admin-address-key"))
)

const (
	AUCTION_OPEN   = uint32(1)
	AUCTION_CLOSED = uint32(2)
)
