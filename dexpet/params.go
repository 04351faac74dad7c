// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dexpet

// Opcodes of the pet auction module.
const (
	OP_ADDPET     = uint32(1)
	OP_LISTPET    = uint32(2)
	OP_BID        = uint32(3)
	OP_ENDAUCTION = uint32(4)
)

// Token kinds. The ledger carries a single native token.
const (
	DPT = byte(0)
)

const (
	// AUCTION_MAX_SUMMARIES limits the settled auction history kept in state.
	AUCTION_MAX_SUMMARIES = 32
)

// Module account addresses.
var (
	// AuctionModuleAddr holds escrowed bids for all open auctions.
	AuctionModuleAddr = BytesToAddress([]byte("pet-auction-module-address"))
)

// Keys of ledger governance params.
var (
	KeyAdminAddress = BytesToBytes32([]byte("admin-address"))
)

func GetOpName(op uint32) string {
	switch op {
	case OP_ADDPET:
		return "AddPet"
	case OP_LISTPET:
		return "ListPet"
	case OP_BID:
		return "Bid"
	case OP_ENDAUCTION:
		return "EndAuction"
	default:
		return "Unknown"
	}
}
