// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/meterio/dexpet/dexpet"
	setypes "github.com/meterio/dexpet/script/types"
)

// Event topic0 values. Topic1 is always the pet id.
var (
	PetAddedEvent     = dexpet.Blake2b([]byte("PetAdded"))
	PetListedEvent    = dexpet.Blake2b([]byte("PetListed"))
	BidPlacedEvent    = dexpet.Blake2b([]byte("BidPlaced"))
	AuctionEndedEvent = dexpet.Blake2b([]byte("AuctionEnded"))
)

func petIDTopic(petID uint64) dexpet.Bytes32 {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, petID)
	return dexpet.BytesToBytes32(raw)
}

func emitEvent(env *setypes.ScriptEnv, topic0 dexpet.Bytes32, petID uint64, payload []interface{}) {
	data, err := rlp.EncodeToBytes(payload)
	if err != nil {
		data = []byte{}
	}
	env.AddEvent(dexpet.AuctionModuleAddr, []dexpet.Bytes32{topic0, petIDTopic(petID)}, data)
}

func emitPetAdded(env *setypes.ScriptEnv, pet *dexpet.Pet) {
	emitEvent(env, PetAddedEvent, pet.ID, []interface{}{
		pet.ID, pet.Name, pet.Breed, pet.Color, pet.BasePrice, pet.Picture, pet.YearOfBirth, pet.Description, pet.Category,
	})
}

func emitPetListed(env *setypes.ScriptEnv, pa *PetAuction) {
	emitEvent(env, PetListedEvent, pa.PetID, []interface{}{
		pa.PetID, pa.StartingPrice, pa.EndTime,
	})
}

func emitBidPlaced(env *setypes.ScriptEnv, petID uint64, bidder dexpet.Address, amount *big.Int) {
	emitEvent(env, BidPlacedEvent, petID, []interface{}{
		petID, bidder, amount,
	})
}

func emitAuctionEnded(env *setypes.ScriptEnv, petID uint64, winner dexpet.Address, amount *big.Int) {
	emitEvent(env, AuctionEndedEvent, petID, []interface{}{
		petID, winner, amount,
	})
}
