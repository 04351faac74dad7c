// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/meterio/dexpet/dexpet"
	setypes "github.com/meterio/dexpet/script/types"
)

// AddPet registers a new pet and assigns the next sequential id.
// Descriptive fields are stored as-is; no value is validated beyond its
// storage type, zero and default values included.
func (a *Auction) AddPet(env *setypes.ScriptEnv, ab *AuctionBody) (err error) {
	var ret []byte
	defer func() {
		if err != nil {
			ret = []byte(err.Error())
		}
		env.SetReturnData(ret)
	}()
	state := env.GetState()
	petList := a.GetPetList(state)

	basePrice := ab.BasePrice
	if basePrice == nil {
		basePrice = big.NewInt(0)
	}
	pet := &dexpet.Pet{
		ID:          petList.NextID(),
		Name:        ab.Name,
		Breed:       ab.Breed,
		Color:       ab.Color,
		BasePrice:   basePrice,
		Picture:     ab.Picture,
		YearOfBirth: ab.YearOfBirth,
		Description: ab.Description,
		Category:    ab.Category,
	}
	if err = petList.Add(pet); err != nil {
		a.logger.Error("add pet failed", "err", err)
		return
	}
	a.SetPetList(petList, state)

	emitPetAdded(env, pet)
	petsRegisteredCounter.Inc()
	a.logger.Info("pet added", "id", pet.ID, "name", pet.Name)

	ret, err = rlp.EncodeToBytes(pet.ID)
	return
}
