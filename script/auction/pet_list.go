// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"fmt"
	"strings"

	"github.com/meterio/dexpet/dexpet"
)

// PetList the pet registry. Ids are sequential from 1 so the slice index
// is id-1; pets are never removed.
type PetList struct {
	Pets []*dexpet.Pet
}

func NewPetList(pets []*dexpet.Pet) *PetList {
	if pets == nil {
		pets = make([]*dexpet.Pet, 0)
	}
	return &PetList{Pets: pets}
}

// NextID the id the next registered pet will get.
func (pl *PetList) NextID() uint64 {
	return uint64(len(pl.Pets)) + 1
}

func (pl *PetList) Get(id uint64) *dexpet.Pet {
	if id < 1 || id > uint64(len(pl.Pets)) {
		return nil
	}
	return pl.Pets[id-1]
}

func (pl *PetList) Exist(id uint64) bool {
	return pl.Get(id) != nil
}

// Add appends a pet; its ID must have been assigned with NextID.
func (pl *PetList) Add(pet *dexpet.Pet) error {
	if pet.ID != pl.NextID() {
		return fmt.Errorf("pet id %v out of sequence, expected %v", pet.ID, pl.NextID())
	}
	pl.Pets = append(pl.Pets, pet)
	return nil
}

func (pl *PetList) Count() int {
	return len(pl.Pets)
}

func (pl *PetList) ToString() string {
	if pl == nil || len(pl.Pets) == 0 {
		return "PetList (size:0)"
	}
	s := []string{fmt.Sprintf("PetList (size:%v) {", len(pl.Pets))}
	for i, p := range pl.Pets {
		s = append(s, fmt.Sprintf("  %d.%v", i, p.ToString()))
	}
	s = append(s, "}")
	return strings.Join(s, "\n")
}

func (pl *PetList) ToList() []dexpet.Pet {
	result := make([]dexpet.Pet, 0)
	for _, v := range pl.Pets {
		result = append(result, *v)
	}
	return result
}
