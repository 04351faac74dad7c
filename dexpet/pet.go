// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dexpet

import (
	"fmt"
	"math/big"
)

// Pet is a registered auctionable item. Ids are assigned sequentially from 1
// and descriptive fields never change after registration; only Sold is
// flipped by settlement.
type Pet struct {
	ID          uint64
	Name        string
	Breed       uint32
	Color       string
	BasePrice   *big.Int // advisory reference price, not enforced against bids
	Picture     string   // opaque content reference (hash or URI)
	YearOfBirth uint32
	Description string
	Category    uint32
	Sold        bool
}

func (p *Pet) ToString() string {
	return fmt.Sprintf("Pet(id=%v, name=%v, breed=%v, color=%v, basePrice=%v, yearOfBirth=%v, category=%v, sold=%v)",
		p.ID, p.Name, p.Breed, p.Color, p.BasePrice.String(), p.YearOfBirth, p.Category, p.Sold)
}
