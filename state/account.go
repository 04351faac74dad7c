// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/meterio/dexpet/dexpet"
	"github.com/meterio/dexpet/lvldb"
)

// Account is the ledger representation of an account.
// RLP encoded objects are stored under the account prefix in kv.
type Account struct {
	Balance *big.Int
}

// IsEmpty returns if an account is empty.
// An empty account has zero balance.
func (a *Account) IsEmpty() bool {
	return a.Balance.Sign() == 0
}

func emptyAccount() *Account {
	return &Account{Balance: &big.Int{}}
}

// loadAccount load an account object by address in kv.
// It returns empty account if no account found at the address.
func loadAccount(kv lvldb.Getter, addr dexpet.Address) (*Account, error) {
	data, err := kv.Get(accountKey(addr))
	if err != nil {
		if kv.IsNotFound(err) {
			return emptyAccount(), nil
		}
		return nil, err
	}
	var a Account
	if err := rlp.DecodeBytes(data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// saveAccount save account into kv.
// If the given account is empty, the record gets deleted.
func saveAccount(kv lvldb.Putter, addr dexpet.Address, a *Account) error {
	if a.IsEmpty() {
		return kv.Delete(accountKey(addr))
	}
	data, err := rlp.EncodeToBytes(a)
	if err != nil {
		return err
	}
	return kv.Put(accountKey(addr), data)
}
