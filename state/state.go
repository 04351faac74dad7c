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

var (
	accountPrefix = []byte("a/")
	storagePrefix = []byte("s/")
)

func accountKey(addr dexpet.Address) []byte {
	return append(append([]byte{}, accountPrefix...), addr.Bytes()...)
}

func storageKeyOf(addr dexpet.Address, key dexpet.Bytes32) []byte {
	k := append(append([]byte{}, storagePrefix...), addr.Bytes()...)
	return append(k, key.Bytes()...)
}

type storageKey struct {
	addr dexpet.Address
	key  dexpet.Bytes32
}

type journalEntry struct {
	undo func()
}

// State manages account balances and per-account keyed storage.
// All mutations are journaled, so a call can be reverted as a whole
// via NewCheckpoint/RevertTo. Committed values are written through to kv.
type State struct {
	kv       lvldb.GetPutter
	accounts map[dexpet.Address]*Account
	storage  map[storageKey][]byte
	dirtyAcc map[dexpet.Address]bool
	dirtySto map[storageKey]bool
	journal  []journalEntry
	err      error
}

// New create a state object backed by the given kv.
func New(kv lvldb.GetPutter) (*State, error) {
	return &State{
		kv:       kv,
		accounts: make(map[dexpet.Address]*Account),
		storage:  make(map[storageKey][]byte),
		dirtyAcc: make(map[dexpet.Address]bool),
		dirtySto: make(map[storageKey]bool),
	}, nil
}

func (s *State) setError(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Err returns first occurred error.
func (s *State) Err() error {
	return s.err
}

func (s *State) getAccount(addr dexpet.Address) *Account {
	if acc, ok := s.accounts[addr]; ok {
		return acc
	}
	acc, err := loadAccount(s.kv, addr)
	if err != nil {
		s.setError(err)
		acc = emptyAccount()
	}
	s.accounts[addr] = acc
	return acc
}

// GetBalance returns balance for the given address.
func (s *State) GetBalance(addr dexpet.Address) *big.Int {
	return new(big.Int).Set(s.getAccount(addr).Balance)
}

// SetBalance set balance for the given address.
func (s *State) SetBalance(addr dexpet.Address, balance *big.Int) {
	acc := s.getAccount(addr)
	prev := acc.Balance
	wasDirty := s.dirtyAcc[addr]
	s.journal = append(s.journal, journalEntry{undo: func() {
		acc.Balance = prev
		s.dirtyAcc[addr] = wasDirty
	}})
	acc.Balance = new(big.Int).Set(balance)
	s.dirtyAcc[addr] = true
}

// AddBalance add amount of balance to the given address.
func (s *State) AddBalance(addr dexpet.Address, amount *big.Int) {
	if amount.Sign() == 0 {
		return
	}
	balance := s.GetBalance(addr)
	s.SetBalance(addr, new(big.Int).Add(balance, amount))
}

// SubBalance sub amount of balance from the given address.
// Returns false without changing anything if the balance is insufficient.
func (s *State) SubBalance(addr dexpet.Address, amount *big.Int) bool {
	if amount.Sign() == 0 {
		return true
	}
	balance := s.GetBalance(addr)
	if balance.Cmp(amount) < 0 {
		return false
	}
	s.SetBalance(addr, new(big.Int).Sub(balance, amount))
	return true
}

// Exists returns whether an account exists at the given address.
func (s *State) Exists(addr dexpet.Address) bool {
	return !s.getAccount(addr).IsEmpty()
}

func (s *State) getRawStorage(sk storageKey) []byte {
	if raw, ok := s.storage[sk]; ok {
		return raw
	}
	raw, err := s.kv.Get(storageKeyOf(sk.addr, sk.key))
	if err != nil {
		if !s.kv.IsNotFound(err) {
			s.setError(err)
		}
		raw = nil
	}
	s.storage[sk] = raw
	return raw
}

// GetRawStorage returns raw storage value for the given address and key.
func (s *State) GetRawStorage(addr dexpet.Address, key dexpet.Bytes32) rlp.RawValue {
	return s.getRawStorage(storageKey{addr, key})
}

// SetRawStorage set raw storage value for the given address and key.
func (s *State) SetRawStorage(addr dexpet.Address, key dexpet.Bytes32, raw rlp.RawValue) {
	sk := storageKey{addr, key}
	prev := s.getRawStorage(sk)
	wasDirty := s.dirtySto[sk]
	s.journal = append(s.journal, journalEntry{undo: func() {
		s.storage[sk] = prev
		s.dirtySto[sk] = wasDirty
	}})
	s.storage[sk] = raw
	s.dirtySto[sk] = true
}

// EncodeStorage set storage value encoded by given enc method.
func (s *State) EncodeStorage(addr dexpet.Address, key dexpet.Bytes32, enc func() ([]byte, error)) {
	raw, err := enc()
	if err != nil {
		s.setError(err)
		return
	}
	s.SetRawStorage(addr, key, raw)
}

// DecodeStorage get and decode storage value.
func (s *State) DecodeStorage(addr dexpet.Address, key dexpet.Bytes32, dec func([]byte) error) {
	raw := s.GetRawStorage(addr, key)
	if err := dec(raw); err != nil {
		s.setError(err)
	}
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return len(s.journal)
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	for i := len(s.journal) - 1; i >= revision; i-- {
		s.journal[i].undo()
	}
	s.journal = s.journal[:revision]
}

// Commit writes all dirty values through to kv and truncates the journal.
// A state with a pending error refuses to commit.
func (s *State) Commit() error {
	if s.err != nil {
		return s.err
	}
	for addr, dirty := range s.dirtyAcc {
		if !dirty {
			continue
		}
		if err := saveAccount(s.kv, addr, s.accounts[addr]); err != nil {
			return err
		}
		s.dirtyAcc[addr] = false
	}
	for sk, dirty := range s.dirtySto {
		if !dirty {
			continue
		}
		raw := s.storage[sk]
		if len(raw) == 0 {
			if err := s.kv.Delete(storageKeyOf(sk.addr, sk.key)); err != nil {
				return err
			}
		} else {
			if err := s.kv.Put(storageKeyOf(sk.addr, sk.key), raw); err != nil {
				return err
			}
		}
		s.dirtySto[sk] = false
	}
	s.journal = s.journal[:0]
	return nil
}
