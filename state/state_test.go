// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/meterio/dexpet/dexpet"
	"github.com/meterio/dexpet/lvldb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T) (*State, *lvldb.LevelDB) {
	kv, err := lvldb.NewMem()
	require.NoError(t, err)
	st, err := New(kv)
	require.NoError(t, err)
	return st, kv
}

func TestBalance(t *testing.T) {
	st, _ := newTestState(t)
	addr := dexpet.BytesToAddress([]byte("account1"))

	assert.Zero(t, st.GetBalance(addr).Sign())
	assert.False(t, st.Exists(addr))

	st.SetBalance(addr, big.NewInt(100))
	assert.Equal(t, big.NewInt(100), st.GetBalance(addr))
	assert.True(t, st.Exists(addr))

	st.AddBalance(addr, big.NewInt(50))
	assert.Equal(t, big.NewInt(150), st.GetBalance(addr))

	assert.True(t, st.SubBalance(addr, big.NewInt(150)))
	assert.Zero(t, st.GetBalance(addr).Sign())

	// overdraft is refused, balance untouched
	assert.False(t, st.SubBalance(addr, big.NewInt(1)))
	assert.Zero(t, st.GetBalance(addr).Sign())
}

func TestStorage(t *testing.T) {
	st, _ := newTestState(t)
	addr := dexpet.BytesToAddress([]byte("account1"))
	key := dexpet.Blake2b([]byte("key"))

	st.EncodeStorage(addr, key, func() ([]byte, error) {
		return rlp.EncodeToBytes("value")
	})
	require.NoError(t, st.Err())

	var decoded string
	st.DecodeStorage(addr, key, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &decoded)
	})
	require.NoError(t, st.Err())
	assert.Equal(t, "value", decoded)
}

func TestCheckpointRevert(t *testing.T) {
	st, _ := newTestState(t)
	addr := dexpet.BytesToAddress([]byte("account1"))
	key := dexpet.Blake2b([]byte("key"))

	st.SetBalance(addr, big.NewInt(100))
	st.SetRawStorage(addr, key, []byte{0x1})

	checkpoint := st.NewCheckpoint()
	st.SetBalance(addr, big.NewInt(999))
	st.SetRawStorage(addr, key, []byte{0x2})

	st.RevertTo(checkpoint)
	assert.Equal(t, big.NewInt(100), st.GetBalance(addr))
	assert.Equal(t, rlp.RawValue{0x1}, st.GetRawStorage(addr, key))
}

func TestCommitReload(t *testing.T) {
	st, kv := newTestState(t)
	addr := dexpet.BytesToAddress([]byte("account1"))
	key := dexpet.Blake2b([]byte("key"))

	st.SetBalance(addr, big.NewInt(100))
	st.SetRawStorage(addr, key, []byte{0x1})
	require.NoError(t, st.Commit())

	reloaded, err := New(kv)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100), reloaded.GetBalance(addr))
	assert.Equal(t, rlp.RawValue{0x1}, reloaded.GetRawStorage(addr, key))
}

func TestRevertAcrossCheckpoints(t *testing.T) {
	st, _ := newTestState(t)
	addr := dexpet.BytesToAddress([]byte("account1"))

	cp0 := st.NewCheckpoint()
	st.SetBalance(addr, big.NewInt(1))
	cp1 := st.NewCheckpoint()
	st.SetBalance(addr, big.NewInt(2))

	st.RevertTo(cp1)
	assert.Equal(t, big.NewInt(1), st.GetBalance(addr))

	st.RevertTo(cp0)
	assert.Zero(t, st.GetBalance(addr).Sign())
}
