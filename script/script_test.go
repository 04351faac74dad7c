// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package script_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/meterio/dexpet/dexpet"
	"github.com/meterio/dexpet/lvldb"
	"github.com/meterio/dexpet/script"
	"github.com/meterio/dexpet/script/auction"
	setypes "github.com/meterio/dexpet/script/types"
	"github.com/meterio/dexpet/state"
	"github.com/meterio/dexpet/xenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEnv(t *testing.T) (*script.ScriptEngine, *setypes.ScriptEnv) {
	kv, err := lvldb.NewMem()
	require.NoError(t, err)
	creator := state.NewCreator(kv)
	engine := script.NewScriptEngine(creator)

	st, err := creator.NewState()
	require.NoError(t, err)
	senv := setypes.NewScriptEnv(
		st,
		&xenv.BlockContext{Number: 1, Time: 1000},
		&xenv.TransactionContext{Origin: dexpet.BytesToAddress([]byte("origin"))},
		&dexpet.AuctionModuleAddr,
	)
	return engine, senv
}

func TestEncodeDecodeScriptData(t *testing.T) {
	body := auction.NewEndAuctionBody(7, 99)
	data, err := script.EncodeScriptData(body)
	require.NoError(t, err)
	assert.Equal(t, script.ScriptPattern[:], data[:4])

	decoded, err := script.DecodeScriptData(data[4:])
	require.NoError(t, err)
	assert.Equal(t, script.AUCTION_MODULE_ID, decoded.Header.GetModID())

	ab, err := auction.AuctionDecodeFromBytes(decoded.Payload)
	require.NoError(t, err)
	assert.Equal(t, dexpet.OP_ENDAUCTION, ab.Opcode)
	assert.Equal(t, uint64(7), ab.PetID)
	assert.Equal(t, uint64(99), ab.Nonce)
}

func TestEncodeUnknownBody(t *testing.T) {
	_, err := script.EncodeScriptData(struct{ A uint64 }{1})
	assert.Error(t, err)
}

func TestHandleScriptDataPatternMismatch(t *testing.T) {
	engine, senv := newTestEnv(t)

	_, err := engine.HandleScriptData(senv, []byte{0x0, 0x1, 0x2, 0x3, 0x4})
	assert.Error(t, err)
}

func TestHandleScriptDataUnknownModule(t *testing.T) {
	engine, senv := newTestEnv(t)

	s := &script.Script{
		Header:  script.ScriptHeader{Version: 0, ModID: 12345},
		Payload: []byte{},
	}
	raw, err := rlp.EncodeToBytes(s)
	require.NoError(t, err)
	data := append(script.ScriptPattern[:], raw...)

	_, err = engine.HandleScriptData(senv, data)
	assert.Error(t, err)
}

func TestFailedCallRevertsState(t *testing.T) {
	engine, senv := newTestEnv(t)
	st := senv.GetState()

	bidder := dexpet.BytesToAddress([]byte("origin"))
	st.SetBalance(bidder, big.NewInt(1000))

	// bidding on a pet that was never listed fails inside the handler
	body := auction.NewBidBody(1, bidder, big.NewInt(500), 0)
	data, err := script.EncodeScriptData(body)
	require.NoError(t, err)

	_, err = engine.HandleScriptData(senv, data)
	assert.Error(t, err)
	assert.Equal(t, big.NewInt(1000), st.GetBalance(bidder))
	assert.Zero(t, st.GetBalance(dexpet.AuctionModuleAddr).Sign())
}
