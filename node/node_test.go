// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node_test

import (
	"math/big"
	"testing"
	"time"

	"github.com/meterio/dexpet/genesis"
	"github.com/meterio/dexpet/logdb"
	"github.com/meterio/dexpet/lvldb"
	"github.com/meterio/dexpet/node"
	"github.com/meterio/dexpet/script"
	"github.com/meterio/dexpet/script/auction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNode(t *testing.T) *node.Node {
	kv, err := lvldb.NewMem()
	require.NoError(t, err)
	logDB, err := logdb.NewMem()
	require.NoError(t, err)
	n, err := node.New(kv, logDB, genesis.NewDevnet())
	require.NoError(t, err)
	return n
}

func TestSubmitScriptRoundTrip(t *testing.T) {
	n := newTestNode(t)
	admin := genesis.DevAccounts()[0].Address
	bidder := genesis.DevAccounts()[1].Address

	data, err := script.EncodeScriptData(auction.NewAddPetBody("rex", 1, "brown", big.NewInt(50), "", 2018, "", 1, 1))
	require.NoError(t, err)
	receipt, err := n.SubmitScript(admin, 1, data)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), receipt.Seq)
	require.Len(t, receipt.Events, 1)

	pet, err := n.GetPet(1)
	require.NoError(t, err)
	assert.Equal(t, "rex", pet.Name)

	data, err = script.EncodeScriptData(auction.NewListPetBody(1, big.NewInt(100), 3600, 2))
	require.NoError(t, err)
	_, err = n.SubmitScript(admin, 2, data)
	require.NoError(t, err)

	pa, err := n.GetAuction(1)
	require.NoError(t, err)
	require.NotNil(t, pa)
	assert.True(t, pa.IsOpen())

	data, err = script.EncodeScriptData(auction.NewBidBody(1, bidder, big.NewInt(200), 3))
	require.NoError(t, err)
	receipt, err = n.SubmitScript(bidder, 3, data)
	require.NoError(t, err)
	require.Len(t, receipt.Transfers, 1)

	total, err := n.GetTotalBids()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
}

func TestSubmitScriptDedup(t *testing.T) {
	n := newTestNode(t)
	admin := genesis.DevAccounts()[0].Address

	data, err := script.EncodeScriptData(auction.NewAddPetBody("rex", 1, "brown", big.NewInt(50), "", 2018, "", 1, 7))
	require.NoError(t, err)

	_, err = n.SubmitScript(admin, 7, data)
	require.NoError(t, err)

	_, err = n.SubmitScript(admin, 7, data)
	assert.EqualError(t, err, "known script call")
}

func TestFailedSubmitNotCommitted(t *testing.T) {
	n := newTestNode(t)
	stranger := genesis.DevAccounts()[2].Address

	data, err := script.EncodeScriptData(auction.NewAddPetBody("rex", 1, "brown", big.NewInt(50), "", 2018, "", 1, 1))
	require.NoError(t, err)

	_, err = n.SubmitScript(stranger, 1, data)
	assert.EqualError(t, err, "permission denied, only owner")
	assert.Equal(t, uint64(0), n.Seq())

	_, err = n.GetPet(1)
	assert.Error(t, err)
}

func TestSubscribe(t *testing.T) {
	n := newTestNode(t)
	admin := genesis.DevAccounts()[0].Address

	receipts, cancel := n.Subscribe()
	defer cancel()

	data, err := script.EncodeScriptData(auction.NewAddPetBody("rex", 1, "brown", big.NewInt(50), "", 2018, "", 1, 1))
	require.NoError(t, err)
	submitted, err := n.SubmitScript(admin, 1, data)
	require.NoError(t, err)

	select {
	case received := <-receipts:
		assert.Equal(t, submitted.TxID, received.TxID)
	case <-time.After(time.Second):
		t.Fatal("no receipt received")
	}
}

func TestGenesisAdmin(t *testing.T) {
	n := newTestNode(t)

	admin, err := n.GetAdmin()
	require.NoError(t, err)
	assert.Equal(t, genesis.DevAccounts()[0].Address, admin)

	balance, err := n.GetBalance(genesis.DevAccounts()[1].Address)
	require.NoError(t, err)
	assert.Positive(t, balance.Sign())
}
