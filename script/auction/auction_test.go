// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction_test

import (
	"math/big"
	"testing"

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

var (
	adminAddr    = dexpet.BytesToAddress([]byte("admin"))
	bidderAddr   = dexpet.BytesToAddress([]byte("bidder-1"))
	rivalAddr    = dexpet.BytesToAddress([]byte("bidder-2"))
	strangerAddr = dexpet.BytesToAddress([]byte("stranger"))

	initialFunds = big.NewInt(1000000)
)

type testRuntime struct {
	t      *testing.T
	engine *script.ScriptEngine
	state  *state.State
	seq    uint64
}

func initRuntime(t *testing.T) *testRuntime {
	kv, err := lvldb.NewMem()
	require.NoError(t, err)
	creator := state.NewCreator(kv)
	engine := script.NewScriptEngine(creator)

	st, err := creator.NewState()
	require.NoError(t, err)
	auction.SetAdminAddress(adminAddr, st)
	st.SetBalance(bidderAddr, new(big.Int).Set(initialFunds))
	st.SetBalance(rivalAddr, new(big.Int).Set(initialFunds))

	return &testRuntime{t: t, engine: engine, state: st}
}

func (rt *testRuntime) run(origin dexpet.Address, body *auction.AuctionBody, now uint64) (*setypes.ScriptEngineOutput, error) {
	data, err := script.EncodeScriptData(body)
	require.NoError(rt.t, err)
	rt.seq++
	senv := setypes.NewScriptEnv(
		rt.state,
		&xenv.BlockContext{Number: rt.seq, Time: now},
		&xenv.TransactionContext{Origin: origin, Nonce: body.Nonce},
		&dexpet.AuctionModuleAddr,
	)
	return rt.engine.HandleScriptData(senv, data)
}

func (rt *testRuntime) addPet(name string) uint64 {
	body := auction.NewAddPetBody(name, 1, "brown", big.NewInt(50), "pic://"+name, 2018, "a pet", 1, rt.seq)
	_, err := rt.run(adminAddr, body, 1000)
	require.NoError(rt.t, err)
	pl := auction.GetAuctionGlobInst().GetPetList(rt.state)
	return uint64(pl.Count())
}

func (rt *testRuntime) listPet(petID uint64, startingPrice int64, duration uint64, now uint64) error {
	body := auction.NewListPetBody(petID, big.NewInt(startingPrice), duration, rt.seq)
	_, err := rt.run(adminAddr, body, now)
	return err
}

func (rt *testRuntime) bid(bidder dexpet.Address, petID uint64, amount int64, now uint64) error {
	body := auction.NewBidBody(petID, bidder, big.NewInt(amount), rt.seq)
	_, err := rt.run(bidder, body, now)
	return err
}

func (rt *testRuntime) endAuction(origin dexpet.Address, petID uint64, now uint64) error {
	body := auction.NewEndAuctionBody(petID, rt.seq)
	_, err := rt.run(origin, body, now)
	return err
}

func TestAddPetAssignsSequentialIDs(t *testing.T) {
	rt := initRuntime(t)

	assert.Equal(t, uint64(1), rt.addPet("rex"))
	assert.Equal(t, uint64(2), rt.addPet("bella"))
	assert.Equal(t, uint64(3), rt.addPet("milo"))

	pl := auction.GetAuctionGlobInst().GetPetList(rt.state)
	pet := pl.Get(2)
	require.NotNil(t, pet)
	assert.Equal(t, "bella", pet.Name)
	assert.False(t, pet.Sold)
}

func TestAddPetOnlyOwner(t *testing.T) {
	rt := initRuntime(t)

	body := auction.NewAddPetBody("rex", 1, "brown", big.NewInt(50), "", 2018, "", 1, 0)
	_, err := rt.run(strangerAddr, body, 1000)
	assert.EqualError(t, err, "permission denied, only owner")
	assert.Equal(t, 0, auction.GetAuctionGlobInst().GetPetList(rt.state).Count())
}

func TestListPet(t *testing.T) {
	rt := initRuntime(t)
	rt.addPet("rex")

	require.NoError(t, rt.listPet(1, 100, 3600, 1000))

	pa := auction.GetAuctionGlobInst().GetAuctionList(rt.state).Get(1)
	require.NotNil(t, pa)
	assert.True(t, pa.IsOpen())
	assert.Equal(t, uint64(1000), pa.CreateTime)
	assert.Equal(t, uint64(4600), pa.EndTime)
	assert.Equal(t, big.NewInt(100), pa.StartingPrice)
	assert.True(t, pa.HighestBidder.IsZero())
}

func TestListPetNotFound(t *testing.T) {
	rt := initRuntime(t)

	err := rt.listPet(42, 100, 3600, 1000)
	assert.EqualError(t, err, "pet not found")
}

func TestListPetAlreadyInOpenBid(t *testing.T) {
	rt := initRuntime(t)
	rt.addPet("rex")
	require.NoError(t, rt.listPet(1, 100, 3600, 1000))

	err := rt.listPet(1, 200, 3600, 1001)
	assert.EqualError(t, err, "pet is in an open bid, close it first")
}

func TestListPetOnlyOwner(t *testing.T) {
	rt := initRuntime(t)
	rt.addPet("rex")

	body := auction.NewListPetBody(1, big.NewInt(100), 3600, 0)
	_, err := rt.run(strangerAddr, body, 1000)
	assert.EqualError(t, err, "permission denied, only owner")
}

func TestFirstBidMustExceedStartingPrice(t *testing.T) {
	rt := initRuntime(t)
	rt.addPet("rex")
	require.NoError(t, rt.listPet(1, 100, 3600, 1000))

	// equal to the starting price is not enough
	err := rt.bid(bidderAddr, 1, 100, 1100)
	assert.EqualError(t, err, "bid too low")

	require.NoError(t, rt.bid(bidderAddr, 1, 101, 1101))

	pa := auction.GetAuctionGlobInst().GetAuctionList(rt.state).Get(1)
	assert.Equal(t, big.NewInt(101), pa.HighestBid)
	assert.Equal(t, bidderAddr, pa.HighestBidder)
	assert.Equal(t, uint32(1), pa.BidCount)
}

func TestLaterBidMustExceedHighestBid(t *testing.T) {
	rt := initRuntime(t)
	rt.addPet("rex")
	require.NoError(t, rt.listPet(1, 100, 3600, 1000))
	require.NoError(t, rt.bid(bidderAddr, 1, 200, 1100))

	err := rt.bid(rivalAddr, 1, 200, 1101)
	assert.EqualError(t, err, "bid too low")

	require.NoError(t, rt.bid(rivalAddr, 1, 201, 1102))
}

func TestBidEscrowAndRefund(t *testing.T) {
	rt := initRuntime(t)
	rt.addPet("rex")
	require.NoError(t, rt.listPet(1, 100, 3600, 1000))

	require.NoError(t, rt.bid(bidderAddr, 1, 200, 1100))
	assert.Equal(t, new(big.Int).Sub(initialFunds, big.NewInt(200)), rt.state.GetBalance(bidderAddr))
	assert.Equal(t, big.NewInt(200), rt.state.GetBalance(dexpet.AuctionModuleAddr))

	// displaced bidder gets its escrow back in the same call
	require.NoError(t, rt.bid(rivalAddr, 1, 300, 1101))
	assert.Equal(t, initialFunds, rt.state.GetBalance(bidderAddr))
	assert.Equal(t, new(big.Int).Sub(initialFunds, big.NewInt(300)), rt.state.GetBalance(rivalAddr))
	assert.Equal(t, big.NewInt(300), rt.state.GetBalance(dexpet.AuctionModuleAddr))
}

func TestBidInsufficientBalance(t *testing.T) {
	rt := initRuntime(t)
	rt.addPet("rex")
	require.NoError(t, rt.listPet(1, 100, 3600, 1000))

	err := rt.bid(bidderAddr, 1, initialFunds.Int64()+1, 1100)
	assert.EqualError(t, err, "not enough balance")
	assert.Equal(t, initialFunds, rt.state.GetBalance(bidderAddr))
}

func TestBidFailureLeavesNoTrace(t *testing.T) {
	rt := initRuntime(t)
	rt.addPet("rex")
	require.NoError(t, rt.listPet(1, 100, 3600, 1000))
	require.NoError(t, rt.bid(bidderAddr, 1, 200, 1100))

	err := rt.bid(rivalAddr, 1, 150, 1101)
	assert.EqualError(t, err, "bid too low")

	pa := auction.GetAuctionGlobInst().GetAuctionList(rt.state).Get(1)
	assert.Equal(t, big.NewInt(200), pa.HighestBid)
	assert.Equal(t, bidderAddr, pa.HighestBidder)
	assert.Equal(t, initialFunds, rt.state.GetBalance(rivalAddr))
	assert.Equal(t, big.NewInt(200), rt.state.GetBalance(dexpet.AuctionModuleAddr))
}

func TestBidderMismatch(t *testing.T) {
	rt := initRuntime(t)
	rt.addPet("rex")
	require.NoError(t, rt.listPet(1, 100, 3600, 1000))

	body := auction.NewBidBody(1, bidderAddr, big.NewInt(200), 0)
	_, err := rt.run(rivalAddr, body, 1100)
	assert.EqualError(t, err, "bidder address is not the same as transaction origin")
}

func TestBidOnUnlistedPet(t *testing.T) {
	rt := initRuntime(t)
	rt.addPet("rex")

	err := rt.bid(bidderAddr, 1, 200, 1100)
	assert.EqualError(t, err, "auction not active")
}

func TestBidAfterExpiry(t *testing.T) {
	rt := initRuntime(t)
	rt.addPet("rex")
	require.NoError(t, rt.listPet(1, 100, 3600, 1000))

	// endTime itself is already expired
	err := rt.bid(bidderAddr, 1, 200, 4600)
	assert.EqualError(t, err, "auction has ended")
}

func TestEndAuctionBeforeExpiry(t *testing.T) {
	rt := initRuntime(t)
	rt.addPet("rex")
	require.NoError(t, rt.listPet(1, 100, 3600, 1000))

	err := rt.endAuction(adminAddr, 1, 4599)
	assert.EqualError(t, err, "auction is still active")
}

func TestEndAuctionPaysAdmin(t *testing.T) {
	rt := initRuntime(t)
	rt.addPet("rex")
	require.NoError(t, rt.listPet(1, 100, 3600, 1000))
	require.NoError(t, rt.bid(bidderAddr, 1, 200, 1100))

	// anyone may settle an expired auction
	require.NoError(t, rt.endAuction(strangerAddr, 1, 4600))

	assert.Equal(t, big.NewInt(200), rt.state.GetBalance(adminAddr))
	assert.Zero(t, rt.state.GetBalance(dexpet.AuctionModuleAddr).Sign())

	pa := auction.GetAuctionGlobInst().GetAuctionList(rt.state).Get(1)
	assert.False(t, pa.IsOpen())

	pet := auction.GetAuctionGlobInst().GetPetList(rt.state).Get(1)
	assert.True(t, pet.Sold)
}

func TestEndAuctionWithoutBids(t *testing.T) {
	rt := initRuntime(t)
	rt.addPet("rex")
	require.NoError(t, rt.listPet(1, 100, 3600, 1000))

	require.NoError(t, rt.endAuction(adminAddr, 1, 4600))

	assert.Zero(t, rt.state.GetBalance(adminAddr).Sign())
	pet := auction.GetAuctionGlobInst().GetPetList(rt.state).Get(1)
	assert.False(t, pet.Sold)

	summaries := auction.GetAuctionGlobInst().GetSummaryList(rt.state)
	require.Equal(t, 1, summaries.Count())
	s := summaries.Summaries[0]
	assert.True(t, s.HighestBidder.IsZero())
	assert.Zero(t, s.HighestBid.Sign())
	assert.False(t, s.Sold)
}

func TestEndAuctionTwice(t *testing.T) {
	rt := initRuntime(t)
	rt.addPet("rex")
	require.NoError(t, rt.listPet(1, 100, 3600, 1000))
	require.NoError(t, rt.bid(bidderAddr, 1, 200, 1100))
	require.NoError(t, rt.endAuction(adminAddr, 1, 4600))

	err := rt.endAuction(adminAddr, 1, 4601)
	assert.EqualError(t, err, "auction not active")

	// the payout must not happen twice
	assert.Equal(t, big.NewInt(200), rt.state.GetBalance(adminAddr))
}

func TestRelistAfterSettlement(t *testing.T) {
	rt := initRuntime(t)
	rt.addPet("rex")
	require.NoError(t, rt.listPet(1, 100, 3600, 1000))
	require.NoError(t, rt.endAuction(adminAddr, 1, 4600))

	require.NoError(t, rt.listPet(1, 150, 3600, 5000))
	pa := auction.GetAuctionGlobInst().GetAuctionList(rt.state).Get(1)
	assert.True(t, pa.IsOpen())
	assert.Equal(t, big.NewInt(150), pa.StartingPrice)
	assert.Equal(t, uint32(0), pa.BidCount)
}

func TestTotalBidsCounter(t *testing.T) {
	rt := initRuntime(t)
	rt.addPet("rex")
	rt.addPet("bella")
	require.NoError(t, rt.listPet(1, 100, 3600, 1000))
	require.NoError(t, rt.listPet(2, 100, 3600, 1000))

	require.NoError(t, rt.bid(bidderAddr, 1, 200, 1100))
	require.NoError(t, rt.bid(rivalAddr, 1, 300, 1101))
	require.NoError(t, rt.bid(bidderAddr, 2, 400, 1102))

	assert.Equal(t, uint64(3), auction.GetAuctionGlobInst().GetTotalBids(rt.state))
}

func TestBidEmitsEventAndTransfer(t *testing.T) {
	rt := initRuntime(t)
	rt.addPet("rex")
	require.NoError(t, rt.listPet(1, 100, 3600, 1000))

	body := auction.NewBidBody(1, bidderAddr, big.NewInt(200), 0)
	output, err := rt.run(bidderAddr, body, 1100)
	require.NoError(t, err)

	events := output.GetEvents()
	require.Len(t, events, 1)
	assert.Equal(t, auction.BidPlacedEvent, events[0].Topics[0])

	transfers := output.GetTransfers()
	require.Len(t, transfers, 1)
	assert.Equal(t, bidderAddr, transfers[0].Sender)
	assert.Equal(t, dexpet.AuctionModuleAddr, transfers[0].Recipient)
	assert.Equal(t, big.NewInt(200), transfers[0].Amount)
}

func TestSummaryHistoryRetention(t *testing.T) {
	rt := initRuntime(t)
	petID := rt.addPet("rex")

	now := uint64(1000)
	for i := 0; i < dexpet.AUCTION_MAX_SUMMARIES+5; i++ {
		require.NoError(t, rt.listPet(petID, 100, 10, now))
		require.NoError(t, rt.endAuction(adminAddr, petID, now+10))
		now += 20
	}

	summaries := auction.GetAuctionGlobInst().GetSummaryList(rt.state)
	assert.Equal(t, dexpet.AUCTION_MAX_SUMMARIES, summaries.Count())
}
