// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"encoding/binary"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/beevik/ntp"
	lru "github.com/hashicorp/golang-lru"
	"github.com/meterio/dexpet/co"
	"github.com/meterio/dexpet/dexpet"
	"github.com/meterio/dexpet/genesis"
	"github.com/meterio/dexpet/logdb"
	"github.com/meterio/dexpet/lvldb"
	"github.com/meterio/dexpet/script"
	setypes "github.com/meterio/dexpet/script/types"
	"github.com/meterio/dexpet/state"
	"github.com/meterio/dexpet/tx"
	"github.com/meterio/dexpet/xenv"
)

const seenCallCacheSize = 65536

var (
	callSeqKey        = []byte("call-sequence")
	genesisAppliedKey = []byte("genesis-applied")

	errKnownCall = errors.New("known script call")
)

// CallReceipt what one committed script call left behind.
type CallReceipt struct {
	Seq       uint64
	Time      uint64
	TxID      dexpet.Bytes32
	TxOrigin  dexpet.Address
	Output    []byte
	Events    tx.Events
	Transfers tx.Transfers
}

// Node is the single writer of the marketplace. Script calls are
// serialized through SubmitScript; reads run against the committed
// state at any time.
type Node struct {
	logger  *slog.Logger
	network string
	kv      *lvldb.LevelDB
	stateC  *state.Creator
	engine  *script.ScriptEngine
	logDB   *logdb.LogDB

	lock sync.Mutex // guards seq and the commit pipeline
	seq  uint64
	seen *lru.Cache

	goes  co.Goes
	subMu sync.RWMutex
	subs  map[chan *CallReceipt]struct{}
}

// New opens a node over the given key-value store and log db, applying
// the genesis state on first launch.
func New(kv *lvldb.LevelDB, logDB *logdb.LogDB, gene *genesis.Genesis) (*Node, error) {
	stateC := state.NewCreator(kv)

	applied, err := kv.Has(genesisAppliedKey)
	if err != nil {
		return nil, err
	}
	if !applied {
		if err := gene.Build(stateC); err != nil {
			return nil, err
		}
		if err := kv.Put(genesisAppliedKey, []byte{1}); err != nil {
			return nil, err
		}
	}

	seq := uint64(0)
	if raw, err := kv.Get(callSeqKey); err == nil {
		seq = binary.BigEndian.Uint64(raw)
	} else if !kv.IsNotFound(err) {
		return nil, err
	}

	seen, err := lru.New(seenCallCacheSize)
	if err != nil {
		return nil, err
	}

	n := &Node{
		logger:  slog.Default().With("pkg", "node"),
		network: gene.Name(),
		kv:      kv,
		stateC:  stateC,
		engine:  script.NewScriptEngine(stateC),
		logDB:   logDB,
		seq:     seq,
		seen:    seen,
		subs:    make(map[chan *CallReceipt]struct{}),
	}
	n.goes.Go(n.checkClockOffset)
	return n, nil
}

// SubmitScript executes one script call and commits it. Calls are fully
// serialized; a failed call leaves no state behind. The origin and nonce
// identify the call, a repeated pair is rejected.
func (n *Node) SubmitScript(origin dexpet.Address, nonce uint64, data []byte) (*CallReceipt, error) {
	n.lock.Lock()
	defer n.lock.Unlock()

	txID := callID(origin, nonce)
	if n.seen.Contains(txID) {
		return nil, errKnownCall
	}

	st, err := n.stateC.NewState()
	if err != nil {
		return nil, err
	}

	blockCtx := &xenv.BlockContext{
		Number: n.seq + 1,
		Time:   uint64(time.Now().Unix()),
	}
	txCtx := &xenv.TransactionContext{
		ID:     txID,
		Origin: origin,
		Nonce:  nonce,
	}
	senv := setypes.NewScriptEnv(st, blockCtx, txCtx, &dexpet.AuctionModuleAddr)

	output, err := n.engine.HandleScriptData(senv, data)
	if err != nil {
		return nil, err
	}
	if err := st.Commit(); err != nil {
		return nil, err
	}

	n.seq = blockCtx.Number
	seqRaw := make([]byte, 8)
	binary.BigEndian.PutUint64(seqRaw, n.seq)
	if err := n.kv.Put(callSeqKey, seqRaw); err != nil {
		return nil, err
	}
	n.seen.Add(txID, true)

	receipt := &CallReceipt{
		Seq:       blockCtx.Number,
		Time:      blockCtx.Time,
		TxID:      txID,
		TxOrigin:  origin,
		Output:    output.GetData(),
		Events:    output.GetEvents(),
		Transfers: output.GetTransfers(),
	}

	if err := n.logDB.Prepare(blockCtx).ForTransaction(txID, origin).
		Insert(receipt.Events, receipt.Transfers).Commit(); err != nil {
		n.logger.Warn("could not write logs", "seq", receipt.Seq, "err", err)
	}

	n.publish(receipt)
	return receipt, nil
}

// Subscribe registers a receipt stream. The returned cancel func must be
// called to release it.
func (n *Node) Subscribe() (<-chan *CallReceipt, func()) {
	ch := make(chan *CallReceipt, 16)
	n.subMu.Lock()
	n.subs[ch] = struct{}{}
	n.subMu.Unlock()

	cancel := func() {
		n.subMu.Lock()
		if _, ok := n.subs[ch]; ok {
			delete(n.subs, ch)
			close(ch)
		}
		n.subMu.Unlock()
	}
	return ch, cancel
}

func (n *Node) publish(receipt *CallReceipt) {
	n.subMu.RLock()
	defer n.subMu.RUnlock()
	for ch := range n.subs {
		select {
		case ch <- receipt:
		default:
			// slow subscriber, drop
		}
	}
}

// Wait blocks until background work has drained.
func (n *Node) Wait() {
	n.goes.Wait()
}

// Network returns the genesis network name.
func (n *Node) Network() string {
	return n.network
}

// Seq returns the sequence number of the last committed call.
func (n *Node) Seq() uint64 {
	n.lock.Lock()
	defer n.lock.Unlock()
	return n.seq
}

func (n *Node) checkClockOffset() {
	resp, err := ntp.Query("ap.pool.ntp.org")
	if err != nil {
		n.logger.Debug("failed to access NTP", "err", err)
		return
	}
	if resp.ClockOffset > time.Second/2 || resp.ClockOffset < -time.Second/2 {
		n.logger.Warn("clock offset detected", "offset", dexpet.PrettyDuration(resp.ClockOffset))
	}
}

func callID(origin dexpet.Address, nonce uint64) dexpet.Bytes32 {
	nonceRaw := make([]byte, 8)
	binary.BigEndian.PutUint64(nonceRaw, nonce)
	return dexpet.Blake2b(origin.Bytes(), nonceRaw)
}
