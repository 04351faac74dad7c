// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/meterio/dexpet/dexpet"
	"github.com/meterio/dexpet/logdb"
	"github.com/meterio/dexpet/tx"
	"github.com/meterio/dexpet/xenv"
	"github.com/stretchr/testify/assert"
)

func TestEvents(t *testing.T) {
	db, err := logdb.NewMem()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	txEvent := &tx.Event{
		Address: dexpet.BytesToAddress([]byte("addr")),
		Topics:  []dexpet.Bytes32{dexpet.BytesToBytes32([]byte("topic0")), dexpet.BytesToBytes32([]byte("topic1"))},
		Data:    []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 97, 48},
	}

	for i := 0; i < 100; i++ {
		blockCtx := &xenv.BlockContext{Number: uint64(i), Time: uint64(1000 + i)}
		if err := db.Prepare(blockCtx).ForTransaction(dexpet.BytesToBytes32([]byte("txID")), dexpet.BytesToAddress([]byte("txOrigin"))).
			Insert(tx.Events{txEvent}, nil).Commit(); err != nil {
			t.Fatal(err)
		}
	}

	limit := 5
	t0 := dexpet.BytesToBytes32([]byte("topic0"))
	t1 := dexpet.BytesToBytes32([]byte("topic1"))
	addr := dexpet.BytesToAddress([]byte("addr"))
	es, err := db.FilterEvents(context.Background(), &logdb.EventFilter{
		Range: &logdb.Range{
			Unit: logdb.Seq,
			From: 0,
			To:   10,
		},
		Options: &logdb.Options{
			Offset: 0,
			Limit:  uint64(limit),
		},
		Order: logdb.DESC,
		CriteriaSet: []*logdb.EventCriteria{
			{
				Address: &addr,
				Topics:  [5]*dexpet.Bytes32{nil, nil, nil, nil, nil},
			},
			{
				Address: &addr,
				Topics:  [5]*dexpet.Bytes32{&t0, &t1, nil, nil, nil},
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, len(es), limit, "limit should be equal")
	assert.Equal(t, uint64(10), es[0].Seq, "descending order starts at range end")
}

func TestTransfers(t *testing.T) {
	db, err := logdb.NewMem()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	from := dexpet.BytesToAddress([]byte("from"))
	to := dexpet.BytesToAddress([]byte("to"))
	value := big.NewInt(10)
	count := 100
	for i := 0; i < count; i++ {
		transLog := &tx.Transfer{
			Sender:    from,
			Recipient: to,
			Amount:    value,
		}
		blockCtx := &xenv.BlockContext{Number: uint64(i), Time: uint64(1000 + i)}
		if err := db.Prepare(blockCtx).ForTransaction(dexpet.Bytes32{}, from).Insert(nil, tx.Transfers{transLog}).
			Commit(); err != nil {
			t.Fatal(err)
		}
	}

	tf := &logdb.TransferFilter{
		CriteriaSet: []*logdb.TransferCriteria{
			{
				TxOrigin:  &from,
				Recipient: &to,
			},
		},
		Range: &logdb.Range{
			Unit: logdb.Seq,
			From: 0,
			To:   1000,
		},
		Options: &logdb.Options{
			Offset: 0,
			Limit:  uint64(count),
		},
		Order: logdb.DESC,
	}
	ts, err := db.FilterTransfers(context.Background(), tf)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, len(ts), count, "transfers searched")
}

func TestFilterByTime(t *testing.T) {
	db, err := logdb.NewMem()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	addr := dexpet.BytesToAddress([]byte("addr"))
	for i := 0; i < 10; i++ {
		txEvent := &tx.Event{
			Address: addr,
			Topics:  []dexpet.Bytes32{dexpet.BytesToBytes32([]byte("topic0"))},
			Data:    []byte("data"),
		}
		blockCtx := &xenv.BlockContext{Number: uint64(i), Time: uint64(2000 + i*10)}
		if err := db.Prepare(blockCtx).ForTransaction(dexpet.BytesToBytes32([]byte("txID")), addr).
			Insert(tx.Events{txEvent}, nil).Commit(); err != nil {
			t.Fatal(err)
		}
	}

	es, err := db.FilterEvents(context.Background(), &logdb.EventFilter{
		Range: &logdb.Range{
			Unit: logdb.Time,
			From: 2000,
			To:   2030,
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 4, len(es), "time ranged events")
}
