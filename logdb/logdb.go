// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"
	"fmt"
	"math/big"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/meterio/dexpet/dexpet"
	"github.com/meterio/dexpet/tx"
	"github.com/meterio/dexpet/xenv"
)

const (
	eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	seq INTEGER NOT NULL,
	eventIndex INTEGER NOT NULL,
	eventTime INTEGER NOT NULL,
	txID BLOB(32) NOT NULL,
	txOrigin BLOB(20) NOT NULL,
	address BLOB(20) NOT NULL,
	topic0 BLOB(32),
	topic1 BLOB(32),
	topic2 BLOB(32),
	topic3 BLOB(32),
	topic4 BLOB(32),
	data BLOB,
	PRIMARY KEY (seq, eventIndex));
CREATE INDEX IF NOT EXISTS event_topic0 ON event(topic0);
CREATE INDEX IF NOT EXISTS event_address ON event(address);`

	transferTableSchema = `CREATE TABLE IF NOT EXISTS transfer (
	seq INTEGER NOT NULL,
	transferIndex INTEGER NOT NULL,
	transferTime INTEGER NOT NULL,
	txID BLOB(32) NOT NULL,
	txOrigin BLOB(20) NOT NULL,
	sender BLOB(20) NOT NULL,
	recipient BLOB(20) NOT NULL,
	amount BLOB,
	token INTEGER NOT NULL,
	PRIMARY KEY (seq, transferIndex));
CREATE INDEX IF NOT EXISTS transfer_sender ON transfer(sender);
CREATE INDEX IF NOT EXISTS transfer_recipient ON transfer(recipient);`
)

type LogDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

var (
	GlobalLogDBInstance *LogDB
)

func setGlobalLogDBInstance(db *LogDB) {
	GlobalLogDBInstance = db
}

func GetGlobalLogDBInstance() *LogDB {
	return GlobalLogDBInstance
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			err := db.Close()
			if err != nil {
				fmt.Println("could not close logdb error:", err)
			}
		}
	}()
	if _, err := db.Exec(eventTableSchema + transferTableSchema); err != nil {
		return nil, err
	}

	driverVer, _, _ := sqlite3.Version()
	logdbInstance := &LogDB{
		path,
		db,
		driverVer,
	}
	setGlobalLogDBInstance(logdbInstance)
	return logdbInstance, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() {
	err := db.db.Close()
	if err != nil {
		fmt.Println("could not close logdb error:", err)
	}
}

func (db *LogDB) Path() string {
	return db.path
}

// Prepare starts a batch for one script call, identified by the call
// sequence and timestamp of its block context.
func (db *LogDB) Prepare(blockCtx *xenv.BlockContext) *CallBatch {
	return &CallBatch{
		db:       db.db,
		blockCtx: blockCtx,
	}
}

func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	if filter == nil {
		return db.queryEvents(ctx, "SELECT * FROM event")
	}
	var args []interface{}
	stmt := "SELECT * FROM event WHERE 1"
	condition := "seq"
	if filter.Range != nil {
		if filter.Range.Unit == Time {
			condition = "eventTime"
		}
		args = append(args, filter.Range.From)
		stmt += " AND " + condition + " >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND " + condition + " <= ? "
		}
	}
	for i, criteria := range filter.CriteriaSet {
		if i == 0 {
			stmt += " AND ( 1"
		} else {
			stmt += " OR ( 1"
		}
		if criteria.Address != nil {
			args = append(args, criteria.Address.Bytes())
			stmt += " AND address = ? "
		}
		for j, topic := range criteria.Topics {
			if topic != nil {
				args = append(args, topic.Bytes())
				stmt += fmt.Sprintf(" AND topic%v = ?", j)
			}
		}
		stmt += ")"
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC,eventIndex DESC "
	} else {
		stmt += " ORDER BY seq ASC,eventIndex ASC "
	}

	if filter.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryEvents(ctx, stmt, args...)
}

func (db *LogDB) FilterTransfers(ctx context.Context, filter *TransferFilter) ([]*Transfer, error) {
	if filter == nil {
		return db.queryTransfers(ctx, "SELECT * FROM transfer")
	}
	var args []interface{}
	stmt := "SELECT * FROM transfer WHERE 1"
	condition := "seq"
	if filter.Range != nil {
		if filter.Range.Unit == Time {
			condition = "transferTime"
		}
		args = append(args, filter.Range.From)
		stmt += " AND " + condition + " >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND " + condition + " <= ? "
		}
	}
	if filter.TxID != nil {
		args = append(args, filter.TxID.Bytes())
		stmt += " AND txID = ? "
	}
	length := len(filter.CriteriaSet)
	if length > 0 {
		for i, criteria := range filter.CriteriaSet {
			if i == 0 {
				stmt += " AND (( 1 "
			} else {
				stmt += " OR ( 1 "
			}
			if criteria.TxOrigin != nil {
				args = append(args, criteria.TxOrigin.Bytes())
				stmt += " AND txOrigin = ? "
			}
			if criteria.Sender != nil {
				args = append(args, criteria.Sender.Bytes())
				stmt += " AND sender = ? "
			}
			if criteria.Recipient != nil {
				args = append(args, criteria.Recipient.Bytes())
				stmt += " AND recipient = ? "
			}
			if i == length-1 {
				stmt += " )) "
			} else {
				stmt += " ) "
			}
		}
	}
	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC,transferIndex DESC "
	} else {
		stmt += " ORDER BY seq ASC,transferIndex ASC "
	}
	if filter.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryTransfers(ctx, stmt, args...)
}

func (db *LogDB) queryEvents(ctx context.Context, stmt string, args ...interface{}) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq       uint64
			index     uint32
			eventTime uint64
			txID      []byte
			txOrigin  []byte
			address   []byte
			topics    [5][]byte
			data      []byte
		)
		if err := rows.Scan(
			&seq,
			&index,
			&eventTime,
			&txID,
			&txOrigin,
			&address,
			&topics[0],
			&topics[1],
			&topics[2],
			&topics[3],
			&topics[4],
			&data,
		); err != nil {
			return nil, err
		}
		event := &Event{
			Seq:      seq,
			Index:    index,
			Time:     eventTime,
			TxID:     dexpet.BytesToBytes32(txID),
			TxOrigin: dexpet.BytesToAddress(txOrigin),
			Address:  dexpet.BytesToAddress(address),
			Data:     data,
		}
		for i, topic := range topics {
			if len(topic) > 0 {
				h := dexpet.BytesToBytes32(topic)
				event.Topics[i] = &h
			}
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (db *LogDB) queryTransfers(ctx context.Context, stmt string, args ...interface{}) ([]*Transfer, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var transfers []*Transfer
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq          uint64
			index        uint32
			transferTime uint64
			txID         []byte
			txOrigin     []byte
			sender       []byte
			recipient    []byte
			amount       []byte
			token        uint32
		)
		if err := rows.Scan(
			&seq,
			&index,
			&transferTime,
			&txID,
			&txOrigin,
			&sender,
			&recipient,
			&amount,
			&token,
		); err != nil {
			return nil, err
		}
		trans := &Transfer{
			Seq:       seq,
			Index:     index,
			Time:      transferTime,
			TxID:      dexpet.BytesToBytes32(txID),
			TxOrigin:  dexpet.BytesToAddress(txOrigin),
			Sender:    dexpet.BytesToAddress(sender),
			Recipient: dexpet.BytesToAddress(recipient),
			Amount:    new(big.Int).SetBytes(amount),
			Token:     token,
		}
		transfers = append(transfers, trans)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transfers, nil
}

func topicValue(topic *dexpet.Bytes32) []byte {
	if topic == nil {
		return nil
	}
	return topic.Bytes()
}

type CallBatch struct {
	db        *sql.DB
	blockCtx  *xenv.BlockContext
	events    []*Event
	transfers []*Transfer
}

func (cb *CallBatch) execInTx(proc func(*sql.Tx) error) (err error) {
	tx, err := cb.db.Begin()
	if err != nil {
		return err
	}
	if err := proc(tx); err != nil {
		e := tx.Rollback()
		if e != nil {
			fmt.Println("could not rollback, error:", e)
		}

		return err
	}
	return tx.Commit()
}

func (cb *CallBatch) Commit() error {
	return cb.execInTx(func(tx *sql.Tx) error {
		for _, event := range cb.events {
			if _, err := tx.Exec("INSERT OR REPLACE INTO event(seq ,eventIndex, eventTime ,txID ,txOrigin ,address ,topic0 ,topic1 ,topic2 ,topic3 ,topic4, data) VALUES ( ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);",
				event.Seq,
				event.Index,
				event.Time,
				event.TxID.Bytes(),
				event.TxOrigin.Bytes(),
				event.Address.Bytes(),
				topicValue(event.Topics[0]),
				topicValue(event.Topics[1]),
				topicValue(event.Topics[2]),
				topicValue(event.Topics[3]),
				topicValue(event.Topics[4]),
				event.Data,
			); err != nil {
				return err
			}
		}

		for _, transfer := range cb.transfers {
			if _, err := tx.Exec("INSERT OR REPLACE INTO transfer(seq ,transferIndex, transferTime ,txID ,txOrigin ,sender ,recipient ,amount, token) VALUES ( ?, ?, ?, ?, ?, ?, ?, ?, ?);",
				transfer.Seq,
				transfer.Index,
				transfer.Time,
				transfer.TxID.Bytes(),
				transfer.TxOrigin.Bytes(),
				transfer.Sender.Bytes(),
				transfer.Recipient.Bytes(),
				transfer.Amount.Bytes(),
				transfer.Token,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (cb *CallBatch) ForTransaction(txID dexpet.Bytes32, txOrigin dexpet.Address) struct {
	Insert func(tx.Events, tx.Transfers) *CallBatch
} {
	return struct {
		Insert func(events tx.Events, transfers tx.Transfers) *CallBatch
	}{
		func(events tx.Events, transfers tx.Transfers) *CallBatch {
			for _, event := range events {
				cb.events = append(cb.events, newEvent(cb.blockCtx, uint32(len(cb.events)), txID, txOrigin, event))
			}
			for _, transfer := range transfers {
				cb.transfers = append(cb.transfers, newTransfer(cb.blockCtx, uint32(len(cb.transfers)), txID, txOrigin, transfer))
			}
			return cb
		},
	}
}
