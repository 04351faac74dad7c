// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/meterio/dexpet/dexpet"
	"github.com/meterio/dexpet/logdb"
)

type TopicSet struct {
	Topic0 *dexpet.Bytes32 `json:"topic0"`
	Topic1 *dexpet.Bytes32 `json:"topic1"`
	Topic2 *dexpet.Bytes32 `json:"topic2"`
	Topic3 *dexpet.Bytes32 `json:"topic3"`
	Topic4 *dexpet.Bytes32 `json:"topic4"`
}

// LogMeta pins a log entry to the call that produced it.
type LogMeta struct {
	Seq      uint64         `json:"seq"`
	Time     uint64         `json:"time"`
	TxID     dexpet.Bytes32 `json:"txID"`
	TxOrigin dexpet.Address `json:"txOrigin"`
}

// FilteredEvent only comes from the auction module
type FilteredEvent struct {
	Address dexpet.Address    `json:"address"`
	Topics  []*dexpet.Bytes32 `json:"topics"`
	Data    string            `json:"data"`
	Meta    LogMeta           `json:"meta"`
}

//convert a logdb.Event into a json format Event
func convertEvent(event *logdb.Event) *FilteredEvent {
	fe := FilteredEvent{
		Address: event.Address,
		Data:    hexutil.Encode(event.Data),
		Meta: LogMeta{
			Seq:      event.Seq,
			Time:     event.Time,
			TxID:     event.TxID,
			TxOrigin: event.TxOrigin,
		},
	}
	fe.Topics = make([]*dexpet.Bytes32, 0)
	for i := 0; i < 5; i++ {
		if event.Topics[i] != nil {
			fe.Topics = append(fe.Topics, event.Topics[i])
		}
	}
	return &fe
}

type EventCriteria struct {
	Address *dexpet.Address `json:"address"`
	TopicSet
}

type EventFilter struct {
	CriteriaSet []*EventCriteria `json:"criteriaSet"`
	Range       *logdb.Range     `json:"range"`
	Options     *logdb.Options   `json:"options"`
	Order       logdb.Order      `json:"order"`
}

func convertEventFilter(filter *EventFilter) *logdb.EventFilter {
	f := &logdb.EventFilter{
		Range:   filter.Range,
		Options: filter.Options,
		Order:   filter.Order,
	}
	if len(filter.CriteriaSet) > 0 {
		criterias := make([]*logdb.EventCriteria, len(filter.CriteriaSet))
		for i, criteria := range filter.CriteriaSet {
			var topics [5]*dexpet.Bytes32
			topics[0] = criteria.Topic0
			topics[1] = criteria.Topic1
			topics[2] = criteria.Topic2
			topics[3] = criteria.Topic3
			topics[4] = criteria.Topic4
			criteria := &logdb.EventCriteria{
				Address: criteria.Address,
				Topics:  topics,
			}
			criterias[i] = criteria
		}
		f.CriteriaSet = criterias
	}
	return f
}
