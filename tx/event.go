// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import "github.com/meterio/dexpet/dexpet"

// Event represents a signal emitted by a module operation.
type Event struct {
	Address dexpet.Address
	Topics  []dexpet.Bytes32
	Data    []byte
}

// Events slice of event logs.
type Events []*Event
