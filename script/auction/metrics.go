// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	petsRegisteredCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pets_registered_total",
		Help: "Total number of pets registered",
	})
	auctionsOpenedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auctions_opened_total",
		Help: "Total number of auctions opened",
	})
	bidsPlacedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bids_placed_total",
		Help: "Total number of bids accepted",
	})
	auctionsClosedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auctions_closed_total",
		Help: "Total number of auctions settled",
	})
)

func init() {
	prometheus.Register(petsRegisteredCounter)
	prometheus.Register(auctionsOpenedCounter)
	prometheus.Register(bidsPlacedCounter)
	prometheus.Register(auctionsClosedCounter)
}
