// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/meterio/dexpet/api/utils"
	"github.com/meterio/dexpet/dexpet"
	"github.com/meterio/dexpet/node"
	"github.com/pkg/errors"
)

type Auction struct {
	node *node.Node
}

func New(node *node.Node) *Auction {
	return &Auction{
		node,
	}
}

func (at *Auction) handleGetSummaries(w http.ResponseWriter, req *http.Request) error {
	list, err := at.node.GetSummaries()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertSummaryList(list))
}

func (at *Auction) handleGetSummaryByID(w http.ResponseWriter, req *http.Request) error {
	list, err := at.node.GetSummaries()
	if err != nil {
		return err
	}
	id, err := dexpet.ParseBytes32(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	for i := range list {
		if list[i].AuctionID == id {
			return utils.WriteJSON(w, convertSummary(&list[i]))
		}
	}
	return utils.HTTPError(errors.New("summary not found"), http.StatusNotFound)
}

func (at *Auction) handleGetTotalBids(w http.ResponseWriter, req *http.Request) error {
	total, err := at.node.GetTotalBids()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &TotalBids{TotalBids: total})
}

func (at *Auction) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/summaries").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(at.handleGetSummaries))
	sub.Path("/summaries/{id}").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(at.handleGetSummaryByID))
	sub.Path("/totalbids").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(at.handleGetTotalBids))
}
