// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/meterio/dexpet/api/utils"
	"github.com/meterio/dexpet/dexpet"
	"github.com/meterio/dexpet/node"
)

type Status struct {
	Network   string         `json:"network"`
	Seq       uint64         `json:"seq"`
	Admin     dexpet.Address `json:"admin"`
	TotalBids uint64         `json:"totalBids"`
}

type Node struct {
	node *node.Node
}

func New(node *node.Node) *Node {
	return &Node{
		node,
	}
}

func (n *Node) handleGetStatus(w http.ResponseWriter, req *http.Request) error {
	admin, err := n.node.GetAdmin()
	if err != nil {
		return err
	}
	totalBids, err := n.node.GetTotalBids()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Status{
		Network:   n.node.Network(),
		Seq:       n.node.Seq(),
		Admin:     admin,
		TotalBids: totalBids,
	})
}

func (n *Node) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/status").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(n.handleGetStatus))
}
