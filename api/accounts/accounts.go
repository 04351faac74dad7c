// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/meterio/dexpet/api/utils"
	"github.com/meterio/dexpet/dexpet"
	"github.com/meterio/dexpet/node"
	"github.com/pkg/errors"
)

type Account struct {
	Balance *math.HexOrDecimal256 `json:"balance"`
}

type Accounts struct {
	node *node.Node
}

func New(node *node.Node) *Accounts {
	return &Accounts{
		node,
	}
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := dexpet.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	balance, err := a.node.GetBalance(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Account{Balance: (*math.HexOrDecimal256)(balance)})
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/{address}").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
}
