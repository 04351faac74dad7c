// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pets

import (
	"math/big"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/meterio/dexpet/api/utils"
	"github.com/meterio/dexpet/dexpet"
	"github.com/meterio/dexpet/node"
	"github.com/meterio/dexpet/script"
	"github.com/meterio/dexpet/script/auction"
	"github.com/pkg/errors"
)

type Pets struct {
	node *node.Node
}

func New(node *node.Node) *Pets {
	return &Pets{
		node,
	}
}

func (p *Pets) handleGetPets(w http.ResponseWriter, req *http.Request) error {
	list, err := p.node.GetPets()
	if err != nil {
		return err
	}
	pets := make([]*Pet, 0, len(list))
	for i := range list {
		pets = append(pets, convertPet(&list[i]))
	}
	return utils.WriteJSON(w, pets)
}

func (p *Pets) handleGetPet(w http.ResponseWriter, req *http.Request) error {
	id, err := petID(req)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	pet, err := p.node.GetPet(id)
	if err != nil {
		return utils.HTTPError(err, http.StatusNotFound)
	}
	return utils.WriteJSON(w, convertPet(pet))
}

func (p *Pets) handleGetPetAuction(w http.ResponseWriter, req *http.Request) error {
	id, err := petID(req)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	pa, err := p.node.GetAuction(id)
	if err != nil {
		return err
	}
	if pa == nil {
		return utils.HTTPError(errors.New("auction not found"), http.StatusNotFound)
	}
	return utils.WriteJSON(w, convertAuction(pa))
}

func (p *Pets) handleAddPet(w http.ResponseWriter, req *http.Request) error {
	var r AddPetRequest
	if err := utils.ParseJSON(req.Body, &r); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	body := auction.NewAddPetBody(r.Name, r.Breed, r.Color, (*big.Int)(r.BasePrice), r.Picture, r.YearOfBirth, r.Description, r.Category, r.Nonce)
	return p.submit(w, r.Origin, r.Nonce, body)
}

func (p *Pets) handleListPet(w http.ResponseWriter, req *http.Request) error {
	id, err := petID(req)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	var r ListPetRequest
	if err := utils.ParseJSON(req.Body, &r); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	body := auction.NewListPetBody(id, (*big.Int)(r.StartingPrice), r.Duration, r.Nonce)
	return p.submit(w, r.Origin, r.Nonce, body)
}

func (p *Pets) handleBid(w http.ResponseWriter, req *http.Request) error {
	id, err := petID(req)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	var r BidRequest
	if err := utils.ParseJSON(req.Body, &r); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	body := auction.NewBidBody(id, r.Origin, (*big.Int)(r.Amount), r.Nonce)
	return p.submit(w, r.Origin, r.Nonce, body)
}

func (p *Pets) handleEndAuction(w http.ResponseWriter, req *http.Request) error {
	id, err := petID(req)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	var r EndAuctionRequest
	if err := utils.ParseJSON(req.Body, &r); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	body := auction.NewEndAuctionBody(id, r.Nonce)
	return p.submit(w, r.Origin, r.Nonce, body)
}

func (p *Pets) submit(w http.ResponseWriter, origin dexpet.Address, nonce uint64, body *auction.AuctionBody) error {
	data, err := script.EncodeScriptData(body)
	if err != nil {
		return err
	}
	receipt, err := p.node.SubmitScript(origin, nonce, data)
	if err != nil {
		return utils.BadRequest(err)
	}
	return utils.WriteJSON(w, convertReceipt(receipt))
}

func petID(req *http.Request) (uint64, error) {
	return strconv.ParseUint(mux.Vars(req)["id"], 10, 64)
}

func (p *Pets) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(p.handleGetPets))
	sub.Path("").Methods("POST").HandlerFunc(utils.WrapHandlerFunc(p.handleAddPet))
	sub.Path("/{id}").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(p.handleGetPet))
	sub.Path("/{id}/auction").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(p.handleGetPetAuction))
	sub.Path("/{id}/list").Methods("POST").HandlerFunc(utils.WrapHandlerFunc(p.handleListPet))
	sub.Path("/{id}/bid").Methods("POST").HandlerFunc(utils.WrapHandlerFunc(p.handleBid))
	sub.Path("/{id}/end").Methods("POST").HandlerFunc(utils.WrapHandlerFunc(p.handleEndAuction))
}
