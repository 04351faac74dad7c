// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"errors"
	"log/slog"
	"time"

	"github.com/meterio/dexpet/dexpet"
	setypes "github.com/meterio/dexpet/script/types"
)

var (
	AuctionGlobInst *Auction

	errOnlyOwner        = errors.New("permission denied, only owner")
	errPetNotFound      = errors.New("pet not found")
	errPetIsInOpenBid   = errors.New("pet is in an open bid, close it first")
	errAuctionNotActive = errors.New("auction not active")
	errAuctionIsActive  = errors.New("auction is still active")
	errAuctionHasEnded  = errors.New("auction has ended")
	errBidTooLow        = errors.New("bid too low")
	errNotEnoughBalance = errors.New("not enough balance")
	errBidderMismatch   = errors.New("bidder address is not the same as transaction origin")
)

// Auction is the pet auction module. It owns the pet registry, the open
// auction table and the settled auction history, all stored under the
// auction module account.
type Auction struct {
	logger *slog.Logger
}

func GetAuctionGlobInst() *Auction {
	return AuctionGlobInst
}

func SetAuctionGlobInst(inst *Auction) {
	AuctionGlobInst = inst
}

func NewAuction() *Auction {
	auction := &Auction{
		logger: slog.Default().With("pkg", "auction"),
	}
	SetAuctionGlobInst(auction)
	return auction
}

func (a *Auction) Start() error {
	a.logger.Info("auction module started")
	return nil
}

// PrepareAuctionHandler returns the dispatch entry used by the script
// engine. Owner-gated opcodes are checked here against the administrator
// recorded in state; everything else is the handler's business.
func (a *Auction) PrepareAuctionHandler() func(env *setypes.ScriptEnv, payload []byte) (*setypes.ScriptEngineOutput, error) {
	return func(env *setypes.ScriptEnv, payload []byte) (*setypes.ScriptEngineOutput, error) {
		start := time.Now()

		ab, err := AuctionDecodeFromBytes(payload)
		if err != nil {
			a.logger.Error("decode auction body failed", "err", err)
			return nil, err
		}

		a.logger.Debug("received auction call", "body", ab.ToString())

		admin := GetAdminAddress(env.GetState())
		switch ab.Opcode {
		case dexpet.OP_ADDPET:
			if env.GetTxCtx().Origin != admin {
				return nil, errOnlyOwner
			}
			err = a.AddPet(env, ab)

		case dexpet.OP_LISTPET:
			if env.GetTxCtx().Origin != admin {
				return nil, errOnlyOwner
			}
			err = a.ListPetForAuction(env, ab)

		case dexpet.OP_BID:
			if env.GetTxCtx().Origin != ab.Bidder {
				return nil, errBidderMismatch
			}
			err = a.HandleBid(env, ab)

		case dexpet.OP_ENDAUCTION:
			// settlement is deliberately permissionless
			err = a.EndAuction(env, ab)

		default:
			a.logger.Error("unknown opcode", "opcode", ab.Opcode)
			return nil, errors.New("unknown auction opcode")
		}
		if err != nil {
			return nil, err
		}
		a.logger.Debug("leaving auction handler", "op", dexpet.GetOpName(ab.Opcode), "elapsed", dexpet.PrettyDuration(time.Since(start)))
		return env.GetOutput(), nil
	}
}
