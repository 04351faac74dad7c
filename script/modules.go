// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package script

import (
	"fmt"

	"github.com/meterio/dexpet/script/auction"
	setypes "github.com/meterio/dexpet/script/types"
)

// Module a registered script module.
type Module struct {
	modName    string
	modID      uint32
	modHandler func(senv *setypes.ScriptEnv, payload []byte) (*setypes.ScriptEngineOutput, error)
}

func (m *Module) ToString() string {
	return fmt.Sprintf("%v: %v", m.modName, m.modID)
}

// Registry is the hub of all registered modules.
type Registry struct {
	Modules []Module
}

func (r *Registry) Register(m *Module) error {
	for _, mod := range r.Modules {
		if mod.modID == m.modID {
			return fmt.Errorf("module %v already registered", m.modID)
		}
	}
	r.Modules = append(r.Modules, *m)
	return nil
}

// Find find module with modID
func (r *Registry) Find(modID uint32) (*Module, bool) {
	for _, m := range r.Modules {
		if m.modID == modID {
			return &m, true
		}
	}
	return nil, false
}

func ModuleAuctionInit(se *ScriptEngine) *auction.Auction {
	a := auction.NewAuction()
	mod := &Module{
		modName:    "auction",
		modID:      AUCTION_MODULE_ID,
		modHandler: a.PrepareAuctionHandler(),
	}
	if err := se.modReg.Register(mod); err != nil {
		se.logger.Error("could not register auction module", "err", err)
	}
	a.Start()
	return a
}
