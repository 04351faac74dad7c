// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/meterio/dexpet/dexpet"
	"github.com/meterio/dexpet/state"
)

// Genesis seeds a fresh state: the marketplace administrator plus any
// pre-funded accounts. Applied once, before the first script call.
type Genesis struct {
	name  string
	admin dexpet.Address
	procs []func(state *state.State) error
}

func (g *Genesis) Name() string {
	return g.name
}

func (g *Genesis) Admin() dexpet.Address {
	return g.admin
}

// Build applies the genesis state and commits it.
func (g *Genesis) Build(stateCreator *state.Creator) error {
	st, err := stateCreator.NewState()
	if err != nil {
		return err
	}
	for _, proc := range g.procs {
		if err := proc(st); err != nil {
			return err
		}
	}
	if err := st.Err(); err != nil {
		return err
	}
	return st.Commit()
}

type Builder struct {
	name  string
	admin dexpet.Address
	procs []func(state *state.State) error
}

func (b *Builder) Name(name string) *Builder {
	b.name = name
	return b
}

func (b *Builder) Admin(admin dexpet.Address) *Builder {
	b.admin = admin
	return b
}

func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.procs = append(b.procs, proc)
	return b
}

func (b *Builder) Build() *Genesis {
	return &Genesis{
		name:  b.name,
		admin: b.admin,
		procs: b.procs,
	}
}
