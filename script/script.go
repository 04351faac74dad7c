// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package script

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/meterio/dexpet/script/auction"
	setypes "github.com/meterio/dexpet/script/types"
	"github.com/meterio/dexpet/state"
)

var (
	ScriptGlobInst *ScriptEngine

	// ScriptPattern prefixes every piece of script data so that plain value
	// payloads can never be mistaken for module calls.
	ScriptPattern = [4]byte{0xde, 0xad, 0xca, 0xfe}
)

const (
	AUCTION_MODULE_ID = uint32(1001)
)

// ScriptHeader addresses the module a payload is dispatched to.
type ScriptHeader struct {
	Version uint32
	ModID   uint32
}

func (sh *ScriptHeader) GetVersion() uint32 { return sh.Version }
func (sh *ScriptHeader) GetModID() uint32   { return sh.ModID }
func (sh *ScriptHeader) ToString() string {
	return fmt.Sprintf("ScriptHeader:{ Version=%v, ModID=%v }", sh.Version, sh.ModID)
}

// Script pattern-stripped script data.
type Script struct {
	Header  ScriptHeader
	Payload []byte
}

// ScriptEngine dispatches script calls to registered modules and guards
// every call with a state checkpoint: a handler error reverts all of the
// call's state changes.
type ScriptEngine struct {
	stateCreator *state.Creator
	logger       *slog.Logger
	modReg       Registry
}

// Glob Instance
func GetScriptGlobInst() *ScriptEngine {
	return ScriptGlobInst
}

func SetScriptGlobInst(inst *ScriptEngine) {
	ScriptGlobInst = inst
}

func NewScriptEngine(stateCreator *state.Creator) *ScriptEngine {
	se := &ScriptEngine{
		stateCreator: stateCreator,
		logger:       slog.Default().With("pkg", "se"),
	}
	SetScriptGlobInst(se)

	// start all sub modules
	se.StartAllModules()
	return se
}

func (se *ScriptEngine) StartAllModules() {
	ModuleAuctionInit(se)
}

// HandleScriptData executes one script call against the env's state.
// The whole call either commits or leaves no trace.
func (se *ScriptEngine) HandleScriptData(senv *setypes.ScriptEnv, data []byte) (seOutput *setypes.ScriptEngineOutput, err error) {
	if len(data) < len(ScriptPattern) || !bytes.Equal(data[:len(ScriptPattern)], ScriptPattern[:]) {
		return nil, fmt.Errorf("pattern mismatch, pattern = %v", hex.EncodeToString(data[:min(len(data), len(ScriptPattern))]))
	}
	script, err := DecodeScriptData(data[len(ScriptPattern):])
	if err != nil {
		se.logger.Error("decode script message failed", "err", err)
		return nil, err
	}

	header := script.Header

	mod, find := se.modReg.Find(header.GetModID())
	if !find {
		err := fmt.Errorf("could not address module %v", header.GetModID())
		se.logger.Error("module lookup failed", "err", err)
		return nil, err
	}

	st := senv.GetState()
	checkpoint := st.NewCheckpoint()
	seOutput, err = mod.modHandler(senv, script.Payload)
	if err != nil || st.Err() != nil {
		st.RevertTo(checkpoint)
		if err == nil {
			err = st.Err()
		}
		return nil, err
	}
	return seOutput, nil
}

// EncodeScriptData wraps a module body into pattern-prefixed script data.
func EncodeScriptData(body interface{}) ([]byte, error) {
	modId := uint32(999)
	switch body.(type) {
	case auction.AuctionBody, *auction.AuctionBody:
		modId = AUCTION_MODULE_ID
	default:
		return nil, fmt.Errorf("unknown script body type %T", body)
	}

	payload, err := rlp.EncodeToBytes(body)
	if err != nil {
		return nil, err
	}
	s := &Script{
		Header: ScriptHeader{
			Version: 0,
			ModID:   modId,
		},
		Payload: payload,
	}
	data, err := rlp.EncodeToBytes(s)
	if err != nil {
		return nil, err
	}
	return append(ScriptPattern[:], data...), nil
}

func DecodeScriptData(data []byte) (*Script, error) {
	s := Script{}
	if err := rlp.DecodeBytes(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
