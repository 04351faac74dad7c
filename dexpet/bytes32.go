// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dexpet

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Bytes32 array of 32 bytes, mainly used as hash and storage key type.
type Bytes32 [32]byte

var zeroBytes32 Bytes32

// BytesToBytes32 converts bytes slice into Bytes32.
// If b is larger than Bytes32 legal length, b will be cropped (from the left).
// If b is smaller, the padding will be added to the left (zero leading).
func BytesToBytes32(b []byte) Bytes32 {
	var b32 Bytes32
	if len(b) > len(b32) {
		b = b[len(b)-len(b32):]
	}
	copy(b32[len(b32)-len(b):], b)
	return b32
}

// ParseBytes32 convert string presented into Bytes32 type.
func ParseBytes32(s string) (Bytes32, error) {
	if len(s) == len(zeroBytes32)*2 {
		// no prefix
	} else if len(s) == len(zeroBytes32)*2+2 {
		if strings.ToLower(s[:2]) != "0x" {
			return Bytes32{}, errors.New("invalid prefix")
		}
		s = s[2:]
	} else {
		return Bytes32{}, errors.New("invalid length")
	}

	var b32 Bytes32
	_, err := hex.Decode(b32[:], []byte(s))
	if err != nil {
		return Bytes32{}, err
	}
	return b32, nil
}

// MustParseBytes32 convert string presented into Bytes32 type, panic on error.
func MustParseBytes32(s string) Bytes32 {
	b32, err := ParseBytes32(s)
	if err != nil {
		panic(err)
	}
	return b32
}

// String implements stringer
func (b Bytes32) String() string {
	return "0x" + hex.EncodeToString(b[:])
}

// AbbrevString returns abbrev string presentation
func (b Bytes32) AbbrevString() string {
	return fmt.Sprintf("0x%x..%x", b[:4], b[28:])
}

// Bytes returns byte slice presentation
func (b Bytes32) Bytes() []byte {
	return b[:]
}

// IsZero returns if Bytes32 has all zero bytes
func (b Bytes32) IsZero() bool {
	return b == zeroBytes32
}

// MarshalJSON implements json.Marshaler.
func (b Bytes32) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%v"`, b)), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Bytes32) UnmarshalJSON(data []byte) error {
	var hex string
	if err := json.Unmarshal(data, &hex); err != nil {
		return err
	}
	parsed, err := ParseBytes32(hex)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
