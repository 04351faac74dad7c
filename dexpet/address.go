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

// Address represents a 20-byte caller or module account identity.
type Address [20]byte

var zeroAddress Address

// BytesToAddress converts bytes slice into address.
// If b is larger than address legal length, b will be cropped (from the left).
// If b is smaller, the padding will be added to the left (zero leading).
func BytesToAddress(b []byte) Address {
	var addr Address
	if len(b) > len(addr) {
		b = b[len(b)-len(addr):]
	}
	copy(addr[len(addr)-len(b):], b)
	return addr
}

// ParseAddress convert string presented address into Address type.
func ParseAddress(s string) (Address, error) {
	if len(s) == len(zeroAddress)*2 {
		// no prefix
	} else if len(s) == len(zeroAddress)*2+2 {
		if strings.ToLower(s[:2]) != "0x" {
			return Address{}, errors.New("invalid prefix")
		}
		s = s[2:]
	} else {
		return Address{}, errors.New("invalid length")
	}

	var addr Address
	_, err := hex.Decode(addr[:], []byte(s))
	if err != nil {
		return Address{}, err
	}
	return addr, nil
}

// MustParseAddress convert string presented address into Address type, panic on error.
func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

// String implements the stringer interface
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// AbbrevString returns the abbrev string presentation of address
func (a Address) AbbrevString() string {
	return fmt.Sprintf("0x%x..%x", a[:4], a[18:])
}

// Bytes returns bytes presentation of address
func (a Address) Bytes() []byte {
	return a[:]
}

// IsZero returns if address is all zero bytes
func (a Address) IsZero() bool {
	return a == zeroAddress
}

// MarshalJSON implements json.Marshaler.
func (a Address) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%v"`, a)), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Address) UnmarshalJSON(data []byte) error {
	var hex string
	if err := json.Unmarshal(data, &hex); err != nil {
		return err
	}
	parsed, err := ParseAddress(hex)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
