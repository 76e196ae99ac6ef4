/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package checksum

import (
	"encoding/binary"
)

const (
	// Crc16Poly is the CRC-16/CCITT generator polynomial
	Crc16Poly = 0x1021
	// Crc16Init is the initial register value, no reflection, no final xor
	Crc16Init = 0xffff
)

type Scheme int

const (
	SchemeSum8 Scheme = iota
	SchemeCrc16
)

func (s Scheme) String() string {
	switch s {
	case SchemeSum8:
		return "sum8"
	case SchemeCrc16:
		return "crc16-ccitt"
	default:
		return "unknown"
	}
}

// TrailerLen returns the number of integrity bytes appended to a frame
func (s Scheme) TrailerLen() int {
	if s == SchemeCrc16 {
		return 2
	}
	return 1
}

// MinFrameLen returns the smallest frame that can carry a header,
// an object count and the trailer
func (s Scheme) MinFrameLen() int {
	return 2 + s.TrailerLen()
}

// Sum8 returns the sum of all payload bytes modulo 256.
// The tracker devices exclude the header byte and the trailer from the
// sum, so callers must pass frame[1:len-1], not the whole frame.
func Sum8(payload []byte) uint8 {
	var sum uint8
	for _, b := range payload {
		sum += b
	}
	return sum
}

// Crc16Ccitt computes CRC-16/CCITT-FALSE over payload: each byte is
// xored into the high byte of the register followed by eight shifts
// against the generator polynomial. An empty payload leaves the
// register at 0xffff.
func Crc16Ccitt(payload []byte) uint16 {
	crc := uint16(Crc16Init)
	for _, b := range payload {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ Crc16Poly
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// Result carries the outcome of a trailer check. Expected is the value
// read from the frame trailer, Computed the value derived from the
// frame contents.
type Result struct {
	Valid    bool
	Expected uint32
	Computed uint32
}

// Verify checks the integrity trailer of a frame. The frame must be at
// least MinFrameLen bytes long, shorter frames are the caller's problem
// and must be rejected before Verify is called. The input is never
// modified.
func Verify(frame []byte, scheme Scheme) Result {
	var expected, computed uint32
	switch scheme {
	case SchemeCrc16:
		expected = uint32(binary.BigEndian.Uint16(frame[len(frame)-2:]))
		computed = uint32(Crc16Ccitt(frame[:len(frame)-2]))
	default:
		expected = uint32(frame[len(frame)-1])
		computed = uint32(Sum8(frame[1 : len(frame)-1]))
	}
	return Result{
		Valid:    expected == computed,
		Expected: expected,
		Computed: computed,
	}
}
