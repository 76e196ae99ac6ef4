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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum8(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		want    uint8
	}{
		{name: "empty", payload: nil, want: 0},
		{name: "small", payload: []byte{1, 2, 3}, want: 6},
		{name: "wraps modulo 256", payload: []byte{0xff, 0x02}, want: 1},
		{name: "all high", payload: []byte{0xff, 0xff, 0xff, 0xff}, want: 0xfc},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sum8(tt.payload))
		})
	}
}

func TestCrc16Ccitt(t *testing.T) {
	// empty input leaves the register untouched
	assert.Equal(t, uint16(0xffff), Crc16Ccitt(nil))
	assert.Equal(t, uint16(0xffff), Crc16Ccitt([]byte{}))

	// the CRC-16/CCITT-FALSE check value
	assert.Equal(t, uint16(0x29b1), Crc16Ccitt([]byte("123456789")))
}

func TestVerifySum8(t *testing.T) {
	// header is excluded from the sum, trailer byte carries the expected value
	frame := []byte{0xfb, 0x02, 0x10, 0x20, 0x32}
	result := Verify(frame, SchemeSum8)
	require.True(t, result.Valid)
	assert.Equal(t, uint32(0x32), result.Expected)
	assert.Equal(t, uint32(0x32), result.Computed)

	// the header byte must not contribute to the sum
	frame[0] = 0x00
	result = Verify(frame, SchemeSum8)
	assert.True(t, result.Valid)
}

func TestVerifyCrc16(t *testing.T) {
	body := []byte{0xfb, 0x00}
	crc := Crc16Ccitt(body)
	frame := append(append([]byte{}, body...), byte(crc>>8), byte(crc&0xff))

	result := Verify(frame, SchemeCrc16)
	require.True(t, result.Valid)
	assert.Equal(t, uint32(crc), result.Expected)

	// unlike sum8 the header byte is covered by the CRC
	frame[0] = 0x00
	result = Verify(frame, SchemeCrc16)
	assert.False(t, result.Valid)
}

// Flipping any single payload bit must be detected by both schemes.
// For the additive checksum this holds because a single flip changes
// one byte by a power of two below 256; multi-bit flips can cancel out
// and are a known weakness of the scheme.
func TestVerifySingleBitFlip(t *testing.T) {
	schemes := []Scheme{SchemeSum8, SchemeCrc16}
	for _, scheme := range schemes {
		t.Run(scheme.String(), func(t *testing.T) {
			body := []byte{0xfb, 0x01, 0x02, 0x03, 0x00, 0x00, 0x00, 0x01}
			var frame []byte
			switch scheme {
			case SchemeCrc16:
				crc := Crc16Ccitt(body)
				frame = append(append([]byte{}, body...), byte(crc>>8), byte(crc&0xff))
			default:
				sum := Sum8(body[1:])
				frame = append(append([]byte{}, body...), sum)
			}
			require.True(t, Verify(frame, scheme).Valid)

			for byteIdx := 1; byteIdx < len(body); byteIdx++ {
				for bit := 0; bit < 8; bit++ {
					corrupted := append([]byte{}, frame...)
					corrupted[byteIdx] ^= 1 << bit
					result := Verify(corrupted, scheme)
					assert.False(t, result.Valid, "flip of byte %d bit %d undetected", byteIdx, bit)
					assert.NotEqual(t, result.Expected, result.Computed)
				}
			}
		})
	}
}

func TestSchemeLengths(t *testing.T) {
	assert.Equal(t, 1, SchemeSum8.TrailerLen())
	assert.Equal(t, 3, SchemeSum8.MinFrameLen())
	assert.Equal(t, 2, SchemeCrc16.TrailerLen())
	assert.Equal(t, 4, SchemeCrc16.MinFrameLen())
}

func TestVerifyDoesNotMutate(t *testing.T) {
	frame := []byte{0xfb, 0x01, 0x02, 0x03}
	saved := append([]byte{}, frame...)
	Verify(frame, SchemeSum8)
	Verify(frame, SchemeCrc16)
	assert.Equal(t, saved, frame)
}
