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

package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jinr.ru/greenlab/go-track/pkg/layers"
)

func TestReportValidFrame(t *testing.T) {
	frame, err := layers.ProfileA.BuildFrame(layers.TrackHeaderMarker, []layers.TrackedObject{
		{Class: 2, TrackID: 3, X: 1, Y: 2, Z: 3},
	})
	require.NoError(t, err)

	pipeline := Pipeline{Profile: layers.ProfileA}
	tl, err := pipeline.OnDatagram(frame, testSource)
	require.NoError(t, err)

	report := Report(tl, testSource, frame)
	assert.Contains(t, report, "Packet from 192.168.1.5:5012")
	assert.Contains(t, report, "Header: 0xfb")
	assert.Contains(t, report, "Declared objects: 1")
	assert.Contains(t, report, "Object 1: class: 0x02 (2) track: 0x03 (3) x: 1 y: 2 z: 3")
	assert.NotContains(t, report, "dropped")
	assert.NotContains(t, report, "truncated")
}

func TestReportCorruptedFrame(t *testing.T) {
	frame, err := layers.ProfileC.BuildFrame(layers.TrackHeaderMarker, []layers.TrackedObject{
		{Class: 2, TrackID: 3, X: 1, Y: 2, Z: 3},
	})
	require.NoError(t, err)
	frame[6] ^= 0x10

	pipeline := Pipeline{Profile: layers.ProfileC}
	tl, err := pipeline.OnDatagram(frame, nil)
	require.NoError(t, err)

	report := Report(tl, nil, frame)
	assert.Contains(t, report, "Checksum mismatch, frame dropped")
	assert.NotContains(t, report, "Object 1")
}

func TestReportTruncatedFrame(t *testing.T) {
	// one complete record, two declared
	frame, err := layers.ProfileA.BuildFrame(layers.TrackHeaderMarker, []layers.TrackedObject{
		{Class: 1, TrackID: 9, X: 7, Y: 8, Z: 9},
	})
	require.NoError(t, err)
	frame[1] = 2
	// rebuild the trailer after bumping the count
	frame[len(frame)-1] = sum8Of(frame[1 : len(frame)-1])

	pipeline := Pipeline{Profile: layers.ProfileA}
	tl, err := pipeline.OnDatagram(frame, nil)
	require.NoError(t, err)
	require.True(t, tl.Truncated)

	report := Report(tl, nil, frame)
	assert.Contains(t, report, "Frame truncated: 1 of 2 records present")
}

func sum8Of(payload []byte) byte {
	var sum byte
	for _, b := range payload {
		sum += b
	}
	return sum
}
