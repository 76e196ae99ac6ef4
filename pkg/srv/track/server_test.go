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
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jinr.ru/greenlab/go-track/pkg/config"
	"jinr.ru/greenlab/go-track/pkg/layers"
)

func queue(s *TrackServer, frame []byte) {
	go func() {
		s.ChIn <- InPacket{
			Data: frame,
			CaptureInfo: gopacket.CaptureInfo{
				Length:        len(frame),
				CaptureLength: len(frame),
				Timestamp:     time.Now(),
				AncillaryData: []interface{}{testSource},
			},
		}
	}()
}

func TestServerHandlesQueuedPackets(t *testing.T) {
	cfg := config.NewDefaultConfig()
	var out bytes.Buffer
	s, err := NewTrackServer(context.Background(), cfg, &out)
	require.NoError(t, err)

	frame, err := s.Profile.BuildFrame(layers.TrackHeaderMarker, []layers.TrackedObject{
		{Class: 2, TrackID: 3, X: 1, Y: 2, Z: 3},
	})
	require.NoError(t, err)

	source := gopacket.NewPacketSource(s, s.Profile.LayerType())

	queue(s, frame)
	packet, err := source.NextPacket()
	require.NoError(t, err)
	s.handlePacket(packet)

	// a frame below the profile minimum is counted, not fatal
	queue(s, []byte{0xfb})
	packet, err = source.NextPacket()
	require.NoError(t, err)
	s.handlePacket(packet)

	snapshot := s.Stats.Snapshot()
	assert.Equal(t, uint64(2), snapshot.Datagrams)
	assert.Equal(t, uint64(1), snapshot.ValidFrames)
	assert.Equal(t, uint64(1), snapshot.DecodeErrors)
	assert.Contains(t, out.String(), "Object 1: class: 0x02 (2) track: 0x03 (3) x: 1 y: 2 z: 3")
}

func TestNewTrackServerUnknownProfile(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Profile = "z"
	_, err := NewTrackServer(context.Background(), cfg, nil)
	var unknown layers.ErrUnknownProfile
	require.ErrorAs(t, err, &unknown)
}
