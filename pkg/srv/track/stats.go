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
	"net"
	"sync"
	"time"

	"jinr.ru/greenlab/go-track/pkg/layers"
)

// Stats are per-run counters for the status API. They observe the
// receive loop from the outside, the decode path itself never reads
// them.
type Stats struct {
	mu       sync.Mutex
	snapshot StatsSnapshot
}

// StatsSnapshot is the wire form of the counters served by /api/status
type StatsSnapshot struct {
	Profile          string    `json:"profile"`
	Datagrams        uint64    `json:"datagrams"`
	ValidFrames      uint64    `json:"valid_frames"`
	ChecksumFailures uint64    `json:"checksum_failures"`
	DecodeErrors     uint64    `json:"decode_errors"`
	TruncatedFrames  uint64    `json:"truncated_frames"`
	Objects          uint64    `json:"objects"`
	LastSource       string    `json:"last_source,omitempty"`
	LastSeen         time.Time `json:"last_seen,omitempty"`
}

func NewStats(profile layers.Profile) *Stats {
	return &Stats{snapshot: StatsSnapshot{Profile: profile.Name}}
}

// CountFrame records one fully decoded frame
func (s *Stats) CountFrame(tl *layers.TrackLayer, src *net.UDPAddr) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Datagrams++
	if !tl.ChecksumValid {
		s.snapshot.ChecksumFailures++
	} else {
		s.snapshot.ValidFrames++
		s.snapshot.Objects += uint64(len(tl.Objects))
		if tl.Truncated {
			s.snapshot.TruncatedFrames++
		}
	}
	s.markSeen(src)
}

// CountError records one datagram that failed to decode
func (s *Stats) CountError(src *net.UDPAddr) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Datagrams++
	s.snapshot.DecodeErrors++
	s.markSeen(src)
}

func (s *Stats) markSeen(src *net.UDPAddr) {
	if src != nil {
		s.snapshot.LastSource = src.String()
	}
	s.snapshot.LastSeen = time.Now()
}

// Snapshot returns a copy safe to serialize while the loop keeps counting
func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}
