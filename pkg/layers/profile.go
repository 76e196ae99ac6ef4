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

package layers

import (
	"github.com/google/gopacket"

	"jinr.ru/greenlab/go-track/pkg/checksum"
)

const (
	// TrackLayerNumA identifies the track layer decoded with profile A
	TrackLayerNumA = 1993
	TrackLayerNumB = 1994
	TrackLayerNumC = 1995

	// TrackHeaderMarker is the header byte the tracker firmware puts in
	// front of every frame. Only the CRC16 profile firmware rejects
	// frames with a different header, the sum8 profiles accept anything.
	TrackHeaderMarker = 0xfb

	HelpProfiles = "Must be one of: a, b, c."
)

type Layout int

const (
	// LayoutPlainXYZ encodes X, Y, Z as three 4-byte big-endian words
	LayoutPlainXYZ Layout = iota
	// LayoutSplitXY encodes X and Y as two 2-byte big-endian halves
	// each, high half first, and Z as one 4-byte big-endian word
	LayoutSplitXY
)

func (l Layout) String() string {
	switch l {
	case LayoutSplitXY:
		return "split-xy"
	default:
		return "plain-xyz"
	}
}

// Profile is one observed generation of the tracker wire protocol:
// which integrity trailer the firmware appends, how object records are
// laid out and whether the header byte is pinned to TrackHeaderMarker.
type Profile struct {
	Name         string
	Scheme       checksum.Scheme
	Layout       Layout
	HeaderMarker *byte
	layerType    gopacket.LayerType
}

// LayerType returns the gopacket layer type registered for the profile
func (p Profile) LayerType() gopacket.LayerType {
	return p.layerType
}

func marker(b byte) *byte {
	return &b
}

var (
	ProfileA = Profile{Name: "a", Scheme: checksum.SchemeSum8, Layout: LayoutPlainXYZ}
	ProfileB = Profile{Name: "b", Scheme: checksum.SchemeSum8, Layout: LayoutSplitXY}
	ProfileC = Profile{Name: "c", Scheme: checksum.SchemeCrc16, Layout: LayoutPlainXYZ,
		HeaderMarker: marker(TrackHeaderMarker)}
)

func init() {
	ProfileA.layerType = registerTrackLayerType(TrackLayerNumA, "TrackA", &ProfileA)
	ProfileB.layerType = registerTrackLayerType(TrackLayerNumB, "TrackB", &ProfileB)
	ProfileC.layerType = registerTrackLayerType(TrackLayerNumC, "TrackC", &ProfileC)
}

func registerTrackLayerType(num int, name string, p *Profile) gopacket.LayerType {
	return gopacket.RegisterLayerType(num, gopacket.LayerTypeMetadata{
		Name: name,
		Decoder: gopacket.DecodeFunc(func(data []byte, pb gopacket.PacketBuilder) error {
			return decodeTrackLayer(*p, data, pb)
		}),
	})
}

// ProfileByName resolves a profile name from config or command line
func ProfileByName(name string) (Profile, error) {
	switch name {
	case "a":
		return ProfileA, nil
	case "b":
		return ProfileB, nil
	case "c":
		return ProfileC, nil
	default:
		return Profile{}, ErrUnknownProfile{Name: name}
	}
}
