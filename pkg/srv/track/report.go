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
	"encoding/hex"
	"fmt"
	"net"
	"strings"

	"jinr.ru/greenlab/go-track/pkg/layers"
)

// Report renders one decoded frame as the plain text the operators
// read on the console. It only formats what the decoder produced, the
// decode path itself never prints.
func Report(tl *layers.TrackLayer, src *net.UDPAddr, raw []byte) string {
	var sb strings.Builder

	if src != nil {
		fmt.Fprintf(&sb, "Packet from %s: %d bytes\n", src, len(raw))
	} else {
		fmt.Fprintf(&sb, "Packet: %d bytes\n", len(raw))
	}

	fmt.Fprintf(&sb, "Checksum (%s): expected: 0x%04x computed: 0x%04x\n",
		tl.Profile.Scheme, tl.ExpectedChecksum, tl.ComputedChecksum)
	if !tl.ChecksumValid {
		fmt.Fprintf(&sb, "Checksum mismatch, frame dropped\n")
		fmt.Fprint(&sb, hex.Dump(raw))
		return sb.String()
	}

	fmt.Fprintf(&sb, "Header: 0x%02x\n", tl.Header)
	fmt.Fprintf(&sb, "Declared objects: %d\n", tl.DeclaredCount)
	for i, obj := range tl.Objects {
		fmt.Fprintf(&sb, "Object %d: class: 0x%02x (%d) track: 0x%02x (%d) x: %d y: %d z: %d\n",
			i+1, obj.Class, obj.Class, obj.TrackID, obj.TrackID, obj.X, obj.Y, obj.Z)
	}
	if tl.Truncated {
		fmt.Fprintf(&sb, "Frame truncated: %d of %d records present\n",
			len(tl.Objects), tl.DeclaredCount)
	}
	fmt.Fprint(&sb, hex.Dump(raw))

	return sb.String()
}
