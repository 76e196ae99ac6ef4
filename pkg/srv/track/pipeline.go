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

	"github.com/google/gopacket"

	"jinr.ru/greenlab/go-track/pkg/layers"
	"jinr.ru/greenlab/go-track/pkg/log"
)

// Pipeline decodes tracker datagrams one at a time for a fixed
// protocol profile. It carries no state between datagrams: every call
// produces a fresh TrackLayer or an error and retains nothing.
type Pipeline struct {
	Profile layers.Profile
}

// OnDatagram decodes one datagram payload. A failed trailer check is
// not an error, the returned layer has ChecksumValid false and no
// objects. Frames below the profile minimum and, for profiles that pin
// the header byte, frames with a foreign header come back as typed
// errors.
func (p Pipeline) OnDatagram(raw []byte, src *net.UDPAddr) (*layers.TrackLayer, error) {
	if src != nil {
		log.Debug("Decoding %d byte frame from %s", len(raw), src)
	}
	tl := &layers.TrackLayer{Profile: p.Profile}
	if err := tl.DecodeFromBytes(raw, gopacket.NilDecodeFeedback); err != nil {
		return nil, err
	}
	return tl, nil
}
