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
	"encoding/binary"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"jinr.ru/greenlab/go-track/pkg/checksum"
	"jinr.ru/greenlab/go-track/pkg/log"
)

const (
	// RecordLen is the fixed size of one object record in bytes:
	// class, track id and three 32-bit coordinates
	RecordLen = 14
)

// TrackedObject is one decoded object record. Coordinates are
// assembled from unsigned 32-bit big-endian words and widened to int64
// so that no value can be misread as negative.
type TrackedObject struct {
	Class   uint8
	TrackID uint8
	X       int64
	Y       int64
	Z       int64
}

// TrackLayer is one decoded tracker frame. A frame that fails the
// trailer check is still a successfully decoded layer: ChecksumValid
// is false and Objects is empty, because neither the declared count
// nor the payload of a corrupted frame can be trusted. Truncated is
// set when the frame declares more records than it carries.
type TrackLayer struct {
	layers.BaseLayer
	Profile          Profile
	Header           uint8
	DeclaredCount    uint8
	ChecksumValid    bool
	ExpectedChecksum uint32
	ComputedChecksum uint32
	Objects          []TrackedObject
	Truncated        bool
}

// LayerType returns the type registered for the layer's profile
func (tl *TrackLayer) LayerType() gopacket.LayerType {
	return tl.Profile.LayerType()
}

// DecodeFromBytes attempts to decode the byte slice as one tracker
// frame according to the layer's profile. The input is not retained.
func (tl *TrackLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	scheme := tl.Profile.Scheme
	if len(data) < scheme.MinFrameLen() {
		df.SetTruncated()
		return ErrFrameTooShort{Length: len(data), Min: scheme.MinFrameLen()}
	}

	trailerLen := scheme.TrailerLen()
	tl.BaseLayer = layers.BaseLayer{
		Contents: data[0:2],
		Payload:  data[2 : len(data)-trailerLen],
	}

	result := checksum.Verify(data, scheme)
	tl.ChecksumValid = result.Valid
	tl.ExpectedChecksum = result.Expected
	tl.ComputedChecksum = result.Computed
	if !result.Valid {
		log.Debug("Track frame trailer mismatch: expected: 0x%04x computed: 0x%04x",
			result.Expected, result.Computed)
		return nil
	}

	tl.Header = data[0]
	if tl.Profile.HeaderMarker != nil && tl.Header != *tl.Profile.HeaderMarker {
		return ErrHeaderMismatch{Found: tl.Header, Expected: *tl.Profile.HeaderMarker}
	}
	tl.DeclaredCount = data[1]

	// The declared count is advisory. Records are read only while a
	// complete one fits before the trailer, a frame that declares more
	// than it carries yields the partial list with Truncated set.
	limit := len(data) - trailerLen
	offset := 2
	for i := 0; i < int(tl.DeclaredCount); i++ {
		if limit-offset < RecordLen {
			tl.Truncated = true
			break
		}
		tl.Objects = append(tl.Objects, decodeRecord(data[offset:offset+RecordLen], tl.Profile.Layout))
		offset += RecordLen
	}

	return nil
}

func decodeRecord(rec []byte, layout Layout) TrackedObject {
	obj := TrackedObject{
		Class:   rec[0],
		TrackID: rec[1],
		Z:       int64(binary.BigEndian.Uint32(rec[10:14])),
	}
	switch layout {
	case LayoutSplitXY:
		obj.X = int64(uint32(binary.BigEndian.Uint16(rec[2:4]))<<16 | uint32(binary.BigEndian.Uint16(rec[4:6])))
		obj.Y = int64(uint32(binary.BigEndian.Uint16(rec[6:8]))<<16 | uint32(binary.BigEndian.Uint16(rec[8:10])))
	default:
		obj.X = int64(binary.BigEndian.Uint32(rec[2:6]))
		obj.Y = int64(binary.BigEndian.Uint32(rec[6:10]))
	}
	return obj
}

func serializeRecord(buf []byte, obj TrackedObject, layout Layout) {
	buf[0] = obj.Class
	buf[1] = obj.TrackID
	switch layout {
	case LayoutSplitXY:
		binary.BigEndian.PutUint16(buf[2:4], uint16(uint32(obj.X)>>16))
		binary.BigEndian.PutUint16(buf[4:6], uint16(uint32(obj.X)&0xffff))
		binary.BigEndian.PutUint16(buf[6:8], uint16(uint32(obj.Y)>>16))
		binary.BigEndian.PutUint16(buf[8:10], uint16(uint32(obj.Y)&0xffff))
	default:
		binary.BigEndian.PutUint32(buf[2:6], uint32(obj.X))
		binary.BigEndian.PutUint32(buf[6:10], uint32(obj.Y))
	}
	binary.BigEndian.PutUint32(buf[10:14], uint32(obj.Z))
}

// SerializeTo serializes the layer into bytes and writes the bytes to
// the SerializeBuffer. With opts.FixLengths the declared count is set
// to the number of objects, with opts.ComputeChecksums the trailer is
// derived from the serialized frame the way the firmware does it.
func (tl *TrackLayer) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	if opts.FixLengths {
		tl.DeclaredCount = uint8(len(tl.Objects))
	}

	bodyBytes, err := b.PrependBytes(2 + RecordLen*len(tl.Objects))
	if err != nil {
		return err
	}
	bodyBytes[0] = tl.Header
	bodyBytes[1] = tl.DeclaredCount
	for i, obj := range tl.Objects {
		serializeRecord(bodyBytes[2+RecordLen*i:2+RecordLen*(i+1)], obj, tl.Profile.Layout)
	}

	trailerLen := tl.Profile.Scheme.TrailerLen()
	trailerBytes, err := b.AppendBytes(trailerLen)
	if err != nil {
		return err
	}

	if opts.ComputeChecksums {
		frame := b.Bytes()
		switch tl.Profile.Scheme {
		case checksum.SchemeCrc16:
			tl.ExpectedChecksum = uint32(checksum.Crc16Ccitt(frame[:len(frame)-2]))
		default:
			tl.ExpectedChecksum = uint32(checksum.Sum8(frame[1 : len(frame)-1]))
		}
	}
	if trailerLen == 2 {
		binary.BigEndian.PutUint16(trailerBytes, uint16(tl.ExpectedChecksum))
	} else {
		trailerBytes[0] = uint8(tl.ExpectedChecksum)
	}

	return nil
}

func decodeTrackLayer(profile Profile, data []byte, pb gopacket.PacketBuilder) error {
	tl := &TrackLayer{Profile: profile}
	err := tl.DecodeFromBytes(data, pb)
	if err != nil {
		log.Debug("Error while decoding track layer: %s", err)
		return err
	}
	pb.AddLayer(tl)
	return nil
}

// BuildFrame encodes objects into one well-formed frame for the
// profile, with the trailer computed over the serialized bytes
func (p Profile) BuildFrame(header uint8, objects []TrackedObject) ([]byte, error) {
	tl := &TrackLayer{
		Profile: p,
		Header:  header,
		Objects: objects,
	}
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	if err := gopacket.SerializeLayers(buf, opts, tl); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
