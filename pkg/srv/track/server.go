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
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/google/gopacket"

	"jinr.ru/greenlab/go-track/pkg/config"
	"jinr.ru/greenlab/go-track/pkg/layers"
	"jinr.ru/greenlab/go-track/pkg/log"
)

type InPacket struct {
	Data []byte
	gopacket.CaptureInfo
}

// GetAddrPort returns the UDPAddr of the device that sent the packet
func GetAddrPort(packet gopacket.Packet) (*net.UDPAddr, error) {
	meta := packet.Metadata()
	if len(meta.CaptureInfo.AncillaryData) >= 1 {
		ancillary := meta.CaptureInfo.AncillaryData[0]
		udpAddr, ok := ancillary.(*net.UDPAddr)
		if !ok {
			return nil, ErrGetAddr{}
		}
		return udpAddr, nil
	}
	return nil, ErrGetAddr{}
}

// TrackServer receives tracker datagrams and decodes them one at a
// time. Decoding is run to completion per datagram, nothing is carried
// from one datagram to the next, so shutdown is only checked between
// iterations.
type TrackServer struct {
	context.Context
	*config.Config
	*net.UDPAddr
	Profile  layers.Profile
	Pipeline Pipeline
	Stats    *Stats
	Out      io.Writer
	ChIn     chan InPacket
}

func NewTrackServer(ctx context.Context, cfg *config.Config, out io.Writer) (*TrackServer, error) {
	log.Debug("Initializing track server with address: %s port: %d profile: %s",
		cfg.IP, cfg.Port, cfg.Profile)

	profile, err := layers.ProfileByName(cfg.Profile)
	if err != nil {
		return nil, err
	}

	uaddr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", cfg.IP, cfg.Port))
	if err != nil {
		return nil, err
	}

	s := &TrackServer{
		Context:  ctx,
		Config:   cfg,
		UDPAddr:  uaddr,
		Profile:  profile,
		Pipeline: Pipeline{Profile: profile},
		Stats:    NewStats(profile),
		Out:      out,
		ChIn:     make(chan InPacket),
	}
	return s, nil
}

// ReadPacketData reads the ChIn channel and returns packet data and metadata.
// This method is from PacketDataSource interface.
func (s *TrackServer) ReadPacketData() ([]byte, gopacket.CaptureInfo, error) {
	p := <-s.ChIn
	return p.Data, p.CaptureInfo, nil
}

func (s *TrackServer) Run() error {

	conn, err := net.ListenUDP("udp", s.UDPAddr)
	if err != nil {
		return err
	}
	defer conn.Close()

	log.Info("Listening for track packets on %s profile: %s", s.UDPAddr, s.Profile.Name)

	errChan := make(chan error, 1)
	buffer := make([]byte, config.MaxDatagramSize)

	// Read packets from wire and put them to input queue
	go func() {
		for {
			length, addr, readErr := conn.ReadFrom(buffer)
			if readErr != nil {
				errChan <- readErr
				return
			}
			udpAddr, readErr := net.ResolveUDPAddr("udp", addr.String())
			if readErr != nil {
				errChan <- readErr
				return
			}
			log.Debug("Received packet from %s", udpAddr)

			// the buffer is reused for the next read, the queued
			// packet needs its own copy
			data := make([]byte, length)
			copy(data, buffer[:length])

			captureInfo := gopacket.CaptureInfo{
				Length:        length,
				CaptureLength: length,
				Timestamp:     time.Now(),
				AncillaryData: []interface{}{udpAddr},
			}

			s.ChIn <- InPacket{Data: data, CaptureInfo: captureInfo}
		}
	}()

	// Read packets from input queue and decode them one by one
	go func() {
		source := gopacket.NewPacketSource(s, s.Profile.LayerType())
		for packet := range source.Packets() {
			s.handlePacket(packet)
		}
	}()

	apiServer := NewApiServer(s.Context, s.Config, s.Stats)
	go func() {
		errChan <- apiServer.Run()
	}()

	select {
	case <-s.Context.Done():
		return s.Context.Err()
	case err = <-errChan:
		return err
	}
}

// handlePacket consumes one decoded packet. No decode outcome is fatal
// to the receive loop, corrupted and malformed frames are counted and
// reported like any other.
func (s *TrackServer) handlePacket(packet gopacket.Packet) {
	udpAddr, err := GetAddrPort(packet)
	if err != nil {
		log.Error("Error while getting udpaddr for a packet from input queue")
		udpAddr = nil
	}

	if errLayer := packet.ErrorLayer(); errLayer != nil {
		s.Stats.CountError(udpAddr)
		log.Error("Error while decoding track frame from %s: %s", udpAddr, errLayer.Error())
		return
	}

	layer := packet.Layer(s.Profile.LayerType())
	if layer == nil {
		return
	}
	tl := layer.(*layers.TrackLayer)

	s.Stats.CountFrame(tl, udpAddr)
	if s.Out != nil {
		fmt.Fprintln(s.Out, Report(tl, udpAddr, packet.Data()))
	}
}
