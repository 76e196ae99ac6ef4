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

package decode

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-track/pkg/config"
	"jinr.ru/greenlab/go-track/pkg/layers"
	"jinr.ru/greenlab/go-track/pkg/srv/track"
)

const (
	ProfileOptionName = "profile"
	ExampleOptionName = "example"

	decodeExample = `
Decode a captured frame
# go-track decode fb010203000000010000000200000003 --profile a

Build and decode an example frame for profile c
# go-track decode --example --profile c
`
)

// NewCommand creates the command that decodes one hex encoded frame
// and prints the report, the same path the listen server runs per
// datagram
func NewCommand() *cobra.Command {
	var profileName string
	var example bool
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:     "decode [frame-hex]",
		Short:   "Decode one hex encoded track frame",
		Example: decodeExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			if profileName == "" {
				profileName = cfg.Profile
			}
			profile, err := layers.ProfileByName(profileName)
			if err != nil {
				return err
			}

			var frame []byte
			switch {
			case example:
				frame, err = profile.BuildFrame(layers.TrackHeaderMarker, []layers.TrackedObject{
					{Class: 2, TrackID: 3, X: 1, Y: 2, Z: 3},
				})
				if err != nil {
					return err
				}
			case len(args) == 1:
				frame, err = hex.DecodeString(strings.ReplaceAll(args[0], " ", ""))
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("either a hex encoded frame or --%s is required", ExampleOptionName)
			}

			pipeline := track.Pipeline{Profile: profile}
			tl, err := pipeline.OnDatagram(frame, nil)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), track.Report(tl, nil, frame))
			return nil
		},
	}
	cmd.Flags().StringVar(&profileName, ProfileOptionName, "", "Protocol profile. "+layers.HelpProfiles)
	cmd.Flags().BoolVar(&example, ExampleOptionName, false, "Build and decode an example frame")

	return cmd
}
