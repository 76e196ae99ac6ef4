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

package listen

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-track/pkg/config"
	"jinr.ru/greenlab/go-track/pkg/layers"
	"jinr.ru/greenlab/go-track/pkg/srv/track"
)

const (
	AddressOptionName = "address"
	PortOptionName    = "port"
	ProfileOptionName = "profile"
)

// NewCommand creates the command that runs the UDP receive server
func NewCommand() *cobra.Command {
	var address, profile string
	var port int
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Start the track packet receive server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if address != "" {
				cfg.IP = address
			}
			if port != 0 {
				cfg.Port = port
			}
			if profile != "" {
				cfg.Profile = profile
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server, err := track.NewTrackServer(ctx, cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return server.Run()
		},
	}
	cmd.Flags().StringVar(&address, AddressOptionName, "", "Address to bind. E.g. 192.168.1.2")
	cmd.Flags().IntVar(&port, PortOptionName, 0, "Port number to bind. E.g. 5012")
	cmd.Flags().StringVar(&profile, ProfileOptionName, "", "Protocol profile. "+layers.HelpProfiles)

	return cmd
}
