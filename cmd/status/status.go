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

package status

import (
	"fmt"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"jinr.ru/greenlab/go-track/pkg/command"
	"jinr.ru/greenlab/go-track/pkg/config"
)

const (
	AddressOptionName = "address"
)

// NewCommand creates the command that queries the status API of a
// running listen server
func NewCommand() *cobra.Command {
	var address string
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the counters of a running listen server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if address != "" {
				cfg.IP = address
			}
			client := command.NewApiClient(cfg)
			snapshot, err := client.Status()
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(snapshot)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().StringVar(&address, AddressOptionName, "", "Address of the listen server. E.g. 192.168.1.2")

	return cmd
}
