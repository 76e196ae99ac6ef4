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

package config

import (
	"fmt"

	"github.com/spf13/cobra"

	pkgconfig "jinr.ru/greenlab/go-track/pkg/config"
)

const (
	OverwriteOptionName = "overwrite"
)

// NewCommand creates the command group for showing and persisting the
// config file
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the go-track config file",
	}
	cmd.AddCommand(newShowCommand())
	cmd.AddCommand(newPersistCommand())
	return cmd
}

func newShowCommand() *cobra.Command {
	cfg := pkgconfig.NewDefaultConfig()
	cfg.Load()
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective config",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), cfg.String())
			return nil
		},
	}
}

func newPersistCommand() *cobra.Command {
	var overwrite bool
	cfg := pkgconfig.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "persist",
		Short: "Write the effective config to the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cfg.Persist(overwrite)
		},
	}
	cmd.Flags().BoolVar(&overwrite, OverwriteOptionName, false, "Overwrite the config file if it exists")
	return cmd
}
