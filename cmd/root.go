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

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-track/cmd/completion"
	configcmd "jinr.ru/greenlab/go-track/cmd/config"
	"jinr.ru/greenlab/go-track/cmd/decode"
	"jinr.ru/greenlab/go-track/cmd/listen"
	"jinr.ru/greenlab/go-track/cmd/status"
	pkgconfig "jinr.ru/greenlab/go-track/pkg/config"
	"jinr.ru/greenlab/go-track/pkg/log"
)

const (
	LogLevelOptionName = "log-level"
)

func NewRootCommand(out io.Writer) *cobra.Command {
	var logLevel string
	cfg := pkgconfig.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "go-track",
		Short: "Receiver for tracked object packets sent by tracker devices",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			log.Init(cmd.ErrOrStderr(), cfg.LogLevel)
		},
	}
	cmd.SetOut(out)
	cmd.AddCommand(listen.NewCommand())
	cmd.AddCommand(decode.NewCommand())
	cmd.AddCommand(status.NewCommand())
	cmd.AddCommand(configcmd.NewCommand())
	cmd.AddCommand(completion.NewCommand())
	cmd.PersistentFlags().StringVar(&logLevel, LogLevelOptionName, "", fmt.Sprintf("Log level. %s", log.HelpLevels))
	return cmd
}
