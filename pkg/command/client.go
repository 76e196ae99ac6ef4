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

package command

import (
	"errors"
	"fmt"

	"github.com/imroc/req"

	"jinr.ru/greenlab/go-track/pkg/command/ifc"
	"jinr.ru/greenlab/go-track/pkg/config"
	"jinr.ru/greenlab/go-track/pkg/srv/track"
)

type ApiClient struct {
	*config.Config
	ApiPrefix string
}

var _ ifc.ApiClient = &ApiClient{}

func NewApiClient(cfg *config.Config) ifc.ApiClient {
	return &ApiClient{
		Config:    cfg,
		ApiPrefix: fmt.Sprintf("http://%s:%d/api", cfg.IP, cfg.ApiPort),
	}
}

func (c *ApiClient) statusUrl() string {
	return fmt.Sprintf("%s/status", c.ApiPrefix)
}

// Status fetches the receive loop counters from a running listen server
func (c *ApiClient) Status() (*track.StatsSnapshot, error) {
	r, err := req.Get(c.statusUrl())
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	snapshot := &track.StatsSnapshot{}
	err = r.ToJSON(snapshot)
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}
