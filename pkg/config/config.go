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
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"
)

// Config describes the go-track runtime configuration: where to bind
// the UDP listener and the status API, which protocol profile the
// tracker devices speak and how verbose the log is.
type Config struct {
	IP       string `json:"ip"`
	Port     int    `json:"port"`
	ApiPort  int    `json:"api_port"`
	Profile  string `json:"profile"`
	LogLevel string `json:"log_level,omitempty"`
	filepath string
}

func (c *Config) Persist(overwrite bool) error {
	if _, err := os.Stat(c.filepath); err == nil && !overwrite {
		return ErrConfigFileExists{Path: c.filepath}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.filepath)
	if err = os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return os.WriteFile(c.filepath, data, 0644)
}

// Load reads the config file if it exists. A missing file is not an
// error, the defaults stay in place.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) String() string {
	data, err := yaml.Marshal(c)
	if err != nil {
		return ""
	}
	return string(data)
}

func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir, ConfigFile)
}

func NewDefaultConfig() *Config {
	return &Config{
		IP:       DefaultIP,
		Port:     DefaultPort,
		ApiPort:  DefaultApiPort,
		Profile:  DefaultProfile,
		LogLevel: DefaultLogLevel,
		filepath: DefaultConfigPath(),
	}
}
