// Copyright 2019 Yunion
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package options

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/ini.v1"

	"yunion.io/x/log"
	"yunion.io/x/pkg/errors"
	"yunion.io/x/pkg/utils"

	"yunion.io/x/cimctools/pkg/util/fileutils2"
	"yunion.io/x/cimctools/pkg/util/redfish"
)

const (
	KEY_IP       = "CIMC_IP"
	KEY_USERNAME = "CIMC_USERNAME"
	KEY_PASSWORD = "CIMC_PASSWORD"
	KEY_INSECURE = "CIMC_INSECURE"

	ErrMissingKey      = errors.Error("MissingConfigKey")
	ErrUnknownSection  = errors.Error("UnknownSection")
	ErrNoDeviceDefined = errors.Error("NoDeviceDefined")
)

var DNS_KEYS = []string{"DNS1", "DNS2", "DNS3"}

// Values are taken verbatim: '#' and ';' never start an inline comment.
var loadOptions = ini.LoadOptions{
	IgnoreInlineComment: true,
}

// SBaseOptions holds the flags common to cimc-report and cimc-dns.
type SBaseOptions struct {
	Help     bool     `help:"Show help" short-token:"h"`
	Debug    bool     `help:"Show debug information"`
	Config   string   `help:"Device configuration file" default:"params-cimc.ini" short-token:"c"`
	Section  []string `help:"Only process the given sections, may be repeated"`
	Driver   string   `help:"Redfish driver" default:"cimc"`
	Timeout  int      `help:"Number of seconds to wait for a response" default:"30"`
	Insecure bool     `help:"Skip server certificate verification, needed for self-signed CIMC certificates" short-token:"k"`
	Logout   bool     `help:"Delete the Redfish session when a device is done"`
}

func (o *SBaseOptions) RunOptions() SRunOptions {
	return SRunOptions{
		Driver:   o.Driver,
		Debug:    o.Debug,
		Insecure: o.Insecure,
		Timeout:  time.Duration(o.Timeout) * time.Second,
		Logout:   o.Logout,
	}
}

// SetupLog switches yunion log to debug level when asked to.
func (o *SBaseOptions) SetupLog() {
	level := "info"
	if o.Debug {
		level = "debug"
	}
	log.SetLogLevelByString(log.Logger(), level)
}

// LoadDevices loads and filters the devices named on the command line.
func (o *SBaseOptions) LoadDevices(requireDns bool) ([]SDeviceConfig, error) {
	devs, err := LoadDevices(o.Config, requireDns)
	if err != nil {
		return nil, err
	}
	return FilterSections(devs, o.Section)
}

// SDeviceConfig describes one CIMC, i.e. one section of the config file.
type SDeviceConfig struct {
	Name       string
	Address    string
	Username   string
	Password   string
	DnsServers []string
	Insecure   bool
}

func (d SDeviceConfig) String() string {
	return fmt.Sprintf("%s(%s)", d.Name, d.Address)
}

type SRunOptions struct {
	Driver   string
	Debug    bool
	Insecure bool
	Timeout  time.Duration
	Logout   bool
}

func (o SRunOptions) ClientOptions(dev SDeviceConfig) redfish.SClientOptions {
	return redfish.SClientOptions{
		Debug:    o.Debug,
		Insecure: o.Insecure || dev.Insecure,
		Timeout:  o.Timeout,
	}
}

func (o SRunOptions) NewDriver(dev SDeviceConfig) redfish.IRedfishDriver {
	return redfish.NewRedfishDriver(o.Driver, dev.Address, dev.Username, dev.Password, o.ClientOptions(dev))
}

// lookupKey matches key names case-insensitively and falls back to the
// DEFAULT section.
func lookupKey(sections []*ini.Section, name string) (*ini.Key, bool) {
	for _, sec := range sections {
		if sec == nil {
			continue
		}
		for _, key := range sec.Keys() {
			if strings.EqualFold(key.Name(), name) {
				return key, true
			}
		}
	}
	return nil, false
}

func LoadDevices(path string, requireDns bool) ([]SDeviceConfig, error) {
	if !fileutils2.IsFile(path) {
		return nil, errors.Wrapf(errors.ErrNotFound, "config file %s", path)
	}
	cfg, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		return nil, errors.Wrapf(err, "ini.LoadSources %s", path)
	}
	return parseDevices(cfg, requireDns)
}

func LoadDevicesFromBytes(data []byte, requireDns bool) ([]SDeviceConfig, error) {
	cfg, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, errors.Wrap(err, "ini.LoadSources")
	}
	return parseDevices(cfg, requireDns)
}

func parseDevices(cfg *ini.File, requireDns bool) ([]SDeviceConfig, error) {
	defSec, _ := cfg.GetSection(ini.DefaultSection)
	devs := make([]SDeviceConfig, 0)
	for _, sec := range cfg.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		scope := []*ini.Section{sec, defSec}
		get := func(name string) (string, error) {
			key, ok := lookupKey(scope, name)
			if !ok {
				return "", errors.Wrapf(ErrMissingKey, "section [%s] key %s", sec.Name(), name)
			}
			return strings.TrimSpace(key.String()), nil
		}

		var err error
		dev := SDeviceConfig{Name: sec.Name()}
		if dev.Address, err = get(KEY_IP); err != nil {
			return nil, err
		}
		if dev.Username, err = get(KEY_USERNAME); err != nil {
			return nil, err
		}
		if dev.Password, err = get(KEY_PASSWORD); err != nil {
			return nil, err
		}
		if key, ok := lookupKey(scope, KEY_INSECURE); ok {
			dev.Insecure, err = key.Bool()
			if err != nil {
				return nil, errors.Wrapf(err, "section [%s] key %s", sec.Name(), KEY_INSECURE)
			}
		}
		if requireDns {
			dev.DnsServers = make([]string, 0, len(DNS_KEYS))
			for _, k := range DNS_KEYS {
				srv, err := get(k)
				if err != nil {
					return nil, err
				}
				dev.DnsServers = append(dev.DnsServers, srv)
			}
		}
		devs = append(devs, dev)
	}
	if len(devs) == 0 {
		return nil, ErrNoDeviceDefined
	}
	return devs, nil
}

// FilterSections keeps the devices whose section is listed, in file order.
// An empty list keeps everything.
func FilterSections(devs []SDeviceConfig, sections []string) ([]SDeviceConfig, error) {
	if len(sections) == 0 {
		return devs, nil
	}
	names := make([]string, len(devs))
	for i := range devs {
		names[i] = devs[i].Name
	}
	for _, sec := range sections {
		if !utils.IsInStringArray(sec, names) {
			return nil, errors.Wrapf(ErrUnknownSection, "%s", sec)
		}
	}
	ret := make([]SDeviceConfig, 0, len(sections))
	for _, dev := range devs {
		if utils.IsInStringArray(dev.Name, sections) {
			ret = append(ret, dev)
		}
	}
	return ret, nil
}
