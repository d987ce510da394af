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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yunion.io/x/pkg/errors"
)

const paramsIni = `
[DEFAULT]
CIMC_USERNAME = admin

[CIMC1]
CIMC_IP = 10.0.0.11
CIMC_PASSWORD = pa#ss;word
DNS1 = 10.1.1.1
DNS2 = 10.1.1.2
DNS3 = 10.1.1.3

[CIMC2]
cimc_ip = 10.0.0.12
cimc_username = root
cimc_password = secret
cimc_insecure = true
dns1 = 10.2.2.1
dns2 = 10.2.2.2
dns3 = 10.2.2.3
`

func TestLoadDevices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params-cimc.ini")
	require.NoError(t, os.WriteFile(path, []byte(paramsIni), 0600))

	devs, err := LoadDevices(path, true)
	require.NoError(t, err)
	require.Len(t, devs, 2)

	assert.Equal(t, SDeviceConfig{
		Name:       "CIMC1",
		Address:    "10.0.0.11",
		Username:   "admin",
		Password:   "pa#ss;word",
		DnsServers: []string{"10.1.1.1", "10.1.1.2", "10.1.1.3"},
	}, devs[0])
	assert.Equal(t, "CIMC2", devs[1].Name)
	assert.Equal(t, "root", devs[1].Username)
	assert.True(t, devs[1].Insecure)
	assert.Equal(t, []string{"10.2.2.1", "10.2.2.2", "10.2.2.3"}, devs[1].DnsServers)
}

func TestLoadDevicesWithoutDns(t *testing.T) {
	devs, err := LoadDevicesFromBytes([]byte(`
[CIMC1]
CIMC_IP = 10.0.0.11
CIMC_USERNAME = admin
CIMC_PASSWORD = secret
`), false)
	require.NoError(t, err)
	require.Len(t, devs, 1)
	assert.Nil(t, devs[0].DnsServers)

	_, err = LoadDevicesFromBytes([]byte(`
[CIMC1]
CIMC_IP = 10.0.0.11
CIMC_USERNAME = admin
CIMC_PASSWORD = secret
DNS1 = 10.1.1.1
`), true)
	assert.Equal(t, ErrMissingKey, errors.Cause(err))
}

func TestLoadDevicesErrors(t *testing.T) {
	_, err := LoadDevicesFromBytes([]byte("[CIMC1]\nCIMC_IP = 10.0.0.1\nCIMC_PASSWORD = x\n"), false)
	assert.Equal(t, ErrMissingKey, errors.Cause(err))

	_, err = LoadDevicesFromBytes([]byte("CIMC_USERNAME = admin\n"), false)
	assert.Equal(t, ErrNoDeviceDefined, errors.Cause(err))

	_, err = LoadDevices(filepath.Join(t.TempDir(), "missing.ini"), false)
	assert.Equal(t, errors.ErrNotFound, errors.Cause(err))

	_, err = LoadDevicesFromBytes([]byte("[CIMC1]\nCIMC_IP = a\nCIMC_USERNAME = b\nCIMC_PASSWORD = c\nCIMC_INSECURE = maybe\n"), false)
	assert.Error(t, err)
}

func TestFilterSections(t *testing.T) {
	devs := []SDeviceConfig{{Name: "CIMC1"}, {Name: "CIMC2"}, {Name: "CIMC3"}}

	got, err := FilterSections(devs, nil)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = FilterSections(devs, []string{"CIMC3", "CIMC1"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "CIMC1", got[0].Name)
	assert.Equal(t, "CIMC3", got[1].Name)

	_, err = FilterSections(devs, []string{"CIMC4"})
	assert.Equal(t, ErrUnknownSection, errors.Cause(err))
}

func TestRunOptions(t *testing.T) {
	base := SBaseOptions{Driver: "cimc", Timeout: 5, Logout: true}
	opts := base.RunOptions()
	assert.Equal(t, 5*time.Second, opts.Timeout)
	assert.True(t, opts.Logout)

	assert.False(t, opts.ClientOptions(SDeviceConfig{}).Insecure)
	assert.True(t, opts.ClientOptions(SDeviceConfig{Insecure: true}).Insecure)
	opts.Insecure = true
	assert.True(t, opts.ClientOptions(SDeviceConfig{}).Insecure)
}
