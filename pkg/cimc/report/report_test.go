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

package report

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yunion.io/x/jsonutils"

	"yunion.io/x/cimctools/pkg/cimc/options"
	"yunion.io/x/cimctools/pkg/util/redfish/fakecimc"

	_ "yunion.io/x/cimctools/pkg/util/redfish/cimc"
)

func runOptions() options.SRunOptions {
	return options.SRunOptions{
		Driver:   "cimc",
		Insecure: true,
		Timeout:  5 * time.Second,
	}
}

func device(name string, srv *fakecimc.SFakeCIMC) options.SDeviceConfig {
	return options.SDeviceConfig{
		Name:     name,
		Address:  srv.Address(),
		Username: srv.Username,
		Password: srv.Password,
	}
}

func TestCollectSkipsFailedAuth(t *testing.T) {
	srv1 := fakecimc.NewFakeCIMC("admin", "secret1")
	defer srv1.Close()
	srv2 := fakecimc.NewFakeCIMC("admin", "secret2")
	defer srv2.Close()
	srv2.SessionStatus = http.StatusUnauthorized
	srv3 := fakecimc.NewFakeCIMC("admin", "secret3")
	defer srv3.Close()

	devs := []options.SDeviceConfig{
		device("CIMC1", srv1),
		device("CIMC2", srv2),
		device("CIMC3", srv3),
	}
	report := Collect(context.Background(), devs, runOptions())

	assert.Equal(t, []string{"CIMC1", "CIMC3"}, report.Sections())
	keys := report.JSON().(*jsonutils.JSONDict).SortedKeys()
	sort.Strings(keys)
	assert.Equal(t, []string{"CIMC1", "CIMC3"}, keys)

	require.Len(t, srv2.Requests(), 1)
	assert.Empty(t, srv2.RequestsTo(http.MethodGet, fakecimc.ManagersPath))
	assert.Empty(t, srv2.RequestsTo(http.MethodGet, fakecimc.NicPath))

	entry, ok := report.Get("CIMC3")
	require.True(t, ok)
	assert.Equal(t, srv3.Address(), entry.CimcIp)
	name, _ := entry.Managers.GetString("Name")
	assert.Equal(t, "Manager Collection", name)
	id, _ := entry.EthernetInterfaces.GetString("Id")
	assert.Equal(t, "NICs", id)
}

func TestCollectManagersFailed(t *testing.T) {
	srv := fakecimc.NewFakeCIMC("admin", "secret")
	defer srv.Close()
	srv.ManagersStatus = http.StatusInternalServerError

	report := Collect(context.Background(), []options.SDeviceConfig{device("CIMC1", srv)}, runOptions())
	entry, ok := report.Get("CIMC1")
	require.True(t, ok)
	assert.Equal(t, "{}", entry.Managers.String())
	mac, _ := entry.EthernetInterfaces.GetString("MACAddress")
	assert.Equal(t, "00:25:B5:00:00:01", mac)

	// one session serves both reads
	assert.Len(t, srv.RequestsTo(http.MethodPost, fakecimc.SessionsPath), 1)
	assert.Len(t, srv.RequestsTo(http.MethodGet, fakecimc.NicPath), 1)
}

func TestCollectNicFailed(t *testing.T) {
	srv := fakecimc.NewFakeCIMC("admin", "secret")
	defer srv.Close()
	srv.NicStatus = http.StatusNotFound

	report := Collect(context.Background(), []options.SDeviceConfig{device("CIMC1", srv)}, runOptions())
	entry, ok := report.Get("CIMC1")
	require.True(t, ok)
	assert.Equal(t, "{}", entry.EthernetInterfaces.String())
	assert.True(t, entry.Managers.Contains("Members"))
}

func TestCollectUnreachableDevice(t *testing.T) {
	srv := fakecimc.NewFakeCIMC("admin", "secret")
	addr := srv.Address()
	srv.Close()

	ok := fakecimc.NewFakeCIMC("admin", "secret")
	defer ok.Close()

	devs := []options.SDeviceConfig{
		{Name: "DOWN", Address: addr, Username: "admin", Password: "secret"},
		device("UP", ok),
	}
	report := Collect(context.Background(), devs, runOptions())
	assert.Equal(t, []string{"UP"}, report.Sections())
}

func TestCollectLogout(t *testing.T) {
	srv := fakecimc.NewFakeCIMC("admin", "secret")
	defer srv.Close()

	opts := runOptions()
	Collect(context.Background(), []options.SDeviceConfig{device("CIMC1", srv)}, opts)
	assert.Empty(t, srv.RequestsTo(http.MethodDelete, fakecimc.SessionPath))

	opts.Logout = true
	Collect(context.Background(), []options.SDeviceConfig{device("CIMC1", srv)}, opts)
	assert.Len(t, srv.RequestsTo(http.MethodDelete, fakecimc.SessionPath), 1)
}

func TestSave(t *testing.T) {
	report := NewReport()
	report.Add("CIMC1", &SReportEntry{
		CimcIp:             "10.0.0.11",
		Managers:           jsonutils.NewDict(),
		EthernetInterfaces: jsonutils.NewDict(),
	})
	path := filepath.Join(t.TempDir(), DEFAULT_OUTPUT)
	require.NoError(t, report.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	obj, err := jsonutils.Parse(data)
	require.NoError(t, err)
	ip, _ := obj.GetString("CIMC1", "cimc_ip")
	assert.Equal(t, "10.0.0.11", ip)
	assert.True(t, obj.Contains("CIMC1", "managers"))
	assert.True(t, obj.Contains("CIMC1", "ethernet_interfaces"))
}

func TestSaveSortsSections(t *testing.T) {
	report := NewReport()
	for _, sec := range []string{"RACK2", "RACK1"} {
		report.Add(sec, &SReportEntry{
			CimcIp:             "10.0.0.11",
			Managers:           jsonutils.NewDict(),
			EthernetInterfaces: jsonutils.NewDict(),
		})
	}
	assert.Equal(t, []string{"RACK2", "RACK1"}, report.Sections())

	path := filepath.Join(t.TempDir(), DEFAULT_OUTPUT)
	require.NoError(t, report.Save(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	require.Contains(t, content, `"RACK1"`)
	assert.Less(t, strings.Index(content, `"RACK1"`), strings.Index(content, `"RACK2"`))
}
