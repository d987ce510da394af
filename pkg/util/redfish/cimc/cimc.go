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

package cimc

import (
	"context"

	"yunion.io/x/jsonutils"
	"yunion.io/x/log"
	"yunion.io/x/pkg/errors"

	"yunion.io/x/cimctools/pkg/util/redfish"
	"yunion.io/x/cimctools/pkg/util/redfish/generic"
)

const (
	DRIVER_NAME = "CIMC"

	NIC_PATH = "/redfish/v1/Managers/CIMC/EthernetInterfaces/NICs"
)

type SCIMCRedfishApiFactory struct {
}

func (f *SCIMCRedfishApiFactory) Name() string {
	return DRIVER_NAME
}

func (f *SCIMCRedfishApiFactory) NewApi(endpoint, username, password string, opts redfish.SClientOptions) redfish.IRedfishDriver {
	return NewCIMCRedfishApi(endpoint, username, password, opts)
}

func init() {
	redfish.RegisterApiFactory(&SCIMCRedfishApiFactory{})
}

type SCIMCRedfishApi struct {
	generic.SGenericRefishApi
}

func NewCIMCRedfishApi(endpoint, username, password string, opts redfish.SClientOptions) redfish.IRedfishDriver {
	api := &SCIMCRedfishApi{
		SGenericRefishApi: generic.SGenericRefishApi{
			SBaseRedfishClient: redfish.NewBaseRedfishClient(endpoint, username, password, opts),
		},
	}
	api.SetVirtualObject(api)
	return api
}

// CIMC exposes its management NIC at a fixed location.
func (r *SCIMCRedfishApi) GetEthernetInterfacePath(ctx context.Context) (string, error) {
	return NIC_PATH, nil
}

func (r *SCIMCRedfishApi) SetDNSServers(ctx context.Context, servers []string) error {
	params, err := NewDNSPayload(servers)
	if err != nil {
		return errors.Wrap(err, "NewDNSPayload")
	}
	if r.GetSession() == nil {
		return errors.Wrapf(redfish.ErrNoSession, "SetDNSServers on %s", r.GetHost())
	}
	resp, err := r.Patch(ctx, NIC_PATH, params)
	if err != nil {
		return errors.Wrapf(err, "r.Patch %s", NIC_PATH)
	}
	if r.IsDebug {
		log.Debugf("%s", resp.PrettyString())
	}
	return nil
}

// NewDNSPayload builds the PATCH body for the CIMC management NIC. Besides the
// name servers it always pins IPv6 off, full duplex at port speed 1024 and
// the dedicated NIC mode.
func NewDNSPayload(servers []string) (jsonutils.JSONObject, error) {
	if len(servers) > redfish.MAX_DNS_SERVERS {
		return nil, errors.Wrapf(redfish.ErrTooManyDNSServers, "%d > %d", len(servers), redfish.MAX_DNS_SERVERS)
	}
	params := jsonutils.NewDict()
	params.Add(jsonutils.JSONFalse, "Oem", "Cisco", "IPv6Enabled")
	params.Add(jsonutils.JSONTrue, "Oem", "Cisco", "DynamicDNS", "Enabled")
	params.Add(jsonutils.NewInt(0), "Oem", "Cisco", "DynamicDNS", "RefreshInterval")
	params.Add(jsonutils.JSONTrue, "Oem", "Cisco", "NetworkPortProperties", "OperationModeFullDuplex")
	params.Add(jsonutils.NewInt(1024), "Oem", "Cisco", "NetworkPortProperties", "OperationModePortSpeed")
	params.Add(jsonutils.NewString("None"), "Oem", "Cisco", "NICProperties", "NICRedundancy")
	params.Add(jsonutils.NewString("Dedicated"), "Oem", "Cisco", "NICProperties", "NICMode")
	params.Add(jsonutils.NewString("None"), "Oem", "Cisco", "NICProperties", "VICSlot")
	params.Add(jsonutils.NewStringArray(servers), "NameServers")
	params.Add(jsonutils.JSONFalse, "StatelessAddressAutoConfig", "IPv6AutoConfigEnabled")
	params.Add(jsonutils.JSONFalse, "StatelessAddressAutoConfig", "IPv4AutoConfigEnabled")
	params.Add(jsonutils.NewString("NICs"), "Id")
	params.Add(jsonutils.NewString("Manager Ethernet Interface"), "Name")
	params.Add(jsonutils.NewStringArray(servers), "StaticNameServers")
	return params, nil
}
