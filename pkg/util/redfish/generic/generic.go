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

package generic

import (
	"context"

	"yunion.io/x/pkg/errors"

	"yunion.io/x/cimctools/pkg/util/redfish"
)

const (
	basePath  = "/redfish/v1"
	linkKey   = "@odata.id"
	memberKey = "Members"
)

type SGenericRedfishApiFactory struct {
}

func (f *SGenericRedfishApiFactory) Name() string {
	return "Redfish"
}

func (f *SGenericRedfishApiFactory) NewApi(endpoint, username, password string, opts redfish.SClientOptions) redfish.IRedfishDriver {
	return NewGenericRedfishApi(endpoint, username, password, opts)
}

func init() {
	redfish.RegisterDefaultApiFactory(&SGenericRedfishApiFactory{})
}

type SGenericRefishApi struct {
	redfish.SBaseRedfishClient
}

func NewGenericRedfishApi(endpoint, username, password string, opts redfish.SClientOptions) redfish.IRedfishDriver {
	api := &SGenericRefishApi{
		SBaseRedfishClient: redfish.NewBaseRedfishClient(endpoint, username, password, opts),
	}
	api.SetVirtualObject(api)
	return api
}

func (r *SGenericRefishApi) BasePath() string {
	return basePath
}

func (r *SGenericRefishApi) LinkKey() string {
	return linkKey
}

func (r *SGenericRefishApi) MemberKey() string {
	return memberKey
}

// GetEthernetInterfacePath walks Managers -> first manager -> EthernetInterfaces
// -> first interface.
func (r *SGenericRefishApi) GetEthernetInterfacePath(ctx context.Context) (string, error) {
	path, _, err := r.GetResource(ctx, r.IRedfishDriver().ManagersPath(), "EthernetInterfaces")
	if err != nil {
		return "", errors.Wrap(err, "GetResource Managers EthernetInterfaces")
	}
	return path, nil
}
