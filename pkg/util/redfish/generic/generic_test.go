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
	"testing"

	"yunion.io/x/pkg/errors"

	"yunion.io/x/cimctools/pkg/util/redfish"
	"yunion.io/x/cimctools/pkg/util/redfish/fakecimc"
)

func TestGetEthernetInterfacePath(t *testing.T) {
	srv := fakecimc.NewFakeCIMC("admin", "secret")
	defer srv.Close()

	ctx := context.Background()
	drv := redfish.NewRedfishDriver("", srv.Address(), "admin", "secret", redfish.SClientOptions{Insecure: true})
	if _, ok := drv.(*SGenericRefishApi); !ok {
		t.Fatalf("expect generic driver, got %T", drv)
	}
	if _, err := drv.Login(ctx); err != nil {
		t.Fatalf("login: %s", err)
	}
	path, err := drv.GetEthernetInterfacePath(ctx)
	if err != nil {
		t.Fatalf("GetEthernetInterfacePath: %s", err)
	}
	if path != fakecimc.NicPath {
		t.Errorf("expect %s got %s", fakecimc.NicPath, path)
	}
	srvs, err := drv.GetDNSServers(ctx)
	if err != nil {
		t.Fatalf("GetDNSServers: %s", err)
	}
	if len(srvs) != 1 || srvs[0] != "8.8.8.8" {
		t.Errorf("unexpected dns servers %v", srvs)
	}
}

func TestSetDNSServersNotSupported(t *testing.T) {
	drv := NewGenericRedfishApi("https://10.0.0.1", "admin", "secret", redfish.SClientOptions{})
	err := drv.SetDNSServers(context.Background(), []string{"10.1.1.1"})
	if errors.Cause(err) != redfish.ErrNotSupported {
		t.Errorf("expect ErrNotSupported, got %v", err)
	}
}

func TestUnknownDriverFallsBack(t *testing.T) {
	drv := redfish.NewRedfishDriver("no-such-driver", "10.0.0.1", "admin", "secret", redfish.SClientOptions{})
	if _, ok := drv.(*SGenericRefishApi); !ok {
		t.Errorf("expect generic driver, got %T", drv)
	}
}
