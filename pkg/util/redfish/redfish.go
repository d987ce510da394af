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

package redfish

import (
	"context"
	"sort"
	"strings"
	"time"

	"yunion.io/x/jsonutils"
	"yunion.io/x/log"
)

const (
	DEFAULT_TIMEOUT = 30 * time.Second

	MAX_DNS_SERVERS = 3
)

// SSession is an authenticated Redfish session. The token is sent as
// X-Auth-Token on every request issued after Login.
type SSession struct {
	Token    string
	Host     string
	Location string
}

type SClientOptions struct {
	Debug    bool
	Insecure bool
	Timeout  time.Duration
}

type IRedfishDriverFactory interface {
	Name() string
	NewApi(endpoint, username, password string, opts SClientOptions) IRedfishDriver
}

type IRedfishDriver interface {
	SetVirtualObject(drv IRedfishDriver)
	IRedfishDriver() IRedfishDriver

	GetHost() string

	BasePath() string
	SessionsPath() string
	ManagersPath() string
	LinkKey() string
	MemberKey() string
	GetEthernetInterfacePath(ctx context.Context) (string, error)

	Login(ctx context.Context) (*SSession, error)
	Logout(ctx context.Context) error
	GetSession() *SSession

	Get(ctx context.Context, path string) (jsonutils.JSONObject, error)
	Patch(ctx context.Context, path string, body jsonutils.JSONObject) (jsonutils.JSONObject, error)

	GetManagers(ctx context.Context) (jsonutils.JSONObject, error)
	GetEthernetInterfaces(ctx context.Context) (jsonutils.JSONObject, error)
	GetDNSServers(ctx context.Context) ([]string, error)
	SetDNSServers(ctx context.Context, servers []string) error
}

var (
	apiFactories      = map[string]IRedfishDriverFactory{}
	defaultApiFactory IRedfishDriverFactory
)

func RegisterApiFactory(f IRedfishDriverFactory) {
	apiFactories[strings.ToLower(f.Name())] = f
}

func RegisterDefaultApiFactory(f IRedfishDriverFactory) {
	defaultApiFactory = f
	RegisterApiFactory(f)
}

func GetApiFactoryNames() []string {
	names := make([]string, 0, len(apiFactories))
	for k := range apiFactories {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// NewRedfishDriver builds a driver with the named factory. An empty or unknown
// name falls back to the default factory; nil is returned if none is registered.
func NewRedfishDriver(name, endpoint, username, password string, opts SClientOptions) IRedfishDriver {
	factory, ok := apiFactories[strings.ToLower(name)]
	if !ok {
		if len(name) > 0 {
			log.Warningf("unknown redfish driver %q, use default", name)
		}
		factory = defaultApiFactory
	}
	if factory == nil {
		return nil
	}
	return factory.NewApi(NormalizeEndpoint(endpoint), username, password, opts)
}

// NormalizeEndpoint turns a bare CIMC address into an https URL.
func NormalizeEndpoint(addr string) string {
	addr = strings.TrimSpace(addr)
	if !strings.Contains(addr, "://") {
		addr = "https://" + addr
	}
	return strings.TrimRight(addr, "/")
}
