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

package shell

import (
	"context"
	"fmt"
	"strings"

	"yunion.io/x/cimctools/pkg/util/redfish"
	"yunion.io/x/cimctools/pkg/util/shellutils"
)

func init() {
	type NicGetOptions struct {
	}
	shellutils.R(&NicGetOptions{}, "nic-get", "Get the management network interface", func(cli redfish.IRedfishDriver, args *NicGetOptions) error {
		nic, err := cli.GetEthernetInterfaces(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(nic.PrettyString())
		return nil
	})

	type DnsGetOptions struct {
	}
	shellutils.R(&DnsGetOptions{}, "dns-get", "Show the DNS servers of the management interface", func(cli redfish.IRedfishDriver, args *DnsGetOptions) error {
		servers, err := cli.GetDNSServers(context.Background())
		if err != nil {
			return err
		}
		for i, srv := range servers {
			fmt.Printf("DNS%d: %s\n", i+1, srv)
		}
		return nil
	})

	type DnsSetOptions struct {
		SERVER []string `help:"DNS server address, at most 3"`
	}
	shellutils.R(&DnsSetOptions{}, "dns-set", "Set the DNS servers of the management interface", func(cli redfish.IRedfishDriver, args *DnsSetOptions) error {
		err := cli.SetDNSServers(context.Background(), args.SERVER)
		if err != nil {
			return err
		}
		fmt.Println("DNS servers set to", strings.Join(args.SERVER, ","))
		return nil
	})
}
