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

	"yunion.io/x/cimctools/pkg/util/redfish"
	"yunion.io/x/cimctools/pkg/util/shellutils"
)

func init() {
	type ManagerGetOptions struct {
	}
	shellutils.R(&ManagerGetOptions{}, "manager-get", "Get the manager collection", func(cli redfish.IRedfishDriver, args *ManagerGetOptions) error {
		managers, err := cli.GetManagers(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(managers.PrettyString())
		return nil
	})

	type ResourceGetOptions struct {
		PATH string `help:"Resource path, e.g. /redfish/v1/Managers/CIMC"`
	}
	shellutils.R(&ResourceGetOptions{}, "resource-get", "Get any Redfish resource by path", func(cli redfish.IRedfishDriver, args *ResourceGetOptions) error {
		resp, err := cli.Get(context.Background(), args.PATH)
		if err != nil {
			return err
		}
		fmt.Println(resp.PrettyString())
		return nil
	})
}
