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

	"github.com/gosuri/uitable"

	"yunion.io/x/cimctools/pkg/util/redfish"
	"yunion.io/x/cimctools/pkg/util/shellutils"
)

func init() {
	type SessionShowOptions struct {
	}
	shellutils.R(&SessionShowOptions{}, "session-show", "Show the session created for this command", func(cli redfish.IRedfishDriver, args *SessionShowOptions) error {
		sess := cli.GetSession()
		if sess == nil {
			return redfish.ErrNoSession
		}
		table := uitable.New()
		table.AddRow("Host:", sess.Host)
		table.AddRow("Location:", sess.Location)
		table.AddRow("Token:", sess.Token)
		fmt.Println(table)
		return nil
	})

	type SessionDeleteOptions struct {
	}
	shellutils.R(&SessionDeleteOptions{}, "session-delete", "Delete the session created for this command", func(cli redfish.IRedfishDriver, args *SessionDeleteOptions) error {
		err := cli.Logout(context.Background())
		if err != nil {
			return err
		}
		fmt.Println("Success!")
		return nil
	})
}
