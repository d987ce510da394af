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

package shellutils

type CMD struct {
	Options  interface{}
	Command  string
	Desc     string
	Callback interface{}
}

var CommandTable []CMD = make([]CMD, 0)

// R registers a subcommand. callback receives the parsed options as its last
// argument, after whatever the main program passes in front of it.
func R(options interface{}, command string, desc string, callback interface{}) {
	CommandTable = append(CommandTable, CMD{
		Options:  options,
		Command:  command,
		Desc:     desc,
		Callback: callback,
	})
}
