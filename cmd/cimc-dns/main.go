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

package main

import (
	"context"
	"fmt"
	"os"

	"yunion.io/x/log"
	"yunion.io/x/structarg"

	"yunion.io/x/cimctools/pkg/cimc/dns"
	"yunion.io/x/cimctools/pkg/cimc/options"
)

type Options struct {
	options.SBaseOptions

	DryRun bool `help:"Print the update requests as curl commands without sending anything"`
}

func showErrorAndExit(err error) {
	log.Errorf("%s", err)
	os.Exit(1)
}

func main() {
	parser, err := structarg.NewArgumentParser(
		&Options{},
		"cimc-dns",
		"Set the DNS servers of Cisco CIMC devices",
		`Devices and their DNS1, DNS2 and DNS3 servers are read from the ini file given by --config.`,
	)
	if err != nil {
		showErrorAndExit(err)
	}
	err = parser.ParseArgs(os.Args[1:], false)
	opts := parser.Options().(*Options)
	if opts.Help {
		fmt.Print(parser.HelpString())
		return
	}
	if err != nil {
		fmt.Print(parser.Usage())
		showErrorAndExit(err)
	}
	opts.SetupLog()

	devs, err := opts.LoadDevices(true)
	if err != nil {
		showErrorAndExit(err)
	}

	if opts.DryRun {
		for _, dev := range devs {
			cmd, err := dns.DryRun(dev)
			if err != nil {
				showErrorAndExit(err)
			}
			fmt.Printf("# %s\n%s\n", dev, cmd)
		}
		return
	}

	results := dns.Apply(context.Background(), devs, opts.RunOptions())
	dns.PrintResults(os.Stdout, results)
	if failed := dns.CountFailed(results); failed > 0 {
		log.Errorf("%d of %d devices failed", failed, len(results))
		os.Exit(1)
	}
}
