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

	"yunion.io/x/cimctools/pkg/cimc/options"
	"yunion.io/x/cimctools/pkg/cimc/report"

	_ "yunion.io/x/cimctools/pkg/util/redfish/cimc"
)

type Options struct {
	options.SBaseOptions

	Output string `help:"Path of the JSON report" default:"cimc_report.json" short-token:"o"`
}

func showErrorAndExit(err error) {
	log.Errorf("%s", err)
	os.Exit(1)
}

func main() {
	parser, err := structarg.NewArgumentParser(
		&Options{},
		"cimc-report",
		"Collect manager and network interface details of Cisco CIMC devices",
		`Devices are read from the ini file given by --config, one section per CIMC.`,
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

	devs, err := opts.LoadDevices(false)
	if err != nil {
		showErrorAndExit(err)
	}

	rpt := report.Collect(context.Background(), devs, opts.RunOptions())
	err = rpt.Save(opts.Output)
	if err != nil {
		showErrorAndExit(err)
	}
	log.Infof("Report saved to %s (%d of %d devices)", opts.Output, rpt.Len(), len(devs))
}
