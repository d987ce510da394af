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
	"strings"
	"time"

	"yunion.io/x/log"
	"yunion.io/x/structarg"

	"yunion.io/x/cimctools/pkg/util/redfish"
	"yunion.io/x/cimctools/pkg/util/shellutils"

	_ "yunion.io/x/cimctools/cmd/cimccli/shell"
	_ "yunion.io/x/cimctools/pkg/util/redfish/cimc"
)

type BaseOptions struct {
	Help       bool   `help:"Show help" short-token:"h"`
	Debug      bool   `help:"Show debug information"`
	Insecure   bool   `help:"Skip server certificate verification" short-token:"k"`
	Timeout    int    `help:"Number of seconds to wait for a response" default:"30"`
	Driver     string `help:"Redfish driver" default:"cimc"`
	Host       string `help:"Address of the CIMC" default:"$CIMC_IP"`
	Username   string `help:"Username" short-token:"u" default:"$CIMC_USERNAME"`
	Password   string `help:"Password" short-token:"p" default:"$CIMC_PASSWORD"`
	SUBCOMMAND string `help:"cimccli subcommand" subcommand:"true"`
}

func showErrorAndExit(err error) {
	log.Errorf("%s", err)
	os.Exit(1)
}

func getSubcommandParser() (*structarg.ArgumentParser, error) {
	parser, err := structarg.NewArgumentParser(
		&BaseOptions{},
		"cimccli",
		fmt.Sprintf("Command-line interface to Redfish managers, drivers: %s", strings.Join(redfish.GetApiFactoryNames(), ",")),
		`See "cimccli help COMMAND" for help on a specific command.`,
	)
	if err != nil {
		return nil, err
	}
	subcmd := parser.GetSubcommand()
	if subcmd == nil {
		return nil, fmt.Errorf("No subcommand argument.")
	}
	type HelpOptions struct {
		SUBCOMMAND string `help:"sub-command name"`
	}
	shellutils.R(&HelpOptions{}, "help", "Show help of a subcommand", func(args *HelpOptions) error {
		helpstr, e := subcmd.SubHelpString(args.SUBCOMMAND)
		if e != nil {
			return e
		}
		fmt.Print(helpstr)
		return nil
	})
	for _, v := range shellutils.CommandTable {
		_, e := subcmd.AddSubParser(v.Options, v.Command, v.Desc, v.Callback)
		if e != nil {
			return nil, e
		}
	}
	return parser, nil
}

func newDriver(options *BaseOptions) (redfish.IRedfishDriver, error) {
	if len(options.Host) == 0 {
		return nil, fmt.Errorf("Missing host")
	}
	if len(options.Username) == 0 || len(options.Password) == 0 {
		return nil, fmt.Errorf("Missing username or password")
	}
	drv := redfish.NewRedfishDriver(options.Driver, options.Host, options.Username, options.Password, redfish.SClientOptions{
		Debug:    options.Debug,
		Insecure: options.Insecure,
		Timeout:  time.Duration(options.Timeout) * time.Second,
	})
	if drv == nil {
		return nil, fmt.Errorf("No redfish driver for %s", options.Host)
	}
	_, err := drv.Login(context.Background())
	if err != nil {
		return nil, err
	}
	return drv, nil
}

func main() {
	parser, err := getSubcommandParser()
	if err != nil {
		showErrorAndExit(err)
	}

	err = parser.ParseArgs(os.Args[1:], false)
	options := parser.Options().(*BaseOptions)

	if options.Help {
		fmt.Print(parser.HelpString())
		return
	}

	subcmd := parser.GetSubcommand()
	subparser := subcmd.GetSubParser()
	if err != nil {
		if subparser != nil {
			fmt.Print(subparser.Usage())
		} else {
			fmt.Print(parser.Usage())
		}
		showErrorAndExit(err)
		return
	}

	if options.Debug {
		log.SetLogLevelByString(log.Logger(), "debug")
	}

	suboptions := subparser.Options()
	var args []interface{}
	if options.SUBCOMMAND == "help" {
		args = append(args, suboptions)
	} else {
		drv, err := newDriver(options)
		if err != nil {
			showErrorAndExit(err)
		}
		args = append(args, drv, suboptions)
	}
	err = subcmd.Invoke(args...)
	if err != nil {
		showErrorAndExit(err)
	}
}
