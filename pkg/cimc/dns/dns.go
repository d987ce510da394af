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

package dns

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gosuri/uitable"
	"moul.io/http2curl/v2"

	"yunion.io/x/log"
	"yunion.io/x/pkg/errors"

	"yunion.io/x/cimctools/pkg/cimc/options"
	"yunion.io/x/cimctools/pkg/util/redfish"
	"yunion.io/x/cimctools/pkg/util/redfish/cimc"
)

const (
	STAGE_AUTH  = "auth"
	STAGE_APPLY = "apply"
	STAGE_DONE  = "done"
)

type SResult struct {
	Section string
	Address string
	Servers []string
	Stage   string
	Success bool
	Status  int
	Error   string
}

func newFailure(dev options.SDeviceConfig, stage string, err error) SResult {
	ret := SResult{
		Section: dev.Name,
		Address: dev.Address,
		Servers: dev.DnsServers,
		Stage:   stage,
		Error:   err.Error(),
	}
	if se := redfish.GetStatusError(err); se != nil {
		ret.Status = se.Code
		if len(se.Body) > 0 {
			ret.Error = se.Body
		}
	}
	return ret
}

// ApplyDevice creates a session and patches the DNS servers of one device.
func ApplyDevice(ctx context.Context, drv redfish.IRedfishDriver, dev options.SDeviceConfig, logout bool) SResult {
	_, err := drv.Login(ctx)
	if err != nil {
		log.Errorf("Failed to create session for CIMC: %s. %s", dev.Address, err)
		return newFailure(dev, STAGE_AUTH, err)
	}
	log.Infof("Session created successfully for CIMC: %s", dev.Address)

	if logout {
		defer func() {
			if err := drv.Logout(ctx); err != nil {
				log.Warningf("Failed to delete session of CIMC: %s. %s", dev.Address, err)
			}
		}()
	}

	err = drv.SetDNSServers(ctx, dev.DnsServers)
	if err != nil {
		log.Errorf("Failed to update DNS settings for CIMC: %s. %s", dev.Address, err)
		return newFailure(dev, STAGE_APPLY, err)
	}
	log.Infof("DNS and network settings updated successfully for CIMC: %s", dev.Address)
	return SResult{
		Section: dev.Name,
		Address: dev.Address,
		Servers: dev.DnsServers,
		Stage:   STAGE_DONE,
		Success: true,
		Status:  http.StatusOK,
	}
}

func Apply(ctx context.Context, devs []options.SDeviceConfig, opts options.SRunOptions) []SResult {
	results := make([]SResult, 0, len(devs))
	for _, dev := range devs {
		drv := opts.NewDriver(dev)
		if drv == nil {
			results = append(results, newFailure(dev, STAGE_AUTH, errors.Wrapf(redfish.ErrNotSupported, "driver %q", opts.Driver)))
			continue
		}
		results = append(results, ApplyDevice(ctx, drv, dev, opts.Logout))
	}
	return results
}

func CountFailed(results []SResult) int {
	cnt := 0
	for i := range results {
		if !results[i].Success {
			cnt++
		}
	}
	return cnt
}

func PrintResults(w io.Writer, results []SResult) {
	table := uitable.New()
	table.MaxColWidth = 80
	table.AddRow("SECTION", "ADDRESS", "DNS", "RESULT", "STAGE", "STATUS", "ERROR")
	for _, r := range results {
		result := "failed"
		if r.Success {
			result = "ok"
		}
		status := ""
		if r.Status > 0 {
			status = fmt.Sprintf("%d", r.Status)
		}
		table.AddRow(r.Section, r.Address, strings.Join(r.Servers, ","), result, r.Stage, status, r.Error)
	}
	fmt.Fprintln(w, table)
}

// DryRun renders the PATCH that would be sent to the device as a curl
// command. Nothing is sent; credentials and token are masked.
func DryRun(dev options.SDeviceConfig) (string, error) {
	payload, err := cimc.NewDNSPayload(dev.DnsServers)
	if err != nil {
		return "", errors.Wrap(err, "NewDNSPayload")
	}
	urlStr := redfish.NormalizeEndpoint(dev.Address) + cimc.NIC_PATH
	req, err := http.NewRequest(http.MethodPatch, urlStr, strings.NewReader(payload.String()))
	if err != nil {
		return "", errors.Wrapf(err, "NewRequest %s", urlStr)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic <"+dev.Username+":***>")
	req.Header.Set(redfish.AUTH_TOKEN_HEADER, "<session token>")
	cmd, err := http2curl.GetCurlCommand(req)
	if err != nil {
		return "", errors.Wrap(err, "GetCurlCommand")
	}
	return cmd.String(), nil
}
