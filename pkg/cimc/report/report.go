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

package report

import (
	"context"

	"yunion.io/x/jsonutils"
	"yunion.io/x/log"
	"yunion.io/x/pkg/errors"

	"yunion.io/x/cimctools/pkg/cimc/options"
	"yunion.io/x/cimctools/pkg/util/fileutils2"
	"yunion.io/x/cimctools/pkg/util/redfish"
)

const DEFAULT_OUTPUT = "cimc_report.json"

type SReportEntry struct {
	CimcIp             string
	Managers           jsonutils.JSONObject
	EthernetInterfaces jsonutils.JSONObject
}

func (e *SReportEntry) JSON() jsonutils.JSONObject {
	ret := jsonutils.NewDict()
	ret.Add(jsonutils.NewString(e.CimcIp), "cimc_ip")
	ret.Add(e.Managers, "managers")
	ret.Add(e.EthernetInterfaces, "ethernet_interfaces")
	return ret
}

// SReport collects one entry per device that authenticated, keyed by section.
// Sections keeps the order devices were processed in; the JSON document itself
// is a dict, so its keys come out sorted.
type SReport struct {
	sections []string
	entries  map[string]*SReportEntry
}

func NewReport() *SReport {
	return &SReport{
		sections: make([]string, 0),
		entries:  make(map[string]*SReportEntry),
	}
}

func (r *SReport) Add(section string, entry *SReportEntry) {
	if _, ok := r.entries[section]; !ok {
		r.sections = append(r.sections, section)
	}
	r.entries[section] = entry
}

func (r *SReport) Get(section string) (*SReportEntry, bool) {
	entry, ok := r.entries[section]
	return entry, ok
}

func (r *SReport) Sections() []string {
	return r.sections
}

func (r *SReport) Len() int {
	return len(r.sections)
}

// JSON returns the report document. Keys are serialized in sorted order.
func (r *SReport) JSON() jsonutils.JSONObject {
	ret := jsonutils.NewDict()
	for _, section := range r.sections {
		ret.Set(section, r.entries[section].JSON())
	}
	return ret
}

func (r *SReport) Save(path string) error {
	err := fileutils2.FilePutContents(path, r.JSON().PrettyString()+"\n")
	if err != nil {
		return errors.Wrapf(err, "save report to %s", path)
	}
	return nil
}

// CollectDevice reads manager and NIC details of one device. It returns nil
// when the device could not be authenticated. The two reads are independent:
// a failed read is logged and leaves an empty object in the entry.
func CollectDevice(ctx context.Context, drv redfish.IRedfishDriver, dev options.SDeviceConfig, logout bool) *SReportEntry {
	_, err := drv.Login(ctx)
	if err != nil {
		log.Errorf("Failed to create session for CIMC: %s. %s", dev.Address, err)
		return nil
	}
	log.Infof("Session created successfully for CIMC: %s", dev.Address)

	entry := &SReportEntry{
		CimcIp: dev.Address,
	}
	entry.Managers, err = drv.GetManagers(ctx)
	if err != nil {
		log.Errorf("Failed to get managers of CIMC: %s. %s", dev.Address, err)
		entry.Managers = jsonutils.NewDict()
	}
	entry.EthernetInterfaces, err = drv.GetEthernetInterfaces(ctx)
	if err != nil {
		log.Errorf("Failed to get ethernet interfaces of CIMC: %s. %s", dev.Address, err)
		entry.EthernetInterfaces = jsonutils.NewDict()
	}

	if logout {
		if err := drv.Logout(ctx); err != nil {
			log.Warningf("Failed to delete session of CIMC: %s. %s", dev.Address, err)
		}
	}
	return entry
}

// Collect processes the devices one after another.
func Collect(ctx context.Context, devs []options.SDeviceConfig, opts options.SRunOptions) *SReport {
	report := NewReport()
	for _, dev := range devs {
		drv := opts.NewDriver(dev)
		if drv == nil {
			log.Errorf("No redfish driver for %s", dev)
			continue
		}
		entry := CollectDevice(ctx, drv, dev, opts.Logout)
		if entry != nil {
			report.Add(dev.Name, entry)
		}
	}
	return report
}
