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

// Package fakecimc serves the subset of the CIMC Redfish API used by the
// cimc tools over an httptest TLS server. It is meant for tests.
package fakecimc

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"yunion.io/x/jsonutils"
)

const (
	SessionsPath           = "/redfish/v1/SessionService/Sessions"
	SessionPath            = "/redfish/v1/SessionService/Sessions/1"
	ManagersPath           = "/redfish/v1/Managers"
	ManagerPath            = "/redfish/v1/Managers/CIMC"
	EthernetInterfacesPath = "/redfish/v1/Managers/CIMC/EthernetInterfaces"
	NicPath                = "/redfish/v1/Managers/CIMC/EthernetInterfaces/NICs"
)

type SRequest struct {
	Method   string
	Path     string
	Token    string
	Username string
	Password string
	Body     string
}

type SFakeCIMC struct {
	Server *httptest.Server

	Username string
	Password string
	Token    string

	SessionStatus  int
	ManagersStatus int
	NicStatus      int
	PatchStatus    int
	PatchError     string
	// PatchReply replaces the NIC JSON sent back by a successful PATCH.
	PatchReply string

	lock     sync.Mutex
	requests []SRequest
	nic      *jsonutils.JSONDict
}

func NewFakeCIMC(username, password string) *SFakeCIMC {
	s := &SFakeCIMC{
		Username:       username,
		Password:       password,
		Token:          "fake-token-" + username,
		SessionStatus:  http.StatusCreated,
		ManagersStatus: http.StatusOK,
		NicStatus:      http.StatusOK,
		PatchStatus:    http.StatusOK,
		PatchError:     `{"error":{"code":"Base.1.4.GeneralError","message":"patch rejected"}}`,
	}
	s.nic = jsonutils.NewDict()
	s.nic.Add(jsonutils.NewString(NicPath), "@odata.id")
	s.nic.Add(jsonutils.NewString("NICs"), "Id")
	s.nic.Add(jsonutils.NewString("Manager Ethernet Interface"), "Name")
	s.nic.Add(jsonutils.NewString("00:25:B5:00:00:01"), "MACAddress")
	s.nic.Add(jsonutils.NewStringArray([]string{"8.8.8.8"}), "NameServers")
	s.nic.Add(jsonutils.NewStringArray([]string{"8.8.8.8"}), "StaticNameServers")
	s.Server = httptest.NewTLSServer(http.HandlerFunc(s.serve))
	return s
}

func (s *SFakeCIMC) Address() string {
	return s.Server.URL
}

func (s *SFakeCIMC) Close() {
	s.Server.Close()
}

func (s *SFakeCIMC) Requests() []SRequest {
	s.lock.Lock()
	defer s.lock.Unlock()
	ret := make([]SRequest, len(s.requests))
	copy(ret, s.requests)
	return ret
}

func (s *SFakeCIMC) RequestsTo(method, path string) []SRequest {
	ret := make([]SRequest, 0)
	for _, req := range s.Requests() {
		if req.Method == method && req.Path == path {
			ret = append(ret, req)
		}
	}
	return ret
}

func (s *SFakeCIMC) Nic() jsonutils.JSONObject {
	s.lock.Lock()
	defer s.lock.Unlock()
	obj, _ := jsonutils.ParseString(s.nic.String())
	return obj
}

func writeJSON(w http.ResponseWriter, status int, obj jsonutils.JSONObject) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if obj != nil {
		w.Write([]byte(obj.String()))
	}
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.WriteHeader(status)
	w.Write([]byte(text))
}

func collection(links ...string) *jsonutils.JSONDict {
	members := jsonutils.NewArray()
	for _, link := range links {
		member := jsonutils.NewDict()
		member.Add(jsonutils.NewString(link), "@odata.id")
		members.Add(member)
	}
	ret := jsonutils.NewDict()
	ret.Add(members, "Members")
	ret.Add(jsonutils.NewInt(int64(len(links))), "Members@odata.count")
	return ret
}

func (s *SFakeCIMC) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	username, password, _ := r.BasicAuth()

	s.lock.Lock()
	defer s.lock.Unlock()

	s.requests = append(s.requests, SRequest{
		Method:   r.Method,
		Path:     r.URL.Path,
		Token:    r.Header.Get("X-Auth-Token"),
		Username: username,
		Password: password,
		Body:     string(body),
	})

	if r.Method == http.MethodPost && r.URL.Path == SessionsPath {
		if s.SessionStatus != http.StatusCreated {
			writeText(w, s.SessionStatus, `{"error":"login failed"}`)
			return
		}
		params, err := jsonutils.Parse(body)
		if err != nil {
			writeText(w, http.StatusBadRequest, err.Error())
			return
		}
		user, _ := params.GetString("UserName")
		passwd, _ := params.GetString("Password")
		if user != s.Username || passwd != s.Password {
			writeText(w, http.StatusUnauthorized, `{"error":"bad credential"}`)
			return
		}
		resp := jsonutils.NewDict()
		resp.Add(jsonutils.NewString(SessionPath), "@odata.id")
		if len(s.Token) > 0 {
			resp.Add(jsonutils.NewString(s.Token), "Token")
		}
		w.Header().Set("Location", SessionPath)
		writeJSON(w, http.StatusCreated, resp)
		return
	}

	if r.Header.Get("X-Auth-Token") != s.Token {
		writeText(w, http.StatusUnauthorized, `{"error":"no valid session"}`)
		return
	}

	switch {
	case r.Method == http.MethodDelete && r.URL.Path == SessionPath:
		w.WriteHeader(http.StatusNoContent)
	case r.Method == http.MethodGet && r.URL.Path == ManagersPath:
		if s.ManagersStatus != http.StatusOK {
			writeText(w, s.ManagersStatus, `{"error":"managers unavailable"}`)
			return
		}
		resp := collection(ManagerPath)
		resp.Add(jsonutils.NewString("Manager Collection"), "Name")
		writeJSON(w, http.StatusOK, resp)
	case r.Method == http.MethodGet && r.URL.Path == ManagerPath:
		resp := jsonutils.NewDict()
		resp.Add(jsonutils.NewString("CIMC"), "Id")
		resp.Add(jsonutils.NewString(EthernetInterfacesPath), "EthernetInterfaces", "@odata.id")
		writeJSON(w, http.StatusOK, resp)
	case r.Method == http.MethodGet && r.URL.Path == EthernetInterfacesPath:
		writeJSON(w, http.StatusOK, collection(NicPath))
	case r.Method == http.MethodGet && r.URL.Path == NicPath:
		if s.NicStatus != http.StatusOK {
			writeText(w, s.NicStatus, `{"error":"nic unavailable"}`)
			return
		}
		writeJSON(w, http.StatusOK, s.nic)
	case r.Method == http.MethodPatch && r.URL.Path == NicPath:
		if s.PatchStatus != http.StatusOK {
			writeText(w, s.PatchStatus, s.PatchError)
			return
		}
		params, err := jsonutils.Parse(body)
		if err != nil {
			writeText(w, http.StatusBadRequest, err.Error())
			return
		}
		for _, key := range []string{"NameServers", "StaticNameServers"} {
			if srvs, err := jsonutils.GetStringArray(params, key); err == nil {
				s.nic.Set(key, jsonutils.NewStringArray(srvs))
			}
		}
		if len(s.PatchReply) > 0 {
			writeText(w, http.StatusOK, s.PatchReply)
			return
		}
		writeJSON(w, http.StatusOK, s.nic)
	default:
		writeText(w, http.StatusNotFound, `{"error":"not found"}`)
	}
}
