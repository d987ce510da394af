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

package redfish

import (
	"strings"
	"testing"

	"yunion.io/x/pkg/errors"
)

func TestNormalizeEndpoint(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"10.0.0.1", "https://10.0.0.1"},
		{" 10.0.0.1 ", "https://10.0.0.1"},
		{"cimc01.example.com:8443", "https://cimc01.example.com:8443"},
		{"https://10.0.0.1/", "https://10.0.0.1"},
		{"http://127.0.0.1:8080", "http://127.0.0.1:8080"},
	}
	for _, c := range cases {
		if got := NormalizeEndpoint(c.in); got != c.want {
			t.Errorf("NormalizeEndpoint(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestStatusErrorCause(t *testing.T) {
	se := newStatusError(ErrAuthFailed, "POST", "https://10.0.0.1/redfish/v1/SessionService/Sessions", 401, "denied")
	err := errors.Wrap(se, "create session on https://10.0.0.1")
	if !IsAuthFailed(err) {
		t.Errorf("expect auth failure, got %s", err)
	}
	got := GetStatusError(err)
	if got == nil || got.Code != 401 || got.Body != "denied" {
		t.Errorf("unexpected status error %#v", got)
	}
	if !strings.Contains(se.Error(), "status code 401") {
		t.Errorf("unexpected message %s", se.Error())
	}
	if GetStatusError(ErrRequestFailed) != nil {
		t.Errorf("sentinel must not be a status error")
	}
}
