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
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"

	"yunion.io/x/jsonutils"
	"yunion.io/x/log"
	"yunion.io/x/pkg/errors"
	"yunion.io/x/pkg/util/httputils"
)

const (
	AUTH_TOKEN_HEADER = "X-Auth-Token"
)

// SBaseRedfishClient implements the session workflow shared by every driver.
// Driver specific paths are resolved through the virtual object so that an
// embedding driver can override them.
type SBaseRedfishClient struct {
	object IRedfishDriver

	client   *http.Client
	endpoint string
	username string
	password string

	session *SSession

	IsDebug bool
}

func NewBaseRedfishClient(endpoint, username, password string, opts SClientOptions) SBaseRedfishClient {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DEFAULT_TIMEOUT
	}
	return SBaseRedfishClient{
		client:   httputils.GetClient(opts.Insecure, timeout),
		endpoint: endpoint,
		username: username,
		password: password,
		IsDebug:  opts.Debug,
	}
}

func (r *SBaseRedfishClient) SetVirtualObject(drv IRedfishDriver) {
	r.object = drv
}

func (r *SBaseRedfishClient) IRedfishDriver() IRedfishDriver {
	return r.object
}

func (r *SBaseRedfishClient) GetHost() string {
	return r.endpoint
}

func (r *SBaseRedfishClient) GetSession() *SSession {
	return r.session
}

func (r *SBaseRedfishClient) SessionsPath() string {
	return r.IRedfishDriver().BasePath() + "/SessionService/Sessions"
}

func (r *SBaseRedfishClient) ManagersPath() string {
	return r.IRedfishDriver().BasePath() + "/Managers"
}

func (r *SBaseRedfishClient) basicAuth() string {
	cred := r.username + ":" + r.password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(cred))
}

// AuthHeader returns the headers every request to the device carries: basic
// auth, plus the session token once a session exists.
func (r *SBaseRedfishClient) AuthHeader() http.Header {
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("Authorization", r.basicAuth())
	if r.session != nil {
		header.Set(AUTH_TOKEN_HEADER, r.session.Token)
	}
	return header
}

func (r *SBaseRedfishClient) GetUrl(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return httputils.JoinPath(r.endpoint, path)
}

func (r *SBaseRedfishClient) request(ctx context.Context, method httputils.THttpMethod, path string, body jsonutils.JSONObject, failure errors.Error, expects ...int) (http.Header, jsonutils.JSONObject, error) {
	urlStr := r.GetUrl(path)
	if err := ctx.Err(); err != nil {
		return nil, nil, errors.Wrapf(err, "%s %s", method, urlStr)
	}
	header := r.AuthHeader()
	var reader io.Reader
	if body != nil {
		reader = strings.NewReader(body.String())
	}
	resp, err := httputils.Request(r.client, ctx, method, urlStr, header, reader, r.IsDebug)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "%s %s", method, urlStr)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "read %s %s", method, urlStr)
	}
	if r.IsDebug {
		log.Debugf("%s %s: %d %s", method, urlStr, resp.StatusCode, string(data))
	}

	expected := false
	for _, code := range expects {
		if resp.StatusCode == code {
			expected = true
			break
		}
	}
	if !expected {
		return resp.Header, nil, newStatusError(failure, string(method), urlStr, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return resp.Header, jsonutils.NewDict(), nil
	}
	// the status alone decides success; a body that is not JSON is kept as text
	obj, err := jsonutils.Parse(data)
	if err != nil {
		log.Debugf("%s %s: response is not JSON: %s", method, urlStr, err)
		return resp.Header, jsonutils.NewString(string(data)), nil
	}
	return resp.Header, obj, nil
}

// Login creates a session. Only 201 Created counts as success.
func (r *SBaseRedfishClient) Login(ctx context.Context) (*SSession, error) {
	r.session = nil
	params := jsonutils.NewDict()
	params.Set("UserName", jsonutils.NewString(r.username))
	params.Set("Password", jsonutils.NewString(r.password))
	hdr, resp, err := r.request(ctx, httputils.POST, r.IRedfishDriver().SessionsPath(), params, ErrAuthFailed, http.StatusCreated)
	if err != nil {
		return nil, errors.Wrapf(err, "create session on %s", r.endpoint)
	}
	session := &SSession{
		Host: r.endpoint,
	}
	session.Token, _ = resp.GetString("Token")
	if hdr != nil {
		session.Location = hdr.Get("Location")
	}
	if len(session.Location) == 0 {
		session.Location, _ = resp.GetString(r.IRedfishDriver().LinkKey())
	}
	r.session = session
	return session, nil
}

// Logout deletes the session created by Login.
func (r *SBaseRedfishClient) Logout(ctx context.Context) error {
	if r.session == nil {
		return ErrNoSession
	}
	if len(r.session.Location) == 0 {
		return errors.Wrap(ErrNotSupported, "session has no location")
	}
	_, _, err := r.request(ctx, httputils.DELETE, r.session.Location, nil, ErrRequestFailed, http.StatusOK, http.StatusNoContent)
	if err != nil {
		return errors.Wrapf(err, "delete session %s", r.session.Location)
	}
	r.session = nil
	return nil
}

func (r *SBaseRedfishClient) Get(ctx context.Context, path string) (jsonutils.JSONObject, error) {
	_, resp, err := r.request(ctx, httputils.GET, path, nil, ErrRequestFailed, http.StatusOK)
	return resp, err
}

func (r *SBaseRedfishClient) Patch(ctx context.Context, path string, body jsonutils.JSONObject) (jsonutils.JSONObject, error) {
	_, resp, err := r.request(ctx, httputils.PATCH, path, body, ErrRequestFailed, http.StatusOK)
	return resp, err
}

func (r *SBaseRedfishClient) GetManagers(ctx context.Context) (jsonutils.JSONObject, error) {
	path := r.IRedfishDriver().ManagersPath()
	resp, err := r.Get(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "Get %s", path)
	}
	return resp, nil
}

func (r *SBaseRedfishClient) GetEthernetInterfaces(ctx context.Context) (jsonutils.JSONObject, error) {
	path, err := r.IRedfishDriver().GetEthernetInterfacePath(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "GetEthernetInterfacePath")
	}
	resp, err := r.Get(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "Get %s", path)
	}
	return resp, nil
}

// GetDNSServers prefers the statically configured name servers and falls back
// to the ones in effect.
func (r *SBaseRedfishClient) GetDNSServers(ctx context.Context) ([]string, error) {
	nic, err := r.IRedfishDriver().GetEthernetInterfaces(ctx)
	if err != nil {
		return nil, err
	}
	for _, key := range []string{"StaticNameServers", "NameServers"} {
		srvs, _ := jsonutils.GetStringArray(nic, key)
		if len(srvs) > 0 {
			return srvs, nil
		}
	}
	return []string{}, nil
}

func (r *SBaseRedfishClient) SetDNSServers(ctx context.Context, servers []string) error {
	return errors.Wrapf(ErrNotSupported, "SetDNSServers on %s", r.endpoint)
}

// GetResource follows the first member link of each collection on the way
// down from base, e.g. GetResource(ctx, "/redfish/v1/Managers", "EthernetInterfaces").
func (r *SBaseRedfishClient) GetResource(ctx context.Context, base string, keys ...string) (string, jsonutils.JSONObject, error) {
	drv := r.IRedfishDriver()
	path := base
	resp, err := r.Get(ctx, path)
	if err != nil {
		return "", nil, errors.Wrapf(err, "Get %s", path)
	}
	for i := 0; i <= len(keys); i++ {
		if resp.Contains(drv.MemberKey()) {
			members, err := resp.GetArray(drv.MemberKey())
			if err != nil {
				return "", nil, errors.Wrapf(err, "GetArray %s of %s", drv.MemberKey(), path)
			}
			if len(members) == 0 {
				return "", nil, errors.Wrapf(errors.ErrNotFound, "empty collection %s", path)
			}
			link, err := members[0].GetString(drv.LinkKey())
			if err != nil {
				return "", nil, errors.Wrapf(err, "member link of %s", path)
			}
			path = link
			resp, err = r.Get(ctx, path)
			if err != nil {
				return "", nil, errors.Wrapf(err, "Get %s", path)
			}
		}
		if i == len(keys) {
			break
		}
		next, err := resp.GetString(keys[i], drv.LinkKey())
		if err != nil {
			return "", nil, errors.Wrap(errors.ErrNotFound, fmt.Sprintf("no %s link in %s", keys[i], path))
		}
		path = next
		resp, err = r.Get(ctx, path)
		if err != nil {
			return "", nil, errors.Wrapf(err, "Get %s", path)
		}
	}
	return path, resp, nil
}
