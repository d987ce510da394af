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
	"fmt"

	"yunion.io/x/pkg/errors"
)

const (
	ErrAuthFailed        = errors.Error("AuthenticationFailed")
	ErrRequestFailed     = errors.Error("RequestFailed")
	ErrNotSupported      = errors.Error("NotSupported")
	ErrTooManyDNSServers = errors.Error("TooManyDNSServers")
	ErrNoSession         = errors.Error("NoSession")
)

// SStatusError is returned when a device answers with an unexpected status.
type SStatusError struct {
	Method string
	Url    string
	Code   int
	Body   string

	cause error
}

func newStatusError(cause error, method string, url string, code int, body string) *SStatusError {
	return &SStatusError{
		Method: method,
		Url:    url,
		Code:   code,
		Body:   body,
		cause:  cause,
	}
}

func (e *SStatusError) Error() string {
	msg := fmt.Sprintf("%s: %s %s status code %d", e.cause, e.Method, e.Url, e.Code)
	if len(e.Body) > 0 {
		msg += ": " + e.Body
	}
	return msg
}

func (e *SStatusError) Cause() error {
	return e.cause
}

func (e *SStatusError) Unwrap() error {
	return e.cause
}

// GetStatusError digs the status error out of a wrapped error chain.
func GetStatusError(err error) *SStatusError {
	for err != nil {
		if se, ok := err.(*SStatusError); ok {
			return se
		}
		switch e := err.(type) {
		case interface{ Unwrap() error }:
			err = e.Unwrap()
		case interface{ Cause() error }:
			err = e.Cause()
		default:
			return nil
		}
	}
	return nil
}

func IsAuthFailed(err error) bool {
	return errors.Cause(err) == ErrAuthFailed
}
