// Copyright 2025 walteh LLC
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

package config

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// ❌ ErrorKind classifies why a configuration was rejected
type ErrorKind int

const (
	MissingField ErrorKind = iota + 1
	InvalidGlob
	UnknownEngine
	InvalidValue
	Malformed
)

func (k ErrorKind) String() string {
	switch k {
	case MissingField:
		return "missing field"
	case InvalidGlob:
		return "invalid glob"
	case UnknownEngine:
		return "unknown engine"
	case InvalidValue:
		return "invalid value"
	case Malformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// 🚫 ConfigError is returned for every rejected configuration. Load never
// returns a config alongside it.
type ConfigError struct {
	Kind  ErrorKind
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("config: %s: %s", e.Kind, e.Field)
	}
	return fmt.Sprintf("config: %s: %s: %v", e.Kind, e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a ConfigError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var cerr *ConfigError
	return errors.As(err, &cerr) && cerr.Kind == kind
}

func missing(field string) error {
	return &ConfigError{Kind: MissingField, Field: field}
}

func invalid(field string, err error) error {
	return &ConfigError{Kind: InvalidValue, Field: field, Err: err}
}
