// Copyright 2026 Dolthub, Inc.
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
	"os"

	"github.com/sirupsen/logrus"
)

// ResolveEnv replaces a value of the exact form ${NAME} with the value of
// the environment variable NAME. Any other value, or a reference to an
// unset variable, is returned unchanged.
func ResolveEnv(value string) string {
	if len(value) <= 3 || value[:2] != "${" || value[len(value)-1] != '}' {
		return value
	}

	name := value[2 : len(value)-1]
	env, ok := os.LookupEnv(name)
	if !ok {
		return value
	}

	if env == "" {
		logrus.WithField("variable", name).Warn("config environment variable is empty")
	}

	return env
}
