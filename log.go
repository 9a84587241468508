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

package worker

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log field names shared by the worker components.
const (
	CatalogLogField   = "catalog"
	ConnectorLogField = "connector"
	PathLogField      = "path"
	NodeLogField      = "node"
)

// Log formats.
const (
	TextLogFormat = "text"
	JSONLogFormat = "json"
)

// ConfigureLogging sets the level and format of the standard logrus
// logger, which every component logs through.
func ConfigureLogging(level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}

	logrus.SetLevel(lvl)
	logrus.SetOutput(os.Stderr)

	switch format {
	case JSONLogFormat:
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return nil
}
