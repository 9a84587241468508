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

package catalog

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/dolthub/go-native-worker/config"
)

// PropertiesPath returns the path of the properties file of a catalog in
// the given directory.
func PropertiesPath(dir, name string) string {
	return filepath.Join(dir, name+config.PropertiesExtension)
}

// WritePropertiesFile writes content to path, replacing any existing file.
// On failure the partial file is removed and ErrPersistenceFailed is
// returned.
func WritePropertiesFile(fs afero.Fs, path, content string) error {
	f, err := fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fail(fs, path, err)
	}

	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return fail(fs, path, err)
	}

	if err := f.Close(); err != nil {
		return fail(fs, path, err)
	}

	return nil
}

func fail(fs afero.Fs, path string, cause error) error {
	if err := fs.Remove(path); err != nil && !os.IsNotExist(err) {
		logrus.WithFields(logrus.Fields{
			"path":  path,
			"cause": cause.Error(),
		}).WithError(err).Warn("unable to remove partially written catalog file")
	}
	return ErrPersistenceFailed.Wrap(cause, path)
}
