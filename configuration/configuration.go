// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/goccy/go-yaml"

	"github.com/meridian-chain/meridiand/storage"
)

// Configuration - the storage node settings read from the YAML file
type Configuration struct {
	Chain         string               `yaml:"chain"`
	DataDirectory string               `yaml:"data_directory"`
	Storage       storage.Config       `yaml:"storage"`
	Logging       logger.Configuration `yaml:"logging"`
}

// default values for absent fields
func defaultConfiguration() *Configuration {
	return &Configuration{
		Chain:         "meridian-main",
		DataDirectory: ".",
		Logging: logger.Configuration{
			Directory: "log",
			File:      "meridiand.log",
			Size:      1048576,
			Count:     10,
			Levels: map[string]string{
				logger.DefaultTag: "error",
			},
		},
	}
}

// GetConfiguration - read and validate the configuration file
//
// relative paths inside the file are resolved against the data
// directory, which itself is resolved against the file's location
func GetConfiguration(fileName string) (*Configuration, error) {
	source, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}

	options := defaultConfiguration()
	err = yaml.Unmarshal(source, options)
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Dir(fileName)
	options.DataDirectory = resolvePath(baseDir, options.DataDirectory)
	options.Logging.Directory = resolvePath(options.DataDirectory, options.Logging.Directory)

	if options.Storage.Directory == "" {
		options.Storage.Directory = "data"
	}
	options.Storage.Directory = resolvePath(options.DataDirectory, options.Storage.Directory)
	if options.Storage.Chain == "" {
		options.Storage.Chain = options.Chain
	}

	return options, nil
}

func resolvePath(baseDir string, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}
