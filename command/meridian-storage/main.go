// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2024 Meridian Chain Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// meridian-storage - inspect a chain data store offline
//
// the store is always opened read only; a running node holds the
// exclusive write lock and this tool must never interfere with it
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/meridian-chain/meridiand/configuration"
	"github.com/meridian-chain/meridiand/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "meridian-storage"
	app.Usage = "inspect and export the chain data store"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config-file, c",
			Value: "meridiand.yaml",
			Usage: "*node configuration `FILE`",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:   "pools",
			Usage:  "list all pools with their record counts",
			Action: runPools,
		},
		{
			Name:      "dump",
			Usage:     "export one pool as JSON lines of hex key/value pairs",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "pool, p",
					Value: "",
					Usage: "*pool `NAME` as shown by the pools command",
				},
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: " output `FILE` (default is stdout)",
				},
			},
			Action: runDump,
		},
		{
			Name:   "markers",
			Usage:  "show the next expected block of every entity store",
			Action: runMarkers,
		},
		{
			Name:  "version",
			Usage: "display meridian-storage version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		if "version" == c.Args().Get(0) {
			return nil
		}

		cfg, err := configuration.GetConfiguration(c.GlobalString("config-file"))
		if err != nil {
			return err
		}

		logging := cfg.Logging
		logging.Console = false
		err = logger.Initialise(logging)
		if err != nil {
			return err
		}

		storageConfig := cfg.Storage
		storageConfig.ReadOnly = true
		return storage.Initialise(storageConfig)
	}

	app.After = func(c *cli.Context) error {
		if "version" == c.Args().Get(0) {
			return nil
		}
		err := storage.Finalise()
		logger.Finalise()
		return err
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func runPools(c *cli.Context) error {
	stats, err := storage.PoolStats()
	if err != nil {
		return err
	}
	return json.NewEncoder(c.App.Writer).Encode(stats)
}

func runDump(c *cli.Context) error {
	pool := c.String("pool")
	if "" == pool {
		return fmt.Errorf("missing pool name")
	}

	w := c.App.Writer
	fileName := c.String("file")
	if "" != fileName {
		f, err := os.Create(fileName)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return storage.DumpPool(pool, w)
}

func runMarkers(c *cli.Context) error {
	txn, err := storage.NewReadTxn()
	if err != nil {
		return err
	}
	defer txn.Done()

	markers := map[string]uint64{}
	for _, kind := range []storage.MarkerKind{
		storage.MarkerHeader,
		storage.MarkerBody,
		storage.MarkerStatus,
		storage.MarkerState,
		storage.MarkerCompiledClass,
	} {
		next, err := txn.Marker(kind)
		if err != nil {
			return err
		}
		markers[kind.String()] = next
	}
	return json.NewEncoder(c.App.Writer).Encode(markers)
}
