/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Jadwal Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"
	_ "time/tzdata"

	"github.com/jadwal/jadwal/core/config"
	"github.com/jadwal/jadwal/core/server"
	"github.com/jadwal/jadwal/core/sessions"
	"github.com/jadwal/jadwal/datasources"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration")
	listen := flag.String("listen", "", "listen address, overrides the config file")
	flag.Parse()

	fmt.Println("Starting Jadwal...")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal(err)
	}

	// Register the data source and the sheet catalog
	manager := datasources.NewManager(cfg.SourceType)
	switch cfg.SourceType {
	case datasources.CsvSourceType:
		loader, err := datasources.NewCsvLoader(cfg.CsvDir, 0)
		if err != nil {
			log.Fatalf("Failed to create CSV loader: %v", err)
		}
		manager.RegisterLoader(loader)
		fmt.Printf("Reading sheets from %s\n", cfg.CsvDir)
	default:
		loader, err := datasources.NewSheetsLoader(cfg.SheetsOptions())
		if err != nil {
			log.Fatalf("Failed to create sheets loader: %v", err)
		}
		manager.RegisterLoader(loader)
		fmt.Printf("Reading sheets from %s\n", cfg.Endpoint)
	}
	manager.SetSheets(cfg.Sheets)
	fmt.Printf("Loaded %d sheets from %s\n", len(cfg.Sheets), *configPath)

	store := sessions.NewStore(manager, cfg.SessionTTL, cfg.SearchDebounce)
	go store.Run(context.Background(), time.Minute)

	srv, err := server.NewServer(manager, store, server.Options{Title: cfg.Title, Location: loc})
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	fmt.Printf("\nServer starting on http://%s\n", cfg.Listen)
	log.Fatal(http.ListenAndServe(cfg.Listen, srv.Handler()))
}
