// main.go
//
// Citenote: manuscripts, papers and citations with session authentication
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of citenote.
// citenote is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// citenote is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with citenote.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/yashodhanketkar/citenote/internal/config"
	"github.com/yashodhanketkar/citenote/internal/database"
	"github.com/yashodhanketkar/citenote/internal/logging"
	"github.com/yashodhanketkar/citenote/internal/services"
	"github.com/yashodhanketkar/citenote/internal/session"
	"github.com/yashodhanketkar/citenote/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New("warn", false)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	// Connect to database (records pool)
	appDB, err := database.Connect(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(appDB)

	var sessions session.Store = session.NewMemoryStore(cfg.SessionTTL)
	if cfg.SessionStore == "redis" {
		client := session.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer client.Close()
		sessions = session.NewRedisStore(client, cfg.SessionTTL)
	}

	// Perform health check
	result := services.HealthCheck(context.Background(), cfg, appDB, sessions, logger)
	if err := utils.PingServer(cfg.Port); err != nil {
		result.Status = "unhealthy"
		result.Details["server_error"] = err.Error()
		result.ErrorMessage = "Server not listening: " + err.Error()
	}

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	// Exit with appropriate code
	if result.Status != "healthy" {
		os.Exit(1)
	}
	os.Exit(0)
}
