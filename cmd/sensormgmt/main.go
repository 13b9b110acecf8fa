// Copyright 2023 UMH Systems GmbH
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

package main

/*
Target architecture:

Incoming REST call --> http.go
Each handler in controllers/ parses the parameters and calls into services/,
which runs the database work inside a session. The session tracks every
created, updated and deleted entity and re-renders the affected search
documents into the bleve index when the transaction commits.
*/

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/heptiolabs/healthcheck"
	"github.com/sensorhub/sensor-management-system/cmd/sensormgmt/database"
	"github.com/sensorhub/sensor-management-system/cmd/sensormgmt/services"
	"github.com/sensorhub/sensor-management-system/internal"
	"github.com/sensorhub/sensor-management-system/pkg/datamodel"
	"github.com/sensorhub/sensor-management-system/pkg/search"
	"github.com/sensorhub/sensor-management-system/pkg/session"
	"github.com/united-manufacturing-hub/umh-utils/env"
	"go.elastic.co/ecszap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var buildtime string

var searchStore *search.Store
var shutdownHandler internal.GracefulShutdownHandler

func main() {
	logLevel, _ := env.GetAsString("LOGGING_LEVEL", false, "PRODUCTION") //nolint:errcheck
	encoderConfig := ecszap.NewDefaultEncoderConfig()
	var core zapcore.Core
	switch logLevel {
	case "DEVELOPMENT":
		core = ecszap.NewCore(encoderConfig, os.Stdout, zap.DebugLevel)
	default:
		core = ecszap.NewCore(encoderConfig, os.Stdout, zap.InfoLevel)
	}
	logger := zap.New(core, zap.AddCaller())
	zap.ReplaceGlobals(logger)
	defer logger.Sync() //nolint:errcheck

	zap.S().Infof("This is sensormgmt build date: %s", buildtime)

	// Loading up user accounts
	accounts := gin.Accounts{}

	for i := 1; i <= 100; i++ {
		tenantNameEnvVar := fmt.Sprintf("CUSTOMER_NAME_%d", i)
		tenantPasswordEnvVar := fmt.Sprintf("CUSTOMER_PASSWORD_%d", i)

		tenantName := os.Getenv(tenantNameEnvVar)
		tenantPassword := os.Getenv(tenantPasswordEnvVar)

		if tenantName == "" || tenantPassword == "" {
			continue
		}

		zap.S().Infof("Adding tenant %s to accounts", tenantName)
		accounts[tenantName] = tenantPassword
	}

	adminUser, err := env.GetAsString("SENSORMGMT_USER", true, "")
	if err != nil {
		zap.S().Fatal(err)
	}
	adminPassword, err := env.GetAsString("SENSORMGMT_PASSWORD", true, "")
	if err != nil {
		zap.S().Fatal(err)
	}
	accounts[adminUser] = adminPassword

	version, _ := env.GetAsString("VERSION", false, "1") //nolint:errcheck

	// Read in the redis cache configuration
	redisURI, _ := env.GetAsString("REDIS_URI", false, "")
	redisPassword, _ := env.GetAsString("REDIS_PASSWORD", false, "")
	dryRun, _ := env.GetAsString("DRY_RUN", false, "")
	internal.InitCache(redisURI, redisPassword, 0, dryRun)

	zap.S().Debugf("Setting up healthcheck")

	health := healthcheck.NewHandler()
	health.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(100))
	health.AddReadinessCheck("shutdownEnabled", isShutdownEnabled())
	if dryRun != "True" && dryRun != "true" {
		health.AddReadinessCheck("redis", func() error {
			if !internal.IsRedisAvailable() {
				return fmt.Errorf("redis unavailable")
			}
			return nil
		})
	}
	health.AddReadinessCheck("database", func() error {
		if !database.IsAvailable() {
			return fmt.Errorf("database unavailable")
		}
		return nil
	})
	go func() {
		/* #nosec G114 */
		err := http.ListenAndServe("0.0.0.0:8086", health)
		if err != nil {
			zap.S().Errorf("Error starting healthcheck: %s", err)
		}
	}()

	database.Connect()

	indexPath, err := env.GetAsString("INDEX_PATH", false, "/data/searchindex")
	if err != nil {
		zap.S().Fatal(err)
	}

	registry := search.NewRegistry()
	err = datamodel.RegisterSearchTypes(registry)
	if err != nil {
		zap.S().Fatalf("Failed to register search types: %s", err)
	}

	searchStore = search.NewStore(indexPath)
	err = searchStore.Open(registry)
	if err != nil {
		zap.S().Fatalf("Failed to open search index at %s: %s", indexPath, err)
	}

	synchronizer := search.NewSynchronizer(registry, searchStore)
	factory := session.NewFactory(database.Db, synchronizer)
	services.Setup(factory, searchStore, registry)

	SetupRestAPI(accounts, version)

	shutdownHandler = internal.NewGracefulShutdown(onShutdown)
	shutdownHandler.Wait()
}

func isShutdownEnabled() healthcheck.Check {
	return func() error {
		if shutdownHandler != nil && shutdownHandler.ShuttingDown() {
			return fmt.Errorf("shutdown")
		}
		return nil
	}
}

// onShutdown drains open requests, then closes the search index and the
// database connection.
func onShutdown() error {
	zap.S().Infof("Shutting down application")

	time.Sleep(10 * time.Second) // Wait until all remaining open connections are handled

	if searchStore != nil {
		err := searchStore.Close()
		if err != nil {
			zap.S().Errorf("Error closing search index: %s", err)
		}
	}

	database.Shutdown()
	return nil
}
