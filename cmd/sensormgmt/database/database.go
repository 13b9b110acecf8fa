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

package database

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/omeid/pgerror"
	"github.com/sensorhub/sensor-management-system/internal"
	"github.com/united-manufacturing-hub/umh-utils/env"
	"go.uber.org/zap"
)

// Db is the shared connection handle. pgxmock satisfies the interface in
// tests; production wiring assigns the pool from Connect.
var Db PgxIface

// PgxIface is the subset of pgxpool.Pool the services use.
type PgxIface interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Connect sets up the connection pool from the POSTGRES_* environment
// variables and stores it in Db.
func Connect() {
	PQHost, err := env.GetAsString("POSTGRES_HOST", false, "db")
	if err != nil {
		zap.S().Fatalf("Failed to get POSTGRES_HOST from env: %s", err)
	}
	PQPort, err := env.GetAsInt("POSTGRES_PORT", false, 5432)
	if err != nil {
		zap.S().Fatalf("Failed to get POSTGRES_PORT from env: %s", err)
	}
	PQUser, err := env.GetAsString("POSTGRES_USER", true, "")
	if err != nil {
		zap.S().Fatalf("Failed to get POSTGRES_USER from env: %s", err)
	}
	PQPassword, err := env.GetAsString("POSTGRES_PASSWORD", true, "")
	if err != nil {
		zap.S().Fatalf("Failed to get POSTGRES_PASSWORD from env: %s", err)
	}
	PQDBName, err := env.GetAsString("POSTGRES_DATABASE", true, "")
	if err != nil {
		zap.S().Fatalf("Failed to get POSTGRES_DATABASE from env: %s", err)
	}
	PQSSLMode, err := env.GetAsString("POSTGRES_SSL_MODE", false, "require")
	if err != nil {
		zap.S().Fatalf("Failed to get POSTGRES_SSL_MODE from env: %s", err)
	}

	zap.S().Infof("Connecting to %s@%s:%d/%s [%s]", PQUser, PQHost, PQPort, PQDBName, PQSSLMode)

	psqlInfo := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		PQHost, PQPort, PQUser, PQPassword, PQDBName, PQSSLMode)

	parseConfig, err := pgxpool.ParseConfig(psqlInfo)
	if err != nil {
		zap.S().Fatalf("Failed to parse config: %s", err)
	}

	parseConfig.MinConns = int32(runtime.NumCPU())
	if parseConfig.MinConns < 4 {
		parseConfig.MinConns = 4
	}
	parseConfig.MaxConnIdleTime = 5 * time.Minute
	parseConfig.MaxConnLifetime = 10 * time.Minute

	connCtx, conncnc := context.WithTimeout(context.Background(), internal.FiveSeconds)
	defer conncnc()
	pool, err := pgxpool.NewWithConfig(connCtx, parseConfig)
	if err != nil {
		zap.S().Fatalf("Failed to open database: %s", err)
	}
	Db = pool

	// The database container might still be starting up.
	for retries := int64(1); ; retries++ {
		pingCtx, pingcnc := context.WithTimeout(context.Background(), internal.FiveSeconds)
		err = Db.Ping(pingCtx)
		pingcnc()
		if err == nil {
			break
		}
		if retries > 10 {
			zap.S().Fatalf("Failed to reach database after %d retries: %s", retries, err)
		}
		backoff := internal.GetBackoffTime(retries, internal.OneSecond, internal.TenSeconds)
		zap.S().Warnf("Database not reachable yet, retrying in %s: %s", backoff, err)
		time.Sleep(backoff)
	}

	bootCtx, bootcnc := context.WithTimeout(context.Background(), 30*time.Second)
	defer bootcnc()
	if err = CreateTables(bootCtx); err != nil {
		zap.S().Fatalf("Failed to bootstrap schema: %s", err)
	}
}

// IsAvailable reports whether the database answers a ping.
func IsAvailable() bool {
	if Db == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return Db.Ping(ctx) == nil
}

// Shutdown closes all database connections
func Shutdown() {
	if Db != nil {
		Db.Close()
	}
}

// ErrorHandling logs and handles postgresql errors
func ErrorHandling(sqlStatement string, err error, isCritical bool) {
	stackTrace := make([]byte, 1024*8)
	written := runtime.Stack(stackTrace, false)
	if e := pgerror.ConnectionException(err); e != nil {
		zap.S().Errorw(
			"PostgreSQL failed: ConnectionException",
			"error", err,
			"sqlStatement", sqlStatement,
			"stackTrace", string(stackTrace[:written]),
		)
		isCritical = true
	} else {
		zap.S().Errorw(
			"PostgreSQL failed.",
			"error", err,
			"sqlStatement", sqlStatement,
			"stackTrace", string(stackTrace[:written]),
		)
	}

	if isCritical {
		zap.S().Fatalf("Critical database error, shutting down: %s", err)
	}
}
