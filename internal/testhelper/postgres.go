// Package testhelper spins up throwaway infrastructure for integration
// tests. Requires a reachable Docker daemon; tests call SetupPostgres and
// skip themselves in -short mode.
package testhelper

import (
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/snapdraw/raffle-api/internal/repository/dao"
)

const (
	postgresUser     = "test"
	postgresPassword = "test"
	postgresDB       = "raffle_test"
)

// SetupPostgres starts a disposable Postgres container, migrates the
// schema and returns a connected handle. The container is torn down when
// the test finishes.
func SetupPostgres(t *testing.T) *gorm.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest.NewPool: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker unavailable: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=" + postgresUser,
			"POSTGRES_PASSWORD=" + postgresPassword,
			"POSTGRES_DB=" + postgresDB,
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("pool.RunWithOptions: %v", err)
	}
	t.Cleanup(func() {
		_ = pool.Purge(resource)
	})
	_ = resource.Expire(180)

	dsn := fmt.Sprintf("host=localhost port=%s user=%s password=%s dbname=%s sslmode=disable",
		resource.GetPort("5432/tcp"), postgresUser, postgresPassword, postgresDB)

	var db *gorm.DB
	pool.MaxWait = 60 * time.Second
	if err = pool.Retry(func() error {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}

		return sqlDB.Ping()
	}); err != nil {
		t.Fatalf("connecting to test postgres: %v", err)
	}

	if err = dao.InitTables(db); err != nil {
		t.Fatalf("dao.InitTables: %v", err)
	}

	return db
}
