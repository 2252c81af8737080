//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/mkd-neo4j/mysql-control-bridge/internal/config"
	"github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"
)

const (
	mysqlImage    = "mysql:8.0.36"
	mysqlDatabase = "shop"
	mysqlUser     = "bridge"
	mysqlPassword = "bridge-secret"
)

// conn points at the shared container started by TestMain.
var conn *config.Connection

func TestMain(m *testing.M) {
	os.Exit(runTests(m))
}

func runTests(m *testing.M) int {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	container, err := tcmysql.Run(ctx, mysqlImage,
		tcmysql.WithDatabase(mysqlDatabase),
		tcmysql.WithUsername(mysqlUser),
		tcmysql.WithPassword(mysqlPassword),
		tcmysql.WithScripts(filepath.Join("testdata", "seed.sql")),
	)
	defer func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			fmt.Fprintf(os.Stderr, "failed to terminate mysql container: %v\n", err)
		}
	}()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start mysql container: %v\n", err)
		return 1
	}

	host, err := container.Host(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve container host: %v\n", err)
		return 1
	}
	port, err := container.MappedPort(ctx, "3306/tcp")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve mapped port: %v\n", err)
		return 1
	}
	portNumber, err := strconv.Atoi(port.Port())
	if err != nil {
		fmt.Fprintf(os.Stderr, "unexpected mapped port %q: %v\n", port, err)
		return 1
	}

	conn = &config.Connection{
		Host:     host,
		Port:     portNumber,
		User:     mysqlUser,
		Password: mysqlPassword,
		Database: mysqlDatabase,
	}
	return m.Run()
}
