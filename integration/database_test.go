//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestSalespulseWithMySQL tests the salespulse CLI with a MySQL run store.
func TestSalespulseWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "salespulse",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/salespulse?parseTime=true", host, port.Port())

	// Set environment variables
	_ = os.Setenv("SALESPULSE_RUN_BACKEND", "mysql")
	_ = os.Setenv("SALESPULSE_RUN_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("SALESPULSE_RUN_BACKEND") }()
	defer func() { _ = os.Unsetenv("SALESPULSE_RUN_DB_CONNECT") }()

	runBackendSmoke(t)
}

// TestSalespulseWithPostgres tests the salespulse CLI with a PostgreSQL run store.
func TestSalespulseWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	// Set environment variables
	_ = os.Setenv("SALESPULSE_RUN_BACKEND", "postgresql")
	_ = os.Setenv("SALESPULSE_RUN_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("SALESPULSE_RUN_BACKEND") }()
	defer func() { _ = os.Unsetenv("SALESPULSE_RUN_DB_CONNECT") }()

	runBackendSmoke(t)
}

// runBackendSmoke exercises run tracking against whatever backend is set in
// the environment: migrate the schema, record a run, inspect and export it.
func runBackendSmoke(t *testing.T) {
	workDir := t.TempDir()
	dataFile := filepath.Join(workDir, "sample.csv")

	// Run salespulse runs migrate
	_, err := runSalespulseCommand(t, workDir, "runs", "migrate")
	require.NoError(t, err)

	// Run salespulse runs clear
	_, err = runSalespulseCommand(t, workDir, "runs", "clear")
	require.NoError(t, err)

	// Generate a dataset and record one analysis run
	_, err = runSalespulseCommand(t, workDir,
		"generate", dataFile, "--transactions", "1000", "--customers", "50", "--seed", "7")
	require.NoError(t, err)

	_, err = runSalespulseCommand(t, workDir, "report", dataFile, "--limit", "5")
	require.NoError(t, err)

	// Run salespulse runs status
	out, err := runSalespulseCommand(t, workDir, "runs", "status")
	require.NoError(t, err)
	require.Contains(t, out, "Total Runs")

	// Run salespulse runs export
	exportPrefix := filepath.Join(workDir, "export")
	_, err = runSalespulseCommand(t, workDir, "runs", "export", "--output-file", exportPrefix)
	require.NoError(t, err)
	require.FileExists(t, exportPrefix+".runs.parquet")
	require.FileExists(t, exportPrefix+".segment_counts.parquet")
	require.FileExists(t, exportPrefix+".forecast_points.parquet")
}
