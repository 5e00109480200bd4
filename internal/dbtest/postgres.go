//go:build integration
// +build integration

// Package dbtest starts throwaway Postgres servers in docker for integration
// tests. Docker must be reachable through the standard environment variables.
package dbtest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"testing"
	"time"

	"github.com/jackc/pgx"
	"github.com/stretchr/testify/require"
)

// Credentials of every throwaway server.
const (
	User     = "test"
	Password = "test"
	Database = "test"
)

// DefaultImage is the image started when none is given.
const DefaultImage = "postgres:14"

// Postgres is a running throwaway server.
type Postgres struct {
	ContainerID string
	Config      pgx.ConnConfig
}

// URL returns the connection target of the server.
func (p *Postgres) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		p.Config.User,
		p.Config.Password,
		p.Config.Host,
		p.Config.Port,
		p.Config.Database,
	)
}

// Exec runs statements in order, failing the test on the first error.
func (p *Postgres) Exec(t testing.TB, statements ...string) {
	t.Helper()

	conn, err := pgx.Connect(p.Config)
	require.NoError(t, err)
	defer conn.Close()

	for _, s := range statements {
		_, err := conn.Exec(s)
		require.NoError(t, err, "statement failed: %s", s)
	}
}

// StartPostgres starts a server from image and waits until it accepts
// connections. The container is removed when the test ends.
func StartPostgres(t testing.TB, ctx context.Context, image string) *Postgres {
	t.Helper()

	if image == "" {
		image = DefaultImage
	}

	env := []string{
		fmt.Sprintf("POSTGRES_DB=%s", Database),
		fmt.Sprintf("POSTGRES_USER=%s", User),
		fmt.Sprintf("POSTGRES_PASSWORD=%s", Password),
	}

	id, port, err := createContainer(t, ctx, image, 5432, env, nil)
	require.NoError(t, err)

	p := &Postgres{
		ContainerID: id,
		Config: pgx.ConnConfig{
			Host:     "127.0.0.1",
			Port:     uint16(port),
			User:     User,
			Password: Password,
			Database: Database,
		},
	}
	require.True(t, waitForPostgresReady(&p.Config), "database did not become ready in allowed time")

	return p
}

func getFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer l.Close()

	return l.Addr().(*net.TCPAddr).Port, nil
}

func waitForPostgresReady(config *pgx.ConnConfig) bool {
	for count := 0; count < 30; count++ {
		conn, err := pgx.Connect(*config)
		if err == nil {
			conn.Close()
			return true
		}
		time.Sleep(2 * time.Second)
	}
	return false
}

func createContainer(t testing.TB, ctx context.Context, image string, port int, env, cmd []string) (string, int, error) {
	docker, err := newDockerClient()
	if err != nil {
		return "", 0, err
	}

	hostPort, err := getFreePort()
	if err != nil {
		return "", 0, errors.New("could not determine a free port")
	}

	id, err := docker.runContainer(
		ctx,
		&containerConfig{
			image: image,
			ports: []*portMapping{
				{
					HostPort:      fmt.Sprintf("%d", hostPort),
					ContainerPort: fmt.Sprintf("%d", port),
				},
			},
			env: env,
			cmd: cmd,
		},
		io.Discard,
	)
	if err != nil {
		return "", 0, err
	}

	t.Cleanup(func() {
		if err := docker.removeContainer(context.Background(), id); err != nil {
			t.Errorf("Could not remove container %s: %v", id, err)
		}
	})

	return id, hostPort, nil
}
