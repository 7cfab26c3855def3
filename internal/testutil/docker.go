package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const containerTTLSeconds = 180

func newDockerPool(t *testing.T) *dockertest.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	pool.MaxWait = 90 * time.Second
	return pool
}

func run(t *testing.T, pool *dockertest.Pool, opts *dockertest.RunOptions) *dockertest.Resource {
	t.Helper()
	resource, err := pool.RunWithOptions(opts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("start %s container: %v", opts.Repository, err)
	}
	_ = resource.Expire(containerTTLSeconds)
	t.Cleanup(func() {
		_ = pool.Purge(resource)
	})
	return resource
}

// StartPostgres runs a disposable Postgres and returns a connected pool.
func StartPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dockerPool := newDockerPool(t)
	resource := run(t, dockerPool, &dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=lodging",
			"POSTGRES_PASSWORD=lodging",
			"POSTGRES_DB=lodging",
		},
	})

	dsn := fmt.Sprintf("postgres://lodging:lodging@%s/lodging?sslmode=disable", resource.GetHostPort("5432/tcp"))
	var pool *pgxpool.Pool
	err := dockerPool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		p, err := pgxpool.New(ctx, dsn)
		if err != nil {
			return err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	})
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// StartRedis runs a disposable Redis and returns a connected client.
func StartRedis(t *testing.T) *redis.Client {
	t.Helper()
	dockerPool := newDockerPool(t)
	resource := run(t, dockerPool, &dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7-alpine",
	})

	client := redis.NewClient(&redis.Options{Addr: resource.GetHostPort("6379/tcp")})
	err := dockerPool.Retry(func() error {
		return client.Ping(context.Background()).Err()
	})
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}
