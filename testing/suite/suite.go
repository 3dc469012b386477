package suite

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	expireDuration  = 120
	maxWaitDuration = 120 * time.Second
)

const (
	mongoPort  = "27017/tcp"
	mongoImage = "mongo"
	mongoTag   = "7"

	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"

	testDatabase = "couplegames_test"
)

type Suite struct {
	*testing.T
	Logger *slog.Logger

	Database *mongo.Database
	Scores   *redis.Client
}

// NewMongo starts a throwaway MongoDB container and returns a database
// handle pointed at it.
func NewMongo(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, st, pool := newSuite(t)

	resource := runContainer(t, pool, mongoImage, mongoTag)

	mongoHost := resource.GetHostPort(mongoPort)

	var client *mongo.Client
	if err := pool.Retry(func() error {
		var err error
		client, err = mongo.Connect(ctx, options.Client().ApplyURI("mongodb://"+mongoHost))
		if err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
		return client.Ping(ctx, readpref.Primary())
	}); err != nil {
		purge(t, pool, resource)
		t.Fatalf("could not connect to mongo: %v", err)
	}

	t.Cleanup(func() {
		t.Helper()
		purge(t, pool, resource)
	})

	st.Database = client.Database(testDatabase)

	return ctx, st
}

// NewRedis starts a throwaway Redis container.
func NewRedis(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, st, pool := newSuite(t)

	resource := runContainer(t, pool, redisImage, redisTag)

	redisHost := resource.GetHostPort(redisPort)

	var redisClient *redis.Client
	if err := pool.Retry(func() error {
		redisClient = redis.NewClient(&redis.Options{
			Addr: redisHost,
		})
		return redisClient.Ping(ctx).Err()
	}); err != nil {
		purge(t, pool, resource)
		t.Fatalf("could not connect to redis: %v", err)
	}

	if err := redisClient.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush database: %v", err)
	}

	t.Cleanup(func() {
		t.Helper()
		purge(t, pool, resource)
	})

	st.Scores = redisClient

	return ctx, st
}

func newSuite(t *testing.T) (context.Context, *Suite, *dockertest.Pool) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("could not connect to docker: %v", err)
	}

	// exponential backoff-retry, because the application in the container might not be ready to accept connections yet
	pool.MaxWait = maxWaitDuration

	return ctx, &Suite{T: t, Logger: logger}, pool
}

func runContainer(t *testing.T, pool *dockertest.Pool, image, tag string) *dockertest.Resource {
	t.Helper()

	// pulls an image, creates a container based on it and runs it
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: image,
		Tag:        tag,
		Env:        []string{},
	}, func(config *docker.HostConfig) {
		// set AutoRemove to true so that stopped container goes away by itself
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start resource: %v", err)
	}

	// never returns error
	_ = resource.Expire(expireDuration) // Tell docker to hard kill the container in 120 seconds

	return resource
}

func purge(t *testing.T, pool *dockertest.Pool, resource *dockertest.Resource) {
	t.Helper()

	if err := pool.Purge(resource); err != nil {
		t.Fatalf("could not purge resource: %v", err)
	}
}
