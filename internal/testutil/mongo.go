//go:build integration

// Package testutil starts throwaway MongoDB instances for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

// MongoImage is the server image every integration suite runs against.
const MongoImage = "mongo:7.0"

const maxDBNameLen = 48

// MongoDBContainer is a running MongoDB test container.
type MongoDBContainer struct {
	Container testcontainers.Container
	URI       string
}

// SetupMongoDB starts a dedicated container. Suites that run many tests
// should prefer SetupTestMainWithMongoDB and one database per test.
func SetupMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	c, err := mongodb.Run(ctx, MongoImage)
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", MongoImage, err)
	}
	uri, err := c.ConnectionString(ctx)
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("mongo connection string: %w", err)
	}
	return &MongoDBContainer{Container: c, URI: uri}, nil
}

// Cleanup terminates the container. It is safe on a zero value.
func (m *MongoDBContainer) Cleanup(ctx context.Context) error {
	if m == nil || m.Container == nil {
		return nil
	}
	if err := m.Container.Terminate(ctx); err != nil {
		return fmt.Errorf("terminate mongo container: %w", err)
	}
	return nil
}

var shared struct {
	once sync.Once
	mu   sync.RWMutex
	c    *MongoDBContainer
	err  error
}

// GetSharedMongoDB starts the package wide container on first use.
func GetSharedMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	shared.once.Do(func() {
		c, err := SetupMongoDB(ctx)
		shared.mu.Lock()
		shared.c, shared.err = c, err
		shared.mu.Unlock()
	})
	shared.mu.RLock()
	defer shared.mu.RUnlock()
	return shared.c, shared.err
}

// CleanupSharedMongoDB stops the package wide container, if any.
func CleanupSharedMongoDB(ctx context.Context) error {
	shared.mu.Lock()
	defer shared.mu.Unlock()
	err := shared.c.Cleanup(ctx)
	shared.c = nil
	return err
}

// SetupTestMainWithMongoDB runs m against a shared container and returns
// the exit code:
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m *testing.M) int {
	if _, err := GetSharedMongoDB(ctx); err != nil {
		panic(err)
	}
	code := m.Run()
	if err := CleanupSharedMongoDB(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "testutil: %v\n", err)
	}
	return code
}

// GetSharedContainerURI returns the shared container URI. It panics when
// GetSharedMongoDB has not succeeded.
func GetSharedContainerURI() string {
	shared.mu.RLock()
	defer shared.mu.RUnlock()
	if shared.c == nil {
		panic("testutil: shared mongo container is not running")
	}
	return shared.c.URI
}

// SanitizeDBName turns a test name into a unique database name. MongoDB
// rejects slashes, dots, spaces and a few other characters in names.
func SanitizeDBName(testName string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '.', ' ', '"', '$', '*', '<', '>', ':', '|', '?':
			return '_'
		}
		return r
	}, testName)
	if len(name) > maxDBNameLen {
		name = name[:maxDBNameLen]
	}
	return fmt.Sprintf("%s_%d", name, time.Now().UnixNano()%1000000)
}
