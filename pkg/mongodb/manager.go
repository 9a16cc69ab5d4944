package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	connectTimeout         = 10 * time.Second
	serverSelectionTimeout = 10 * time.Second
	disconnectTimeout      = 10 * time.Second

	// DefaultDatabaseName is used when neither the request nor the
	// connection URI names a database. Matches the mongo shell default.
	DefaultDatabaseName = "test"

	// RetryDelay is the pause between startup connection attempts.
	RetryDelay = 5 * time.Second
)

// ErrNotConnected is returned by Handle when no connection is active.
var ErrNotConnected = errors.New("no active database connection")

// Handle is a snapshot of the live connection. It stays valid for the
// duration of one operation even if the manager swaps the slot meanwhile.
type Handle struct {
	Client   *mongo.Client
	Database *mongo.Database
	Name     string
}

// DatabaseStats carries the dbStats aggregate for the selected database.
type DatabaseStats struct {
	Collections int64   `bson:"collections" json:"collections"`
	Objects     int64   `bson:"objects" json:"objects"`
	DataSize    float64 `bson:"dataSize" json:"data_size"`
	StorageSize float64 `bson:"storageSize" json:"storage_size"`
	IndexSize   float64 `bson:"indexSize" json:"index_size"`
}

// ConnectResult is what a successful Connect reports back.
type ConnectResult struct {
	Database    string        `json:"database"`
	Collections []string      `json:"collections"`
	Stats       DatabaseStats `json:"stats"`
}

type activeConn struct {
	client *mongo.Client
	dbName string
}

// Manager owns the single process-wide connection slot. Connect replaces
// the slot atomically so concurrent readers never observe a half-closed
// client; at most one connection is live at a time.
type Manager struct {
	mu   sync.RWMutex
	conn *activeConn
}

func NewManager() *Manager {
	return &Manager{}
}

// Connect opens a new connection, closing and discarding any prior one
// first. On any failure the slot is left disconnected, never half-open.
func (m *Manager) Connect(ctx context.Context, uri, dbName string) (*ConnectResult, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, fmt.Errorf("connection URL is required")
	}

	name := resolveDatabaseName(uri, dbName)

	clientOptions := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(serverSelectionTimeout)

	dialCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(dialCtx, clientOptions)
	if err != nil {
		m.clear()
		log.Printf("Manager -> Connect -> Error connecting to MongoDB: %v", err)
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping to verify the connection before publishing it
	if err := client.Ping(dialCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(dialCtx)
		m.clear()
		log.Printf("Manager -> Connect -> Error pinging MongoDB: %v", err)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	// Describe the deployment before publishing it: a client that pings
	// but cannot list collections must never occupy the slot
	result, err := m.describe(ctx, client, name)
	if err != nil {
		closeClient(client)
		m.clear()
		log.Printf("Manager -> Connect -> Error describing database %q: %v", name, err)
		return nil, err
	}

	// Swap the slot: publish the new connection, then close the old one
	m.mu.Lock()
	old := m.conn
	m.conn = &activeConn{client: client, dbName: name}
	m.mu.Unlock()

	if old != nil {
		closeClient(old.client)
	}

	log.Printf("Manager -> Connect -> Connected to database %q (%d collections)", name, len(result.Collections))
	return result, nil
}

// Disconnect closes the active connection if present and clears the slot.
// Safe to call when already disconnected.
func (m *Manager) Disconnect(ctx context.Context) error {
	m.mu.Lock()
	old := m.conn
	m.conn = nil
	m.mu.Unlock()

	if old == nil {
		return nil
	}

	closeClient(old.client)
	log.Printf("Manager -> Disconnect -> Disconnected from database %q", old.dbName)
	return nil
}

// Handle returns the live handle or ErrNotConnected. Every component must
// go through this before issuing a query.
func (m *Manager) Handle() (*Handle, error) {
	m.mu.RLock()
	conn := m.conn
	m.mu.RUnlock()

	if conn == nil {
		return nil, ErrNotConnected
	}

	return &Handle{
		Client:   conn.client,
		Database: conn.client.Database(conn.dbName),
		Name:     conn.dbName,
	}, nil
}

// Connected reports whether a connection is currently active.
func (m *Manager) Connected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.conn != nil
}

// Stats fetches the dbStats aggregate for the selected database.
func (m *Manager) Stats(ctx context.Context) (*DatabaseStats, error) {
	handle, err := m.Handle()
	if err != nil {
		return nil, err
	}

	var stats DatabaseStats
	if err := handle.Database.RunCommand(ctx, bson.D{{Key: "dbStats", Value: 1}}).Decode(&stats); err != nil {
		return nil, fmt.Errorf("failed to fetch database stats: %w", err)
	}
	return &stats, nil
}

// AutoConnect keeps retrying the configured URI until a connection
// succeeds. Used on startup when the URI comes from the environment; it
// shares the same slot as explicit connect requests, so the loop stops
// as soon as any connection is live rather than replacing one an
// operator made by hand.
func (m *Manager) AutoConnect(ctx context.Context, uri, dbName string) {
	for {
		if m.Connected() {
			return
		}

		if _, err := m.Connect(ctx, uri, dbName); err == nil {
			return
		} else {
			log.Printf("Manager -> AutoConnect -> Connection failed, retrying in %s: %v", RetryDelay, err)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(RetryDelay):
		}
	}
}

func (m *Manager) describe(ctx context.Context, client *mongo.Client, name string) (*ConnectResult, error) {
	db := client.Database(name)

	collections, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	if collections == nil {
		collections = []string{}
	}

	var stats DatabaseStats
	if err := db.RunCommand(ctx, bson.D{{Key: "dbStats", Value: 1}}).Decode(&stats); err != nil {
		log.Printf("Manager -> describe -> Error fetching dbStats: %v", err)
	}

	return &ConnectResult{
		Database:    name,
		Collections: collections,
		Stats:       stats,
	}, nil
}

func (m *Manager) clear() {
	m.mu.Lock()
	old := m.conn
	m.conn = nil
	m.mu.Unlock()

	if old != nil {
		closeClient(old.client)
	}
}

func closeClient(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		log.Printf("Manager -> closeClient -> Error disconnecting from MongoDB: %v", err)
	}
}

// resolveDatabaseName picks the database: the explicit parameter wins,
// then the URI path segment, then the fixed fallback.
func resolveDatabaseName(uri, dbName string) string {
	if dbName != "" {
		return dbName
	}

	if parsed, err := url.Parse(uri); err == nil {
		if name := strings.Trim(parsed.Path, "/"); name != "" {
			return name
		}
	}

	return DefaultDatabaseName
}
