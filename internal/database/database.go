// Package database wraps the MongoDB client the API reads from.
// This file has two responsibilities:
//  1. Building one long-lived client (with its connection pool) at process start
//  2. Running the two kinds of read the API needs: first document, and all documents
//
// The Store never writes. Collections and their contents are provisioned by an
// external seeding process.
package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	// connstring parses a MongoDB URI so we can read the database named in its path.
	"go.mongodb.org/mongo-driver/v2/x/mongo/driver/connstring"
)

// DefaultURI is used when no connection string is configured, like the driver
// defaults in other MongoDB clients.
const DefaultURI = "mongodb://localhost:27017"

// Options configures Connect.
type Options struct {
	URI string
	// Database is used when URI does not name one.
	Database string
	// ServerSelectionTimeout bounds how long a read waits for a reachable server.
	ServerSelectionTimeout time.Duration
}

// Store is a read-only handle on one MongoDB database. It is created once in main
// and shared by every request; the driver's pool makes it safe for concurrent use.
type Store struct {
	opts Options

	// mu guards the fields below. The client is normally built once by Connect;
	// it is only rebuilt after a failed attempt that may succeed later.
	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database
	// err is a malformed configuration. Every read returns it, so it shows up on the
	// first request instead of stopping the server. Retrying cannot fix it.
	err error
	// lastErr is the most recent lookup or network failure while building the client.
	// It is cleared by the next successful build.
	lastErr error
}

// Connect builds the client. mongo.Connect does not dial, so an unreachable server is
// reported by the first read, not here. Construction failures are not returned either:
//   - a DNS or network failure (mongodb+srv URIs resolve their hosts while parsing) is
//     marked ErrUnavailable and the build is tried again by the next read;
//   - a malformed URI is kept, and every read reports it as an ordinary error.
//
// Check Err to log either at startup.
func Connect(opts Options) *Store {
	s := &Store{opts: opts}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = s.build()
	return s
}

// build creates the client and database handle. Callers hold mu.
func (s *Store) build() (*mongo.Database, error) {
	uri := s.opts.URI
	if uri == "" {
		uri = DefaultURI
	}

	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, s.fail(fmt.Errorf("invalid MongoDB connection string: %w", err))
	}
	dbName := cs.Database
	if dbName == "" {
		dbName = s.opts.Database
	}

	clientOpts := options.Client().ApplyURI(uri)
	if s.opts.ServerSelectionTimeout > 0 {
		clientOpts.SetServerSelectionTimeout(s.opts.ServerSelectionTimeout)
	}
	client, err := mongo.Connect(clientOpts)
	if err != nil {
		return nil, s.fail(fmt.Errorf("failed to create MongoDB client: %w", err))
	}

	s.client, s.db, s.lastErr = client, client.Database(dbName), nil
	return s.db, nil
}

// fail records a build failure and returns the error reads should see.
func (s *Store) fail(err error) error {
	if isNetError(err) {
		s.lastErr = &unavailableError{err: err}
		return s.lastErr
	}
	s.err = err
	return err
}

// database returns the handle, building the client first if an earlier attempt hit a
// lookup or network failure.
func (s *Store) database() (*mongo.Database, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db, nil
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.build()
}

// Err reports why the store has no client, or nil once one was built.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if s.db != nil {
		return nil
	}
	return s.lastErr
}

// DatabaseName returns the name of the database reads are addressed to, or "" while
// there is no client.
func (s *Store) DatabaseName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ""
	}
	return s.db.Name()
}

// FindOne returns the first document of collection in natural order, or nil when the
// collection is empty.
func (s *Store) FindOne(ctx context.Context, collection string) (bson.M, error) {
	db, err := s.database()
	if err != nil {
		return nil, err
	}

	var doc bson.M
	err = db.Collection(collection).FindOne(ctx, bson.D{}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(fmt.Errorf("find one in %s: %w", collection, err))
	}
	return doc, nil
}

// FindAll returns every document of collection in natural order. The slice is never
// nil.
func (s *Store) FindAll(ctx context.Context, collection string) ([]bson.M, error) {
	db, err := s.database()
	if err != nil {
		return nil, err
	}

	cursor, err := db.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, classify(fmt.Errorf("find in %s: %w", collection, err))
	}

	docs := []bson.M{}
	// cursor.All drains and closes the cursor.
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, classify(fmt.Errorf("read %s: %w", collection, err))
	}
	return docs, nil
}

// Ping checks that a server can be selected and answers.
func (s *Store) Ping(ctx context.Context) error {
	db, err := s.database()
	if err != nil {
		return err
	}
	if err := db.Client().Ping(ctx, nil); err != nil {
		return classify(fmt.Errorf("ping: %w", err))
	}
	return nil
}

// Close disconnects the client and drains its pool. Safe to call on a Store that never
// built one.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	client := s.client
	s.mu.Unlock()
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
