package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/casazul/real-estate-api/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// translateWriteError converts a duplicate-key violation into a
// domain.DuplicateKeyError naming the offending field. Other errors pass
// through unchanged.
func translateWriteError(err error) error {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return err
	}
	return &domain.DuplicateKeyError{Field: duplicateField(err)}
}

// duplicateField extracts the field name from a duplicate-key error message.
// Mongo reports the violated index as "index: <field>_1 dup key".
func duplicateField(err error) string {
	var we mongo.WriteException
	msg := err.Error()
	if errors.As(err, &we) && len(we.WriteErrors) > 0 {
		msg = we.WriteErrors[0].Message
	}

	const marker = "index: "
	i := strings.Index(msg, marker)
	if i < 0 {
		return ""
	}
	rest := msg[i+len(marker):]
	if j := strings.IndexByte(rest, ' '); j >= 0 {
		rest = rest[:j]
	}
	return strings.TrimSuffix(rest, "_1")
}
