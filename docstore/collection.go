/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dirpx.dev/rejectx"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// connectTimeout bounds Open's initial ping.
const connectTimeout = 10 * time.Second

// Collection wraps a mongo collection and converts driver errors into
// failures.
type Collection struct {
	col *mongo.Collection
}

// New wraps an existing collection.
func New(col *mongo.Collection) *Collection {
	return &Collection{col: col}
}

// Open connects to uri, pings the server and returns the named collection.
//
// uri: MongoDB connection URI, e.g. "mongodb://localhost:27017".
func Open(ctx context.Context, uri, database, collection string) (*Collection, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, rejectx.FromStore(fmt.Errorf("docstore: connect: %w", err))
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, rejectx.FromStore(fmt.Errorf("docstore: ping: %w", err))
	}
	return New(client.Database(database).Collection(collection)), nil
}

// Close disconnects the underlying client.
func (c *Collection) Close(ctx context.Context) error {
	if err := c.col.Database().Client().Disconnect(ctx); err != nil {
		return rejectx.FromStore(err)
	}
	return nil
}

// Ping checks that the server is reachable.
func (c *Collection) Ping(ctx context.Context) error {
	if err := c.col.Database().Client().Ping(ctx, nil); err != nil {
		return rejectx.FromStore(err)
	}
	return nil
}

// ParseID validates a hex ObjectID. Anything else is an invalid identifier
// carrying the offending text.
func ParseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, rejectx.InvalidIdentifier(id)
	}
	return oid, nil
}

// FindByID returns the raw document with the given _id, or (nil, nil) when
// there is none.
func (c *Collection) FindByID(ctx context.Context, id string) (bson.Raw, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	raw, err := c.col.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, rejectx.QueryFailed(err)
	}
	return raw, nil
}

// Find returns up to limit documents matching filter, newest _id first.
// A limit <= 0 means no limit.
func (c *Collection) Find(ctx context.Context, filter bson.D, limit int64) ([]bson.Raw, error) {
	if filter == nil {
		filter = bson.D{}
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := c.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, rejectx.QueryFailed(err)
	}
	defer cursor.Close(ctx)

	docs := []bson.Raw{}
	for cursor.Next(ctx) {
		// cursor.Current is reused by the next call to Next.
		docs = append(docs, append(bson.Raw(nil), cursor.Current...))
	}
	if err := cursor.Err(); err != nil {
		return nil, rejectx.QueryFailed(err)
	}
	return docs, nil
}

// Insert stores doc and returns the hex form of its new _id.
func (c *Collection) Insert(ctx context.Context, doc any) (string, error) {
	res, err := c.col.InsertOne(ctx, doc)
	if err != nil {
		return "", rejectx.FromStore(err)
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprint(res.InsertedID), nil
}

// Delete removes the document with the given _id and reports whether one
// existed.
func (c *Collection) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := ParseID(id)
	if err != nil {
		return false, err
	}
	res, err := c.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return false, rejectx.FromStore(err)
	}
	return res.DeletedCount > 0, nil
}
