package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultCollection = "session_mirror"
	defaultMirrorID   = "default"
)

// CredentialStore keeps the session mirror as a single document:
//
//	{_id: "default", values: {auth_token: "...", current_user: "..."}, updated_at: <unix>}
//
// Single-document updates are atomic, so Write never leaves a partial mirror.
type CredentialStore struct {
	coll     *mongo.Collection
	mirrorID string
}

// NewCredentialStore uses collection in db. Empty arguments fall back to
// defaultCollection and defaultMirrorID.
func NewCredentialStore(db *mongo.Database, collection, mirrorID string) *CredentialStore {
	if collection == "" {
		collection = defaultCollection
	}
	if mirrorID == "" {
		mirrorID = defaultMirrorID
	}
	return &CredentialStore{coll: db.Collection(collection), mirrorID: mirrorID}
}

type mirrorDoc struct {
	ID        string            `bson:"_id"`
	Values    map[string]string `bson:"values"`
	UpdatedAt int64             `bson:"updated_at"`
}

func (s *CredentialStore) Get(ctx context.Context, key string) (string, bool, error) {
	var doc mirrorDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": s.mirrorID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("credential get %s: %w", key, err)
	}
	v, ok := doc.Values[key]
	return v, ok, nil
}

// Write upserts the mirror document with one $set/$unset update.
func (s *CredentialStore) Write(ctx context.Context, set map[string]string, clear ...string) error {
	setDoc := bson.M{"updated_at": time.Now().UTC().Unix()}
	for k, v := range set {
		setDoc[field(k)] = v
	}
	update := bson.M{"$set": setDoc}
	if unset := unsetDoc(clear, set); len(unset) > 0 {
		update["$unset"] = unset
	}

	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": s.mirrorID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("credential write: %w", err)
	}
	return nil
}

func (s *CredentialStore) Delete(ctx context.Context, keys ...string) error {
	unset := unsetDoc(keys, nil)
	if len(unset) == 0 {
		return nil
	}
	update := bson.M{
		"$unset": unset,
		"$set":   bson.M{"updated_at": time.Now().UTC().Unix()},
	}
	// No upsert: deleting from a missing mirror is a no-op.
	if _, err := s.coll.UpdateOne(ctx, bson.M{"_id": s.mirrorID}, update); err != nil {
		return fmt.Errorf("credential delete: %w", err)
	}
	return nil
}

func (s *CredentialStore) Ping(ctx context.Context) error {
	if err := s.coll.Database().Client().Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}
	return nil
}

func field(key string) string {
	return "values." + key
}

// unsetDoc skips keys that are also being set; Mongo rejects an update that
// touches the same path twice.
func unsetDoc(keys []string, set map[string]string) bson.M {
	out := bson.M{}
	for _, k := range keys {
		if _, ok := set[k]; ok {
			continue
		}
		out[field(k)] = ""
	}
	return out
}
