package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"mongodeck/internal/apis/dtos"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	// DefaultPruneDays is how far back pruning reaches when the request
	// does not say.
	DefaultPruneDays = 7

	// DefaultPruneField is the date field pruning compares against.
	DefaultPruneField = "lastActive"
)

// sanitizePatch strips the primary-key field unconditionally and stamps
// the server-side update time. The payload can never move a document to a
// different primary key.
func sanitizePatch(patch map[string]interface{}) {
	delete(patch, "_id")
	patch["updatedAt"] = time.Now()
}

// Update applies a patch to the document resolved from id. The primary
// key can never be overwritten through the payload; an updatedAt stamp is
// added server-side. Matching zero documents is a NotFoundError, matching
// without modifying is a success.
func (s *collectionService) Update(ctx context.Context, collection, id string, patch map[string]interface{}) (*dtos.UpdateResponse, uint, error) {
	handle, err := s.manager.Handle()
	if err != nil {
		return nil, statusForError(err), err
	}

	if len(patch) == 0 {
		validation := &ValidationError{Message: "update payload must not be empty"}
		return nil, statusForError(validation), validation
	}

	sanitizePatch(patch)

	coll := handle.Database.Collection(collection)
	filter := identifierFilter(id)

	result, err := coll.UpdateOne(ctx, filter, bson.M{"$set": patch})
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("failed to update document: %w", err)
	}
	if result.MatchedCount == 0 {
		notFound := &NotFoundError{Message: fmt.Sprintf("document %q not found in %q", id, collection)}
		return nil, statusForError(notFound), notFound
	}

	// Re-read with the same filter so the caller sees what was mutated
	var doc map[string]interface{}
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		log.Printf("CollectionService -> Update -> Error re-reading document %q: %v", id, err)
	}

	return &dtos.UpdateResponse{
		ModifiedCount: result.ModifiedCount,
		Document:      doc,
	}, http.StatusOK, nil
}

// DeleteOne removes the document resolved from id.
func (s *collectionService) DeleteOne(ctx context.Context, collection, id string) (*dtos.DeleteResponse, uint, error) {
	handle, err := s.manager.Handle()
	if err != nil {
		return nil, statusForError(err), err
	}

	result, err := handle.Database.Collection(collection).DeleteOne(ctx, identifierFilter(id))
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("failed to delete document: %w", err)
	}
	if result.DeletedCount == 0 {
		notFound := &NotFoundError{Message: fmt.Sprintf("document %q not found in %q", id, collection)}
		return nil, statusForError(notFound), notFound
	}

	return &dtos.DeleteResponse{DeletedCount: result.DeletedCount}, http.StatusOK, nil
}

// BulkDelete removes every document matched by either the ObjectID branch
// or the alternate-field branches of the partitioned id set.
func (s *collectionService) BulkDelete(ctx context.Context, collection string, ids []string) (*dtos.DeleteResponse, uint, error) {
	if len(ids) == 0 {
		validation := &ValidationError{Message: "ids must be a non-empty list"}
		return nil, statusForError(validation), validation
	}

	handle, err := s.manager.Handle()
	if err != nil {
		return nil, statusForError(err), err
	}

	result, err := handle.Database.Collection(collection).DeleteMany(ctx, bulkDeleteFilter(ids))
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("failed to bulk delete documents: %w", err)
	}

	log.Printf("CollectionService -> BulkDelete -> Deleted %d of %d requested documents from %q", result.DeletedCount, len(ids), collection)
	return &dtos.DeleteResponse{DeletedCount: result.DeletedCount}, http.StatusOK, nil
}

// pruneFilter matches documents whose dateField is strictly earlier than
// now minus days, using calendar-day subtraction. Documents lacking or
// mistyping the field fall outside the match rather than erroring.
func pruneFilter(days int, dateField string) bson.M {
	cutoff := time.Now().AddDate(0, 0, -days)
	return bson.M{dateField: bson.M{"$lt": cutoff}}
}

// PruneOlderThan deletes documents whose dateField is strictly before
// now minus days. Documents lacking or mistyping that field are simply
// excluded from the match.
func (s *collectionService) PruneOlderThan(ctx context.Context, collection string, days int, dateField string) (*dtos.DeleteResponse, uint, error) {
	if days <= 0 {
		validation := &ValidationError{Message: "days must be a positive number"}
		return nil, statusForError(validation), validation
	}
	if dateField == "" {
		dateField = DefaultPruneField
	}

	handle, err := s.manager.Handle()
	if err != nil {
		return nil, statusForError(err), err
	}

	result, err := handle.Database.Collection(collection).DeleteMany(ctx, pruneFilter(days, dateField))
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("failed to prune documents: %w", err)
	}

	log.Printf("CollectionService -> PruneOlderThan -> Deleted %d documents from %q older than %d days", result.DeletedCount, collection, days)
	return &dtos.DeleteResponse{DeletedCount: result.DeletedCount}, http.StatusOK, nil
}
