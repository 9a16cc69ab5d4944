package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"

	"mongodeck/internal/apis/dtos"
	"mongodeck/pkg/mongodb"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 200
)

type CollectionService interface {
	ListCollections(ctx context.Context) (*dtos.CollectionsResponse, uint, error)
	Browse(ctx context.Context, collection string, query *dtos.BrowseQuery) (*dtos.BrowseResponse, uint, error)
	GetOne(ctx context.Context, collection, id string) (map[string]interface{}, uint, error)
	Update(ctx context.Context, collection, id string, patch map[string]interface{}) (*dtos.UpdateResponse, uint, error)
	DeleteOne(ctx context.Context, collection, id string) (*dtos.DeleteResponse, uint, error)
	BulkDelete(ctx context.Context, collection string, ids []string) (*dtos.DeleteResponse, uint, error)
	PruneOlderThan(ctx context.Context, collection string, days int, dateField string) (*dtos.DeleteResponse, uint, error)
}

type collectionService struct {
	manager *mongodb.Manager
}

func NewCollectionService(manager *mongodb.Manager) CollectionService {
	return &collectionService{manager: manager}
}

// ListCollections enumerates all collections with a fresh document count
// for each. Counts are never cached.
func (s *collectionService) ListCollections(ctx context.Context) (*dtos.CollectionsResponse, uint, error) {
	handle, err := s.manager.Handle()
	if err != nil {
		return nil, statusForError(err), err
	}

	names, err := handle.Database.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("failed to list collections: %w", err)
	}
	sort.Strings(names)

	collections := make([]dtos.CollectionSummary, 0, len(names))
	for _, name := range names {
		count, err := handle.Database.Collection(name).CountDocuments(ctx, bson.M{})
		if err != nil {
			return nil, http.StatusInternalServerError, fmt.Errorf("failed to count documents in %q: %w", name, err)
		}
		collections = append(collections, dtos.CollectionSummary{Name: name, Count: count})
	}

	return &dtos.CollectionsResponse{Collections: collections}, http.StatusOK, nil
}

// Browse pages through a collection: count, then fetch one sorted page,
// then derive metadata from what came back.
func (s *collectionService) Browse(ctx context.Context, collection string, query *dtos.BrowseQuery) (*dtos.BrowseResponse, uint, error) {
	handle, err := s.manager.Handle()
	if err != nil {
		return nil, statusForError(err), err
	}

	page, limit := normalizePage(query.Page, query.Limit)
	coll := handle.Database.Collection(collection)
	filter := buildBrowseFilter(ctx, coll, query.Search, query.Filter)

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("failed to count documents: %w", err)
	}

	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = "_id"
	}
	direction := 1
	if query.SortOrder == "desc" {
		direction = -1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortBy, Value: direction}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("failed to fetch documents: %w", err)
	}
	defer cursor.Close(ctx)

	documents := []map[string]interface{}{}
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("failed to decode documents: %w", err)
	}

	return &dtos.BrowseResponse{
		Documents:  documents,
		Fields:     fieldUnion(documents),
		Pagination: newPagination(page, limit, total),
		Stats:      s.collectionStats(ctx, handle, collection),
	}, http.StatusOK, nil
}

// GetOne fetches a single document via the identifier resolver.
func (s *collectionService) GetOne(ctx context.Context, collection, id string) (map[string]interface{}, uint, error) {
	handle, err := s.manager.Handle()
	if err != nil {
		return nil, statusForError(err), err
	}

	var doc map[string]interface{}
	err = handle.Database.Collection(collection).FindOne(ctx, identifierFilter(id)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		notFound := &NotFoundError{Message: fmt.Sprintf("document %q not found in %q", id, collection)}
		return nil, statusForError(notFound), notFound
	}
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("failed to fetch document: %w", err)
	}

	return doc, http.StatusOK, nil
}

// collectionStats fetches collStats for one collection per request. A
// stats failure degrades to zero values instead of failing the browse.
func (s *collectionService) collectionStats(ctx context.Context, handle *mongodb.Handle, collection string) dtos.CollectionStats {
	var stats dtos.CollectionStats
	cmd := bson.D{{Key: "collStats", Value: collection}}
	if err := handle.Database.RunCommand(ctx, cmd).Decode(&stats); err != nil {
		log.Printf("CollectionService -> collectionStats -> Error fetching stats for %q: %v", collection, err)
	}
	return stats
}

// fieldUnion collects the top-level keys observed across one page of
// documents. An approximation of the schema, not guaranteed complete.
func fieldUnion(documents []map[string]interface{}) []string {
	seen := make(map[string]struct{})
	for _, doc := range documents {
		for key := range doc {
			seen[key] = struct{}{}
		}
	}

	fields := make([]string, 0, len(seen))
	for key := range seen {
		fields = append(fields, key)
	}
	sort.Strings(fields)
	return fields
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func newPagination(page, limit int, total int64) dtos.Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return dtos.Pagination{
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
		Limit:      limit,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
