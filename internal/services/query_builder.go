package services

import (
	"context"
	"encoding/json"
	"log"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Conventional text fields searched by free-text input: identifier-like
// and contact-like names in both spellings.
var searchableFields = []string{
	"sessionId", "session_id",
	"userId", "user_id",
	"chatId", "chat_id",
	"name", "username", "email", "phone",
}

// buildBrowseFilter combines a free-text search term and a raw JSON
// filter into one predicate. An empty search and an empty or malformed
// filter yield the unrestricted predicate.
func buildBrowseFilter(ctx context.Context, coll *mongo.Collection, search, rawFilter string) bson.M {
	query := bson.M{}

	if search != "" {
		fields := searchableFields
		if sample := sampleDocument(ctx, coll); sample != nil && !hasAnyField(sample, searchableFields) {
			// None of the conventional fields exist on this collection;
			// derive the searchable set from one sampled document instead.
			if derived := stringFields(sample); len(derived) > 0 {
				fields = derived
			}
		}
		query = searchFilter(search, fields)
	}

	return mergeRawFilter(query, rawFilter)
}

// searchFilter builds a case-insensitive partial-match OR across fields.
func searchFilter(search string, fields []string) bson.M {
	pattern := regexp.QuoteMeta(search)
	or := make([]bson.M, 0, len(fields))
	for _, field := range fields {
		or = append(or, bson.M{field: bson.M{"$regex": pattern, "$options": "i"}})
	}
	return bson.M{"$or": or}
}

// mergeRawFilter overlays a raw JSON filter onto the query. Filter keys
// win on collision. A filter that fails to parse is dropped, never an
// error: malformed custom filters degrade to search-only queries.
func mergeRawFilter(query bson.M, rawFilter string) bson.M {
	if rawFilter == "" {
		return query
	}

	var custom map[string]interface{}
	if err := json.Unmarshal([]byte(rawFilter), &custom); err != nil {
		log.Printf("QueryBuilder -> mergeRawFilter -> Ignoring malformed filter: %v", err)
		return query
	}

	for key, value := range custom {
		query[key] = value
	}
	return query
}

// sampleDocument fetches one arbitrary document for schema inference.
// Returns nil when the collection is empty or unreadable.
func sampleDocument(ctx context.Context, coll *mongo.Collection) bson.M {
	var doc bson.M
	if err := coll.FindOne(ctx, bson.M{}).Decode(&doc); err != nil {
		return nil
	}
	return doc
}

func hasAnyField(doc bson.M, fields []string) bool {
	for _, field := range fields {
		if _, ok := doc[field]; ok {
			return true
		}
	}
	return false
}

// stringFields lists the top-level string-valued fields of a document,
// the only ones a partial-match search can apply to.
func stringFields(doc bson.M) []string {
	var fields []string
	for key, value := range doc {
		if key == "_id" {
			continue
		}
		if _, ok := value.(string); ok {
			fields = append(fields, key)
		}
	}
	return fields
}
