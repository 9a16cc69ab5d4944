package services

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestSearchFilterBuildsRegexOr(t *testing.T) {
	filter := searchFilter("alice", []string{"name", "email"})

	branches, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, branches, 2)

	assert.Equal(t, bson.M{"name": bson.M{"$regex": "alice", "$options": "i"}}, branches[0])
	assert.Equal(t, bson.M{"email": bson.M{"$regex": "alice", "$options": "i"}}, branches[1])
}

func TestSearchFilterQuotesRegexMetacharacters(t *testing.T) {
	filter := searchFilter("a.b+c", []string{"name"})

	branches := filter["$or"].([]bson.M)
	pattern := branches[0]["name"].(bson.M)["$regex"].(string)
	assert.Equal(t, `a\.b\+c`, pattern)
}

func TestMergeRawFilterEmpty(t *testing.T) {
	query := bson.M{"name": "x"}
	assert.Equal(t, query, mergeRawFilter(query, ""))
}

func TestMergeRawFilterValid(t *testing.T) {
	query := bson.M{"$or": []bson.M{{"name": "x"}}}
	merged := mergeRawFilter(query, `{"status": "active"}`)

	assert.Equal(t, "active", merged["status"])
	assert.Contains(t, merged, "$or")
}

func TestMergeRawFilterCollisionFilterWins(t *testing.T) {
	query := bson.M{"status": "pending"}
	merged := mergeRawFilter(query, `{"status": "active"}`)

	assert.Equal(t, "active", merged["status"])
}

func TestMergeRawFilterMalformedIsIgnored(t *testing.T) {
	query := bson.M{"name": "x"}
	merged := mergeRawFilter(query, `{"status": "active`)

	// Unbalanced braces degrade gracefully to the search-only query
	assert.Equal(t, bson.M{"name": "x"}, merged)
}

func TestMergeRawFilterMalformedOnEmptyQuery(t *testing.T) {
	merged := mergeRawFilter(bson.M{}, `not json at all`)
	assert.Equal(t, bson.M{}, merged)
}

func TestHasAnyField(t *testing.T) {
	doc := bson.M{"userId": "u1", "extra": 1}

	assert.True(t, hasAnyField(doc, searchableFields))
	assert.False(t, hasAnyField(bson.M{"custom": "x"}, searchableFields))
}

func TestStringFieldsSkipsNonStringsAndID(t *testing.T) {
	doc := bson.M{
		"_id":     "f1e2d3",
		"title":   "hello",
		"count":   int32(3),
		"tags":    []string{"a"},
		"comment": "world",
	}

	fields := stringFields(doc)
	sort.Strings(fields)
	assert.Equal(t, []string{"comment", "title"}, fields)
}
