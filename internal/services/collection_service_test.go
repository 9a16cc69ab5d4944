package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"mongodeck/internal/apis/dtos"
	"mongodeck/pkg/mongodb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"defaults applied", 0, 0, 1, defaultPageLimit},
		{"negative page", -3, 10, 1, 10},
		{"limit capped", 2, 10000, 2, maxPageLimit},
		{"valid passthrough", 4, 50, 4, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := normalizePage(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPagination(t *testing.T) {
	p := newPagination(2, 10, 45)

	assert.Equal(t, dtos.Pagination{
		Page:       2,
		TotalPages: 5,
		Total:      45,
		Limit:      10,
		HasNext:    true,
		HasPrev:    true,
	}, p)
}

func TestNewPaginationBoundaries(t *testing.T) {
	first := newPagination(1, 10, 45)
	assert.True(t, first.HasNext)
	assert.False(t, first.HasPrev)

	last := newPagination(5, 10, 45)
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrev)

	empty := newPagination(1, 10, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)

	exact := newPagination(2, 10, 20)
	assert.Equal(t, 2, exact.TotalPages)
	assert.False(t, exact.HasNext)
}

func TestFieldUnion(t *testing.T) {
	docs := []map[string]interface{}{
		{"_id": 1, "name": "a"},
		{"_id": 2, "email": "b@c"},
		{"_id": 3, "name": "c", "phone": "1"},
	}

	assert.Equal(t, []string{"_id", "email", "name", "phone"}, fieldUnion(docs))
	assert.Empty(t, fieldUnion(nil))
}

func TestSanitizePatchStripsPrimaryKey(t *testing.T) {
	patch := map[string]interface{}{
		"_id":  "507f1f77bcf86cd799439011",
		"name": "y",
	}

	sanitizePatch(patch)

	_, hasID := patch["_id"]
	assert.False(t, hasID)
	assert.Equal(t, "y", patch["name"])

	stamped, ok := patch["updatedAt"].(time.Time)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), stamped, time.Second)
}

func TestOperationsFailWithServiceUnavailableWhenDisconnected(t *testing.T) {
	svc := NewCollectionService(mongodb.NewManager())
	ctx := context.Background()

	_, status, err := svc.ListCollections(ctx)
	require.Error(t, err)
	assert.Equal(t, uint(http.StatusServiceUnavailable), status)

	_, status, err = svc.Browse(ctx, "sessions", &dtos.BrowseQuery{Page: 1, Limit: 10})
	require.Error(t, err)
	assert.Equal(t, uint(http.StatusServiceUnavailable), status)

	_, status, err = svc.GetOne(ctx, "sessions", "abc")
	require.Error(t, err)
	assert.Equal(t, uint(http.StatusServiceUnavailable), status)

	_, status, err = svc.Update(ctx, "sessions", "abc", map[string]interface{}{"name": "x"})
	require.Error(t, err)
	assert.Equal(t, uint(http.StatusServiceUnavailable), status)

	_, status, err = svc.DeleteOne(ctx, "sessions", "abc")
	require.Error(t, err)
	assert.Equal(t, uint(http.StatusServiceUnavailable), status)

	_, status, err = svc.BulkDelete(ctx, "sessions", []string{"abc"})
	require.Error(t, err)
	assert.Equal(t, uint(http.StatusServiceUnavailable), status)

	_, status, err = svc.PruneOlderThan(ctx, "sessions", 7, "lastActive")
	require.Error(t, err)
	assert.Equal(t, uint(http.StatusServiceUnavailable), status)
}

func TestBulkDeleteRejectsEmptyList(t *testing.T) {
	svc := NewCollectionService(mongodb.NewManager())

	_, status, err := svc.BulkDelete(context.Background(), "sessions", nil)
	require.Error(t, err)
	assert.Equal(t, uint(http.StatusBadRequest), status)

	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestPruneFilterBuildsCutoffPredicate(t *testing.T) {
	filter := pruneFilter(7, "lastActive")

	// One strict $lt condition on the named field and nothing else, so
	// documents lacking the field are simply excluded from the match
	require.Len(t, filter, 1)
	condition, ok := filter["lastActive"].(bson.M)
	require.True(t, ok)
	require.Len(t, condition, 1)

	cutoff, ok := condition["$lt"].(time.Time)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, -7), cutoff, time.Second)
}

func TestPruneFilterHonorsCustomField(t *testing.T) {
	filter := pruneFilter(30, "createdAt")

	condition, ok := filter["createdAt"].(bson.M)
	require.True(t, ok)

	cutoff := condition["$lt"].(time.Time)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, -30), cutoff, time.Second)
}

func TestPruneRejectsNonPositiveDays(t *testing.T) {
	svc := NewCollectionService(mongodb.NewManager())

	_, status, err := svc.PruneOlderThan(context.Background(), "sessions", 0, "lastActive")
	require.Error(t, err)
	assert.Equal(t, uint(http.StatusBadRequest), status)

	_, status, err = svc.PruneOlderThan(context.Background(), "sessions", -2, "lastActive")
	require.Error(t, err)
	assert.Equal(t, uint(http.StatusBadRequest), status)
}
