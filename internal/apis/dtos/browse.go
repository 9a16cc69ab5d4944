package dtos

// BrowseQuery carries the query parameters of a collection browse request.
// Filter is a raw JSON string; when it fails to parse it is ignored, never
// rejected.
type BrowseQuery struct {
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=20"`
	SortBy    string `form:"sortBy,default=_id"`
	SortOrder string `form:"sortOrder,default=desc"`
	Search    string `form:"search"`
	Filter    string `form:"filter"`
}

type Pagination struct {
	Page       int   `json:"page"`
	TotalPages int   `json:"total_pages"`
	Total      int64 `json:"total"`
	Limit      int   `json:"limit"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// CollectionStats mirrors the collStats numbers for one collection. The
// values are fetched per request and may be slightly stale relative to
// concurrent writes.
type CollectionStats struct {
	Size           float64 `bson:"size" json:"size"`
	Count          int64   `bson:"count" json:"count"`
	AvgObjSize     float64 `bson:"avgObjSize" json:"avg_obj_size"`
	TotalIndexSize float64 `bson:"totalIndexSize" json:"total_index_size"`
}

type BrowseResponse struct {
	Documents  []map[string]interface{} `json:"documents"`
	Fields     []string                 `json:"fields"`
	Pagination Pagination               `json:"pagination"`
	Stats      CollectionStats          `json:"stats"`
}

type CollectionSummary struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type CollectionsResponse struct {
	Collections []CollectionSummary `json:"collections"`
}
