package dtos

type UpdateResponse struct {
	ModifiedCount int64                  `json:"modified_count"`
	Document      map[string]interface{} `json:"document,omitempty"`
}

type DeleteResponse struct {
	DeletedCount int64 `json:"deleted_count"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

type PruneRequest struct {
	Days      int    `json:"days"`
	DateField string `json:"dateField"`
}
