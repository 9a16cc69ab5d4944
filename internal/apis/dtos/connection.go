package dtos

type ConnectRequest struct {
	URL      string `json:"url"`
	Database string `json:"database"`
}

type ConnectionStatusResponse struct {
	IsConnected bool   `json:"is_connected"`
	Database    string `json:"database,omitempty"`
}
