package services

import (
	"context"
	"net/http"
	"strings"

	"mongodeck/internal/apis/dtos"
	"mongodeck/pkg/mongodb"
)

type ConnectionService interface {
	Connect(ctx context.Context, req *dtos.ConnectRequest) (*mongodb.ConnectResult, uint, error)
	Disconnect(ctx context.Context) (*dtos.ConnectionStatusResponse, uint, error)
	Status() *dtos.ConnectionStatusResponse
	Stats(ctx context.Context) (*mongodb.DatabaseStats, uint, error)
}

type connectionService struct {
	manager *mongodb.Manager
}

func NewConnectionService(manager *mongodb.Manager) ConnectionService {
	return &connectionService{manager: manager}
}

// Connect opens a new connection, replacing any prior one. A failed
// attempt always leaves the manager disconnected.
func (s *connectionService) Connect(ctx context.Context, req *dtos.ConnectRequest) (*mongodb.ConnectResult, uint, error) {
	if strings.TrimSpace(req.URL) == "" {
		validation := &ValidationError{Message: "connection URL is required"}
		return nil, statusForError(validation), validation
	}

	result, err := s.manager.Connect(ctx, req.URL, req.Database)
	if err != nil {
		connErr := &ConnectionError{Message: err.Error(), Err: err}
		return nil, statusForError(connErr), connErr
	}

	return result, http.StatusOK, nil
}

// Disconnect is safe to call when already disconnected.
func (s *connectionService) Disconnect(ctx context.Context) (*dtos.ConnectionStatusResponse, uint, error) {
	if err := s.manager.Disconnect(ctx); err != nil {
		return nil, http.StatusInternalServerError, err
	}
	return &dtos.ConnectionStatusResponse{IsConnected: false}, http.StatusOK, nil
}

func (s *connectionService) Status() *dtos.ConnectionStatusResponse {
	status := &dtos.ConnectionStatusResponse{IsConnected: s.manager.Connected()}
	if handle, err := s.manager.Handle(); err == nil {
		status.Database = handle.Name
	}
	return status
}

// Stats reports the dbStats aggregate for the connected database.
func (s *connectionService) Stats(ctx context.Context) (*mongodb.DatabaseStats, uint, error) {
	stats, err := s.manager.Stats(ctx)
	if err != nil {
		return nil, statusForError(err), err
	}
	return stats, http.StatusOK, nil
}
