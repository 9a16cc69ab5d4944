package di

import (
	"log"

	"mongodeck/internal/apis/handlers"
	"mongodeck/internal/services"
	"mongodeck/pkg/mongodb"

	"go.uber.org/dig"
)

var DiContainer *dig.Container

func Initialize() {
	DiContainer = dig.New()

	// The single process-wide connection slot shared by every component
	manager := mongodb.NewManager()

	if err := DiContainer.Provide(func() *mongodb.Manager { return manager }); err != nil {
		log.Fatalf("Failed to provide connection manager: %v", err)
	}

	if err := DiContainer.Provide(func(manager *mongodb.Manager) services.ConnectionService {
		return services.NewConnectionService(manager)
	}); err != nil {
		log.Fatalf("Failed to provide connection service: %v", err)
	}

	if err := DiContainer.Provide(func(manager *mongodb.Manager) services.CollectionService {
		return services.NewCollectionService(manager)
	}); err != nil {
		log.Fatalf("Failed to provide collection service: %v", err)
	}

	if err := DiContainer.Provide(func(connectionService services.ConnectionService) *handlers.ConnectionHandler {
		return handlers.NewConnectionHandler(connectionService)
	}); err != nil {
		log.Fatalf("Failed to provide connection handler: %v", err)
	}

	if err := DiContainer.Provide(func(collectionService services.CollectionService) *handlers.CollectionHandler {
		return handlers.NewCollectionHandler(collectionService)
	}); err != nil {
		log.Fatalf("Failed to provide collection handler: %v", err)
	}
}

// GetManager retrieves the connection manager from the DI container
func GetManager() (*mongodb.Manager, error) {
	var manager *mongodb.Manager
	err := DiContainer.Invoke(func(m *mongodb.Manager) {
		manager = m
	})
	if err != nil {
		return nil, err
	}
	return manager, nil
}

// GetConnectionHandler retrieves the ConnectionHandler from the DI container
func GetConnectionHandler() (*handlers.ConnectionHandler, error) {
	var handler *handlers.ConnectionHandler
	err := DiContainer.Invoke(func(h *handlers.ConnectionHandler) {
		handler = h
	})
	if err != nil {
		return nil, err
	}
	return handler, nil
}

// GetCollectionHandler retrieves the CollectionHandler from the DI container
func GetCollectionHandler() (*handlers.CollectionHandler, error) {
	var handler *handlers.CollectionHandler
	err := DiContainer.Invoke(func(h *handlers.CollectionHandler) {
		handler = h
	})
	if err != nil {
		return nil, err
	}
	return handler, nil
}
