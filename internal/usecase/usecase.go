// Package usecase wires the use case modules together.
package usecase

import (
	"log/slog"

	"usecase-assistant/internal/usecase/metrics"
	"usecase-assistant/internal/usecase/models"
	"usecase-assistant/internal/usecase/serializer"
	"usecase-assistant/internal/usecase/service"
	"usecase-assistant/internal/usecase/store"
)

// UseCase is the immutable use case document.
type UseCase = models.UseCase

// Service exposes validated use case authoring over a repository.
type Service = service.Service

// FileStore persists use cases as JSON files.
type FileStore = store.FileStore

// Deps are the optional collaborators shared by the store and the service.
type Deps struct {
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	Audit   service.AuditPublisher
}

// Open builds a file store rooted at dir and a service over it.
func Open(dir string, codec *serializer.Serializer, deps Deps) (*Service, *FileStore, error) {
	storeOpts := []store.Option{store.WithMetrics(deps.Metrics)}
	svcOpts := []service.Option{service.WithMetrics(deps.Metrics)}
	if codec != nil {
		storeOpts = append(storeOpts, store.WithCodec(codec))
	}
	if deps.Logger != nil {
		storeOpts = append(storeOpts, store.WithLogger(deps.Logger))
		svcOpts = append(svcOpts, service.WithLogger(deps.Logger))
	}
	if deps.Audit != nil {
		svcOpts = append(svcOpts, service.WithAuditPublisher(deps.Audit))
	}

	fs, err := store.New(dir, storeOpts...)
	if err != nil {
		return nil, nil, err
	}
	svc, err := service.New(fs, svcOpts...)
	if err != nil {
		return nil, nil, err
	}
	return svc, fs, nil
}
