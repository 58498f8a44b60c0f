package providers

import (
	"github.com/samber/do/v2"

	"github.com/inkshelf/inkshelf-server/internal/logger"
	"github.com/inkshelf/inkshelf-server/internal/metadata/openlibrary"
)

// OpenLibraryClientHandle wraps the Open Library client with shutdown capability.
type OpenLibraryClientHandle struct {
	*openlibrary.Client
}

// Shutdown implements do.Shutdownable.
func (h *OpenLibraryClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideOpenLibraryClient provides the Open Library metadata client.
func ProvideOpenLibraryClient(i do.Injector) (*OpenLibraryClientHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	client := openlibrary.NewClient(log.Logger)
	log.Info("Open Library client initialized")

	return &OpenLibraryClientHandle{Client: client}, nil
}
