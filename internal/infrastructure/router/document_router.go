package router

import (
	"tripwatch-service/internal/usecase"
	"tripwatch-service/pkg/logger"
)

// DocumentRouter routes inbound documents to the appropriate handler
// based on content type.
type DocumentRouter struct {
	handlers []usecase.DocumentHandler
	logger   logger.Logger
}

// NewDocumentRouter creates a new document router
func NewDocumentRouter(logger logger.Logger) *DocumentRouter {
	return &DocumentRouter{
		handlers: make([]usecase.DocumentHandler, 0),
		logger:   logger,
	}
}

// Register registers a handler. Registration order is precedence order.
func (r *DocumentRouter) Register(handler usecase.DocumentHandler) {
	r.handlers = append(r.handlers, handler)
	r.logger.Info("Registered document handler", "handler", handler.Name())
}

// GetHandler returns the first handler claiming the given content type
// and filename, or nil.
func (r *DocumentRouter) GetHandler(contentType, filename string) usecase.DocumentHandler {
	for _, handler := range r.handlers {
		if handler.CanHandle(contentType, filename) {
			return handler
		}
	}
	return nil
}
