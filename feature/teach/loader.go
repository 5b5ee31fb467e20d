package teach

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the teach feature over svc. A nil svc yields a disabled feature,
// used when the server starts without a reachable store.
func NewFeature(svc *Service, logger *zap.Logger) *Feature {
	f := &Feature{service: svc}
	if svc != nil {
		f.handler = NewHandler(svc, logger)
	}
	return f
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "teach"
}

// IsEnabled reports whether a store is available.
func (f *Feature) IsEnabled() bool {
	return f.service != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
