// internal/app/features/resources/handler.go
package resources

import (
	resourcestore "github.com/perceptai/perceptai/internal/app/store/resources"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns all learning resource handlers.
type Handler struct {
	DB    *mongo.Database
	Store *resourcestore.Store
	Log   *zap.Logger
}

// NewHandler constructs a resources Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Store: resourcestore.New(db),
		Log:   logger,
	}
}
