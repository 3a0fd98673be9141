// internal/app/features/projects/handler.go
package projects

import (
	projectstore "github.com/perceptai/perceptai/internal/app/store/projects"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns all project catalog handlers.
type Handler struct {
	DB    *mongo.Database
	Store *projectstore.Store
	Log   *zap.Logger
}

// NewHandler constructs a projects Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Store: projectstore.New(db),
		Log:   logger,
	}
}
