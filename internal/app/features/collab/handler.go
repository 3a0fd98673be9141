// internal/app/features/collab/handler.go
package collab

import (
	postingstore "github.com/perceptai/perceptai/internal/app/store/postings"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns all collaboration posting handlers.
type Handler struct {
	DB    *mongo.Database
	Store *postingstore.Store
	Log   *zap.Logger
}

// NewHandler constructs a collaborations Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Store: postingstore.New(db),
		Log:   logger,
	}
}
