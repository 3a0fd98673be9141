// internal/app/features/newsletter/handler.go
package newsletter

import (
	subscriberstore "github.com/perceptai/perceptai/internal/app/store/subscribers"
	"github.com/perceptai/perceptai/internal/app/system/mailer"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns all newsletter handlers.
type Handler struct {
	DB       *mongo.Database
	Store    *subscriberstore.Store
	Sender   mailer.Sender
	SiteName string
	Log      *zap.Logger
}

// NewHandler constructs a newsletter Handler. sender may be nil, in which
// case no mail leaves the process (welcome emails are skipped and campaign
// sends fail with a validation error).
func NewHandler(db *mongo.Database, sender mailer.Sender, siteName string, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Store:    subscriberstore.New(db),
		Sender:   sender,
		SiteName: siteName,
		Log:      logger,
	}
}
