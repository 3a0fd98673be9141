// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/perceptai/perceptai/internal/app/system/runner"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
// Extend this struct as the app evolves.
//
// The vision demo Registry lives here so the same instance is wired into
// the HTTP handler and torn down at shutdown.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	Runner        *runner.Registry
}
