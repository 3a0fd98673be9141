// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	collabfeature "github.com/perceptai/perceptai/internal/app/features/collab"
	healthfeature "github.com/perceptai/perceptai/internal/app/features/health"
	newsletterfeature "github.com/perceptai/perceptai/internal/app/features/newsletter"
	projectsfeature "github.com/perceptai/perceptai/internal/app/features/projects"
	resourcesfeature "github.com/perceptai/perceptai/internal/app/features/resources"
	visionfeature "github.com/perceptai/perceptai/internal/app/features/vision"
	"github.com/perceptai/perceptai/internal/app/system/mailer"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// PerceptAI mounts the REST feature routers under /api, the vision demo
// runner at the root (its routes predate the /api prefix), and the health
// endpoint for load balancers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Newsletter delivery is optional; without a sender the feature still
	// manages subscriptions but sends nothing.
	var sender mailer.Sender
	if appCfg.MailEnabled {
		sender = mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     appCfg.MailSMTPHost,
			Port:     appCfg.MailSMTPPort,
			User:     appCfg.MailSMTPUser,
			Pass:     appCfg.MailSMTPPass,
			From:     appCfg.MailFrom,
			FromName: appCfg.MailFromName,
		})
	}

	collabHandler := collabfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/api/collaborations", collabfeature.Routes(collabHandler))

	projectsHandler := projectsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/api/projects", projectsfeature.Routes(projectsHandler))

	resourcesHandler := resourcesfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/api/resources", resourcesfeature.Routes(resourcesHandler))

	newsletterHandler := newsletterfeature.NewHandler(deps.MongoDatabase, sender, appCfg.SiteName, logger)
	r.Mount("/api/newsletter", newsletterfeature.Routes(newsletterHandler))

	// Vision demo runner
	visionHandler := visionfeature.NewHandler(deps.Runner, logger)
	r.Mount("/", visionfeature.Routes(visionHandler))

	return r, nil
}
