package endpoints

import (
	"github.com/monkeytranslate/monkeytranslate/internal/api"
)

// Config holds dependencies needed by some endpoints.
type Config struct {
	SwaggerSpecPath string
}

// All returns all endpoint instances.
func All(cfg Config) []api.Endpoint {
	return []api.Endpoint{
		// Health endpoint
		&HealthEndpoint{},

		// Page endpoints
		&UploadPagesEndpoint{},
		&ListPagesEndpoint{},
		&GetPageEndpoint{},
		&DeletePageEndpoint{},
		&PageImageEndpoint{},
		&RenderedImageEndpoint{},

		// Pipeline endpoints
		&ExtractEndpoint{},
		&TranslateEndpoint{},
		&RenderEndpoint{},

		// Region endpoints
		&EditRegionEndpoint{},
		&RemoveRegionEndpoint{},
		&UndoRegionEndpoint{},
		&DeleteRegionEndpoint{},

		// Edit session endpoints
		&BeginEditEndpoint{},
		&UpdateEditEndpoint{},
		&CommitEditEndpoint{},
		&CancelEditEndpoint{},

		// Swagger/OpenAPI endpoints
		&SwaggerEndpoint{SpecPath: cfg.SwaggerSpecPath},
		&SwaggerUIEndpoint{},

		// Static files (catch-all, must be last)
		&StaticEndpoint{},
	}
}
