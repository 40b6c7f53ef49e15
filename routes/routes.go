package routes

import (
	"net/http"

	"github.com/civicpulse/campaign/app"
	"github.com/civicpulse/campaign/routes/middlewares"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))

	root.
		With(middlewares.CookieAuth(app.BearerServer), middlewares.Admin(app.TokenSecret)).
		Mount("/admin", servePrivateFiles("/admin"))
	root.Mount("/", servePublicFiles())

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()
	api.Use(jwtauth.Verifier(app.Sessions))

	// user identity
	api.Post("/login", UserLogin(app))
	api.Post("/logout", UserLogout())
	api.Get("/me", CurrentUser(app))

	// survey
	api.Get("/surveys/active", ActiveSurvey(app))
	api.Get("/surveys/results", ActiveSurveyResults(app))
	api.Get(`/surveys/{id:^\d+$}/check`, CheckSurveyResponse(app))
	api.Post("/surveys/responses", SubmitSurveyResponse(app))

	// signatures
	api.Post("/signatures", CreateSignature(app))
	api.Get("/signatures/check", CheckSignature(app))

	// policy board ("/all" is the legacy unfiltered alias)
	api.Get("/policies", ListPolicies(app))
	api.Get("/policies/all", ListPolicies(app))
	api.Post("/policies", CreatePolicy(app))
	api.Post(`/policies/{id:^\d+$}/support`, SupportPolicy(app))
	api.Get(`/policies/{id:^\d+$}/support-status`, PolicySupportStatus(app))

	// published content
	api.Get("/notices", ListNotices(app))
	api.Get("/resources", ListResources(app))
	api.Get("/stats", GetStats(app))
	api.Get("/web-content", ListWebContent(app))
	api.Get("/web-content/{section}/{key}", GetWebContent(app))

	api.Route("/admin", func(r chi.Router) {
		r.Post("/login", Login(app))
		r.Post("/refresh", Refresh(app))

		r.Group(func(r chi.Router) {
			r.Use(middlewares.Admin(app.TokenSecret))

			r.Get("/surveys", ListSurveys(app))
			r.Post("/surveys", CreateSurvey(app))
			r.Put(`/surveys/{id:^\d+$}/activate`, ActivateSurvey(app))
			r.Post("/initialize-survey", InitializeSurvey(app))
			r.Post("/initialize-content", InitializeContent(app))
			r.Post("/initialize-survey-content", InitializeSurveyContent(app))

			r.Post("/notices", CreateNotice(app))
			r.Put(`/notices/{id:^\d+$}`, UpdateNotice(app))
			r.Delete(`/notices/{id:^\d+$}`, DeleteNotice(app))

			r.Post("/resources", CreateResource(app))
			r.Put(`/resources/{id:^\d+$}`, UpdateResource(app))
			r.Delete(`/resources/{id:^\d+$}`, DeleteResource(app))

			r.Put(`/policies/{id:^\d+$}`, UpdatePolicy(app))
			r.Delete(`/policies/{id:^\d+$}`, DeletePolicy(app))

			r.Post("/web-content", CreateWebContent(app))
			r.Put(`/web-content/{id:^\d+$}`, UpdateWebContent(app))
			r.Delete(`/web-content/{id:^\d+$}`, DeleteWebContent(app))
		})
	})

	return api
}

func servePublicFiles() http.Handler {
	return http.FileServer(http.Dir("public"))
}

func servePrivateFiles(path string) http.Handler {
	return http.StripPrefix(path, http.FileServer(http.Dir("private")))
}
