package app

import (
	"database/sql"

	"github.com/civicpulse/campaign/config"
	"github.com/civicpulse/campaign/survey"
	"github.com/go-chi/jwtauth"
	"github.com/go-chi/oauth"
)

type App struct {
	*sql.DB
	*oauth.BearerServer
	config.Config
	Sessions *jwtauth.JWTAuth
	Surveys  *survey.Service
}
