package handlers

import (
	"gorm.io/gorm"

	"github.com/rajtharani77/BlackBuck-pro/internal/auth"
)

// Handler carries the injected store handle and token service shared by all
// route handlers.
type Handler struct {
	DB     *gorm.DB
	Tokens *auth.TokenService

	// CookieDomain scopes the session cookie; empty means host-only.
	CookieDomain string
}

func New(database *gorm.DB, tokens *auth.TokenService, cookieDomain string) *Handler {
	return &Handler{DB: database, Tokens: tokens, CookieDomain: cookieDomain}
}
