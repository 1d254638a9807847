package handlers

import (
	"termcompass/middleware"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Tokens are checked against the account store when set.
	TokenChecker middleware.TokenChecker

	Catalog   *CatalogHandler
	Carousel  *CarouselHandler
	AuthForm  *AuthFormHandler
	Authoring *AuthoringHandler
}
