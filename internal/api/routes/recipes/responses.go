package recipes

import (
	"recipeshare/internal/grants"
	"recipeshare/internal/recipe"
)

type UploadURLs struct {
	Image     *grants.Grant `json:"image"`
	Thumbnail *grants.Grant `json:"thumbnail"`
}

type CreateRecipeResponse struct {
	Recipe recipe.View `json:"recipe"`
	URLs   *UploadURLs `json:"urls,omitempty"`
}

type ListRecipesResponse struct {
	Recipes []recipe.View `json:"recipes"`
	LastKey string        `json:"lastKey,omitempty"`
}
