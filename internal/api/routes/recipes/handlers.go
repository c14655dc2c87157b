// Package recipes contains handlers for the recipes endpoint.
package recipes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	apiError "recipeshare/internal/api/error"
	"recipeshare/internal/env"
	"recipeshare/internal/event"
	mJson "recipeshare/internal/json"
	"recipeshare/internal/recipe"
	"recipeshare/internal/respond"
)

const listLimit = 10

// Create handles the create-recipe operation on a normalized event. It is
// shared by the HTTP route and the Lambda entrypoint.
func Create(ctx context.Context, e *env.Env, req event.Request) respond.Envelope {
	if req.Method == http.MethodOptions {
		return respond.Format(nil, nil) // preflight
	}
	if req.Method != http.MethodPost {
		return respond.Format(apiError.New(apiError.UnsupportedMethod,
			fmt.Sprintf("Unsupported method %q", req.Method)), nil)
	}

	// Decode and validate the payload
	e.Logger.DebugContext(ctx, "reading request body")
	var payload CreateRecipeRequest
	decoder := json.NewDecoder(bytes.NewReader(req.Body))
	if err := mJson.DecodeJSON(&payload, decoder); err != nil {
		e.Logger.ErrorContext(ctx, "failed to decode request body", slog.Any("error", err))
		return respond.Format(apiError.New(apiError.BadRequest, "invalid request body"), nil)
	}
	input, aerr := payload.Validate()
	if aerr != nil {
		e.Logger.ErrorContext(ctx, "failed to validate request body", slog.Any("error", aerr))
		return respond.Format(aerr, nil)
	}

	id := recipe.NewID()
	assets := e.Assets()

	// Authorize the direct uploads. A failed authorization is soft: the
	// recipe is still created, the response just carries no urls.
	var urls *UploadURLs
	if input.ImagesLoaded {
		up, aerr := payload.UploadParams()
		if aerr != nil {
			e.Logger.ErrorContext(ctx, "missing upload fields", slog.Any("error", aerr))
			return respond.Format(aerr, nil)
		}

		e.Logger.DebugContext(ctx, "authorizing uploads", slog.String("id", id))
		image := e.Grants.Authorize(ctx, assets.ImageKey(id, input.FileExt),
			input.MimeType, up.ImageSize, up.ImageMD5)
		thumbnail := e.Grants.Authorize(ctx, assets.ThumbKey(id, input.FileExt),
			input.MimeType, up.ThumbSize, up.ThumbMD5)
		if image != nil && thumbnail != nil {
			urls = &UploadURLs{Image: image, Thumbnail: thumbnail}
		}
	}

	// Persist the record
	steps, err := recipe.EncodeSteps(input.Steps)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to encode steps", slog.Any("error", err))
		return respond.Format(apiError.New(apiError.InternalServerError, "internal server error"), nil)
	}
	rec := recipe.Record{
		Type:        recipe.TypeRecipe,
		ID:          id,
		FileExt:     input.FileExt,
		HasImage:    input.ImagesLoaded,
		Title:       input.Title,
		Description: input.Description,
		Steps:       steps,
	}
	e.Logger.DebugContext(ctx, "persisting record", slog.String("id", id))
	if err := e.Store.Put(ctx, rec); err != nil {
		e.Logger.ErrorContext(ctx, "failed to persist record", slog.Any("error", err))
		return respond.Format(apiError.New(apiError.InternalServerError, "internal server error"), nil)
	}

	view, err := recipe.ToView(rec, assets)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to map record", slog.Any("error", err))
		return respond.Format(apiError.New(apiError.MalformedRecord, "malformed record"), nil)
	}

	return respond.Format(nil, CreateRecipeResponse{Recipe: view, URLs: urls})
}

// List handles the list-recipes operation on a normalized event.
func List(ctx context.Context, e *env.Env, req event.Request) respond.Envelope {
	if req.Method == http.MethodOptions {
		return respond.Format(nil, nil) // preflight
	}
	if req.Method != http.MethodGet {
		return respond.Format(apiError.New(apiError.UnsupportedMethod,
			fmt.Sprintf("Unsupported method %q", req.Method)), nil)
	}

	startKey := req.Query["lastKey"]

	e.Logger.DebugContext(ctx, "querying records", slog.String("startKey", startKey))
	records, nextKey, err := e.Store.Query(ctx, recipe.TypeRecipe, listLimit, startKey)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to query records", slog.Any("error", err))
		return respond.Format(apiError.New(apiError.InternalServerError, "internal server error"), nil)
	}

	assets := e.Assets()
	views := make([]recipe.View, 0, len(records))
	for _, rec := range records {
		view, err := recipe.ToView(rec, assets)
		if err != nil {
			e.Logger.ErrorContext(ctx, "failed to map record",
				slog.String("id", rec.ID), slog.Any("error", err))
			return respond.Format(apiError.New(apiError.MalformedRecord, "malformed record"), nil)
		}
		views = append(views, view)
	}

	return respond.Format(nil, ListRecipesResponse{Recipes: views, LastKey: nextKey})
}

// HandleCreateRecipe godoc
//
//	@Summary	Create a recipe.
//	@Tags		Recipes
//	@Accept		json
//	@Param		request	body		CreateRecipeRequest	true	"Create Recipe Request"
//	@Success	200		{object}	CreateRecipeResponse
//	@Failure	400		{object}	apiError.Error
//	@Router		/api/recipe [POST]
func HandleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	defer func() { _ = r.Body.Close() }()
	Create(ctx, e, event.FromHTTP(r)).Write(w)
}

// HandleListRecipes godoc
//
//	@Summary	List recipes, newest first.
//	@Tags		Recipes
//	@Param		lastKey	query		string	false	"Pagination cursor from a previous response"
//	@Success	200		{object}	ListRecipesResponse
//	@Failure	400		{object}	apiError.Error
//	@Router		/api/recipes [GET]
func HandleListRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	List(ctx, e, event.FromHTTP(r)).Write(w)
}
