package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"recipeshare/internal/config"
	"recipeshare/internal/env"
	"recipeshare/internal/event"
	"recipeshare/internal/grants"
	"recipeshare/internal/log"
	"recipeshare/internal/recipe"
)

// fakeStore records puts and serves a canned query result.
type fakeStore struct {
	putErr   error
	queryErr error
	records  []recipe.Record
	nextKey  string

	put        []recipe.Record
	lastType   string
	lastLimit  int
	lastCursor string
}

func (s *fakeStore) Put(_ context.Context, rec recipe.Record) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.put = append(s.put, rec)
	return nil
}

func (s *fakeStore) Query(_ context.Context, recordType string, limit int, startKey string) ([]recipe.Record, string, error) {
	s.lastType = recordType
	s.lastLimit = limit
	s.lastCursor = startKey
	if s.queryErr != nil {
		return nil, "", s.queryErr
	}
	return s.records, s.nextKey, nil
}

// fakeIssuer returns a fixed grant per object key; a nil entry simulates a
// failed authorization.
type fakeIssuer struct {
	byKey map[string]*grants.Grant
	calls []string
}

func (i *fakeIssuer) Authorize(_ context.Context, objectKey, _ string, _ int64, _ string) *grants.Grant {
	i.calls = append(i.calls, objectKey)
	return i.byKey[objectKey]
}

func testEnv(store *fakeStore, issuer *fakeIssuer) *env.Env {
	return &env.Env{
		Logger: log.NullLogger(),
		Store:  store,
		Grants: issuer,
		Config: config.Config{
			ObjectStore: config.ObjectStore{
				PublicURL: "https://recipe-share-app.s3.amazonaws.com/",
				ImageDir:  "images/",
				ThumbDir:  "thumbnails/",
			},
		},
	}
}

func createBody(t *testing.T, payload map[string]any) []byte {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	return body
}

func validPayload() map[string]any {
	return map[string]any{
		"mimeType":     "image/png",
		"title":        "Tea",
		"description":  "Hot water",
		"steps":        []string{"Boil water", "Add tea", "Wait"},
		"imagesLoaded": false,
	}
}

func errorMessage(t *testing.T, body string) string {
	t.Helper()
	var payload struct {
		ErrorMessage string `json:"errorMessage"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("failed to decode error body %q: %v", body, err)
	}
	return payload.ErrorMessage
}

func TestCreate(t *testing.T) {
	store := &fakeStore{}
	e := testEnv(store, &fakeIssuer{})

	envelope := Create(context.Background(), e, event.Request{
		Method: http.MethodPost,
		Body:   createBody(t, validPayload()),
	})

	if envelope.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", envelope.StatusCode, envelope.Body)
	}

	var resp CreateRecipeResponse
	if err := json.Unmarshal([]byte(envelope.Body), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Recipe.Title != "Tea" {
		t.Errorf("expected title Tea, got %q", resp.Recipe.Title)
	}
	if resp.URLs != nil {
		t.Errorf("expected no upload urls, got %+v", resp.URLs)
	}
	if len(store.put) != 1 {
		t.Fatalf("expected 1 persisted record, got %d", len(store.put))
	}
	rec := store.put[0]
	if rec.Type != recipe.TypeRecipe || rec.HasImage || rec.FileExt != "png" {
		t.Errorf("unexpected persisted record %+v", rec)
	}
}

func TestCreate_Preflight(t *testing.T) {
	envelope := Create(context.Background(), testEnv(&fakeStore{}, &fakeIssuer{}),
		event.Request{Method: http.MethodOptions})
	if envelope.StatusCode != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", envelope.StatusCode)
	}
	if envelope.Body != "" {
		t.Errorf("expected empty body, got %q", envelope.Body)
	}
}

func TestCreate_UnsupportedMethod(t *testing.T) {
	envelope := Create(context.Background(), testEnv(&fakeStore{}, &fakeIssuer{}),
		event.Request{Method: http.MethodGet})
	if envelope.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", envelope.StatusCode)
	}
	if got := errorMessage(t, envelope.Body); got != `Unsupported method "GET"` {
		t.Errorf("unexpected error message %q", got)
	}
}

func TestCreate_InvalidBody(t *testing.T) {
	envelope := Create(context.Background(), testEnv(&fakeStore{}, &fakeIssuer{}),
		event.Request{Method: http.MethodPost, Body: []byte("not json")})
	if envelope.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", envelope.StatusCode)
	}
}

func TestCreate_MissingKey(t *testing.T) {
	payload := validPayload()
	delete(payload, "title")

	envelope := Create(context.Background(), testEnv(&fakeStore{}, &fakeIssuer{}),
		event.Request{Method: http.MethodPost, Body: createBody(t, payload)})
	if envelope.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", envelope.StatusCode)
	}
	if got := errorMessage(t, envelope.Body); got != "Required keys not found." {
		t.Errorf("unexpected error message %q", got)
	}
}

func TestCreate_InsufficientSteps(t *testing.T) {
	payload := validPayload()
	payload["steps"] = []string{"only one step"}

	envelope := Create(context.Background(), testEnv(&fakeStore{}, &fakeIssuer{}),
		event.Request{Method: http.MethodPost, Body: createBody(t, payload)})
	if envelope.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", envelope.StatusCode)
	}
	if got := errorMessage(t, envelope.Body); got != "Insufficient number of steps. At least 3 expected." {
		t.Errorf("unexpected error message %q", got)
	}
}

func TestCreate_WithUploads(t *testing.T) {
	payload := validPayload()
	payload["mimeType"] = "image/jpeg"
	payload["imagesLoaded"] = true
	payload["imageFileSize"] = 1024
	payload["thumbnailFileSize"] = 256
	payload["imageMd5"] = "aW1hZ2U="
	payload["thumbnailMd5"] = "dGh1bWI="

	store := &fakeStore{}
	e := testEnv(store, &fakeIssuer{})

	// Object keys embed the generated id, which we cannot predict, so the
	// issuer here grants every key.
	grantAll := &grantAllIssuer{grant: &grants.Grant{
		URL:    "https://recipe-share-app.s3.amazonaws.com/",
		Fields: map[string]string{"key": "images/x.jpg"},
	}}
	e.Grants = grantAll

	envelope := Create(context.Background(), e, event.Request{
		Method: http.MethodPost,
		Body:   createBody(t, payload),
	})
	if envelope.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", envelope.StatusCode, envelope.Body)
	}

	var resp CreateRecipeResponse
	if err := json.Unmarshal([]byte(envelope.Body), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.URLs == nil || resp.URLs.Image == nil || resp.URLs.Thumbnail == nil {
		t.Fatalf("expected both upload urls, got %+v", resp.URLs)
	}
	if len(grantAll.keys) != 2 {
		t.Fatalf("expected 2 authorizations, got %d", len(grantAll.keys))
	}
	if !strings.HasPrefix(grantAll.keys[0], "images/") {
		t.Errorf("expected an image key, got %q", grantAll.keys[0])
	}
	if !strings.HasPrefix(grantAll.keys[1], "thumbnails/") {
		t.Errorf("expected a thumbnail key, got %q", grantAll.keys[1])
	}
	if len(store.put) != 1 || !store.put[0].HasImage {
		t.Errorf("expected a persisted record with an image, got %+v", store.put)
	}
}

// grantAllIssuer authorizes every key with the same grant.
type grantAllIssuer struct {
	grant *grants.Grant
	keys  []string
}

func (i *grantAllIssuer) Authorize(_ context.Context, objectKey, _ string, _ int64, _ string) *grants.Grant {
	i.keys = append(i.keys, objectKey)
	return i.grant
}

func TestCreate_UploadAuthorizationFailureIsSoft(t *testing.T) {
	payload := validPayload()
	payload["mimeType"] = "image/jpeg"
	payload["imagesLoaded"] = true
	payload["imageFileSize"] = 1024
	payload["thumbnailFileSize"] = 256
	payload["imageMd5"] = "aW1hZ2U="
	payload["thumbnailMd5"] = "dGh1bWI="

	// a fakeIssuer with no granted keys denies everything
	store := &fakeStore{}
	e := testEnv(store, &fakeIssuer{})

	envelope := Create(context.Background(), e, event.Request{
		Method: http.MethodPost,
		Body:   createBody(t, payload),
	})
	if envelope.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", envelope.StatusCode, envelope.Body)
	}

	var resp CreateRecipeResponse
	if err := json.Unmarshal([]byte(envelope.Body), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.URLs != nil {
		t.Errorf("expected no upload urls after a failed authorization, got %+v", resp.URLs)
	}
	if len(store.put) != 1 {
		t.Errorf("expected the recipe to persist anyway, got %d records", len(store.put))
	}
}

func TestCreate_MissingUploadFields(t *testing.T) {
	payload := validPayload()
	payload["mimeType"] = "image/jpeg"
	payload["imagesLoaded"] = true
	// upload sizes and digests absent

	store := &fakeStore{}
	envelope := Create(context.Background(), testEnv(store, &fakeIssuer{}),
		event.Request{Method: http.MethodPost, Body: createBody(t, payload)})
	if envelope.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", envelope.StatusCode)
	}
	if got := errorMessage(t, envelope.Body); got != "Required keys not found." {
		t.Errorf("unexpected error message %q", got)
	}
	if len(store.put) != 0 {
		t.Errorf("expected nothing persisted, got %d records", len(store.put))
	}
}

func TestCreate_PutFailure(t *testing.T) {
	store := &fakeStore{putErr: errors.New("connection refused")}
	envelope := Create(context.Background(), testEnv(store, &fakeIssuer{}),
		event.Request{Method: http.MethodPost, Body: createBody(t, validPayload())})
	if envelope.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", envelope.StatusCode)
	}
}

func TestList(t *testing.T) {
	records := make([]recipe.Record, 0, listLimit)
	for range listLimit {
		records = append(records, recipe.Record{
			Type:        recipe.TypeRecipe,
			ID:          recipe.NewID(),
			FileExt:     "png",
			Title:       "Tea",
			Description: "Hot water",
			Steps:       `["Boil water","Add tea","Wait"]`,
		})
	}
	store := &fakeStore{records: records, nextKey: records[listLimit-1].ID}

	envelope := List(context.Background(), testEnv(store, &fakeIssuer{}),
		event.Request{Method: http.MethodGet, Query: map[string]string{}})
	if envelope.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", envelope.StatusCode, envelope.Body)
	}

	var resp ListRecipesResponse
	if err := json.Unmarshal([]byte(envelope.Body), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Recipes) != listLimit {
		t.Errorf("expected %d recipes, got %d", listLimit, len(resp.Recipes))
	}
	if resp.LastKey != records[listLimit-1].ID {
		t.Errorf("expected lastKey %q, got %q", records[listLimit-1].ID, resp.LastKey)
	}
	if store.lastType != recipe.TypeRecipe || store.lastLimit != listLimit {
		t.Errorf("unexpected query %q limit %d", store.lastType, store.lastLimit)
	}
}

func TestList_CursorPassthrough(t *testing.T) {
	store := &fakeStore{}
	envelope := List(context.Background(), testEnv(store, &fakeIssuer{}),
		event.Request{Method: http.MethodGet, Query: map[string]string{"lastKey": "68b5d1a2f00bar"}})
	if envelope.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", envelope.StatusCode)
	}
	if store.lastCursor != "68b5d1a2f00bar" {
		t.Errorf("expected cursor to reach the store unchanged, got %q", store.lastCursor)
	}

	var resp ListRecipesResponse
	if err := json.Unmarshal([]byte(envelope.Body), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.LastKey != "" {
		t.Errorf("expected no lastKey on an exhausted listing, got %q", resp.LastKey)
	}
}

func TestList_Preflight(t *testing.T) {
	envelope := List(context.Background(), testEnv(&fakeStore{}, &fakeIssuer{}),
		event.Request{Method: http.MethodOptions})
	if envelope.StatusCode != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", envelope.StatusCode)
	}
}

func TestList_UnsupportedMethod(t *testing.T) {
	envelope := List(context.Background(), testEnv(&fakeStore{}, &fakeIssuer{}),
		event.Request{Method: http.MethodPost})
	if envelope.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", envelope.StatusCode)
	}
	if got := errorMessage(t, envelope.Body); got != `Unsupported method "POST"` {
		t.Errorf("unexpected error message %q", got)
	}
}

func TestList_QueryFailure(t *testing.T) {
	store := &fakeStore{queryErr: errors.New("connection refused")}
	envelope := List(context.Background(), testEnv(store, &fakeIssuer{}),
		event.Request{Method: http.MethodGet})
	if envelope.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", envelope.StatusCode)
	}
}

func TestList_MalformedRecord(t *testing.T) {
	store := &fakeStore{records: []recipe.Record{{
		Type:  recipe.TypeRecipe,
		ID:    "abc123",
		Steps: "not json",
	}}}
	envelope := List(context.Background(), testEnv(store, &fakeIssuer{}),
		event.Request{Method: http.MethodGet})
	if envelope.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", envelope.StatusCode)
	}
}
