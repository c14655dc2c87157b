// Package recipe contains the stored recipe record, the client-facing view
// and the mapping between them.
package recipe

import (
	"encoding/json"
	"errors"
	"fmt"
)

// TypeRecipe is the record discriminator. Other record kinds may share the
// same table in the future.
const TypeRecipe = "RECIPE"

// DefaultExt is the only file extension valid for records without an
// uploaded image.
const DefaultExt = "png"

// extToMimeType maps stored file extensions to MIME types. Anything outside
// the table resolves to image/webp.
var extToMimeType = map[string]string{
	"jpg": "image/jpeg",
	"png": "image/png",
}

var mimeTypeToExt = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// ErrMalformedRecord reports a stored record whose steps field does not
// parse.
var ErrMalformedRecord = errors.New("malformed record")

// Record is one stored recipe entry. Steps holds the instruction list in its
// serialized JSON form. Records are created once and never updated.
type Record struct {
	Type        string
	ID          string
	FileExt     string
	HasImage    bool
	Title       string
	Description string
	Steps       string
}

// View is the client-facing shape derived from a Record. The URL fields are
// present only when the record has an uploaded image.
type View struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	MimeType     string   `json:"mimeType"`
	Steps        []string `json:"steps"`
	ImageURL     string   `json:"imageUrl,omitempty"`
	ThumbnailURL string   `json:"thumbnailUrl,omitempty"`
}

// AssetConfig locates recipe assets in object storage and on the public URL
// they are served from.
type AssetConfig struct {
	BaseURL  string
	ImageDir string
	ThumbDir string
}

// ImageKey returns the object key for the full-size image of a record.
func (a AssetConfig) ImageKey(id, ext string) string {
	return a.ImageDir + id + "." + ext
}

// ThumbKey returns the object key for the thumbnail of a record.
func (a AssetConfig) ThumbKey(id, ext string) string {
	return a.ThumbDir + id + "." + ext
}

func (a AssetConfig) imageURL(id, ext string) string {
	return a.BaseURL + a.ImageKey(id, ext)
}

func (a AssetConfig) thumbnailURL(id, ext string) string {
	return a.BaseURL + a.ThumbKey(id, ext)
}

// MimeTypeForExt resolves a stored extension to its MIME type. Unknown
// extensions fall back to image/webp; the fallback is deliberate, not an
// error.
func MimeTypeForExt(ext string) string {
	if mt, ok := extToMimeType[ext]; ok {
		return mt
	}
	return "image/webp"
}

// ExtForMimeType resolves a declared MIME type to the stored extension.
func ExtForMimeType(mimeType string) (string, bool) {
	ext, ok := mimeTypeToExt[mimeType]
	return ext, ok
}

// EncodeSteps serializes an instruction list for storage.
func EncodeSteps(steps []string) (string, error) {
	b, err := json.Marshal(steps)
	if err != nil {
		return "", fmt.Errorf("encoding steps: %w", err)
	}
	return string(b), nil
}

// DecodeSteps parses the serialized instruction list of a stored record.
func DecodeSteps(serialized string) ([]string, error) {
	var steps []string
	if err := json.Unmarshal([]byte(serialized), &steps); err != nil {
		return nil, fmt.Errorf("%w: parsing steps: %w", ErrMalformedRecord, err)
	}
	return steps, nil
}

// ToView derives the client-facing view of a record. It is total for any
// well-formed record; a record whose steps do not parse returns a wrapped
// ErrMalformedRecord.
func ToView(r Record, assets AssetConfig) (View, error) {
	steps, err := DecodeSteps(r.Steps)
	if err != nil {
		return View{}, err
	}

	view := View{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		MimeType:    MimeTypeForExt(r.FileExt),
		Steps:       steps,
	}
	if r.HasImage {
		view.ImageURL = assets.imageURL(r.ID, r.FileExt)
		view.ThumbnailURL = assets.thumbnailURL(r.ID, r.FileExt)
	}
	return view, nil
}
