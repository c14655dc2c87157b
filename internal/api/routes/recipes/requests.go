package recipes

import (
	"strings"

	"github.com/go-playground/validator/v10"

	apiError "recipeshare/internal/api/error"
	"recipeshare/internal/recipe"
)

const minSteps = 3

// CreateRecipeRequest is the create payload. Required fields are pointers so
// an absent key is distinguishable from a present-but-empty value.
type CreateRecipeRequest struct {
	MimeType     *string   `json:"mimeType" validate:"required"`
	Title        *string   `json:"title" validate:"required"`
	Description  *string   `json:"description" validate:"required"`
	Steps        *[]string `json:"steps" validate:"required"`
	ImagesLoaded *bool     `json:"imagesLoaded" validate:"required"`

	// Only consulted when ImagesLoaded is true, at upload-authorization
	// time.
	ImageFileSize     *int64  `json:"imageFileSize"`
	ThumbnailFileSize *int64  `json:"thumbnailFileSize"`
	ImageMd5          *string `json:"imageMd5"`
	ThumbnailMd5      *string `json:"thumbnailMd5"`
}

// ValidatedInput is the normalized create payload plus the derived file
// extension.
type ValidatedInput struct {
	MimeType     string
	Title        string
	Description  string
	Steps        []string
	ImagesLoaded bool
	FileExt      string
}

// UploadParams are the fields a create request must carry when images were
// loaded client-side.
type UploadParams struct {
	ImageSize int64
	ThumbSize int64
	ImageMD5  string
	ThumbMD5  string
}

// Validate enforces the create payload rules in order, first failure wins:
// required keys, step count, no blank fields, known MIME type, and the
// png-only rule for recipes without an uploaded image.
func (r CreateRecipeRequest) Validate() (ValidatedInput, *apiError.Error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(r); err != nil {
		return ValidatedInput{}, apiError.New(apiError.MissingFields, "Required keys not found.")
	}

	steps := *r.Steps
	if len(steps) < minSteps {
		return ValidatedInput{}, apiError.New(apiError.InsufficientSteps,
			"Insufficient number of steps. At least 3 expected.")
	}

	fields := append([]string{*r.MimeType, *r.Title, *r.Description}, steps...)
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return ValidatedInput{}, apiError.New(apiError.EmptyField,
				"Required fields cannot be empty.")
		}
	}

	ext, ok := recipe.ExtForMimeType(*r.MimeType)
	if !ok {
		return ValidatedInput{}, apiError.New(apiError.InvalidMimeType, "Invalid MIME type.")
	}

	if !*r.ImagesLoaded && ext != recipe.DefaultExt {
		return ValidatedInput{}, apiError.New(apiError.InvalidDefaultMimeType,
			"Invalid default MIME type.")
	}

	return ValidatedInput{
		MimeType:     *r.MimeType,
		Title:        *r.Title,
		Description:  *r.Description,
		Steps:        steps,
		ImagesLoaded: *r.ImagesLoaded,
		FileExt:      ext,
	}, nil
}

// UploadParams extracts the image upload fields. Their absence is only an
// error once upload authorization is actually needed, which is why this is
// separate from Validate.
func (r CreateRecipeRequest) UploadParams() (UploadParams, *apiError.Error) {
	if r.ImageFileSize == nil || r.ThumbnailFileSize == nil ||
		r.ImageMd5 == nil || r.ThumbnailMd5 == nil {
		return UploadParams{}, apiError.New(apiError.MissingFields, "Required keys not found.")
	}
	return UploadParams{
		ImageSize: *r.ImageFileSize,
		ThumbSize: *r.ThumbnailFileSize,
		ImageMD5:  *r.ImageMd5,
		ThumbMD5:  *r.ThumbnailMd5,
	}, nil
}
