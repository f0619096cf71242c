package image

import (
	"strings"
)

// CreateImageRequest for POST /api/images
type CreateImageRequest struct {
	PublicID string   `json:"public_id" validate:"required"`
	URL      string   `json:"url" validate:"required"`
	Prompt   string   `json:"prompt" validate:"required"`
	Tags     []string `json:"tags" validate:"omitempty,dive,gallerytag"`
	ThumbURL *string  `json:"thumb_url"`
	Width    *int     `json:"width" validate:"omitempty,gt=0"`
	Height   *int     `json:"height" validate:"omitempty,gt=0"`
}

// Normalize trims the required fields and normalizes tags.
func (r *CreateImageRequest) Normalize() {
	r.PublicID = strings.TrimSpace(r.PublicID)
	r.URL = strings.TrimSpace(r.URL)
	r.Prompt = strings.TrimSpace(r.Prompt)
	r.Tags = NormalizeTags(r.Tags)
	if r.ThumbURL != nil && strings.TrimSpace(*r.ThumbURL) == "" {
		r.ThumbURL = nil
	}
}

// ToNewImage maps the request to insertable fields.
func (r *CreateImageRequest) ToNewImage() *NewImage {
	return &NewImage{
		PublicID: r.PublicID,
		URL:      r.URL,
		ThumbURL: r.ThumbURL,
		Prompt:   r.Prompt,
		Tags:     r.Tags,
		Width:    r.Width,
		Height:   r.Height,
	}
}

// UpdateImageRequest for PUT /api/images/{id}. Media fields are immutable.
// An absent tags key keeps the stored tags; [] clears them.
type UpdateImageRequest struct {
	Prompt string    `json:"prompt" validate:"required"`
	Tags   *[]string `json:"tags" validate:"omitempty,dive,gallerytag"`
}

// Normalize trims the prompt and normalizes tags when they were sent.
func (r *UpdateImageRequest) Normalize() {
	r.Prompt = strings.TrimSpace(r.Prompt)
	if r.Tags != nil {
		tags := NormalizeTags(*r.Tags)
		if tags == nil {
			tags = []string{}
		}
		r.Tags = &tags
	}
}

// NormalizeTag folds one tag or tag filter: trimmed and lowercase.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// NormalizeTags trims, lowercases and drops empty or repeated tags, keeping
// the first occurrence order. Returns nil when nothing is left.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = NormalizeTag(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// ParseTagList splits a comma separated form value into normalized tags.
func ParseTagList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return NormalizeTags(strings.Split(raw, ","))
}
