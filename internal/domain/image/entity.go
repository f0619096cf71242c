package image

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Image is one gallery record. The bytes live on the media host; this row
// only keeps the host reference, the renditions and the prompt.
type Image struct {
	ID        uuid.UUID      `db:"id" json:"id"`
	PublicID  string         `db:"public_id" json:"public_id"` // media host asset id
	URL       string         `db:"url" json:"url"`
	ThumbURL  *string        `db:"thumb_url" json:"thumb_url"`
	Prompt    string         `db:"prompt" json:"prompt"`
	Tags      pq.StringArray `db:"tags" json:"tags"`
	Width     *int           `db:"width" json:"width"`
	Height    *int           `db:"height" json:"height"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

// DisplayThumbURL returns the thumbnail, or the full rendition when there is none.
func (i *Image) DisplayThumbURL() string {
	if i.ThumbURL != nil && *i.ThumbURL != "" {
		return *i.ThumbURL
	}
	return i.URL
}

// NewImage holds the insertable fields; id and created_at come from the store.
type NewImage struct {
	PublicID string
	URL      string
	ThumbURL *string
	Prompt   string
	Tags     []string
	Width    *int
	Height   *int
}
