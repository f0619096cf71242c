package admin

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/phexara/phexara-api/internal/domain/image"
)

// UploadForm is the submitted upload page. Values are kept as typed so the
// page can be re-rendered on error.
type UploadForm struct {
	PublicID string
	URL      string
	ThumbURL string
	Width    string
	Height   string
	Prompt   string
	Tags     string
}

// EditForm is the submitted edit page.
type EditForm struct {
	Prompt string
	Tags   string
}

func uploadFormFromRequest(r *http.Request) UploadForm {
	return UploadForm{
		PublicID: r.PostFormValue("public_id"),
		URL:      r.PostFormValue("url"),
		ThumbURL: r.PostFormValue("thumb_url"),
		Width:    r.PostFormValue("width"),
		Height:   r.PostFormValue("height"),
		Prompt:   r.PostFormValue("prompt"),
		Tags:     r.PostFormValue("tags"),
	}
}

// ToCreateRequest converts the form into the API create request. ok is false
// when a dimension is present but not a number.
func (f UploadForm) ToCreateRequest() (req *image.CreateImageRequest, ok bool) {
	req = &image.CreateImageRequest{
		PublicID: f.PublicID,
		URL:      f.URL,
		Prompt:   f.Prompt,
		Tags:     image.ParseTagList(f.Tags),
	}
	if thumb := strings.TrimSpace(f.ThumbURL); thumb != "" {
		req.ThumbURL = &thumb
	}

	var err error
	if req.Width, err = parseOptionalInt(f.Width); err != nil {
		return nil, false
	}
	if req.Height, err = parseOptionalInt(f.Height); err != nil {
		return nil, false
	}
	return req, true
}

func editFormFromImage(img *image.Image) EditForm {
	return EditForm{
		Prompt: img.Prompt,
		Tags:   strings.Join(img.Tags, ", "),
	}
}

func parseOptionalInt(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

type managePage struct {
	Title    string
	Prefix   string
	Images   []*image.Image
	Total    int
	HasMore  bool
	NextPage int
}

type uploadPage struct {
	Title  string
	Prefix string
	Error  string
	Form   UploadForm
}

type editPage struct {
	Title  string
	Prefix string
	Error  string
	Image  *image.Image
	Form   EditForm
}
