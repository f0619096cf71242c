package image

import "errors"

var (
	ErrImageNotFound    = errors.New("image not found")
	ErrInvalidID        = errors.New("Invalid ID")
	ErrMissingFields    = errors.New("Missing required fields")
	ErrDuplicateImage   = errors.New("image already exists")
	ErrImageConstraint  = errors.New("image violates a store constraint")
	ErrInvalidImageData = errors.New("invalid image data")
)
