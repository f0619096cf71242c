package image

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/phexara/phexara-api/internal/pkg/errorhandler"
	"github.com/phexara/phexara-api/internal/pkg/logger"
	"github.com/phexara/phexara-api/internal/pkg/metrics"
)

// ListQuery selects one zero-based page, optionally narrowed to a tag.
type ListQuery struct {
	PageIndex int
	PageSize  int
	Tag       string
}

// Repository defines image data access interface
type Repository interface {
	Create(ctx context.Context, img *NewImage) (*Image, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Image, error)
	List(ctx context.Context, q ListQuery) ([]*Image, int, error)
	// Update sets prompt, and tags when tags is non-nil.
	Update(ctx context.Context, id uuid.UUID, prompt string, tags *[]string) (*Image, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListTags(ctx context.Context) ([]string, error)
}

type repository struct {
	writer  *sqlx.DB
	reader  *sqlx.DB
	metrics *metrics.StoreMetrics
}

const imageColumns = `id, public_id, url, thumb_url, prompt, tags, width, height, created_at`

// NewRepository creates new image repository. Writes go through writer,
// reads through reader; a nil reader reuses writer.
func NewRepository(writer, reader *sqlx.DB, m *metrics.StoreMetrics) Repository {
	if reader == nil {
		reader = writer
	}
	return &repository{writer: writer, reader: reader, metrics: m}
}

func (r *repository) Create(ctx context.Context, img *NewImage) (result *Image, err error) {
	defer func(start time.Time) { r.metrics.Observe("create", start, storeFailure(err)) }(time.Now())

	if img == nil || img.PublicID == "" || img.URL == "" || img.Prompt == "" {
		return nil, ErrMissingFields
	}

	query := `
		INSERT INTO images (public_id, url, thumb_url, prompt, tags, width, height)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + imageColumns

	var created Image
	err = r.writer.QueryRowxContext(ctx, query,
		img.PublicID,
		img.URL,
		img.ThumbURL,
		img.Prompt,
		pq.StringArray(img.Tags),
		img.Width,
		img.Height,
	).StructScan(&created)
	if err != nil {
		evt := logger.FromContext(ctx).Error().
			Str("query", "images.create").
			Str("public_id", img.PublicID).
			Err(err)

		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			evt = evt.
				Str("pg_code", string(pqErr.Code)).
				Str("pg_constraint", pqErr.Constraint)
		}

		evt.Msg("image insert failed")
		return nil, mapDBError(err)
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (result *Image, err error) {
	defer func(start time.Time) { r.metrics.Observe("get", start, storeFailure(err)) }(time.Now())

	query := `SELECT ` + imageColumns + ` FROM images WHERE id = $1`

	var img Image
	if err = r.reader.GetContext(ctx, &img, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}
	return &img, nil
}

func (r *repository) List(ctx context.Context, q ListQuery) (images []*Image, total int, err error) {
	defer func(start time.Time) { r.metrics.Observe("list", start, storeFailure(err)) }(time.Now())

	countQuery, selectQuery, args := buildListQuery(q)

	if err = r.reader.GetContext(ctx, &total, countQuery, args...); err != nil {
		errorhandler.LogDatabaseError(ctx, "images.count", err)
		return nil, 0, err
	}

	start, end := RowRange(q.PageIndex, q.PageSize)
	selectArgs := append(append([]interface{}{}, args...), end-start+1, start)

	images = []*Image{}
	if err = r.reader.SelectContext(ctx, &images, selectQuery, selectArgs...); err != nil {
		errorhandler.LogDatabaseError(ctx, "images.list", err)
		return nil, 0, err
	}

	return images, total, nil
}

// buildListQuery returns the count and page queries. The page query takes
// two extra trailing arguments: LIMIT and OFFSET.
func buildListQuery(q ListQuery) (countQuery, selectQuery string, args []interface{}) {
	var conditions []string
	argIndex := 1

	if q.Tag != "" {
		conditions = append(conditions, fmt.Sprintf("tags @> $%d", argIndex))
		args = append(args, pq.StringArray{q.Tag})
		argIndex++
	}

	from := "FROM images"
	if len(conditions) > 0 {
		from += " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery = "SELECT COUNT(*) " + from
	selectQuery = fmt.Sprintf(
		"SELECT %s %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d",
		imageColumns, from, argIndex, argIndex+1,
	)
	return countQuery, selectQuery, args
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, prompt string, tags *[]string) (result *Image, err error) {
	defer func(start time.Time) { r.metrics.Observe("update", start, storeFailure(err)) }(time.Now())

	query := `
		UPDATE images SET prompt = $2, tags = COALESCE($3::text[], tags)
		WHERE id = $1
		RETURNING ` + imageColumns

	var img Image
	err = r.writer.QueryRowxContext(ctx, query, id, prompt, updateTagsArg(tags)).StructScan(&img)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrImageNotFound
		}
		return nil, mapDBError(err)
	}
	return &img, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (err error) {
	defer func(start time.Time) { r.metrics.Observe("delete", start, storeFailure(err)) }(time.Now())

	res, err := r.writer.ExecContext(ctx, `DELETE FROM images WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrImageNotFound
	}
	return nil
}

func (r *repository) ListTags(ctx context.Context) (tags []string, err error) {
	defer func(start time.Time) { r.metrics.Observe("list_tags", start, storeFailure(err)) }(time.Now())

	query := `
		SELECT DISTINCT tag
		FROM images, unnest(tags) AS tag
		WHERE tag <> ''
		ORDER BY tag
	`

	tags = []string{}
	if err = r.reader.SelectContext(ctx, &tags, query); err != nil {
		errorhandler.LogDatabaseError(ctx, "images.list_tags", err)
		return nil, err
	}
	return tags, nil
}

// updateTagsArg is NULL for nil tags, which COALESCE turns into the
// stored value. A non-nil empty list binds as '{}'.
func updateTagsArg(tags *[]string) interface{} {
	if tags == nil {
		return nil
	}
	if *tags == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(*tags)
}

// storeFailure drops outcomes that are answers rather than failures, so the
// failure counter only tracks store errors.
func storeFailure(err error) error {
	if errors.Is(err, ErrImageNotFound) || errors.Is(err, ErrMissingFields) {
		return nil
	}
	return err
}

func mapDBError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case "23505":
		return fmt.Errorf("%w: %w", ErrDuplicateImage, err)
	case "23514":
		return fmt.Errorf("%w: %w", ErrImageConstraint, err)
	case "23502", "22P02":
		return fmt.Errorf("%w: %w", ErrInvalidImageData, err)
	default:
		return err
	}
}
