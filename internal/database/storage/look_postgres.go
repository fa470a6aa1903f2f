package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/StyleInspo/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
)

const lookColumns = `id, title, main_image, items, tags, created_at, seo, ai_analysis, occasion, season, seo_last_updated`

// LookStorage хранит образы в таблице fashion_looks
type LookStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewLookStorage(db *sqlx.DB, logger *slog.Logger) *LookStorage {
	return &LookStorage{db: db, logger: logger}
}

// lookRow: строка fashion_looks; JSONB-колонки читаются как сырой JSON
type lookRow struct {
	ID             string             `db:"id"`
	Title          string             `db:"title"`
	MainImage      string             `db:"main_image"`
	Items          types.JSONText     `db:"items"`
	Tags           types.JSONText     `db:"tags"`
	CreatedAt      time.Time          `db:"created_at"`
	SEO            types.NullJSONText `db:"seo"`
	AIAnalysis     types.NullJSONText `db:"ai_analysis"`
	Occasion       sql.NullString     `db:"occasion"`
	Season         sql.NullString     `db:"season"`
	SEOLastUpdated sql.NullTime       `db:"seo_last_updated"`
}

func (r *lookRow) toDomain() (*domain.Look, error) {
	look := &domain.Look{
		ID:        r.ID,
		Title:     r.Title,
		MainImage: r.MainImage,
		CreatedAt: r.CreatedAt,
		Occasion:  domain.Occasion(r.Occasion.String),
		Season:    domain.Season(r.Season.String),
		Items:     domain.Items{},
		Tags:      []string{},
	}
	if err := r.Items.Unmarshal(&look.Items); err != nil {
		return nil, fmt.Errorf("ошибка разбора items образа %s: %w", r.ID, err)
	}
	if err := r.Tags.Unmarshal(&look.Tags); err != nil {
		return nil, fmt.Errorf("ошибка разбора tags образа %s: %w", r.ID, err)
	}
	if r.SEO.Valid {
		look.SEO = &domain.SEOData{}
		if err := r.SEO.Unmarshal(look.SEO); err != nil {
			return nil, fmt.Errorf("ошибка разбора seo образа %s: %w", r.ID, err)
		}
	}
	if r.AIAnalysis.Valid {
		look.AIAnalysis = &domain.AIAnalysis{}
		if err := r.AIAnalysis.Unmarshal(look.AIAnalysis); err != nil {
			return nil, fmt.Errorf("ошибка разбора ai_analysis образа %s: %w", r.ID, err)
		}
	}
	if r.SEOLastUpdated.Valid {
		t := r.SEOLastUpdated.Time
		look.SEOLastUpdated = &t
	}
	return look, nil
}

// CreateLook вставляет образ. Если id уже занят, возвращает сохранённую запись и created=false.
func (s *LookStorage) CreateLook(ctx context.Context, look *domain.Look) (*domain.Look, bool, error) {
	start := time.Now()

	if look.Items == nil {
		look.Items = domain.Items{}
	}
	if look.Tags == nil {
		look.Tags = []string{}
	}
	items, err := jsonParam(look.Items)
	if err != nil {
		return nil, false, err
	}
	tags, err := jsonParam(look.Tags)
	if err != nil {
		return nil, false, err
	}
	seo, err := jsonParam(look.SEO)
	if err != nil {
		return nil, false, err
	}
	analysis, err := jsonParam(look.AIAnalysis)
	if err != nil {
		return nil, false, err
	}

	query := `
	INSERT INTO fashion_looks (id, title, main_image, items, tags, created_at, seo, ai_analysis, occasion, season, seo_last_updated)
	VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6, $7::jsonb, $8::jsonb, $9, $10, $11)
	ON CONFLICT (id) DO NOTHING
	RETURNING ` + lookColumns

	var row lookRow
	err = s.db.QueryRowxContext(ctx, query,
		look.ID, look.Title, look.MainImage, items, tags, look.CreatedAt,
		seo, analysis, nullableString(string(look.Occasion)), nullableString(string(look.Season)), look.SEOLastUpdated,
	).StructScan(&row)
	if errors.Is(err, sql.ErrNoRows) {
		existing, getErr := s.GetLook(ctx, look.ID)
		if getErr != nil {
			return nil, false, getErr
		}
		if existing == nil {
			// строку удалили между INSERT и SELECT
			return nil, false, fmt.Errorf("образ %s не найден после конфликта вставки", look.ID)
		}
		s.logger.Info("look already exists, returning stored record", "look_id", look.ID)
		return existing, false, nil
	}
	if err != nil {
		s.logger.Error("failed to create look", "look_id", look.ID, "error", err)
		return nil, false, fmt.Errorf("ошибка при сохранении образа: %w", err)
	}

	created, err := row.toDomain()
	if err != nil {
		return nil, false, err
	}
	s.logger.Info("look created",
		"look_id", look.ID,
		"items", len(look.Items),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return created, true, nil
}

// GetLook возвращает образ по id или nil, nil
func (s *LookStorage) GetLook(ctx context.Context, id string) (*domain.Look, error) {
	start := time.Now()

	var row lookRow
	err := s.db.GetContext(ctx, &row, `SELECT `+lookColumns+` FROM fashion_looks WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("look not found", "look_id", id)
			return nil, nil
		}
		s.logger.Error("failed to get look", "look_id", id, "error", err)
		return nil, fmt.Errorf("ошибка при получении образа: %w", err)
	}

	look, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	s.logger.Debug("look retrieved", "look_id", id, "duration_ms", time.Since(start).Milliseconds())
	return look, nil
}

// ListLooks возвращает все образы, новые первыми
func (s *LookStorage) ListLooks(ctx context.Context) ([]domain.Look, error) {
	start := time.Now()

	var rows []lookRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT `+lookColumns+` FROM fashion_looks ORDER BY created_at DESC`); err != nil {
		s.logger.Error("failed to list looks", "error", err)
		return nil, fmt.Errorf("ошибка при получении списка образов: %w", err)
	}

	looks := make([]domain.Look, 0, len(rows))
	for i := range rows {
		look, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		looks = append(looks, *look)
	}

	s.logger.Debug("looks listed", "count", len(looks), "duration_ms", time.Since(start).Milliseconds())
	return looks, nil
}

// UpdateLook применяет частичное обновление: непереданные поля сохраняют значение (COALESCE)
func (s *LookStorage) UpdateLook(ctx context.Context, id string, patch domain.LookPatch) (*domain.Look, error) {
	start := time.Now()

	var items, tags, seo, analysis any
	var err error
	if patch.Items != nil {
		if items, err = jsonParam(*patch.Items); err != nil {
			return nil, err
		}
	}
	if patch.Tags != nil {
		if tags, err = jsonParam(*patch.Tags); err != nil {
			return nil, err
		}
	}
	if seo, err = jsonParam(patch.SEO); err != nil {
		return nil, err
	}
	if analysis, err = jsonParam(patch.AIAnalysis); err != nil {
		return nil, err
	}

	var occasion, season any
	if patch.Occasion != nil {
		occasion = string(*patch.Occasion)
	}
	if patch.Season != nil {
		season = string(*patch.Season)
	}

	query := `
	UPDATE fashion_looks SET
		title            = COALESCE($2::text, title),
		main_image       = COALESCE($3::text, main_image),
		items            = COALESCE($4::jsonb, items),
		tags             = COALESCE($5::jsonb, tags),
		seo              = COALESCE($6::jsonb, seo),
		ai_analysis      = COALESCE($7::jsonb, ai_analysis),
		occasion         = COALESCE($8::text, occasion),
		season           = COALESCE($9::text, season),
		seo_last_updated = COALESCE($10::timestamptz, seo_last_updated)
	WHERE id = $1
	RETURNING ` + lookColumns

	var row lookRow
	err = s.db.QueryRowxContext(ctx, query,
		id, patch.Title, patch.MainImage, items, tags, seo, analysis, occasion, season, patch.SEOLastUpdated,
	).StructScan(&row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("look not found for update", "look_id", id)
			return nil, nil
		}
		s.logger.Error("failed to update look", "look_id", id, "error", err)
		return nil, fmt.Errorf("ошибка при обновлении образа: %w", err)
	}

	look, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	s.logger.Info("look updated", "look_id", id, "duration_ms", time.Since(start).Milliseconds())
	return look, nil
}

// DeleteLook удаляет строку; отсутствие строки не ошибка
func (s *LookStorage) DeleteLook(ctx context.Context, id string) (bool, error) {
	start := time.Now()

	res, err := s.db.ExecContext(ctx, `DELETE FROM fashion_looks WHERE id = $1`, id)
	if err != nil {
		s.logger.Error("failed to delete look", "look_id", id, "error", err)
		return false, fmt.Errorf("ошибка при удалении образа: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ошибка при получении числа удалённых строк: %w", err)
	}

	s.logger.Info("look deleted",
		"look_id", id,
		"deleted", n > 0,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return n > 0, nil
}

// jsonParam сериализует значение для JSONB-параметра; nil-указатель даёт SQL NULL
func jsonParam[T any](v T) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSerialization, err)
	}
	if string(raw) == "null" {
		return nil, nil
	}
	return string(raw), nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
