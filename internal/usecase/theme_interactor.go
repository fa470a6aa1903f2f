package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/StyleInspo/internal/authz"
	"github.com/GoArmGo/StyleInspo/internal/core/ports"
	"github.com/GoArmGo/StyleInspo/internal/domain"
)

// themeUseCase implements ThemeUseCase
type themeUseCase struct {
	themes ports.ThemeStorage
	logger *slog.Logger
}

// NewThemeUseCase создает новый экземпляр ThemeUseCase
func NewThemeUseCase(themes ports.ThemeStorage, logger *slog.Logger) ThemeUseCase {
	return &themeUseCase{themes: themes, logger: logger}
}

// GetActiveTheme возвращает активную тему; если тем нет, сохраняет тему по умолчанию
func (uc *themeUseCase) GetActiveTheme(ctx context.Context) (*domain.ThemeSettings, error) {
	theme, err := uc.themes.GetActiveTheme(ctx)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении активной темы: %w", err)
	}
	if theme != nil {
		return theme, nil
	}

	uc.logger.Info("no active theme found, creating default")
	def := domain.DefaultTheme()
	saved, err := uc.themes.SaveActiveTheme(ctx, &def)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при создании темы по умолчанию: %w", err)
	}
	return saved, nil
}

// SaveTheme сливает патч с текущей активной темой и сохраняет результат как единственную активную
func (uc *themeUseCase) SaveTheme(ctx context.Context, patch domain.ThemePatch) (*domain.ThemeSettings, error) {
	if err := authz.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	current, err := uc.GetActiveTheme(ctx)
	if err != nil {
		return nil, err
	}
	merged, err := patch.ApplyTo(*current)
	if err != nil {
		return nil, err
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	saved, err := uc.themes.SaveActiveTheme(ctx, &merged)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при сохранении темы %s: %w", merged.ID, err)
	}
	uc.logger.Info("theme saved", "theme_id", saved.ID)
	return saved, nil
}

func (uc *themeUseCase) ResetTheme(ctx context.Context) (*domain.ThemeSettings, error) {
	if err := authz.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	def := domain.DefaultTheme()
	saved, err := uc.themes.SaveActiveTheme(ctx, &def)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при сбросе темы: %w", err)
	}
	uc.logger.Info("theme reset to default")
	return saved, nil
}
