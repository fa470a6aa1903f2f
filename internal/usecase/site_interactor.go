package usecase

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/GoArmGo/StyleInspo/internal/authz"
	"github.com/GoArmGo/StyleInspo/internal/core/ports"
	"github.com/GoArmGo/StyleInspo/internal/domain"
)

var contactTemplate = template.Must(template.New("contact").Parse(`<h2>New Contact Form Submission</h2>
<p><strong>From:</strong> {{.Name}} ({{.Email}})</p>
<p><strong>Subject:</strong> {{.Subject}}</p>
<hr>
<p>{{.Message}}</p>
`))

// siteUseCase implements SiteUseCase
type siteUseCase struct {
	settings ports.SettingsStorage
	pages    ports.PageStorage
	mailer   Mailer
	logger   *slog.Logger
}

// NewSiteUseCase создает новый экземпляр SiteUseCase
func NewSiteUseCase(settings ports.SettingsStorage, pages ports.PageStorage, mailer Mailer, logger *slog.Logger) SiteUseCase {
	return &siteUseCase{
		settings: settings,
		pages:    pages,
		mailer:   mailer,
		logger:   logger,
	}
}

func (uc *siteUseCase) GetSettings(ctx context.Context) (*domain.SiteSettings, error) {
	s, err := uc.settings.GetOrCreateSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении настроек сайта: %w", err)
	}
	return s, nil
}

func (uc *siteUseCase) UpdateSettings(ctx context.Context, settings domain.SiteSettings) (*domain.SiteSettings, error) {
	if err := authz.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	settings.Normalize()
	saved, err := uc.settings.SaveSettings(ctx, &settings)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при сохранении настроек сайта: %w", err)
	}
	uc.logger.Info("site settings updated")
	return saved, nil
}

func (uc *siteUseCase) ListPages(ctx context.Context) ([]domain.Page, error) {
	pages, err := uc.pages.ListPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении страниц: %w", err)
	}
	return pages, nil
}

func (uc *siteUseCase) GetPage(ctx context.Context, id string) (*domain.Page, error) {
	page, err := uc.pages.GetPage(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении страницы %s: %w", id, err)
	}
	if page == nil {
		return nil, domain.ErrNotFound
	}
	return page, nil
}

func (uc *siteUseCase) UpdatePage(ctx context.Context, id string, update domain.PageUpdate) (*domain.Page, error) {
	if err := authz.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}
	page, err := uc.pages.UpdatePage(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при обновлении страницы %s: %w", id, err)
	}
	if page == nil {
		return nil, domain.ErrNotFound
	}
	uc.logger.Info("page updated", "page_id", id)
	return page, nil
}

// SendContact пересылает сообщение на admin_email из настроек сайта
func (uc *siteUseCase) SendContact(ctx context.Context, msg domain.ContactMessage) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	settings, err := uc.GetSettings(ctx)
	if err != nil {
		return err
	}
	if uc.mailer == nil || !uc.mailer.Configured() || settings.AdminEmail == "" {
		uc.logger.Warn("contact form is not configured",
			"mailer", uc.mailer != nil && uc.mailer.Configured(),
			"admin_email", settings.AdminEmail != "",
		)
		return domain.NewUpstreamError("Contact form not configured. Please email us directly.", nil)
	}

	var body bytes.Buffer
	if err := contactTemplate.Execute(&body, msg); err != nil {
		return fmt.Errorf("usecase: ошибка при формировании письма: %w", err)
	}

	err = uc.mailer.Send(ctx, domain.OutgoingEmail{
		To:          settings.AdminEmail,
		ReplyTo:     msg.Email,
		ReplyToName: msg.Name,
		Subject:     "Contact Form: " + msg.Subject,
		HTML:        body.String(),
		Text:        fmt.Sprintf("From: %s (%s)\nSubject: %s\n\n%s", msg.Name, msg.Email, msg.Subject, msg.Message),
	})
	if err != nil {
		return domain.NewUpstreamError("Failed to send message. Please try again later.", err)
	}
	return nil
}
