package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sahilchouksey/career-compass-api/model"
	"github.com/sahilchouksey/career-compass-api/services"
	"github.com/sahilchouksey/career-compass-api/services/advisor"
	"github.com/sahilchouksey/career-compass-api/services/scoring"
	"github.com/sahilchouksey/career-compass-api/services/storage"
	"github.com/sahilchouksey/career-compass-api/utils/pdfvalidation"
	"go.uber.org/zap"
)

// DefaultLinkTTL is how long a published report link stays valid
const DefaultLinkTTL = 24 * time.Hour

// ErrStorageDisabled is returned by Publish when no object store is configured
var ErrStorageDisabled = errors.New("report storage is not configured")

// Store keeps rendered reports; *storage.SpacesClient implements it
type Store interface {
	UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error)
	PresignedURL(key string, expiration time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// Document is a rendered, validated report
type Document struct {
	FileName string
	Content  []byte
	Pages    int
	Report   *services.CareerFitReport
}

// Published is a report stored in object storage
type Published struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
	Pages     int       `json:"pages"`
	Size      int       `json:"size"`
}

// Builder assembles the analysis, learning path and narrative of a user into a PDF
type Builder struct {
	fit      *services.CareerFitService
	narrator advisor.Narrator
	gen      *Generator
	store    Store
	log      *zap.Logger
}

// NewBuilder creates a report builder. narrator defaults to the template narrator; store
// may be nil, in which case Publish is unavailable.
func NewBuilder(fit *services.CareerFitService, narrator advisor.Narrator, store Store, log *zap.Logger) *Builder {
	if narrator == nil {
		narrator = advisor.TemplateNarrator{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{fit: fit, narrator: narrator, gen: NewGenerator(), store: store, log: log}
}

// CanPublish reports whether an object store is configured
func (b *Builder) CanPublish() bool {
	return b.store != nil
}

// Build renders the user's report. Incomplete assessments surface as
// *services.IncompleteAssessmentsError.
func (b *Builder) Build(ctx context.Context, user *model.User) (*Document, error) {
	analysis, err := b.fit.Analyze(ctx, user.ID, services.AnalyzeOptions{})
	if err != nil {
		return nil, err
	}

	var path *scoring.LearningPath
	if len(analysis.Matches) > 0 {
		path, err = b.fit.LearningPathFor(ctx, analysis, analysis.Matches[0].Slug)
		if err != nil {
			return nil, err
		}
	}

	narrative, err := b.narrator.Narrate(ctx, advisor.Input{
		Name:        user.Name,
		HollandCode: analysis.HollandCode,
		Matches:     analysis.Matches,
		Path:        path,
	})
	if err != nil {
		b.log.Warn("narrative unavailable", zap.Uint("user_id", user.ID), zap.Error(err))
		narrative = ""
	}

	content, err := b.gen.Render(Data{
		UserName:  user.Name,
		UserEmail: user.Email,
		Report:    analysis,
		Path:      path,
		Narrative: narrative,
	})
	if err != nil {
		return nil, err
	}

	check, err := pdfvalidation.ValidateBytes(content, pdfvalidation.ReportLimits)
	if err != nil {
		return nil, fmt.Errorf("generated report failed validation: %w", err)
	}

	b.log.Info("career report rendered",
		zap.Uint("user_id", user.ID), zap.Int("pages", check.PageCount), zap.Int("bytes", len(content)))

	return &Document{
		FileName: FileName(user.ID, analysis.GeneratedAt),
		Content:  content,
		Pages:    check.PageCount,
		Report:   analysis,
	}, nil
}

// Publish renders the report, uploads it and returns a temporary download link
func (b *Builder) Publish(ctx context.Context, user *model.User, ttl time.Duration) (*Published, error) {
	if b.store == nil {
		return nil, ErrStorageDisabled
	}
	if ttl <= 0 {
		ttl = DefaultLinkTTL
	}

	doc, err := b.Build(ctx, user)
	if err != nil {
		return nil, err
	}

	key := storage.ReportKey(user.ID)
	if _, err := b.store.UploadBytes(ctx, key, doc.Content, storage.ContentType(doc.FileName)); err != nil {
		return nil, err
	}
	url, err := b.store.PresignedURL(key, ttl)
	if err != nil {
		// nobody can reach the object without a link
		if delErr := b.store.Delete(ctx, key); delErr != nil {
			b.log.Warn("failed to remove unpublished report", zap.String("key", key), zap.Error(delErr))
		}
		return nil, err
	}

	b.log.Info("career report published", zap.Uint("user_id", user.ID), zap.String("key", key))

	return &Published{
		Key:       key,
		URL:       url,
		ExpiresAt: time.Now().UTC().Add(ttl),
		Pages:     doc.Pages,
		Size:      len(doc.Content),
	}, nil
}

// FileName is the download name of a report
func FileName(userID uint, at time.Time) string {
	return fmt.Sprintf("career-fit-%d-%s.pdf", userID, at.UTC().Format("20060102"))
}
