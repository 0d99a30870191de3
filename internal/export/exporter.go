package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/jonathan/resume-builder/internal/pdf"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

// Format values accepted by Options.
const (
	FormatPDF = "pdf"
	FormatPNG = "png"
)

// DefaultWatermarkText is stamped when watermarking is requested without
// explicit text.
const DefaultWatermarkText = "Resume Builder Pro"

// Options controls a single export. Every recognized field and its default
// is enumerated here; unknown knobs do not exist.
type Options struct {
	Locale        string `json:"locale"`         // default "en"
	Theme         string `json:"theme"`          // default "classic"
	Format        string `json:"format"`         // "pdf" (default) or "png"
	Watermark     bool   `json:"watermark"`      // stamp watermark text on every page
	WatermarkText string `json:"watermark_text"` // default DefaultWatermarkText
	Logo          string `json:"logo"`           // path to a logo image; missing file is skipped
	Orientation   string `json:"orientation"`    // "portrait" (default) or "landscape"
	Brand         string `json:"brand"`          // footer text injected into the HTML
	RTL           bool   `json:"rtl"`            // right-to-left document direction
}

// DefaultOptions returns the baseline export options.
func DefaultOptions() *Options {
	return &Options{
		Locale:        "en",
		Theme:         "classic",
		Format:        FormatPDF,
		WatermarkText: DefaultWatermarkText,
		Orientation:   pdf.OrientationPortrait,
	}
}

// normalized fills zero-valued fields with their defaults, returning a copy.
func (o *Options) normalized() *Options {
	out := *o
	if out.Locale == "" {
		out.Locale = "en"
	}
	if out.Theme == "" {
		out.Theme = "classic"
	}
	if out.Format == "" {
		out.Format = FormatPDF
	}
	if out.WatermarkText == "" {
		out.WatermarkText = DefaultWatermarkText
	}
	if out.Orientation == "" {
		out.Orientation = pdf.OrientationPortrait
	}
	return &out
}

// Exporter drives the full pipeline: render HTML, convert with the browser
// engine, post-process, write the artifact, and memoize by fingerprint.
type Exporter struct {
	renderer   *rendering.Renderer
	engine     *pdf.Engine
	cache      Cache
	exportsDir string
	log        *logrus.Logger
	group      singleflight.Group
}

// NewExporter wires an exporter. Pass nil cache for a fresh unbounded
// in-memory one.
func NewExporter(renderer *rendering.Renderer, engine *pdf.Engine, cache Cache, exportsDir string, log *logrus.Logger) *Exporter {
	if cache == nil {
		cache = NewMemoryCache(0)
	}
	if log == nil {
		log = logrus.New()
	}
	return &Exporter{
		renderer:   renderer,
		engine:     engine,
		cache:      cache,
		exportsDir: exportsDir,
		log:        log,
	}
}

// Generate exports a single resume and returns the artifact path. Repeated
// calls with the same resume content version and options return the first
// call's path without re-rendering; concurrent identical requests share one
// render.
func (e *Exporter) Generate(ctx context.Context, resume *types.Resume, options *Options) (string, error) {
	if options == nil {
		options = DefaultOptions()
	}
	opts := options.normalized()
	if opts.Format != FormatPDF && opts.Format != FormatPNG {
		return "", fmt.Errorf("unsupported export format %q", opts.Format)
	}

	fingerprint := Fingerprint(resume.UpdatedAt, opts)
	if path, ok := e.cache.Get(fingerprint); ok {
		e.log.WithFields(logrus.Fields{"resume_id": resume.ID, "path": path}).Debug("export cache hit")
		return path, nil
	}

	path, err, _ := e.group.Do(fingerprint, func() (interface{}, error) {
		if path, ok := e.cache.Get(fingerprint); ok {
			return path, nil
		}
		path, err := e.generate(ctx, resume, opts)
		if err != nil {
			return "", err
		}
		e.cache.Set(fingerprint, path)
		return path, nil
	})
	if err != nil {
		return "", err
	}
	return path.(string), nil
}

func (e *Exporter) generate(ctx context.Context, resume *types.Resume, opts *Options) (string, error) {
	html, err := e.renderer.Render(resume, &rendering.Options{
		Locale:    opts.Locale,
		Theme:     opts.Theme,
		Brand:     opts.Brand,
		RTL:       opts.RTL,
		Watermark: watermarkOverlay(opts),
		Transform: logoTransform(opts.Logo),
	})
	if err != nil {
		return "", err
	}

	pdfBytes, err := e.engine.PDF(ctx, html, &pdf.PageOptions{Orientation: opts.Orientation})
	if err != nil {
		return "", err
	}

	pdfBytes, err = pdf.SetMetadata(pdfBytes, pdf.Metadata{
		Creator:  DefaultWatermarkText,
		Title:    resume.PersonalInfo.FullName() + " Resume",
		Subject:  "Generated Resume",
		Keywords: []string{"resume", "builder", opts.Theme},
	})
	if err != nil {
		return "", err
	}
	if opts.Watermark {
		pdfBytes, err = pdf.StampWatermark(pdfBytes, opts.WatermarkText)
		if err != nil {
			return "", err
		}
	}
	pdfBytes, err = pdf.StampLogo(pdfBytes, opts.Logo, e.log)
	if err != nil {
		return "", err
	}

	artifact := pdfBytes
	if opts.Format == FormatPNG {
		artifact, err = e.engine.ScreenshotPDF(ctx, pdfBytes)
		if err != nil {
			return "", err
		}
	}

	if err := os.MkdirAll(e.exportsDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create exports directory: %w", err)
	}
	path := filepath.Join(e.exportsDir, artifactName(resume.ID.String(), opts.Format, time.Now()))
	if err := os.WriteFile(path, artifact, 0o644); err != nil {
		return "", fmt.Errorf("failed to write artifact %s: %w", path, err)
	}

	e.log.WithFields(logrus.Fields{
		"resume_id": resume.ID,
		"format":    opts.Format,
		"theme":     opts.Theme,
		"path":      path,
	}).Info("exported resume")

	return path, nil
}

// GenerateBulk exports every resume in input order and packages the
// artifacts into a single zip archive, returning its path. Documents are
// processed sequentially to cap simultaneous browser-process usage and to
// keep timestamp-derived member names collision free.
func (e *Exporter) GenerateBulk(ctx context.Context, resumes []*types.Resume, options *Options) (string, error) {
	if options == nil {
		options = DefaultOptions()
	}
	files := make([]string, 0, len(resumes))
	for _, resume := range resumes {
		path, err := e.Generate(ctx, resume, options)
		if err != nil {
			return "", fmt.Errorf("bulk export failed for resume %s: %w", resume.ID, err)
		}
		files = append(files, path)
	}

	zipPath := filepath.Join(e.exportsDir, archiveName(time.Now()))
	if err := CreateZip(files, zipPath, nil); err != nil {
		return "", err
	}

	e.log.WithFields(logrus.Fields{"count": len(files), "path": zipPath}).Info("exported resume archive")
	return zipPath, nil
}

// ClearCache drops memoized artifacts and compiled templates.
func (e *Exporter) ClearCache() {
	e.cache.Clear()
	e.renderer.ClearCache()
}

// watermarkOverlay returns the HTML overlay text for the render stage. The
// PDF stamp is applied separately in post-processing.
func watermarkOverlay(opts *Options) string {
	if !opts.Watermark {
		return ""
	}
	return opts.WatermarkText
}

// logoTransform attaches the logo path to the data handed to templates so
// themes can place an <img> where their layout wants it.
func logoTransform(logo string) func(*types.Resume) {
	if logo == "" {
		return nil
	}
	return func(r *types.Resume) {
		if r.PersonalInfo.ProfileImage == nil {
			r.PersonalInfo.ProfileImage = &types.FileInfo{
				Filename: filepath.Base(logo),
				Path:     logo,
				MimeType: "image/png",
			}
		}
	}
}
