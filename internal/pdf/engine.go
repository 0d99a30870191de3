package pdf

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"
)

// A4 paper size in inches.
const (
	paperWidthA4  = 8.27
	paperHeightA4 = 11.69
)

// Orientation values accepted by PageOptions.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// DefaultTimeout bounds a single browser conversion.
const DefaultTimeout = 60 * time.Second

// PageOptions controls PDF page emission.
type PageOptions struct {
	Orientation string // portrait (default) or landscape
}

// DefaultPageOptions returns portrait A4 settings.
func DefaultPageOptions() *PageOptions {
	return &PageOptions{Orientation: OrientationPortrait}
}

// Engine converts HTML documents to PDF or PNG bytes. Every conversion
// acquires its own isolated browser instance and releases it on all exit
// paths, so no page state leaks between concurrent calls.
type Engine struct {
	chromePath string
	timeout    time.Duration
	log        *logrus.Logger
}

// NewEngine creates an engine. An explicit Chrome binary can be supplied via
// the CHROME_PATH environment variable; otherwise chromedp discovers one.
func NewEngine(log *logrus.Logger) *Engine {
	if log == nil {
		log = logrus.New()
	}
	return &Engine{
		chromePath: os.Getenv("CHROME_PATH"),
		timeout:    DefaultTimeout,
		log:        log,
	}
}

// PDF renders the HTML document to A4 PDF bytes with backgrounds printed.
// The HTML is written to a temp directory and loaded over file:// so inline
// assets resolve without a web server.
func (e *Engine) PDF(ctx context.Context, html string, opts *PageOptions) ([]byte, error) {
	if opts == nil {
		opts = DefaultPageOptions()
	}

	tmpDir, err := os.MkdirTemp("", "resume-export-")
	if err != nil {
		return nil, &RenderError{Message: "failed to create temp directory", Cause: err}
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, &RenderError{Message: "failed to write html document", Cause: err}
	}

	var pdfBuf []byte
	err = e.withBrowser(ctx, func(browserCtx context.Context) error {
		return chromedp.Run(browserCtx,
			chromedp.Navigate("file://"+htmlPath),
			chromedp.WaitReady("body", chromedp.ByQuery),
			chromedp.ActionFunc(func(ctx context.Context) error {
				var err error
				pdfBuf, _, err = page.PrintToPDF().
					WithPrintBackground(true).
					WithPaperWidth(paperWidthA4).
					WithPaperHeight(paperHeightA4).
					WithLandscape(opts.Orientation == OrientationLandscape).
					Do(ctx)
				return err
			}),
		)
	})
	if err != nil {
		return nil, &RenderError{Message: "pdf conversion failed", Cause: err}
	}

	e.log.WithField("bytes", len(pdfBuf)).Debug("pdf rendered")
	return pdfBuf, nil
}

// PNG renders the HTML to PDF first, then captures the intermediate PDF as a
// full-page screenshot. Two launches per PNG is the deliberate cost of having
// no PDF-native image export path.
func (e *Engine) PNG(ctx context.Context, html string) ([]byte, error) {
	pdfBuf, err := e.PDF(ctx, html, DefaultPageOptions())
	if err != nil {
		return nil, err
	}
	return e.ScreenshotPDF(ctx, pdfBuf)
}

// ScreenshotPDF loads PDF bytes in an isolated browser session and captures
// a full-page screenshot of the built-in viewer. The intermediate file is
// removed before returning.
func (e *Engine) ScreenshotPDF(ctx context.Context, pdfBuf []byte) ([]byte, error) {
	tmpPdf, err := os.CreateTemp("", "resume-export-*.pdf")
	if err != nil {
		return nil, &RenderError{Message: "failed to create temp pdf", Cause: err}
	}
	tmpPath := tmpPdf.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpPdf.Write(pdfBuf); err != nil {
		tmpPdf.Close()
		return nil, &RenderError{Message: "failed to write temp pdf", Cause: err}
	}
	if err := tmpPdf.Close(); err != nil {
		return nil, &RenderError{Message: "failed to flush temp pdf", Cause: err}
	}

	var shot []byte
	err = e.withBrowser(ctx, func(browserCtx context.Context) error {
		return chromedp.Run(browserCtx,
			chromedp.Navigate("file://"+tmpPath),
			// the built-in PDF viewer needs a moment to paint
			chromedp.Sleep(2*time.Second),
			chromedp.FullScreenshot(&shot, 90),
		)
	})
	if err != nil {
		return nil, &RenderError{Message: "png capture failed", Cause: err}
	}

	e.log.WithField("bytes", len(shot)).Debug("png rendered")
	return shot, nil
}

// withBrowser runs fn inside a freshly allocated headless browser context
// bounded by the engine timeout. The allocator and browser are torn down on
// every exit path, including render failure.
func (e *Engine) withBrowser(ctx context.Context, fn func(context.Context) error) error {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if e.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(e.chromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, e.timeout)
	defer cancelTimeout()

	return fn(browserCtx)
}
