// Package export captures a rendered CV document and produces a paginated
// A4 PDF. Capture runs in a headless browser so output preserves the visual
// fidelity of the HTML renderer (colors, fonts, full-bleed backgrounds).
package export

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/masar-app/masar/internal/types"
	"golang.org/x/sync/semaphore"
)

// A4 paper size in inches for PrintToPDF (210mm x 297mm).
const (
	paperWidthIn  = 8.27
	paperHeightIn = 11.69
)

// captureScale is the fixed pixel-density multiplier applied to the capture
// viewport for legibility of rasterized content.
const captureScale = 2

// a4ViewportWidth is the CSS pixel width of an A4 page at 96dpi; forcing it
// keeps output independent of the caller's viewport or zoom state.
const (
	a4ViewportWidth  = 794
	a4ViewportHeight = 1123
)

// Request describes one export operation.
type Request struct {
	// HTML is the rendered document to capture.
	HTML string
	// AnchorID identifies the element that must be present in HTML; its box
	// is forced to A4 proportions for the capture.
	AnchorID string
	// Filename is the suggested output name; whitespace is collapsed to
	// underscores and a fixed "_CV.pdf" suffix appended.
	Filename string
	// Language sets the document direction when the input HTML does not
	// declare one.
	Language types.Language
}

// Exporter produces PDF documents from rendered HTML. A single export may
// be in flight at a time; concurrent calls fail fast with a *BusyError
// rather than queueing.
type Exporter struct {
	inflight *semaphore.Weighted
	timeout  time.Duration
}

// NewExporter returns an Exporter with the default capture timeout.
func NewExporter() *Exporter {
	return &Exporter{
		inflight: semaphore.NewWeighted(1),
		timeout:  60 * time.Second,
	}
}

// Export captures the request's anchor element as a zero-margin A4 PDF and
// returns the document bytes plus the derived filename. On any failure no
// partial output is returned.
func (e *Exporter) Export(ctx context.Context, req Request) ([]byte, string, error) {
	if !e.inflight.TryAcquire(1) {
		return nil, "", &BusyError{}
	}
	defer e.inflight.Release(1)

	prepared, err := prepareDocument(req)
	if err != nil {
		return nil, "", err
	}

	pdf, err := e.printToPDF(ctx, prepared)
	if err != nil {
		return nil, "", &ExportError{Message: "PDF capture failed", Cause: err}
	}

	return pdf, Filename(req.Filename), nil
}

// prepareDocument verifies the anchor exists and injects the print-forcing
// styles into a copy of the document; the caller's HTML is never mutated.
func prepareDocument(req Request) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(req.HTML))
	if err != nil {
		return "", &ExportError{Message: "failed to parse document", Cause: err}
	}

	anchor := doc.Find("#" + req.AnchorID)
	if anchor.Length() == 0 {
		return "", &AnchorNotFoundError{AnchorID: req.AnchorID}
	}

	// Force the anchor box to exact A4 proportions regardless of any
	// responsive styling carried over from the on-screen document.
	forced := fmt.Sprintf(
		`<style>@page{size:A4;margin:0}#%s{width:210mm !important;min-height:297mm !important;margin:0 !important}</style>`,
		req.AnchorID,
	)
	doc.Find("head").AppendHtml(forced)

	if _, ok := doc.Find("html").Attr("dir"); !ok {
		dir := "ltr"
		if req.Language == types.LanguageArabic {
			dir = "rtl"
		}
		doc.Find("html").SetAttr("dir", dir)
	}

	out, err := doc.Html()
	if err != nil {
		return "", &ExportError{Message: "failed to serialize document", Cause: err}
	}
	return out, nil
}

// printToPDF loads the document in a headless browser and prints it to a
// zero-margin A4 PDF with backgrounds enabled.
func (e *Exporter) printToPDF(ctx context.Context, html string) ([]byte, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, e.timeout)
	defer cancel()

	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(a4ViewportWidth, a4ViewportHeight, chromedp.EmulateScale(captureScale)),
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthIn).
				WithPaperHeight(paperHeightIn).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Filename derives the download name from a suggested name: whitespace runs
// collapse to underscores and the fixed suffix is appended.
func Filename(suggested string) string {
	name := whitespaceRun.ReplaceAllString(strings.TrimSpace(suggested), "_")
	if name == "" {
		name = "cv"
	}
	return name + "_CV.pdf"
}
