package report

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/yuin/goldmark"
)

const pdfTimeout = 60 * time.Second

const pdfPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: Georgia, serif; margin: 2.5em; line-height: 1.5; }
h1, h2, h3 { font-family: Helvetica, Arial, sans-serif; }
blockquote { border-left: 3px solid #c33; padding-left: 1em; color: #600; }
</style>
</head>
<body>
%s
</body>
</html>`

// RenderPDF converts the markdown report to a PDF next to it, using a
// headless browser. Best effort: requires Chrome/Chromium on the system;
// callers log failures and continue.
func RenderPDF(ctx context.Context, markdown, outPath string) error {
	var html bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &html); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	document := fmt.Sprintf(pdfPage, html.String())

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, pdfTimeout)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, document).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().WithPrintBackground(false).Do(ctx)
			return err
		}),
	)
	if err != nil {
		return fmt.Errorf("print to pdf: %w", err)
	}

	if err := os.WriteFile(outPath, pdf, 0o644); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}

	return nil
}
