// Package pdf is the external parser collaborator: it turns a PDF file into
// the flat, positioned fragment stream the classification engine consumes.
// Parsing is structure-aware via pdfcpu; text placement is recovered from the
// page content streams, which is approximate but sufficient for the
// typographic signals the engine needs.
package pdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/ironsupr/DocuDots/internal/fragment"
)

// ParseError reports a failure of the parsing collaborator. The resilience
// wrapper converts it into a skipped-document result after retries.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parser reads PDF files into fragment documents.
type Parser struct {
	conf *model.Configuration
}

// NewParser returns a parser with the default pdfcpu configuration.
func NewParser() *Parser {
	return &Parser{conf: model.NewDefaultConfiguration()}
}

// Parse extracts the positioned text fragments of one document. Fragments
// carry a strictly increasing document-order index across all pages.
func (p *Parser) Parse(ctx context.Context, path string) (fragment.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return fragment.Document{}, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	pctx, err := api.ReadValidateAndOptimize(f, p.conf)
	if err != nil {
		return fragment.Document{}, &ParseError{Path: path, Err: fmt.Errorf("pdfcpu read: %w", err)}
	}

	doc := fragment.Document{PageCount: pctx.PageCount}
	if dims, err := pctx.PageDims(); err == nil && len(dims) > 0 {
		doc.PageWidth = dims[0].Width
		doc.PageHeight = dims[0].Height
	}

	index := 0
	for pageNr := 1; pageNr <= pctx.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return fragment.Document{}, err
		}
		data, err := pageContent(pctx, pageNr)
		if err != nil || len(data) == 0 {
			continue
		}
		fonts := pageFontNames(pctx, pageNr)
		frags := parseContent(data, pageNr-1, doc.PageHeight, fonts, &index)
		doc.Fragments = append(doc.Fragments, frags...)
	}
	return doc, nil
}

func pageContent(pctx *model.Context, pageNr int) ([]byte, error) {
	r, err := pdfcpu.ExtractPageContent(pctx, pageNr)
	if err != nil || r == nil {
		return nil, err
	}
	return io.ReadAll(r)
}

// pageFontNames maps content-stream font resource names (e.g. "F1") to the
// base font name (e.g. "Helvetica-Bold") via pdfcpu's optimization context.
func pageFontNames(pctx *model.Context, pageNr int) map[string]string {
	names := make(map[string]string)
	opt := pctx.Optimize
	if opt == nil || pageNr-1 >= len(opt.PageFonts) {
		return names
	}
	for objNr, used := range opt.PageFonts[pageNr-1] {
		if !used {
			continue
		}
		fo, ok := opt.FontObjects[objNr]
		if !ok || fo == nil {
			continue
		}
		for _, res := range fo.ResourceNames {
			names[res] = fo.FontName
		}
	}
	return names
}

// styleFromFontName infers bold/italic flags from the base font name, the
// only style signal a content stream reliably carries.
func styleFromFontName(name string) (bold, italic bool) {
	lower := strings.ToLower(name)
	bold = strings.Contains(lower, "bold") ||
		strings.Contains(lower, "black") ||
		strings.Contains(lower, "heavy") ||
		strings.Contains(lower, "semibold") ||
		strings.Contains(lower, "demibold")
	italic = strings.Contains(lower, "italic") || strings.Contains(lower, "oblique")
	return bold, italic
}

// fontFamily strips the subset prefix ("ABCDEF+") and style suffix from a
// base font name, leaving the family.
func fontFamily(name string) string {
	if i := strings.IndexByte(name, '+'); i == 6 {
		name = name[i+1:]
	}
	if i := strings.IndexByte(name, '-'); i > 0 {
		name = name[:i]
	}
	if i := strings.IndexByte(name, ','); i > 0 {
		name = name[:i]
	}
	return name
}
