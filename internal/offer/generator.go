// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package offer renders one-page PDF offer documents for captured leads.
package offer

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/olegiv/pvquote-go/internal/model"
	"github.com/olegiv/pvquote-go/internal/util"
)

const (
	logoMaxWidth  = 400
	logoMaxHeight = 160

	// Layout coordinates in millimeters on an A4 page.
	logoX      = 10.0
	logoY      = 8.0
	logoWidth  = 50.0
	titleY     = 40.0
	fieldX     = 20.0
	firstLineY = 60.0
	lineHeight = 10.0
)

// Generator writes offer PDFs into a dedicated directory.
type Generator struct {
	dir      string
	logoPath string
}

// NewGenerator creates a generator that writes into dir, creating it if
// needed. logoPath may be empty or point at a missing file; the logo is
// optional and failures to load it never fail document generation.
func NewGenerator(dir, logoPath string) (*Generator, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating offers directory %s: %w", dir, err)
	}
	return &Generator{dir: dir, logoPath: logoPath}, nil
}

// Generate renders a one-page offer document for the lead and returns
// the path of the written file. Each call produces a uniquely named
// file so concurrent submissions never overwrite each other.
func (g *Generator) Generate(lead model.Lead) (string, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	g.drawLogo(pdf)

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Text(fieldX, titleY, tr("Ihr persönliches PV-Angebot"))

	pdf.SetFont("Helvetica", "", 12)
	y := firstLineY
	for _, f := range model.LeadFields {
		pdf.Text(fieldX, y, tr(fmt.Sprintf("%s: %s", f.Label, lead.FieldValue(f.Name))))
		y += lineHeight
	}

	y += lineHeight
	pdf.SetFont("Helvetica", "I", 11)
	pdf.Text(fieldX, y, tr("Vielen Dank für Ihre Anfrage! Wir melden uns in Kürze bei Ihnen."))

	name := fmt.Sprintf("offer-%s-%s.pdf", util.Slugify(lead.Email), uuid.New().String())
	path := filepath.Join(g.dir, name)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("writing offer PDF %s: %w", path, err)
	}
	return path, nil
}

// drawLogo places the configured logo image on the page. Any problem
// with the logo file is logged and the document is rendered without it.
func (g *Generator) drawLogo(pdf *fpdf.Fpdf) {
	if g.logoPath == "" {
		return
	}
	img, err := imaging.Open(g.logoPath)
	if err != nil {
		slog.Warn("offer logo unavailable", "path", g.logoPath, "error", err)
		return
	}
	img = imaging.Fit(img, logoMaxWidth, logoMaxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		slog.Warn("encoding offer logo", "path", g.logoPath, "error", err)
		return
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("logo", opts, &buf)
	pdf.ImageOptions("logo", logoX, logoY, logoWidth, 0, false, opts, 0, "")
}
