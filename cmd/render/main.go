package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"resume-builder/internal/domain"
	"resume-builder/internal/logger"
	"resume-builder/internal/model"
	"resume-builder/internal/usecase"
	infra "resume-builder/pkg/infrastructure"
)

func main() {
	in := pflag.StringP("in", "i", "", "document JSON file (default: a blank document)")
	out := pflag.StringP("out", "o", "resume.html", "preview HTML output")
	pdf := pflag.String("pdf", "", "also print to this PDF file")
	tpl := pflag.String("template", "", "override the document template")
	chrome := pflag.String("chrome", os.Getenv("CHROME_PATH"), "Chrome/Chromium executable")
	timeout := pflag.Duration("timeout", 60*time.Second, "PDF render timeout")
	pflag.Parse()

	logger.Init(logger.Config{Level: "info", Format: "pretty"})

	doc := domain.NewDocument()
	if *in != "" {
		raw, err := os.ReadFile(*in)
		if err != nil {
			logger.Fatal().Err(err).Msg("read document")
		}
		if doc, err = model.DecodeDocument(raw); err != nil {
			logger.Fatal().Err(err).Str("file", *in).Msg("invalid document")
		}
	}
	if *tpl != "" {
		t := domain.Template(*tpl)
		if !t.Valid() {
			logger.Fatal().Str("template", *tpl).Msg("unknown template")
		}
		doc = usecase.NewBuilder().SetTemplate(doc, t)
	}

	page, err := usecase.RenderPreview(doc)
	if err != nil {
		logger.Fatal().Err(err).Msg("render preview")
	}
	if err := os.WriteFile(*out, []byte(page), 0o644); err != nil {
		logger.Fatal().Err(err).Msg("write preview")
	}
	fmt.Printf("wrote %s\n", *out)

	if *pdf == "" {
		return
	}
	renderer := infra.NewChromedpRenderer(*chrome, *timeout)
	data, err := renderer.RenderHTMLToPDF(context.Background(), page)
	if err != nil {
		logger.Fatal().Err(err).Msg("render pdf")
	}
	if err := os.WriteFile(*pdf, data, 0o644); err != nil {
		logger.Fatal().Err(err).Msg("write pdf")
	}
	fmt.Printf("wrote %s\n", *pdf)
}
