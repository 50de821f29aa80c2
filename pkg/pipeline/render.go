package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/mindtower/pkg/errors"
	"github.com/matzehuels/mindtower/pkg/graph"
	"github.com/matzehuels/mindtower/pkg/observability"
	"github.com/matzehuels/mindtower/pkg/render"
)

// RenderLayout generates output artifacts in the requested formats.
// opts must have been prepared with ValidateForRender.
func RenderLayout(ctx context.Context, l graph.Layout, opts Options) (artifacts map[string][]byte, err error) {
	hooks := observability.Layout()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	g := render.Prepare(l.Graph())
	var dot string
	dotSource := func() string {
		if dot == "" {
			dot = render.ToDOT(g, render.DOTOptions{
				Background: opts.Render.Background,
				FontFamily: opts.Render.FontFamily,
				Directed:   opts.Directed,
			})
		}
		return dot
	}

	artifacts = make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			if opts.Graphviz {
				data, err = render.RenderDOT(ctx, dotSource(), render.FormatSVG)
			} else {
				data = render.RenderSVG(g,
					render.WithPadding(opts.Render.Padding),
					render.WithCurvature(opts.Render.Curvature),
					render.WithBackground(opts.Render.Background),
					render.WithFontFamily(opts.Render.FontFamily))
			}
		case FormatPNG:
			data, err = render.RenderDOT(ctx, dotSource(), render.FormatPNG)
		case FormatDOT:
			data = []byte(dotSource())
		case FormatJSON:
			data, err = graph.MarshalLayout(l)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
		opts.Logger.Debug("rendered artifact", "format", format, "bytes", len(data))
	}

	return artifacts, nil
}
