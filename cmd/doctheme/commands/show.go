package commands

import (
	"fmt"
	"io"
	"os"

	"git.home.luguber.info/inful/doctheme/internal/codeblock"
	"git.home.luguber.info/inful/doctheme/internal/config"
	"git.home.luguber.info/inful/doctheme/internal/foundation/errors"
	"git.home.luguber.info/inful/doctheme/internal/frontmatter"
	"git.home.luguber.info/inful/doctheme/internal/highlight"
	"git.home.luguber.info/inful/doctheme/internal/logfields"
	"git.home.luguber.info/inful/doctheme/internal/markdown"
	"git.home.luguber.info/inful/doctheme/internal/theme"
)

// ShowCmd prints every fenced code block of one file, styled for the terminal.
type ShowCmd struct {
	File string `arg:"" type:"existingfile" help:"Markdown file to show."`
	Mode string `name:"mode" help:"Color mode (light|dark). Defaults to the page's color_mode, then theme.default_mode."`
}

func (s *ShowCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	return s.show(os.Stdout, g, cfg)
}

func (s *ShowCmd) show(w io.Writer, g *Global, cfg *config.Config) error {
	content, err := os.ReadFile(s.File)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to read page").
			WithContext("path", s.File).Build()
	}
	page, err := frontmatter.Parse(content)
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid frontmatter").
			WithContext("path", s.File).Build()
	}

	mode, source, err := s.resolveMode(page, cfg)
	if errors.HasCategory(err, errors.CategoryValidation) {
		return err
	}
	if err != nil {
		return errors.WrapError(err, errors.CategoryTheme, "failed to resolve color mode").
			WithContext("path", s.File).Build()
	}
	g.Logger.Debug("Showing code blocks", logfields.Path(s.File), logfields.Mode(string(mode)), logfields.ModeSource(string(source)))

	fences, err := markdown.ExtractFences(page.Body, markdown.Options{Containers: true})
	if err != nil {
		return errors.WrapError(err, errors.CategoryRender, "failed to parse page").
			WithContext("path", s.File).Build()
	}

	palettes, err := highlight.NewPalettes(cfg.Highlight.LightStyle, cfg.Highlight.DarkStyle)
	if err != nil {
		return errors.WrapError(err, errors.CategoryHighlight, "invalid highlight styles").Build()
	}
	term := codeblock.NewTerminal(highlight.New(palettes), codeblock.NewLabels(cfg.Languages), w)

	if len(fences) == 0 {
		_, _ = fmt.Fprintf(w, "%s: no code blocks\n", s.File)
		return nil
	}
	for i, f := range fences {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		meta := codeblock.ParseFence(f.Info, f.Body)
		_, _ = fmt.Fprintf(w, "%s:%d\n", s.File, f.Line)
		_, _ = fmt.Fprintln(w, term.Render(codeblock.NewRenderContext(meta, mode), f.Body))
	}
	return nil
}

// resolveMode applies --mode, then the page's color_mode, then default_mode.
func (s *ShowCmd) resolveMode(page frontmatter.Page, cfg *config.Config) (theme.Mode, theme.Source, error) {
	provider := page.ModeProvider()
	if s.Mode != "" {
		m, err := theme.ParseModeStrict(s.Mode)
		if err != nil {
			return "", "", errors.WrapError(err, errors.CategoryValidation, "invalid --mode").Build()
		}
		provider = theme.Fixed(m)
	}
	return theme.Resolver{
		Provider:   provider,
		Attributes: theme.StaticAttributes{theme.DataThemeAttribute: cfg.Theme.DefaultMode},
	}.ResolveWithSource()
}
