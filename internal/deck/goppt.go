package deck

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	ppt "github.com/VantageDataChat/GoPPT"

	"github.com/csvdeck/csvdeck/internal/core/errx"
	logx "github.com/csvdeck/csvdeck/pkg/logger"
)

// Slide layout constants, 16:9 widescreen.
const (
	emuPerInch = 914400

	marginLeft = int64(0.4 * emuPerInch)

	contentWidth = int64(9.2 * emuPerInch)
	slideWidth   = int64(10.0 * emuPerInch)
	slideHeight  = int64(5.625 * emuPerInch)

	// font sizes, pt
	fontTitle    = 36
	fontSubtitle = 18
	fontHeading  = 28
	fontBody     = 14
	fontFooter   = 9
)

// wrapWidth is the character budget per body line before wrapping.
const wrapWidth = 90

func solidFill(argb string) *ppt.Fill {
	return ppt.NewFill().SetSolid(ppt.NewColor(argb))
}

func alignCenter(p *ppt.Paragraph) {
	p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
}

// WriteFile renders the slides into a pptx file at path. A failure partway
// through may leave a truncated file; nothing is cleaned up or retried.
func (b *Builder) WriteFile(specs []SlideSpec, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errx.Wrap(errx.KindRender, err, "create deck file %q", path)
	}
	defer f.Close()
	if err := b.Write(specs, f); err != nil {
		return err
	}
	logx.Info().Str("path", path).Int("slides", len(specs)).Str("template", b.tpl.Name).Msg("deck written")
	return nil
}

// Write renders the slides as a pptx document to w.
func (b *Builder) Write(specs []SlideSpec, w io.Writer) error {
	p := ppt.New()
	p.GetDocumentProperties().Title = "Data Analysis Report"
	p.GetDocumentProperties().Creator = "csvdeck"

	for i, spec := range specs {
		var slide *ppt.Slide
		if i == 0 {
			slide = p.GetActiveSlide()
		} else {
			slide = p.CreateSlide()
		}
		switch spec.Stage {
		case StageTitle:
			b.renderTitleSlide(slide, spec)
		case StageChart:
			b.renderChartSlide(slide, spec)
		default:
			b.renderContentSlide(slide, spec)
		}
	}

	pw, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return errx.Wrap(errx.KindRender, err, "create pptx writer")
	}
	var buf bytes.Buffer
	if err := pw.(*ppt.PPTXWriter).WriteTo(&buf); err != nil {
		return errx.Wrap(errx.KindRender, err, "serialize deck")
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return errx.Wrap(errx.KindRender, err, "write deck")
	}
	return nil
}

func (b *Builder) renderTitleSlide(slide *ppt.Slide, spec SlideSpec) {
	b.addAccentBars(slide, 0.15, 0.125)

	titleShape := slide.CreateRichTextShape()
	titleShape.SetOffsetX(marginLeft).SetOffsetY(int64(1.5 * emuPerInch))
	titleShape.SetWidth(contentWidth).SetHeight(int64(1.0 * emuPerInch))
	tr := titleShape.CreateTextRun(spec.Title)
	tr.GetFont().SetSize(fontTitle).SetBold(true).SetColor(ppt.NewColor(b.tpl.AccentDark))
	alignCenter(titleShape.GetActiveParagraph())

	if len(spec.Bullets) > 0 {
		subShape := slide.CreateRichTextShape()
		subShape.SetOffsetX(int64(1.0 * emuPerInch)).SetOffsetY(int64(2.8 * emuPerInch))
		subShape.SetWidth(int64(8.0 * emuPerInch)).SetHeight(int64(1.0 * emuPerInch))
		subShape.SetFill(solidFill(b.tpl.Panel))
		for i, line := range spec.Bullets {
			if i > 0 {
				subShape.CreateParagraph()
			}
			str := subShape.CreateTextRun(line)
			str.GetFont().SetSize(fontSubtitle).SetColor(ppt.NewColor(b.tpl.Body))
			alignCenter(subShape.GetActiveParagraph())
		}
	}

	tsShape := slide.CreateRichTextShape()
	tsShape.SetOffsetX(marginLeft).SetOffsetY(int64(4.4 * emuPerInch))
	tsShape.SetWidth(contentWidth).SetHeight(int64(0.4 * emuPerInch))
	tsTr := tsShape.CreateTextRun(time.Now().Format("January 2, 2006 15:04"))
	tsTr.GetFont().SetSize(fontFooter).SetColor(ppt.NewColor(b.tpl.Muted))
	alignCenter(tsShape.GetActiveParagraph())
}

func (b *Builder) renderContentSlide(slide *ppt.Slide, spec SlideSpec) {
	b.addHeader(slide, spec.Title)

	contentShape := slide.CreateRichTextShape()
	contentShape.SetOffsetX(marginLeft).SetOffsetY(int64(1.1 * emuPerInch))
	contentShape.SetWidth(contentWidth).SetHeight(int64(4.2 * emuPerInch))

	first := true
	for _, bullet := range spec.Bullets {
		for j, line := range wrapText(bullet, wrapWidth) {
			if !first {
				contentShape.CreateParagraph()
			}
			first = false
			text := line
			if j == 0 {
				text = "• " + line
			} else {
				text = "   " + line
			}
			tr := contentShape.CreateTextRun(text)
			tr.GetFont().SetSize(fontBody).SetColor(ppt.NewColor(b.tpl.Body))
		}
	}
}

func (b *Builder) renderChartSlide(slide *ppt.Slide, spec SlideSpec) {
	b.addHeader(slide, spec.Title)

	// bullets on the left, chart images on the right
	textShape := slide.CreateRichTextShape()
	textShape.SetOffsetX(marginLeft).SetOffsetY(int64(1.2 * emuPerInch))
	textShape.SetWidth(int64(3.6 * emuPerInch)).SetHeight(int64(4.0 * emuPerInch))
	first := true
	for _, bullet := range spec.Bullets {
		for j, line := range wrapText(bullet, 36) {
			if !first {
				textShape.CreateParagraph()
			}
			first = false
			text := line
			if j == 0 {
				text = "• " + line
			}
			tr := textShape.CreateTextRun(text)
			tr.GetFont().SetSize(fontBody).SetColor(ppt.NewColor(b.tpl.Body))
		}
	}

	images := spec.Images
	if len(images) > 2 {
		images = images[:2]
	}
	imgHeight := 3.9
	if len(images) == 2 {
		imgHeight = 1.95
	}
	for i, path := range images {
		data, err := os.ReadFile(path)
		if err != nil {
			logx.Warn().Err(err).Str("path", path).Msg("chart image unreadable, skipping")
			continue
		}
		imgShape := slide.CreateDrawingShape()
		imgShape.SetImageData(data, "image/png")
		imgShape.SetOffsetX(int64(4.3 * emuPerInch))
		imgShape.SetOffsetY(int64((1.2 + float64(i)*(imgHeight+0.1)) * emuPerInch))
		imgShape.SetWidth(int64(5.3 * emuPerInch))
		imgShape.SetHeight(int64(imgHeight * emuPerInch))
	}

	if len(images) == 0 {
		note := slide.CreateRichTextShape()
		note.SetOffsetX(int64(4.3 * emuPerInch)).SetOffsetY(int64(2.8 * emuPerInch))
		note.SetWidth(int64(5.3 * emuPerInch)).SetHeight(int64(0.5 * emuPerInch))
		tr := note.CreateTextRun("No chartable columns in this dataset")
		tr.GetFont().SetSize(fontBody).SetColor(ppt.NewColor(b.tpl.Muted))
		alignCenter(note.GetActiveParagraph())
	}
}

// addHeader draws the accent bar and heading shared by all content slides.
func (b *Builder) addHeader(slide *ppt.Slide, title string) {
	topBar := slide.CreateRichTextShape()
	topBar.SetOffsetX(0).SetOffsetY(0)
	topBar.SetWidth(slideWidth).SetHeight(int64(0.08 * emuPerInch))
	topBar.SetFill(solidFill(b.tpl.Accent))

	titleShape := slide.CreateRichTextShape()
	titleShape.SetOffsetX(marginLeft).SetOffsetY(int64(0.3 * emuPerInch))
	titleShape.SetWidth(contentWidth).SetHeight(int64(0.6 * emuPerInch))
	tr := titleShape.CreateTextRun(title)
	tr.GetFont().SetSize(fontHeading).SetBold(true).SetColor(ppt.NewColor(b.tpl.AccentDark))
}

func (b *Builder) addAccentBars(slide *ppt.Slide, topInches, bottomInches float64) {
	topBar := slide.CreateRichTextShape()
	topBar.SetOffsetX(0).SetOffsetY(0)
	topBar.SetWidth(slideWidth).SetHeight(int64(topInches * emuPerInch))
	topBar.SetFill(solidFill(b.tpl.Accent))

	bottomBar := slide.CreateRichTextShape()
	bottomBar.SetOffsetX(0).SetOffsetY(slideHeight - int64(bottomInches*emuPerInch))
	bottomBar.SetWidth(slideWidth).SetHeight(int64(bottomInches * emuPerInch))
	bottomBar.SetFill(solidFill(b.tpl.Accent))
}

// wrapText wraps text to fit within maxLen characters, breaking on spaces
// where possible.
func wrapText(text string, maxLen int) []string {
	if text == "" {
		return []string{""}
	}
	var lines []string
	runes := []rune(text)
	for len(runes) > 0 {
		if len(runes) <= maxLen {
			lines = append(lines, string(runes))
			break
		}
		breakPoint := maxLen
		for i := maxLen; i > maxLen/2; i-- {
			if runes[i] == ' ' {
				breakPoint = i + 1
				break
			}
		}
		lines = append(lines, string(runes[:breakPoint]))
		runes = runes[breakPoint:]
		for len(runes) > 0 && runes[0] == ' ' {
			runes = runes[1:]
		}
	}
	return lines
}

// DefaultOutputName builds the default deck file name the way the CLI
// advertises it: presentation[_template]_<timestamp>.pptx.
func DefaultOutputName(template string, now time.Time) string {
	suffix := ""
	if template != "" && template != "default" {
		suffix = "_" + template
	}
	return fmt.Sprintf("presentation%s_%s.pptx", suffix, now.Format("20060102_150405"))
}
