package narrative

import (
	"context"
	"fmt"

	"github.com/sb-tools/merchant-lens/pkg/models/domain"
)

// Generator renders an assembled report into consultation prose. The
// pipeline treats it as a black box: sections and the intent go in, text
// comes out.
type Generator interface {
	Generate(ctx context.Context, tag domain.Intent, sections []domain.ReportSection) (string, error)
}

// StaticGenerator answers with a fixed text. It backs tests and offline runs
// where no model endpoint is reachable.
type StaticGenerator struct {
	text string
}

// NewStaticGenerator returns a generator that always answers with text, or
// with a short placeholder summary when text is empty.
func NewStaticGenerator(text string) *StaticGenerator {
	return &StaticGenerator{text: text}
}

func (g *StaticGenerator) Generate(
	ctx context.Context,
	tag domain.Intent,
	sections []domain.ReportSection,
) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if g.text != "" {
		return g.text, nil
	}
	return fmt.Sprintf("%s 보고서입니다. 아래 %d개 섹션의 지표를 참고해 주세요.", tag.Label(), len(sections)), nil
}
