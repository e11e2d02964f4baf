// Package report renders career-fit analyses as PDF documents and publishes them.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/sahilchouksey/career-compass-api/model"
	"github.com/sahilchouksey/career-compass-api/services"
	"github.com/sahilchouksey/career-compass-api/services/scoring"
)

// Data is everything one report shows
type Data struct {
	UserName  string
	UserEmail string
	Report    *services.CareerFitReport
	Path      *scoring.LearningPath // learning path of the best match, may be nil
	Narrative string
}

// Generator lays out career-fit reports
type Generator struct {
	Title string
	now   func() time.Time
}

// NewGenerator creates a generator with the default title
func NewGenerator() *Generator {
	return &Generator{Title: "Career Fit Report", now: time.Now}
}

type palette struct{ r, g, b int }

var (
	headerFill = palette{33, 66, 110}
	stripeFill = palette{235, 240, 247}
)

// Render produces the PDF bytes for d
func (g *Generator) Render(d Data) ([]byte, error) {
	if d.Report == nil {
		return nil, fmt.Errorf("report data is required")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(g.Title, true)
	pdf.SetAuthor("Career Compass", true)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	r := &renderer{pdf: pdf, tr: tr}

	pdf.AddPage()
	r.titleBlock(g.Title, d, g.now())
	r.summary(d.Report)

	r.heading("Interests (RIASEC)")
	r.categoryTable(d.Report.Interests)
	r.heading("Skills")
	r.categoryTable(d.Report.Skills)
	r.heading("Personality")
	r.categoryTable(d.Report.Personality)

	pdf.AddPage()
	r.heading("Top Career Matches")
	r.matchTable(d.Report.Matches)

	if len(d.Report.Matches) > 0 {
		best := d.Report.Matches[0]
		r.heading("Skill Gaps: " + best.Title)
		r.gapTable(best.Gaps)
	}

	if d.Path != nil {
		r.heading("Learning Path")
		r.learningPath(d.Path)
	}

	if strings.TrimSpace(d.Narrative) != "" {
		r.heading("Counselor Notes")
		r.paragraph(d.Narrative)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to lay out report: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}
	return buf.Bytes(), nil
}

type renderer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (r *renderer) titleBlock(title string, d Data, at time.Time) {
	r.pdf.SetFont("Helvetica", "B", 20)
	r.pdf.CellFormat(0, 12, r.tr(title), "", 1, "L", false, 0, "")
	r.pdf.SetFont("Helvetica", "", 11)
	name := d.UserName
	if d.UserEmail != "" {
		name = fmt.Sprintf("%s <%s>", d.UserName, d.UserEmail)
	}
	r.pdf.CellFormat(0, 6, r.tr("Prepared for: "+name), "", 1, "L", false, 0, "")
	r.pdf.CellFormat(0, 6, "Generated: "+at.UTC().Format("2 January 2006 15:04 MST"), "", 1, "L", false, 0, "")
	r.pdf.Ln(4)
}

func (r *renderer) summary(rep *services.CareerFitReport) {
	r.pdf.SetFont("Helvetica", "B", 12)
	r.pdf.CellFormat(0, 7, "Holland Code: "+rep.HollandCode, "", 1, "L", false, 0, "")
	r.pdf.SetFont("Helvetica", "", 10)
	r.pdf.CellFormat(0, 6, fmt.Sprintf("Careers compared: %d", rep.TotalCareers), "", 1, "L", false, 0, "")
	r.pdf.CellFormat(0, 6, fmt.Sprintf("Weights: interests %.0f%%, skills %.0f%%, personality %.0f%%",
		rep.Weights.Interests*100, rep.Weights.Skills*100, rep.Weights.Personality*100), "", 1, "L", false, 0, "")
	if len(rep.Matches) > 0 {
		best := rep.Matches[0]
		r.pdf.CellFormat(0, 6, r.tr(fmt.Sprintf("Best match: %s (%.1f, %s)", best.Title, best.Composite, best.Label)),
			"", 1, "L", false, 0, "")
	}
	r.pdf.Ln(2)
}

func (r *renderer) heading(text string) {
	r.pdf.Ln(3)
	r.pdf.SetFont("Helvetica", "B", 13)
	r.pdf.CellFormat(0, 8, r.tr(text), "B", 1, "L", false, 0, "")
	r.pdf.Ln(1)
}

func (r *renderer) paragraph(text string) {
	r.pdf.SetFont("Helvetica", "", 10)
	r.pdf.MultiCell(0, 5, r.tr(text), "", "L", false)
}

// table draws a header row and striped body rows; widths are in mm
func (r *renderer) table(headers []string, widths []float64, rows [][]string) {
	r.pdf.SetFont("Helvetica", "B", 9)
	r.pdf.SetFillColor(headerFill.r, headerFill.g, headerFill.b)
	r.pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		r.pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	r.pdf.Ln(-1)

	r.pdf.SetFont("Helvetica", "", 9)
	r.pdf.SetTextColor(0, 0, 0)
	r.pdf.SetFillColor(stripeFill.r, stripeFill.g, stripeFill.b)
	for n, row := range rows {
		for i, cell := range row {
			align := "C"
			if i == 0 || (i == 1 && len(headers) > 6) {
				align = "L"
			}
			r.pdf.CellFormat(widths[i], 6, r.tr(cell), "1", 0, align, n%2 == 1, 0, "")
		}
		r.pdf.Ln(-1)
	}
	if len(rows) == 0 {
		r.pdf.SetFont("Helvetica", "I", 9)
		r.pdf.CellFormat(sum(widths), 6, "None", "1", 1, "C", false, 0, "")
	}
}

func (r *renderer) categoryTable(results []model.CategoryResult) {
	rows := make([][]string, 0, len(results))
	for _, c := range results {
		rows = append(rows, []string{titleCase(c.Category), fmt.Sprintf("%.2f", c.Average), fmt.Sprintf("%.1f", c.Score), c.Level})
	}
	r.table([]string{"Category", "Average", "Score", "Level"}, []float64{70, 35, 35, 40}, rows)
}

func (r *renderer) matchTable(matches []scoring.Match) {
	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, []string{
			fmt.Sprintf("%d", m.Rank),
			m.Title,
			m.HollandCode,
			fmt.Sprintf("%.1f", m.InterestFit),
			fmt.Sprintf("%.1f", m.SkillsFit),
			fmt.Sprintf("%.1f", m.PersonalityFit),
			fmt.Sprintf("%.1f", m.Composite),
			string(m.Label),
		})
	}
	r.table(
		[]string{"#", "Career", "Code", "Interests", "Skills", "Personality", "Composite", "Fit"},
		[]float64{8, 52, 14, 20, 18, 22, 22, 24},
		rows,
	)
}

func (r *renderer) gapTable(gaps []scoring.SkillGap) {
	rows := make([][]string, 0, len(gaps))
	for _, g := range gaps {
		rows = append(rows, []string{
			titleCase(g.Skill),
			fmt.Sprintf("%.1f", g.Current),
			fmt.Sprintf("%.1f", g.Required),
			fmt.Sprintf("%.1f", g.Gap),
			string(g.Severity),
		})
	}
	r.table([]string{"Skill", "Current", "Required", "Gap", "Severity"}, []float64{60, 28, 28, 28, 36}, rows)
}

func (r *renderer) learningPath(path *scoring.LearningPath) {
	if len(path.Phases) == 0 {
		r.paragraph("No skill gaps to close for this career.")
		return
	}
	for _, phase := range path.Phases {
		r.pdf.SetFont("Helvetica", "B", 11)
		r.pdf.CellFormat(0, 7, phase.Name, "", 1, "L", false, 0, "")
		for _, step := range phase.Steps {
			r.pdf.SetFont("Helvetica", "", 10)
			line := fmt.Sprintf("%s (gap %.0f, %s)", titleCase(step.Skill), step.Gap, step.Severity)
			r.pdf.CellFormat(0, 6, r.tr(line), "", 1, "L", false, 0, "")
			for _, c := range step.Courses {
				text := fmt.Sprintf("    - %s [%s, %d weeks]", c.Title, c.Level, c.DurationWeeks)
				if c.Provider != "" {
					text += " by " + c.Provider
				}
				r.pdf.CellFormat(0, 5, r.tr(text), "", 1, "L", false, 0, "")
			}
		}
	}
	r.pdf.Ln(1)
	r.pdf.SetFont("Helvetica", "B", 10)
	r.pdf.CellFormat(0, 6, fmt.Sprintf("Estimated duration: %d weeks", path.TotalWeeks), "", 1, "L", false, 0, "")
	if len(path.Uncovered) > 0 {
		r.paragraph("No course in the catalog covers: " + strings.Join(path.Uncovered, ", "))
	}
}

func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
