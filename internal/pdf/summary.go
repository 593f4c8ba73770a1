package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/Catacombb/f9-sub000/internal/models"
)

const (
	pageMargin    = 18.0
	contentWidth  = 210 - 2*pageMargin // A4 portrait
	lineHeight    = 5.5
	sectionGap    = 4.0
	footerReserve = 22.0
)

// Summary renders a completed brief into a paginated PDF. The clock is
// injected so repeated exports of the same data carry the same embedded
// dates and produce the same pagination and section order.
type Summary struct {
	project     *models.Project
	brief       *models.Brief
	generatedAt time.Time
	pages       int
}

func NewSummary(project *models.Project, brief *models.Brief, generatedAt time.Time) *Summary {
	return &Summary{project: project, brief: brief, generatedAt: generatedAt}
}

// PageCount reports the number of pages produced by the last Render.
func (s *Summary) PageCount() int {
	return s.pages
}

func (s *Summary) Render() ([]byte, error) {
	f := fpdf.New("P", "mm", "A4", "")
	f.SetCreationDate(s.generatedAt)
	f.SetModificationDate(s.generatedAt)
	f.SetTitle("Design Brief Summary", false)
	f.SetMargins(pageMargin, pageMargin+8, pageMargin)
	f.SetAutoPageBreak(true, footerReserve)
	f.AliasNbPages("")

	f.SetHeaderFunc(func() {
		f.SetY(8)
		f.SetFont("Helvetica", "B", 9)
		f.SetTextColor(90, 90, 90)
		f.CellFormat(contentWidth/2, 6, "Design Brief Summary", "", 0, "L", false, 0, "")
		f.SetFont("Helvetica", "", 9)
		f.CellFormat(contentWidth/2, 6, s.project.ClientName, "", 0, "R", false, 0, "")
		f.Ln(7)
		f.SetDrawColor(180, 180, 180)
		f.Line(pageMargin, f.GetY(), 210-pageMargin, f.GetY())
		f.Ln(4)
	})
	f.SetFooterFunc(func() {
		f.SetY(-15)
		f.SetFont("Helvetica", "", 8)
		f.SetTextColor(120, 120, 120)
		f.CellFormat(contentWidth/2, 5,
			fmt.Sprintf("Generated %s", s.generatedAt.Format("2 January 2006")),
			"", 0, "L", false, 0, "")
		f.CellFormat(contentWidth/2, 5,
			fmt.Sprintf("Page %d of {nb}", f.PageNo()),
			"", 0, "R", false, 0, "")
	})

	f.AddPage()

	s.renderProjectInfo(f)
	s.renderBudget(f)
	s.renderLifestyle(f)
	s.renderSite(f)
	s.renderSpaces(f)
	s.renderArchitecture(f)
	s.renderContractors(f)
	s.renderCommunication(f)
	s.renderInspiration(f)
	s.renderSummaryText(f)

	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	s.pages = f.PageCount()
	return buf.Bytes(), nil
}

// sectionTitle writes a heading, breaking to a fresh page when fewer than a
// couple of lines would fit below it.
func (s *Summary) sectionTitle(f *fpdf.Fpdf, title string) {
	_, pageHeight := f.GetPageSize()
	if f.GetY() > pageHeight-footerReserve-4*lineHeight {
		f.AddPage()
	}
	f.Ln(sectionGap)
	f.SetFont("Helvetica", "B", 12)
	f.SetTextColor(30, 30, 30)
	f.CellFormat(contentWidth, 7, title, "", 1, "L", false, 0, "")
	f.SetDrawColor(30, 30, 30)
	f.Line(pageMargin, f.GetY(), pageMargin+24, f.GetY())
	f.Ln(2.5)
}

func (s *Summary) keyValue(f *fpdf.Fpdf, label, value string) {
	if value == "" {
		return
	}
	f.SetFont("Helvetica", "B", 10)
	f.SetTextColor(60, 60, 60)
	f.CellFormat(48, lineHeight, label, "", 0, "L", false, 0, "")
	f.SetFont("Helvetica", "", 10)
	f.SetTextColor(20, 20, 20)
	f.MultiCell(contentWidth-48, lineHeight, value, "", "L", false)
}

func (s *Summary) paragraph(f *fpdf.Fpdf, text string) {
	if text == "" {
		return
	}
	f.SetFont("Helvetica", "", 10)
	f.SetTextColor(20, 20, 20)
	f.MultiCell(contentWidth, lineHeight, text, "", "L", false)
	f.Ln(1)
}

func (s *Summary) renderProjectInfo(f *fpdf.Fpdf) {
	info := s.brief.ProjectInfo
	s.sectionTitle(f, "Project Information")
	s.keyValue(f, "Client", info.ClientName)
	s.keyValue(f, "Address", info.ProjectAddress)
	s.keyValue(f, "Email", info.ContactEmail)
	s.keyValue(f, "Phone", info.ContactPhone)
	s.keyValue(f, "Project type", humanize(info.ProjectType))
	s.keyValue(f, "Move-in preference", humanize(info.MoveInPreference))
	s.paragraph(f, info.ProjectDescription)
}

func (s *Summary) renderBudget(f *fpdf.Fpdf) {
	b := s.brief.Budget
	s.sectionTitle(f, "Budget")
	s.keyValue(f, "Budget range", b.BudgetRange)
	s.keyValue(f, "Flexibility", humanize(b.BudgetFlexibility))
	s.paragraph(f, b.FinanceNotes)
}

func (s *Summary) renderLifestyle(f *fpdf.Fpdf) {
	l := s.brief.Lifestyle
	s.sectionTitle(f, "Lifestyle")
	for _, o := range l.Occupants {
		line := humanize(o.Type)
		if o.Name != "" {
			line = fmt.Sprintf("%s - %s", o.Name, humanize(o.Type))
		}
		if o.Notes != "" {
			line += " (" + o.Notes + ")"
		}
		s.bullet(f, line)
	}
	s.keyValue(f, "Daily routine", l.DailyRoutine)
	s.keyValue(f, "Entertaining", l.EntertainingStyle)
	s.keyValue(f, "Special requirements", l.SpecialRequirements)
}

func (s *Summary) renderSite(f *fpdf.Fpdf) {
	site := s.brief.Site
	s.sectionTitle(f, "Site")
	s.keyValue(f, "Constraints", strings.Join(site.SiteConstraints, ", "))
	s.keyValue(f, "Features", strings.Join(site.SiteFeatures, ", "))
	s.keyValue(f, "Orientation", site.Orientation)
	s.keyValue(f, "Access", site.AccessNotes)
}

func (s *Summary) renderSpaces(f *fpdf.Fpdf) {
	spaces := s.brief.Spaces
	s.sectionTitle(f, "Spaces")
	for _, r := range spaces.Rooms {
		name := r.Type
		if r.CustomName != "" {
			name = r.CustomName
		}
		line := fmt.Sprintf("%s x%d", name, r.Quantity)
		if r.Details.Level != "" {
			line += ", " + humanize(r.Details.Level)
		}
		if r.Details.Notes != "" {
			line += " - " + r.Details.Notes
		}
		s.bullet(f, line)
	}
	s.paragraph(f, spaces.AdditionalNotes)
}

func (s *Summary) renderArchitecture(f *fpdf.Fpdf) {
	a := s.brief.Architecture
	s.sectionTitle(f, "Architecture")
	s.keyValue(f, "Styles", strings.Join(a.Styles, ", "))
	s.keyValue(f, "External materials", strings.Join(a.ExternalMaterials, ", "))
	s.keyValue(f, "Internal finishes", strings.Join(a.InternalFinishes, ", "))
	s.keyValue(f, "Sustainability", a.SustainabilityGoals)
}

func (s *Summary) renderContractors(f *fpdf.Fpdf) {
	c := s.brief.Contractors
	s.sectionTitle(f, "Project Team")
	for _, p := range c.Professionals {
		line := fmt.Sprintf("%s - %s", humanize(p.Type), p.Name)
		if p.Contact != "" {
			line += " (" + p.Contact + ")"
		}
		s.bullet(f, line)
	}
	s.keyValue(f, "Preferred delivery", humanize(c.PreferredDelivery))
	s.paragraph(f, c.TenderingNotes)
}

func (s *Summary) renderCommunication(f *fpdf.Fpdf) {
	c := s.brief.Communication
	s.sectionTitle(f, "Communication")
	s.keyValue(f, "Preferred method", humanize(c.PreferredMethod))
	s.keyValue(f, "Best times", strings.Join(c.BestTimes, ", "))
	s.paragraph(f, c.AdditionalNotes)
}

func (s *Summary) renderInspiration(f *fpdf.Fpdf) {
	s.sectionTitle(f, "Inspiration")
	for _, e := range s.brief.Inspiration {
		line := e.Link
		if e.Description != "" {
			line += " - " + e.Description
		}
		s.bullet(f, line)
	}
}

func (s *Summary) renderSummaryText(f *fpdf.Fpdf) {
	s.sectionTitle(f, "Summary")
	text := s.brief.Summary.EditedText
	if text == "" {
		text = s.brief.Summary.GeneratedText
	}
	s.paragraph(f, text)
}

func (s *Summary) bullet(f *fpdf.Fpdf, text string) {
	if text == "" {
		return
	}
	f.SetFont("Helvetica", "", 10)
	f.SetTextColor(20, 20, 20)
	f.CellFormat(5, lineHeight, "-", "", 0, "L", false, 0, "")
	f.MultiCell(contentWidth-5, lineHeight, text, "", "L", false)
}

// humanize turns stored snake_case values like "new_build" into display text.
func humanize(v string) string {
	if v == "" {
		return ""
	}
	words := strings.Split(strings.ReplaceAll(v, "_", " "), " ")
	if len(words) > 0 && len(words[0]) > 0 {
		words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	}
	return strings.Join(words, " ")
}
