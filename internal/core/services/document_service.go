package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"anpere-portal/internal/adapters/persistence/models"
	"anpere-portal/internal/adapters/persistence/repositories"
	"anpere-portal/internal/config"
	"anpere-portal/internal/core/domain"
	"anpere-portal/internal/pkg/metrics"

	"github.com/jung-kurt/gofpdf"
	"gorm.io/gorm"
)

// Document is a generated PDF with its derived filename
type Document struct {
	Filename string
	Content  []byte
}

// DocumentService renders membership documents. Output is deterministic
// for the same records; the only free input is the generation date.
type DocumentService struct {
	memberRepo repositories.MemberRepository
	org        config.OrgConfig
	now        func() time.Time
}

// NewDocumentService creates a new document service
func NewDocumentService(memberRepo repositories.MemberRepository, org config.OrgConfig) *DocumentService {
	return &DocumentService{
		memberRepo: memberRepo,
		org:        org,
		now:        time.Now,
	}
}

// valueOrNA renders empty optional fields as a placeholder instead of
// dropping the label
func valueOrNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}

// SanitizeFilename replaces path-unsafe characters in a derived filename
func SanitizeFilename(name string) string {
	r := strings.NewReplacer("/", "-", "\\", "-", ":", "-", " ", "_")
	return r.Replace(name)
}

const (
	pageBottomMargin = 25.0
	fieldLabelWidth  = 60.0
	lineHeight       = 7.0
	listRowHeight    = 8.0
)

// MemberConfirmation renders the single-member registration confirmation
func (s *DocumentService) MemberConfirmation(ctx context.Context, id uint) (*Document, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, &domain.StorageError{Op: "get member", Err: err}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, pageBottomMargin)
	pdf.AddPage()

	s.drawOrgHeader(pdf, tr)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Ficha de Inscrição - Membro nº %s", member.MemberNumber)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, f := range confirmationFields(member) {
		s.drawField(pdf, tr, f.label, f.value)
	}

	s.drawSignatureBlock(pdf, tr)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render confirmation: %w", err)
	}

	metrics.DocumentsTotal.WithLabelValues("confirmation").Inc()
	return &Document{
		Filename: SanitizeFilename("ficha-" + member.MemberNumber + ".pdf"),
		Content:  buf.Bytes(),
	}, nil
}

// labeledField pairs a display label with a record value
type labeledField struct {
	label string
	value string
}

// confirmationFields lists every member attribute in document order.
// Optional fields stay in the list and render as "N/A" when empty.
func confirmationFields(m *models.Member) []labeledField {
	return []labeledField{
		{"Nome completo", m.FullName},
		{"Data de nascimento", m.BirthDate},
		{"Local de nascimento", m.BirthPlace},
		{"Nacionalidade", m.Nationality},
		{"Género", m.Gender},
		{"Estado civil", m.MaritalStatus},
		{"Nº do documento", m.DocumentNumber},
		{"Data de emissão", valueOrNA(m.DocumentIssueDate)},
		{"Local de emissão", valueOrNA(m.DocumentIssuePlace)},
		{"Nome do pai", m.FatherName},
		{"Nome da mãe", m.MotherName},
		{"Profissão", m.Occupation},
		{"Província de trabalho", valueOrNA(m.WorkProvince)},
		{"Telefone", m.Phone},
		{"E-mail", m.Email},
		{"Morada", m.Address},
		{"Município", m.Municipality},
		{"Outras informações", valueOrNA(m.OtherInfo)},
		{"Estado", domain.MemberStatus(m.Status).Label()},
		{"Data de inscrição", m.RegisteredAt.Format("02/01/2006")},
	}
}

// drawOrgHeader draws the organization identity block
func (s *DocumentService) drawOrgHeader(pdf *gofpdf.Fpdf, tr func(string) string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, tr(s.org.Name), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(s.org.FullName), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, tr(s.org.Address), "", 1, "C", false, 0, "")
	pdf.Ln(2)
	left, _, right, _ := pdf.GetMargins()
	w, _ := pdf.GetPageSize()
	pdf.Line(left, pdf.GetY(), w-right, pdf.GetY())
	pdf.Ln(6)
}

// drawField writes one label/value row, wrapping long values and breaking
// the page beforehand so the label is never separated from its value.
func (s *DocumentService) drawField(pdf *gofpdf.Fpdf, tr func(string) string, label, value string) {
	w, h := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	valueWidth := w - left - right - fieldLabelWidth

	lines := pdf.SplitText(tr(value), valueWidth)
	needed := float64(len(lines)) * lineHeight
	if needed < lineHeight {
		needed = lineHeight
	}
	if pdf.GetY()+needed > h-pageBottomMargin {
		pdf.AddPage()
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(fieldLabelWidth, lineHeight, tr(label+":"), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(valueWidth, lineHeight, tr(value), "", "L", false)
}

// drawSignatureBlock closes the document with the generation date
func (s *DocumentService) drawSignatureBlock(pdf *gofpdf.Fpdf, tr func(string) string) {
	_, h := pdf.GetPageSize()
	if pdf.GetY()+40 > h-pageBottomMargin {
		pdf.AddPage()
	}

	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s, %s", s.org.Address, s.now().Format("02/01/2006"))), "", 1, "R", false, 0, "")
	pdf.Ln(14)
	pdf.CellFormat(0, 6, "_________________________________", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, tr("A Direcção"), "", 1, "C", false, 0, "")
}

// listColumn describes one column of the member listing table
type listColumn struct {
	title string
	width float64
}

var listColumns = []listColumn{
	{"Nº de membro", 28},
	{"Nome", 62},
	{"E-mail", 45},
	{"Telefone", 28},
	{"Estado", 17},
}

// MemberList renders the tabular listing of every member matching the filter
func (s *DocumentService) MemberList(ctx context.Context, filter repositories.MemberFilter) (*Document, error) {
	members, err := s.memberRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, &domain.StorageError{Op: "list members", Err: err}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(false, pageBottomMargin)
	pdf.AliasNbPages("")

	// Repeated per-page header: org identity plus the column row
	pdf.SetHeaderFunc(func() {
		s.drawOrgHeader(pdf, tr)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr("Lista de Membros"), "", 1, "C", false, 0, "")
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for _, col := range listColumns {
			pdf.CellFormat(col.width, listRowHeight, tr(col.title), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	})

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Página %d de {nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	_, pageH := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "", 9)
	for _, m := range members {
		// A row never splits across pages: break first if it would not fit
		if pdf.GetY()+listRowHeight > pageH-pageBottomMargin {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "", 9)
		}

		setStatusFill(pdf, domain.MemberStatus(m.Status))
		cells := []string{m.MemberNumber, m.FullName, m.Email, m.Phone, domain.MemberStatus(m.Status).Label()}
		for i, col := range listColumns {
			pdf.CellFormat(col.width, listRowHeight, tr(cells[i]), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render member list: %w", err)
	}

	metrics.DocumentsTotal.WithLabelValues("list").Inc()
	return &Document{
		Filename: "membros-" + s.now().Format("2006-01-02") + ".pdf",
		Content:  buf.Bytes(),
	}, nil
}

// setStatusFill gives each status its visual distinction in the listing
func setStatusFill(pdf *gofpdf.Fpdf, status domain.MemberStatus) {
	switch status {
	case domain.StatusActive:
		pdf.SetFillColor(225, 245, 225)
	case domain.StatusPending:
		pdf.SetFillColor(250, 245, 220)
	default:
		pdf.SetFillColor(248, 228, 228)
	}
}
