package service

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/deringirish/PHMS/internal/domain/entity"
	"github.com/deringirish/PHMS/internal/domain/metric"

	"github.com/go-pdf/fpdf"
)

// maxSummaryRecords caps the record history in a health summary.
const maxSummaryRecords = 10

// PDFService renders the printable patient documents.
type PDFService interface {
	HealthSummary(patient *entity.Patient, records []entity.HealthRecord, generatedAt time.Time) ([]byte, error)
	Prescription(prescription *entity.Prescription, generatedAt time.Time) ([]byte, error)
	VisitSummary(visit *entity.Visit, generatedAt time.Time) ([]byte, error)
}

type pdfService struct{}

func NewPDFService() PDFService {
	return &pdfService{}
}

type document struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newDocument(title string, generatedAt time.Time) *document {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(19, 19, 19)
	pdf.SetAutoPageBreak(true, 19)
	pdf.SetTitle(title, true)
	pdf.AddPage()

	d := &document{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(37, 99, 235)
	pdf.CellFormat(0, 12, d.tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 6, "Generated on: "+generatedAt.Format("January 02, 2006 at 03:04 PM"), "", 1, "L", false, 0, "")
	pdf.Ln(6)
	return d
}

func (d *document) section(title string) {
	d.pdf.Ln(3)
	d.pdf.SetFont("Helvetica", "B", 12)
	d.pdf.SetTextColor(55, 65, 81)
	d.pdf.CellFormat(0, 8, d.tr(title), "", 1, "L", false, 0, "")
	d.pdf.SetTextColor(0, 0, 0)
}

func (d *document) paragraph(text string) {
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.MultiCell(0, 5, d.tr(text), "", "L", false)
	d.pdf.Ln(2)
}

// keyValues renders a two-column label/value table.
func (d *document) keyValues(rows [][2]string) {
	for _, row := range rows {
		d.pdf.SetFont("Helvetica", "B", 10)
		d.pdf.CellFormat(50, 7, d.tr(row[0]), "", 0, "L", false, 0, "")
		d.pdf.SetFont("Helvetica", "", 10)
		d.pdf.MultiCell(0, 7, d.tr(row[1]), "", "L", false)
	}
	d.pdf.Ln(4)
}

func (d *document) patientInfo(patient *entity.Patient) {
	d.section("Patient Information")
	age := "N/A"
	if patient.Age != nil {
		age = strconv.Itoa(*patient.Age)
	}
	rows := [][2]string{
		{"Name:", orNA(patient.FullName)},
		{"Age:", age},
		{"Gender:", orNA(patient.Gender)},
		{"Contact:", orNA(patient.ContactNumber)},
		{"Email:", orNA(patient.Email)},
	}
	if len(patient.MedicalConditions) > 0 {
		rows = append(rows, [2]string{"Medical Conditions:", strings.Join(patient.MedicalConditions, ", ")})
	}
	d.keyValues(rows)
}

func (d *document) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *pdfService) HealthSummary(patient *entity.Patient, records []entity.HealthRecord, generatedAt time.Time) ([]byte, error) {
	d := newDocument("Health Summary Report", generatedAt)
	d.patientInfo(patient)

	if len(records) == 0 {
		d.paragraph("No health records found.")
		return d.bytes()
	}

	d.section("Health Records History")
	if len(records) > maxSummaryRecords {
		records = records[:maxSummaryRecords]
	}
	for _, record := range records {
		d.pdf.SetFont("Helvetica", "B", 10)
		d.pdf.CellFormat(0, 6, "Date: "+formatDate(record.Timestamp, "Jan 02, 2006"), "", 1, "L", false, 0, "")
		if line := summaryLine(record.Metrics()); line != "" {
			d.paragraph(line)
		}
		d.pdf.Ln(2)
	}
	return d.bytes()
}

// summaryLine picks the headline metrics of a record.
func summaryLine(v metric.Values) string {
	var parts []string
	_, hasSys := v.Get(metric.BPSystolic)
	_, hasDia := v.Get(metric.BPDiastolic)
	if hasSys && hasDia {
		parts = append(parts, "BP: "+metric.BloodPressureLabel(v))
	}
	if f, ok := v.Get(metric.SugarFasting); ok {
		parts = append(parts, "Fasting Sugar: "+metric.FormatValue(f)+" mg/dL")
	}
	if f, ok := v.Get(metric.Weight); ok {
		parts = append(parts, "Weight: "+metric.FormatValue(f)+" kg")
	}
	if f, ok := v.Get(metric.HbA1c); ok {
		parts = append(parts, "HbA1c: "+metric.FormatValue(f)+"%")
	}
	return strings.Join(parts, " | ")
}

func (s *pdfService) Prescription(prescription *entity.Prescription, generatedAt time.Time) ([]byte, error) {
	d := newDocument("Medical Prescription", generatedAt)
	if prescription.Patient != nil {
		d.patientInfo(prescription.Patient)
	}

	d.pdf.SetFont("Helvetica", "B", 10)
	d.pdf.CellFormat(0, 6, "Prescription Date: "+formatDate(prescription.PrescriptionDate, "January 02, 2006"), "", 1, "L", false, 0, "")

	d.section("Prescribed Medications")
	widths := []float64{45, 30, 30, 25, 48}
	header := []string{"Medication", "Dosage", "Frequency", "Duration", "Instructions"}

	d.pdf.SetFont("Helvetica", "B", 10)
	d.pdf.SetFillColor(37, 99, 235)
	d.pdf.SetTextColor(245, 245, 245)
	for i, h := range header {
		d.pdf.CellFormat(widths[i], 9, h, "1", 0, "L", true, 0, "")
	}
	d.pdf.Ln(-1)

	d.pdf.SetFont("Helvetica", "", 9)
	d.pdf.SetTextColor(0, 0, 0)
	for _, med := range prescription.Medications {
		cells := []string{med.MedicationName, med.Dosage, med.Frequency, med.Duration, med.Instructions}
		for i, c := range cells {
			d.pdf.CellFormat(widths[i], 8, d.tr(fit(d.pdf, c, widths[i])), "1", 0, "L", false, 0, "")
		}
		d.pdf.Ln(-1)
	}
	d.pdf.Ln(6)

	if prescription.Notes != "" {
		d.section("Additional Notes")
		d.paragraph(prescription.Notes)
	}

	if prescription.Doctor != nil {
		d.pdf.Ln(12)
		d.pdf.SetFont("Helvetica", "B", 10)
		d.pdf.CellFormat(0, 6, d.tr("Dr. "+orNA(prescription.Doctor.Name)), "", 1, "L", false, 0, "")
		d.pdf.SetFont("Helvetica", "", 10)
		d.pdf.CellFormat(0, 6, "Signature: _____________________", "", 1, "L", false, 0, "")
	}
	return d.bytes()
}

func (s *pdfService) VisitSummary(visit *entity.Visit, generatedAt time.Time) ([]byte, error) {
	d := newDocument("Visit Summary", generatedAt)
	if visit.Patient != nil {
		d.patientInfo(visit.Patient)
	}

	doctor := "N/A"
	if visit.Doctor != nil {
		doctor = orNA(visit.Doctor.Name)
	}
	d.section("Visit Details")
	d.keyValues([][2]string{
		{"Visit Date:", formatDate(visit.VisitDate, "January 02, 2006")},
		{"Doctor:", doctor},
	})

	if visit.ChiefComplaint != "" {
		d.section("Chief Complaint")
		d.paragraph(visit.ChiefComplaint)
	}
	if len(visit.Diagnosis) > 0 {
		d.section("Diagnosis")
		d.paragraph(strings.Join(visit.Diagnosis, ", "))
	}
	if visit.TreatmentPlan != "" {
		d.section("Treatment Plan")
		d.paragraph(visit.TreatmentPlan)
	}
	return d.bytes()
}

func formatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format(layout)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// fit shortens text with an ellipsis so it stays inside one table cell.
func fit(pdf *fpdf.Fpdf, text string, width float64) string {
	limit := width - 2
	if pdf.GetStringWidth(text) <= limit {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
