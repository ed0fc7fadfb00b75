package invoice

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// BankDetails printed in the transfer box on the last page.
type BankDetails struct {
	AccountName string
	BankName    string
	IBAN        string
}

var DefaultBankDetails = BankDetails{
	AccountName: "JOT AUTO PARTS W.L.L",
	BankName:    "Bahrain Islamic Bank (BisB)",
	IBAN:        "BH49BISB00010002015324",
}

const (
	contactPhone = "+973 36341106"
	contactEmail = "harjinders717@gmail.com"

	disclaimerText = "*Items sold will not be taken back or returned."

	// Text budgets: address wraps, item code/name truncate.
	addressWrapLen  = 35
	itemTruncateLen = 20
)

var tableHeaders = []string{"SR.NO", "ITEM CODE", "ITEM NAME", "QTY", "PRICE", "DISCOUNT", "AMT", "%", "VAT", "NET AMT"}

// Base column proportions, scaled to the page content width.
var baseColWidths = []float64{28, 55, 135, 30, 55, 55, 45, 25, 50, 75}

// Renderer lays out and draws invoices. It is stateless across calls and
// safe to share between concurrent requests.
type Renderer struct {
	assets Assets
	bank   BankDetails
	layout Layout
}

func NewRenderer(assets Assets) *Renderer {
	return &Renderer{
		assets: assets,
		bank:   DefaultBankDetails,
		layout: A4Layout,
	}
}

// Render produces the invoice PDF for a snapshot. Deterministic for
// identical inputs: the document creation date is pinned to the invoice
// date, not the wall clock.
func (r *Renderer) Render(snap *Snapshot, meta EditMeta) ([]byte, error) {
	amounts, totals := ComputeAmounts(snap)
	pages := r.layout.Paginate(len(snap.Items))

	displayTotal := totals.Net
	if !snap.TotalAmount.IsZero() {
		displayTotal = snap.TotalAmount
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(snap.Date)
	pdf.SetModificationDate(snap.Date)
	pdf.SetCatalogSort(true)
	pdf.SetTitle("Invoice "+meta.InvoiceNumber, false)

	widths := colWidths()

	for i, page := range pages {
		pdf.AddPage()
		r.stampPageNumber(pdf, i+1, len(pages))

		y := marginTop
		if page.First {
			r.drawHeader(pdf, snap, meta)
			r.drawCustomerBlock(pdf, snap)
			y += headerBlockH + customerBlockH
		} else {
			y += pageStampH
		}

		r.drawTableHeader(pdf, y, widths)
		y += tableHeaderH

		for idx := page.Start; idx < page.End; idx++ {
			r.drawItemRow(pdf, y, widths, idx, snap.Items[idx], amounts[idx], snap.VATPercent)
			y += itemRowH
		}

		if page.Last {
			y = r.drawTotals(pdf, y, widths, totals, displayTotal)
			y = r.drawAmountInWords(pdf, y, displayTotal)
			y = r.drawBankBlock(pdf, y)
			r.drawSignatureBlock(pdf, y, meta, snap.Date)
			r.drawFooter(pdf)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice: %w", err)
	}
	return buf.Bytes(), nil
}

func colWidths() []float64 {
	total := 0.0
	for _, w := range baseColWidths {
		total += w
	}
	widths := make([]float64, len(baseColWidths))
	for i, w := range baseColWidths {
		widths[i] = w * contentWidth / total
	}
	return widths
}

// drawImage is best-effort: undecodable or missing assets are skipped so the
// financial content always renders.
func (r *Renderer) drawImage(pdf *gofpdf.Fpdf, path string, x, y, w, h float64) {
	if !usableImage(path) {
		return
	}
	pdf.ImageOptions(path, x, y, w, h, false, gofpdf.ImageOptions{ReadDpi: true}, 0, "")
}

func (r *Renderer) stampPageNumber(pdf *gofpdf.Fpdf, page, total int) {
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(pageWidth-marginRight-30, marginTop-6)
	pdf.CellFormat(30, 4, fmt.Sprintf("Page %d of %d", page, total), "", 0, "R", false, 0, "")
}

// drawHeader renders the page-1 branding images, the invoice meta box and
// the centered INVOICE badge.
func (r *Renderer) drawHeader(pdf *gofpdf.Fpdf, snap *Snapshot, meta EditMeta) {
	top := marginTop

	// Branding images on the left.
	logoSize := 24.0
	r.drawImage(pdf, r.assets.Logo, marginLeft, top, logoSize, logoSize)
	r.drawImage(pdf, r.assets.ShopName, marginLeft+logoSize+2, top, 70, 13)
	r.drawImage(pdf, r.assets.ShopAddress, marginLeft+logoSize+2, top+15, 62, 7)

	// Meta box on the right: four label/value rows.
	paymentTerms := meta.PaymentTerms
	if paymentTerms == "" {
		paymentTerms = "CREDIT"
	}
	metaRows := [][2]string{
		{"Invoice Date:", fmtDate(snap.Date)},
		{"Invoice No:", meta.InvoiceNumber},
		{"Payment Terms:", paymentTerms},
		{"Due Date:", fmtDate(meta.DueDate)},
	}

	boxW := 66.0
	labelW := 32.0
	rowH := 6.0
	boxX := marginLeft + contentWidth - boxW

	for i, row := range metaRows {
		rowY := top + float64(i)*rowH

		pdf.SetFillColor(94, 94, 94)
		pdf.Rect(boxX, rowY, labelW, rowH, "FD")
		pdf.SetFillColor(255, 255, 255)
		pdf.Rect(boxX+labelW, rowY, boxW-labelW, rowH, "FD")

		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetXY(boxX+1, rowY)
		pdf.CellFormat(labelW-2, rowH, row[0], "", 0, "L", false, 0, "")

		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetXY(boxX+labelW+1, rowY)
		pdf.CellFormat(boxW-labelW-2, rowH, row[1], "", 0, "L", false, 0, "")
	}

	// Centered INVOICE badge with an underline.
	badgeW := 46.0
	badgeH := 8.0
	badgeX := (pageWidth - badgeW) / 2
	badgeY := top + 4*rowH - badgeH

	pdf.SetFillColor(94, 94, 94)
	pdf.Rect(badgeX, badgeY, badgeW, badgeH, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(badgeX, badgeY)
	pdf.CellFormat(badgeW, badgeH, "INVOICE", "", 0, "C", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(badgeX, badgeY+badgeH+1, badgeX+badgeW, badgeY+badgeH+1)
	pdf.SetLineWidth(0.2)
}

// drawCustomerBlock renders the rounded customer identity box. Missing
// fields render as blanks, never as errors.
func (r *Renderer) drawCustomerBlock(pdf *gofpdf.Fpdf, snap *Snapshot) {
	top := marginTop + headerBlockH - 26
	boxW := 98.0
	boxH := 22.0

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetFillColor(255, 255, 255)
	pdf.RoundedRect(marginLeft, top, boxW, boxH, 2, "1234", "D")

	labelX := marginLeft + 3
	valueX := marginLeft + 33

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 7)
	pdf.Text(labelX, top+6, "CUSTOMER NAME #")
	pdf.Text(labelX, top+12, "ADDRESS #")
	pdf.Text(labelX, top+18, "MOBILE NO #")

	pdf.SetFont("Helvetica", "", 7)
	pdf.Text(valueX, top+6, snap.CustomerName)

	// Word-wrap the address at a fixed characters-per-line threshold.
	address := snap.CustomerAddress
	if len(address) > addressWrapLen {
		pdf.Text(valueX, top+12, address[:addressWrapLen])
		rest := address[addressWrapLen:]
		if len(rest) > addressWrapLen {
			rest = rest[:addressWrapLen]
		}
		pdf.Text(valueX, top+15, rest)
	} else {
		pdf.Text(valueX, top+12, address)
	}

	pdf.Text(valueX, top+18, snap.CustomerPhone)
}

func (r *Renderer) drawTableHeader(pdf *gofpdf.Fpdf, y float64, widths []float64) {
	pdf.SetFillColor(0, 0, 0)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 6)

	x := marginLeft
	for i, header := range tableHeaders {
		pdf.SetXY(x, y)
		pdf.CellFormat(widths[i], tableHeaderH, header, "1", 0, "C", true, 0, "")
		x += widths[i]
	}
	pdf.SetTextColor(0, 0, 0)
}

// drawItemRow renders one line: serial centered, code and name left-aligned
// and truncated, numeric columns right-aligned. Item rows carry vertical
// separators only.
func (r *Renderer) drawItemRow(pdf *gofpdf.Fpdf, y float64, widths []float64, idx int, item Item, amt ItemAmounts, vatPercent decimal.Decimal) {
	discount := ""
	if !item.Discount.IsZero() {
		discount = item.Discount.StringFixed(3)
	}

	cells := []struct {
		text  string
		align string
	}{
		{fmt.Sprintf("%d", idx+1), "C"},
		{truncate(item.SKU, itemTruncateLen), "L"},
		{truncate(item.Name, itemTruncateLen), "L"},
		{fmt.Sprintf("%d", item.Quantity), "R"},
		{item.Price.StringFixed(3), "R"},
		{discount, "R"},
		{amt.AfterDiscount.StringFixed(3), "R"},
		{vatPercent.StringFixed(1), "R"},
		{amt.VAT.StringFixed(3), "R"},
		{amt.Net.StringFixed(3), "R"},
	}

	pdf.SetFont("Helvetica", "", 6)
	x := marginLeft
	for i, cell := range cells {
		pdf.SetXY(x, y)
		pdf.CellFormat(widths[i], itemRowH, cell.text, "LR", 0, cell.align, false, 0, "")
		x += widths[i]
	}
}

// drawTotals renders the reserved totals block: the right-hand label/value
// box over the last two columns, with the disclaimer alongside. The NET row
// is visually emphasized.
func (r *Renderer) drawTotals(pdf *gofpdf.Fpdf, y float64, widths []float64, totals Totals, displayTotal decimal.Decimal) float64 {
	boxW := widths[len(widths)-1] + widths[len(widths)-2]
	boxX := marginLeft + contentWidth - boxW
	labelW := boxW * 0.55

	rows := [][2]string{
		{"GROSS AMT", totals.Gross.StringFixed(3)},
		{"DISCOUNT", dashIfZero(totals.Discount)},
		{"AMT AFTER DISC", totals.AfterDiscount.StringFixed(3)},
		{"VAT AMT", dashIfZero(totals.VAT)},
	}

	pdf.SetFont("Helvetica", "B", 7)
	pdf.SetDrawColor(0, 0, 0)
	for i, row := range rows {
		rowY := y + float64(i)*itemRowH
		pdf.SetXY(boxX, rowY)
		pdf.CellFormat(labelW, itemRowH, row[0], "1", 0, "L", false, 0, "")
		pdf.SetXY(boxX+labelW, rowY)
		pdf.CellFormat(boxW-labelW, itemRowH, row[1], "1", 0, "R", false, 0, "")
	}

	// Disclaimer sits left of the totals box.
	pdf.SetFont("Helvetica", "I", 7)
	pdf.Text(marginLeft+2, y+2*itemRowH-2, disclaimerText)

	// Emphasized NET row.
	netY := y + float64(len(rows))*itemRowH
	pdf.SetFillColor(94, 94, 94)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 7)
	pdf.SetXY(boxX, netY)
	pdf.CellFormat(labelW, itemRowH, "NET AMT BHD:", "1", 0, "L", true, 0, "")
	pdf.SetXY(boxX+labelW, netY)
	pdf.CellFormat(boxW-labelW, itemRowH, displayTotal.StringFixed(3), "1", 0, "R", true, 0, "")
	pdf.SetTextColor(0, 0, 0)

	return y + totalsBlockH
}

func (r *Renderer) drawAmountInWords(pdf *gofpdf.Fpdf, y float64, displayTotal decimal.Decimal) float64 {
	labelW := 20.0

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 5)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(labelW, wordsRowH, "IN WORDS", "1", 0, "L", true, 0, "")

	pdf.SetFillColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 6)
	pdf.SetXY(marginLeft+labelW, y)
	pdf.CellFormat(contentWidth-labelW, wordsRowH, AmountInWords(displayTotal), "1", 0, "L", true, 0, "")

	return y + wordsRowH
}

func (r *Renderer) drawBankBlock(pdf *gofpdf.Fpdf, y float64) float64 {
	top := y + 3
	boxW := 70.0
	boxH := 18.0

	pdf.SetDrawColor(0, 0, 0)
	pdf.RoundedRect(marginLeft, top, boxW, boxH, 1.5, "1234", "D")

	pdf.SetFont("Helvetica", "B", 6)
	pdf.Text(marginLeft+2, top+4, "BANK TRANSFER DETAILS")
	pdf.Text(marginLeft+2, top+8, r.bank.AccountName)
	pdf.SetFont("Helvetica", "", 6)
	pdf.Text(marginLeft+2, top+12, "Bank: "+r.bank.BankName)
	pdf.Text(marginLeft+2, top+16, "IBAN: "+r.bank.IBAN)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.Text(marginLeft, top+boxH+4, "Thank You for Your Business!")

	return y + bankBlockH
}

func (r *Renderer) drawSignatureBlock(pdf *gofpdf.Fpdf, y float64, meta EditMeta, date time.Time) {
	lineY := y + signatureBlockH - 6

	pdf.SetFont("Helvetica", "", 7)
	pdf.Text(pageWidth/2+14, lineY-5, fmtDate(date))

	pdf.Text(marginLeft, lineY, "Authorized Signatory/STAMP")

	pdf.SetFont("Helvetica", "B", 7)
	pdf.Text(pageWidth/2-22, lineY, "Sales Person: "+meta.SalesPerson)
	pdf.Text(pageWidth/2+14, lineY, "Date")
	pdf.Text(pageWidth/2+28, lineY, "Time")

	receiver := "Receiver Signature"
	pdf.Text(pageWidth-marginRight-pdf.GetStringWidth(receiver), lineY, receiver)
}

// drawFooter pins the branded band to the bottom of the last page.
func (r *Renderer) drawFooter(pdf *gofpdf.Fpdf) {
	orangeH := 2.0
	barH := 8.0
	boardH := 16.0

	orangeY := pageHeight - orangeH
	barY := orangeY - barH
	boardY := barY - boardH

	r.drawImage(pdf, r.assets.FooterBoard, marginLeft, boardY, contentWidth, boardH)

	// Dark contact bar with icons.
	pdf.SetFillColor(31, 31, 31)
	pdf.Rect(marginLeft, barY, contentWidth, barH, "F")

	iconSize := 6.0
	iconY := barY + (barH-iconSize)/2
	r.drawImage(pdf, r.assets.PhoneIcon, marginLeft+3, iconY, iconSize, iconSize)
	r.drawImage(pdf, r.assets.WhatsappIcon, marginLeft+11, iconY, iconSize, iconSize)
	r.drawImage(pdf, r.assets.MailIcon, marginLeft+contentWidth-62, iconY, iconSize, iconSize)

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.Text(marginLeft+20, barY+5.5, contactPhone)
	pdf.Text(marginLeft+contentWidth-54, barY+5.5, contactEmail)
	pdf.SetTextColor(0, 0, 0)

	// Orange accent line at the very bottom.
	pdf.SetFillColor(217, 107, 0)
	pdf.Rect(marginLeft, orangeY, contentWidth, orangeH, "F")
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02-01-2006")
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func dashIfZero(d decimal.Decimal) string {
	if d.IsZero() {
		return "-"
	}
	return d.StringFixed(3)
}
