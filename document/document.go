// Package document renders invoices as print-ready HTML pages.
package document

import (
	"bytes"
	"context"
	"html/template"

	"fusiongear-backend/billing"
	"fusiongear-backend/models"
	"fusiongear-backend/printing"
	"fusiongear-backend/receipt"
)

const invoiceHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8" />
  <title>Invoice {{.Invoice.ID}}</title>
  <style>
    * { margin: 0; padding: 0; box-sizing: border-box; }
    body { font-family: Arial, sans-serif; font-size: 13px; color: #1a1a1a; background: #fff; padding: 24px; }
    .header { display: flex; align-items: center; gap: 16px; border-bottom: 3px solid #ff8c00; padding-bottom: 16px; margin-bottom: 20px; }
    .logo { width: 64px; height: 64px; object-fit: cover; border-radius: 8px; }
    .brand-name { font-size: 28px; font-weight: 900; color: #ff8c00; letter-spacing: 2px; }
    .brand-sub { font-size: 12px; color: #555; margin-top: 2px; }
    .contact { font-size: 13px; color: #333; margin-top: 4px; }
    .invoice-meta { display: flex; justify-content: space-between; margin-bottom: 20px; }
    .label { font-size: 11px; color: #888; text-transform: uppercase; letter-spacing: 1px; }
    .value { font-size: 15px; font-weight: 700; color: #1a1a1a; }
    .section-title { font-size: 11px; font-weight: 700; text-transform: uppercase; letter-spacing: 1px; color: #888; margin-bottom: 8px; border-bottom: 1px solid #eee; padding-bottom: 4px; }
    .customer-grid { display: grid; grid-template-columns: 1fr 1fr; gap: 8px 24px; margin-bottom: 20px; }
    .field .value { font-size: 13px; font-weight: 600; }
    .services-list { margin-bottom: 20px; }
    .service-item { display: flex; align-items: center; gap: 8px; padding: 6px 0; border-bottom: 1px solid #f0f0f0; }
    .service-dot { width: 8px; height: 8px; background: #ff8c00; border-radius: 50%; flex-shrink: 0; }
    .muted { color: #888; }
    .totals { margin-left: auto; width: 280px; }
    .total-row { display: flex; justify-content: space-between; padding: 5px 0; font-size: 13px; }
    .total-row.discount { color: #ef4444; }
    .total-row.grand { border-top: 2px solid #ff8c00; margin-top: 4px; padding-top: 8px; font-size: 16px; font-weight: 900; color: #ff8c00; }
    .status-badge { display: inline-block; padding: 4px 12px; border-radius: 20px; font-size: 12px; font-weight: 700; text-transform: uppercase; letter-spacing: 1px; }
    .status-paid { background: #dcfce7; color: #166534; }
    .status-pending { background: #fef3c7; color: #92400e; }
    .footer { margin-top: 32px; text-align: center; font-size: 11px; color: #aaa; border-top: 1px solid #eee; padding-top: 12px; }
  </style>
</head>
<body>
  <div class="header">
    {{if .LogoURL}}<img src="{{.LogoURL}}" class="logo" alt="{{.Shop.Name}}" />{{end}}
    <div>
      <div class="brand-name">&#9881; {{.Shop.Name}}</div>
      <div class="brand-sub">Professional {{.Shop.Tagline}}</div>
      <div class="contact">Ph: {{.Shop.Phone}}</div>
    </div>
  </div>

  <div class="invoice-meta">
    <div class="block">
      <div class="label">Invoice Number</div>
      <div class="value">{{.Invoice.ID}}</div>
    </div>
    <div class="block" style="text-align:right">
      <div class="label">Date &amp; Time</div>
      <div class="value">{{formatDate .Invoice.CreatedAt}}</div>
    </div>
    <div class="block" style="text-align:right">
      <div class="label">Status</div>
      <div class="value"><span class="status-badge {{if .Paid}}status-paid{{else}}status-pending{{end}}">{{.Invoice.Status}}</span></div>
    </div>
  </div>
{{with .Customer}}
  <div class="section-title">Customer &amp; Vehicle Details</div>
  <div class="customer-grid">
    <div class="field"><div class="label">Customer Name</div><div class="value">{{.Name}}</div></div>
    <div class="field"><div class="label">Phone</div><div class="value">{{.Phone}}</div></div>
    <div class="field"><div class="label">Address</div><div class="value">{{orDash .Address}}</div></div>
    <div class="field"><div class="label">Bike Model</div><div class="value">{{orDash .BikeModel}}</div></div>
    <div class="field"><div class="label">Registration No.</div><div class="value">{{.BikeNumber}}</div></div>
    <div class="field"><div class="label">KM Reading</div><div class="value">{{.KMReading}} km</div></div>
    <div class="field"><div class="label">Fuel Level</div><div class="value">{{.FuelLevel}}</div></div>
  </div>
{{end}}
  <div class="section-title">Services Performed</div>
  <div class="services-list">
    {{range .Services}}<div class="service-item"><div class="service-dot"></div><span>{{.}}</span></div>
    {{else}}<div class="service-item"><span class="muted">No services recorded</span></div>
    {{end}}
  </div>

  <div class="totals">
    {{range .Totals}}<div class="total-row{{if .Class}} {{.Class}}{{end}}"><span>{{.Label}}</span><span>{{.Amount}}</span></div>
    {{end}}
  </div>

  <div class="footer">
    Thank you for choosing {{.Shop.Name}}! | Ph: {{.Shop.Phone}} | Professional Bike Service
  </div>
{{if .AutoPrint}}
  <script>window.addEventListener("load", function () { setTimeout(function () { window.print(); }, 500); });</script>
{{end}}
</body>
</html>
`

// Document is a rendered, self-contained invoice page.
type Document struct {
	Title string
	HTML  string
}

// Job wraps d as a print job.
func (d Document) Job() printing.Job {
	return printing.Job{Name: d.Title + ".html", ContentType: "text/html; charset=utf-8", Body: []byte(d.HTML)}
}

// TotalRow is one line of the totals block.
type TotalRow struct {
	Label  string
	Amount string
	Class  string
}

type pageData struct {
	Shop      receipt.Shop
	LogoURL   string
	Invoice   models.Invoice
	Customer  *models.CustomerProfile
	Services  []string
	Totals    []TotalRow
	Paid      bool
	AutoPrint bool
}

// Options tune a Renderer.
type Options struct {
	LogoURL   string
	AutoPrint bool // open the print dialog once the page loads
}

// Renderer builds invoice documents for one shop.
type Renderer struct {
	shop receipt.Shop
	opts Options
	tpl  *template.Template
}

func NewRenderer(shop receipt.Shop, opts Options) *Renderer {
	funcs := template.FuncMap{
		"formatDate": billing.FormatDate,
		"orDash":     orDash,
	}
	return &Renderer{
		shop: shop,
		opts: opts,
		tpl:  template.Must(template.New("invoice").Funcs(funcs).Parse(invoiceHTMLTemplate)),
	}
}

// WithAutoPrint returns a copy of r that asks the browser to print on load.
func (r *Renderer) WithAutoPrint() *Renderer {
	cp := *r
	cp.opts.AutoPrint = true
	return &cp
}

// Render builds the document for inv. customer may be nil.
func (r *Renderer) Render(inv models.Invoice, customer *models.CustomerProfile) (Document, error) {
	data := pageData{
		Shop:      r.shop,
		LogoURL:   r.opts.LogoURL,
		Invoice:   inv,
		Customer:  customer,
		Services:  billing.DisplayServices(inv.ServiceRecord.Services),
		Totals:    Totals(inv.ServiceRecord),
		Paid:      inv.IsPaid(),
		AutoPrint: r.opts.AutoPrint,
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, data); err != nil {
		return Document{}, err
	}
	return Document{Title: "Invoice " + inv.ID, HTML: buf.String()}, nil
}

// Print renders inv and submits it to a surface obtained from opener. It
// returns an error wrapping printing.ErrUnavailable when no surface can be
// opened.
func (r *Renderer) Print(ctx context.Context, opener printing.Opener, inv models.Invoice, customer *models.CustomerProfile) error {
	doc, err := r.Render(inv, customer)
	if err != nil {
		return err
	}
	return printing.Submit(ctx, opener, doc.Job())
}

// Totals lists the totals block rows, applying the same rules as the
// thermal receipt: subtotal and total always, the rest only when they apply.
func Totals(sr models.ServiceRecord) []TotalRow {
	rows := []TotalRow{{Label: "Service Subtotal", Amount: billing.FormatCurrency(sr.Subtotal)}}
	if sr.SparePartsCost > 0 {
		rows = append(rows, TotalRow{Label: "Spare Parts", Amount: billing.FormatCurrency(sr.SparePartsCost)})
	}
	if sr.LabourCharges > 0 {
		rows = append(rows, TotalRow{Label: "Labour Charges", Amount: billing.FormatCurrency(sr.LabourCharges)})
	}
	if sr.Discount > 0 {
		rows = append(rows, TotalRow{Label: "Discount", Amount: "-" + billing.FormatCurrency(sr.Discount), Class: "discount"})
	}
	if sr.GSTFlag {
		rows = append(rows, TotalRow{Label: "GST (18%)", Amount: billing.FormatCurrency(sr.GSTAmount)})
	}
	return append(rows, TotalRow{Label: "TOTAL", Amount: billing.FormatCurrency(sr.Total), Class: "grand"})
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

var defaultRenderer = NewRenderer(receipt.DefaultShop, Options{})

// Render builds the document for inv with the default shop identity.
func Render(inv models.Invoice, customer *models.CustomerProfile) (Document, error) {
	return defaultRenderer.Render(inv, customer)
}
