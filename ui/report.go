package ui

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"tablero/domain/commerce"
)

// BuildOverviewMarkdown renders the KPI overview as a markdown report.
func BuildOverviewMarkdown(ov *commerce.Overview) string {
	var b strings.Builder
	b.WriteString("# Resumen comercial\n\n")
	if !ov.HasOrders {
		b.WriteString("Sin pedidos en la ventana analizada.\n")
		return b.String()
	}

	t := ov.Totals
	fmt.Fprintf(&b, "Moneda: %s\n\n", ov.CurrencyCode)
	b.WriteString("## Totales\n\n")
	b.WriteString("| Indicador | Mes actual | Mes anterior | Variación |\n")
	b.WriteString("|---|---|---|---|\n")
	fmt.Fprintf(&b, "| Ingresos | %.2f | %.2f | %.1f%% |\n", t.RevenueCurrent, t.RevenuePrevious, t.RevenueChangePct)
	fmt.Fprintf(&b, "| Pedidos | %d | %d | %.1f%% |\n", t.OrdersCurrent, t.OrdersPrevious, t.OrdersChangePct)
	fmt.Fprintf(&b, "| Ticket promedio | %.2f | %.2f | %.1f%% |\n", t.AvgTicketCurrent, t.AvgTicketPrevious, t.AvgTicketChangePct)
	fmt.Fprintf(&b, "\nClientes activos: %d, recurrentes: %d\n", t.ActiveCustomers, t.ReturningCustomers)

	if len(ov.MonthlySeries) > 0 {
		b.WriteString("\n## Serie mensual\n\n")
		b.WriteString("| Mes | Ingresos | Pedidos | Clientes nuevos |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, p := range ov.MonthlySeries {
			fmt.Fprintf(&b, "| %s | %.2f | %d | %d |\n", p.Label, p.Revenue, p.OrderCount, p.NewCustomers)
		}
	}

	if len(ov.Segments) > 0 {
		b.WriteString("\n## Segmentos\n\n")
		for _, seg := range ov.Segments {
			fmt.Fprintf(&b, "- **%s**: %.2f (%.1f%% del total, %d clientes)\n",
				seg.Segment, seg.Revenue, seg.RevenueShare*100, seg.CustomerCount)
		}
	}

	if len(ov.TopProducts) > 0 {
		b.WriteString("\n## Productos destacados\n\n")
		for i, p := range ov.TopProducts {
			name := p.ProductName
			if name == "" {
				name = p.Key
			}
			growth := "sin datos previos"
			if p.GrowthPct != nil {
				growth = fmt.Sprintf("%.1f%%", *p.GrowthPct)
			}
			fmt.Fprintf(&b, "%d. %s — %.2f (%s)\n", i+1, name, p.Revenue, growth)
		}
	}
	return b.String()
}

// RenderOverviewHTML renders the markdown report to HTML for the dashboard.
func RenderOverviewHTML(ov *commerce.Overview) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(BuildOverviewMarkdown(ov)))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}
