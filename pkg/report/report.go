// Package report turns fetched market data into the HTML digest body.
package report

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/GregJanota/coin-updates/pkg/coingecko"
)

// Subject is the subject line of every digest email.
const Subject = "Crypto Currency Update"

// Row is one coin's line in the digest, in watch-list order.
type Row struct {
	ID           string
	DisplayName  string
	CurrentPrice decimal.Decimal
	Change24h    *decimal.Decimal
	Change7d     *decimal.Decimal
	Change30d    *decimal.Decimal
}

// Build maps fetched coins onto the watch list, preserving its order.
// Watched ids the API did not return are collected in missing rather than
// failing the run. Pure: no I/O.
func Build(watched []string, coins []coingecko.Coin) (rows []Row, missing []string) {
	byID := make(map[string]coingecko.Coin, len(coins))
	for _, coin := range coins {
		byID[coin.ID] = coin
	}

	rows = make([]Row, 0, len(watched))
	for _, id := range watched {
		coin, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		rows = append(rows, Row{
			ID:           coin.ID,
			DisplayName:  strings.ToUpper(coin.ID),
			CurrentPrice: coin.CurrentPrice,
			Change24h:    coin.PriceChange24h,
			Change7d:     coin.PriceChange7d,
			Change30d:    coin.PriceChange30d,
		})
	}
	return rows, missing
}

const digestHTML = `<html>
<body>
<h2>{{.Subject}}</h2>
<table border="0" cellpadding="6" cellspacing="0">
<tr><th align="left">Coin</th><th align="right">Price</th><th align="right">24h</th><th align="right">7d</th><th align="right">30d</th></tr>
{{- range .Rows}}
<tr><td><b>{{.DisplayName}}</b></td><td align="right">{{usd .CurrentPrice}}</td><td align="right">{{change .Change24h}}</td><td align="right">{{change .Change7d}}</td><td align="right">{{change .Change30d}}</td></tr>
{{- end}}
</table>
<p style="color: gray; font-size: small">Generated at {{.GeneratedAt}}</p>
</body>
</html>
`

var digestTemplate = template.Must(template.New("digest").Funcs(template.FuncMap{
	"usd":    formatUSD,
	"change": formatChange,
}).Parse(digestHTML))

type digestData struct {
	Subject     string
	Rows        []Row
	GeneratedAt string
}

// Render produces the HTML digest body. Deterministic for a given input;
// an empty row slice renders a valid document with an empty table.
func Render(rows []Row, generatedAt time.Time) (string, error) {
	var b strings.Builder
	err := digestTemplate.Execute(&b, digestData{
		Subject:     Subject,
		Rows:        rows,
		GeneratedAt: generatedAt.Format("2006-01-02 15:04:05"),
	})
	if err != nil {
		return "", fmt.Errorf("rendering digest template: %w", err)
	}
	return b.String(), nil
}

// RenderText produces a plain-text fallback body with the same content.
func RenderText(rows []Row, generatedAt time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", Subject)
	for _, row := range rows {
		fmt.Fprintf(&b, "%s: %s (24h %s, 7d %s, 30d %s)\n",
			row.DisplayName, formatUSD(row.CurrentPrice),
			plainChange(row.Change24h), plainChange(row.Change7d), plainChange(row.Change30d))
	}
	fmt.Fprintf(&b, "\nGenerated at %s\n", generatedAt.Format("2006-01-02 15:04:05"))
	return b.String()
}

func formatUSD(price decimal.Decimal) string {
	return "$" + humanize.FormatFloat("#,###.##", price.InexactFloat64())
}

// formatChange wraps a percentage change in a colored span: green for a
// non-negative change, red for a negative one, plain N/A when the API had
// no value for the window.
func formatChange(change *decimal.Decimal) template.HTML {
	if change == nil {
		return "N/A"
	}
	color := "green"
	if change.Sign() < 0 {
		color = "red"
	}
	return template.HTML(fmt.Sprintf(`<span style="color: %s">%s%%</span>`, color, change.StringFixed(1)))
}

func plainChange(change *decimal.Decimal) string {
	if change == nil {
		return "N/A"
	}
	return change.StringFixed(1) + "%"
}
