package report

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregJanota/coin-updates/pkg/coingecko"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

var testTime = time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)

func TestBuild_PreservesWatchListOrder(t *testing.T) {
	coins := []coingecko.Coin{
		{ID: "ethereum", CurrentPrice: decimal.RequireFromString("3100.50")},
		{ID: "bitcoin", CurrentPrice: decimal.RequireFromString("104532.18")},
	}

	rows, missing := Build([]string{"bitcoin", "ethereum"}, coins)
	require.Empty(t, missing)
	require.Len(t, rows, 2)
	assert.Equal(t, "bitcoin", rows[0].ID)
	assert.Equal(t, "BITCOIN", rows[0].DisplayName)
	assert.Equal(t, "ethereum", rows[1].ID)
}

func TestBuild_ReportsMissingIDs(t *testing.T) {
	coins := []coingecko.Coin{
		{ID: "bitcoin", CurrentPrice: decimal.RequireFromString("104532.18")},
	}

	rows, missing := Build([]string{"bitcoin", "no-such-coin"}, coins)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"no-such-coin"}, missing)
}

func TestBuild_Empty(t *testing.T) {
	rows, missing := Build(nil, nil)
	assert.Empty(t, rows)
	assert.Empty(t, missing)
}

func TestRender_NegativeChangeIsRed(t *testing.T) {
	rows := []Row{{
		ID:           "bitcoin",
		DisplayName:  "BITCOIN",
		CurrentPrice: decimal.RequireFromString("104532.18"),
		Change24h:    dec("-5.2"),
		Change7d:     dec("3.4"),
		Change30d:    dec("12.7"),
	}}

	html, err := Render(rows, testTime)
	require.NoError(t, err)
	assert.Contains(t, html, `<span style="color: red">-5.2%</span>`)
	assert.Contains(t, html, `<span style="color: green">3.4%</span>`)
	assert.Contains(t, html, "$104,532.18")
	assert.Contains(t, html, "BITCOIN")
}

func TestRender_ZeroChangeIsGreen(t *testing.T) {
	rows := []Row{{
		ID:           "stablecoin",
		DisplayName:  "STABLECOIN",
		CurrentPrice: decimal.RequireFromString("1.00"),
		Change24h:    dec("0"),
	}}

	html, err := Render(rows, testTime)
	require.NoError(t, err)
	assert.Contains(t, html, `<span style="color: green">0.0%</span>`)
}

func TestRender_NilChangeIsNA(t *testing.T) {
	rows := []Row{{
		ID:           "newcoin",
		DisplayName:  "NEWCOIN",
		CurrentPrice: decimal.RequireFromString("0.42"),
		Change24h:    dec("1.1"),
	}}

	html, err := Render(rows, testTime)
	require.NoError(t, err)
	assert.Contains(t, html, "N/A")
}

func TestRender_EmptyInput(t *testing.T) {
	html, err := Render(nil, testTime)
	require.NoError(t, err)
	assert.Contains(t, html, "<html>")
	assert.Contains(t, html, "</html>")
	assert.NotContains(t, html, "<td>")
}

func TestRender_Deterministic(t *testing.T) {
	rows := []Row{{
		ID:           "bitcoin",
		DisplayName:  "BITCOIN",
		CurrentPrice: decimal.RequireFromString("104532.18"),
		Change24h:    dec("1.5"),
	}}

	first, err := Render(rows, testTime)
	require.NoError(t, err)
	second, err := Render(rows, testTime)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRender_Timestamp(t *testing.T) {
	html, err := Render(nil, testTime)
	require.NoError(t, err)
	assert.Contains(t, html, "Generated at 2026-08-30 09:00:00")
}

func TestRenderText(t *testing.T) {
	rows := []Row{{
		ID:           "bitcoin",
		DisplayName:  "BITCOIN",
		CurrentPrice: decimal.RequireFromString("104532.18"),
		Change24h:    dec("-5.2"),
	}}

	text := RenderText(rows, testTime)
	assert.Contains(t, text, "BITCOIN: $104,532.18")
	assert.Contains(t, text, "-5.2%")
	assert.Contains(t, text, "N/A")
	assert.False(t, strings.Contains(text, "<"), "plain text body must not contain markup")
}

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"104532.18", "$104,532.18"},
		{"0.42", "$0.42"},
		{"1.5", "$1.50"},
		{"1000000", "$1,000,000.00"},
	}

	for _, tt := range tests {
		got := formatUSD(decimal.RequireFromString(tt.in))
		if got != tt.want {
			t.Errorf("formatUSD(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
