// Package display renders advisor results for the terminal.
package display

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/pokeradvisor/advisor"
	"github.com/lox/pokeradvisor/equity"
	"github.com/lox/pokeradvisor/game"
	"github.com/lox/pokeradvisor/poker"
	"github.com/lox/pokeradvisor/potodds"
	"github.com/lox/pokeradvisor/ranges"
)

type styles struct {
	header  lipgloss.Style
	label   lipgloss.Style
	red     lipgloss.Style
	black   lipgloss.Style
	good    lipgloss.Style
	warn    lipgloss.Style
	bad     lipgloss.Style
	dim     lipgloss.Style
	inRange lipgloss.Style
	action  lipgloss.Style
	reason  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		label:   r.NewStyle().Foreground(lipgloss.Color("12")),
		red:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
		black:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")),
		good:    r.NewStyle().Foreground(lipgloss.Color("10")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("11")),
		bad:     r.NewStyle().Foreground(lipgloss.Color("9")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("#626262")),
		inRange: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#96CEB4")),
		action:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD700")),
		reason:  r.NewStyle().Foreground(lipgloss.Color("#FAFAFA")),
	}
}

// Printer writes styled reports to w.
type Printer struct {
	w      io.Writer
	styles styles
}

// Option configures a Printer.
type Option func(*lipgloss.Renderer)

// WithColor forces colors on or off instead of detecting the terminal.
func WithColor(enabled bool) Option {
	return func(r *lipgloss.Renderer) {
		if enabled {
			r.SetColorProfile(termenv.TrueColor)
		} else {
			r.SetColorProfile(termenv.Ascii)
		}
	}
}

// New returns a printer for w.
func New(w io.Writer, opts ...Option) *Printer {
	r := lipgloss.NewRenderer(w)
	for _, opt := range opts {
		opt(r)
	}
	return &Printer{w: w, styles: newStyles(r)}
}

func (p *Printer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format, args...)
}

// Cards renders cards with suit symbols, hearts and diamonds in red.
func (p *Printer) Cards(cards []poker.Card) string {
	if len(cards) == 0 {
		return p.styles.dim.Render("-")
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		style := p.styles.black
		if c.Suit() == 1 || c.Suit() == 2 {
			style = p.styles.red
		}
		parts[i] = style.Render(c.Pretty())
	}
	return strings.Join(parts, " ")
}

func (p *Printer) percent(v float64) string {
	s := fmt.Sprintf("%.1f%%", v*100)
	switch {
	case v >= 0.6:
		return p.styles.good.Render(s)
	case v >= 0.4:
		return p.styles.warn.Render(s)
	default:
		return p.styles.bad.Render(s)
	}
}

// Equity prints a simulation result.
func (p *Printer) Equity(hero, board []poker.Card, res equity.Result, elapsed time.Duration) {
	p.printf("%s\n", p.styles.header.Render("Equity"))
	p.printf("  %s %s\n", p.styles.label.Render("Hero: "), p.Cards(hero))
	p.printf("  %s %s\n", p.styles.label.Render("Board:"), p.Cards(board))
	p.printf("  Win   %s\n", p.percent(res.WinRate()))
	p.printf("  Tie   %s\n", p.styles.warn.Render(fmt.Sprintf("%.1f%%", res.TieRate()*100)))
	p.printf("  Lose  %s\n", p.styles.dim.Render(fmt.Sprintf("%.1f%%", res.LossRate()*100)))
	lo, hi := res.ConfidenceInterval()
	p.printf("  %s %s (95%% CI %.1f%% to %.1f%%)\n", p.styles.header.Render("Equity"), p.percent(res.Equity()), lo*100, hi*100)
	p.printf("  %s\n", p.styles.dim.Render(fmt.Sprintf("%d iterations in %s", res.IterationsRun, elapsed.Round(time.Millisecond))))
}

// Outs prints the out cards grouped by the hand they make.
func (p *Printer) Outs(hero, board []poker.Card, outs equity.Outs, hit *potodds.OutsEquity) {
	p.printf("%s\n", p.styles.header.Render("Outs"))
	p.printf("  %s %s\n", p.styles.label.Render("Hero: "), p.Cards(hero))
	p.printf("  %s %s\n", p.styles.label.Render("Board:"), p.Cards(board))
	p.printf("  Current hand: %s\n", outs.CurrentRank.Name())
	p.printf("  %s %d of %d unseen\n", p.styles.header.Render("Outs:"), outs.Count, outs.Unseen)
	if outs.Count > 0 {
		p.printf("  %s\n", p.Cards(outs.Cards))
	}

	names := make([]string, 0, len(outs.Improvements))
	for name := range outs.Improvements {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ni, nj := outs.Improvements[names[i]], outs.Improvements[names[j]]
		if ni != nj {
			return ni > nj
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		p.printf("    %-16s %d\n", name, outs.Improvements[name])
	}
	if hit != nil {
		p.printf("  Chance to hit: %s (rule of thumb %.0f%%)\n", p.percent(hit.Exact), hit.Approximate*100)
	}
}

// Odds prints a pot odds analysis and, when given, the draw odds.
func (p *Printer) Odds(res potodds.Result, draw *potodds.OutsEquity) {
	p.printf("%s\n", p.styles.header.Render("Pot odds"))
	p.printf("  Pot %.2f, call %.2f (%s)\n", res.Pot, res.Call, res.Ratio)
	p.printf("  Required equity: %.1f%%\n", res.RequiredEquity*100)
	if res.Equity != nil {
		p.printf("  Your equity:     %s\n", p.percent(*res.Equity))
	}
	if res.EV != nil {
		verdict := p.styles.bad.Render("FOLD")
		if res.IsProfitableCall() {
			verdict = p.styles.good.Render("CALL")
		}
		p.printf("  EV of calling:   %+.2f  %s\n", *res.EV, verdict)
	}
	if draw != nil {
		p.printf("  %d outs, %d to come: %.1f%% exact, %.0f%% rule of thumb\n",
			draw.Outs, draw.CardsToCome, draw.Exact*100, draw.Approximate*100)
	}
	if res.Call > 0 {
		p.printf("  Minimum defense: %.1f%%\n", potodds.MinimumDefenseFrequency(res.Pot, res.Call)*100)
	}
	if res.Pot > 0 {
		p.printf("  %s\n", p.styles.label.Render("Bet sizes:"))
		for _, size := range potodds.BetSizes(res.Pot) {
			p.printf("    %-8s %.2f\n", size.Label, size.Amount)
		}
	}
}

// Range prints a 13x13 grid with the range's members highlighted.
func (p *Printer) Range(pos game.Position, r ranges.Range, exploit *ranges.Exploit) {
	p.printf("%s\n", p.styles.header.Render(fmt.Sprintf("%s range: %d hands, %d combos (%.1f%%)",
		pos, r.Len(), r.Combos(), r.Share()*100)))
	for row := 0; row < 13; row++ {
		cells := make([]string, 13)
		for col := 0; col < 13; col++ {
			h := poker.StartingHandAt(row, col)
			cell := fmt.Sprintf("%-4s", h.String())
			if r.Contains(h) {
				cells[col] = p.styles.inRange.Render(cell)
			} else {
				cells[col] = p.styles.dim.Render(fmt.Sprintf("%-4s", "."))
			}
		}
		p.printf("%s\n", strings.Join(cells, ""))
	}
	if exploit != nil && exploit.Kind != ranges.ExploitNone {
		p.printf("%s %s %s\n", p.styles.label.Render("Exploit:"), p.styles.action.Render(string(exploit.Kind)), exploit.Sizing)
		for _, line := range exploit.Reasoning {
			p.printf("  - %s\n", line)
		}
	}
}

// Recommendation prints an advisor recommendation.
func (p *Printer) Recommendation(rec advisor.Recommendation) {
	action := strings.ToUpper(string(rec.Action))
	if rec.BetSize != nil && *rec.BetSize > 0 {
		action += fmt.Sprintf(" %.2f", *rec.BetSize)
	}
	if rec.SizingRatio != nil && *rec.SizingRatio > 0 {
		action += fmt.Sprintf(" (%.0f%% pot)", *rec.SizingRatio*100)
	}
	p.printf("%s %s %s\n", p.styles.header.Render("Recommendation:"), p.styles.action.Render(action),
		p.styles.dim.Render(fmt.Sprintf("confidence %.0f%%", rec.Confidence*100)))
	if rec.Equity != nil {
		p.printf("  Equity: %s\n", p.percent(*rec.Equity))
	}
	if rec.EV != nil {
		p.printf("  EV: %+.2f\n", *rec.EV)
	}
	for _, line := range rec.Reasoning {
		p.printf("  - %s\n", p.styles.reason.Render(line))
	}
	if len(rec.Alternatives) > 0 {
		p.printf("  %s\n", p.styles.label.Render("Alternatives:"))
		for _, alt := range rec.Alternatives {
			p.printf("    %-14s %.0f%%\n", alt.Action, alt.Frequency*100)
		}
	}
}

// Chart prints a summary of each charted position.
func (p *Printer) Chart(res advisor.ChartResult) {
	p.printf("%s %s\n", p.styles.header.Render("Range chart:"), res.Source)
	if res.Path != "" {
		p.printf("  %s\n", p.styles.dim.Render(res.Path))
	}
	if res.Err != nil {
		p.printf("  %s\n", p.styles.warn.Render(res.Err.Error()))
	}
	for _, line := range res.Chart.Summary() {
		p.printf("  %s\n", line)
	}
}
