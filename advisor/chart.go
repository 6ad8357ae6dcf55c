package advisor

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/lox/pokeradvisor/game"
	"github.com/lox/pokeradvisor/poker"
	"github.com/lox/pokeradvisor/ranges"
)

// ErrConfigurationMissing wraps whatever stopped a range chart from
// loading. LoadChart recovers from it with DefaultChart.
var ErrConfigurationMissing = errors.New("range chart configuration missing")

// VersusRanges is how a seat continues against one opener.
type VersusRanges struct {
	ThreeBet ranges.Range
	Call     ranges.Range
}

// PositionRanges holds a seat's open range and its responses keyed by the
// opener's seat.
type PositionRanges struct {
	Open   ranges.Range
	Versus map[game.Position]VersusRanges
}

// Chart is a preflop range chart. It is read-only once built and safe to
// share between goroutines.
type Chart struct {
	Positions map[game.Position]PositionRanges
}

// OpenRange implements ranges.OpenRanges.
func (c Chart) OpenRange(pos game.Position) (ranges.Range, bool) {
	p, ok := c.Positions[pos]
	if !ok || p.Open.IsEmpty() {
		return ranges.Range{}, false
	}
	return p.Open, true
}

// VersusOpen returns hero's 3-bet and call ranges against an open from
// opener.
func (c Chart) VersusOpen(hero, opener game.Position) (VersusRanges, bool) {
	p, ok := c.Positions[hero]
	if !ok {
		return VersusRanges{}, false
	}
	v, ok := p.Versus[opener]
	return v, ok
}

// Contains is an exact membership lookup.
func (c Chart) Contains(h poker.StartingHand, r ranges.Range) bool {
	return r.Contains(h)
}

// ContainsAlternate is the legacy chart lookup. It once consulted the
// opposite-suitedness form of a hand, but a hand present only in that
// form was always reported absent, so the result never differs from
// Contains. Kept for compatibility with charts that relied on it.
func (c Chart) ContainsAlternate(h poker.StartingHand, r ranges.Range) bool {
	return r.Contains(h)
}

// ChartSource records where a chart came from.
type ChartSource uint8

const (
	ChartLoaded ChartSource = iota
	ChartFallback
)

func (s ChartSource) String() string {
	if s == ChartLoaded {
		return "loaded"
	}
	return "fallback"
}

// ChartResult is the outcome of LoadChart. Err is set only for
// ChartFallback and always wraps ErrConfigurationMissing.
type ChartResult struct {
	Chart  Chart
	Source ChartSource
	Path   string
	Err    error
}

// LoadChart reads a chart from an .hcl or .json file. Any failure falls
// back to DefaultChart; the cause is reported in the result, never
// returned as an error.
func LoadChart(path string) ChartResult {
	chart, err := loadChart(path)
	if err != nil {
		return ChartResult{
			Chart:  DefaultChart(),
			Source: ChartFallback,
			Path:   path,
			Err:    fmt.Errorf("%w: %w", ErrConfigurationMissing, err),
		}
	}
	return ChartResult{Chart: chart, Source: ChartLoaded, Path: path}
}

func loadChart(path string) (Chart, error) {
	if path == "" {
		return Chart{}, errors.New("no chart path given")
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return Chart{}, err
	}
	var chart Chart
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".hcl":
		chart, err = ParseChartHCL(src, path)
	case ".json":
		chart, err = ParseChartJSON(src)
	default:
		return Chart{}, fmt.Errorf("unsupported chart format %q", ext)
	}
	if err != nil {
		return Chart{}, err
	}
	if len(chart.Positions) == 0 {
		return Chart{}, errors.New("chart defines no positions")
	}
	return chart, nil
}

type hclChart struct {
	Positions []hclPosition `hcl:"position,block"`
}

type hclPosition struct {
	Name   string      `hcl:"name,label"`
	Open   string      `hcl:"open,optional"`
	Versus []hclVersus `hcl:"versus,block"`
}

type hclVersus struct {
	Opener   string `hcl:"opener,label"`
	ThreeBet string `hcl:"three_bet,optional"`
	Call     string `hcl:"call,optional"`
}

// ParseChartHCL decodes a chart written as
//
//	position "BB" {
//	  open = "AA-22,AKs"
//	  versus "BTN" {
//	    three_bet = "TT+,AQs+"
//	    call      = "99-22"
//	  }
//	}
func ParseChartHCL(src []byte, filename string) (Chart, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Chart{}, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw hclChart
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return Chart{}, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	chart := Chart{Positions: make(map[game.Position]PositionRanges, len(raw.Positions))}
	for _, p := range raw.Positions {
		pos, err := game.ParsePosition(p.Name)
		if err != nil {
			return Chart{}, err
		}
		open, err := ranges.Parse(p.Open)
		if err != nil {
			return Chart{}, fmt.Errorf("position %s open: %w", pos, err)
		}
		pr := PositionRanges{Open: open, Versus: map[game.Position]VersusRanges{}}
		for _, v := range p.Versus {
			opener, err := game.ParsePosition(v.Opener)
			if err != nil {
				return Chart{}, fmt.Errorf("position %s: %w", pos, err)
			}
			var vr VersusRanges
			if vr.ThreeBet, err = ranges.Parse(v.ThreeBet); err != nil {
				return Chart{}, fmt.Errorf("position %s vs %s 3-bet: %w", pos, opener, err)
			}
			if vr.Call, err = ranges.Parse(v.Call); err != nil {
				return Chart{}, fmt.Errorf("position %s vs %s call: %w", pos, opener, err)
			}
			pr.Versus[opener] = vr
		}
		chart.Positions[pos] = pr
	}
	return chart, nil
}

//go:embed schema/chart.json
var chartSchemaJSON string

const chartSchemaURL = "https://pokeradvisor.dev/schemas/chart.json"

var chartSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(chartSchemaURL, strings.NewReader(chartSchemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to add chart schema: %w", err)
	}
	schema, err := compiler.Compile(chartSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chart schema: %w", err)
	}
	return schema, nil
})

type jsonRanges struct {
	Hands    []string `json:"hands"`
	ThreeBet []string `json:"3bet"`
	Call     []string `json:"call"`
}

// ParseChartJSON decodes the JSON chart layout
//
//	{"ranges": {"BB": {"open": {"hands": [...]},
//	                   "vs_btn_open": {"3bet": [...], "call": [...]}}}}
//
// after validating it against the embedded schema.
func ParseChartJSON(src []byte) (Chart, error) {
	schema, err := chartSchema()
	if err != nil {
		return Chart{}, err
	}
	var doc any
	if err := json.Unmarshal(src, &doc); err != nil {
		return Chart{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return Chart{}, fmt.Errorf("schema validation failed: %w", err)
	}

	var raw struct {
		Ranges map[string]map[string]jsonRanges `json:"ranges"`
	}
	if err := json.Unmarshal(src, &raw); err != nil {
		return Chart{}, fmt.Errorf("invalid JSON: %w", err)
	}

	chart := Chart{Positions: make(map[game.Position]PositionRanges, len(raw.Ranges))}
	for name, entries := range raw.Ranges {
		pos, err := game.ParsePosition(name)
		if err != nil {
			return Chart{}, err
		}
		pr := PositionRanges{Versus: map[game.Position]VersusRanges{}}
		for key, entry := range entries {
			if key == "open" {
				if pr.Open, err = ranges.ParseList(entry.Hands); err != nil {
					return Chart{}, fmt.Errorf("position %s open: %w", pos, err)
				}
				continue
			}
			opener, err := game.ParsePosition(strings.TrimSuffix(strings.TrimPrefix(key, "vs_"), "_open"))
			if err != nil {
				return Chart{}, fmt.Errorf("position %s key %q: %w", pos, key, err)
			}
			var vr VersusRanges
			if vr.ThreeBet, err = ranges.ParseList(entry.ThreeBet); err != nil {
				return Chart{}, fmt.Errorf("position %s %s 3bet: %w", pos, key, err)
			}
			if vr.Call, err = ranges.ParseList(entry.Call); err != nil {
				return Chart{}, fmt.Errorf("position %s %s call: %w", pos, key, err)
			}
			pr.Versus[opener] = vr
		}
		chart.Positions[pos] = pr
	}
	return chart, nil
}

// Summary lists each seat with its open range size, in seat order.
func (c Chart) Summary() []string {
	positions := make([]game.Position, 0, len(c.Positions))
	for pos := range c.Positions {
		positions = append(positions, pos)
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i] < positions[j] })

	lines := make([]string, 0, len(positions))
	for _, pos := range positions {
		p := c.Positions[pos]
		lines = append(lines, fmt.Sprintf("%s: open %d hands (%.1f%%), %d versus entries",
			pos, p.Open.Len(), p.Open.Share()*100, len(p.Versus)))
	}
	return lines
}

// DefaultChart is the built-in fallback chart used when no chart file can
// be loaded.
func DefaultChart() Chart {
	return Chart{Positions: map[game.Position]PositionRanges{
		game.UTG: {
			Open: ranges.MustParse("AA-88,AKs,AQs,AJs,ATs,AKo,AQo,KQs,KJs,QJs,JTs"),
		},
		game.HJ: {
			Open: ranges.MustParse("AA-77,AKs-A9s,A5s,AKo-AJo,KQs-KTs,KQo,QJs,QTs,JTs,T9s"),
		},
		game.CO: {
			Open: ranges.MustParse("AA-55,AKs-A2s,AKo-ATo,KQs-K9s,KQo,KJo,QJs-Q9s,QJo,JTs,J9s,T9s,98s,87s"),
			Versus: map[game.Position]VersusRanges{
				game.UTG: {ThreeBet: ranges.MustParse("QQ+,AKs,AKo"), Call: ranges.MustParse("JJ-99,AQs,AJs,KQs")},
			},
		},
		game.BTN: {
			Open: ranges.MustParse("22+,A2s+,A9o+,KQs-K9s,KQo,KJo,QJs-Q9s,QJo,JTs,J9s,JTo,T9s,T8s,98s,87s,76s,65s,54s"),
			Versus: map[game.Position]VersusRanges{
				game.UTG: {ThreeBet: ranges.MustParse("QQ+,AKs,AKo,A5s"), Call: ranges.MustParse("JJ-88,AQs-ATs,KQs,KJs,QJs,JTs,T9s,AQo")},
				game.HJ:  {ThreeBet: ranges.MustParse("JJ+,AQs+,AKo,A5s,A4s"), Call: ranges.MustParse("TT-77,AJs,ATs,KQs,KJs,QJs,JTs,T9s,98s,AQo")},
				game.CO:  {ThreeBet: ranges.MustParse("TT+,AQs+,AKo,A5s-A4s,KQs"), Call: ranges.MustParse("99-55,AJs-A9s,KJs,KTs,QJs,QTs,JTs,T9s,98s,87s,AQo,AJo,KQo")},
			},
		},
		game.SB: {
			Open: ranges.MustParse("22+,A2s+,A7o+,K8s+,KTo+,Q9s+,QTo+,J9s+,T8s+,97s+,86s+,76s,65s,54s"),
			Versus: map[game.Position]VersusRanges{
				game.CO:  {ThreeBet: ranges.MustParse("TT+,AQs+,AKo,A5s"), Call: ranges.MustParse("99-77,AJs,KQs")},
				game.BTN: {ThreeBet: ranges.MustParse("99+,ATs+,AJo+,KQs,A5s-A4s"), Call: ranges.MustParse("88-77,KJs,QJs,JTs")},
			},
		},
		game.BB: {
			Versus: map[game.Position]VersusRanges{
				game.UTG: {ThreeBet: ranges.MustParse("QQ+,AKs,AKo"), Call: ranges.MustParse("JJ-22,AQs-A2s,KQs-K9s,QJs-Q9s,JTs,J9s,T9s,98s,87s,76s,65s,AQo,AJo,KQo")},
				game.CO:  {ThreeBet: ranges.MustParse("JJ+,AQs+,AKo,A5s"), Call: ranges.MustParse("TT-22,AJs-A6s,A4s-A2s,KQs-K8s,QJs-Q9s,JTs,J9s,T9s,T8s,98s,87s,76s,65s,54s,AQo-ATo,KQo,KJo,QJo")},
				game.BTN: {ThreeBet: ranges.MustParse("TT+,AJs+,AQo+,A5s-A4s,KQs"), Call: ranges.MustParse("99-22,ATs-A6s,A3s,A2s,KJs-K7s,QJs-Q8s,JTs-J8s,T9s,T8s,98s,97s,87s,86s,76s,65s,54s,AJo-A8o,KQo-KTo,QJo,QTo,JTo")},
				game.SB:  {ThreeBet: ranges.MustParse("TT+,AJs+,AQo+,KQs,A5s"), Call: ranges.MustParse("99-22,ATs-A6s,A4s-A2s,KJs-K8s,QJs-Q9s,JTs,J9s,T9s,98s,87s,76s,AJo-A9o,KQo,KJo,QJo")},
			},
		},
	}}
}
