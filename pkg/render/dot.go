package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/causallab/dagcheck/pkg/causal"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes the role in each variable label.
	// When false, only the variable label is shown.
	Detailed bool

	// Adjustment marks variables in the adjustment set with a double
	// border.
	Adjustment []string
}

// roleFills maps roles to Graphviz fill colors. Roles without an entry
// render plain white.
var roleFills = map[causal.Role]string{
	causal.RoleTreatment:  "lightblue",
	causal.RoleOutcome:    "lightgoldenrod",
	causal.RoleConfounder: "lightsalmon",
	causal.RoleMediator:   "palegreen",
	causal.RoleCollider:   "plum",
	causal.RoleInstrument: "lightcyan",
}

// ToDOT converts a causal graph to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG].
func ToDOT(g *causal.Graph, opts Options) string {
	adjust := make(map[string]bool, len(opts.Adjustment))
	for _, name := range opts.Adjustment {
		adjust[causal.CanonicalName(name)] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=ellipse, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	for _, v := range g.Variables() {
		label := fmtLabel(*v, opts.Detailed)
		attrs := fmtAttrs(*v, label, adjust[v.Name])
		fmt.Fprintf(&buf, "  %q [%s];\n", v.Name, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(v causal.Variable, detailed bool) string {
	if !detailed || v.Role == causal.RoleOther {
		return v.Label
	}
	return fmt.Sprintf("%s\n(%s)", v.Label, v.Role)
}

func fmtAttrs(v causal.Variable, label string, adjusted bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if fill, ok := roleFills[v.Role]; ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%s", fill))
	}
	if adjusted {
		attrs = append(attrs, "peripheries=2")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the svg tag so the view box starts at the
// origin and width/height match it. Graphviz emits offset view boxes that
// confuse some embedders.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
