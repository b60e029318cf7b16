// Package render turns causal graphs into Graphviz DOT and SVG diagrams.
//
// Variables are colored by role so treatments, outcomes, and confounders
// stand out at a glance. The DOT output can be rendered to SVG in-process
// with [RenderSVG], which embeds Graphviz and needs no external binary.
package render
