// Package report renders and persists the run artifact: a plain-text
// file with a fixed section order (header, body, summary, legend) that
// is the sole durable output of a comparison or restore run.
//
// The body is an indented glyph tree for comparison runs and a flat
// action log for restore runs. The format is meant for humans, but the
// section headers and count labels are stable so downstream tooling can
// grep them.
//
// Reports are written to a configurable output directory under a
// timestamp-qualified filename, and can optionally be mirrored into an
// object-storage bucket so operators collect run artifacts centrally.
package report
