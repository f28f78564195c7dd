// Package report renders the human-readable multi-section system report.
//
// The report is a fixed ordered sequence: a preamble (timestamp, host, run
// ID), six labeled sections each backed by a producing command, and an
// end-of-report marker. Section bodies are the producing command's combined
// output included verbatim; a failing section command never aborts the
// report.
package report
