// Package report collects per-column transform decisions and renders them
// for human inspection. Reports are never fed back into the transform core.
package report

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/KaramelBytes/autoeda-cli/internal/common"
	"github.com/KaramelBytes/autoeda-cli/internal/dataset"
	"github.com/KaramelBytes/autoeda-cli/internal/encode"
	"github.com/KaramelBytes/autoeda-cli/internal/scaling"
	"github.com/KaramelBytes/autoeda-cli/internal/utils"
	"github.com/google/uuid"
)

// DefaultPreviewRows is the number of rows captured before and after a transform.
const DefaultPreviewRows = 8

// Report is the outcome of one run over one table.
type Report struct {
	RunID     uuid.UUID `json:"run_id"`
	Source    string    `json:"source"`
	Rows      int       `json:"rows"`
	Entries   []Entry   `json:"entries"`
	Untouched []Note    `json:"untouched,omitempty"`
	Skipped   []Note    `json:"skipped,omitempty"`
	Failures  []Note    `json:"failures,omitempty"`
	Warnings  []string  `json:"warnings,omitempty"`
}

// Entry describes the transform applied to one source column.
type Entry struct {
	Column   string            `json:"column"`
	Action   string            `json:"action"` // scale|encode
	Strategy string            `json:"strategy"`
	Class    string            `json:"class,omitempty"`
	Params   map[string]string `json:"params,omitempty"`
	Outputs  []string          `json:"outputs"`
	Preview  *Preview          `json:"preview,omitempty"`
}

// Preview holds the first rows of a source column and of the columns it became.
type Preview struct {
	Before []string   `json:"before"`
	After  [][]string `json:"after"` // one slice per output column
}

// Note is a column that was not transformed, with the reason.
type Note struct {
	Column string `json:"column"`
	Reason string `json:"reason"`
}

// Builder accumulates a Report. It never modifies the tables it reads.
type Builder struct {
	rep         Report
	previewRows int
}

// NewBuilder starts a report for source. previewRows <= 0 disables previews.
func NewBuilder(source string, rows, previewRows int) *Builder {
	return &Builder{
		rep:         Report{RunID: uuid.New(), Source: source, Rows: rows},
		previewRows: previewRows,
	}
}

// AddScaling records a scaling decision; before and after are the tables
// around the transform.
func (b *Builder) AddScaling(d scaling.Decision, before, after dataset.Table) {
	params := make(map[string]string)
	for k, v := range d.Scaler.Params() {
		params[k] = fmt.Sprintf("%.6g", v)
	}
	params["abs_skew"] = fmt.Sprintf("%.6g", d.Skew)
	e := Entry{
		Column:   d.Column,
		Action:   "scale",
		Strategy: d.Scaler.Method().String(),
		Params:   params,
		Outputs:  []string{d.Column},
	}
	e.Preview = b.preview(d.Column, e.Outputs, before, after)
	b.rep.Entries = append(b.rep.Entries, e)
}

// AddEncoding records an encoding decision.
func (b *Builder) AddEncoding(d encode.Decision, before, after dataset.Table) {
	e := Entry{
		Column:   d.Column,
		Action:   "encode",
		Strategy: d.Encoder.Strategy(),
		Class:    d.Class.String(),
		Params:   d.Encoder.Mapping(),
		Outputs:  []string{d.Column},
	}
	if oh, ok := d.Encoder.(encode.OneHotEncoder); ok {
		e.Outputs = append([]string(nil), oh.Columns...)
	}
	e.Preview = b.preview(d.Column, e.Outputs, before, after)
	b.rep.Entries = append(b.rep.Entries, e)
}

// AddUntouched records a column left alone by classification.
func (b *Builder) AddUntouched(column, reason string) {
	b.rep.Untouched = append(b.rep.Untouched, Note{Column: column, Reason: reason})
}

// AddError files a column-scoped error under skipped or failures.
func (b *Builder) AddError(err error) {
	n := Note{Reason: err.Error()}
	var ce *common.Error
	if errors.As(err, &ce) {
		n.Column = ce.Column
		n.Reason = ce.Msg
		if ce.Err != nil {
			n.Reason += ": " + ce.Err.Error()
		}
	}
	if common.IsColumnDegenerate(err) {
		b.rep.Skipped = append(b.rep.Skipped, n)
		return
	}
	b.rep.Failures = append(b.rep.Failures, n)
}

// Warn adds a free-form note.
func (b *Builder) Warn(msg string) {
	b.rep.Warnings = append(b.rep.Warnings, msg)
}

// Report returns the accumulated report.
func (b *Builder) Report() *Report {
	r := b.rep
	return &r
}

// preview captures the first rows of src in before and of outs in after.
// A panic here is logged and turned into a warning; the tables are unaffected.
func (b *Builder) preview(src string, outs []string, before, after dataset.Table) (p *Preview) {
	if b.previewRows <= 0 {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("preview failed", "column", src, "panic", r)
			b.Warn(fmt.Sprintf("preview for %s unavailable: %v", src, r))
			p = nil
		}
	}()
	return capture(src, outs, before, after, b.previewRows)
}

var capture = func(src string, outs []string, before, after dataset.Table, n int) *Preview {
	c, ok := before.Column(src)
	if !ok {
		panic(fmt.Sprintf("source column %q not in input table", src))
	}
	p := &Preview{Before: c.Head(n)}
	for _, name := range outs {
		oc, ok := after.Column(name)
		if !ok {
			panic(fmt.Sprintf("output column %q not in result table", name))
		}
		p.After = append(p.After, oc.Head(n))
	}
	return p
}

// JSON renders the report as indented JSON.
func (r *Report) JSON() ([]byte, error) {
	return utils.PrettyJSON(r)
}

// Text renders one "column -> strategy" line per decision.
func (r *Report) Text() string {
	var b strings.Builder
	for _, e := range r.Entries {
		b.WriteString(fmt.Sprintf("%s -> %s (%s)\n", e.Column, e.Strategy, e.Action))
	}
	for _, n := range r.Untouched {
		b.WriteString(fmt.Sprintf("%s -> untouched (%s)\n", n.Column, n.Reason))
	}
	for _, n := range r.Skipped {
		b.WriteString(fmt.Sprintf("%s -> skipped (%s)\n", n.Column, n.Reason))
	}
	for _, n := range r.Failures {
		b.WriteString(fmt.Sprintf("%s -> failed (%s)\n", n.Column, n.Reason))
	}
	return b.String()
}

// Markdown renders a compact report suitable for standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[TRANSFORM SUMMARY]\n")
	if r.Source != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Source))
	}
	b.WriteString(fmt.Sprintf("Run: %s\n", r.RunID))
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Transformed: %d, untouched: %d, skipped: %d, failed: %d\n\n",
		len(r.Entries), len(r.Untouched), len(r.Skipped), len(r.Failures)))

	if len(r.Entries) > 0 {
		b.WriteString("[DECISIONS]\n")
		for _, e := range r.Entries {
			b.WriteString(fmt.Sprintf("- %s: %s", safeName(e.Column), e.Strategy))
			if e.Class != "" {
				b.WriteString(fmt.Sprintf(" (%s cardinality)", e.Class))
			}
			if len(e.Params) > 0 {
				b.WriteString(": ")
				b.WriteString(formatParams(e.Params))
			}
			b.WriteString("\n")
		}
	}
	for _, e := range r.Entries {
		if e.Preview == nil {
			continue
		}
		b.WriteString(fmt.Sprintf("\n[PREVIEW %s]\n", safeName(e.Column)))
		b.WriteString("| before")
		for _, o := range e.Outputs {
			b.WriteString(" | ")
			b.WriteString(safeName(o))
		}
		b.WriteString(" |\n|---")
		for range e.Outputs {
			b.WriteString("|---")
		}
		b.WriteString("|\n")
		for i, v := range e.Preview.Before {
			b.WriteString("| ")
			b.WriteString(safeVal(v))
			for _, col := range e.Preview.After {
				b.WriteString(" | ")
				if i < len(col) {
					b.WriteString(safeVal(col[i]))
				}
			}
			b.WriteString(" |\n")
		}
	}
	writeNotes(&b, "UNTOUCHED", r.Untouched)
	writeNotes(&b, "SKIPPED", r.Skipped)
	writeNotes(&b, "FAILED", r.Failures)
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func writeNotes(b *strings.Builder, title string, notes []Note) {
	if len(notes) == 0 {
		return
	}
	b.WriteString(fmt.Sprintf("\n[%s]\n", title))
	for _, n := range notes {
		b.WriteString(fmt.Sprintf("- %s: %s\n", safeName(n.Column), n.Reason))
	}
}

func formatParams(p map[string]string) string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%s", safeVal(k), safeVal(p[k]))
	}
	return strings.Join(parts, ", ")
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
