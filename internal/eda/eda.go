// Package eda runs the classify, scale and encode pipeline over a table and
// assembles the transform report.
package eda

import (
	"fmt"
	"log/slog"

	"github.com/KaramelBytes/autoeda-cli/internal/common"
	"github.com/KaramelBytes/autoeda-cli/internal/dataset"
	"github.com/KaramelBytes/autoeda-cli/internal/encode"
	"github.com/KaramelBytes/autoeda-cli/internal/profile"
	"github.com/KaramelBytes/autoeda-cli/internal/report"
	"github.com/KaramelBytes/autoeda-cli/internal/scaling"
)

// Options bundles the knobs of every stage.
type Options struct {
	Profile profile.Options
	Scale   scaling.Options
	Encode  encode.Options
	// PreviewRows is the number of before/after rows kept per decision; 0 disables previews.
	PreviewRows int
	// Source labels the report, usually the input file name.
	Source string
}

// DefaultOptions returns the stock pipeline configuration.
func DefaultOptions() Options {
	return Options{
		Profile:     profile.DefaultOptions(),
		Scale:       scaling.DefaultOptions(),
		Encode:      encode.DefaultOptions(),
		PreviewRows: report.DefaultPreviewRows,
	}
}

// Result is the transformed table with its report and the plan it followed.
type Result struct {
	Table  dataset.Table
	Report *report.Report
	Plan   profile.Plan
}

// SelectAndScale scales the numeric candidates of t and leaves every other column as is.
func SelectAndScale(t dataset.Table, opt Options) (*Result, error) {
	return run(t, opt, true, false)
}

// SelectAndEncode encodes the categorical candidates of t and leaves every other column as is.
func SelectAndEncode(t dataset.Table, opt Options) (*Result, error) {
	return run(t, opt, false, true)
}

// Run scales then encodes. Classification happens once, on the input table.
func Run(t dataset.Table, opt Options) (*Result, error) {
	return run(t, opt, true, true)
}

func run(t dataset.Table, opt Options, scale, enc bool) (*Result, error) {
	if t.Width() == 0 {
		return nil, common.InputFormat("empty dataset", fmt.Errorf("no columns"))
	}
	if t.Rows() == 0 {
		return nil, common.InputFormat("empty dataset", fmt.Errorf("no rows"))
	}

	plan := profile.Classify(t, opt.Profile)
	b := report.NewBuilder(opt.Source, t.Rows(), opt.PreviewRows)
	for _, name := range plan.Untouched {
		b.AddUntouched(name, plan.Reasons[name])
	}
	slog.Debug("classified columns", "source", opt.Source,
		"scale", len(plan.Scale), "encode", len(plan.Encode), "untouched", len(plan.Untouched))

	cur := t
	if scale {
		cur = scaleColumns(cur, plan.Scale, opt, b)
	} else {
		for _, name := range plan.Scale {
			b.AddUntouched(name, "scaling not requested")
		}
	}
	if enc {
		cur = encodeColumns(cur, plan.Encode, opt, b)
	} else {
		for _, name := range plan.Encode {
			b.AddUntouched(name, "encoding not requested")
		}
	}

	rep := b.Report()
	slog.Info("transform complete", "source", opt.Source, "run_id", rep.RunID.String(),
		"transformed", len(rep.Entries), "skipped", len(rep.Skipped), "failed", len(rep.Failures))
	return &Result{Table: cur, Report: rep, Plan: plan}, nil
}

func scaleColumns(t dataset.Table, names []string, opt Options, b *report.Builder) dataset.Table {
	for _, name := range names {
		var (
			next dataset.Table
			ds   []scaling.Decision
			errs []error
		)
		err := guard(name, func() {
			next, ds, errs = scaling.SelectAndScale(t, []string{name}, opt.Scale)
		})
		if err != nil {
			errs = []error{err}
			next, ds = t, nil
		}
		for _, e := range errs {
			slog.Warn("column not scaled", "column", name, "error", e)
			b.AddError(e)
		}
		for _, d := range ds {
			slog.Debug("scaling decision", "column", d.Column, "method", d.Scaler.Method().String(), "abs_skew", d.Skew)
			b.AddScaling(d, t, next)
		}
		t = next
	}
	return t
}

func encodeColumns(t dataset.Table, names []string, opt Options, b *report.Builder) dataset.Table {
	for _, name := range names {
		var (
			next dataset.Table
			ds   []encode.Decision
			errs []error
		)
		err := guard(name, func() {
			next, ds, errs = encode.SelectAndEncode(t, []string{name}, opt.Encode)
		})
		if err != nil {
			errs = []error{err}
			next, ds = t, nil
		}
		for _, e := range errs {
			slog.Warn("column not encoded", "column", name, "error", e)
			b.AddError(e)
		}
		if len(ds) == 0 && len(errs) == 0 {
			b.AddUntouched(name, "fewer than 2 categories")
		}
		for _, d := range ds {
			slog.Debug("encoding decision", "column", d.Column, "class", d.Class.String(), "strategy", d.Encoder.Strategy())
			b.AddEncoding(d, t, next)
		}
		t = next
	}
	return t
}

// guard turns a panic inside fn into a column-scoped TransformFailed error.
func guard(column string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = common.TransformFailed(column, fmt.Errorf("panic: %v", r))
		}
	}()
	fn()
	return nil
}
