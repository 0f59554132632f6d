package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/macrofor/pkg/errors"
	"github.com/matzehuels/macrofor/pkg/fortran/fragment"
	"github.com/matzehuels/macrofor/pkg/fortran/label"
	"github.com/matzehuels/macrofor/pkg/fortran/reflow"
	pkgio "github.com/matzehuels/macrofor/pkg/io"
	"github.com/matzehuels/macrofor/pkg/observability"
)

// BuildFunc produces the fragments of one run from a builder bound to the
// run's profile and allocator.
type BuildFunc func(b *fragment.Builder) ([]string, error)

// Runner executes generation runs.
//
// The Runner is stateless except for the logger and hooks - it doesn't
// store run results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Logger *log.Logger

	// Hooks receive run events. Nil uses the registered
	// [observability.Generation] hooks.
	Hooks observability.GenerationHooks

	// Output receives write events. Nil uses the registered
	// [observability.Output] hooks.
	Output observability.OutputHooks
}

// NewRunner creates a runner logging to logger.
// If logger is nil, the charmbracelet/log default logger is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs build with a fresh builder and persists the rendered text to path.
//
// Either the complete output is written or the destination is left as it
// was and an error is returned. Filesystem failures are reported as
// OUTPUT_WRITE_FAILURE errors carrying path.
func (r *Runner) Execute(ctx context.Context, path string, build BuildFunc, opts Options) (res *Result, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := errors.ValidateOutputPath(path); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	start := time.Now()
	hooks := r.hooks()
	hooks.OnRunStart(ctx, runID, path)
	defer func() {
		hooks.OnRunComplete(ctx, runID, path, summary(res), time.Since(start), err)
	}()

	buildStart := time.Now()
	frags, err := r.build(opts, build)
	if err != nil {
		return nil, err
	}
	buildTime := time.Since(buildStart)
	hooks.OnStage(ctx, runID, "build", buildTime)
	opts.Logger.Debug("built fragments", "run_id", runID, "fragments", len(frags), "duration", buildTime)

	res, err = r.render(ctx, runID, frags, opts)
	if err != nil {
		return nil, err
	}
	res.Path = path
	res.Stats.BuildTime = buildTime

	if err := r.persist(ctx, res, opts); err != nil {
		return nil, err
	}

	opts.Logger.Info("generated source",
		"run_id", runID,
		"path", path,
		"labels", res.Stats.Labels,
		"lines", res.Stats.Physical,
		"duration", time.Since(start))
	return res, nil
}

// Write persists prebuilt fragments to path. Placeholders in fragments are
// resolved as in [Runner.Execute].
func (r *Runner) Write(ctx context.Context, path string, fragments []string, opts Options) (*Result, error) {
	return r.Execute(ctx, path, func(*fragment.Builder) ([]string, error) {
		return fragments, nil
	}, opts)
}

// Render resolves and reflows fragments in memory.
func (r *Runner) Render(ctx context.Context, fragments []string, opts Options) (res *Result, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	start := time.Now()
	hooks := r.hooks()
	hooks.OnRunStart(ctx, runID, "")
	defer func() {
		hooks.OnRunComplete(ctx, runID, "", summary(res), time.Since(start), err)
	}()

	return r.render(ctx, runID, fragments, opts)
}

// build hands build a builder over a freshly reset allocator.
func (r *Runner) build(opts Options, build BuildFunc) ([]string, error) {
	if build == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "build function is required")
	}
	alloc := label.NewAllocator()
	alloc.Reset()
	return build(fragment.New(opts.Profile, alloc))
}

func (r *Runner) render(ctx context.Context, runID string, fragments []string, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hooks := r.hooks()
	res := &Result{RunID: runID, Profile: opts.Profile}

	text := concat(fragments, &res.Stats)

	resolveStart := time.Now()
	text, res.Labels = label.Resolve(text)
	res.Stats.Labels = len(res.Labels)
	if !opts.AllowUnresolved {
		if bad := label.Unresolved(text); len(bad) > 0 {
			return nil, errors.New(errors.ErrCodeMalformedPlaceholder,
				"%d malformed placeholder(s), first %q", len(bad), bad[0])
		}
	}
	res.Stats.ResolveTime = time.Since(resolveStart)
	hooks.OnStage(ctx, runID, "resolve", res.Stats.ResolveTime)
	opts.Logger.Debug("resolved labels", "run_id", runID, "labels", res.Stats.Labels)

	reflowStart := time.Now()
	if opts.Reflows() {
		var rs reflow.Stats
		text, rs = reflow.Reflow(text, opts.Profile, opts.Policy)
		res.Stats.Logical, res.Stats.Physical, res.Stats.Split = rs.Logical, rs.Physical, rs.Split
	} else if text != "" {
		n := strings.Count(text, "\n") + 1
		res.Stats.Logical, res.Stats.Physical = n, n
	}
	res.Stats.ReflowTime = time.Since(reflowStart)
	hooks.OnStage(ctx, runID, "reflow", res.Stats.ReflowTime)
	opts.Logger.Debug("reflowed lines",
		"run_id", runID,
		"dialect", opts.Profile.Dialect,
		"budget", opts.Profile.MaxLineLength,
		"logical", res.Stats.Logical,
		"physical", res.Stats.Physical,
		"split", res.Stats.Split)

	res.Text = terminate(text, opts.LineEnding)
	return res, nil
}

func (r *Runner) persist(ctx context.Context, res *Result, opts Options) error {
	start := time.Now()
	data, err := pkgio.Encode(res.Text, opts.encoder)
	if err != nil {
		return err
	}
	err = pkgio.WriteBytes(ctx, res.Path, data)
	r.output().OnWrite(ctx, res.Path, len(data), err)
	if err != nil {
		return err
	}
	res.Stats.Bytes = len(data)
	res.Stats.WriteTime = time.Since(start)
	r.hooks().OnStage(ctx, res.RunID, "write", res.Stats.WriteTime)
	opts.Logger.Debug("wrote output", "run_id", res.RunID, "path", res.Path, "bytes", res.Stats.Bytes)
	return nil
}

// concat joins the non-empty fragments with "\n" after normalizing any line
// endings they carry.
func concat(fragments []string, stats *Stats) string {
	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if f == "" {
			continue
		}
		parts = append(parts, normalizeNewlines(f))
	}
	stats.Fragments = len(parts)
	return strings.Join(parts, "\n")
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// terminate ends text with exactly one le and uses le between lines.
func terminate(text, le string) string {
	text = strings.TrimRight(text, "\n") + "\n"
	if le == LF {
		return text
	}
	return strings.ReplaceAll(text, "\n", le)
}

func summary(res *Result) observability.RunSummary {
	if res == nil {
		return observability.RunSummary{}
	}
	return observability.RunSummary{
		Labels:   res.Stats.Labels,
		Logical:  res.Stats.Logical,
		Physical: res.Stats.Physical,
		Split:    res.Stats.Split,
		Bytes:    res.Stats.Bytes,
	}
}

func (r *Runner) hooks() observability.GenerationHooks {
	if r.Hooks != nil {
		return r.Hooks
	}
	return observability.Generation()
}

func (r *Runner) output() observability.OutputHooks {
	if r.Output != nil {
		return r.Output
	}
	return observability.Output()
}

// applyLogger sets the run logger to the Runner's if the caller set none.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
