// Package pipeline runs product photos through background removal,
// composition, compliance and export.
package pipeline

import (
	"context"
	"image"
	"net/url"
	"path"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/youruser/creativestudio/internal/bgremove"
	"github.com/youruser/creativestudio/internal/compliance"
	"github.com/youruser/creativestudio/internal/creative"
	"github.com/youruser/creativestudio/internal/export"
	imagepkg "github.com/youruser/creativestudio/internal/image"
)

const (
	defaultWorkers       = 4
	defaultDownloadLimit = 32 << 20
)

// Input is one product photo, given as encoded bytes or as a URL.
type Input struct {
	Source string
	Data   []byte
	URL    string
}

// Result pairs a rendered creative with its verdict. Err is set when any
// stage failed; the other fields are then partial.
type Result struct {
	Index     int
	Source    string
	Filename  string
	Creative  creative.Creative
	Verdict   compliance.Verdict
	JPEG      []byte
	ExportKey string
	Err       error
}

// Exportable reports whether the result may be written to a sink.
func (r Result) Exportable() bool {
	return r.Err == nil && r.Verdict.Passed()
}

type Pipeline struct {
	remover  bgremove.Remover
	composer *creative.Composer
	checker  *compliance.Checker
	sink     export.Sink
	workers  int
	maxFetch int
	log      zerolog.Logger
}

// New wires a pipeline. sink may be nil, in which case Publish only marks
// results. workers bounds batch concurrency.
func New(remover bgremove.Remover, composer *creative.Composer, checker *compliance.Checker, sink export.Sink, workers int, log zerolog.Logger) *Pipeline {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if checker == nil {
		checker = compliance.NewChecker(nil)
	}
	return &Pipeline{
		remover:  remover,
		composer: composer,
		checker:  checker,
		sink:     sink,
		workers:  workers,
		maxFetch: defaultDownloadLimit,
		log:      log,
	}
}

// SetDownloadLimit caps the body size of URL inputs in bytes.
func (p *Pipeline) SetDownloadLimit(maxBytes int) {
	if maxBytes > 0 {
		p.maxFetch = maxBytes
	}
}

// Check evaluates a slogan with the pipeline's rule table.
func (p *Pipeline) Check(slogan, platform string) compliance.Verdict {
	return p.checker.Evaluate(slogan, platform)
}

// Render processes a single input. The compliance verdict is computed even
// when an earlier stage fails.
func (p *Pipeline) Render(ctx context.Context, index int, in Input, req creative.Request) Result {
	res := Result{
		Index:   index,
		Source:  sourceName(in),
		Verdict: p.checker.Evaluate(req.Slogan, req.Platform.Name),
	}
	res.Filename = export.Filename(index, res.Source)
	fail := func(stage string, err error) Result {
		res.Err = &StageError{Stage: stage, Index: index, Source: res.Source, Cause: err}
		p.log.Warn().Err(err).Str("stage", stage).Int("index", index).Str("source", res.Source).Msg("render failed")
		return res
	}

	img, err := p.load(ctx, in)
	if err != nil {
		return fail(StageLoad, err)
	}
	cutout, err := p.remover.Remove(ctx, img)
	if err != nil {
		return fail(StageRemove, err)
	}
	res.Creative = p.composer.Compose(req, cutout)
	res.JPEG, err = export.EncodeJPEG(res.Creative.Image)
	if err != nil {
		return fail(StageEncode, err)
	}
	p.log.Debug().
		Int("index", index).
		Str("source", res.Source).
		Str("platform", req.Platform.Name).
		Str("status", string(res.Verdict.Status)).
		Msg("creative rendered")
	return res
}

// RenderBatch renders every input concurrently. Results are returned in
// input order, one per input.
func (p *Pipeline) RenderBatch(ctx context.Context, inputs []Input, req creative.Request) []Result {
	results := make([]Result, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, in := range inputs {
		g.Go(func() error {
			results[i] = p.Render(gctx, i, in, req)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Publish writes every exportable result to the sink under batchID and sets
// its ExportKey. Results whose slogan failed compliance keep an empty
// ExportKey; they are reported, never written.
func (p *Pipeline) Publish(ctx context.Context, batchID string, results []Result) []Result {
	out := make([]Result, len(results))
	copy(out, results)
	if p.sink == nil {
		return out
	}
	for i := range out {
		r := &out[i]
		if r.Err != nil {
			continue
		}
		if !r.Verdict.Passed() {
			p.log.Info().Int("index", r.Index).Str("source", r.Source).Msg("export blocked by compliance")
			continue
		}
		key, err := p.sink.Write(ctx, path.Join(batchID, r.Filename), r.JPEG)
		if err != nil {
			r.Err = &StageError{Stage: StageExport, Index: r.Index, Source: r.Source, Cause: err}
			p.log.Error().Err(err).Int("index", r.Index).Msg("export failed")
			continue
		}
		r.ExportKey = key
	}
	return out
}

// Archive collects exportable results plus a manifest of the whole batch.
// It returns ErrExportBlocked when no result may be exported.
func (p *Pipeline) Archive(batchID, platform string, results []Result) ([]byte, error) {
	entries := []export.ArchiveEntry{}
	for _, r := range results {
		if r.Exportable() {
			entries = append(entries, export.ArchiveEntry{Name: r.Filename, Data: r.JPEG})
		}
	}
	if len(entries) == 0 {
		return nil, ErrExportBlocked
	}
	manifest := export.ExportManifestText(Manifest(batchID, platform, results))
	entries = append(entries, export.ArchiveEntry{Name: export.ManifestName, Data: []byte(manifest)})
	return export.BuildArchive(entries)
}

// Manifest summarises results for export.
func Manifest(batchID, platform string, results []Result) export.Manifest {
	m := export.Manifest{BatchID: batchID, Platform: platform}
	for _, r := range results {
		e := export.ManifestEntry{
			Index:    r.Index,
			Source:   r.Source,
			Filename: r.Filename,
			Status:   string(r.Verdict.Status),
			Issues:   r.Verdict.Issues,
		}
		if r.Err != nil {
			e.Error = r.Err.Error()
		}
		m.Entries = append(m.Entries, e)
	}
	return m
}

func (p *Pipeline) load(ctx context.Context, in Input) (image.Image, error) {
	if len(in.Data) == 0 && in.URL != "" {
		return imagepkg.DownloadImage(ctx, in.URL, p.maxFetch)
	}
	return imagepkg.Decode(in.Data)
}

func sourceName(in Input) string {
	if in.Source != "" {
		return in.Source
	}
	if in.URL != "" {
		if u, err := url.Parse(in.URL); err == nil && u.Path != "" {
			return path.Base(u.Path)
		}
		return in.URL
	}
	return ""
}
