// Package pipeline wires tokenization, categorization, splitting and
// field extraction into the per-company processing unit the worker pool
// executes. A company goes in, a fact list comes out; individual founder
// records never fail the batch.
package pipeline

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ppiankov/edrbo/internal/assemble"
	"github.com/ppiankov/edrbo/internal/categorize"
	"github.com/ppiankov/edrbo/internal/extract"
	"github.com/ppiankov/edrbo/internal/lexicon"
	"github.com/ppiankov/edrbo/internal/model"
	"github.com/ppiankov/edrbo/internal/ner"
	"github.com/ppiankov/edrbo/internal/split"
	"github.com/ppiankov/edrbo/internal/token"
)

// Pipeline processes founder records end to end. Immutable after New,
// safe for concurrent use by the worker pool.
type Pipeline struct {
	tok          *token.Adapter
	categorizer  *categorize.Categorizer
	splitter     *split.Splitter
	extractor    *extract.Extractor
	assembler    *assemble.Assembler
	nerModel     ner.Model
	modelTimeout time.Duration
	log          *zap.Logger
}

// New builds the full pipeline from configuration. Every collaborator is
// checked eagerly: a broken tokenizer, an unloadable dictionary or an
// unreachable model fails here, before any record is read.
func New(ctx context.Context, cfg *model.Config, log *zap.Logger) (*Pipeline, error) {
	if log == nil {
		log = zap.NewNop()
	}

	tok, err := token.NewAdapter(token.NewWordPunct())
	if err != nil {
		return nil, eris.Wrap(err, "tokenizer startup check")
	}

	lex, err := lexicon.Load(cfg.Lexicon)
	if err != nil {
		return nil, eris.Wrap(err, "load lexicon")
	}

	m, err := ner.NewModel(cfg.Model)
	if err != nil {
		return nil, eris.Wrap(err, "configure model")
	}
	if m != nil && !m.IsAvailable(ctx) {
		return nil, eris.Wrapf(ner.ErrUnavailable, "%s (%s)", m.Name(), m.Version())
	}

	return &Pipeline{
		tok:          tok,
		categorizer:  categorize.New(lex, m, cfg.Model.MinScore, log),
		splitter:     split.New(lex),
		extractor:    extract.New(lex, m, cfg.Model.MinScore, log),
		assembler:    assemble.New(),
		nerModel:     m,
		modelTimeout: cfg.Model.Timeout,
		log:          log,
	}, nil
}

// ModelVersion reports the loaded model identity, or "" when the model
// is disabled.
func (p *Pipeline) ModelVersion() string {
	if p.nerModel == nil {
		return ""
	}
	return p.nerModel.Version()
}

// ProcessCompany turns one registry record into its fact list. It never
// fails: a founder record nothing can handle yields one unparsed fact
// with the raw text preserved.
func (p *Pipeline) ProcessCompany(ctx context.Context, rec model.CompanyRecord) model.CompanyResult {
	facts := make([]model.BeneficialOwnerFact, 0, len(rec.Founders))

	for i, raw := range rec.Founders {
		ft := model.FounderText{Raw: raw, CompanyID: rec.EDRPOU, Index: i}
		facts = append(facts, p.processFounder(ctx, ft)...)
	}

	return p.assembler.Result(rec, facts)
}

// processFounder handles one founder string. Panics and per-record
// failures degrade to a single unparsed fact; the batch keeps going.
func (p *Pipeline) processFounder(ctx context.Context, ft model.FounderText) (facts []model.BeneficialOwnerFact) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("founder record panicked",
				zap.String("edrpou", ft.CompanyID),
				zap.Int("index", ft.Index),
				zap.Any("panic", r))
			facts = []model.BeneficialOwnerFact{p.assembler.Unparsed(ft)}
		}
	}()

	if p.modelTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.modelTimeout)
		defer cancel()
	}

	toks, err := p.tok.Tokenize(ft.Raw)
	if err != nil || len(toks) == 0 {
		if err != nil {
			p.log.Warn("tokenization failed",
				zap.String("edrpou", ft.CompanyID),
				zap.Int("index", ft.Index),
				zap.Error(err))
		}
		return []model.BeneficialOwnerFact{p.assembler.Unparsed(ft)}
	}

	d := p.categorizer.Categorize(ctx, toks)

	spans := p.spansFor(toks, d.Primary)
	facts = make([]model.BeneficialOwnerFact, 0, len(spans))
	for _, span := range spans {
		fields := p.extractor.Extract(ctx, ft.Raw, toks, span, d.Primary)
		facts = append(facts, p.assembler.Fact(ft, d, fields))
	}
	return facts
}

// spansFor decides how many owner candidates one record contributes.
// Only the multiple-owners category splits; everything else is a single
// span over the whole sequence.
func (p *Pipeline) spansFor(toks []model.Token, cat model.Category) []model.OwnerCandidateSpan {
	if cat == model.CategoryMultipleOwners {
		return p.splitter.Split(toks)
	}
	return []model.OwnerCandidateSpan{{Start: 0, End: len(toks)}}
}
