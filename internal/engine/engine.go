// Package engine orchestrates a reconciliation run: it walks the poles of
// both datasets in engineering order, reconciles each one, and collects the
// canonical records, per-pole failures, and the geographic summary.
package engine

import (
	"context"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rkwm713/makeready-cli/internal/analysis"
	"github.com/rkwm713/makeready-cli/internal/model"
	"github.com/rkwm713/makeready-cli/internal/reconcile"
	"github.com/rkwm713/makeready-cli/internal/rules"
	"github.com/rkwm713/makeready-cli/internal/span"
	"github.com/rkwm713/makeready-cli/internal/survey"
	"github.com/rkwm713/makeready-cli/internal/units"
)

// Options configures a reconciliation run.
type Options struct {
	// TargetPoles restricts the run to the named poles; raw IDs are
	// normalized. Empty means every pole in either dataset.
	TargetPoles []string
	// AttachmentPolicy resolves height conflicts during consolidation.
	AttachmentPolicy model.Policy
	// AttributePolicy resolves per-pole attribute conflicts.
	AttributePolicy model.Policy
	// MidspanPointFallback allows point measurements to stand in for
	// missing midspan heights.
	MidspanPointFallback bool
	// Concurrency bounds parallel per-pole processing.
	Concurrency int
	// Rules overrides the default classification rule set.
	Rules *rules.Rules
}

// Engine reconciles the two datasets into canonical pole records.
type Engine struct {
	opts  Options
	rules *rules.Rules
	log   *zap.Logger
}

// New builds an engine, filling option defaults.
func New(opts Options) *Engine {
	if opts.AttachmentPolicy == "" {
		opts.AttachmentPolicy = model.PolicyPreferAnalysis
	}
	if opts.AttributePolicy == "" {
		opts.AttributePolicy = model.PolicyPreferAnalysis
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	r := opts.Rules
	if r == nil {
		r = rules.Default()
	}
	return &Engine{
		opts:  opts,
		rules: r,
		log:   zap.L().With(zap.String("component", "engine")),
	}
}

// Run reconciles the datasets. The output is a pure function of the inputs
// and options: running twice on the same inputs yields identical results.
// Individual pole failures are collected in the result, never fatal; the
// only error paths are cancellation and a target list that matches nothing.
func (e *Engine) Run(ctx context.Context, doc survey.Document, project *analysis.Project) (*model.RunResult, error) {
	poles, err := e.poleList(doc, project)
	if err != nil {
		return nil, err
	}

	records := make([]*model.PoleRecord, len(poles))
	failures := make([]*model.PoleFailure, len(poles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Concurrency)
	for i, poleID := range poles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return eris.Wrap(err, "engine: cancelled")
			}
			rec, err := e.processPole(doc, project, poleID)
			if err != nil {
				e.log.Warn("pole failed", zap.String("pole", poleID), zap.Error(err))
				failures[i] = &model.PoleFailure{Pole: poleID, Error: err.Error()}
				return nil
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &model.RunResult{}
	for i := range poles {
		if failures[i] != nil {
			result.Failures = append(result.Failures, *failures[i])
			continue
		}
		rec := records[i]
		result.Poles = append(result.Poles, *rec)
		if rec.Attributes.Latitude != nil && rec.Attributes.Longitude != nil {
			result.Geo = append(result.Geo, model.GeoPoint{
				Pole:      rec.Number,
				Owner:     rec.Attributes.Owner,
				Structure: rec.Attributes.Structure,
				Status:    rec.Attributes.Status,
				Latitude:  *rec.Attributes.Latitude,
				Longitude: *rec.Attributes.Longitude,
			})
		}
	}

	e.log.Info("run complete",
		zap.Int("poles", len(result.Poles)),
		zap.Int("failures", len(result.Failures)),
	)
	return result, nil
}

// poleList builds the ordered pole worklist: engineering sequence first,
// then survey-only poles in sorted order, optionally filtered to targets.
func (e *Engine) poleList(doc survey.Document, project *analysis.Project) ([]string, error) {
	var order []string
	seen := make(map[string]struct{})
	if project != nil {
		for _, id := range project.PoleOrder() {
			order = append(order, id)
			seen[id] = struct{}{}
		}
	}

	var surveyOnly []string
	nodes := survey.Nodes(doc)
	for nodeID := range nodes {
		node, ok := nodes[nodeID].(map[string]any)
		if !ok {
			continue
		}
		id, ok := survey.PoleID(node)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		surveyOnly = append(surveyOnly, id)
	}
	sort.Strings(surveyOnly)
	order = append(order, surveyOnly...)

	if len(e.opts.TargetPoles) == 0 {
		return order, nil
	}

	targets := make(map[string]struct{}, len(e.opts.TargetPoles))
	for _, raw := range e.opts.TargetPoles {
		id, ok := units.NormalizePoleID(raw)
		if !ok {
			return nil, eris.Errorf("engine: invalid pole ID %q", raw)
		}
		targets[id] = struct{}{}
	}
	var filtered []string
	for _, id := range order {
		if _, ok := targets[id]; ok {
			filtered = append(filtered, id)
		}
	}
	if len(filtered) == 0 {
		return nil, eris.New("engine: no target poles found in either dataset")
	}
	return filtered, nil
}

// processPole reconciles one pole.
func (e *Engine) processPole(doc survey.Document, project *analysis.Project, poleID string) (*model.PoleRecord, error) {
	var loc *analysis.Location
	if project != nil {
		loc, _ = project.LocationByPole(poleID)
	}
	nodeID, node, hasNode := survey.NodeByPole(doc, poleID)
	if loc == nil && !hasNode {
		return nil, eris.Errorf("pole %s not present in either dataset", poleID)
	}

	var engineering []model.Attachment
	modelAttrs := model.PoleAttributes{}
	if loc != nil {
		engineering = analysis.Attachments(loc, e.rules)
		modelAttrs.Owner = analysis.PoleOwner(loc, e.rules)
		modelAttrs.Structure = analysis.PoleStructure(loc)
		modelAttrs.ConstructionGrade = analysis.ConstructionGrade(project)
		modelAttrs.LoadingPercent = analysis.LoadingPercent(loc)
		risers, guys := analysis.RiserGuyCounts(loc)
		modelAttrs.ProposedRisers = model.CountSummary(risers)
		modelAttrs.ProposedGuys = model.CountSummary(guys)
		if lat, lon, ok := loc.Coordinates(); ok {
			modelAttrs.Latitude, modelAttrs.Longitude = &lat, &lon
		}
	}

	var field map[string]model.Attachment
	surveyAttrs := model.PoleAttributes{}
	var spans []model.Span
	if hasNode {
		field = survey.Attachments(doc, nodeID, node, e.rules, survey.AttachmentOptions{
			MidspanPointFallback: e.opts.MidspanPointFallback,
		})
		surveyAttrs.Owner = e.rules.NormalizeOwner(survey.AttributeValue(node, "pole_owner"))
		if lat, lon, ok := survey.NodeCoords(node); ok {
			surveyAttrs.Latitude, surveyAttrs.Longitude = &lat, &lon
		}

		var sequence []string
		if project != nil {
			sequence = project.PoleOrder()
		}
		spans = span.Analyze(doc, nodeID, poleID, e.rules, span.Options{
			PoleSequence:         sequence,
			MidspanPointFallback: e.opts.MidspanPointFallback,
		})
	}

	consolidated := reconcile.Consolidate(engineering, field, e.opts.AttachmentPolicy)
	neutral := reconcile.HighestNeutral(consolidated, e.rules)
	below := reconcile.AtOrBelow(consolidated, neutral)
	action := reconcile.Action(consolidated)

	attrs := reconcile.ResolveAttributes(surveyAttrs, modelAttrs, e.opts.AttributePolicy)
	attrs.Status = reconcile.Status(action)

	rec := &model.PoleRecord{
		Number:       poleID,
		Attributes:   attrs,
		Attachments:  consolidated,
		BelowNeutral: below,
		Spans:        spans,
		Rows:         reconcile.Rows(consolidated, spans, neutral),
		Action:       action,
	}
	if neutral != nil {
		h := neutral.SortHeight()
		rec.NeutralHeight = &h
	}
	return rec, nil
}
