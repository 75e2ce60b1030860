package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/rkwm713/makeready-cli/internal/analysis"
	"github.com/rkwm713/makeready-cli/internal/config"
	"github.com/rkwm713/makeready-cli/internal/engine"
	"github.com/rkwm713/makeready-cli/internal/model"
	"github.com/rkwm713/makeready-cli/internal/rules"
	"github.com/rkwm713/makeready-cli/internal/store"
	"github.com/rkwm713/makeready-cli/internal/survey"
)

// initStore opens the configured SQLite store and runs migrations.
func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}

// buildEngine assembles an engine from config plus per-command overrides.
// Empty overrides fall back to the configured values.
func buildEngine(ec config.EngineConfig, targets []string, rulesPath string) (*engine.Engine, error) {
	path := rulesPath
	if path == "" {
		path = ec.RulesPath
	}
	var r *rules.Rules
	if path != "" {
		loaded, err := rules.Load(path)
		if err != nil {
			return nil, err
		}
		r = loaded
	}

	return engine.New(engine.Options{
		TargetPoles:          targets,
		AttachmentPolicy:     model.Policy(ec.AttachmentPolicy),
		AttributePolicy:      model.Policy(ec.AttributePolicy),
		MidspanPointFallback: ec.MidspanPointFallback,
		Concurrency:          ec.Concurrency,
		Rules:                r,
	}), nil
}

// executeRun loads the datasets and reconciles them with the configured
// engine settings.
func executeRun(ctx context.Context, surveyPath, analysisPath string, targets []string) (*model.RunResult, error) {
	doc, project, err := loadInputs(surveyPath, analysisPath)
	if err != nil {
		return nil, err
	}
	eng, err := buildEngine(cfg.Engine, targets, "")
	if err != nil {
		return nil, err
	}
	return eng.Run(ctx, doc, project)
}

// loadInputs reads the two datasets. Either may be omitted, but not both.
func loadInputs(surveyPath, analysisPath string) (survey.Document, *analysis.Project, error) {
	if surveyPath == "" && analysisPath == "" {
		return nil, nil, eris.New("at least one of --survey and --analysis is required")
	}

	var doc survey.Document
	if surveyPath != "" {
		d, err := survey.LoadFile(surveyPath)
		if err != nil {
			return nil, nil, err
		}
		doc = d
	}

	var project *analysis.Project
	if analysisPath != "" {
		p, err := analysis.LoadFile(analysisPath)
		if err != nil {
			return nil, nil, err
		}
		project = p
	}
	return doc, project, nil
}
