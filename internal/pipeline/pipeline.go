// Package pipeline runs the auto-population stages for one inventory
// record: normalize, classify, wind configuration, flood rulesets and model
// assembly.
package pipeline

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/opensource-finance/hurricane-autopop/internal/assemble"
	"github.com/opensource-finance/hurricane-autopop/internal/chance"
	"github.com/opensource-finance/hurricane-autopop/internal/domain"
	"github.com/opensource-finance/hurricane-autopop/internal/flood"
	"github.com/opensource-finance/hurricane-autopop/internal/normalize"
	"github.com/opensource-finance/hurricane-autopop/internal/rules"
	"github.com/opensource-finance/hurricane-autopop/internal/tables"
	"github.com/opensource-finance/hurricane-autopop/internal/wind"
)

var tracer = otel.Tracer("autopop")

// Span names of the pipeline stages.
const (
	spanRecord    = "autopop.record"
	spanNormalize = "autopop.normalize"
	spanClassify  = "autopop.classify"
	spanWind      = "autopop.wind"
	spanFlood     = "autopop.flood"
)

// Options configures a Pipeline. Zero values select the embedded tables,
// the Hazus classification rules and the global logger.
type Options struct {
	Tables        *tables.Tables
	Engine        *rules.Engine
	Processor     *assemble.Processor
	Logger        *zap.Logger
	ReferenceYear int
}

// Pipeline auto-populates buildings. All of its state is read-only after
// New, so one Pipeline serves concurrent callers.
type Pipeline struct {
	normalizer    *normalize.Normalizer
	engine        *rules.Engine
	flood         *flood.Ruleset
	processor     *assemble.Processor
	logger        *zap.Logger
	referenceYear int
}

// New wires a pipeline from opts.
func New(opts Options) (*Pipeline, error) {
	if opts.ReferenceYear <= 0 {
		return nil, eris.Errorf("pipeline: reference year %d must be positive", opts.ReferenceYear)
	}

	t := opts.Tables
	if t == nil {
		var err error
		if t, err = tables.Default(); err != nil {
			return nil, eris.Wrap(err, "pipeline: load tables")
		}
	}

	engine := opts.Engine
	if engine == nil {
		var err error
		if engine, err = rules.NewHazusEngine(); err != nil {
			return nil, eris.Wrap(err, "pipeline: build classifier")
		}
	}

	processor := opts.Processor
	if processor == nil {
		processor = assemble.NewProcessor()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.L()
	}

	return &Pipeline{
		normalizer:    normalize.New(t),
		engine:        engine,
		flood:         flood.New(t),
		processor:     processor,
		logger:        logger.Named("pipeline"),
		referenceYear: opts.ReferenceYear,
	}, nil
}

// ReferenceYear returns the year the age-based rules are evaluated against.
func (p *Pipeline) ReferenceYear() int {
	return p.referenceYear
}

// Engine returns the classifier.
func (p *Pipeline) Engine() *rules.Engine {
	return p.engine
}

// AutoPopulate derives the damage and loss model of one raw record. Draws
// that the inventory cannot settle are taken from c.
//
// Failures keep their domain type under the stage context, so callers
// match them with errors.As. No partial assessment is returned.
func (p *Pipeline) AutoPopulate(ctx context.Context, raw domain.RawRecord, c chance.Chance) (*domain.Assessment, error) {
	ctx, span := tracer.Start(ctx, spanRecord)
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b *domain.Building
	err := stage(ctx, spanNormalize, func(ctx context.Context, span trace.Span) error {
		var err error
		b, err = p.normalizer.Normalize(raw)
		if err == nil {
			span.SetAttributes(attribute.String("building.id", b.ID))
		}
		return err
	})
	if err != nil {
		return nil, recordFailure(span, err)
	}

	var match rules.Match
	err = stage(ctx, spanClassify, func(ctx context.Context, span trace.Span) error {
		var err error
		match, err = p.engine.Explain(ctx, b)
		if err == nil {
			span.SetAttributes(
				attribute.String("building.class", match.Class.String()),
				attribute.String("rule.id", match.RuleID),
			)
		}
		return err
	})
	if err != nil {
		return nil, recordFailure(span, err)
	}

	var windCfg domain.Configuration
	err = stage(ctx, spanWind, func(ctx context.Context, span trace.Span) error {
		builder, err := wind.For(match.Class)
		if err != nil {
			return err
		}
		windCfg, err = builder.Build(b, wind.Env{ReferenceYear: p.referenceYear, Chance: c})
		if err == nil {
			span.SetAttributes(attribute.String("configuration.key", windCfg.Key))
		}
		return err
	})
	if err != nil {
		return nil, recordFailure(span, err)
	}

	var (
		floodCfg domain.Configuration
		assembly domain.Assembly
	)
	err = stage(ctx, spanFlood, func(ctx context.Context, span trace.Span) error {
		floodCfg = p.flood.Configure(b)
		var err error
		if assembly, err = p.flood.Assemble(b); err != nil {
			return err
		}
		span.SetAttributes(
			attribute.String("configuration.key", floodCfg.Key),
			attribute.String("assembly.flood", assembly.Flood),
		)
		return nil
	})
	if err != nil {
		return nil, recordFailure(span, err)
	}

	traceID := ""
	if sc := span.SpanContext(); sc.TraceID().IsValid() {
		traceID = sc.TraceID().String()
	}

	assessment := p.processor.Process(&assemble.Input{
		TraceID:       traceID,
		RuleID:        match.RuleID,
		ReferenceYear: p.referenceYear,
		Building:      b,
		Class:         match.Class,
		Wind:          windCfg,
		Flood:         floodCfg,
		Assembly:      assembly,
	})

	p.logger.Debug("record populated",
		zap.String("id", assessment.ID),
		zap.Stringer("class", match.Class),
		zap.String("rule_id", match.RuleID),
		zap.String("wind", windCfg.Key),
		zap.String("flood", floodCfg.Key),
	)

	return assessment, nil
}

// Candidates normalizes and classifies raw, then lists every wind
// configuration the class ruleset can reach with its probability.
func (p *Pipeline) Candidates(ctx context.Context, raw domain.RawRecord) (domain.BuildingClass, []chance.Candidate, error) {
	b, err := p.normalizer.Normalize(raw)
	if err != nil {
		return domain.ClassUnknown, nil, eris.Wrap(err, "normalize")
	}
	class, err := p.engine.Classify(ctx, b)
	if err != nil {
		return domain.ClassUnknown, nil, eris.Wrap(err, "classify")
	}
	candidates, err := wind.Candidates(b, class, p.referenceYear)
	if err != nil {
		return class, nil, eris.Wrap(err, "wind")
	}
	return class, candidates, nil
}

// Close releases the classifier.
func (p *Pipeline) Close() error {
	return p.engine.Close()
}

// stage runs fn under its own span and wraps a failure with the stage name.
func stage(ctx context.Context, name string, fn func(ctx context.Context, span trace.Span) error) error {
	ctx, span := tracer.Start(ctx, name)
	defer span.End()

	if err := fn(ctx, span); err != nil {
		recordFailure(span, err)
		return eris.Wrap(err, strings.TrimPrefix(name, "autopop."))
	}
	return nil
}

func recordFailure(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
