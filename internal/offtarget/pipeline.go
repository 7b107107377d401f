package offtarget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jjtimmons/offtarget/config"
	"github.com/jjtimmons/offtarget/internal/blast"
	"github.com/rs/zerolog"
)

// Stage names, in the order they're run.
const (
	StageGetFasta = "getfasta"
	StageBlastn   = "blastn"
	StageClassify = "classify"
)

// StageResult is the outcome of one stage of the pipeline.
type StageResult struct {
	Name    string
	Err     error
	Elapsed time.Duration
}

// Outcome collects the results of every stage that was run.
type Outcome struct {
	// Stages in the order they ran
	Stages []StageResult

	// Targets is the number of intervals in the BED file, 0 if it wasn't read
	Targets int

	// Clean are the BED intervals without a reported off-target match
	Clean []string

	// Stats from the classify stage
	Stats Stats

	// Hits written to the report
	Hits []Hit
}

// Err joins the errors of all the failed stages. nil if every stage succeeded.
func (o *Outcome) Err() error {
	var errs []error
	for _, s := range o.Stages {
		if s.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name, s.Err))
		}
	}
	return errors.Join(errs...)
}

// stage logs start and runs fn with a logger scoped to the stage, then records
// its result. A failure is logged, never returned: the stages after it are still attempted.
func (o *Outcome) stage(log zerolog.Logger, name, start string, fn func(log zerolog.Logger) error) {
	log = log.With().Str("stage", name).Logger()
	log.Info().Msg(start)

	began := time.Now()
	err := fn(log)
	o.Stages = append(o.Stages, StageResult{Name: name, Err: err, Elapsed: time.Since(began)})

	if err != nil {
		log.Error().Err(err).Msg("stage failed")
	}
}

// Run finds off-target matches of the BED file's intervals: it extracts their sequences
// from the genome, BLASTs them against the genome, and writes the report of
// matches outside the intervals.
//
// Every stage is attempted even if an earlier one failed; check Outcome.Err.
func Run(ctx context.Context, conf config.Config, r blast.Runner, log zerolog.Logger) *Outcome {
	o := &Outcome{}
	var targets []string

	start := fmt.Sprintf("building FASTA file %s from BED file %s", conf.TargetFasta, conf.Bed)
	o.stage(log, StageGetFasta, start, func(log zerolog.Logger) error {
		// advisory: bedtools is run either way
		var err error
		if targets, err = ReadTargets(conf.Bed); err != nil {
			log.Warn().Err(err).Msg("couldn't count target intervals")
		} else {
			o.Targets = len(targets)
			log.Debug().Str("bed", conf.Bed).Int("intervals", o.Targets).Msg("read target intervals")
		}

		g := blast.GetFasta{
			Bedtools: conf.Bedtools,
			Genome:   conf.Genome,
			Bed:      conf.Bed,
			Out:      conf.TargetFasta,
		}
		if err := g.Run(ctx, r); err != nil {
			return err
		}

		log.Info().Msgf("built FASTA file %s from BED file %s", conf.TargetFasta, conf.Bed)
		return nil
	})

	start = fmt.Sprintf("aligning %s against genome %s with BLAST", conf.TargetFasta, conf.Genome)
	o.stage(log, StageBlastn, start, func(log zerolog.Logger) error {
		b := blast.Blastn{
			Blastn: conf.Blastn,
			Query:  conf.TargetFasta,
			DB:     conf.Genome,
			Out:    conf.BlastResult,
		}
		if err := b.Run(ctx, r); err != nil {
			return err
		}

		log.Info().Msgf("alignment complete, results written to %s", conf.BlastResult)
		return nil
	})

	o.classify(conf, targets, log)
	o.summarize(conf, log)
	return o
}

// RunClassify only runs the classify stage, on an existing BLAST result file.
func RunClassify(conf config.Config, log zerolog.Logger) *Outcome {
	o := &Outcome{}
	o.classify(conf, nil, log)
	o.summarize(conf, log)
	return o
}

// classify reads the BLAST results and writes the report of off-target matches.
// The report isn't written if any record fails to classify. targets, if read,
// are the BED intervals to check the hits against.
func (o *Outcome) classify(conf config.Config, targets []string, log zerolog.Logger) {
	o.stage(log, StageClassify, "searching for off-target regions", func(log zerolog.Logger) error {
		records, err := blast.Read(conf.BlastResult)
		if err != nil {
			return err
		}

		c := NewClassifier(Options{
			MinLength:      conf.MinLength,
			SameChromosome: conf.SameChromosome,
		})
		hits, stats, err := c.Classify(records)
		if err != nil {
			return err
		}
		o.Stats = stats

		if err := WriteReportFile(conf.Output, hits); err != nil {
			return err
		}
		o.Hits = hits

		event := log.Info().
			Int("records", stats.Records).
			Int("off_target", stats.OffTarget).
			Int("reported", stats.Reported).
			Int("amplicons", stats.Amplicons)
		if len(targets) > 0 {
			o.Clean = clean(targets, hits)
			event = event.Int("targets", len(targets)).Int("clean_targets", len(o.Clean))
			log.Debug().Strs("targets", o.Clean).Msg("targets without off-target matches")
		}
		event.Msgf("report with the coordinates of off-target regions written to %s", conf.Output)
		return nil
	})
}

// summarize writes the YAML run summary if one was requested.
func (o *Outcome) summarize(conf config.Config, log zerolog.Logger) {
	if conf.Summary == "" {
		return
	}
	if err := WriteSummaryFile(conf.Summary, o); err != nil {
		log.Error().Err(err).Msg("failed to write run summary")
		return
	}
	log.Debug().Str("summary", conf.Summary).Msg("wrote run summary")
}

// clean returns the targets that aren't the amplicon of any hit, in BED order.
func clean(targets []string, hits []Hit) []string {
	matched := make(map[string]bool, len(hits))
	for _, h := range hits {
		matched[h.Amplicon] = true
	}

	out := []string{}
	for _, t := range targets {
		if !matched[t] {
			out = append(out, t)
		}
	}
	return out
}
