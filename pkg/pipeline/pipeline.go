// Package pipeline wires the scan-filter-format-relay flow. A run walks the
// configured sources one at a time, relays every unseen candidate, and
// records each success in the dedup store before moving on. Everything is
// strictly sequential; no error is fatal to the run.
package pipeline

import (
	"animerelay/pkg/config"
	"animerelay/pkg/dedup"
	"animerelay/pkg/filter"
	"animerelay/pkg/format"
	"animerelay/pkg/logger"
	"animerelay/pkg/models"
	"animerelay/pkg/ratelimit"
)

// Pipeline relays new posts from the configured sources to the channel
type Pipeline struct {
	scanner    SourceScanner
	dispatcher Dispatcher
	formatter  *format.Formatter
	store      *dedup.Store
	limiter    ratelimit.Limiter
	sources    []string
	dryRun     bool
	logger     logger.Logger
}

// Options carries the collaborators of a pipeline
type Options struct {
	Scanner    SourceScanner
	Dispatcher Dispatcher
	Formatter  *format.Formatter
	Store      *dedup.Store
	Limiter    ratelimit.Limiter

	// DryRun formats candidates without sending or persisting anything.
	DryRun bool

	Logger logger.Logger
}

// New creates a pipeline over the given collaborators
func New(cfg *config.Config, opts Options) *Pipeline {
	log := opts.Logger
	if log == nil {
		log = logger.GetLogger()
	}
	limiter := opts.Limiter
	if limiter == nil {
		limiter = ratelimit.NewFixedDelay(cfg.Relay.PostDelay)
	}
	formatter := opts.Formatter
	if formatter == nil {
		formatter = format.NewFormatter(cfg.Relay.Footer)
	}
	return &Pipeline{
		scanner:    opts.Scanner,
		dispatcher: opts.Dispatcher,
		formatter:  formatter,
		store:      opts.Store,
		limiter:    limiter,
		sources:    cfg.Scan.Sources,
		dryRun:     opts.DryRun,
		logger:     log,
	}
}

// Result summarizes one pipeline run
type Result struct {
	SourcesScanned int
	SourcesFailed  int
	Candidates     int
	Skipped        int
	Relayed        int
	SendFailures   int
}

// Run processes every configured source once. It always attempts the full
// source list: scan failures skip the source, send failures skip the item
// (leaving it unrecorded so a later run retries it).
func (p *Pipeline) Run() Result {
	ids, fingerprints, err := p.store.Load()
	if err != nil {
		// Already logged by the store; the empty sets keep the run going.
		p.logger.Warn("dedup state incomplete, duplicates may be relayed this run")
	}
	f := filter.New(ids, fingerprints)

	p.logger.InfoWithFields("starting scan", map[string]interface{}{
		"sources": len(p.sources),
		"dry_run": p.dryRun,
	})

	var result Result
	for _, source := range p.sources {
		p.logger.WithField("source", source).Info("checking source")

		posts, err := p.scanner.Scan(source)
		if err != nil {
			p.logger.WithError(err).WithField("source", source).Error("failed to scan source")
			result.SourcesFailed++
			continue
		}
		result.SourcesScanned++
		result.Candidates += len(posts)

		for _, post := range posts {
			if !f.IsNew(post) {
				result.Skipped++
				continue
			}
			if p.relay(post, f) {
				result.Relayed++
			} else {
				result.SendFailures++
			}
		}
	}

	p.logger.InfoWithFields("run complete", map[string]interface{}{
		"sources_scanned": result.SourcesScanned,
		"sources_failed":  result.SourcesFailed,
		"candidates":      result.Candidates,
		"skipped":         result.Skipped,
		"relayed":         result.Relayed,
		"send_failures":   result.SendFailures,
	})

	return result
}

// relay formats and sends one post, recording it on success
func (p *Pipeline) relay(post models.Post, f *filter.Filter) bool {
	msg := p.formatter.Build(post)

	if p.dryRun {
		p.logger.InfoWithFields("dry run, would relay", map[string]interface{}{
			"source": post.Source,
			"id":     post.ID,
			"photo":  msg.PhotoURL,
		})
		f.MarkSeen(post)
		return true
	}

	if err := p.dispatcher.SendPhoto(msg); err != nil {
		p.logger.WithError(err).WithFields(map[string]interface{}{
			"source": post.Source,
			"id":     post.ID,
		}).Error("failed to relay post")
		return false
	}

	f.MarkSeen(post)
	if err := p.store.Save(post.ID, post.Fingerprint); err != nil {
		p.logger.WithError(err).WithFields(map[string]interface{}{
			"source": post.Source,
			"id":     post.ID,
		}).Error("failed to persist dedup record")
	}

	p.logger.InfoWithFields("posted new content", map[string]interface{}{
		"source": post.Source,
		"id":     post.ID,
	})

	p.limiter.Wait()
	return true
}
