package summarize

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"traveldeals/models"
	"traveldeals/services"
	"traveldeals/utils"
)

// SummaryClient produces one hotel's review summary.
type SummaryClient interface {
	Summarize(ctx context.Context, hotelName string, reviewTexts []string) (models.ReviewSummary, error)
}

// Cache is a JSON key-value store for generated summaries. A nil Cache
// disables caching.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
}

// Options control one summarization run.
type Options struct {
	Force              bool   // regenerate even when a cached summary exists
	HotelFilter        string // only this hotel (canonical match), empty = all
	MaxNew             int    // stop after this many new summaries, 0 = unlimited
	MaxReviewsPerHotel int    // cap reviews sent per hotel, 0 = all
	TestSingle         bool   // only process the first hotel
}

// Service runs review summarization over a batch of scraped ratings.
type Service struct {
	client  SummaryClient
	cache   Cache
	limiter *rate.Limiter
	// existing holds summaries recovered from the previous output file,
	// keyed by canonical hotel name.
	existing map[string]*models.ReviewSummary
	// saveProgress persists the batch state after every hotel so reruns
	// pick up where a halted run left off.
	saveProgress func([]models.HotelRating) error

	retryBase time.Duration
	retryMax  time.Duration
}

// NewService wires a summarization run. existing may be nil; saveProgress
// must not be.
func NewService(client SummaryClient, cache Cache, callsPerSec float64, existing map[string]*models.ReviewSummary, saveProgress func([]models.HotelRating) error) *Service {
	if callsPerSec <= 0 {
		callsPerSec = 1
	}
	return &Service{
		client:       client,
		cache:        cache,
		limiter:      rate.NewLimiter(rate.Limit(callsPerSec), 1),
		existing:     existing,
		saveProgress: saveProgress,
		retryBase:    2 * time.Second,
		retryMax:     10 * time.Second,
	}
}

const summaryCachePrefix = "summary:"

// Run summarizes each rated hotel in order. Per-hotel failures keep the
// rating unsummarized and continue; a content-safety block persists progress
// and halts the remaining batch by returning ErrSafetyBlocked. The returned
// slice covers every processed hotel; the persisted file always covers the
// whole input batch so summaries from earlier runs survive an early stop.
func (s *Service) Run(ctx context.Context, ratings []models.HotelRating, opts Options) ([]models.HotelRating, error) {
	all := ratings
	if opts.HotelFilter != "" {
		filtered := ratings[:0:0]
		for _, r := range ratings {
			if services.CanonicalHotelKey(r.HotelName) == services.CanonicalHotelKey(opts.HotelFilter) {
				filtered = append(filtered, r)
			}
		}
		if len(filtered) == 0 {
			return nil, errors.New("hotel " + opts.HotelFilter + " not found in ratings file")
		}
		ratings = filtered
	}
	if opts.TestSingle && len(ratings) > 1 {
		log.Warn().Msg("test mode: only processing first hotel")
		ratings = ratings[:1]
	}

	out := make([]models.HotelRating, 0, len(ratings))
	processed := make(map[string]models.HotelRating, len(ratings))
	newSummaries := 0

	for _, rating := range ratings {
		key := services.CanonicalHotelKey(rating.HotelName)

		if !opts.Force {
			if summary := s.lookupCached(ctx, key); summary != nil {
				log.Info().Str("hotel", rating.HotelName).Msg("existing summary found, skipping")
				rating.ReviewSummary = summary
				out = append(out, rating)
				processed[key] = rating
				s.persist(all, processed)
				continue
			}
		}

		if len(rating.Reviews) == 0 {
			log.Warn().Str("hotel", rating.HotelName).Msg("no reviews to summarize")
			out = append(out, rating)
			processed[key] = rating
			s.persist(all, processed)
			continue
		}

		reviews := rating.Reviews
		if opts.MaxReviewsPerHotel > 0 && len(reviews) > opts.MaxReviewsPerHotel {
			reviews = reviews[:opts.MaxReviewsPerHotel]
		}
		texts := make([]string, 0, len(reviews))
		for _, r := range reviews {
			texts = append(texts, r.Text)
		}

		log.Info().Str("hotel", rating.HotelName).Int("reviews", len(texts)).Msg("summarizing")
		if err := s.limiter.Wait(ctx); err != nil {
			return out, err
		}

		var summary models.ReviewSummary
		err := utils.RetryBackoff(3, s.retryBase, s.retryMax, func() error {
			var callErr error
			summary, callErr = s.client.Summarize(ctx, rating.HotelName, texts)
			if errors.Is(callErr, ErrSafetyBlocked) {
				return utils.Permanent(callErr)
			}
			return callErr
		})
		if errors.Is(err, ErrSafetyBlocked) {
			log.Error().Str("hotel", rating.HotelName).Msg("safety block, stopping run")
			out = append(out, rating)
			processed[key] = rating
			s.persist(all, processed)
			return out, ErrSafetyBlocked
		}
		if err != nil {
			log.Error().Err(err).Str("hotel", rating.HotelName).Msg("summarization failed, keeping rating without summary")
			out = append(out, rating)
			processed[key] = rating
			s.persist(all, processed)
			continue
		}

		log.Info().Str("hotel", rating.HotelName).
			Int("good", len(summary.GoodPoints)).
			Int("bad", len(summary.BadPoints)).
			Int("ugly", len(summary.UglyPoints)).
			Msg("summary generated")

		rating.ReviewSummary = &summary
		out = append(out, rating)
		processed[key] = rating
		s.storeCached(ctx, key, &summary)
		s.persist(all, processed)

		newSummaries++
		if opts.MaxNew > 0 && newSummaries >= opts.MaxNew {
			log.Warn().Msg("reached max-new-summaries limit, stopping early")
			break
		}
	}

	return out, nil
}

func (s *Service) lookupCached(ctx context.Context, key string) *models.ReviewSummary {
	if s.cache != nil {
		var summary models.ReviewSummary
		ok, err := s.cache.Get(ctx, summaryCachePrefix+key, &summary)
		if err != nil {
			log.Warn().Err(err).Str("hotel", key).Msg("summary cache lookup failed")
		} else if ok {
			return &summary
		}
	}
	if s.existing != nil {
		return s.existing[key]
	}
	return nil
}

func (s *Service) storeCached(ctx context.Context, key string, summary *models.ReviewSummary) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, summaryCachePrefix+key, summary); err != nil {
		log.Warn().Err(err).Str("hotel", key).Msg("summary cache store failed")
	}
}

// persist writes the whole batch in input order. Hotels this run has not
// reached yet keep their summary from the previous output file, so an early
// stop never drops work a prior run already saved.
func (s *Service) persist(all []models.HotelRating, processed map[string]models.HotelRating) {
	if s.saveProgress == nil {
		return
	}
	snapshot := make([]models.HotelRating, 0, len(all))
	for _, rating := range all {
		key := services.CanonicalHotelKey(rating.HotelName)
		if done, ok := processed[key]; ok {
			snapshot = append(snapshot, done)
			continue
		}
		if summary := s.existing[key]; summary != nil {
			rating.ReviewSummary = summary
		}
		snapshot = append(snapshot, rating)
	}
	if err := s.saveProgress(snapshot); err != nil {
		log.Warn().Err(err).Msg("progress save failed")
	}
}
