package suggestion

import (
	"context"
	"fmt"
	"time"

	"wayfinder/domain"
	"wayfinder/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	// best-effort context lookup; a miss degrades the signal, never the request
	contextLookupTimeout = 2 * time.Second

	// hard deadline for collaborators whose failure fails the request
	collaboratorTimeout = 10 * time.Second

	// how many recent suggestions join the exclusion window
	recentSuggestionWindow = 20

	// deadline for the post-commit history write
	eventWriteTimeout = 5 * time.Second
)

// Service is the request pipeline: validate, build context, admit, fetch,
// filter, score, explain, optionally build a route, assemble. Strictly
// linear, no backtracking; the admission step is the only one with an
// irreversible side effect.
type Service struct {
	provider    PlaceProvider
	contextProv ContextProvider
	routes      RouteOptimizer
	exclusions  ExclusionStore
	profiles    ProfileStore
	events      EventRecorder
	admission   Admission
	engine      *Engine
	opts        ScoringOptions
}

func NewService(
	provider PlaceProvider,
	contextProv ContextProvider,
	routes RouteOptimizer,
	exclusions ExclusionStore,
	profiles ProfileStore,
	events EventRecorder,
	admission Admission,
	opts ScoringOptions,
) *Service {
	return &Service{
		provider:    provider,
		contextProv: contextProv,
		routes:      routes,
		exclusions:  exclusions,
		profiles:    profiles,
		events:      events,
		admission:   admission,
		engine:      NewEngine(opts),
		opts:        opts,
	}
}

// CreateSuggestions runs the full pipeline for one request.
//
// The quota credit is charged after validation and before any costly work.
// A failure downstream of admission does NOT refund the credit: the charge
// pays for the attempt, not the result. Likewise a crash between admission
// and assembly leaves a consumed credit with no delivered response; quota
// integrity is favored over request-level atomicity.
func (s *Service) CreateSuggestions(ctx context.Context, req domain.SuggestionRequest) (*domain.SuggestionResult, error) {
	started := time.Now()
	intentLabel := string(req.Intent)

	// 1) validate against intent policy — no side effects yet, always retryable
	stepStart := time.Now()
	if violations := ValidateRequest(req); len(violations) > 0 {
		s.observe("validate", stepStart, "rejected")
		PipelineRequestsTotal.WithLabelValues(intentLabel, "validation_failed").Inc()
		return nil, &ValidationError{Violations: violations}
	}
	s.observe("validate", stepStart, "ok")

	requestID := uuid.NewString()
	tid := TraceIDFromContext(ctx)
	logger.Debug("suggestion_request",
		"trace_id", tid,
		"request_id", requestID,
		"user_id", req.UserID,
		"intent", req.Intent,
		"radius_m", req.RadiusMeters,
	)

	// 2) real-time context, best-effort
	insights := s.buildInsights(ctx, req)

	// 3) admission — the only irreversible step; never retried here
	stepStart = time.Now()
	if err := s.admission.InitializeIfNeeded(ctx, req.UserID); err != nil {
		logger.Warn("quota init failed", "request_id", requestID, "user_id", req.UserID, "error", err)
	}
	if !s.admission.TryConsume(ctx, req.UserID, 1) {
		s.observe("admit", stepStart, "denied")
		PipelineRequestsTotal.WithLabelValues(intentLabel, "quota_exceeded").Inc()
		return nil, ErrQuotaExceeded
	}
	s.observe("admit", stepStart, "ok")

	// 4) raw candidates from the place provider
	stepStart = time.Now()
	candidates, err := s.fetchCandidates(ctx, req)
	if err != nil {
		s.observe("fetch_candidates", stepStart, "failed")
		PipelineRequestsTotal.WithLabelValues(intentLabel, "provider_failed").Inc()
		return nil, &CollaboratorError{Collaborator: "place_search", Err: err}
	}
	s.observe("fetch_candidates", stepStart, "ok")

	// 5) exclusion window — authenticated users only
	stepStart = time.Now()
	exclusions := s.loadExclusions(ctx, req.UserID)
	s.observe("load_exclusions", stepStart, "ok")

	// 6) intent category policy + exclusions
	stepStart = time.Now()
	filtered := ApplyIntentFilter(req.Intent, candidates, exclusions)
	s.observe("filter_intent", stepStart, "ok")

	// 7) score and personalize
	stepStart = time.Now()
	sctx := s.buildScoringContext(ctx, req, requestID, insights)
	scored := s.engine.ScoreAll(sctx, filtered)
	scored = applyDiversity(scored, DiversityFactor(req.Intent))
	s.observe("score", stepStart, "ok")

	// 8) explain each selection
	stepStart = time.Now()
	for i := range scored {
		matched := matchedPreferences(sctx.Taste, scored[i].Place)
		novelty := noveltyScore(sctx,
			implicitScore(sctx.Implicit, scored[i].Place),
			explicitScore(sctx.Taste, scored[i].Place))
		scored[i].Reasons = GenerateReasons(
			req.Intent,
			scored[i].Place,
			scored[i].DistanceMeters,
			matched,
			novelty,
			contextualReasons(insights, scored[i].Place),
		)
	}
	s.observe("explain", stepStart, "ok")

	// 9) route building, ROUTE_PLANNING only
	var route *domain.RouteView
	if ShouldBuildRoute(req.Intent) {
		stepStart = time.Now()
		route, err = s.buildRoute(ctx, req, scored)
		if err != nil {
			s.observe("build_route", stepStart, "failed")
			PipelineRequestsTotal.WithLabelValues(intentLabel, "route_failed").Inc()
			return nil, &CollaboratorError{Collaborator: "route_optimizer", Err: err}
		}
		s.observe("build_route", stepStart, "ok")
	}

	// 10) assemble
	result := s.assemble(req, requestID, scored, route, sctx, insights, len(exclusions))

	PipelineRequestsTotal.WithLabelValues(intentLabel, "ok").Inc()

	// post-commit: history is telemetry, it can never affect the outcome
	if s.events != nil {
		go s.recordEvent(req, requestID, result, insights, time.Since(started))
	}

	return result, nil
}

// buildInsights asks the context collaborator with a short deadline; any
// failure yields empty insights and a neutral context score downstream.
func (s *Service) buildInsights(ctx context.Context, req domain.SuggestionRequest) domain.ContextInsights {
	if s.contextProv == nil {
		return domain.ContextInsights{}
	}

	stepStart := time.Now()
	cctx, cancel := context.WithTimeout(ctx, contextLookupTimeout)
	defer cancel()

	insights, err := s.contextProv.GetInsights(cctx, req.Latitude, req.Longitude, time.Now())
	if err != nil {
		logger.Debug("context lookup degraded", "error", err)
		s.observe("build_context", stepStart, "degraded")
		return domain.ContextInsights{}
	}

	s.observe("build_context", stepStart, "ok")
	return insights
}

func (s *Service) fetchCandidates(ctx context.Context, req domain.SuggestionRequest) ([]domain.Place, error) {
	fctx, cancel := context.WithTimeout(ctx, collaboratorTimeout)
	defer cancel()

	places, err := s.provider.Search(fctx, PlaceQuery{
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
		RadiusMeters:        req.RadiusMeters,
		BudgetLevel:         req.BudgetLevel,
		IncludeCategories:   req.IncludeCategories,
		ExcludeCategories:   req.ExcludeCategories,
		DietaryRestrictions: req.DietaryRestrictions,
	})
	if err != nil {
		return nil, fmt.Errorf("search places: %w", err)
	}

	if len(places) > s.opts.MaxCandidates {
		places = places[:s.opts.MaxCandidates]
	}

	return places, nil
}

// loadExclusions merges the user's permanent blocks with their recent
// suggestions. Anonymous users skip the step; lookup errors degrade to an
// empty set rather than failing the request.
func (s *Service) loadExclusions(ctx context.Context, userID string) map[string]struct{} {
	if userID == "" || s.exclusions == nil {
		return map[string]struct{}{}
	}

	merged := map[string]struct{}{}

	active, err := s.exclusions.GetActiveExclusions(ctx, userID)
	if err != nil {
		logger.Warn("exclusion lookup degraded", "user_id", userID, "error", err)
	} else {
		for id := range active {
			merged[id] = struct{}{}
		}
	}

	recent, err := s.exclusions.GetRecentSuggestions(ctx, userID, recentSuggestionWindow)
	if err != nil {
		logger.Warn("recent suggestions lookup degraded", "user_id", userID, "error", err)
	} else {
		for _, id := range recent {
			merged[id] = struct{}{}
		}
	}

	return merged
}

func (s *Service) buildScoringContext(ctx context.Context, req domain.SuggestionRequest, requestID string, insights domain.ContextInsights) ScoringContext {
	sctx := ScoringContext{
		UserID:    req.UserID,
		RequestID: requestID,
		SessionID: uuid.NewString(),
		Origin: domain.Location{
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
		},
		RequestedAt: time.Now(),
		Insights:    insights,
		FreeText:    req.FreeText,
		Debug:       req.Debug,
	}

	if req.UserID == "" || s.profiles == nil {
		return sctx
	}

	taste, err := s.profiles.GetTasteProfile(ctx, req.UserID)
	if err != nil {
		logger.Warn("taste profile lookup degraded", "user_id", req.UserID, "error", err)
	} else {
		sctx.Taste = taste
	}

	implicit, err := s.profiles.GetImplicitProfile(ctx, req.UserID)
	if err != nil {
		logger.Warn("implicit profile lookup degraded", "user_id", req.UserID, "error", err)
	} else {
		sctx.Implicit = implicit
	}

	return sctx
}

func (s *Service) buildRoute(ctx context.Context, req domain.SuggestionRequest, scored []domain.ScoredPlace) (*domain.RouteView, error) {
	if len(scored) == 0 {
		return &domain.RouteView{Stops: []domain.RouteStop{}, Mode: "walking"}, nil
	}

	places := make([]domain.Place, 0, len(scored))
	for _, sp := range scored {
		places = append(places, sp.Place)
	}

	maxWalk := MaxWalkingDistance(req.Intent, req.WalkingDistanceMeters)

	rctx, cancel := context.WithTimeout(ctx, collaboratorTimeout)
	defer cancel()

	route, err := s.routes.Optimize(rctx, places, maxWalk, "walking")
	if err != nil {
		return nil, fmt.Errorf("optimize route: %w", err)
	}

	return &route, nil
}

func (s *Service) assemble(
	req domain.SuggestionRequest,
	requestID string,
	scored []domain.ScoredPlace,
	route *domain.RouteView,
	sctx ScoringContext,
	insights domain.ContextInsights,
	exclusionsApplied int,
) *domain.SuggestionResult {
	categoryFilter := "none"
	switch req.Intent {
	case domain.IntentFoodOnly:
		categoryFilter = "food_only"
	case domain.IntentActivityOnly:
		categoryFilter = "exclude_food"
	}

	result := &domain.SuggestionResult{
		Filters: domain.FilterInfo{
			Intent:              req.Intent,
			CategoryFilter:      categoryFilter,
			ExclusionsApplied:   exclusionsApplied,
			BudgetLevel:         req.BudgetLevel,
			IncludeCategories:   req.IncludeCategories,
			ExcludeCategories:   req.ExcludeCategories,
			DietaryRestrictions: req.DietaryRestrictions,
			MinimumRating:       s.opts.MinimumRating,
		},
		Meta: domain.SuggestionMeta{
			RequestID:       requestID,
			SessionID:       sctx.SessionID,
			IsPersonalized:  sctx.Personalized(),
			ContextApplied:  !insights.Empty(),
			DiversityFactor: DiversityFactor(req.Intent),
			GeneratedAt:     time.Now(),
		},
	}

	// a route response carries the route, never a parallel suggestion list
	if route != nil {
		result.Route = route
		result.TotalCount = len(route.Stops)
		return result
	}

	result.Suggestions = scored
	result.TotalCount = len(scored)
	return result
}

// recordEvent writes the history row on its own deadline, detached from the
// request context so a slow or failing write cannot touch the response.
func (s *Service) recordEvent(
	req domain.SuggestionRequest,
	requestID string,
	result *domain.SuggestionResult,
	insights domain.ContextInsights,
	took time.Duration,
) {
	ctx, cancel := context.WithTimeout(context.Background(), eventWriteTimeout)
	defer cancel()

	placeIDs := make([]string, 0, len(result.Suggestions))
	for _, sp := range result.Suggestions {
		placeIDs = append(placeIDs, sp.Place.ID)
	}
	if result.Route != nil {
		for _, stop := range result.Route.Stops {
			placeIDs = append(placeIDs, stop.Place.ID)
		}
	}

	event := domain.SuggestionEvent{
		RequestID:       requestID,
		UserID:          req.UserID,
		Intent:          req.Intent,
		PlaceIDs:        placeIDs,
		SuggestionCount: result.TotalCount,
		RouteBuilt:      result.Route != nil,
		DurationMillis:  took.Milliseconds(),
		Context: datatypes.JSONMap{
			"weather":     insights.Weather,
			"time_of_day": insights.TimeOfDay,
			"season":      insights.Season,
			"radius_m":    req.RadiusMeters,
		},
	}

	if err := s.events.SaveEvent(ctx, event); err != nil {
		logger.Warn("failed to record suggestion event", "request_id", requestID, "error", err)
	}
}

func (s *Service) observe(step string, start time.Time, outcome string) {
	PipelineStepDuration.WithLabelValues(step, outcome).Observe(time.Since(start).Seconds())
}
