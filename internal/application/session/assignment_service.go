package session

import (
	"context"
	"errors"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AssignmentCache is a short-TTL cache for resolved assignments keyed
// by the normalized signal tuple. Implementations fail open: a cache
// error is treated as a miss.
type AssignmentCache interface {
	Get(ctx context.Context, query catalog.AssignmentQuery) (*catalog.CatalogAssignment, bool)
	Set(ctx context.Context, query catalog.AssignmentQuery, assignment *catalog.CatalogAssignment)
}

// AssignmentService resolves the catalog and locale for a session from
// its signal tuple
type AssignmentService struct {
	catalogRepo catalog.CatalogRepository
	cache       AssignmentCache
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(
	catalogRepo catalog.CatalogRepository,
	cache AssignmentCache,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *AssignmentService {
	return &AssignmentService{
		catalogRepo: catalogRepo,
		cache:       cache,
		publisher:   publisher,
		logger:      logger,
	}
}

// AssignCatalog resolves the query signals to a catalog and locale in
// a single ranked lookup. No match is fatal to session initialization;
// the error propagates as a DomainError. Identical inputs yield
// identical assignments.
func (s *AssignmentService) AssignCatalog(ctx context.Context, req AssignCatalogRequest) (*AssignmentResponse, error) {
	if req.UserType == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "User type is required")
	}

	query := catalog.NormalizeQuery(catalog.AssignmentQuery{
		Country:  req.Country,
		UserType: req.UserType,
		Roles:    req.Roles,
		Tier:     req.Tier,
	})

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, query); ok {
			resp := ToAssignmentResponse(cached)
			return &resp, nil
		}
	}

	assignment, err := s.catalogRepo.AssignCatalog(ctx, query)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("no catalog matches session signals",
				zap.String("country", query.Country),
				zap.String("user_type", query.UserType),
				zap.String("tier", query.Tier))
			return nil, shared.NewDomainError("NO_CATALOG_MATCH",
				"No catalog could be assigned for the session signals")
		}
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, query, assignment)
	}

	if s.publisher != nil {
		event := catalog.NewCatalogAssignedEvent(assignment)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish assignment event", zap.Error(err))
		}
	}

	resp := ToAssignmentResponse(assignment)
	return &resp, nil
}

// InitializeSession resolves the full session bootstrap context:
// detected country, locale, and catalog assignment
func (s *AssignmentService) InitializeSession(ctx context.Context, localeService *LocaleService, acceptLanguage, clientIP string, req AssignCatalogRequest) (*SessionContextResponse, error) {
	country := req.Country
	if country == "" {
		country = localeService.DetectCountryFromIP(ctx, clientIP)
		req.Country = country
	}

	localeCode := localeService.ResolveLocale(acceptLanguage, country)

	assignment, err := s.AssignCatalog(ctx, req)
	if err != nil {
		return nil, err
	}

	return &SessionContextResponse{
		LocaleCode:      localeCode,
		DetectedCountry: country,
		Assignment:      *assignment,
	}, nil
}
