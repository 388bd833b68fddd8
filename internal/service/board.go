package service

import (
	"context"
	"sort"
	"strings"

	"github.com/dmedarov/villageride/internal/domain"
	"github.com/dmedarov/villageride/internal/repository"
)

// Row caps for the public board and the admin views.
const (
	boardRowLimit = 200
	adminRowLimit = 500
)

// RideListing is a ride enriched with its display label.
type RideListing struct {
	domain.Ride
	RideTypeLabel string
}

// RequestListing is a ride request enriched with its display labels.
type RequestListing struct {
	domain.RideRequest
	TimeFlexLabel string
	StatusLabel   string
}

// RideSearch holds the optional public ride search filters.
type RideSearch struct {
	From string
	To   string
	Date string
	Type string
}

// RequestSearch holds the optional public ride-request search filters.
type RequestSearch struct {
	From   string
	To     string
	Date   string
	Status string
}

// BoardService builds filtered, sorted views over the store for the public
// board and the admin panel. Read-only; all freshness comes from
// re-querying the store on each call.
type BoardService struct {
	rideRepo    repository.RideRepository
	requestRepo repository.RideRequestRepository
}

// NewBoardService creates a new BoardService.
func NewBoardService(rideRepo repository.RideRepository, requestRepo repository.RideRequestRepository) *BoardService {
	return &BoardService{rideRepo: rideRepo, requestRepo: requestRepo}
}

// Board returns the default public view: active upcoming rides and open
// active upcoming requests, ascending by (date, time), capped.
func (s *BoardService) Board(ctx context.Context) ([]RideListing, []RequestListing, error) {
	today := Today()

	rides, err := s.rideRepo.List(ctx, repository.RideFilter{
		ActiveOnly: true,
		DateFrom:   today,
	})
	if err != nil {
		return nil, nil, err
	}

	requests, err := s.requestRepo.List(ctx, repository.RequestFilter{
		ActiveOnly: true,
		DateFrom:   today,
		Status:     string(domain.RequestStatusOpen),
	})
	if err != nil {
		return nil, nil, err
	}

	return enrichRides(sortRides(rides, false, boardRowLimit)),
		enrichRequests(sortRequests(requests, false, boardRowLimit)),
		nil
}

// SearchRides returns the filtered public ride list. Supplied filters
// combine with AND on top of the always-applied active and upcoming
// predicates.
func (s *BoardService) SearchRides(ctx context.Context, q RideSearch) ([]RideListing, error) {
	rides, err := s.rideRepo.List(ctx, repository.RideFilter{
		ActiveOnly:   true,
		DateFrom:     Today(),
		Date:         strings.TrimSpace(q.Date),
		FromContains: strings.TrimSpace(q.From),
		ToContains:   strings.TrimSpace(q.To),
		RideType:     strings.TrimSpace(q.Type),
	})
	if err != nil {
		return nil, err
	}

	return enrichRides(sortRides(rides, false, boardRowLimit)), nil
}

// SearchRequests returns the filtered public ride-request list. The status
// filter defaults to "open" when unset or blank.
func (s *BoardService) SearchRequests(ctx context.Context, q RequestSearch) ([]RequestListing, error) {
	status := strings.TrimSpace(q.Status)
	if status == "" {
		status = string(domain.RequestStatusOpen)
	}

	requests, err := s.requestRepo.List(ctx, repository.RequestFilter{
		ActiveOnly:   true,
		DateFrom:     Today(),
		Date:         strings.TrimSpace(q.Date),
		FromContains: strings.TrimSpace(q.From),
		ToContains:   strings.TrimSpace(q.To),
		Status:       status,
	})
	if err != nil {
		return nil, err
	}

	return enrichRequests(sortRequests(requests, false, boardRowLimit)), nil
}

// AdminRides returns every ride, including flagged and inactive rows,
// descending by (date, time), capped for moderation.
func (s *BoardService) AdminRides(ctx context.Context) ([]RideListing, error) {
	rides, err := s.rideRepo.List(ctx, repository.RideFilter{})
	if err != nil {
		return nil, err
	}
	return enrichRides(sortRides(rides, true, adminRowLimit)), nil
}

// AdminRequests returns every ride request, descending by (date, time),
// capped for moderation.
func (s *BoardService) AdminRequests(ctx context.Context) ([]RequestListing, error) {
	requests, err := s.requestRepo.List(ctx, repository.RequestFilter{})
	if err != nil {
		return nil, err
	}
	return enrichRequests(sortRequests(requests, true, adminRowLimit)), nil
}

// sortRides orders rides by (date, time) and applies the cap. The sort is
// stable so the store's insertion order remains the tiebreak.
func sortRides(rides []*domain.Ride, descending bool, limit int) []*domain.Ride {
	sort.SliceStable(rides, func(i, j int) bool {
		a, b := rides[i], rides[j]
		if descending {
			a, b = b, a
		}
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.Time < b.Time
	})
	if len(rides) > limit {
		rides = rides[:limit]
	}
	return rides
}

// sortRequests orders ride requests by (date, time) and applies the cap.
func sortRequests(requests []*domain.RideRequest, descending bool, limit int) []*domain.RideRequest {
	sort.SliceStable(requests, func(i, j int) bool {
		a, b := requests[i], requests[j]
		if descending {
			a, b = b, a
		}
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.Time < b.Time
	})
	if len(requests) > limit {
		requests = requests[:limit]
	}
	return requests
}

func enrichRides(rides []*domain.Ride) []RideListing {
	listings := make([]RideListing, 0, len(rides))
	for _, r := range rides {
		listings = append(listings, RideListing{
			Ride:          *r,
			RideTypeLabel: RideTypeLabel(r.RideType),
		})
	}
	return listings
}

func enrichRequests(requests []*domain.RideRequest) []RequestListing {
	listings := make([]RequestListing, 0, len(requests))
	for _, r := range requests {
		listings = append(listings, RequestListing{
			RideRequest:   *r,
			TimeFlexLabel: TimeFlexLabel(r.TimeFlex),
			StatusLabel:   string(r.Status),
		})
	}
	return listings
}
