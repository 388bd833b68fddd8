package tests

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dmedarov/villageride/internal/domain"
	"github.com/dmedarov/villageride/internal/service"
)

func tomorrowPlus(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
}

// ──────────────────────────────────────────────
// 2. BOARD AND SEARCH VIEWS
// ──────────────────────────────────────────────

func newBoardFixture() (*MockRideRepository, *MockRideRequestRepository, *service.BoardService) {
	rideRepo := NewMockRideRepository()
	requestRepo := NewMockRideRequestRepository()
	return rideRepo, requestRepo, service.NewBoardService(rideRepo, requestRepo)
}

func seedRide(repo *MockRideRepository, ride domain.Ride) {
	if ride.Driver == "" {
		ride.Driver = "Иван"
	}
	if ride.Phone == "" {
		ride.Phone = "0888000000"
	}
	if ride.FromLocation == "" {
		ride.FromLocation = "Лозен"
	}
	if ride.ToLocation == "" {
		ride.ToLocation = "София"
	}
	if ride.Time == "" {
		ride.Time = "08:00"
	}
	if ride.RideType == "" {
		ride.RideType = "work"
	}
	repo.AddRide(&ride)
}

func seedRequest(repo *MockRideRequestRepository, req domain.RideRequest) {
	if req.Passenger == "" {
		req.Passenger = "Мария"
	}
	if req.Phone == "" {
		req.Phone = "0899000000"
	}
	if req.FromLocation == "" {
		req.FromLocation = "Лозен"
	}
	if req.ToLocation == "" {
		req.ToLocation = "София"
	}
	if req.Time == "" {
		req.Time = "08:00"
	}
	if req.TimeFlex == "" {
		req.TimeFlex = "flex_30m"
	}
	if req.Status == "" {
		req.Status = domain.RequestStatusOpen
	}
	repo.AddRequest(&req)
}

func TestBoard_ExcludesPastAndInactiveRides(t *testing.T) {
	t.Parallel()

	rideRepo, _, board := newBoardFixture()
	seedRide(rideRepo, domain.Ride{Driver: "past", Date: yesterday(), IsActive: true})
	seedRide(rideRepo, domain.Ride{Driver: "inactive", Date: tomorrow(), IsActive: false})
	seedRide(rideRepo, domain.Ride{Driver: "visible", Date: tomorrow(), IsActive: true})

	rides, _, err := board.Board(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(rides) != 1 {
		t.Fatalf("expected 1 ride, got %d", len(rides))
	}
	if rides[0].Driver != "visible" {
		t.Errorf("expected the visible ride, got %s", rides[0].Driver)
	}
}

func TestBoard_ExcludesClosedRequests(t *testing.T) {
	t.Parallel()

	_, requestRepo, board := newBoardFixture()
	seedRequest(requestRepo, domain.RideRequest{Passenger: "closed", Date: tomorrow(), IsActive: true, Status: domain.RequestStatusClosed})
	seedRequest(requestRepo, domain.RideRequest{Passenger: "open", Date: tomorrow(), IsActive: true})

	_, requests, err := board.Board(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(requests))
	}
	if requests[0].Passenger != "open" {
		t.Errorf("expected the open request, got %s", requests[0].Passenger)
	}
}

func TestBoard_OrdersByDateThenTimeAscending(t *testing.T) {
	t.Parallel()

	rideRepo, _, board := newBoardFixture()
	later := tomorrowPlus(2)
	seedRide(rideRepo, domain.Ride{Driver: "third", Date: later, Time: "09:00", IsActive: true})
	seedRide(rideRepo, domain.Ride{Driver: "second", Date: later, Time: "06:00", IsActive: true})
	seedRide(rideRepo, domain.Ride{Driver: "first", Date: tomorrow(), Time: "18:00", IsActive: true})

	rides, _, err := board.Board(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	got := make([]string, len(rides))
	for i, r := range rides {
		got[i] = r.Driver
	}
	want := []string{"first", "second", "third"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestBoard_EqualDateTime_KeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	rideRepo, _, board := newBoardFixture()
	seedRide(rideRepo, domain.Ride{Driver: "older", Date: tomorrow(), Time: "08:00", IsActive: true})
	seedRide(rideRepo, domain.Ride{Driver: "newer", Date: tomorrow(), Time: "08:00", IsActive: true})

	rides, _, err := board.Board(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(rides) != 2 || rides[0].Driver != "older" || rides[1].Driver != "newer" {
		t.Errorf("expected insertion order to break the tie, got %+v", rides)
	}
}

func TestBoard_CapsAtTwoHundredRows(t *testing.T) {
	t.Parallel()

	rideRepo, _, board := newBoardFixture()
	for i := 0; i < 205; i++ {
		seedRide(rideRepo, domain.Ride{
			Driver:   fmt.Sprintf("driver-%d", i),
			Date:     tomorrow(),
			Time:     fmt.Sprintf("%02d:%02d", i/60, i%60),
			IsActive: true,
		})
	}

	rides, _, err := board.Board(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(rides) != 200 {
		t.Errorf("expected 200 rides, got %d", len(rides))
	}
}

func TestBoard_RepeatedCalls_ReturnSameView(t *testing.T) {
	t.Parallel()

	rideRepo, _, board := newBoardFixture()
	seedRide(rideRepo, domain.Ride{Driver: "a", Date: tomorrow(), IsActive: true})
	seedRide(rideRepo, domain.Ride{Driver: "b", Date: tomorrow(), IsActive: true})

	first, _, err := board.Board(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	second, _, err := board.Board(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("expected identical views, got %d and %d rows", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("row %d differs: %d vs %d", i, first[i].ID, second[i].ID)
		}
	}
}

func TestSearchRides_LocationMatch_IsCaseInsensitiveSubstring(t *testing.T) {
	t.Parallel()

	rideRepo, _, board := newBoardFixture()
	seedRide(rideRepo, domain.Ride{Driver: "match", FromLocation: "SOFIA CENTER", Date: tomorrow(), IsActive: true})
	seedRide(rideRepo, domain.Ride{Driver: "other", FromLocation: "Plovdiv", Date: tomorrow(), IsActive: true})

	rides, err := board.SearchRides(context.Background(), service.RideSearch{From: "sofia"})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(rides) != 1 {
		t.Fatalf("expected 1 ride, got %d", len(rides))
	}
	if rides[0].Driver != "match" {
		t.Errorf("expected the matching ride, got %s", rides[0].Driver)
	}
}

func TestSearchRides_CombinesFiltersWithAnd(t *testing.T) {
	t.Parallel()

	rideRepo, _, board := newBoardFixture()
	date := tomorrow()
	seedRide(rideRepo, domain.Ride{Driver: "match", FromLocation: "Лозен", ToLocation: "София", Date: date, RideType: "work", IsActive: true})
	seedRide(rideRepo, domain.Ride{Driver: "wrong type", FromLocation: "Лозен", ToLocation: "София", Date: date, RideType: "school", IsActive: true})
	seedRide(rideRepo, domain.Ride{Driver: "wrong date", FromLocation: "Лозен", ToLocation: "София", Date: tomorrowPlus(3), RideType: "work", IsActive: true})

	rides, err := board.SearchRides(context.Background(), service.RideSearch{
		From: "лозен",
		To:   "софия",
		Date: date,
		Type: "work",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(rides) != 1 || rides[0].Driver != "match" {
		t.Errorf("expected exactly the matching ride, got %+v", rides)
	}
}

func TestSearchRequests_BlankStatus_DefaultsToOpen(t *testing.T) {
	t.Parallel()

	_, requestRepo, board := newBoardFixture()
	seedRequest(requestRepo, domain.RideRequest{Passenger: "open", Date: tomorrow(), IsActive: true})
	seedRequest(requestRepo, domain.RideRequest{Passenger: "closed", Date: tomorrow(), IsActive: true, Status: domain.RequestStatusClosed})

	requests, err := board.SearchRequests(context.Background(), service.RequestSearch{Status: "  "})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(requests) != 1 || requests[0].Passenger != "open" {
		t.Errorf("expected only the open request, got %+v", requests)
	}

	requests, err = board.SearchRequests(context.Background(), service.RequestSearch{Status: "closed"})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(requests) != 1 || requests[0].Passenger != "closed" {
		t.Errorf("expected only the closed request, got %+v", requests)
	}
}

func TestBoard_EnrichesRowsWithLabels(t *testing.T) {
	t.Parallel()

	rideRepo, requestRepo, board := newBoardFixture()
	seedRide(rideRepo, domain.Ride{Date: tomorrow(), RideType: "healthcare", IsActive: true})
	seedRide(rideRepo, domain.Ride{Date: tomorrow(), RideType: "mystery", IsActive: true})
	seedRequest(requestRepo, domain.RideRequest{Date: tomorrow(), TimeFlex: "morning", IsActive: true})

	rides, requests, err := board.Board(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if rides[0].RideTypeLabel != "За здраве/болница" {
		t.Errorf("expected healthcare label, got %q", rides[0].RideTypeLabel)
	}
	if rides[1].RideTypeLabel != "Друг превоз" {
		t.Errorf("expected fallback label for unknown type, got %q", rides[1].RideTypeLabel)
	}
	if requests[0].TimeFlexLabel != "По-скоро сутрин" {
		t.Errorf("expected morning label, got %q", requests[0].TimeFlexLabel)
	}
	if requests[0].StatusLabel != "open" {
		t.Errorf("expected open status label, got %q", requests[0].StatusLabel)
	}
}

func TestAdminRides_IncludesInactiveAndOrdersDescending(t *testing.T) {
	t.Parallel()

	rideRepo, _, board := newBoardFixture()
	seedRide(rideRepo, domain.Ride{Driver: "earliest", Date: yesterday(), IsActive: false})
	seedRide(rideRepo, domain.Ride{Driver: "latest", Date: tomorrowPlus(2), IsActive: true})
	seedRide(rideRepo, domain.Ride{Driver: "middle", Date: tomorrow(), IsActive: true, IsFlagged: true})

	rides, err := board.AdminRides(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(rides) != 3 {
		t.Fatalf("expected all 3 rides, got %d", len(rides))
	}
	got := []string{rides[0].Driver, rides[1].Driver, rides[2].Driver}
	want := []string{"latest", "middle", "earliest"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestAdminRequests_IncludesClosedAndInactive(t *testing.T) {
	t.Parallel()

	_, requestRepo, board := newBoardFixture()
	seedRequest(requestRepo, domain.RideRequest{Passenger: "closed", Date: tomorrow(), IsActive: true, Status: domain.RequestStatusClosed})
	seedRequest(requestRepo, domain.RideRequest{Passenger: "inactive", Date: tomorrow(), IsActive: false})

	requests, err := board.AdminRequests(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(requests) != 2 {
		t.Errorf("expected 2 requests, got %d", len(requests))
	}
}
