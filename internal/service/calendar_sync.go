package service

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"homywork-server/internal/domain"
	"homywork-server/internal/logger"
	"homywork-server/internal/repository"

	"github.com/google/uuid"
)

type calendarSyncService struct {
	syncRepo         repository.CalendarSyncRepository
	availabilityRepo repository.AvailabilityRepository
	propertyRepo     repository.PropertyRepository
	httpClient       *http.Client
}

func NewCalendarSyncService(
	syncRepo repository.CalendarSyncRepository,
	availabilityRepo repository.AvailabilityRepository,
	propertyRepo repository.PropertyRepository,
	httpClient *http.Client,
) CalendarSyncService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &calendarSyncService{
		syncRepo:         syncRepo,
		availabilityRepo: availabilityRepo,
		propertyRepo:     propertyRepo,
		httpClient:       httpClient,
	}
}

func (s *calendarSyncService) CreateSync(ctx context.Context, requester *domain.User, propertyID, platform, feedURL string) (*domain.CalendarSync, error) {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if err := requireOwnership(requester, property.HostID); err != nil {
		return nil, err
	}

	if platform == "" {
		return nil, fmt.Errorf("%w: platform is required", domain.ErrValidation)
	}
	parsed, err := url.Parse(feedURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("%w: feed url must be http or https", domain.ErrValidation)
	}

	sync := &domain.CalendarSync{
		ID:         uuid.New().String(),
		PropertyID: propertyID,
		Platform:   platform,
		URL:        feedURL,
		IsActive:   true,
	}
	if err := s.syncRepo.Create(ctx, sync); err != nil {
		return nil, err
	}
	return sync, nil
}

func (s *calendarSyncService) ListSyncs(ctx context.Context, requester *domain.User, propertyID string) ([]domain.CalendarSync, error) {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if err := requireOwnership(requester, property.HostID); err != nil {
		return nil, err
	}
	return s.syncRepo.ListByProperty(ctx, propertyID)
}

func (s *calendarSyncService) DeleteSync(ctx context.Context, requester *domain.User, syncID string) error {
	sync, err := s.syncRepo.GetByID(ctx, syncID)
	if err != nil {
		return err
	}
	property, err := s.propertyRepo.GetByID(ctx, sync.PropertyID)
	if err != nil {
		return err
	}
	if err := requireOwnership(requester, property.HostID); err != nil {
		return err
	}
	return s.syncRepo.Delete(ctx, syncID)
}

func (s *calendarSyncService) SyncNow(ctx context.Context, requester *domain.User, syncID string) (*domain.CalendarSyncResult, error) {
	sync, err := s.syncRepo.GetByID(ctx, syncID)
	if err != nil {
		return nil, err
	}
	property, err := s.propertyRepo.GetByID(ctx, sync.PropertyID)
	if err != nil {
		return nil, err
	}
	if err := requireOwnership(requester, property.HostID); err != nil {
		return nil, err
	}
	return s.refreshFeed(ctx, sync)
}

// SyncAllActive refreshes every enabled feed. A broken feed is logged and
// skipped; the return value counts feeds refreshed successfully.
func (s *calendarSyncService) SyncAllActive(ctx context.Context) (int, error) {
	log := logger.WithService("calendar-sync")

	syncs, err := s.syncRepo.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active calendar syncs: %w", err)
	}

	refreshed := 0
	for i := range syncs {
		result, err := s.refreshFeed(ctx, &syncs[i])
		if err != nil {
			log.Error("Calendar sync failed", "sync_id", syncs[i].ID, "platform", syncs[i].Platform, "error", err)
			continue
		}
		log.Info("Calendar synced",
			"sync_id", result.SyncID,
			"events", result.EventsFound,
			"dates_blocked", result.DatesBlocked)
		refreshed++
	}
	return refreshed, nil
}

// refreshFeed fetches the ICS feed and replaces the property's ical-sourced
// availability rows with the feed's blocked dates.
func (s *calendarSyncService) refreshFeed(ctx context.Context, sync *domain.CalendarSync) (*domain.CalendarSyncResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sync.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	events, err := parseICSEvents(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	// Expand events into blocked dates, deduplicated. DTEND is exclusive.
	blocked := make(map[time.Time]struct{})
	for _, ev := range events {
		for d := ev.Start; d.Before(ev.End); d = d.AddDate(0, 0, 1) {
			blocked[d] = struct{}{}
		}
	}

	entries := make([]domain.Availability, 0, len(blocked))
	for d := range blocked {
		entries = append(entries, domain.Availability{
			PropertyID:  sync.PropertyID,
			Date:        d,
			IsAvailable: false,
			Source:      domain.AvailabilitySourceICal,
		})
	}

	if err := s.availabilityRepo.DeleteBySource(ctx, sync.PropertyID, domain.AvailabilitySourceICal); err != nil {
		return nil, err
	}
	if len(entries) > 0 {
		if err := s.availabilityRepo.Upsert(ctx, entries); err != nil {
			return nil, err
		}
	}
	if err := s.syncRepo.SetLastSyncedAt(ctx, sync.ID, time.Now()); err != nil {
		return nil, err
	}

	return &domain.CalendarSyncResult{
		SyncID:       sync.ID,
		EventsFound:  len(events),
		DatesBlocked: len(entries),
	}, nil
}

type icsEvent struct {
	Start time.Time
	End   time.Time
}

// parseICSEvents extracts VEVENT date ranges from an ICS stream. Only
// DTSTART/DTEND matter for blocking dates; everything else in the feed is
// ignored. Folded lines (RFC 5545 continuation with leading whitespace) are
// unfolded before parsing.
func parseICSEvents(r io.Reader) ([]icsEvent, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")) && len(lines) > 0 {
			lines[len(lines)-1] += strings.TrimLeft(line, " \t")
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	var events []icsEvent
	var cur *icsEvent
	for _, line := range lines {
		switch {
		case line == "BEGIN:VEVENT":
			cur = &icsEvent{}
		case line == "END:VEVENT":
			if cur != nil && !cur.Start.IsZero() {
				if cur.End.IsZero() || !cur.End.After(cur.Start) {
					// Events without a usable DTEND block a single night.
					cur.End = cur.Start.AddDate(0, 0, 1)
				}
				events = append(events, *cur)
			}
			cur = nil
		case cur != nil && strings.HasPrefix(line, "DTSTART"):
			if t, ok := parseICSDate(line); ok {
				cur.Start = t
			}
		case cur != nil && strings.HasPrefix(line, "DTEND"):
			if t, ok := parseICSDate(line); ok {
				cur.End = t
			}
		}
	}
	return events, nil
}

// parseICSDate parses a DTSTART/DTEND content line. Handles the VALUE=DATE
// form (20240115) and the UTC timestamp form (20240115T140000Z); timestamps
// are truncated to their date.
func parseICSDate(line string) (time.Time, bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return time.Time{}, false
	}
	value := strings.TrimSpace(line[idx+1:])

	if t, err := time.Parse("20060102", value); err == nil {
		return t, true
	}
	if t, err := time.Parse("20060102T150405Z", value); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	if t, err := time.Parse("20060102T150405", value); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}
