package realtimedb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-SeatLive/internal/domain"
)

const (
	statisticsRoot = "occupancy_statistics"
	seatStatusRoot = "seat_status"

	// lastUpdateLayout формат last_update, который пишет детектор
	lastUpdateLayout = "2006-01-02 15:04:05"
)

// Client REST клиент realtime database (Firebase-совместимый протокол: путь + ".json")
type Client struct {
	baseURL    string
	authToken  string
	location   *time.Location
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента realtime database
// loc используется для разбора дат detail_data и last_update
func NewClient(baseURL, authToken string, timeout time.Duration, loc *time.Location, log Logger) *Client {
	if loc == nil {
		loc = time.UTC
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		authToken: authToken,
		location:  loc,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// WriteDetail заменяет detail_data одного дня недели week
func (c *Client) WriteDetail(ctx context.Context, week domain.WeekKey, day time.Time, records []domain.DetailRecord) error {
	entries := make([]detailEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, detailEntry{
			IntervalIndex: rec.IntervalIndex,
			OccupiedCount: rec.OccupiedCount,
			TotalSeats:    rec.TotalSeats,
		})
	}

	path := fmt.Sprintf("%s/%s/detail_data/%s", statisticsRoot, week, day.Format(domain.DateFormat))
	if err := c.do(ctx, http.MethodPut, path, entries, nil); err != nil {
		return fmt.Errorf("WriteDetail %s: %w", path, err)
	}

	c.log.Info("realtimedb: detail_data written for %s/%s (%d records)", week, day.Format(domain.DateFormat), len(entries))
	return nil
}

// ReadAllDetail читает detail_data недели
func (c *Client) ReadAllDetail(ctx context.Context, week domain.WeekKey) (map[string][]domain.DetailRecord, error) {
	var raw map[string][]detailEntry

	path := fmt.Sprintf("%s/%s/detail_data", statisticsRoot, week)
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, fmt.Errorf("ReadAllDetail %s: %w", path, err)
	}

	result := make(map[string][]domain.DetailRecord, len(raw))
	for dayKey, entries := range raw {
		day, err := time.ParseInLocation(domain.DateFormat, dayKey, c.location)
		if err != nil {
			return nil, fmt.Errorf("%w: ReadAllDetail - bad day key %q: %v", ErrInvalidResponse, dayKey, err)
		}

		records := make([]domain.DetailRecord, 0, len(entries))
		for _, e := range entries {
			records = append(records, domain.DetailRecord{
				DayDate:       day,
				IntervalIndex: e.IntervalIndex,
				OccupiedCount: e.OccupiedCount,
				TotalSeats:    e.TotalSeats,
			})
		}
		sort.Slice(records, func(i, j int) bool {
			return records[i].IntervalIndex < records[j].IntervalIndex
		})
		result[dayKey] = records
	}

	return result, nil
}

// WriteAggregated заменяет aggregated_data недели
func (c *Client) WriteAggregated(ctx context.Context, week domain.WeekKey, records []domain.AggregatedRecord) error {
	payload := make(map[string][]aggregatedEntry)
	for _, rec := range records {
		key := rec.Weekday.String()
		payload[key] = append(payload[key], aggregatedEntry{
			IntervalIndex:   rec.IntervalIndex,
			AverageOccupied: rec.AverageOccupied,
		})
	}

	path := fmt.Sprintf("%s/%s/aggregated_data", statisticsRoot, week)
	if err := c.do(ctx, http.MethodPut, path, payload, nil); err != nil {
		return fmt.Errorf("WriteAggregated %s: %w", path, err)
	}

	c.log.Info("realtimedb: aggregated_data written for %s (%d records)", week, len(records))
	return nil
}

// ReadAggregated читает aggregated_data недели
func (c *Client) ReadAggregated(ctx context.Context, week domain.WeekKey) ([]domain.AggregatedRecord, error) {
	var raw map[string][]aggregatedEntry

	path := fmt.Sprintf("%s/%s/aggregated_data", statisticsRoot, week)
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, fmt.Errorf("ReadAggregated %s: %w", path, err)
	}

	records := make([]domain.AggregatedRecord, 0)
	for key, entries := range raw {
		weekday, ok := domain.ParseWeekday(key)
		if !ok {
			c.log.Warn("realtimedb: unknown weekday %q in %s, skipped", key, path)
			continue
		}
		for _, e := range entries {
			records = append(records, domain.AggregatedRecord{
				Weekday:         weekday,
				IntervalIndex:   e.IntervalIndex,
				AverageOccupied: e.AverageOccupied,
			})
		}
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Weekday != records[j].Weekday {
			return records[i].Weekday < records[j].Weekday
		}
		return records[i].IntervalIndex < records[j].IntervalIndex
	})

	return records, nil
}

// GetSeatStatuses читает /seat_status
func (c *Client) GetSeatStatuses(ctx context.Context) ([]domain.SeatStatus, error) {
	var raw map[string]seatStatusEntry
	if err := c.do(ctx, http.MethodGet, seatStatusRoot, nil, &raw); err != nil {
		return nil, fmt.Errorf("GetSeatStatuses: %w", err)
	}

	statuses := make([]domain.SeatStatus, 0, len(raw))
	for seatID, e := range raw {
		status := domain.SeatStatus{
			SeatID:   seatID,
			Status:   domain.SeatState(e.Status),
			StatusZh: e.StatusZh,
		}
		if e.LastUpdate != "" {
			if t, err := time.ParseInLocation(lastUpdateLayout, e.LastUpdate, c.location); err == nil {
				status.LastUpdate = t
			} else if t, err := time.Parse(time.RFC3339, e.LastUpdate); err == nil {
				status.LastUpdate = t
			} else {
				c.log.Warn("realtimedb: seat %s has unparsable last_update %q", seatID, e.LastUpdate)
			}
		}
		statuses = append(statuses, status)
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].SeatID < statuses[j].SeatID
	})

	return statuses, nil
}

// do выполняет запрос к path.json; body кодируется в JSON, ответ декодируется в out
// Отсутствующий узел база возвращает как null, out в этом случае остаётся нулевым
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	endpoint := c.baseURL + "/" + path + ".json"
	if c.authToken != "" {
		endpoint += "?auth=" + url.QueryEscape(c.authToken)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode body: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		// Продолжаем обработку
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
