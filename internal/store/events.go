package store

import "fmt"

// eventColors maps a category to its calendar color, defaulting to blue.
var eventColors = map[string]string{
	"FYP":         "red",
	"Freelancing": "orange",
	"Career":      "blue",
	"Uni":         "blue",
}

func eventColor(category string) string {
	if c, ok := eventColors[category]; ok {
		return c
	}
	return "blue"
}

func (s *Store) CreateEvent(e Event) (*Event, error) {
	if e.Type == "" {
		e.Type = "day"
	}
	if e.Type == "month" {
		// Month events pin to the first of the month.
		e.Date = e.Date[:7] + "-01"
	}
	if e.Time == "" {
		e.Time = "10:00"
	}
	res, err := s.db.Exec(
		`INSERT INTO events (title, date, type, time, end_time, location, category, description, color)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Title, e.Date, e.Type, e.Time, e.EndTime, e.Location, e.Category, e.Description,
		eventColor(e.Category),
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetEvent(id)
}

func (s *Store) GetEvent(id int64) (*Event, error) {
	e := &Event{}
	err := s.db.QueryRow(
		`SELECT id, title, date, type, time, end_time, location, category, description, color
		 FROM events WHERE id = ?`, id,
	).Scan(&e.ID, &e.Title, &e.Date, &e.Type, &e.Time, &e.EndTime, &e.Location,
		&e.Category, &e.Description, &e.Color)
	if err != nil {
		return nil, fmt.Errorf("get event %d: %w", id, err)
	}
	return e, nil
}

func (s *Store) scanEvents(query string, args ...any) ([]Event, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Date, &e.Type, &e.Time, &e.EndTime,
			&e.Location, &e.Category, &e.Description, &e.Color); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// EventsByMonth returns upcoming day events within the month (from today
// onward) plus the month-typed events pinned to its first day.
func (s *Store) EventsByMonth(year, month int, today string) ([]Event, error) {
	monthStart := fmt.Sprintf("%04d-%02d-01", year, month)
	monthEnd := fmt.Sprintf("%04d-%02d-31", year, month)
	return s.scanEvents(
		`SELECT id, title, date, type, time, end_time, location, category, description, color
		 FROM events
		 WHERE (type = 'day' AND date >= ? AND date <= ?)
		    OR (type = 'month' AND date = ?)
		 ORDER BY date ASC, time ASC`,
		today, monthEnd, monthStart,
	)
}

// EventsByDate returns a single day's events plus that month's events.
func (s *Store) EventsByDate(date string) ([]Event, error) {
	return s.scanEvents(
		`SELECT id, title, date, type, time, end_time, location, category, description, color
		 FROM events
		 WHERE (type = 'day' AND date = ?) OR (type = 'month' AND date = ?)
		 ORDER BY time`,
		date, date[:7]+"-01",
	)
}

func (s *Store) UpdateEvent(e Event) error {
	_, err := s.db.Exec(
		`UPDATE events SET title = ?, date = ?, type = ?, time = ?, end_time = ?,
		 location = ?, category = ?, description = ?, color = ? WHERE id = ?`,
		e.Title, e.Date, e.Type, e.Time, e.EndTime, e.Location, e.Category,
		e.Description, eventColor(e.Category), e.ID,
	)
	return err
}

func (s *Store) DeleteEvent(id int64) error {
	_, err := s.db.Exec(`DELETE FROM events WHERE id = ?`, id)
	return err
}
