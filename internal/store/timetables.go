package store

import "fmt"

func (s *Store) CreateTimetable(name string) (*Timetable, error) {
	res, err := s.db.Exec(`INSERT INTO timetables (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("insert timetable: %w", err)
	}
	id, _ := res.LastInsertId()
	return &Timetable{ID: id, Name: name}, nil
}

func (s *Store) ListTimetables() ([]Timetable, error) {
	rows, err := s.db.Query(`SELECT id, name FROM timetables ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list timetables: %w", err)
	}
	defer rows.Close()

	var tts []Timetable
	for rows.Next() {
		var tt Timetable
		if err := rows.Scan(&tt.ID, &tt.Name); err != nil {
			return nil, err
		}
		tts = append(tts, tt)
	}
	return tts, rows.Err()
}

// DeleteTimetable removes a template and, via cascade, its slots.
func (s *Store) DeleteTimetable(id int64) error {
	_, err := s.db.Exec(`DELETE FROM timetables WHERE id = ?`, id)
	return err
}

func (s *Store) AddSlot(timetableID int64, start, end, activity string) (*TimetableSlot, error) {
	res, err := s.db.Exec(
		`INSERT INTO timetable_slots (timetable_id, start_time, end_time, activity) VALUES (?, ?, ?, ?)`,
		timetableID, start, end, activity,
	)
	if err != nil {
		return nil, fmt.Errorf("insert slot: %w", err)
	}
	id, _ := res.LastInsertId()
	return &TimetableSlot{ID: id, TimetableID: timetableID, StartTime: start, EndTime: end, Activity: activity}, nil
}

func (s *Store) SlotsByTimetable(timetableID int64) ([]TimetableSlot, error) {
	rows, err := s.db.Query(
		`SELECT id, timetable_id, start_time, end_time, activity
		 FROM timetable_slots WHERE timetable_id = ? ORDER BY start_time ASC`,
		timetableID,
	)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var slots []TimetableSlot
	for rows.Next() {
		var sl TimetableSlot
		if err := rows.Scan(&sl.ID, &sl.TimetableID, &sl.StartTime, &sl.EndTime, &sl.Activity); err != nil {
			return nil, err
		}
		slots = append(slots, sl)
	}
	return slots, rows.Err()
}

func (s *Store) DeleteSlot(id int64) error {
	_, err := s.db.Exec(`DELETE FROM timetable_slots WHERE id = ?`, id)
	return err
}
