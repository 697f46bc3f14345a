package store

import "fmt"

func (s *Store) CreateTask(title, priority, purpose, description, date string) (*Task, error) {
	res, err := s.db.Exec(
		`INSERT INTO tasks (title, priority, purpose, description, date, status)
		 VALUES (?, ?, ?, ?, ?, 0)`,
		title, priority, purpose, description, date,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetTask(id)
}

func (s *Store) GetTask(id int64) (*Task, error) {
	t := &Task{}
	var status int
	err := s.db.QueryRow(
		`SELECT id, title, priority, purpose, description, status, date FROM tasks WHERE id = ?`, id,
	).Scan(&t.ID, &t.Title, &t.Priority, &t.Purpose, &t.Description, &status, &t.Date)
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	t.Done = status == 1
	return t, nil
}

// TasksByDate lists a day's tasks, pending first, newest first within each group.
func (s *Store) TasksByDate(date string) ([]Task, error) {
	rows, err := s.db.Query(
		`SELECT id, title, priority, purpose, description, status, date
		 FROM tasks WHERE date = ? ORDER BY status ASC, id DESC`, date,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		var status int
		if err := rows.Scan(&t.ID, &t.Title, &t.Priority, &t.Purpose, &t.Description, &status, &t.Date); err != nil {
			return nil, err
		}
		t.Done = status == 1
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) UpdateTask(id int64, title, priority, purpose, description string) error {
	_, err := s.db.Exec(
		`UPDATE tasks SET title = ?, priority = ?, purpose = ?, description = ? WHERE id = ?`,
		title, priority, purpose, description, id,
	)
	return err
}

func (s *Store) ToggleTask(id int64) error {
	_, err := s.db.Exec(`UPDATE tasks SET status = 1 - status WHERE id = ?`, id)
	return err
}

func (s *Store) DeleteTask(id int64) error {
	_, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	return err
}
