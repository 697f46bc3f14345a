package store

import (
	"fmt"
	"time"
)

func (s *Store) CreateNotebook(title, icon, color string) (*Notebook, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO notebooks (title, icon, color, created_at) VALUES (?, ?, ?, ?)`,
		title, icon, color, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert notebook: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetNotebook(id)
}

func (s *Store) GetNotebook(id int64) (*Notebook, error) {
	n := &Notebook{}
	err := s.db.QueryRow(
		`SELECT n.id, n.title, n.icon, n.color, n.created_at, COUNT(nt.id)
		 FROM notebooks n
		 LEFT JOIN notes nt ON nt.notebook_id = n.id
		 WHERE n.id = ?
		 GROUP BY n.id`, id,
	).Scan(&n.ID, &n.Title, &n.Icon, &n.Color, &n.CreatedAt, &n.NoteCount)
	if err != nil {
		return nil, fmt.Errorf("get notebook %d: %w", id, err)
	}
	return n, nil
}

// ListNotebooks returns all notebooks, newest first, with note counts.
func (s *Store) ListNotebooks() ([]Notebook, error) {
	rows, err := s.db.Query(
		`SELECT n.id, n.title, n.icon, n.color, n.created_at, COUNT(nt.id)
		 FROM notebooks n
		 LEFT JOIN notes nt ON nt.notebook_id = n.id
		 GROUP BY n.id
		 ORDER BY n.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list notebooks: %w", err)
	}
	defer rows.Close()

	var notebooks []Notebook
	for rows.Next() {
		var n Notebook
		if err := rows.Scan(&n.ID, &n.Title, &n.Icon, &n.Color, &n.CreatedAt, &n.NoteCount); err != nil {
			return nil, err
		}
		notebooks = append(notebooks, n)
	}
	return notebooks, rows.Err()
}

func (s *Store) UpdateNotebook(id int64, title, icon, color string) error {
	_, err := s.db.Exec(
		`UPDATE notebooks SET title = ?, icon = ?, color = ? WHERE id = ?`,
		title, icon, color, id,
	)
	return err
}

// DeleteNotebook removes a notebook; its notes go with it via ON DELETE CASCADE.
func (s *Store) DeleteNotebook(id int64) error {
	_, err := s.db.Exec(`DELETE FROM notebooks WHERE id = ?`, id)
	return err
}

func (s *Store) CreateNote(notebookID int64, title, content string) (*Note, error) {
	date := time.Now().Format("02 Jan")
	res, err := s.db.Exec(
		`INSERT INTO notes (notebook_id, title, content, date) VALUES (?, ?, ?, ?)`,
		notebookID, title, content, date,
	)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetNote(id)
}

func (s *Store) GetNote(id int64) (*Note, error) {
	n := &Note{}
	err := s.db.QueryRow(
		`SELECT id, notebook_id, title, content, date FROM notes WHERE id = ?`, id,
	).Scan(&n.ID, &n.NotebookID, &n.Title, &n.Content, &n.Date)
	if err != nil {
		return nil, fmt.Errorf("get note %d: %w", id, err)
	}
	return n, nil
}

func (s *Store) NotesByNotebook(notebookID int64) ([]Note, error) {
	rows, err := s.db.Query(
		`SELECT id, notebook_id, title, content, date FROM notes
		 WHERE notebook_id = ? ORDER BY id DESC`, notebookID,
	)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.NotebookID, &n.Title, &n.Content, &n.Date); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (s *Store) UpdateNote(id int64, title, content string) error {
	_, err := s.db.Exec(`UPDATE notes SET title = ?, content = ? WHERE id = ?`, title, content, id)
	return err
}

func (s *Store) DeleteNote(id int64) error {
	_, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	return err
}
