package store

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/enlistd/api/enlistment"
)

type studentStore struct {
	db *sqlx.DB
	d  goqu.DialectWrapper
}

type studentRow struct {
	Number    int    `db:"number"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
}

// FindByNumber loads the student along with the full section
// aggregates they are enrolled in and their taken subject ids.
func (st *studentStore) FindByNumber(ctx context.Context, number int) (*enlistment.Student, error) {
	query, args, err := st.d.From("student").Where(goqu.Ex{"number": number}).ToSQL()
	if err != nil {
		return nil, err
	}
	var row studentRow
	err = st.db.GetContext(ctx, &row, query, args...)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	student := &enlistment.Student{
		Number:        row.Number,
		FirstName:     row.FirstName,
		LastName:      row.LastName,
		Sections:      make(map[string]*enlistment.Section),
		SubjectsTaken: make(map[string]bool),
	}

	query, args, err = st.d.From("section").
		Join(goqu.T("enrollment"), goqu.On(goqu.Ex{"enrollment.section_id": goqu.I("section.id")})).
		Where(goqu.Ex{"enrollment.student_number": number}).
		Select("section.*").
		ToSQL()
	if err != nil {
		return nil, err
	}
	var sections []sectionRow
	if err = st.db.SelectContext(ctx, &sections, query, args...); err != nil {
		return nil, err
	}
	for i := range sections {
		sec := sections[i].section()
		student.Sections[sec.ID] = sec
	}

	query, args, err = st.d.From("subject_taken").
		Where(goqu.Ex{"student_number": number}).
		Select("subject_id").
		ToSQL()
	if err != nil {
		return nil, err
	}
	var taken []string
	if err = st.db.SelectContext(ctx, &taken, query, args...); err != nil {
		return nil, err
	}
	for _, subject := range taken {
		student.SubjectsTaken[subject] = true
	}
	return student, nil
}

func (st *studentStore) Create(ctx context.Context, s *enlistment.Student) error {
	query, args, err := st.d.Insert("student").Rows(goqu.Record{
		"number":     s.Number,
		"first_name": s.FirstName,
		"last_name":  s.LastName,
	}).ToSQL()
	if err != nil {
		return err
	}
	_, err = st.db.ExecContext(ctx, query, args...)
	return err
}

// Save syncs the enrollment rows with the student's enrolled set.
// The student row itself never changes through enlistment.
func (st *studentStore) Save(ctx context.Context, s *enlistment.Student) error {
	tx, err := st.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query, args, err := st.d.Delete("enrollment").
		Where(goqu.Ex{"student_number": s.Number}).
		ToSQL()
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	for id := range s.Sections {
		query, args, err = st.d.Insert("enrollment").Rows(goqu.Record{
			"student_number": s.Number,
			"section_id":     id,
		}).ToSQL()
		if err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}
