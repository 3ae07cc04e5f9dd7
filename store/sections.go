package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/enlistd/api/enlistment"

	// query dialects for the supported drivers
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
)

// NewSQL creates a database backed store. The driver name picks the
// sql dialect used for generated queries.
func NewSQL(db *sqlx.DB, driver string) Store {
	d := goqu.Dialect(dialectFor(driver))
	return Store{
		Sections: &sectionStore{db: db, d: d},
		Students: &studentStore{db: db, d: d},
		Rooms:    &roomStore{db: db, d: d},
		Subjects: &subjectStore{db: db, d: d},
		Faculty:  &facultyStore{db: db, d: d},
	}
}

func dialectFor(driver string) string {
	switch driver {
	case "postgres", "sqlite3":
		return driver
	default:
		return "default"
	}
}

type sectionStore struct {
	db *sqlx.DB
	d  goqu.DialectWrapper
}

type sectionRow struct {
	ID         string               `db:"id"`
	Subject    string               `db:"subject_id"`
	Days       enlistment.Days      `db:"days"`
	Start      enlistment.TimeOfDay `db:"start_time"`
	End        enlistment.TimeOfDay `db:"end_time"`
	Room       string               `db:"room"`
	Instructor int                  `db:"instructor"`
	Capacity   int                  `db:"capacity"`
	Enrolled   int                  `db:"enrolled"`
	Version    int64                `db:"version"`
}

func (r *sectionRow) section() *enlistment.Section {
	return &enlistment.Section{
		ID:      r.ID,
		Subject: r.Subject,
		Schedule: enlistment.NewSchedule(
			r.Days,
			enlistment.Period{Start: r.Start, End: r.End},
		),
		Room:       r.Room,
		Instructor: r.Instructor,
		Capacity:   r.Capacity,
		Enrolled:   r.Enrolled,
		Version:    r.Version,
	}
}

func sectionRecord(s *enlistment.Section) goqu.Record {
	return goqu.Record{
		"id":         s.ID,
		"subject_id": s.Subject,
		"days":       s.Schedule.Days.String(),
		"start_time": s.Schedule.Period.Start.String(),
		"end_time":   s.Schedule.Period.End.String(),
		"room":       s.Room,
		"instructor": s.Instructor,
		"capacity":   s.Capacity,
		"enrolled":   s.Enrolled,
		"version":    s.Version,
	}
}

func (st *sectionStore) FindByID(ctx context.Context, id string) (*enlistment.Section, error) {
	query, args, err := st.d.From("section").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return nil, err
	}
	var row sectionRow
	err = st.db.GetContext(ctx, &row, query, args...)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.section(), nil
}

func (st *sectionStore) FindAll(ctx context.Context) ([]*enlistment.Section, error) {
	query, args, err := st.d.From("section").Order(goqu.I("id").Asc()).ToSQL()
	if err != nil {
		return nil, err
	}
	var rows []sectionRow
	if err = st.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	sections := make([]*enlistment.Section, len(rows))
	for i := range rows {
		sections[i] = rows[i].section()
	}
	return sections, nil
}

func (st *sectionStore) Create(ctx context.Context, s *enlistment.Section) error {
	query, args, err := st.d.Insert("section").Rows(sectionRecord(s)).ToSQL()
	if err != nil {
		return err
	}
	if _, err = st.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return &enlistment.DuplicateSectionError{ID: s.ID}
		}
		return err
	}
	return nil
}

// isUniqueViolation reports whether the driver rejected an insert on
// a primary key or unique constraint.
func isUniqueViolation(err error) bool {
	var pqerr *pq.Error
	if errors.As(err, &pqerr) {
		return pqerr.Code == "23505"
	}
	return isSQLiteUniqueViolation(err)
}

// Save writes the enrolled count back, guarded by the version the
// aggregate was loaded with. Losing the guard means an outside writer
// changed the row and the caller must reload.
func (st *sectionStore) Save(ctx context.Context, s *enlistment.Section) error {
	query, args, err := st.d.Update("section").
		Set(goqu.Record{"enrolled": s.Enrolled, "version": s.Version + 1}).
		Where(goqu.Ex{"id": s.ID, "version": s.Version}).
		ToSQL()
	if err != nil {
		return err
	}
	res, err := st.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStale
	}
	s.Version++
	return nil
}
