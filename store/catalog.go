package store

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/enlistd/api/enlistment"
)

type roomStore struct {
	db *sqlx.DB
	d  goqu.DialectWrapper
}

func (st *roomStore) FindByName(ctx context.Context, name string) (enlistment.Room, error) {
	var room enlistment.Room
	query, args, err := st.d.From("room").Where(goqu.Ex{"name": name}).ToSQL()
	if err != nil {
		return room, err
	}
	err = st.db.GetContext(ctx, &room, query, args...)
	if err == sql.ErrNoRows {
		return room, ErrNotFound
	}
	return room, err
}

func (st *roomStore) FindAll(ctx context.Context) ([]enlistment.Room, error) {
	query, args, err := st.d.From("room").Order(goqu.I("name").Asc()).ToSQL()
	if err != nil {
		return nil, err
	}
	var rooms []enlistment.Room
	return rooms, st.db.SelectContext(ctx, &rooms, query, args...)
}

type subjectStore struct {
	db *sqlx.DB
	d  goqu.DialectWrapper
}

func (st *subjectStore) FindByID(ctx context.Context, id string) (enlistment.Subject, error) {
	var subject enlistment.Subject
	query, args, err := st.d.From("subject").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return subject, err
	}
	err = st.db.GetContext(ctx, &subject, query, args...)
	if err == sql.ErrNoRows {
		return subject, ErrNotFound
	}
	return subject, err
}

func (st *subjectStore) FindAll(ctx context.Context) ([]enlistment.Subject, error) {
	query, args, err := st.d.From("subject").Order(goqu.I("id").Asc()).ToSQL()
	if err != nil {
		return nil, err
	}
	var subjects []enlistment.Subject
	return subjects, st.db.SelectContext(ctx, &subjects, query, args...)
}

type facultyStore struct {
	db *sqlx.DB
	d  goqu.DialectWrapper
}

func (st *facultyStore) FindByNumber(ctx context.Context, number int) (enlistment.Faculty, error) {
	var faculty enlistment.Faculty
	query, args, err := st.d.From("faculty").Where(goqu.Ex{"number": number}).ToSQL()
	if err != nil {
		return faculty, err
	}
	err = st.db.GetContext(ctx, &faculty, query, args...)
	if err == sql.ErrNoRows {
		return faculty, ErrNotFound
	}
	return faculty, err
}

func (st *facultyStore) FindAll(ctx context.Context) ([]enlistment.Faculty, error) {
	query, args, err := st.d.From("faculty").Order(goqu.I("number").Asc()).ToSQL()
	if err != nil {
		return nil, err
	}
	var faculty []enlistment.Faculty
	return faculty, st.db.SelectContext(ctx, &faculty, query, args...)
}
