package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/patient-records/internal/database"
	"github.com/deppfellow/patient-records/internal/model/person"
	"github.com/deppfellow/patient-records/internal/server"
	"github.com/jackc/pgx/v5"
)

// PersonRepository serves the legacy users table.
type PersonRepository struct {
	server *server.Server
}

func NewPersonRepository(s *server.Server) *PersonRepository {
	return &PersonRepository{server: s}
}

func (r *PersonRepository) ListPeople(ctx context.Context) ([]person.Person, error) {
	stmt := `SELECT id, name, age FROM users ORDER BY id DESC`

	rows, err := database.Session(ctx, r.server.DB.Pool).Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to execute users query: %w", err)
	}

	collected, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:users: %w", err)
	}

	people := make([]person.Person, 0, len(collected))
	for _, row := range collected {
		p, err := person.FromRow(row)
		if err != nil {
			return nil, err
		}
		people = append(people, p)
	}
	return people, nil
}

func (r *PersonRepository) AddPerson(ctx context.Context, payload *person.AddPersonPayload) error {
	stmt := `INSERT INTO users (name, age) VALUES (@name, @age)`

	return database.WithCommit(ctx, database.Session(ctx, r.server.DB.Pool), func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, stmt, pgx.NamedArgs{"name": payload.Name, "age": payload.Age}); err != nil {
			return fmt.Errorf("failed to insert user: %w", err)
		}
		return nil
	})
}
