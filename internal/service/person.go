package service

import (
	"context"

	"github.com/deppfellow/patient-records/internal/model/person"
	"github.com/deppfellow/patient-records/internal/server"
)

type PersonRepository interface {
	ListPeople(ctx context.Context) ([]person.Person, error)
	AddPerson(ctx context.Context, payload *person.AddPersonPayload) error
}

type PersonService struct {
	server *server.Server
	repo   PersonRepository
}

func NewPersonService(s *server.Server, repo PersonRepository) *PersonService {
	return &PersonService{server: s, repo: repo}
}

func (s *PersonService) ListPeople(ctx context.Context) ([]person.Person, error) {
	return s.repo.ListPeople(ctx)
}

func (s *PersonService) AddPerson(ctx context.Context, payload *person.AddPersonPayload) (*person.AddPersonResponse, error) {
	if err := s.repo.AddPerson(ctx, payload); err != nil {
		return nil, err
	}

	return &person.AddPersonResponse{Message: "person added", Person: payload}, nil
}
