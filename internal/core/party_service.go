package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EmployeeInput holds the fields required to create an employee.
type EmployeeInput struct {
	Name string
	Type string
}

// PartyService provides master data for clients, suppliers and employees.
type PartyService interface {
	// CreateClient stores a client. A blank name is skipped.
	CreateClient(ctx context.Context, name string) (MutationResult, error)

	// ListClients returns all clients ordered by name.
	ListClients(ctx context.Context) ([]Client, error)

	// CreateSupplier stores a supplier. A blank name is skipped.
	CreateSupplier(ctx context.Context, name string) (MutationResult, error)

	// ListSuppliers returns suppliers whose name contains nameContains
	// (case-insensitive; empty matches all), ordered by name.
	ListSuppliers(ctx context.Context, nameContains string) ([]Supplier, error)

	// CreateEmployee stores an employee. Unlike clients, a blank name is an error.
	CreateEmployee(ctx context.Context, input EmployeeInput) (*Employee, error)

	// ListEmployees returns all employees ordered by name.
	ListEmployees(ctx context.Context) ([]Employee, error)
}

type partyService struct {
	store PartyStore
	views ViewRefresher
}

// NewPartyService constructs a PartyService over the given store.
func NewPartyService(store PartyStore, views ViewRefresher) PartyService {
	return &partyService{store: store, views: orNoop(views)}
}

func (s *partyService) CreateClient(ctx context.Context, name string) (MutationResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return skipped(), nil
	}
	c := &Client{ID: uuid.NewString(), Name: name, CreatedAt: time.Now().UTC()}
	if err := s.store.InsertClient(ctx, c); err != nil {
		return MutationResult{}, fmt.Errorf("create client %q: %w", name, err)
	}
	s.views.Refresh(ctx, ViewClients)
	return applied(c.ID), nil
}

func (s *partyService) ListClients(ctx context.Context) ([]Client, error) {
	clients, err := s.store.FindClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

func (s *partyService) CreateSupplier(ctx context.Context, name string) (MutationResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return skipped(), nil
	}
	sup := &Supplier{ID: uuid.NewString(), Name: name, CreatedAt: time.Now().UTC()}
	if err := s.store.InsertSupplier(ctx, sup); err != nil {
		return MutationResult{}, fmt.Errorf("create supplier %q: %w", name, err)
	}
	s.views.Refresh(ctx, ViewSuppliers)
	return applied(sup.ID), nil
}

func (s *partyService) ListSuppliers(ctx context.Context, nameContains string) ([]Supplier, error) {
	suppliers, err := s.store.FindSuppliers(ctx, strings.TrimSpace(nameContains))
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return suppliers, nil
}

func (s *partyService) CreateEmployee(ctx context.Context, input EmployeeInput) (*Employee, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalid("name", "Nom manquant")
	}
	e := &Employee{
		ID:        uuid.NewString(),
		Name:      name,
		Type:      ParseEmployeeType(input.Type),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.InsertEmployee(ctx, e); err != nil {
		return nil, fmt.Errorf("create employee %q: %w", name, err)
	}
	s.views.Refresh(ctx, ViewSalaries)
	return e, nil
}

func (s *partyService) ListEmployees(ctx context.Context) ([]Employee, error) {
	employees, err := s.store.FindEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}
