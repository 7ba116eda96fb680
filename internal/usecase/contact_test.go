package usecase

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/jvfernandez09/jfc-app/internal/core/domain"
	"github.com/jvfernandez09/jfc-app/internal/repository"
)

// testContactRepo stores people in memory and mirrors the postgres
// repository's error contract.
type testContactRepo struct {
	nextID  int
	people  map[string]domain.Person
	tagsFor map[string][]string
	failAll bool
}

func newTestContactRepo() *testContactRepo {
	return &testContactRepo{people: map[string]domain.Person{}, tagsFor: map[string][]string{}}
}

func (r *testContactRepo) Create(_ context.Context, person domain.Person, tagIDs []string) (string, error) {
	if r.failAll {
		return "", errors.New("storage unavailable")
	}
	if person.Email != nil {
		for _, existing := range r.people {
			if existing.Email != nil && *existing.Email == *person.Email {
				return "", repository.ErrConflict
			}
		}
	}

	r.nextID++
	id := strconv.Itoa(r.nextID)
	person.ID = id
	r.people[id] = person
	r.tagsFor[id] = tagIDs
	return id, nil
}

func (r *testContactRepo) List(_ context.Context) ([]domain.Person, error) {
	var out []domain.Person
	for _, person := range r.people {
		out = append(out, person)
	}
	return out, nil
}

func (r *testContactRepo) GetByID(_ context.Context, id string) (*domain.Person, error) {
	person, ok := r.people[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &person, nil
}

func (r *testContactRepo) Update(_ context.Context, person domain.Person, tagIDs []string) error {
	if _, ok := r.people[person.ID]; !ok {
		return repository.ErrNotFound
	}
	r.people[person.ID] = person
	r.tagsFor[person.ID] = tagIDs
	return nil
}

func (r *testContactRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.people[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.people, id)
	delete(r.tagsFor, id)
	return nil
}

func TestContactCreate(t *testing.T) {
	repo := newTestContactRepo()
	svc := NewContactService(repo)

	id, err := svc.Create(context.Background(), ContactInput{
		FirstName:  "  Jane ",
		LastName:   " Doe ",
		Email:      " Jane.Doe@Example.COM ",
		Phone:      " 555-0100 ",
		BusinessID: "business-1",
		TagIDs:     []string{"tag-1", "tag-2"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	person := repo.people[id]
	if person.FirstName != "Jane" || person.LastName != "Doe" {
		t.Errorf("name = %q %q, want trimmed", person.FirstName, person.LastName)
	}
	if person.Email == nil || *person.Email != "jane.doe@example.com" {
		t.Errorf("email = %v, want normalized", person.Email)
	}
	if person.Phone == nil || *person.Phone != "555-0100" {
		t.Errorf("phone = %v, want trimmed", person.Phone)
	}
	if person.BusinessID == nil || *person.BusinessID != "business-1" {
		t.Errorf("business id = %v, want business-1", person.BusinessID)
	}
	if len(repo.tagsFor[id]) != 2 {
		t.Errorf("tag links = %v, want 2", repo.tagsFor[id])
	}
}

func TestContactCreateOptionalFieldsBecomeNull(t *testing.T) {
	repo := newTestContactRepo()
	svc := NewContactService(repo)

	id, err := svc.Create(context.Background(), ContactInput{FirstName: "Jane", LastName: "Doe"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	person := repo.people[id]
	if person.Email != nil || person.Phone != nil || person.BusinessID != nil {
		t.Errorf("optional fields = %v %v %v, want all nil", person.Email, person.Phone, person.BusinessID)
	}
}

func TestContactCreateValidation(t *testing.T) {
	svc := NewContactService(newTestContactRepo())

	_, err := svc.Create(context.Background(), ContactInput{FirstName: "Jane"})
	ve, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("err = %v, want validation error", err)
	}
	if ve.Message != "First name and last name are required." {
		t.Errorf("message = %q", ve.Message)
	}

	_, err = svc.Create(context.Background(), ContactInput{FirstName: "Jane", LastName: "Doe", Email: "not-an-email"})
	ve, ok = AsValidationError(err)
	if !ok {
		t.Fatalf("err = %v, want validation error", err)
	}
	if ve.Fields["email"] != "Please enter a valid email." {
		t.Errorf("fields[email] = %q", ve.Fields["email"])
	}
}

func TestContactCreateDuplicateEmail(t *testing.T) {
	repo := newTestContactRepo()
	svc := NewContactService(repo)

	if _, err := svc.Create(context.Background(), ContactInput{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := svc.Create(context.Background(), ContactInput{FirstName: "Janet", LastName: "Doe", Email: "jane@example.com"})
	ve, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("err = %v, want validation error", err)
	}
	if ve.Fields["email"] != "Email already exists." {
		t.Errorf("fields[email] = %q", ve.Fields["email"])
	}
}

func TestContactCreateStorageFailure(t *testing.T) {
	repo := newTestContactRepo()
	repo.failAll = true
	svc := NewContactService(repo)

	_, err := svc.Create(context.Background(), ContactInput{FirstName: "Jane", LastName: "Doe"})
	ve, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("err = %v, want validation error", err)
	}
	if ve.Message != "Unable to save contact." {
		t.Errorf("message = %q", ve.Message)
	}
}

func TestContactGetAndDeleteUnknownID(t *testing.T) {
	svc := NewContactService(newTestContactRepo())

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get err = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete err = %v, want ErrNotFound", err)
	}
}

func TestContactUpdateReplacesTagLinks(t *testing.T) {
	repo := newTestContactRepo()
	svc := NewContactService(repo)

	id, err := svc.Create(context.Background(), ContactInput{
		FirstName: "Jane",
		LastName:  "Doe",
		TagIDs:    []string{"tag-1", "tag-2"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = svc.Update(context.Background(), id, ContactInput{
		FirstName: "Jane",
		LastName:  "Smith",
		TagIDs:    []string{"tag-3"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if repo.people[id].LastName != "Smith" {
		t.Errorf("last name = %q, want Smith", repo.people[id].LastName)
	}
	if len(repo.tagsFor[id]) != 1 || repo.tagsFor[id][0] != "tag-3" {
		t.Errorf("tag links = %v, want [tag-3]", repo.tagsFor[id])
	}
}
