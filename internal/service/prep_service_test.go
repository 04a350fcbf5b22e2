package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/placement-cell/placetrack-api/internal/dto"
	"github.com/placement-cell/placetrack-api/internal/models"
)

type resourceRepoStub struct {
	items  map[uint]models.Resource
	nextID uint
}

func (r *resourceRepoStub) Create(_ context.Context, resource *models.Resource) error {
	r.nextID++
	resource.ID = r.nextID
	r.items[resource.ID] = *resource
	return nil
}

func (r *resourceRepoStub) Update(_ context.Context, resource *models.Resource) error {
	r.items[resource.ID] = *resource
	return nil
}

func (r *resourceRepoStub) Delete(_ context.Context, id uint) error {
	if _, ok := r.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *resourceRepoStub) FindByID(_ context.Context, id uint) (models.Resource, error) {
	item, ok := r.items[id]
	if !ok {
		return models.Resource{}, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (r *resourceRepoStub) List(_ context.Context, category string) ([]models.Resource, error) {
	var out []models.Resource
	for _, item := range r.items {
		if category == "" || item.Category == category {
			out = append(out, item)
		}
	}
	return out, nil
}

type noteRepoStub struct {
	items  map[uint]models.Note
	nextID uint
}

func (r *noteRepoStub) Create(_ context.Context, note *models.Note) error {
	r.nextID++
	note.ID = r.nextID
	r.items[note.ID] = *note
	return nil
}

func (r *noteRepoStub) Update(_ context.Context, note *models.Note) error {
	r.items[note.ID] = *note
	return nil
}

func (r *noteRepoStub) Delete(_ context.Context, id uint) error {
	if _, ok := r.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *noteRepoStub) FindByID(_ context.Context, id uint) (models.Note, error) {
	item, ok := r.items[id]
	if !ok {
		return models.Note{}, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (r *noteRepoStub) ListByOwner(_ context.Context, ownerID uint) ([]models.Note, error) {
	var out []models.Note
	for _, item := range r.items {
		if item.OwnerID == ownerID {
			out = append(out, item)
		}
	}
	return out, nil
}

func prepFixture() (PrepService, *resourceRepoStub, *noteRepoStub) {
	resources := &resourceRepoStub{items: make(map[uint]models.Resource)}
	notes := &noteRepoStub{items: make(map[uint]models.Note)}
	return NewPrepService(resources, notes, testValidator(), testLogger()), resources, notes
}

func TestPrepServiceResourceLifecycle(t *testing.T) {
	svc, _, _ := prepFixture()
	ctx := context.Background()

	created, err := svc.CreateResource(ctx, 1, dto.ResourceSaveRequest{
		Title:    "DSA crash course",
		Category: "dsa",
		Link:     "https://example.com/dsa",
	})
	require.NoError(t, err)
	require.Equal(t, uint(1), created.AddedBy)

	listed, err := svc.ListResources(ctx, "dsa")
	require.NoError(t, err)
	require.Len(t, listed, 1)

	other, err := svc.ListResources(ctx, "aptitude")
	require.NoError(t, err)
	require.Empty(t, other)

	updated, err := svc.UpdateResource(ctx, created.ID, dto.ResourceSaveRequest{
		Title: "DSA course (updated)",
		Link:  "https://example.com/dsa-v2",
	})
	require.NoError(t, err)
	require.Equal(t, "DSA course (updated)", updated.Title)

	require.NoError(t, svc.DeleteResource(ctx, created.ID))
	require.ErrorIs(t, svc.DeleteResource(ctx, created.ID), ErrResourceNotFound)
}

func TestPrepServiceNoteOwnership(t *testing.T) {
	svc, _, _ := prepFixture()
	ctx := context.Background()

	note, err := svc.CreateNote(ctx, 10, dto.NoteSaveRequest{Title: "HR questions", Body: "tell me about yourself"})
	require.NoError(t, err)

	mine, err := svc.ListNotes(ctx, 10)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	theirs, err := svc.ListNotes(ctx, 11)
	require.NoError(t, err)
	require.Empty(t, theirs, "notes are private to their owner")

	_, err = svc.UpdateNote(ctx, 11, note.ID, dto.NoteSaveRequest{Body: "hijacked"})
	require.ErrorIs(t, err, ErrNoteForbidden)

	require.ErrorIs(t, svc.DeleteNote(ctx, 11, note.ID), ErrNoteForbidden)

	updated, err := svc.UpdateNote(ctx, 10, note.ID, dto.NoteSaveRequest{Body: "revised answer"})
	require.NoError(t, err)
	require.Equal(t, "revised answer", updated.Body)

	require.NoError(t, svc.DeleteNote(ctx, 10, note.ID))
	require.ErrorIs(t, svc.DeleteNote(ctx, 10, note.ID), ErrNoteNotFound)
}
