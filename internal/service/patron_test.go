package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookmylastwishes/portal/internal/model"
	"github.com/bookmylastwishes/portal/internal/repository"
)

func testEmailService() *EmailService {
	return NewEmailService("", "noreply@test", "support@test", "", "http://localhost:8090", "TestApp", true)
}

func validPayload() *model.PledgePayload {
	return &model.PledgePayload{
		FullName:      "Asha Verma",
		Email:         "asha@example.com",
		DOB:           "1962-03-14",
		ContactNumber: "9876543210",
		ServiceGrade:  "3",
	}
}

func TestSubmitPledgeAnonymousParksInTempStore(t *testing.T) {
	var stored *model.TempPatron
	patronUpserts := 0

	temps := &mockTempPatronRepository{
		upsertFn: func(tp *model.TempPatron) error {
			stored = tp
			return nil
		},
	}
	patrons := &mockPatronRepository{
		upsertFn: func(p *model.Patron) error {
			patronUpserts++
			return nil
		},
	}

	svc := NewPatronService(patrons, temps, &mockStorage{}, testEmailService(), nil)
	err := svc.SubmitPledge(context.Background(), nil, validPayload(), nil)
	require.NoError(t, err)

	require.NotNil(t, stored)
	assert.Equal(t, "asha@example.com", stored.Email)
	assert.Equal(t, model.PledgePayloadVersion, stored.FormData.Version)
	assert.Equal(t, 0, patronUpserts, "an anonymous pledge must not touch the permanent record")
}

func TestSubmitPledgeAuthenticatedWritesThrough(t *testing.T) {
	var upserted *model.Patron
	tempUpserts := 0

	temps := &mockTempPatronRepository{
		upsertFn: func(tp *model.TempPatron) error {
			tempUpserts++
			return nil
		},
	}
	patrons := &mockPatronRepository{
		byIDFn: func(id string) (*model.Patron, error) {
			return nil, repository.ErrPatronNotFound
		},
		upsertFn: func(p *model.Patron) error {
			upserted = p
			return nil
		},
	}

	user := &model.User{ID: "user-1", Email: "asha@example.com"}
	svc := NewPatronService(patrons, temps, &mockStorage{}, testEmailService(), nil)
	err := svc.SubmitPledge(context.Background(), user, validPayload(), nil)
	require.NoError(t, err)

	require.NotNil(t, upserted)
	assert.Equal(t, "user-1", upserted.ID)
	assert.Equal(t, "asha@example.com", upserted.Email)
	assert.Equal(t, 0, tempUpserts, "a signed-in pledge must not create a temp record")
}

func TestSubmitPledgeAuthenticatedKeepsExistingUploads(t *testing.T) {
	avatar := "memories/user-1/avatar.png"
	var upserted *model.Patron

	patrons := &mockPatronRepository{
		byIDFn: func(id string) (*model.Patron, error) {
			return &model.Patron{
				ID:             "user-1",
				TopMemoriesURL: model.StringList{"memories/user-1/old.jpg"},
				AvatarURL:      &avatar,
			}, nil
		},
		upsertFn: func(p *model.Patron) error {
			upserted = p
			return nil
		},
	}

	user := &model.User{ID: "user-1", Email: "asha@example.com"}
	svc := NewPatronService(patrons, &mockTempPatronRepository{}, &mockStorage{}, testEmailService(), nil)
	err := svc.SubmitPledge(context.Background(), user, validPayload(), nil)
	require.NoError(t, err)

	require.NotNil(t, upserted)
	assert.Equal(t, model.StringList{"memories/user-1/old.jpg"}, upserted.TopMemoriesURL)
	require.NotNil(t, upserted.AvatarURL)
	assert.Equal(t, avatar, *upserted.AvatarURL)
}

func TestSubmitPledgeRejectsInvalidContactNumber(t *testing.T) {
	payload := validPayload()
	payload.ContactNumber = "not-a-number"

	svc := NewPatronService(&mockPatronRepository{}, &mockTempPatronRepository{}, &mockStorage{}, testEmailService(), nil)
	err := svc.SubmitPledge(context.Background(), nil, payload, nil)
	assert.Error(t, err)
}

func TestUpdateProfilePreservesUploads(t *testing.T) {
	avatar := "memories/user-1/avatar.png"
	var upserted *model.Patron

	patrons := &mockPatronRepository{
		byIDFn: func(id string) (*model.Patron, error) {
			return &model.Patron{
				ID:             "user-1",
				TopMemoriesURL: model.StringList{"memories/user-1/wedding.jpg"},
				AvatarURL:      &avatar,
			}, nil
		},
		upsertFn: func(p *model.Patron) error {
			upserted = p
			return nil
		},
	}

	user := &model.User{ID: "user-1", Email: "asha@example.com"}
	svc := NewPatronService(patrons, &mockTempPatronRepository{}, &mockStorage{}, testEmailService(), nil)

	payload := validPayload()
	payload.Occupation = "Retired teacher"
	err := svc.UpdateProfile(user, payload)
	require.NoError(t, err)

	require.NotNil(t, upserted)
	assert.Equal(t, "Retired teacher", upserted.Occupation)
	assert.Equal(t, model.StringList{"memories/user-1/wedding.jpg"}, upserted.TopMemoriesURL)
	require.NotNil(t, upserted.AvatarURL)
}

func TestRemoveMemory(t *testing.T) {
	var upserted *model.Patron
	var deletedPath string

	patrons := &mockPatronRepository{
		byIDFn: func(id string) (*model.Patron, error) {
			return &model.Patron{
				ID:             "user-1",
				TopMemoriesURL: model.StringList{"memories/user-1/a.jpg", "memories/user-1/b.jpg"},
			}, nil
		},
		upsertFn: func(p *model.Patron) error {
			upserted = p
			return nil
		},
	}
	store := &mockStorage{
		deleteFn: func(ctx context.Context, path string) error {
			deletedPath = path
			return nil
		},
	}

	svc := NewPatronService(patrons, &mockTempPatronRepository{}, store, testEmailService(), nil)
	err := svc.RemoveMemory(context.Background(), "user-1", "memories/user-1/a.jpg")
	require.NoError(t, err)

	assert.Equal(t, model.StringList{"memories/user-1/b.jpg"}, upserted.TopMemoriesURL)
	assert.Equal(t, "memories/user-1/a.jpg", deletedPath)
}

func TestRemoveAvatar(t *testing.T) {
	avatarPath := AvatarPath("user-1")
	var upserted *model.Patron
	var deletedPath string

	patrons := &mockPatronRepository{
		byIDFn: func(id string) (*model.Patron, error) {
			return &model.Patron{ID: "user-1", AvatarURL: &avatarPath}, nil
		},
		upsertFn: func(p *model.Patron) error {
			upserted = p
			return nil
		},
	}
	store := &mockStorage{
		deleteFn: func(ctx context.Context, path string) error {
			deletedPath = path
			return nil
		},
	}

	svc := NewPatronService(patrons, &mockTempPatronRepository{}, store, testEmailService(), nil)
	err := svc.RemoveAvatar(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Nil(t, upserted.AvatarURL)
	assert.Equal(t, avatarPath, deletedPath)
}

func TestRemoveAvatarWithoutAvatarIsNoop(t *testing.T) {
	upserts := 0
	patrons := &mockPatronRepository{
		byIDFn: func(id string) (*model.Patron, error) {
			return &model.Patron{ID: "user-1"}, nil
		},
		upsertFn: func(p *model.Patron) error {
			upserts++
			return nil
		},
	}

	svc := NewPatronService(patrons, &mockTempPatronRepository{}, &mockStorage{}, testEmailService(), nil)
	err := svc.RemoveAvatar(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Zero(t, upserts)
}

func TestRemoveMemoryUnknownPath(t *testing.T) {
	patrons := &mockPatronRepository{
		byIDFn: func(id string) (*model.Patron, error) {
			return &model.Patron{ID: "user-1"}, nil
		},
	}

	svc := NewPatronService(patrons, &mockTempPatronRepository{}, &mockStorage{}, testEmailService(), nil)
	err := svc.RemoveMemory(context.Background(), "user-1", "memories/user-1/ghost.jpg")
	assert.Error(t, err)
}
