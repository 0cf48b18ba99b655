package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-reportcard-api/internal/dto"
	"github.com/noah-isme/sma-reportcard-api/internal/models"
	appErrors "github.com/noah-isme/sma-reportcard-api/pkg/errors"
)

type mockApprovalConfigRepo struct {
	stored    *models.ApprovalConfig
	findErr   error
	upsertErr error
}

func (m *mockApprovalConfigRepo) Find(ctx context.Context, campusID, stageID string) (*models.ApprovalConfig, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if m.stored == nil || m.stored.CampusID != campusID || m.stored.EducationStageID != stageID {
		return nil, sql.ErrNoRows
	}
	return m.stored, nil
}

func (m *mockApprovalConfigRepo) Upsert(ctx context.Context, cfg *models.ApprovalConfig) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.stored = cfg
	return nil
}

func TestApprovalConfigServiceSaveAndGet(t *testing.T) {
	repo := &mockApprovalConfigRepo{}
	svc := NewApprovalConfigService(repo, validator.New(), zap.NewNop())
	ctx := context.Background()

	saved, err := svc.Save(ctx, admin(), dto.SaveApprovalConfigRequest{
		EducationStageID: "stage-sma",
		Level3Reviewers:  []string{stageReviewer},
		Level4Approvers:  []string{principal},
	})
	require.NoError(t, err)
	assert.Equal(t, testCampus, saved.CampusID)
	require.NotNil(t, saved.UpdatedBy)
	assert.Equal(t, "admin-1", *saved.UpdatedBy)

	got, err := svc.Get(ctx, admin(), "stage-sma")
	require.NoError(t, err)
	assert.True(t, got.Includes(models.LevelReview, stageReviewer))
	assert.True(t, got.Includes(models.LevelPublish, principal))

	other := admin()
	other.CampusID = "campus-2"
	_, err = svc.Get(ctx, other, "stage-sma")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestApprovalConfigServiceValidation(t *testing.T) {
	repo := &mockApprovalConfigRepo{}
	svc := NewApprovalConfigService(repo, nil, nil)
	ctx := context.Background()

	_, err := svc.Get(ctx, admin(), "")
	assert.ErrorIs(t, err, appErrors.ErrMissingParameter)

	_, err = svc.Save(ctx, admin(), dto.SaveApprovalConfigRequest{Level3Reviewers: []string{stageReviewer}})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Save(ctx, admin(), dto.SaveApprovalConfigRequest{EducationStageID: "stage-sma", Level3Reviewers: []string{""}})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Nil(t, repo.stored)
}

func TestApprovalConfigServiceStorageErrors(t *testing.T) {
	repo := &mockApprovalConfigRepo{findErr: errors.New("boom"), upsertErr: errors.New("boom")}
	svc := NewApprovalConfigService(repo, nil, nil)
	ctx := context.Background()

	_, err := svc.Get(ctx, admin(), "stage-sma")
	assert.ErrorIs(t, err, appErrors.ErrInternal)

	_, err = svc.Save(ctx, admin(), dto.SaveApprovalConfigRequest{EducationStageID: "stage-sma"})
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}
