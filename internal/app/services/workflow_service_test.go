package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mlreyes/panelhub/internal/app/models"
	"github.com/mlreyes/panelhub/internal/pkg/apperrors"
)

func TestNextStage(t *testing.T) {
	testCases := []struct {
		name    string
		from    models.WorkflowStage
		want    models.WorkflowStage
		wantErr bool
	}{
		{name: "research center advances to vpaa", from: models.StageResearchCenter, want: models.StageVPAA},
		{name: "vpaa advances to dean", from: models.StageVPAA, want: models.StageDean},
		{name: "dean advances to budget", from: models.StageDean, want: models.StageBudget},
		{name: "budget approval is final", from: models.StageBudget, want: models.StageApproved},
		{name: "draft cannot be approved", from: models.StageDraft, wantErr: true},
		{name: "approved is terminal", from: models.StageApproved, wantErr: true},
		{name: "rejected is terminal", from: models.StageRejected, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NextStage(tc.from)
			if tc.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidStage)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStageForRole(t *testing.T) {
	testCases := []struct {
		role  models.RoleType
		stage models.WorkflowStage
		ok    bool
	}{
		{role: models.RoleResearchCenter, stage: models.StageResearchCenter, ok: true},
		{role: models.RoleVPAA, stage: models.StageVPAA, ok: true},
		{role: models.RoleDean, stage: models.StageDean, ok: true},
		{role: models.RoleBudget, stage: models.StageBudget, ok: true},
		{role: models.RoleFaculty, ok: false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.role), func(t *testing.T) {
			stage, ok := StageForRole(tc.role)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.stage, stage)
			}
		})
	}
}
