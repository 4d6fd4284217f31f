package submission

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwinyue/strato-tools/internal/metrics"
	"github.com/ashwinyue/strato-tools/internal/model"
)

// mockSubmissionRepository 提交仓库 mock
type mockSubmissionRepository struct {
	created   []*model.ToolSubmission
	createErr error
}

func (m *mockSubmissionRepository) Create(_ context.Context, sub *model.ToolSubmission) error {
	if m.createErr != nil {
		return m.createErr
	}
	sub.ID = "sub-1"
	m.created = append(m.created, sub)
	return nil
}

func (m *mockSubmissionRepository) GetByID(context.Context, string) (*model.ToolSubmission, error) {
	return nil, nil
}

func (m *mockSubmissionRepository) ListByStatus(context.Context, string, int, int) ([]*model.ToolSubmission, error) {
	return m.created, nil
}

func (m *mockSubmissionRepository) UpdateStatus(context.Context, string, string) error {
	return nil
}

type outcomeRecorder struct {
	metrics.Nop
	outcomes []string
}

func (r *outcomeRecorder) IncSubmission(outcome string) {
	r.outcomes = append(r.outcomes, outcome)
}

func validRequest() *SubmitRequest {
	return &SubmitRequest{
		Name:            "Acme Notes",
		Description:     "Notes for busy teams",
		LongDescription: strings.Repeat("A long description of the tool. ", 3),
		Category:        []string{"Productivity"},
		Industries:      []string{"Education"},
		Website:         "https://acme.example.com",
		Price:           PriceRequest{Type: "freemium", StartingAt: "$5/month"},
		Integrations:    []string{"Slack"},
		Logo:            "https://acme.example.com/logo.png",
		TermsAccepted:   true,
	}
}

func TestSubmitRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *SubmitRequest)
		wantMsg string
	}{
		{name: "valid", mutate: func(*SubmitRequest) {}},
		{name: "short name", mutate: func(r *SubmitRequest) { r.Name = "A" }, wantMsg: "Tool name must be at least 2 characters."},
		{name: "short description", mutate: func(r *SubmitRequest) { r.Description = "too short" }, wantMsg: "Description must be at least 10 characters."},
		{name: "short long description", mutate: func(r *SubmitRequest) { r.LongDescription = "brief" }, wantMsg: "Long description must be at least 50 characters."},
		{name: "no category", mutate: func(r *SubmitRequest) { r.Category = nil }, wantMsg: "Select at least one category."},
		{name: "no industry", mutate: func(r *SubmitRequest) { r.Industries = []string{} }, wantMsg: "Select at least one industry."},
		{name: "bad url", mutate: func(r *SubmitRequest) { r.Website = "not a url" }, wantMsg: "Please enter a valid URL."},
		{name: "bad price", mutate: func(r *SubmitRequest) { r.Price.Type = "cheap" }, wantMsg: "Select a pricing type."},
		{name: "terms", mutate: func(r *SubmitRequest) { r.TermsAccepted = false }, wantMsg: "You must accept the terms and conditions."},
		{name: "first error wins", mutate: func(r *SubmitRequest) { r.Name = ""; r.Website = "" }, wantMsg: "Tool name must be at least 2 characters."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := binding.Validator.ValidateStruct(req)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, ValidationMessage(err))
		})
	}
}

func TestValidationMessage_Other(t *testing.T) {
	assert.Equal(t, "Please upload a logo for your tool", ValidationMessage(ErrLogoRequired))
	assert.Equal(t, "boom", ValidationMessage(errors.New("boom")))
}

func TestService_Submit(t *testing.T) {
	repo := &mockSubmissionRepository{}
	rec := &outcomeRecorder{}
	svc := NewService(repo, rec, nil)

	sub, err := svc.Submit(context.Background(), validRequest(), "visitor-1")
	require.NoError(t, err)

	assert.Equal(t, "sub-1", sub.ID)
	assert.Equal(t, model.PriceFreemium, sub.PriceType)
	assert.Equal(t, model.SubmissionPending, sub.Status)
	assert.Equal(t, "visitor-1", sub.VisitorID)
	assert.Equal(t, model.StringList{"Productivity"}, sub.Category)
	assert.Len(t, repo.created, 1)
	assert.Equal(t, []string{metrics.OutcomeSuccess}, rec.outcomes)
}

func TestService_Submit_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *SubmitRequest)
		repoErr error
		wantErr error
		outcome string
	}{
		{
			name:    "missing logo",
			mutate:  func(r *SubmitRequest) { r.Logo = "  " },
			wantErr: ErrLogoRequired,
			outcome: metrics.OutcomeInvalid,
		},
		{
			name:    "unknown price type",
			mutate:  func(r *SubmitRequest) { r.Price.Type = "barter" },
			wantErr: model.ErrUnknownPriceType,
			outcome: metrics.OutcomeInvalid,
		},
		{
			name:    "repository failure",
			mutate:  func(*SubmitRequest) {},
			repoErr: errors.New("db down"),
			outcome: metrics.OutcomeError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockSubmissionRepository{createErr: tt.repoErr}
			rec := &outcomeRecorder{}
			svc := NewService(repo, rec, nil)

			req := validRequest()
			tt.mutate(req)

			_, err := svc.Submit(context.Background(), req, "")
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Empty(t, repo.created)
			assert.Equal(t, []string{tt.outcome}, rec.outcomes)
		})
	}
}

func TestNewService_DefaultsToDiscard(t *testing.T) {
	svc := NewService(nil, nil, nil)

	sub, err := svc.Submit(context.Background(), validRequest(), "")
	require.NoError(t, err)
	assert.NotEmpty(t, sub.ID)
}
