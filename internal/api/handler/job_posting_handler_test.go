package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talenthub/jobboard-be/internal/api/domain"
	"github.com/talenthub/jobboard-be/internal/api/model"
	"github.com/talenthub/jobboard-be/internal/api/storage"
)

type fakeJobPostingStore struct {
	companies map[int64]*model.Company
	postings  map[int64]*model.JobPosting
	nextID    int64
}

func newFakeJobPostingStore() *fakeJobPostingStore {
	return &fakeJobPostingStore{
		companies: make(map[int64]*model.Company),
		postings:  make(map[int64]*model.JobPosting),
		nextID:    1,
	}
}

func (s *fakeJobPostingStore) GetCompany(_ context.Context, id int64) (*model.Company, error) {
	c, ok := s.companies[id]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	return c, nil
}

func (s *fakeJobPostingStore) GetJobPosting(_ context.Context, id int64) (*model.JobPosting, error) {
	p, ok := s.postings[id]
	if !ok {
		return nil, domain.ErrJobPostingNotFound
	}
	copied := *p
	return &copied, nil
}

func (s *fakeJobPostingStore) ViewJobPosting(ctx context.Context, id int64) (*model.JobPosting, error) {
	p, ok := s.postings[id]
	if !ok {
		return nil, domain.ErrJobPostingNotFound
	}
	p.ViewsCount++
	copied := *p
	return &copied, nil
}

func (s *fakeJobPostingStore) ViewJobPostingBySlug(ctx context.Context, slug string) (*model.JobPosting, error) {
	for id, p := range s.postings {
		if p.Slug == slug {
			return s.ViewJobPosting(ctx, id)
		}
	}
	return nil, domain.ErrJobPostingNotFound
}

func (s *fakeJobPostingStore) ListJobPostings(_ context.Context, filter storage.JobPostingFilter) ([]model.JobPosting, int, error) {
	var out []model.JobPosting
	for _, p := range s.postings {
		if filter.CompanyID != 0 && p.CompanyID != filter.CompanyID {
			continue
		}
		if filter.IsPublished != nil && p.IsPublished != *filter.IsPublished {
			continue
		}
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (s *fakeJobPostingStore) CreateJobPosting(_ context.Context, posting *model.JobPosting) error {
	posting.ID = s.nextID
	s.nextID++
	posting.CreatedAt = time.Now()
	posting.UpdatedAt = posting.CreatedAt

	stored := *posting
	s.postings[posting.ID] = &stored
	return nil
}

func (s *fakeJobPostingStore) UpdateJobPosting(_ context.Context, posting *model.JobPosting) error {
	if _, ok := s.postings[posting.ID]; !ok {
		return domain.ErrJobPostingNotFound
	}
	stored := *posting
	s.postings[posting.ID] = &stored
	return nil
}

func (s *fakeJobPostingStore) DeleteJobPosting(_ context.Context, id int64) error {
	if _, ok := s.postings[id]; !ok {
		return domain.ErrJobPostingNotFound
	}
	delete(s.postings, id)
	return nil
}

func newJobPostingTestServer(store JobPostingStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewJobPostingHandler(store, slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := gin.New()
	r.GET("/job-postings", h.ListJobPostings)
	r.GET("/job-postings/slug/:slug", h.GetJobPostingBySlug)
	r.GET("/job-postings/:id", h.GetJobPosting)
	r.PUT("/job-postings/:id/publish", h.PublishJobPosting)
	r.PUT("/job-postings/:id/unpublish", h.UnpublishJobPosting)
	r.GET("/job-postings/:id/stats", h.GetJobPostingStats)
	r.POST("/companies/:id/job-postings", h.CreateJobPosting)
	return r
}

func completePosting() *model.JobPosting {
	expiry := time.Now().Add(30 * 24 * time.Hour)
	return &model.JobPosting{
		ID:              1,
		CompanyID:       2,
		Title:           "Backend Engineer",
		Slug:            "backend-engineer-abc123",
		Description:     "Build services",
		Location:        "Berlin",
		JobType:         "full_time",
		ExperienceLevel: "senior",
		ExpiryDate:      &expiry,
	}
}

func TestGetJobPosting_CountsView(t *testing.T) {
	store := newFakeJobPostingStore()
	store.postings[1] = completePosting()
	r := newJobPostingTestServer(store)

	w := doJSON(t, r, http.MethodGet, "/job-postings/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["views_count"])

	w = doJSON(t, r, http.MethodGet, "/job-postings/slug/backend-engineer-abc123", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decodeBody(t, w)["views_count"])
}

func TestPublishJobPosting(t *testing.T) {
	store := newFakeJobPostingStore()
	store.postings[1] = completePosting()
	r := newJobPostingTestServer(store)

	w := doJSON(t, r, http.MethodPut, "/job-postings/1/publish", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["is_published"])
	assert.NotNil(t, body["publish_date"])

	firstPublishDate := *store.postings[1].PublishDate

	// Unpublish keeps the original publish date
	w = doJSON(t, r, http.MethodPut, "/job-postings/1/unpublish", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["is_published"])

	// Republish does not move it
	w = doJSON(t, r, http.MethodPut, "/job-postings/1/publish", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, store.postings[1].PublishDate.Equal(firstPublishDate))
}

func TestPublishJobPosting_IncompletePosting(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *model.JobPosting)
	}{
		{name: "missing location", mutate: func(p *model.JobPosting) { p.Location = "" }},
		{name: "missing job type", mutate: func(p *model.JobPosting) { p.JobType = "" }},
		{name: "missing expiry date", mutate: func(p *model.JobPosting) { p.ExpiryDate = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeJobPostingStore()
			posting := completePosting()
			tt.mutate(posting)
			store.postings[1] = posting
			r := newJobPostingTestServer(store)

			w := doJSON(t, r, http.MethodPut, "/job-postings/1/publish", nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, store.postings[1].IsPublished)
		})
	}
}

func TestComputeJobPostingStats(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	published := now.Add(-10 * 24 * time.Hour)

	posting := &model.JobPosting{
		ViewsCount:        200,
		ApplicationsCount: 20,
		PublishDate:       &published,
	}

	stats := computeJobPostingStats(posting, now)

	assert.Equal(t, 200, stats.ViewsCount)
	assert.Equal(t, 20, stats.ApplicationsCount)
	assert.InDelta(t, 0.1, stats.ConversionRate, 1e-9)
	assert.Equal(t, 10, stats.DaysActive)
	assert.InDelta(t, 2.0, stats.ApplicationsPerDay, 1e-9)
}

func TestComputeJobPostingStats_Degenerate(t *testing.T) {
	now := time.Now().UTC()

	// No views, never published
	stats := computeJobPostingStats(&model.JobPosting{}, now)
	assert.Zero(t, stats.ConversionRate)
	assert.Zero(t, stats.DaysActive)

	// Published minutes ago still counts as one day
	published := now.Add(-5 * time.Minute)
	stats = computeJobPostingStats(&model.JobPosting{
		ApplicationsCount: 3,
		ViewsCount:        3,
		PublishDate:       &published,
	}, now)
	assert.Equal(t, 1, stats.DaysActive)
	assert.InDelta(t, 3.0, stats.ApplicationsPerDay, 1e-9)
}
