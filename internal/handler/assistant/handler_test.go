package assistant

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicboard/allotment-api/internal/model"
	"github.com/clinicboard/allotment-api/internal/service/profile"
)

type fakeProfileRepo struct {
	created []*model.Assistant
}

func (f *fakeProfileRepo) ListAssistants(ctx context.Context) ([]*model.Assistant, error) {
	return nil, nil
}

func (f *fakeProfileRepo) ListDoctors(ctx context.Context) ([]*model.Doctor, error) {
	return nil, nil
}

func (f *fakeProfileRepo) CreateAssistant(ctx context.Context, a *model.Assistant) error {
	f.created = append(f.created, a)
	return nil
}

func (f *fakeProfileRepo) UpdateAssistant(ctx context.Context, a *model.Assistant) error {
	return nil
}

func (f *fakeProfileRepo) GetAssistant(ctx context.Context, id uuid.UUID) (*model.Assistant, error) {
	return nil, nil
}

func (f *fakeProfileRepo) CreateDoctor(ctx context.Context, d *model.Doctor) error {
	return nil
}

type staticRules struct{}

func (staticRules) Config(context.Context) model.AllocationConfig {
	return model.AllocationConfig{}
}

type recordingBroker struct {
	channels []string
}

func (b *recordingBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	b.channels = append(b.channels, channel)
	return nil
}

func (b *recordingBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	return nil, nil
}

func (b *recordingBroker) Close() error { return nil }

func postJSON(h *Handler, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/assistants", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Create(c)
	return w
}

func TestCreate_PublishesProfileUpdate(t *testing.T) {
	repo := &fakeProfileRepo{}
	broker := &recordingBroker{}
	directory := profile.NewDirectory(repo, staticRules{}, time.Minute, zerolog.Nop())
	h := NewHandler(repo, directory, broker)

	w := postJSON(h, `{"name":"Maya","department":"OPD"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "Maya", repo.created[0].Name)
	assert.Equal(t, []string{"profile.updated"}, broker.channels)
}

func TestCreate_NilBrokerStillCreates(t *testing.T) {
	repo := &fakeProfileRepo{}
	directory := profile.NewDirectory(repo, staticRules{}, time.Minute, zerolog.Nop())
	h := NewHandler(repo, directory, nil)

	w := postJSON(h, `{"name":"Ravi","department":"OPD"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.created, 1)
}
