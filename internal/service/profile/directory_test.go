package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/clinicboard/allotment-api/internal/model"
)

type fakeProfileRepo struct {
	assistants []*model.Assistant
	doctors    []*model.Doctor
	failList   bool
	listCalls  int
}

func (f *fakeProfileRepo) ListAssistants(context.Context) ([]*model.Assistant, error) {
	f.listCalls++
	if f.failList {
		return nil, errors.New("db down")
	}
	return f.assistants, nil
}

func (f *fakeProfileRepo) ListDoctors(context.Context) ([]*model.Doctor, error) {
	return f.doctors, nil
}

func (f *fakeProfileRepo) CreateAssistant(context.Context, *model.Assistant) error  { return nil }
func (f *fakeProfileRepo) UpdateAssistant(context.Context, *model.Assistant) error  { return nil }
func (f *fakeProfileRepo) CreateDoctor(context.Context, *model.Doctor) error        { return nil }
func (f *fakeProfileRepo) GetAssistant(context.Context, uuid.UUID) (*model.Assistant, error) {
	return nil, errors.New("not found")
}

type staticRules struct{ cfg model.AllocationConfig }

func (s staticRules) Config(context.Context) model.AllocationConfig { return s.cfg }

func testRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		assistants: []*model.Assistant{
			{Name: "Maya", Department: "OPD", WeeklyOff: "MON", PrefThird: model.PreferenceDeny, Active: true},
			{Name: "ravi", Department: "", Active: true},
			{Name: "Leela", Department: "Surgery", Active: true},
			{Name: "Gone", Department: "OPD", Active: false},
		},
		doctors: []*model.Doctor{
			{Name: "Dr. Rao", Department: "OPD", Active: true},
			{Name: "Dr. Anita Sen", Department: "Surgery", Active: true},
		},
	}
}

func testDirectory(repo *fakeProfileRepo, cfg model.AllocationConfig) *Directory {
	return NewDirectory(repo, staticRules{cfg}, time.Minute, zerolog.Nop())
}

func TestDirectory_Resolution(t *testing.T) {
	ctx := context.Background()
	cfg := model.AllocationConfig{
		Departments: map[string]model.DepartmentRules{
			model.CanonKey("OPD"): {Name: "OPD", Assistants: []string{"Ravi"}},
		},
	}
	d := testDirectory(testRepo(), cfg)

	assert.Equal(t, []string{"MAYA", "RAVI", "LEELA"}, d.AllAssistants(ctx))
	assert.Equal(t, "OPD", d.DepartmentForAssistant(ctx, "maya"))
	// Blank profile department backfills from the config membership.
	assert.Equal(t, "OPD", d.DepartmentForAssistant(ctx, "RAVI"))
	assert.Equal(t, SharedDepartment, d.DepartmentForAssistant(ctx, "stranger"))

	assert.Equal(t, []string{"MAYA", "RAVI"}, d.AssistantsInDepartment(ctx, "opd"))
	assert.Equal(t, []string{"LEELA"}, d.AssistantsInDepartment(ctx, "SURGERY"))
	// Unknown department falls back to the full roster.
	assert.Equal(t, []string{"MAYA", "RAVI", "LEELA"}, d.AssistantsInDepartment(ctx, "DENTAL"))

	assert.Equal(t, []string{"DR. RAO"}, d.DoctorsInDepartment(ctx, "OPD"))
}

func TestDirectory_DoctorFuzzyMatch(t *testing.T) {
	ctx := context.Background()
	d := testDirectory(testRepo(), model.AllocationConfig{})

	assert.Equal(t, "OPD", d.DepartmentForDoctor(ctx, "Dr. Rao"))
	// Legacy rows abbreviate; a suffix match still resolves.
	assert.Equal(t, "SURGERY", d.DepartmentForDoctor(ctx, "Sen"))
	assert.Equal(t, "", d.DepartmentForDoctor(ctx, "Dr. Nobody"))
	assert.Equal(t, "", d.DepartmentForDoctor(ctx, "  "))
}

func TestDirectory_WeeklyOffAndPrefs(t *testing.T) {
	ctx := context.Background()
	d := testDirectory(testRepo(), model.AllocationConfig{})

	off := d.WeeklyOff(ctx, time.Monday)
	assert.True(t, off[model.CanonKey("Maya")])
	assert.False(t, off[model.CanonKey("Ravi")])
	assert.Empty(t, d.WeeklyOff(ctx, time.Friday))

	flags := d.PreferenceFlags(ctx, "MAYA")
	assert.Equal(t, model.PreferenceDeny, flags[model.RoleThird])
	assert.Equal(t, model.PreferenceUnspecified, flags[model.RoleFirst])
}

func TestDirectory_CacheAndInvalidate(t *testing.T) {
	ctx := context.Background()
	repo := testRepo()
	d := testDirectory(repo, model.AllocationConfig{})

	d.AllAssistants(ctx)
	d.AllAssistants(ctx)
	assert.Equal(t, 1, repo.listCalls, "second read is served from cache")

	d.Invalidate()
	d.AllAssistants(ctx)
	assert.Equal(t, 2, repo.listCalls, "invalidate forces a rebuild")
}

func TestDirectory_RepoFailureServesEmpty(t *testing.T) {
	ctx := context.Background()
	d := testDirectory(&fakeProfileRepo{failList: true}, model.AllocationConfig{})

	assert.Empty(t, d.AllAssistants(ctx))
	assert.Equal(t, SharedDepartment, d.DepartmentForAssistant(ctx, "Maya"))
}
