package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_marketplace/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLessonStore struct {
	studentLessons []*model.Lesson
	tutorLessons   []*model.Lesson
	gotOnlyActive  *bool
}

func (f *fakeLessonStore) ListByStudent(_ context.Context, _ int64, onlyActive bool) ([]*model.Lesson, error) {
	f.gotOnlyActive = &onlyActive
	return f.studentLessons, nil
}

func (f *fakeLessonStore) ListByTutor(_ context.Context, _ int64, onlyActive bool) ([]*model.Lesson, error) {
	f.gotOnlyActive = &onlyActive
	return f.tutorLessons, nil
}

type fakeInvoiceStore struct {
	invoices []*model.Invoice
}

func (f *fakeInvoiceStore) ListByStudent(_ context.Context, _ int64) ([]*model.Invoice, error) {
	return f.invoices, nil
}

type fakeTutorStore struct {
	profile     *model.TutorProfile
	ensureCalls int
	gotFilter   *model.TutorFilter
	found       []*model.TutorProfile
}

func (f *fakeTutorStore) GetOrCreateByUserID(_ context.Context, userID int64) (*model.TutorProfile, error) {
	f.ensureCalls++
	if f.profile == nil {
		f.profile = &model.TutorProfile{ID: 1, UserID: userID}
	}
	return f.profile, nil
}

func (f *fakeTutorStore) Filter(_ context.Context, filter model.TutorFilter) ([]*model.TutorProfile, error) {
	f.gotFilter = &filter
	return f.found, nil
}

type fakeStudentStore struct {
	profile *model.StudentProfile
}

func (f *fakeStudentStore) GetByUserID(_ context.Context, _ int64) (*model.StudentProfile, error) {
	return f.profile, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dashboardLesson(id int64, start, termEnd time.Time) *model.Lesson {
	return &model.Lesson{
		ID:              id,
		Frequency:       model.FrequencyWeekly,
		StartDate:       start,
		StartHour:       10,
		StartMinute:     0,
		DurationMinutes: 60,
		Active:          true,
		Term:            &model.Term{ID: 1, Name: "Spring 2024", StartDate: day(2024, 4, 1), EndDate: termEnd},
		Tutor: &model.TutorProfile{ID: 1, User: &model.User{
			FirstName: "Jane", LastName: "Doe", Email: "jane.doe@example.org",
		}},
		Student: &model.StudentProfile{ID: 2, User: &model.User{
			FirstName: "Charlie", LastName: "Johnson", Email: "charlie.johnson@example.org",
		}},
	}
}

func newDashboardService(lessons *fakeLessonStore, invoices *fakeInvoiceStore, tutors *fakeTutorStore, students *fakeStudentStore) *DashboardService {
	svc := NewDashboardService(lessons, invoices, tutors, students, zap.NewNop())
	svc.now = func() time.Time { return day(2024, 4, 1) }
	return svc
}

func TestStudentDashboard(t *testing.T) {
	paid := day(2024, 3, 15)
	invoices := &fakeInvoiceStore{invoices: []*model.Invoice{
		{ID: 1, AmountCents: 20000, PaidDate: &paid},
		{ID: 2, AmountCents: 15000},
		{ID: 3, AmountCents: 5000},
	}}
	lessons := &fakeLessonStore{studentLessons: []*model.Lesson{
		dashboardLesson(1, day(2024, 4, 5), day(2024, 4, 19)),
	}}
	tutors := &fakeTutorStore{}
	students := &fakeStudentStore{profile: &model.StudentProfile{ID: 2, UserID: 20}}

	svc := newDashboardService(lessons, invoices, tutors, students)

	dashboard, err := svc.ForStudent(context.Background(), 20, model.TutorFilter{})
	require.NoError(t, err)

	assert.Len(t, dashboard.Invoices, 3)
	assert.Equal(t, int64(20000), dashboard.TotalDueCents, "only unpaid invoices count towards total due")

	require.Len(t, dashboard.Upcoming, 3)
	assert.Equal(t, day(2024, 4, 5), dashboard.Upcoming[0].Date)
	assert.Equal(t, "Jane Doe", dashboard.Upcoming[0].CounterpartName)
	assert.Equal(t, "jane.doe@example.org", dashboard.Upcoming[0].CounterpartEmail)

	// Без параметров поиска репетиторы не ищутся
	assert.Nil(t, dashboard.Tutors)
	assert.Nil(t, tutors.gotFilter)

	require.NotNil(t, lessons.gotOnlyActive)
	assert.True(t, *lessons.gotOnlyActive, "assembler must request only active lessons")
}

func TestStudentDashboardTutorSearch(t *testing.T) {
	tutors := &fakeTutorStore{found: []*model.TutorProfile{{ID: 5}}}
	svc := newDashboardService(
		&fakeLessonStore{},
		&fakeInvoiceStore{},
		tutors,
		&fakeStudentStore{profile: &model.StudentProfile{ID: 2, UserID: 20}},
	)

	filter := model.TutorFilter{Language: "Python"}
	dashboard, err := svc.ForStudent(context.Background(), 20, filter)
	require.NoError(t, err)

	require.NotNil(t, tutors.gotFilter)
	assert.Equal(t, filter, *tutors.gotFilter)
	require.Len(t, dashboard.Tutors, 1)
	assert.Equal(t, int64(5), dashboard.Tutors[0].ID)
}

func TestStudentDashboardProfileMissing(t *testing.T) {
	svc := newDashboardService(
		&fakeLessonStore{},
		&fakeInvoiceStore{},
		&fakeTutorStore{},
		&fakeStudentStore{profile: nil},
	)

	_, err := svc.ForStudent(context.Background(), 20, model.TutorFilter{})
	require.ErrorIs(t, err, ErrStudentProfileNotFound)
}

func TestTutorDashboard(t *testing.T) {
	lessons := &fakeLessonStore{tutorLessons: []*model.Lesson{
		dashboardLesson(1, day(2024, 4, 5), day(2024, 4, 12)),
	}}
	tutors := &fakeTutorStore{}

	svc := newDashboardService(lessons, &fakeInvoiceStore{}, tutors, &fakeStudentStore{})

	dashboard, err := svc.ForTutor(context.Background(), 10)
	require.NoError(t, err)

	// Первый вход: профиль создаётся лениво
	assert.Equal(t, 1, tutors.ensureCalls)
	require.NotNil(t, dashboard.Profile)

	require.Len(t, dashboard.Upcoming, 2)
	assert.Equal(t, "Charlie Johnson", dashboard.Upcoming[0].CounterpartName)
	assert.Equal(t, "charlie.johnson@example.org", dashboard.Upcoming[0].CounterpartEmail)

	require.NotNil(t, lessons.gotOnlyActive)
	assert.True(t, *lessons.gotOnlyActive)
}

func TestTutorDashboardIdempotentBootstrap(t *testing.T) {
	tutors := &fakeTutorStore{}
	svc := newDashboardService(&fakeLessonStore{}, &fakeInvoiceStore{}, tutors, &fakeStudentStore{})

	first, err := svc.ForTutor(context.Background(), 10)
	require.NoError(t, err)
	second, err := svc.ForTutor(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, 2, tutors.ensureCalls)
	assert.Equal(t, first.Profile.ID, second.Profile.ID, "repeat logins reuse the same profile")
}
