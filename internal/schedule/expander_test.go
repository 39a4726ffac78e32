package schedule

import (
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_marketplace/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testTutor() *model.TutorProfile {
	return &model.TutorProfile{
		ID:     1,
		UserID: 10,
		User: &model.User{
			ID:        10,
			FirstName: "Mary",
			LastName:  "Tutor",
			Email:     "mary@example.org",
		},
	}
}

func testStudent() *model.StudentProfile {
	return &model.StudentProfile{
		ID:     2,
		UserID: 20,
		User: &model.User{
			ID:        20,
			FirstName: "Alex",
			LastName:  "Student",
			Email:     "alex@example.org",
		},
	}
}

func testLesson(id int64, start time.Time, freq model.Frequency, termEnd time.Time) *model.Lesson {
	return &model.Lesson{
		ID:              id,
		Frequency:       freq,
		StartDate:       start,
		StartHour:       14,
		StartMinute:     30,
		DurationMinutes: 60,
		Term: &model.Term{
			ID:        1,
			Name:      "Spring 2024",
			StartDate: date(2024, 1, 1),
			EndDate:   termEnd,
		},
		Tutor:   testTutor(),
		Student: testStudent(),
	}
}

func TestExpandWeekly(t *testing.T) {
	lesson := testLesson(1, date(2024, 4, 5), model.FrequencyWeekly, date(2024, 4, 19))

	occurrences, err := Expand([]*model.Lesson{lesson}, date(2024, 4, 1), ViewpointStudent)
	require.NoError(t, err)
	require.Len(t, occurrences, 3)

	assert.Equal(t, date(2024, 4, 5), occurrences[0].Date)
	assert.Equal(t, date(2024, 4, 12), occurrences[1].Date)
	assert.Equal(t, date(2024, 4, 19), occurrences[2].Date)
}

func TestExpandExcludesPastOccurrences(t *testing.T) {
	lesson := testLesson(1, date(2024, 4, 5), model.FrequencyWeekly, date(2024, 4, 19))

	occurrences, err := Expand([]*model.Lesson{lesson}, date(2024, 4, 13), ViewpointStudent)
	require.NoError(t, err)
	require.Len(t, occurrences, 1)
	assert.Equal(t, date(2024, 4, 19), occurrences[0].Date)
}

func TestExpandIncludesToday(t *testing.T) {
	lesson := testLesson(1, date(2024, 4, 5), model.FrequencyWeekly, date(2024, 4, 19))

	occurrences, err := Expand([]*model.Lesson{lesson}, date(2024, 4, 12), ViewpointStudent)
	require.NoError(t, err)
	require.Len(t, occurrences, 2)
	assert.Equal(t, date(2024, 4, 12), occurrences[0].Date)
}

func TestExpandSingleDayTerm(t *testing.T) {
	// start_date == term.end_date: ровно одно занятие
	lesson := testLesson(1, date(2024, 1, 1), model.FrequencyFortnightly, date(2024, 1, 1))

	occurrences, err := Expand([]*model.Lesson{lesson}, date(2023, 12, 1), ViewpointStudent)
	require.NoError(t, err)
	require.Len(t, occurrences, 1)
	assert.Equal(t, date(2024, 1, 1), occurrences[0].Date)
}

func TestExpandStartAfterTermEnd(t *testing.T) {
	// Урок начинается после конца периода: ноль занятий, без ошибки
	lesson := testLesson(1, date(2024, 6, 1), model.FrequencyWeekly, date(2024, 5, 1))
	lesson.Term.StartDate = date(2024, 2, 1)

	occurrences, err := Expand([]*model.Lesson{lesson}, date(2024, 1, 1), ViewpointStudent)
	require.NoError(t, err)
	assert.Empty(t, occurrences)
}

func TestExpandOccurrenceCount(t *testing.T) {
	// Размер результата: floor((end - start) / step) + 1
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		freq  model.Frequency
		want  int
	}{
		{"weekly ten weeks", date(2024, 1, 1), date(2024, 3, 11), model.FrequencyWeekly, 11},
		{"weekly partial tail", date(2024, 1, 1), date(2024, 1, 13), model.FrequencyWeekly, 2},
		{"fortnightly", date(2024, 1, 1), date(2024, 2, 26), model.FrequencyFortnightly, 5},
		{"fortnightly one day short", date(2024, 1, 1), date(2024, 1, 14), model.FrequencyFortnightly, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lesson := testLesson(1, tt.start, tt.freq, tt.end)
			occurrences, err := Expand([]*model.Lesson{lesson}, date(2020, 1, 1), ViewpointStudent)
			require.NoError(t, err)
			assert.Len(t, occurrences, tt.want)
		})
	}
}

func TestExpandFrequencyDelta(t *testing.T) {
	for _, tt := range []struct {
		freq model.Frequency
		days int
	}{
		{model.FrequencyWeekly, 7},
		{model.FrequencyFortnightly, 14},
	} {
		t.Run(string(tt.freq), func(t *testing.T) {
			lesson := testLesson(1, date(2024, 1, 1), tt.freq, date(2024, 6, 1))
			occurrences, err := Expand([]*model.Lesson{lesson}, date(2024, 1, 1), ViewpointStudent)
			require.NoError(t, err)
			require.NotEmpty(t, occurrences)
			for i := 1; i < len(occurrences); i++ {
				delta := occurrences[i].Date.Sub(occurrences[i-1].Date)
				assert.Equal(t, time.Duration(tt.days)*24*time.Hour, delta)
			}
		})
	}
}

func TestExpandMergesAndSortsLessons(t *testing.T) {
	morning := testLesson(1, date(2024, 4, 3), model.FrequencyWeekly, date(2024, 4, 17))
	morning.StartHour, morning.StartMinute = 9, 0
	evening := testLesson(2, date(2024, 4, 1), model.FrequencyFortnightly, date(2024, 4, 29))
	evening.StartHour, evening.StartMinute = 18, 30

	occurrences, err := Expand([]*model.Lesson{morning, evening}, date(2024, 4, 1), ViewpointStudent)
	require.NoError(t, err)
	require.Len(t, occurrences, 6)

	for i := 1; i < len(occurrences); i++ {
		prev, cur := occurrences[i-1], occurrences[i]
		if prev.Date.Equal(cur.Date) {
			prevMinutes := prev.StartHour*60 + prev.StartMinute
			curMinutes := cur.StartHour*60 + cur.StartMinute
			assert.LessOrEqual(t, prevMinutes, curMinutes)
		} else {
			assert.True(t, prev.Date.Before(cur.Date))
		}
	}
}

func TestExpandTieBreakByLessonID(t *testing.T) {
	// Одинаковые дата и время у разных уроков: порядок по id урока
	first := testLesson(7, date(2024, 4, 5), model.FrequencyWeekly, date(2024, 4, 5))
	second := testLesson(3, date(2024, 4, 5), model.FrequencyWeekly, date(2024, 4, 5))

	occurrences, err := Expand([]*model.Lesson{first, second}, date(2024, 4, 1), ViewpointStudent)
	require.NoError(t, err)
	require.Len(t, occurrences, 2)
	assert.Equal(t, int64(3), occurrences[0].LessonID)
	assert.Equal(t, int64(7), occurrences[1].LessonID)
}

func TestExpandVenueFallback(t *testing.T) {
	lesson := testLesson(1, date(2024, 4, 5), model.FrequencyWeekly, date(2024, 4, 5))
	lesson.Venue = nil

	occurrences, err := Expand([]*model.Lesson{lesson}, date(2024, 4, 1), ViewpointStudent)
	require.NoError(t, err)
	require.Len(t, occurrences, 1)
	assert.Equal(t, NoVenue, occurrences[0].VenueName)
	assert.Equal(t, NoVenue, occurrences[0].VenueAddress)
	assert.Equal(t, NoVenue, occurrences[0].VenueRoom)
}

func TestExpandVenueFields(t *testing.T) {
	lesson := testLesson(1, date(2024, 4, 5), model.FrequencyWeekly, date(2024, 4, 5))
	lesson.Venue = &model.Venue{Name: "Lab 202", Address: "456 College Ave", RoomNumber: "202"}

	occurrences, err := Expand([]*model.Lesson{lesson}, date(2024, 4, 1), ViewpointStudent)
	require.NoError(t, err)
	require.Len(t, occurrences, 1)
	assert.Equal(t, "Lab 202", occurrences[0].VenueName)
	assert.Equal(t, "456 College Ave", occurrences[0].VenueAddress)
	assert.Equal(t, "202", occurrences[0].VenueRoom)
}

func TestExpandCounterpart(t *testing.T) {
	lesson := testLesson(1, date(2024, 4, 5), model.FrequencyWeekly, date(2024, 4, 5))

	forStudent, err := Expand([]*model.Lesson{lesson}, date(2024, 4, 1), ViewpointStudent)
	require.NoError(t, err)
	require.Len(t, forStudent, 1)
	assert.Equal(t, "Mary Tutor", forStudent[0].CounterpartName)
	assert.Equal(t, "mary@example.org", forStudent[0].CounterpartEmail)

	forTutor, err := Expand([]*model.Lesson{lesson}, date(2024, 4, 1), ViewpointTutor)
	require.NoError(t, err)
	require.Len(t, forTutor, 1)
	assert.Equal(t, "Alex Student", forTutor[0].CounterpartName)
	assert.Equal(t, "alex@example.org", forTutor[0].CounterpartEmail)
}

func TestExpandMalformedTerm(t *testing.T) {
	t.Run("no end date", func(t *testing.T) {
		lesson := testLesson(1, date(2024, 4, 5), model.FrequencyWeekly, time.Time{})
		_, err := Expand([]*model.Lesson{lesson}, date(2024, 4, 1), ViewpointStudent)
		require.ErrorIs(t, err, ErrMalformedRecurrence)
	})

	t.Run("end before start", func(t *testing.T) {
		lesson := testLesson(1, date(2024, 4, 5), model.FrequencyWeekly, date(2023, 12, 31))
		_, err := Expand([]*model.Lesson{lesson}, date(2024, 4, 1), ViewpointStudent)
		require.ErrorIs(t, err, ErrMalformedRecurrence)
	})

	t.Run("no term at all", func(t *testing.T) {
		lesson := testLesson(1, date(2024, 4, 5), model.FrequencyWeekly, date(2024, 4, 19))
		lesson.Term = nil
		_, err := Expand([]*model.Lesson{lesson}, date(2024, 4, 1), ViewpointStudent)
		require.ErrorIs(t, err, ErrMalformedRecurrence)
	})
}

func TestExpandUnknownFrequency(t *testing.T) {
	lesson := testLesson(1, date(2024, 4, 5), model.Frequency("daily"), date(2024, 4, 19))

	_, err := Expand([]*model.Lesson{lesson}, date(2024, 4, 1), ViewpointStudent)
	require.ErrorIs(t, err, ErrUnknownFrequency)
}

func TestExpandNoLessons(t *testing.T) {
	occurrences, err := Expand(nil, date(2024, 4, 1), ViewpointStudent)
	require.NoError(t, err)
	assert.Empty(t, occurrences)
}

func TestOccurrenceTimeString(t *testing.T) {
	o := Occurrence{StartHour: 9, StartMinute: 5}
	assert.Equal(t, "09:05", o.TimeString())
}
