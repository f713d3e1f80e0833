package postgres

import (
	"context"
	"database/sql"
	"errors"
	"events2/internal/models"
	"events2/internal/storage"
	"regexp"
	"testing"
	"testing/fstest"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return New(db, time.UTC), mock
}

func TestGetCurrentAndFutureEvents(t *testing.T) {
	t.Parallel()

	s, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT uid,pid FROM tx_events2_domain_model_event WHERE " +
			"((event_type = $1 AND event_begin > $2) OR " +
			"(event_type = $3 AND (event_end = 0 OR event_end > $4)) OR " +
			"(event_type = $5 AND (recurring_end = 0 OR recurring_end > $6))) " +
			"AND hidden = 0 AND deleted = 0 ORDER BY uid ASC",
	)).
		WithArgs("single", sqlmock.AnyArg(), "duration", sqlmock.AnyArg(), "recurring", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"uid", "pid"}).AddRow(1, 10).AddRow(3, 10))

	events, err := s.GetCurrentAndFutureEvents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.EventRecord{{ID: 1, PID: 10}, {ID: 3, PID: 10}}, events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCurrentAndFutureEventsEmpty(t *testing.T) {
	t.Parallel()

	s, mock := newMockStorage(t)

	mock.ExpectQuery("SELECT uid,pid FROM tx_events2_domain_model_event").
		WillReturnRows(sqlmock.NewRows([]string{"uid", "pid"}))

	events, err := s.GetCurrentAndFutureEvents(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestGetDaysInRange(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	day := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name        string
		storagePids []int
		categories  []int
		setupMock   func(mock sqlmock.Sqlmock)
	}{
		{
			name: "Without categories and storage pids",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(
					"SELECT event.uid,event.title,day.day FROM tx_events2_domain_model_day day " +
						"LEFT JOIN tx_events2_domain_model_event event ON day.event = event.uid " +
						"WHERE day.day >= $1 AND day.day < $2 AND day.hidden = 0",
				)).
					WithArgs(start.Unix(), end.Unix()).
					WillReturnRows(sqlmock.NewRows([]string{"uid", "title", "day"}).AddRow(1, "Christmas", day.Unix()))
			},
		},
		{
			name:        "With categories and storage pids",
			storagePids: []int{10, 11},
			categories:  []int{3},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(
					"LEFT JOIN sys_category_record_mm category_mm ON event.uid = category_mm.uid_foreign " +
						"AND category_mm.tablenames = $1 AND category_mm.fieldname = $2 " +
						"WHERE category_mm.uid_local = ANY($3) AND event.pid = ANY($4) AND day.day >= $5 AND day.day < $6",
				)).
					WithArgs("tx_events2_domain_model_event", "categories", sqlmock.AnyArg(), sqlmock.AnyArg(), start.Unix(), end.Unix()).
					WillReturnRows(sqlmock.NewRows([]string{"uid", "title", "day"}).AddRow(1, "Christmas", day.Unix()))
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s, mock := newMockStorage(t)
			tc.setupMock(mock)

			days, err := s.GetDaysInRange(context.Background(), start, end, tc.storagePids, tc.categories)
			require.NoError(t, err)
			require.Len(t, days, 1)
			assert.Equal(t, 1, days[0].EventID)
			assert.Equal(t, "Christmas", days[0].Title)
			assert.True(t, day.Equal(days[0].Day))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetColumnsFromTable(t *testing.T) {
	t.Parallel()

	s, mock := newMockStorage(t)

	cols := []string{"column_name", "data_type", "is_nullable", "column_default", "key", "comment"}
	mock.ExpectQuery("FROM information_schema.columns").
		WithArgs("tx_events2_domain_model_event").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("uid", "integer", "NO", "nextval('seq')", "PRI", nil).
			AddRow("recurring_event", "smallint", "NO", "0", "", nil))

	columns, err := s.GetColumnsFromTable(context.Background(), "tx_events2_domain_model_event")
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "PRI", columns["uid"].Key)
	assert.Equal(t, "smallint", columns["recurring_event"].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetColumnsFromUnknownTable(t *testing.T) {
	t.Parallel()

	s, mock := newMockStorage(t)

	mock.ExpectQuery("FROM information_schema.columns").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "column_default", "key", "comment"}))

	_, err := s.GetColumnsFromTable(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrTableNotFound)
}

func TestGetEventNotFound(t *testing.T) {
	t.Parallel()

	s, mock := newMockStorage(t)

	mock.ExpectQuery("FROM tx_events2_domain_model_event e").
		WithArgs(999).
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetEvent(context.Background(), 999)
	assert.ErrorIs(t, err, storage.ErrEventNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func eventRow(begin int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"uid", "pid", "hidden", "event_type", "top_of_list", "title", "teaser", "detail",
		"event_begin", "event_end", "recurring_end", "xth", "weekday", "each_weeks", "each_months",
		"free_entry", "ticket_link_title", "ticket_link",
		"l_uid", "l_pid", "location", "street", "house_number", "zip", "city", "country",
	}).AddRow(
		1, 10, 0, "recurring", 1, "Weekly meeting", "teaser", "detail",
		begin, 0, 0, 0, 0, 1, 0,
		1, "Tickets", "https://example.com",
		5, 10, "Town hall", "Echterdinger Straße", "57", "70794", "Filderstadt", "",
	)
}

func TestGetEvent(t *testing.T) {
	t.Parallel()

	s, mock := newMockStorage(t)
	begin := time.Date(2024, 12, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM tx_events2_domain_model_event e").
		WithArgs(1).
		WillReturnRows(eventRow(begin.Unix()))
	mock.ExpectQuery("FROM tx_events2_domain_model_organizer o").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"uid", "pid", "organizer", "link_title", "link"}).
			AddRow(1, 10, "Stefan", "", ""))
	mock.ExpectQuery("FROM sys_category c").
		WithArgs(1, "tx_events2_domain_model_event").
		WillReturnRows(sqlmock.NewRows([]string{"uid", "title"}).AddRow(3, "Music"))
	mock.ExpectQuery("FROM tx_events2_domain_model_time").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"uid", "time_entry", "time_begin", "time_end", "duration"}).
			AddRow(7, "", "19:00", "21:00", ""))
	mock.ExpectQuery("FROM tx_events2_domain_model_exception x").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"uid", "exception_type", "exception_date", "exception_details", "t_uid", "time_begin", "time_end"}).
			AddRow(2, "Remove", begin.AddDate(0, 0, 7).Unix(), "", 0, "", ""))

	event, err := s.GetEvent(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, models.EventTypeRecurring, event.EventType)
	assert.True(t, event.TopOfList)
	assert.True(t, event.FreeEntry)
	assert.True(t, begin.Equal(event.EventBegin))
	assert.True(t, event.EventEnd.IsZero())
	require.NotNil(t, event.Location)
	assert.Equal(t, "Town hall", event.Location.Location)
	require.NotNil(t, event.TicketLink)
	assert.Equal(t, "https://example.com", event.TicketLink.Link)
	require.Len(t, event.Organizers, 1)
	assert.Nil(t, event.Organizers[0].Link)
	assert.Equal(t, []models.Category{{ID: 3, Title: "Music"}}, event.Categories)
	require.NotNil(t, event.EventTime)
	assert.Equal(t, "19:00", event.EventTime.TimeBegin)
	require.Len(t, event.Exceptions, 1)
	assert.Equal(t, models.ExceptionRemove, event.Exceptions[0].ExceptionType)
	assert.Nil(t, event.Exceptions[0].ExceptionTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

var dayColumns = []string{
	"uid", "pid", "day", "day_time", "sort_day_time", "same_day_time",
	"e_uid", "e_pid", "event_type", "top_of_list", "title", "teaser",
	"event_begin", "event_end", "free_entry", "location",
}

func TestListDaysLatestIsGrouped(t *testing.T) {
	t.Parallel()

	s, mock := newMockStorage(t)
	from := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)

	mock.ExpectPrepare(regexp.QuoteMeta(
		"SELECT (ARRAY_AGG(day.uid ORDER BY day.day_time, day.uid))[1] AS uid," +
			"(ARRAY_AGG(day.pid ORDER BY day.day_time, day.uid))[1] AS pid," +
			"MIN(day.day) AS day,MIN(day.day_time) AS day_time",
	)).
		ExpectQuery().
		WithArgs(from.Unix(), 1).
		WillReturnRows(sqlmock.NewRows(dayColumns).AddRow(
			4, 10, from.Unix(), from.Add(19*time.Hour).Unix(), from.Add(19*time.Hour).Unix(), from.Add(19*time.Hour).Unix(),
			1, 10, "single", 0, "Today", "", from.Unix(), 0, 0, 0,
		))

	days, err := s.ListDays(context.Background(), models.DayFilter{
		ListType:  models.ListTypeLatest,
		Organizer: 1,
		From:      from,
		Limit:     7,
	})
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "Today", days[0].Event.Title)
	assert.Nil(t, days[0].Event.Location)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListDaysQueryShape(t *testing.T) {
	t.Parallel()

	s, mock := newMockStorage(t)
	from := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	mock.ExpectPrepare(regexp.QuoteMeta(
		"WHERE day.day >= $1 AND day.day < $2 AND " +
			"EXISTS (SELECT 1 FROM sys_category_record_mm cm WHERE cm.uid_foreign = event.uid " +
			"AND cm.tablenames = $3 AND cm.fieldname = 'categories' AND cm.uid_local = ANY($4)) " +
			"AND event.pid = ANY($5) AND day.hidden = 0 AND event.hidden = 0 AND event.deleted = 0 " +
			"ORDER BY event.top_of_list DESC, sort_day_time ASC, day_time ASC",
	)).
		ExpectQuery().
		WithArgs(from.Unix(), to.Unix(), "tx_events2_domain_model_event", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(dayColumns))

	days, err := s.ListDays(context.Background(), models.DayFilter{
		ListType:    models.ListTypeToday,
		Categories:  []int{3},
		StoragePIDs: []int{10},
		From:        from,
		To:          to,
	})
	require.NoError(t, err)
	assert.Empty(t, days)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchDays(t *testing.T) {
	t.Parallel()

	s, mock := newMockStorage(t)
	begin := time.Date(2024, 12, 1, 15, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"WHERE day.day >= $1 AND (event.title ILIKE $2 OR event.teaser ILIKE $3) AND event.location = $4",
	)).
		WithArgs(models.Midnight(begin).Unix(), `%50\%%`, `%50\%%`, 5).
		WillReturnRows(sqlmock.NewRows(dayColumns))

	days, err := s.SearchDays(context.Background(), models.Search{
		Search:     "50%",
		EventBegin: begin,
		Location:   5,
	})
	require.NoError(t, err)
	assert.Empty(t, days)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDayNotFound(t *testing.T) {
	t.Parallel()

	s, mock := newMockStorage(t)
	ts := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM tx_events2_domain_model_day").
		WithArgs(1, ts.Unix()).
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetDay(context.Background(), 1, ts)
	assert.ErrorIs(t, err, storage.ErrDayNotFound)
}

func TestGetLocationNotFound(t *testing.T) {
	t.Parallel()

	s, mock := newMockStorage(t)

	mock.ExpectQuery("FROM tx_events2_domain_model_location").
		WithArgs(5).
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetLocation(context.Background(), 5)
	assert.ErrorIs(t, err, storage.ErrLocationNotFound)
}

func TestReplaceDays(t *testing.T) {
	t.Parallel()

	s, mock := newMockStorage(t)
	day := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM tx_events2_domain_model_day").
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 3))
	prep := mock.ExpectPrepare("INSERT INTO tx_events2_domain_model_day")
	prep.ExpectExec().
		WithArgs(10, day.Unix(), day.Unix(), day.Unix(), day.Unix(), 1).
		WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().
		WithArgs(10, day.AddDate(0, 0, 1).Unix(), day.AddDate(0, 0, 1).Unix(), day.Unix(), day.AddDate(0, 0, 1).Unix(), 1).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := s.ReplaceDays(context.Background(), 1, []models.Day{
		{PID: 10, Day: day, DayTime: day, SortDayTime: day, SameDayTime: day},
		{PID: 10, Day: day.AddDate(0, 0, 1), DayTime: day.AddDate(0, 0, 1), SortDayTime: day, SameDayTime: day.AddDate(0, 0, 1)},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceDaysRollsBackOnError(t *testing.T) {
	t.Parallel()

	s, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM tx_events2_domain_model_day").
		WithArgs(1).
		WillReturnError(errors.New("database error"))
	mock.ExpectRollback()

	err := s.ReplaceDays(context.Background(), 1, nil)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEventNotFound(t *testing.T) {
	t.Parallel()

	s, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE tx_events2_domain_model_event").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := s.UpdateEvent(context.Background(), &models.Event{ID: 42, EventType: models.EventTypeSingle})
	assert.ErrorIs(t, err, storage.ErrEventNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEvent(t *testing.T) {
	t.Parallel()

	s, mock := newMockStorage(t)
	begin := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO tx_events2_domain_model_event").
		WillReturnRows(sqlmock.NewRows([]string{"uid"}).AddRow(12))
	mock.ExpectExec("INSERT INTO tx_events2_event_organizer_mm").
		WithArgs(12, 1, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO sys_category_record_mm").
		WithArgs(3, 12, "tx_events2_domain_model_event", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO tx_events2_domain_model_time").
		WithArgs(12, "", "19:00", "", "").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	id, err := s.CreateEvent(context.Background(), &models.Event{
		PID:        10,
		EventType:  models.EventTypeSingle,
		Title:      "Concert",
		EventBegin: begin,
		Organizers: []models.Organizer{{ID: 1}},
		Categories: []models.Category{{ID: 3}},
		EventTime:  &models.Time{TimeBegin: "19:00"},
	})
	require.NoError(t, err)
	assert.Equal(t, 12, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateRecurringColumn(t *testing.T) {
	t.Parallel()

	s, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT uid, recurring_event, event_end FROM tx_events2_domain_model_event").
		WillReturnRows(sqlmock.NewRows([]string{"uid", "recurring_event", "event_end"}).
			AddRow(1, 1, 1735084800).
			AddRow(2, 0, 1735171200))
	mock.ExpectExec(regexp.QuoteMeta("SET event_type = $1, recurring_end = $2, event_end = 0")).
		WithArgs("recurring", int64(1735084800), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("SET event_type = $1 WHERE uid = $2")).
		WithArgs("single", 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	count, err := s.MigrateRecurringColumn(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceInFlexForms(t *testing.T) {
	t.Parallel()

	s, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET pi_flexform = REPLACE(pi_flexform, $1, $2) WHERE pi_flexform LIKE $3")).
		WithArgs("Event-&gt;listToday", "Day-&gt;listToday", "%Event-&gt;listToday%").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("SET pi_flexform = REPLACE(pi_flexform, $1, $2) WHERE pi_flexform LIKE $3")).
		WithArgs("Event-&gt;listRange", "Day-&gt;listThisWeek", "%Event-&gt;listRange%").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	affected, err := s.ReplaceInFlexForms(context.Background(), []models.FlexFormReplacement{
		{Old: "Event-&gt;listToday", New: "Day-&gt;listToday"},
		{Old: "Event-&gt;listRange", New: "Day-&gt;listThisWeek"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceInFlexFormsRollsBackOnError(t *testing.T) {
	t.Parallel()

	s, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE tt_content").
		WillReturnError(errors.New("database error"))
	mock.ExpectRollback()

	_, err := s.ReplaceInFlexForms(context.Background(), []models.FlexFormReplacement{
		{Old: "Event-&gt;listToday", New: "Day-&gt;listToday"},
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyMigrations(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	fsys := fstest.MapFS{
		"0001_init.sql": {Data: []byte("-- +migrate Up\nCREATE TABLE a (id INT);\n-- +migrate Down\nDROP TABLE a;\n")},
		"0002_more.sql": {Data: []byte("CREATE TABLE b (id INT);")},
		"README.md":     {Data: []byte("ignored")},
	}

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectQuery("SELECT 1 FROM schema_migrations").
		WithArgs("0001_init.sql").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	mock.ExpectQuery("SELECT 1 FROM schema_migrations").
		WithArgs("0002_more.sql").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE b (id INT);")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schema_migrations").
		WithArgs("0002_more.sql", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = ApplyMigrations(context.Background(), db, fsys, ".")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExtractUpMigration(t *testing.T) {
	t.Parallel()

	content := "-- +migrate Up\nCREATE TABLE a (id INT);\n-- +migrate Down\nDROP TABLE a;\n"
	assert.Equal(t, "\nCREATE TABLE a (id INT);\n", ExtractUpMigration(content))
	assert.Equal(t, "SELECT 1;", ExtractUpMigration("SELECT 1;"))
}
