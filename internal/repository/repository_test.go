package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mysqldriver "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"heatshield/internal/db"
	"heatshield/internal/model"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := db.Open(mysqldriver.New(mysqldriver.Config{Conn: sqlDB, SkipInitializeWithVersion: true}))
	require.NoError(t, err)
	return gormDB, mock
}

var userColumns = []string{"id", "name", "email", "password_hash", "phone", "location", "profile_image", "created_at", "last_login", "search_count"}

func TestUserRepository_Create(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewUserRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `user`")).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	user := &model.User{Name: "A", Email: "a@x.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, model.UserID(7), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_Duplicate(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewUserRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `user`")).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &model.User{Name: "A", Email: "a@x.com", PasswordHash: "hash"})
	assert.True(t, db.IsDuplicateKey(err))
}

func TestUserRepository_FindByEmail(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewUserRepository(gormDB)

	created := time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(userColumns).
		AddRow(3, "A", "a@x.com", "hash", nil, "Delhi", nil, created, nil, 2)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `user` WHERE email = ?")).
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, model.UserID(3), user.ID)
	assert.Equal(t, "A", user.Name)
	assert.Nil(t, user.Phone)
	require.NotNil(t, user.Location)
	assert.Equal(t, "Delhi", *user.Location)
	assert.Nil(t, user.LastLogin)
	assert.Equal(t, 2, user.SearchCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByID_NotFound(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewUserRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `user` WHERE `user`.`id` = ?")).
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_UpdatePasswordHash(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewUserRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `user` SET `password_hash`=? WHERE id = ?")).
		WithArgs("new-hash", 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.UpdatePasswordHash(context.Background(), 5, "new-hash"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateContact_Empty(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewUserRepository(gormDB)

	require.NoError(t, repo.UpdateContact(context.Background(), 5, map[string]interface{}{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateContact(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewUserRepository(gormDB)

	location := "Bangalore"
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `user` SET `location`=? WHERE id = ?")).
		WithArgs(sqlmock.AnyArg(), 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.UpdateContact(context.Background(), 5, map[string]interface{}{"location": &location}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

var heatmapColumns = []string{"id", "user_id", "latitude", "longitude", "temperature", "timestamp"}

func TestHeatmapRepository_Create(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewHeatmapRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `heatmap_data`")).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectCommit()

	temp := 41.2
	sample := &model.HeatmapData{UserID: 3, Latitude: 12.9, Longitude: 77.6, Temperature: &temp}
	require.NoError(t, repo.Create(context.Background(), sample))
	assert.Equal(t, uint(11), sample.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHeatmapRepository_List_All(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewHeatmapRepository(gormDB)

	ts := time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(heatmapColumns).
		AddRow(1, 3, 12.9, 77.6, 41.2, ts).
		AddRow(2, 4, 28.6, 77.2, nil, ts)
	mock.ExpectQuery(`^SELECT \* FROM ` + "`heatmap_data`" + `$`).
		WillReturnRows(rows)

	samples, err := repo.List(context.Background(), model.HeatmapQuery{})
	require.NoError(t, err)
	require.Len(t, samples, 2)
	require.NotNil(t, samples[0].Temperature)
	assert.Equal(t, 41.2, *samples[0].Temperature)
	assert.Nil(t, samples[1].Temperature)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHeatmapRepository_List_Empty(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewHeatmapRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `heatmap_data`")).
		WillReturnRows(sqlmock.NewRows(heatmapColumns))

	samples, err := repo.List(context.Background(), model.HeatmapQuery{})
	require.NoError(t, err)
	assert.NotNil(t, samples)
	assert.Empty(t, samples)
}

func TestHeatmapRepository_List_BoundsAndPage(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewHeatmapRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `heatmap_data` WHERE latitude BETWEEN ? AND ? AND longitude BETWEEN ? AND ? ORDER BY id LIMIT")).
		WillReturnRows(sqlmock.NewRows(heatmapColumns).AddRow(5, 3, 13.0, 77.5, 39.0, time.Now()))

	samples, err := repo.List(context.Background(), model.HeatmapQuery{
		Bounds: &model.BoundingBox{LatMin: 12, LatMax: 14, LonMin: 77, LonMax: 78},
		Limit:  10,
		Offset: 20,
	})
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, uint(5), samples[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHeatmapRepository_List_Error(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewHeatmapRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `heatmap_data`")).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.List(context.Background(), model.HeatmapQuery{})
	assert.Error(t, err)
}
