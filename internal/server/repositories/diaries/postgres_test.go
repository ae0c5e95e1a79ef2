package diaries

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/lifeboard/internal/common"
	"github.com/dmitrijs2005/lifeboard/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO diaries \(id, link, type\) VALUES \(\$1, \$2, \$3\)`).
		WithArgs("d1", "https://img/x.png", models.DiaryImage).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &models.DiaryEntry{ID: "d1", Link: "https://img/x.png", Type: models.DiaryImage})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO diaries`).WillReturnError(errors.New("check constraint"))

	if err := repo.Create(context.Background(), &models.DiaryEntry{ID: "d1"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestGet(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, link, type FROM diaries WHERE id = \$1$`).
		WithArgs("d1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "link", "type"}).AddRow("d1", "l", models.DiaryVideo))
	mock.ExpectQuery(`SELECT id, link, type FROM diaries WHERE id = \$1$`).
		WithArgs("d2").
		WillReturnError(sql.ErrNoRows)

	got, err := repo.Get(context.Background(), "d1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Type != models.DiaryVideo {
		t.Fatalf("unexpected entry: %+v", got)
	}

	if _, err := repo.Get(context.Background(), "d2"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestGetForUpdate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FOR UPDATE`).WithArgs("d1").WillReturnError(errors.New("boom"))

	_, err := repo.GetForUpdate(context.Background(), "d1")
	if err == nil || errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want db error, got %v", err)
	}
}

func TestListByType(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, link, type FROM diaries WHERE type = \$1`).
		WithArgs(models.DiaryImage).
		WillReturnRows(sqlmock.NewRows([]string{"id", "link", "type"}).
			AddRow("d1", "a", models.DiaryImage).
			AddRow("d2", "b", models.DiaryImage))

	got, err := repo.ListByType(context.Background(), models.DiaryImage)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Link != "a" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestListByType_Error(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM diaries`).WillReturnError(errors.New("boom"))

	if _, err := repo.ListByType(context.Background(), models.DiaryVideo); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM diaries WHERE id = \$1`).
		WithArgs("d1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM diaries WHERE id = \$1`).
		WithArgs("d9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "d1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Delete(context.Background(), "d9"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}
