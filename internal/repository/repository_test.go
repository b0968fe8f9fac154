package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"werkshift/internal/model"
	"werkshift/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	return gormDB, mock
}

func TestCatalogRepository_UpsertPosition_ReturnsStoredRow(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewCatalogRepository(gormDB)
	storedID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "positions".*ON CONFLICT \("slug"\) DO UPDATE.*RETURNING`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "description", "created_at"}).
			AddRow(storedID.String(), "Line Cook", "line cook", "hot line", time.Now()))
	mock.ExpectCommit()

	position := &model.Position{Name: "  line   COOK "}

	// Act
	err := repo.UpsertPosition(context.Background(), position)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, storedID, position.ID)
	assert.Equal(t, "Line Cook", position.Name)
	assert.Equal(t, "line cook", position.Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepository_FindPositionBySlug_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewCatalogRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "positions" WHERE slug = .* LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "description", "created_at"}))

	position, err := repo.FindPositionBySlug(context.Background(), "sommelier")

	assert.NoError(t, err)
	assert.Nil(t, position)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMakerRepository_Create_AlreadyExists(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewMakerRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "makers"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	// Act
	err := repo.Create(context.Background(), &model.Maker{ID: uuid.New(), Name: "Cafe Nola", Email: "owner@nola.test"})

	// Assert
	assert.ErrorIs(t, err, repository.ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepository_GetByID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewShiftRepository(gormDB)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "shifts" WHERE id = .* LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "maker_id", "name"}))

	shift, err := repo.GetByID(context.Background(), id)

	assert.NoError(t, err)
	assert.Nil(t, shift)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepository_Delete(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewShiftRepository(gormDB)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "shifts" WHERE id = `).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	n, err := repo.Delete(context.Background(), id)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepository_AttachPosition_Duplicate(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewShiftRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "shift_positions"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	sp := &model.ShiftPosition{
		ShiftID:       uuid.New(),
		PositionID:    uuid.New(),
		PaymentAmount: decimal.NewNullDecimal(decimal.RequireFromString("15")),
	}

	// Act
	err := repo.AttachPosition(context.Background(), sp, false)

	// Assert
	assert.ErrorIs(t, err, repository.ErrDuplicateAttachment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepository_Create_UnknownMaker(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewShiftRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "shifts"`).
		WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &model.Shift{MakerID: uuid.New(), Name: "Dinner service", DurationMinutes: 240})

	assert.ErrorIs(t, err, repository.ErrMakerNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepository_Exists_StoreUnavailable(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewShiftRepository(gormDB)
	connErr := errors.New("connection reset by peer")

	mock.ExpectQuery(`SELECT count\(\*\) FROM "shifts"`).WillReturnError(connErr)

	exists, err := repo.Exists(context.Background(), uuid.New())

	assert.False(t, exists)
	assert.ErrorIs(t, err, repository.ErrStoreUnavailable)
	assert.ErrorIs(t, err, connErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingRepository_AverageForWerker(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewRatingRepository(gormDB)
	unrated, rated := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT AVG\(score\) FROM "ratings" WHERE werker_id = `).
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(nil))
	mock.ExpectQuery(`SELECT AVG\(score\) FROM "ratings" WHERE werker_id = `).
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(4.5))

	none, err := repo.AverageForWerker(context.Background(), unrated)
	require.NoError(t, err)
	avg, err := repo.AverageForWerker(context.Background(), rated)
	require.NoError(t, err)

	assert.Nil(t, none)
	require.NotNil(t, avg)
	assert.InDelta(t, 4.5, *avg, 0.0001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInviteApplyRepository_TransitionStatus_NoIDs(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewInviteApplyRepository(gormDB)

	rows, err := repo.TransitionStatus(context.Background(), nil, model.StatusPending, model.StatusAccepted)

	assert.NoError(t, err)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInviteApplyRepository_TransitionStatus_ReturnsMovedRows(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewInviteApplyRepository(gormDB)
	first, second := uuid.New(), uuid.New()
	shiftID, werkerID, positionID := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE "invite_applies" SET "status"=.* WHERE .*id IN .* AND status = .*RETURNING \*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "shift_id", "werker_id", "position_id", "status", "type", "created_at", "updated_at"}).
			AddRow(first.String(), shiftID.String(), werkerID.String(), positionID.String(), "Accepted", "Invite", now, now))
	mock.ExpectCommit()

	// Act
	rows, err := repo.TransitionStatus(context.Background(), []uuid.UUID{first, second}, model.StatusPending, model.StatusAccepted)

	// Assert
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, first, rows[0].ID)
	assert.Equal(t, model.StatusAccepted, rows[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInviteApplyRepository_CreateIfAbsent(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewInviteApplyRepository(gormDB)
	storedID := uuid.New()
	newRow := func() *model.InviteApply {
		return &model.InviteApply{
			ShiftID:    uuid.New(),
			WerkerID:   uuid.New(),
			PositionID: uuid.New(),
			Status:     model.StatusPending,
			Type:       model.TypeInvite,
		}
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "invite_applies".*ON CONFLICT \("shift_id","werker_id","position_id"\) DO NOTHING RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(storedID.String()))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "invite_applies".*ON CONFLICT \("shift_id","werker_id","position_id"\) DO NOTHING RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	inserted := newRow()
	created, err := repo.CreateIfAbsent(context.Background(), inserted)
	require.NoError(t, err)
	existed, err := repo.CreateIfAbsent(context.Background(), newRow())
	require.NoError(t, err)

	assert.True(t, created)
	assert.Equal(t, storedID, inserted.ID)
	assert.False(t, existed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepository_AttachPosition_RefreshUpdatesOnlyPayment(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewShiftRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "shift_positions".*ON CONFLICT \("shift_id","position_id"\) DO UPDATE SET "payment_amount"="excluded"."payment_amount"$`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	sp := &model.ShiftPosition{
		ShiftID:       uuid.New(),
		PositionID:    uuid.New(),
		PaymentAmount: decimal.NewNullDecimal(decimal.RequireFromString("22.50")),
	}

	// Act
	err := repo.AttachPosition(context.Background(), sp, true)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepository_SearchPositions(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewShiftRepository(gormDB)
	columns := []string{"shift_id", "position_id", "payment_amount", "filled"}

	mock.ExpectQuery(`SELECT \* FROM "shift_positions" WHERE position_id = \$1 AND payment_amount = \$2$`).
		WillReturnRows(sqlmock.NewRows(columns))
	mock.ExpectQuery(`SELECT \* FROM "shift_positions" WHERE position_id = \$1$`).
		WillReturnRows(sqlmock.NewRows(columns))

	priced, err := repo.SearchPositions(context.Background(), uuid.New(), decimal.NewNullDecimal(decimal.RequireFromString("15")))
	require.NoError(t, err)
	unpriced, err := repo.SearchPositions(context.Background(), uuid.New(), decimal.NullDecimal{})
	require.NoError(t, err)

	assert.Empty(t, priced)
	assert.Empty(t, unpriced)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWerkerRepository_AttachCertification(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewWerkerRepository(gormDB)
	photo := "https://cdn.werk.test/servsafe.jpg"
	wc := &model.WerkerCertification{WerkerID: uuid.New(), CertificationID: uuid.New(), URLPhoto: &photo}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "werker_certifications"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "werker_certifications".*ON CONFLICT \("werker_id","certification_id"\) DO UPDATE SET "url_photo"="excluded"."url_photo"$`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	duplicate := repo.AttachCertification(context.Background(), wc, false)
	refreshed := repo.AttachCertification(context.Background(), wc, true)

	assert.ErrorIs(t, duplicate, repository.ErrDuplicateAttachment)
	assert.NoError(t, refreshed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWerkerRepository_FindByPosition(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewWerkerRepository(gormDB)
	werkerID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "werkers" JOIN werker_positions ON werker_positions.werker_id = werkers.id WHERE werker_positions.position_id = \$1 ORDER BY werkers.name_last`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name_first", "name_last", "email"}).
			AddRow(werkerID.String(), "Ada", "Lovelace", "ada@werk.test"))
	mock.ExpectQuery(`SELECT \* FROM "werker_positions" WHERE "werker_positions"."werker_id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"werker_id", "position_id"}))

	// Act
	werkers, err := repo.FindByPosition(context.Background(), uuid.New())

	// Assert
	require.NoError(t, err)
	require.Len(t, werkers, 1)
	assert.Equal(t, werkerID, werkers[0].ID)
	assert.Equal(t, "Lovelace", werkers[0].NameLast)
	assert.Empty(t, werkers[0].Positions)
	assert.NoError(t, mock.ExpectationsWereMet())
}
