package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syncura360/api/internal/domain/ward"
)

func TestBedDeleteVacant(t *testing.T) {
	room := ward.RoomID{HospitalID: 1, Name: "ER-1"}

	t.Run("reports how many beds actually went away", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBedRepository(db)

		mock.ExpectExec(`DELETE FROM clinical\.beds`).
			WithArgs(room.HospitalID, room.Name, room.HospitalID, room.Name, string(ward.BedVacant), 3).
			WillReturnResult(sqlmock.NewResult(0, 2))

		removed, err := repo.DeleteVacant(context.Background(), room, 3)
		require.NoError(t, err)
		assert.Equal(t, 2, removed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("is a no-op for zero", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBedRepository(db)

		removed, err := repo.DeleteVacant(context.Background(), room, 0)
		require.NoError(t, err)
		assert.Zero(t, removed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBedCounts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBedRepository(db)

	rows := sqlmock.NewRows([]string{"status", "n"}).
		AddRow("vacant", 3).
		AddRow("occupied", 2).
		AddRow("under_maintenance", 1)
	mock.ExpectQuery(`SELECT status, COUNT\(\*\) AS n FROM "clinical"\."beds"`).
		WithArgs(uint(1), "ER-1").
		WillReturnRows(rows)

	counts, err := repo.Counts(context.Background(), ward.RoomID{HospitalID: 1, Name: "ER-1"})
	require.NoError(t, err)
	assert.Equal(t, ward.BedCounts{Total: 6, Vacant: 3, Occupied: 2, Maintenance: 1}, counts)
	assert.Equal(t, counts.Total, counts.Vacant+counts.Occupied+counts.Maintenance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBedFirstByStatusForUpdate(t *testing.T) {
	t.Run("locks the lowest-numbered match", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBedRepository(db)

		rows := sqlmock.NewRows([]string{"hospital_id", "room_name", "bed_no", "status"}).
			AddRow(1, "ER-1", 2, "vacant")
		mock.ExpectQuery(`SELECT \* FROM "clinical"\."beds" .* ORDER BY bed_no ASC,.* FOR UPDATE`).
			WithArgs(uint(1), "ER-1", string(ward.BedVacant), 1).
			WillReturnRows(rows)

		bed, err := repo.FirstByStatusForUpdate(context.Background(), ward.RoomID{HospitalID: 1, Name: "ER-1"}, ward.BedVacant)
		require.NoError(t, err)
		assert.Equal(t, 2, bed.BedNo)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps an empty room to the domain error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBedRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "clinical"\."beds"`).
			WithArgs(uint(1), "ER-1", string(ward.BedOccupied), 1).
			WillReturnRows(sqlmock.NewRows([]string{"bed_no"}))

		_, err := repo.FirstByStatusForUpdate(context.Background(), ward.RoomID{HospitalID: 1, Name: "ER-1"}, ward.BedOccupied)
		assert.ErrorIs(t, err, ward.ErrBedNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRoomDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoomRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "clinical"\."rooms"`).
		WithArgs(uint(1), "ER-9").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), ward.RoomID{HospitalID: 1, Name: "ER-9"})
	assert.ErrorIs(t, err, ward.ErrRoomNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
