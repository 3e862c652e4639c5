package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"valoritario/catalog-service/internal/app/catalog/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// BrandRepositoryTestSuite тестовый suite для репозитория брендов
type BrandRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  BrandRepository
	sqlDB *sql.DB
}

func TestBrandRepositorySuite(t *testing.T) {
	suite.Run(t, new(BrandRepositoryTestSuite))
}

func (s *BrandRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewBrandRepository(s.db)
}

func (s *BrandRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

func (s *BrandRepositoryTestSuite) TestCreate_Success() {
	ctx := context.Background()

	brand := &entity.Brand{
		ID:        uuid.New(),
		Name:      "Mavesa",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "brands"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	err := s.repo.Create(ctx, brand)

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *BrandRepositoryTestSuite) TestCreate_DuplicateName() {
	ctx := context.Background()

	brand := &entity.Brand{ID: uuid.New(), Name: "Mavesa"}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "brands"`)).
		WillReturnError(gorm.ErrDuplicatedKey)
	s.mock.ExpectRollback()

	err := s.repo.Create(ctx, brand)

	s.ErrorIs(err, ErrDuplicateKey)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *BrandRepositoryTestSuite) TestGetByID_Success() {
	ctx := context.Background()
	id := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "name", "logo", "created_at", "updated_at"}).
		AddRow(id, "Mavesa", nil, time.Now(), time.Now())

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "brands" WHERE id = $1`)).
		WillReturnRows(rows)

	brand, err := s.repo.GetByID(ctx, id)

	s.NoError(err)
	s.NotNil(brand)
	s.Equal("Mavesa", brand.Name)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *BrandRepositoryTestSuite) TestGetByID_NotFound() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "brands" WHERE id = $1`)).
		WillReturnError(gorm.ErrRecordNotFound)

	brand, err := s.repo.GetByID(ctx, uuid.New())

	s.ErrorIs(err, ErrBrandNotFound)
	s.Nil(brand)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *BrandRepositoryTestSuite) TestList_WithNameFilter() {
	ctx := context.Background()

	s.mock.ExpectQuery(`SELECT count\(\*\) FROM "brands"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows([]string{"id", "name", "logo", "created_at", "updated_at"}).
		AddRow(uuid.New(), "Mavesa", nil, time.Now(), time.Now())
	s.mock.ExpectQuery(`SELECT \* FROM "brands" WHERE brands\.name ILIKE`).
		WillReturnRows(rows)

	brands, total, err := s.repo.List(ctx, &entity.BrandFilter{Name: "mav", Page: 1, Limit: 10})

	s.NoError(err)
	s.Len(brands, 1)
	s.Equal(int64(1), total)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *BrandRepositoryTestSuite) TestUpdate_NotFound() {
	ctx := context.Background()

	brand := &entity.Brand{ID: uuid.New(), Name: "Mavesa"}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "brands" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	err := s.repo.Update(ctx, brand)

	s.ErrorIs(err, ErrBrandNotFound)
	s.NoError(s.mock.ExpectationsWereMet())
}
