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

// ListingRepositoryTestSuite тестовый suite для репозитория листингов
type ListingRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  ListingRepository
	sqlDB *sql.DB
}

func TestListingRepositorySuite(t *testing.T) {
	suite.Run(t, new(ListingRepositoryTestSuite))
}

func (s *ListingRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewListingRepository(s.db)
}

func (s *ListingRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

func listingColumns() []string {
	return []string{"id", "supermarket_id", "brand_product_id", "unit", "price", "in_stock", "created_by", "created_at", "updated_at"}
}

// ===================== FindByUniqueKey Tests =====================

func (s *ListingRepositoryTestSuite) TestFindByUniqueKey_Success() {
	ctx := context.Background()
	id := uuid.New()
	supermarketID := uuid.New()
	brandProductID := uuid.New()

	rows := sqlmock.NewRows(listingColumns()).
		AddRow(id, supermarketID, brandProductID, "1000 g", 4.5, true, uuid.New(), time.Now(), time.Now())

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "supermarket_products" WHERE supermarket_id = $1 AND brand_product_id = $2 AND unit = $3`)).
		WillReturnRows(rows)

	listing, err := s.repo.FindByUniqueKey(ctx, supermarketID, brandProductID, "1000 g")

	s.NoError(err)
	s.NotNil(listing)
	s.Equal(id, listing.ID)
	s.Equal("1000 g", listing.Unit)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ListingRepositoryTestSuite) TestFindByUniqueKey_NotFound() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "supermarket_products" WHERE supermarket_id = $1 AND brand_product_id = $2 AND unit = $3`)).
		WillReturnError(gorm.ErrRecordNotFound)

	listing, err := s.repo.FindByUniqueKey(ctx, uuid.New(), uuid.New(), "1000 g")

	s.ErrorIs(err, ErrListingNotFound)
	s.Nil(listing)

	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== Search Tests =====================

func (s *ListingRepositoryTestSuite) TestSearch_EmptyResult() {
	ctx := context.Background()

	// Count и выборка используют один и тот же предикат
	s.mock.ExpectQuery(`SELECT count\(\*\) FROM "supermarket_products" JOIN supermarkets`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	s.mock.ExpectQuery(`SELECT .* FROM "supermarket_products" JOIN supermarkets`).
		WillReturnRows(sqlmock.NewRows(listingColumns()))

	listings, total, err := s.repo.Search(ctx, &entity.ListingFilter{
		City:      "Caracas",
		SortBy:    "price",
		SortOrder: "asc",
		Page:      1,
		Limit:     10,
	})

	s.NoError(err)
	s.Empty(listings)
	s.Equal(int64(0), total)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ListingRepositoryTestSuite) TestSearch_PageBeyondData() {
	ctx := context.Background()

	// Страница за пределами данных: total считается независимо от page/limit,
	// поэтому остается ненулевым при пустой выборке
	s.mock.ExpectQuery(`SELECT count\(\*\) FROM "supermarket_products" JOIN supermarkets`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))
	s.mock.ExpectQuery(`SELECT .* FROM "supermarket_products" JOIN supermarkets`).
		WillReturnRows(sqlmock.NewRows(listingColumns()))

	listings, total, err := s.repo.Search(ctx, &entity.ListingFilter{
		City:      "Caracas",
		SortBy:    "price",
		SortOrder: "asc",
		Page:      100,
		Limit:     10,
	})

	s.NoError(err)
	s.Empty(listings)
	s.Equal(int64(42), total)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ListingRepositoryTestSuite) TestSearch_CountError() {
	ctx := context.Background()

	s.mock.ExpectQuery(`SELECT count\(\*\) FROM "supermarket_products"`).
		WillReturnError(sql.ErrConnDone)

	_, _, err := s.repo.Search(ctx, &entity.ListingFilter{
		SortBy:    "price",
		SortOrder: "asc",
		Page:      1,
		Limit:     10,
	})

	s.Error(err)
	s.Contains(err.Error(), "failed to count listings")

	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== CreateWithContribution Tests =====================

func (s *ListingRepositoryTestSuite) TestCreateWithContribution_Success() {
	ctx := context.Background()
	userID := uuid.New()

	listing := &entity.SupermarketProduct{
		ID:             uuid.New(),
		SupermarketID:  uuid.New(),
		BrandProductID: uuid.New(),
		Unit:           "1000 g",
		Price:          4.5,
		InStock:        true,
		CreatedBy:      userID,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	// Листинг и запись аудита в одной транзакции
	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "supermarket_products"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "product_contributions"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	err := s.repo.CreateWithContribution(ctx, listing, userID)

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ListingRepositoryTestSuite) TestCreateWithContribution_DuplicateKey() {
	ctx := context.Background()
	userID := uuid.New()

	listing := &entity.SupermarketProduct{
		ID:             uuid.New(),
		SupermarketID:  uuid.New(),
		BrandProductID: uuid.New(),
		Unit:           "1000 g",
		Price:          4.5,
	}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "supermarket_products"`)).
		WillReturnError(gorm.ErrDuplicatedKey)
	s.mock.ExpectRollback()

	err := s.repo.CreateWithContribution(ctx, listing, userID)

	s.ErrorIs(err, ErrDuplicateKey)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ListingRepositoryTestSuite) TestCreateWithContribution_AuditFailureRollsBack() {
	ctx := context.Background()
	userID := uuid.New()

	listing := &entity.SupermarketProduct{
		ID:             uuid.New(),
		SupermarketID:  uuid.New(),
		BrandProductID: uuid.New(),
		Unit:           "1000 g",
		Price:          4.5,
	}

	// Сбой записи аудита откатывает и вставку листинга
	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "supermarket_products"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "product_contributions"`)).
		WillReturnError(sql.ErrConnDone)
	s.mock.ExpectRollback()

	err := s.repo.CreateWithContribution(ctx, listing, userID)

	s.Error(err)
	s.Contains(err.Error(), "failed to create listing with contribution")

	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== UpdatePriceWithContribution Tests =====================

func (s *ListingRepositoryTestSuite) TestUpdatePriceWithContribution_Success() {
	ctx := context.Background()
	id := uuid.New()
	userID := uuid.New()

	rows := sqlmock.NewRows(listingColumns()).
		AddRow(id, uuid.New(), uuid.New(), "1000 g", 4.5, true, uuid.New(), time.Now(), time.Now())

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "supermarket_products" WHERE id = $1`)).
		WillReturnRows(rows)
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "supermarket_products" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "product_contributions"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	listing, err := s.repo.UpdatePriceWithContribution(ctx, id, 6.25, userID)

	s.NoError(err)
	s.NotNil(listing)
	s.Equal(6.25, listing.Price)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ListingRepositoryTestSuite) TestUpdatePriceWithContribution_NotFound() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "supermarket_products" WHERE id = $1`)).
		WillReturnError(gorm.ErrRecordNotFound)
	s.mock.ExpectRollback()

	listing, err := s.repo.UpdatePriceWithContribution(ctx, uuid.New(), 6.25, uuid.New())

	s.ErrorIs(err, ErrListingNotFound)
	s.Nil(listing)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ListingRepositoryTestSuite) TestUpdatePriceWithContribution_AuditFailureRollsBack() {
	ctx := context.Background()
	id := uuid.New()

	rows := sqlmock.NewRows(listingColumns()).
		AddRow(id, uuid.New(), uuid.New(), "1000 g", 4.5, true, uuid.New(), time.Now(), time.Now())

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "supermarket_products" WHERE id = $1`)).
		WillReturnRows(rows)
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "supermarket_products" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "product_contributions"`)).
		WillReturnError(sql.ErrConnDone)
	s.mock.ExpectRollback()

	_, err := s.repo.UpdatePriceWithContribution(ctx, id, 6.25, uuid.New())

	s.Error(err)
	s.Contains(err.Error(), "failed to update price with contribution")

	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== UpdateStockWithContribution Tests =====================

func (s *ListingRepositoryTestSuite) TestUpdateStockWithContribution_Success() {
	ctx := context.Background()
	id := uuid.New()
	userID := uuid.New()

	rows := sqlmock.NewRows(listingColumns()).
		AddRow(id, uuid.New(), uuid.New(), "1000 g", 4.5, true, uuid.New(), time.Now(), time.Now())

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "supermarket_products" WHERE id = $1`)).
		WillReturnRows(rows)
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "supermarket_products" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "product_contributions"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	listing, err := s.repo.UpdateStockWithContribution(ctx, id, false, userID)

	s.NoError(err)
	s.NotNil(listing)
	s.False(listing.InStock)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ListingRepositoryTestSuite) TestUpdateStockWithContribution_NotFound() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "supermarket_products" WHERE id = $1`)).
		WillReturnError(gorm.ErrRecordNotFound)
	s.mock.ExpectRollback()

	_, err := s.repo.UpdateStockWithContribution(ctx, uuid.New(), false, uuid.New())

	s.ErrorIs(err, ErrListingNotFound)
	s.NoError(s.mock.ExpectationsWereMet())
}
