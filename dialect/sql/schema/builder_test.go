package schema

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeeisel/yessql"
	"github.com/joeeisel/yessql/dialect/sql"
)

// ddlResult is the result every successful DDL statement returns.
var ddlResult = sqlmock.NewResult(0, 0)

func newTestBuilder(t *testing.T, dialectName string, opts ...BuilderOption) (*Builder, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := yessql.NewConfig(
		yessql.WithTablePrefix("yx_"),
		yessql.WithDialect(dialectName),
	)
	b, err := NewBuilder(cfg, sql.OpenDB(dialectName, db), opts...)
	require.NoError(t, err)
	return b, mock
}

func TestBuilder_CreateDocumentTable(t *testing.T) {
	b, mock := newTestBuilder(t, "mysql")
	mock.ExpectExec("CREATE TABLE `yx_Blog_Document` (`Id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY, `Type` VARCHAR(255) NOT NULL, `Content` LONGTEXT, `Version` INT NOT NULL DEFAULT 0)").
		WillReturnResult(ddlResult)

	b.CreateDocumentTable(context.Background(), "Blog")
	require.NoError(t, b.Err())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBuilder_CreateMapIndexTable(t *testing.T) {
	b, mock := newTestBuilder(t, "mysql")
	mock.ExpectExec("CREATE TABLE `yx_Blog_TitleIndex` (`Id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY, `DocumentId` INT, `Title` VARCHAR(255))").
		WillReturnResult(ddlResult)
	mock.ExpectExec("ALTER TABLE `yx_Blog_TitleIndex` ADD CONSTRAINT `FK_BlogTitleIndex` FOREIGN KEY (`DocumentId`) REFERENCES `yx_Blog_Document` (`Id`)").
		WillReturnResult(ddlResult)
	mock.ExpectExec("CREATE INDEX `IDX_FK_Blog_TitleIndex` ON `yx_Blog_TitleIndex` (`DocumentId`)").
		WillReturnResult(ddlResult)

	b.CreateMapIndexTable(context.Background(), "TitleIndex", func(t *CreateTableCommand) {
		t.Column("Title", sql.String, WithLength(255))
	}, "Blog")
	require.NoError(t, b.Err())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBuilder_CreateMapIndexTable_SQLiteSkipsForeignKey(t *testing.T) {
	b, mock := newTestBuilder(t, "sqlite")
	mock.ExpectExec(`CREATE TABLE "yx_Blog_TitleIndex" ("Id" INTEGER PRIMARY KEY AUTOINCREMENT, "DocumentId" INTEGER, "Title" TEXT)`).
		WillReturnResult(ddlResult)
	mock.ExpectExec(`CREATE INDEX "IDX_FK_Blog_TitleIndex" ON "yx_Blog_TitleIndex" ("DocumentId")`).
		WillReturnResult(ddlResult)

	b.CreateMapIndexTable(context.Background(), "TitleIndex", func(t *CreateTableCommand) {
		t.Column("Title", sql.String, WithLength(255))
	}, "Blog")
	require.NoError(t, b.Err())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBuilder_DropMapIndexTable(t *testing.T) {
	t.Run("mysql_drops_foreign_key_first", func(t *testing.T) {
		b, mock := newTestBuilder(t, "mysql")
		mock.ExpectExec("ALTER TABLE `yx_Blog_TitleIndex` DROP FOREIGN KEY `FK_BlogTitleIndex`").
			WillReturnResult(ddlResult)
		mock.ExpectExec("DROP TABLE `yx_Blog_TitleIndex`").WillReturnResult(ddlResult)

		b.DropMapIndexTable(context.Background(), "TitleIndex", "Blog")
		require.NoError(t, b.Err())
		require.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run("postgres_cascades", func(t *testing.T) {
		b, mock := newTestBuilder(t, "postgres")
		mock.ExpectExec(`DROP TABLE "yx_Blog_TitleIndex" CASCADE`).WillReturnResult(ddlResult)

		b.DropMapIndexTable(context.Background(), "TitleIndex", "Blog")
		require.NoError(t, b.Err())
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBuilder_CreateReduceIndexTable(t *testing.T) {
	b, mock := newTestBuilder(t, "mysql")
	mock.ExpectExec("CREATE TABLE `yx_CountIndex` (`Id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY, `Count` INT)").
		WillReturnResult(ddlResult)
	mock.ExpectExec("CREATE TABLE `yx_CountIndex_Document` (`CountIndexId` INT NOT NULL, `DocumentId` INT NOT NULL)").
		WillReturnResult(ddlResult)
	mock.ExpectExec("ALTER TABLE `yx_CountIndex_Document` ADD CONSTRAINT `FK_CountIndex_Document_Id` FOREIGN KEY (`CountIndexId`) REFERENCES `yx_CountIndex` (`Id`)").
		WillReturnResult(ddlResult)
	mock.ExpectExec("ALTER TABLE `yx_CountIndex_Document` ADD CONSTRAINT `FK_CountIndex_Document_DocumentId` FOREIGN KEY (`DocumentId`) REFERENCES `yx_Document` (`Id`)").
		WillReturnResult(ddlResult)
	mock.ExpectExec("CREATE INDEX `IDX_FK_CountIndex_Document` ON `yx_CountIndex_Document` (`CountIndexId`, `DocumentId`)").
		WillReturnResult(ddlResult)

	b.CreateReduceIndexTable(context.Background(), "CountIndex", func(t *CreateTableCommand) {
		t.Column("Count", sql.Integer)
	}, "")
	require.NoError(t, b.Err())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBuilder_DropReduceIndexTable(t *testing.T) {
	t.Run("mysql_reverse_creation_order", func(t *testing.T) {
		b, mock := newTestBuilder(t, "mysql")
		mock.ExpectExec("ALTER TABLE `yx_CountIndex_Document` DROP FOREIGN KEY `FK_CountIndex_Document_Id`").
			WillReturnResult(ddlResult)
		mock.ExpectExec("ALTER TABLE `yx_CountIndex_Document` DROP FOREIGN KEY `FK_CountIndex_Document_DocumentId`").
			WillReturnResult(ddlResult)
		mock.ExpectExec("DROP TABLE `yx_CountIndex_Document`").WillReturnResult(ddlResult)
		mock.ExpectExec("DROP TABLE `yx_CountIndex`").WillReturnResult(ddlResult)

		b.DropReduceIndexTable(context.Background(), "CountIndex", "")
		require.NoError(t, b.Err())
		require.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run("postgres_cascades", func(t *testing.T) {
		b, mock := newTestBuilder(t, "postgres")
		mock.ExpectExec(`DROP TABLE "yx_CountIndex_Document" CASCADE`).WillReturnResult(ddlResult)
		mock.ExpectExec(`DROP TABLE "yx_CountIndex" CASCADE`).WillReturnResult(ddlResult)

		b.DropReduceIndexTable(context.Background(), "CountIndex", "")
		require.NoError(t, b.Err())
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBuilder_AlterIndexTable(t *testing.T) {
	b, mock := newTestBuilder(t, "mysql")
	mock.ExpectExec("ALTER TABLE `yx_Blog_TitleIndex` ADD COLUMN `Subtitle` VARCHAR(100)").
		WillReturnResult(ddlResult)
	mock.ExpectExec("DROP INDEX `IDX_FK_Blog_TitleIndex` ON `yx_Blog_TitleIndex`").
		WillReturnResult(ddlResult)

	b.AlterIndexTable(context.Background(), "TitleIndex", func(t *AlterTableCommand) {
		t.AddColumn("Subtitle", sql.String, WithLength(100))
		t.DropIndex("IDX_FK_Blog_TitleIndex")
	}, "Blog")
	require.NoError(t, b.Err())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBuilder_CreateSchema(t *testing.T) {
	t.Run("postgres", func(t *testing.T) {
		b, mock := newTestBuilder(t, "postgres")
		mock.ExpectExec(`CREATE SCHEMA "app"`).WillReturnResult(ddlResult)
		b.CreateSchema(context.Background(), "app")
		require.NoError(t, b.Err())
		require.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run("sqlite_is_noop", func(t *testing.T) {
		b, mock := newTestBuilder(t, "sqlite")
		b.CreateSchema(context.Background(), "app")
		require.NoError(t, b.Err())
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBuilder_ThrowOnErrorAborts(t *testing.T) {
	b, mock := newTestBuilder(t, "mysql")
	mock.ExpectExec("DROP TABLE `yx_Blog_TitleIndex`").
		WillReturnError(&mysqldrv.MySQLError{Number: 1051, Message: "Unknown table"})

	// No expectation for the second drop: after the first failure the
	// builder must not touch the connection again.
	b.DropTable(context.Background(), "Blog_TitleIndex").
		DropTable(context.Background(), "Blog_Document")

	err := b.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, yessql.ErrExecution)
	var serr *yessql.SchemaError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "DropTable", serr.Op)
	assert.Equal(t, "yx_Blog_TitleIndex", serr.Object)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBuilder_SwallowedErrorsKeepGoing(t *testing.T) {
	b, mock := newTestBuilder(t, "mysql", WithThrowOnError(false))
	mock.ExpectExec("CREATE TABLE `yx_Document` (`Id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY, `Type` VARCHAR(255) NOT NULL, `Content` LONGTEXT, `Version` INT NOT NULL DEFAULT 0)").
		WillReturnError(&mysqldrv.MySQLError{Number: 1050, Message: "Table 'yx_Document' already exists"})
	mock.ExpectExec("CREATE TABLE `yx_CountIndex` (`Id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY, `Count` INT)").
		WillReturnResult(ddlResult)
	mock.ExpectExec("CREATE TABLE `yx_CountIndex_Document` (`CountIndexId` INT NOT NULL, `DocumentId` INT NOT NULL)").
		WillReturnResult(ddlResult)
	mock.ExpectExec("ALTER TABLE `yx_CountIndex_Document` ADD CONSTRAINT `FK_CountIndex_Document_Id` FOREIGN KEY (`CountIndexId`) REFERENCES `yx_CountIndex` (`Id`)").
		WillReturnResult(ddlResult)
	mock.ExpectExec("ALTER TABLE `yx_CountIndex_Document` ADD CONSTRAINT `FK_CountIndex_Document_DocumentId` FOREIGN KEY (`DocumentId`) REFERENCES `yx_Document` (`Id`)").
		WillReturnResult(ddlResult)
	mock.ExpectExec("CREATE INDEX `IDX_FK_CountIndex_Document` ON `yx_CountIndex_Document` (`CountIndexId`, `DocumentId`)").
		WillReturnResult(ddlResult)

	b.CreateDocumentTable(context.Background(), "").
		CreateReduceIndexTable(context.Background(), "CountIndex", func(t *CreateTableCommand) {
			t.Column("Count", sql.Integer)
		}, "")
	require.NoError(t, b.Err())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBuilder_NameResolutionFailure(t *testing.T) {
	b, mock := newTestBuilder(t, "mysql")
	b.CreateMapIndexTable(context.Background(), "", nil, "Blog")

	err := b.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, yessql.ErrNameResolution)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBuilder_CustomConvention(t *testing.T) {
	b, mock := newTestBuilder(t, "postgres", WithConvention(SnakeCaseConvention{}))
	mock.ExpectExec(`DROP TABLE "yx_blog_title_index" CASCADE`).WillReturnResult(ddlResult)

	b.DropMapIndexTable(context.Background(), "TitleIndex", "Blog")
	require.NoError(t, b.Err())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBuilder_CreateForeignKeyUsesVerbatimName(t *testing.T) {
	b, mock := newTestBuilder(t, "postgres")
	mock.ExpectExec(`ALTER TABLE "yx_Blog_TitleIndex" ADD CONSTRAINT "FK_Custom" FOREIGN KEY ("DocumentId") REFERENCES "yx_Blog_Document" ("Id")`).
		WillReturnResult(ddlResult)

	b.CreateForeignKey(context.Background(), "FK_Custom", "Blog_TitleIndex", []string{"DocumentId"}, "Blog_Document", []string{"Id"})
	require.NoError(t, b.Err())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBuilder_UnknownDialect(t *testing.T) {
	cfg := yessql.NewConfig(yessql.WithDialect("oracle"))
	_, err := NewBuilder(cfg, nil)
	assert.Error(t, err)
}
