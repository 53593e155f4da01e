package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-file-keeper/models"
)

var (
	userColumns = []string{"user_id", "username", "email", "password_hash", "created_at"}
	fileColumns = []string{"file_id", "file_name", "user_id", "storage_key", "encryption_key", "size", "content_type", "created_at"}
)

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(user.TableName()).
		Columns("username", "email", "password_hash").
		Values(user.Username, user.Email, user.PasswordHash).
		Suffix("RETURNING user_id, created_at").
		ToSql()
}

func buildSelectUserQuery(b sq.StatementBuilderType, column, value string) (string, []any, error) {
	return b.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{column: value}).
		ToSql()
}

func buildUpdatePasswordQuery(b sq.StatementBuilderType, email, passwordHash string) (string, []any, error) {
	return b.Update(models.User{}.TableName()).
		Set("password_hash", passwordHash).
		Where(sq.Eq{"email": email}).
		ToSql()
}

func buildInsertFileQuery(b sq.StatementBuilderType, file models.UploadedFile) (string, []any, error) {
	return b.Insert(file.TableName()).
		Columns("file_name", "user_id", "storage_key", "encryption_key", "size", "content_type").
		Values(file.FileName, file.UserID, file.StorageKey, file.EncryptionKey, file.Size, file.ContentType).
		Suffix("RETURNING file_id, created_at").
		ToSql()
}

func buildSelectFileQuery(b sq.StatementBuilderType, where sq.Sqlizer) (string, []any, error) {
	return b.Select(fileColumns...).
		From(models.UploadedFile{}.TableName()).
		Where(where).
		OrderBy("file_id").
		ToSql()
}

func buildDeleteFileQuery(b sq.StatementBuilderType, userID, fileID int64) (string, []any, error) {
	return b.Delete(models.UploadedFile{}.TableName()).
		Where(sq.Eq{"file_id": fileID, "user_id": userID}).
		Suffix("RETURNING storage_key").
		ToSql()
}

func buildSelectStorageKeysQuery(b sq.StatementBuilderType, keys []string) (string, []any, error) {
	return b.Select("storage_key").
		From(models.UploadedFile{}.TableName()).
		Where(sq.Eq{"storage_key": keys}).
		ToSql()
}
