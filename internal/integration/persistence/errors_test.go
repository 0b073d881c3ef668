package persistence

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	domainerror "github.com/spendly/backend/internal/domain/error"
)

func TestTranslate(t *testing.T) {
	unknown := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"record not found", gorm.ErrRecordNotFound, domainerror.ErrRecordNotFound},
		{"wrapped record not found", fmt.Errorf("query: %w", gorm.ErrRecordNotFound), domainerror.ErrRecordNotFound},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, domainerror.ErrUniqueViolation},
		{"gorm foreign key", gorm.ErrForeignKeyViolated, domainerror.ErrForeignKeyViolation},
		{"pgx unique", &pgconn.PgError{Code: "23505"}, domainerror.ErrUniqueViolation},
		{"pgx foreign key", &pgconn.PgError{Code: "23503"}, domainerror.ErrForeignKeyViolation},
		{"pq unique", &pq.Error{Code: "23505"}, domainerror.ErrUniqueViolation},
		{"pq foreign key", &pq.Error{Code: "23503"}, domainerror.ErrForeignKeyViolation},
		{"unknown passes through", unknown, unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translate(tt.err), tt.want)
		})
	}

	assert.NoError(t, translate(nil))
	assert.NotErrorIs(t, translate(&pgconn.PgError{Code: "42P01"}), domainerror.ErrUniqueViolation)
}
