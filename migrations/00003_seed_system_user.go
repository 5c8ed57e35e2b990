package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upSeedSystemUser, downSeedSystemUser)
}

// The system user owns tasks created through the unauthenticated endpoint.
// Its password hash is empty, so it can never log in.
func upSeedSystemUser(ctx context.Context, tx *sql.Tx) error {
	query := `
	INSERT INTO users (full_name, email, password_hash, dob, gender, role)
	VALUES ('AbleMate System', 'system@ablemate.local', '', '1970-01-01', 'other', 'dependent');
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downSeedSystemUser(ctx context.Context, tx *sql.Tx) error {
	query := `DELETE FROM users WHERE email = 'system@ablemate.local';`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}
